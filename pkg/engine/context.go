// Copyright the go-setools authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package engine

import (
	"github.com/setools/go-setools/pkg/catalog"
	"github.com/setools/go-setools/pkg/expr"
)

// evalContext exposes a catalog and the masks built so far as the operands of
// expression evaluation.
type evalContext struct {
	cat   *catalog.Catalog
	masks *MaskSet
}

// Column returns the named catalog column, if one exists.  Vector columns
// (more than one value per row) are not addressable by expressions.
func (p evalContext) Column(name string) (expr.Value, bool) {
	col, ok := p.cat.Column(name)
	//
	if !ok {
		return expr.Value{}, false
	}
	//
	if col.IsString() {
		return expr.StringVector(col.Strings()), true
	}
	//
	if col.Width() != 1 {
		return expr.Value{}, false
	}
	//
	return expr.FloatVector(col.Floats()), true
}

// Mask returns the named boolean mask, if one has been declared.
func (p evalContext) Mask(name string) ([]bool, bool) {
	if p.masks == nil {
		return nil, false
	}
	//
	if mask, ok := p.masks.Get(name); ok {
		return mask.Bits, true
	}
	//
	return nil, false
}

// Height returns the number of rows in the catalog.
func (p evalContext) Height() int {
	return p.cat.Height()
}
