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
	log "github.com/sirupsen/logrus"

	"github.com/setools/go-setools/pkg/catalog"
	"github.com/setools/go-setools/pkg/expr"
	"github.com/setools/go-setools/pkg/util"
)

// NoSaveDirective marks a mask section whose result participates in later
// evaluation but is never persisted.
const NoSaveDirective = "NO_SAVE"

// Mask is a named boolean selection over the rows of a catalog.
type Mask struct {
	Name string
	// Bits holds one entry per catalog row.
	Bits []bool
	// NoSave suppresses persistence of this mask.
	NoSave bool
}

// Count returns the number of selected rows.
func (p *Mask) Count() int {
	return int(util.CountMatching(p.Bits, func(b bool) bool { return b }))
}

// MaskSet holds every built mask, preserving declaration order.  The order is
// semantic: a mask may only reference masks declared before it.
type MaskSet struct {
	masks []*Mask
}

// Get returns the mask with the given name, if one has been declared.
func (p *MaskSet) Get(name string) (*Mask, bool) {
	for _, m := range p.masks {
		if m.Name == name {
			return m, true
		}
	}
	//
	return nil, false
}

// Masks returns every mask in declaration order.
func (p *MaskSet) Masks() []*Mask {
	return p.masks
}

// Len returns the number of declared masks.
func (p *MaskSet) Len() int {
	return len(p.masks)
}

// insert appends a mask, which must not collide with a declared name.
func (p *MaskSet) insert(m *Mask) {
	p.masks = append(p.masks, m)
}

// BuildMasks evaluates every MASK section of the configuration against the
// catalog, in declaration order.  Each mask starts all true and is narrowed
// by the conjunction of its constraint lines; every built mask immediately
// becomes referenceable by later lines and sections.
func BuildMasks(cat *catalog.Catalog, config *Config) (*MaskSet, error) {
	var (
		set = &MaskSet{}
		ctx = evalContext{cat, set}
	)
	//
	for _, section := range config.Sections(MASK) {
		var (
			bits   = allTrue(cat.Height())
			noSave = false
		)
		//
		for _, line := range section.Lines {
			if line.Text == NoSaveDirective {
				noSave = true
				continue
			}
			//
			e, errs := expr.Parse(line.Text)
			if len(errs) != 0 {
				return nil, configError(section, line.Text, "%s", errs[0].Message())
			}
			//
			selected, err := expr.EvalPredicate(e, ctx)
			if err != nil {
				return nil, lineError(section, line, err)
			}
			//
			for i := range bits {
				bits[i] = bits[i] && selected[i]
			}
		}
		//
		mask := &Mask{section.Name, bits, noSave}
		set.insert(mask)
		//
		log.Debugf("mask %q selects %d of %d rows", mask.Name, mask.Count(), cat.Height())
	}
	//
	return set, nil
}

// allTrue constructs the boolean vector every mask starts from.
func allTrue(n int) []bool {
	bits := make([]bool, n)
	//
	for i := range bits {
		bits[i] = true
	}
	//
	return bits
}
