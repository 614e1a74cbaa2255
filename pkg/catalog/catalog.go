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

// Package catalog provides the in-memory representation of a source catalog:
// an immutable table of named, equal height columns over which selection
// expressions are evaluated.
package catalog

import (
	"fmt"
)

// Catalog is an ordered collection of named columns sharing a common height.
// Catalogs are read once and never mutated; every derivation produces a new
// catalog.
type Catalog struct {
	// Columns in their declaration order.
	columns []*Column
	// Holds the common height of all columns.
	height int
}

// New constructs a catalog from the given columns, which must have distinct
// names and equal heights.
func New(columns ...*Column) (*Catalog, error) {
	height := 0
	//
	if len(columns) > 0 {
		height = columns[0].Height()
	}
	// Sanity check columns
	for i, c := range columns {
		if c.Height() != height {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", c.Name(), c.Height(), height)
		}
		//
		for _, d := range columns[:i] {
			if d.Name() == c.Name() {
				return nil, fmt.Errorf("duplicate column %q", c.Name())
			}
		}
	}
	//
	return &Catalog{columns, height}, nil
}

// Height returns the number of rows in this catalog.
func (p *Catalog) Height() int {
	return p.height
}

// Width returns the number of columns in this catalog.
func (p *Catalog) Width() int {
	return len(p.columns)
}

// Column returns the column with the given name in this catalog, or false if
// no such column exists.  The lookup is exact and case sensitive.
func (p *Catalog) Column(name string) (*Column, bool) {
	for _, c := range p.columns {
		if c.name == name {
			return c, true
		}
	}
	// Column does not exist
	return nil, false
}

// HasColumn checks whether the catalog has a given column or not.
func (p *Catalog) HasColumn(name string) bool {
	_, ok := p.Column(name)
	return ok
}

// Columns returns the set of columns in this catalog, in declaration order.
func (p *Catalog) Columns() []*Column {
	return p.columns
}

// Names returns the column names in declaration order.
func (p *Catalog) Names() []string {
	names := make([]string, len(p.columns))
	//
	for i, c := range p.columns {
		names[i] = c.Name()
	}
	//
	return names
}

// Select constructs a new catalog holding the given rows (in the given order)
// of every column.
func (p *Catalog) Select(rows []int) *Catalog {
	columns := make([]*Column, len(p.columns))
	//
	for i, c := range p.columns {
		columns[i] = c.Select(rows)
	}
	//
	return &Catalog{columns, len(rows)}
}

// SelectMask constructs a new catalog holding the rows where the given mask
// is true.  The mask must cover every row.
func (p *Catalog) SelectMask(bits []bool) (*Catalog, error) {
	if len(bits) != p.height {
		return nil, fmt.Errorf("mask covers %d of %d rows", len(bits), p.height)
	}
	//
	rows := make([]int, 0, len(bits))
	//
	for i, b := range bits {
		if b {
			rows = append(rows, i)
		}
	}
	//
	return p.Select(rows), nil
}
