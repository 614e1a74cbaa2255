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
package catalog

// Column is a single named column of a catalog.  Numeric storage is always
// float64 in memory, regardless of the on-disk type; string columns are held
// separately.  The on-disk form (e.g. "1J" or "16A") is retained so writes
// can round-trip the storage type.  Numeric columns may hold more than one
// value per row (e.g. aperture magnitudes or vignettes), in which case the
// data is stored row major and the column is not addressable by expressions.
type Column struct {
	name string
	// FITS storage form; empty for derived columns.
	form string
	// Number of values per row; always one for string columns.
	width int
	// Exactly one of the following is non-nil.
	floats  []float64
	strings []string
}

// NewFloatColumn constructs a numeric column holding one value per row.
func NewFloatColumn(name string, form string, data []float64) *Column {
	return &Column{name: name, form: form, width: 1, floats: data}
}

// NewFloatArrayColumn constructs a numeric column holding width values per
// row, stored row major.
func NewFloatArrayColumn(name string, form string, width int, data []float64) *Column {
	return &Column{name: name, form: form, width: width, floats: data}
}

// NewStringColumn constructs a string column (one string per row).
func NewStringColumn(name string, form string, data []string) *Column {
	return &Column{name: name, form: form, width: 1, strings: data}
}

// Name returns the name of this column.
func (p *Column) Name() string {
	return p.name
}

// Form returns the on-disk storage form of this column, which is empty for
// columns derived in memory.
func (p *Column) Form() string {
	return p.form
}

// Width returns the number of values per row held by this column.
func (p *Column) Width() int {
	return p.width
}

// IsString determines whether this column holds strings rather than numbers.
func (p *Column) IsString() bool {
	return p.strings != nil
}

// Height returns the number of rows in this column.
func (p *Column) Height() int {
	if p.IsString() {
		return len(p.strings)
	}
	//
	return len(p.floats) / p.width
}

// Floats returns the numeric data of this column (row major for vector
// columns).  This is only valid for numeric columns.
func (p *Column) Floats() []float64 {
	return p.floats
}

// Strings returns the string data of this column.  This is only valid for
// string columns.
func (p *Column) Strings() []string {
	return p.strings
}

// Row returns the values of the given row of a numeric column.
func (p *Column) Row(row int) []float64 {
	return p.floats[row*p.width : (row+1)*p.width]
}

// Select constructs a new column holding the given rows (in the given order)
// of this column, keeping its name and form.
func (p *Column) Select(rows []int) *Column {
	if p.IsString() {
		data := make([]string, len(rows))
		//
		for i, row := range rows {
			data[i] = p.strings[row]
		}
		//
		return NewStringColumn(p.name, p.form, data)
	}
	//
	data := make([]float64, 0, len(rows)*p.width)
	//
	for _, row := range rows {
		data = append(data, p.Row(row)...)
	}
	//
	return &Column{name: p.name, form: p.form, width: p.width, floats: data}
}
