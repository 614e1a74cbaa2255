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
package termio

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// cell pairs the text of one table entry with the escape it is rendered
// under.
type cell struct {
	text   string
	escape string
}

// TablePrinter renders rows of cells as a right aligned, pipe separated
// table, truncating individual cells to a configurable column width.
type TablePrinter struct {
	widths []uint
	cells  [][]cell
	// ansi enables escape sequences for cell formatting.
	ansi bool
}

// NewTablePrinter constructs an empty table with the given dimensions.
func NewTablePrinter(width uint, height uint) *TablePrinter {
	cells := make([][]cell, height)
	//
	for i := range cells {
		cells[i] = make([]cell, width)
	}
	//
	return &TablePrinter{make([]uint, width), cells, true}
}

// Set the contents of a given cell in this table.
func (p *TablePrinter) Set(col uint, row uint, text string) {
	p.widths[col] = max(p.widths[col], uint(len(text)))
	p.cells[row][col].text = text
}

// SetRow sets the contents of an entire row in this table.
func (p *TablePrinter) SetRow(row uint, texts ...string) {
	if len(texts) != len(p.widths) {
		panic("incorrect number of columns")
	}
	//
	for col, text := range texts {
		p.Set(uint(col), row, text)
	}
}

// SetEscape sets the escape used when rendering the contents of a given cell.
func (p *TablePrinter) SetEscape(col uint, row uint, escape string) {
	p.cells[row][col].escape = escape
}

// AnsiEscapes enables or disables escape sequences.  Disabling them matters
// when the output is not a terminal, as otherwise the escape characters
// themselves show up.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.ansi = enable
}

// SetMaxWidths puts an upper bound on the width of every column.
func (p *TablePrinter) SetMaxWidths(width uint) {
	for col := range p.widths {
		p.SetMaxWidth(uint(col), width)
	}
}

// SetMaxWidth puts an upper bound on the width of one column.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.widths[col] = min(p.widths[col], width)
}

// Print renders the table to standard output.
func (p *TablePrinter) Print() {
	p.Fprint(os.Stdout)
}

// Fprint renders the table to the given writer.
func (p *TablePrinter) Fprint(w io.Writer) {
	var builder strings.Builder
	//
	for _, row := range p.cells {
		builder.Reset()
		//
		for col, c := range row {
			p.renderCell(&builder, c, p.widths[col])
		}
		//
		fmt.Fprintln(w, builder.String())
	}
}

// renderCell right aligns one cell within the column width, marking truncated
// text with "..".
func (p *TablePrinter) renderCell(builder *strings.Builder, c cell, width uint) {
	text := c.text
	//
	if uint(len(text)) > width && width > 2 {
		text = text[:width-2] + ".."
	}
	//
	if p.ansi && c.escape != "" {
		builder.WriteString(c.escape)
	}
	//
	fmt.Fprintf(builder, " %*s", width, text)
	//
	if p.ansi && c.escape != "" {
		builder.WriteString(ResetAnsiEscape().Build())
	}
	//
	builder.WriteString(" |")
}
