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

// Package ascii reads and writes tab separated catalog tables: a "# HEADER"
// banner, a "# " prefixed line of keys, then one tab terminated cell per key
// per row.  Columns may be ragged on writing; rows beyond a column's height
// are padded with empty cells.
package ascii

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Table is a keyed collection of textual columns.  Columns align with keys by
// index and need not share a common height.
type Table struct {
	// Keys in declaration order.
	Keys []string
	// Columns holds the cells of each key, in key order.
	Columns [][]string
}

// Height returns the number of rows written for this table, which is the
// height of its tallest column.
func (p *Table) Height() int {
	height := 0
	//
	for _, col := range p.Columns {
		height = max(height, len(col))
	}
	//
	return height
}

// Write serializes a table.  Every cell (including the last of a row) is
// terminated by a tab, and rows where a column has no cell carry an empty
// cell in its place.
func Write(w io.Writer, table *Table) error {
	if len(table.Keys) != len(table.Columns) {
		return fmt.Errorf("table has %d keys but %d columns", len(table.Keys), len(table.Columns))
	}
	//
	var builder strings.Builder
	//
	builder.WriteString("# HEADER\n")
	builder.WriteString("# ")
	//
	for _, key := range table.Keys {
		builder.WriteString(key)
		builder.WriteString("\t")
	}
	//
	builder.WriteString("\n")
	//
	for row := range table.Height() {
		for _, col := range table.Columns {
			if row < len(col) {
				builder.WriteString(col[row])
			}
			//
			builder.WriteString("\t")
		}
		//
		builder.WriteString("\n")
	}
	//
	_, err := io.WriteString(w, builder.String())
	//
	return err
}

// WriteFile serializes a table to the given file, replacing any existing
// contents.
func WriteFile(filename string, table *Table) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	//
	defer file.Close()
	//
	return Write(file, table)
}

// Read parses the textual form back into a table.  Raggedness is not
// recorded on disk, hence every column is recovered at the common height with
// padding cells read back as empty strings.
func Read(data []byte) (*Table, error) {
	var (
		table Table
		lines = strings.Split(string(data), "\n")
	)
	//
	for _, line := range lines {
		switch {
		case line == "" || line == "# HEADER":
			continue
		case strings.HasPrefix(line, "# "):
			if table.Keys != nil {
				return nil, fmt.Errorf("duplicate key line %q", line)
			}
			//
			table.Keys = splitCells(line[2:])
			table.Columns = make([][]string, len(table.Keys))
		default:
			if table.Keys == nil {
				return nil, fmt.Errorf("row %q before any key line", line)
			}
			//
			cells := splitCells(line)
			if len(cells) != len(table.Keys) {
				return nil, fmt.Errorf("row has %d cells, expected %d", len(cells), len(table.Keys))
			}
			//
			for i, cell := range cells {
				table.Columns[i] = append(table.Columns[i], cell)
			}
		}
	}
	//
	if table.Keys == nil {
		return nil, fmt.Errorf("no key line found")
	}
	//
	return &table, nil
}

// ReadFile parses the given file back into a table.
func ReadFile(filename string) (*Table, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return Read(data)
}

// splitCells splits a line on tabs, dropping the empty trailing field arising
// from the terminating tab.
func splitCells(line string) []string {
	cells := strings.Split(line, "\t")
	//
	if n := len(cells); n > 0 && cells[n-1] == "" {
		cells = cells[:n-1]
	}
	//
	return cells
}
