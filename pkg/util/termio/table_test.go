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
	"bytes"
	"testing"

	"github.com/setools/go-setools/pkg/util/assert"
)

func TestTable_00(t *testing.T) {
	// cells right align within the widest entry of their column
	table := NewTablePrinter(3, 2)
	table.SetRow(0, "name", "form", "rows")
	table.SetRow(1, "MAG", "1E", "10240")
	//
	expected := " name | form |  rows |\n" +
		"  MAG |   1E | 10240 |\n"
	//
	assert.Equal(t, expected, render(table))
}

func TestTable_01(t *testing.T) {
	// overlong cells are truncated with a marker
	table := NewTablePrinter(1, 1)
	table.Set(0, 0, "ABCDEFGH")
	table.SetMaxWidths(6)
	//
	assert.Equal(t, " ABCD.. |\n", render(table))
}

func TestTable_02(t *testing.T) {
	// escapes wrap the padded cell and are cancelled afterwards
	table := NewTablePrinter(1, 1)
	table.Set(0, 0, "hdr")
	table.SetEscape(0, 0, BoldAnsiEscape().Build())
	//
	var buf bytes.Buffer
	//
	table.Fprint(&buf)
	assert.Equal(t, "\x1b[1m hdr\x1b[0m |\n", buf.String())
}

func TestTable_03(t *testing.T) {
	// disabling escapes leaves the plain text
	table := NewTablePrinter(1, 1)
	table.Set(0, 0, "hdr")
	table.SetEscape(0, 0, BoldAnsiEscape().Build())
	//
	assert.Equal(t, " hdr |\n", render(table))
}

func TestTable_04(t *testing.T) {
	// narrow clamps never split the truncation marker
	table := NewTablePrinter(1, 1)
	table.Set(0, 0, "ABCDEFGH")
	table.SetMaxWidths(2)
	//
	assert.Equal(t, " ABCDEFGH |\n", render(table))
}

func TestEscape_00(t *testing.T) {
	assert.Equal(t, "\x1b[1m", BoldAnsiEscape().Build())
	assert.Equal(t, "\x1b[0m", ResetAnsiEscape().Build())
	assert.Equal(t, "\x1b[36m", NewAnsiEscape().FgColour(TERM_CYAN).Build())
	assert.Equal(t, "\x1b[1;31m", BoldAnsiEscape().FgColour(TERM_RED).Build())
}

// ==================================================================
// Framework
// ==================================================================

// render the table without escapes.
func render(table *TablePrinter) string {
	var buf bytes.Buffer
	//
	table.AnsiEscapes(false)
	table.Fprint(&buf)
	//
	return buf.String()
}
