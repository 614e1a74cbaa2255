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
package fits

import (
	"fmt"
	"strconv"

	"github.com/setools/go-setools/pkg/catalog"
)

// parseForm splits a binary table form (e.g. "1E", "16A", "D") into its
// repeat count and type code.  An omitted repeat count stands for one.
func parseForm(form string) (int, byte, error) {
	i := 0
	for i < len(form) && form[i] >= '0' && form[i] <= '9' {
		i++
	}
	//
	repeat := 1
	//
	if i > 0 {
		repeat, _ = strconv.Atoi(form[:i])
	}
	//
	if i == len(form) {
		return 0, 0, fmt.Errorf("malformed column form %q", form)
	}
	//
	code := form[i]
	//
	switch code {
	case 'L', 'B', 'I', 'J', 'K', 'E', 'D', 'A':
		return repeat, code, nil
	}
	//
	return 0, 0, fmt.Errorf("unsupported column form %q", form)
}

// codeSize returns the storage bytes of one element of the given type code.
func codeSize(code byte) int {
	switch code {
	case 'L', 'B', 'A':
		return 1
	case 'I':
		return 2
	case 'J', 'E':
		return 4
	default:
		return 8
	}
}

// columnForm determines the on disk form of a column: its retained form when
// consistent with the data, otherwise a default wide enough to hold it.
// Derived numeric columns default to double precision and derived string
// columns to the length of their longest value.
func columnForm(col *catalog.Column) (int, byte, error) {
	if form := col.Form(); form != "" {
		repeat, code, err := parseForm(form)
		if err != nil {
			return 0, 0, fmt.Errorf("column %q: %w", col.Name(), err)
		}
		//
		if col.IsString() != (code == 'A') {
			return 0, 0, fmt.Errorf("column %q: form %q does not match its data", col.Name(), form)
		}
		// String repeats stretch to the longest value; numeric repeats must
		// match the row width exactly.
		switch {
		case code == 'A':
			return max(repeat, longestString(col)), code, nil
		case repeat == col.Width():
			return repeat, code, nil
		}
		//
		return 0, 0, fmt.Errorf("column %q: form %q holds %d values per row, expected %d",
			col.Name(), form, repeat, col.Width())
	}
	//
	if col.IsString() {
		return max(1, longestString(col)), 'A', nil
	}
	//
	return col.Width(), 'D', nil
}

func longestString(col *catalog.Column) int {
	longest := 0
	//
	for _, s := range col.Strings() {
		longest = max(longest, len(s))
	}
	//
	return longest
}
