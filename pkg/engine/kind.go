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

import "strings"

// SectionKind identifies which task family a configuration section drives.
type SectionKind uint8

// MASK sections build named boolean row selections.
const MASK SectionKind = 0

// PLOT sections build structured plot specifications for the renderer.
const PLOT SectionKind = 1

// STAT sections compute named scalar (or array) summaries.
const STAT SectionKind = 2

// NEW_CAT sections assemble new catalogs from expression results.
const NEW_CAT SectionKind = 3

// RAND_SPLIT sections partition a pool of rows at random.
const RAND_SPLIT SectionKind = 4

// FLAG_SPLIT sections partition rows by the distinct values of a column.
const FLAG_SPLIT SectionKind = 5

// nKinds holds the number of distinct section kinds.
const nKinds = 6

// kindNames maps every kind to its header keyword.
var kindNames = [nKinds]string{"MASK", "PLOT", "STAT", "NEW_CAT", "RAND_SPLIT", "FLAG_SPLIT"}

// String returns the header keyword for this kind.
func (k SectionKind) String() string {
	return kindNames[k]
}

// lower returns the lowercase form of this kind, as used for generated
// section names.
func (k SectionKind) lower() string {
	return strings.ToLower(kindNames[k])
}

// kindOf resolves a header keyword to its kind.
func kindOf(name string) (SectionKind, bool) {
	for i, n := range kindNames {
		if n == name {
			return SectionKind(i), true
		}
	}
	//
	return 0, false
}
