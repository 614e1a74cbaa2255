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
package expr

import (
	"strconv"
	"strings"
)

// Kind identifies the runtime kind of a value produced by evaluation.
type Kind uint8

// FLOATS signals a numeric value.
const FLOATS Kind = 0

// BOOLS signals a boolean value.
const BOOLS Kind = 1

// STRINGS signals a string value.
const STRINGS Kind = 2

// String returns a human readable name for this kind.
func (k Kind) String() string {
	switch k {
	case FLOATS:
		return "number"
	case BOOLS:
		return "boolean"
	case STRINGS:
		return "string"
	}
	//
	return "unknown"
}

// Value is the result of evaluating an expression: a vector of numbers,
// booleans or strings, or a scalar of one of those kinds.  Scalars broadcast
// against vectors during elementwise operations.
type Value struct {
	kind   Kind
	scalar bool
	//
	floats  []float64
	bools   []bool
	strings []string
}

// FloatVector constructs a numeric vector value.
func FloatVector(data []float64) Value {
	return Value{kind: FLOATS, floats: data}
}

// FloatScalar constructs a numeric scalar value.
func FloatScalar(x float64) Value {
	return Value{kind: FLOATS, scalar: true, floats: []float64{x}}
}

// BoolVector constructs a boolean vector value.
func BoolVector(data []bool) Value {
	return Value{kind: BOOLS, bools: data}
}

// BoolScalar constructs a boolean scalar value.
func BoolScalar(b bool) Value {
	return Value{kind: BOOLS, scalar: true, bools: []bool{b}}
}

// StringVector constructs a string vector value.
func StringVector(data []string) Value {
	return Value{kind: STRINGS, strings: data}
}

// StringScalar constructs a string scalar value.
func StringScalar(s string) Value {
	return Value{kind: STRINGS, scalar: true, strings: []string{s}}
}

// Kind returns the runtime kind of this value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsScalar determines whether this value is a scalar (which broadcasts), as
// opposed to a vector.
func (v Value) IsScalar() bool {
	return v.scalar
}

// Len returns the number of elements held by this value.  Scalars report one
// element.
func (v Value) Len() int {
	switch v.kind {
	case BOOLS:
		return len(v.bools)
	case STRINGS:
		return len(v.strings)
	default:
		return len(v.floats)
	}
}

// Floats returns the underlying numeric data.  This is only valid for values
// of kind FLOATS.
func (v Value) Floats() []float64 {
	return v.floats
}

// Bools returns the underlying boolean data.  This is only valid for values of
// kind BOOLS.
func (v Value) Bools() []bool {
	return v.bools
}

// Strings returns the underlying string data.  This is only valid for values
// of kind STRINGS.
func (v Value) Strings() []string {
	return v.strings
}

// floatAt returns the ith element, with scalars broadcasting to any index.
func (v Value) floatAt(i int) float64 {
	if v.scalar {
		return v.floats[0]
	}
	//
	return v.floats[i]
}

// boolAt returns the ith element, with scalars broadcasting to any index.
func (v Value) boolAt(i int) bool {
	if v.scalar {
		return v.bools[0]
	}
	//
	return v.bools[i]
}

// stringAt returns the ith element, with scalars broadcasting to any index.
func (v Value) stringAt(i int) string {
	if v.scalar {
		return v.strings[0]
	}
	//
	return v.strings[i]
}

// String renders this value as text, using the shortest decimal
// representation for numbers.  Vectors render bracketed and space separated.
func (v Value) String() string {
	if v.scalar {
		return v.elementString(0)
	}
	//
	var builder strings.Builder
	//
	builder.WriteString("[")
	//
	for i := 0; i < v.Len(); i++ {
		if i != 0 {
			builder.WriteString(" ")
		}
		//
		builder.WriteString(v.elementString(i))
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

func (v Value) elementString(i int) string {
	switch v.kind {
	case BOOLS:
		if v.bools[i] {
			return "true"
		}
		//
		return "false"
	case STRINGS:
		return v.strings[i]
	default:
		return FormatFloat(v.floats[i])
	}
}

// FormatFloat renders a number using the shortest decimal representation
// which round-trips, hence whole numbers render without a decimal point.
func FormatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// broadcastLength determines the common element count of two values, where a
// scalar adopts the length of its partner.  Two vectors must agree exactly.
func broadcastLength(lhs Value, rhs Value) (int, bool) {
	switch {
	case lhs.scalar && rhs.scalar:
		return 1, true
	case lhs.scalar:
		return rhs.Len(), true
	case rhs.scalar:
		return lhs.Len(), true
	case lhs.Len() == rhs.Len():
		return lhs.Len(), true
	}
	// incompatible
	return 0, false
}
