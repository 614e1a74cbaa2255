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
	"fmt"
	"strings"
)

// Expr represents an arbitrary expression over the columns of a catalog and a
// set of named masks.  Expressions are evaluated elementwise over all rows at
// once, producing a (possibly scalar) Value.
type Expr interface {
	// Eval evaluates this expression over the rows of the given context.
	Eval(ctx Context) (Value, error)
	// String returns a textual rendition of this expression.
	String() string
}

// ============================================================================
// Literal
// ============================================================================

// Literal represents a numeric constant.
type Literal struct {
	Value float64
}

func (e *Literal) String() string {
	return FormatFloat(e.Value)
}

// ============================================================================
// StringLit
// ============================================================================

// StringLit represents a double-quoted string constant.
type StringLit struct {
	Value string
}

func (e *StringLit) String() string {
	return fmt.Sprintf("%q", e.Value)
}

// ============================================================================
// ColumnRef
// ============================================================================

// ColumnRef represents a reference to a catalog column by name.  When no such
// column exists, the name is resolved against the declared masks instead.
type ColumnRef struct {
	Name string
}

func (e *ColumnRef) String() string {
	return e.Name
}

// ============================================================================
// MaskRef
// ============================================================================

// MaskRef represents a brace reference to a declared mask, standing for its
// boolean vector.
type MaskRef struct {
	Name string
}

func (e *MaskRef) String() string {
	return fmt.Sprintf("{%s}", e.Name)
}

// ============================================================================
// Unary
// ============================================================================

// Unary represents the application of a prefix operator (negation, identity
// or logical complement) to an expression.
type Unary struct {
	Op  uint
	Arg Expr
}

func (e *Unary) String() string {
	return fmt.Sprintf("%s%s", opString(e.Op), e.Arg.String())
}

// ============================================================================
// Binary
// ============================================================================

// Binary represents the elementwise application of a binary operator to two
// expressions.
type Binary struct {
	Op  uint
	Lhs Expr
	Rhs Expr
}

func (e *Binary) String() string {
	return fmt.Sprintf("(%s%s%s)", e.Lhs.String(), opString(e.Op), e.Rhs.String())
}

// ============================================================================
// Call
// ============================================================================

// Call represents the application of a builtin function to one or more
// argument expressions.
type Call struct {
	Name string
	Args []Expr
}

func (e *Call) String() string {
	args := make([]string, len(e.Args))
	//
	for i, arg := range e.Args {
		args[i] = arg.String()
	}
	//
	return fmt.Sprintf("%s(%s)", e.Name, strings.Join(args, ","))
}

// ============================================================================
// Filter
// ============================================================================

// Filter represents the postfix mask filter, which restricts a vector to the
// rows where the named mask holds.
type Filter struct {
	Arg  Expr
	Mask string
}

func (e *Filter) String() string {
	return fmt.Sprintf("%s{%s}", e.Arg.String(), e.Mask)
}

// ============================================================================
// Helpers
// ============================================================================

// opString renders an operator token kind as its source text.
func opString(kind uint) string {
	switch kind {
	case OR:
		return "|"
	case AND:
		return "&"
	case EQUALS:
		return "=="
	case NOT_EQUALS:
		return "!="
	case LESSTHAN:
		return "<"
	case LESSTHAN_EQUALS:
		return "<="
	case GREATERTHAN:
		return ">"
	case GREATERTHAN_EQUALS:
		return ">="
	case ADD:
		return "+"
	case SUB:
		return "-"
	case MUL:
		return "*"
	case DIV:
		return "/"
	case POW:
		return "**"
	case NOT:
		return "~"
	}
	//
	return "?"
}
