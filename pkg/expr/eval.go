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
	"math"
)

// Context supplies the named operands of an evaluation: the columns of the
// source catalog, plus every mask declared so far.
type Context interface {
	// Column returns the named catalog column, if one exists.
	Column(name string) (Value, bool)
	// Mask returns the named boolean mask, if one exists.
	Mask(name string) ([]bool, bool)
	// Height returns the number of rows in the catalog.
	Height() int
}

// EvalPredicate evaluates an expression which must reduce to a boolean row
// selection spanning every catalog row.  A scalar boolean broadcasts to all
// rows.
func EvalPredicate(e Expr, ctx Context) ([]bool, error) {
	value, err := e.Eval(ctx)
	//
	if err != nil {
		return nil, err
	}
	//
	if value.Kind() != BOOLS {
		return nil, typeMismatch("selection must be boolean, got %s", value.Kind())
	}
	//
	n := ctx.Height()
	//
	if value.IsScalar() {
		bits := make([]bool, n)
		//
		for i := range bits {
			bits[i] = value.Bools()[0]
		}
		//
		return bits, nil
	}
	//
	if value.Len() != n {
		return nil, typeMismatch("selection covers %d of %d rows", value.Len(), n)
	}
	//
	return value.Bools(), nil
}

// ============================================================================
// Evaluation
// ============================================================================

// Eval returns the constant itself.
func (e *Literal) Eval(ctx Context) (Value, error) {
	return FloatScalar(e.Value), nil
}

// Eval returns the constant itself.
func (e *StringLit) Eval(ctx Context) (Value, error) {
	return StringScalar(e.Value), nil
}

// Eval resolves the name against the catalog columns first, then against the
// declared masks.
func (e *ColumnRef) Eval(ctx Context) (Value, error) {
	if value, ok := ctx.Column(e.Name); ok {
		return value, nil
	}
	// Fall back on masks, which act as boolean vectors
	if bits, ok := ctx.Mask(e.Name); ok {
		return BoolVector(bits), nil
	}
	//
	return Value{}, &UnknownColumnError{e.Name}
}

// Eval resolves the name against the declared masks only.
func (e *MaskRef) Eval(ctx Context) (Value, error) {
	if bits, ok := ctx.Mask(e.Name); ok {
		return BoolVector(bits), nil
	}
	//
	return Value{}, &MissingMaskError{e.Name}
}

// Eval applies the prefix operator elementwise.
func (e *Unary) Eval(ctx Context) (Value, error) {
	arg, err := e.Arg.Eval(ctx)
	//
	if err != nil {
		return Value{}, err
	}
	//
	switch e.Op {
	case NOT:
		if arg.Kind() != BOOLS {
			return Value{}, typeMismatch("operator ~ requires a boolean, got %s", arg.Kind())
		}
		//
		bits := make([]bool, arg.Len())
		//
		for i := range bits {
			bits[i] = !arg.Bools()[i]
		}
		//
		if arg.IsScalar() {
			return BoolScalar(bits[0]), nil
		}
		//
		return BoolVector(bits), nil
	case ADD, SUB:
		if arg.Kind() != FLOATS {
			return Value{}, typeMismatch("operator %s requires a number, got %s", opString(e.Op), arg.Kind())
		}
		//
		if e.Op == ADD {
			return arg, nil
		}
		//
		data := make([]float64, arg.Len())
		//
		for i := range data {
			data[i] = -arg.Floats()[i]
		}
		//
		if arg.IsScalar() {
			return FloatScalar(data[0]), nil
		}
		//
		return FloatVector(data), nil
	}
	//
	return Value{}, typeMismatch("unknown prefix operator")
}

// Eval applies the binary operator elementwise, broadcasting scalars.
func (e *Binary) Eval(ctx Context) (Value, error) {
	lhs, err := e.Lhs.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	//
	rhs, err := e.Rhs.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	//
	switch e.Op {
	case AND, OR:
		return evalLogical(e.Op, lhs, rhs)
	case EQUALS, NOT_EQUALS:
		return evalEquality(e.Op, lhs, rhs)
	case LESSTHAN, LESSTHAN_EQUALS, GREATERTHAN, GREATERTHAN_EQUALS:
		return evalOrdering(e.Op, lhs, rhs)
	default:
		return evalArithmetic(e.Op, lhs, rhs)
	}
}

// Eval applies the named builtin to its evaluated arguments.
func (e *Call) Eval(ctx Context) (Value, error) {
	args := make([]Value, len(e.Args))
	//
	for i, arg := range e.Args {
		value, err := arg.Eval(ctx)
		if err != nil {
			return Value{}, err
		}
		//
		args[i] = value
	}
	//
	return applyBuiltin(e.Name, args)
}

// Eval restricts the argument vector to the rows where the mask holds.
func (e *Filter) Eval(ctx Context) (Value, error) {
	bits, ok := ctx.Mask(e.Mask)
	//
	if !ok {
		return Value{}, &MissingMaskError{e.Mask}
	}
	//
	arg, err := e.Arg.Eval(ctx)
	if err != nil {
		return Value{}, err
	}
	//
	if arg.IsScalar() {
		return Value{}, typeMismatch("cannot filter a scalar with {%s}", e.Mask)
	}
	//
	if arg.Len() != len(bits) {
		return Value{}, typeMismatch("filter {%s} covers %d of %d rows", e.Mask, len(bits), arg.Len())
	}
	// Count selected rows
	count := 0
	//
	for _, b := range bits {
		if b {
			count++
		}
	}
	//
	switch arg.Kind() {
	case BOOLS:
		data := make([]bool, 0, count)
		//
		for i, b := range bits {
			if b {
				data = append(data, arg.Bools()[i])
			}
		}
		//
		return BoolVector(data), nil
	case STRINGS:
		data := make([]string, 0, count)
		//
		for i, b := range bits {
			if b {
				data = append(data, arg.Strings()[i])
			}
		}
		//
		return StringVector(data), nil
	default:
		data := make([]float64, 0, count)
		//
		for i, b := range bits {
			if b {
				data = append(data, arg.Floats()[i])
			}
		}
		//
		return FloatVector(data), nil
	}
}

// ============================================================================
// Elementwise operators
// ============================================================================

func evalLogical(op uint, lhs Value, rhs Value) (Value, error) {
	if lhs.Kind() != BOOLS || rhs.Kind() != BOOLS {
		return Value{}, typeMismatch("operator %s requires booleans, got %s and %s",
			opString(op), lhs.Kind(), rhs.Kind())
	}
	//
	n, ok := broadcastLength(lhs, rhs)
	if !ok {
		return Value{}, typeMismatch("operator %s applied to vectors of length %d and %d",
			opString(op), lhs.Len(), rhs.Len())
	}
	//
	bits := make([]bool, n)
	//
	for i := range bits {
		if op == AND {
			bits[i] = lhs.boolAt(i) && rhs.boolAt(i)
		} else {
			bits[i] = lhs.boolAt(i) || rhs.boolAt(i)
		}
	}
	//
	if lhs.IsScalar() && rhs.IsScalar() {
		return BoolScalar(bits[0]), nil
	}
	//
	return BoolVector(bits), nil
}

func evalEquality(op uint, lhs Value, rhs Value) (Value, error) {
	if lhs.Kind() != rhs.Kind() || lhs.Kind() == BOOLS {
		return Value{}, typeMismatch("operator %s applied to %s and %s",
			opString(op), lhs.Kind(), rhs.Kind())
	}
	//
	n, ok := broadcastLength(lhs, rhs)
	if !ok {
		return Value{}, typeMismatch("operator %s applied to vectors of length %d and %d",
			opString(op), lhs.Len(), rhs.Len())
	}
	//
	bits := make([]bool, n)
	//
	for i := range bits {
		var eq bool
		//
		if lhs.Kind() == STRINGS {
			eq = lhs.stringAt(i) == rhs.stringAt(i)
		} else {
			eq = lhs.floatAt(i) == rhs.floatAt(i)
		}
		//
		bits[i] = eq == (op == EQUALS)
	}
	//
	if lhs.IsScalar() && rhs.IsScalar() {
		return BoolScalar(bits[0]), nil
	}
	//
	return BoolVector(bits), nil
}

func evalOrdering(op uint, lhs Value, rhs Value) (Value, error) {
	if lhs.Kind() != FLOATS || rhs.Kind() != FLOATS {
		return Value{}, typeMismatch("operator %s requires numbers, got %s and %s",
			opString(op), lhs.Kind(), rhs.Kind())
	}
	//
	n, ok := broadcastLength(lhs, rhs)
	if !ok {
		return Value{}, typeMismatch("operator %s applied to vectors of length %d and %d",
			opString(op), lhs.Len(), rhs.Len())
	}
	//
	bits := make([]bool, n)
	//
	for i := range bits {
		x, y := lhs.floatAt(i), rhs.floatAt(i)
		//
		switch op {
		case LESSTHAN:
			bits[i] = x < y
		case LESSTHAN_EQUALS:
			bits[i] = x <= y
		case GREATERTHAN:
			bits[i] = x > y
		default:
			bits[i] = x >= y
		}
	}
	//
	if lhs.IsScalar() && rhs.IsScalar() {
		return BoolScalar(bits[0]), nil
	}
	//
	return BoolVector(bits), nil
}

func evalArithmetic(op uint, lhs Value, rhs Value) (Value, error) {
	if lhs.Kind() != FLOATS || rhs.Kind() != FLOATS {
		return Value{}, typeMismatch("operator %s requires numbers, got %s and %s",
			opString(op), lhs.Kind(), rhs.Kind())
	}
	//
	n, ok := broadcastLength(lhs, rhs)
	if !ok {
		return Value{}, typeMismatch("operator %s applied to vectors of length %d and %d",
			opString(op), lhs.Len(), rhs.Len())
	}
	//
	data := make([]float64, n)
	//
	for i := range data {
		x, y := lhs.floatAt(i), rhs.floatAt(i)
		//
		switch op {
		case ADD:
			data[i] = x + y
		case SUB:
			data[i] = x - y
		case MUL:
			data[i] = x * y
		case DIV:
			// IEEE semantics, hence Inf/NaN rather than an error
			data[i] = x / y
		case POW:
			data[i] = math.Pow(x, y)
		default:
			return Value{}, typeMismatch("unknown operator")
		}
	}
	//
	if lhs.IsScalar() && rhs.IsScalar() {
		return FloatScalar(data[0]), nil
	}
	//
	return FloatVector(data), nil
}
