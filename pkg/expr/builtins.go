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
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// builtins maps every known function name to its implementation.  Aggregates
// reduce a vector to a scalar; the remainder apply elementwise.
var builtins = map[string]func(args []Value) (Value, error){
	"mean":   builtinMean,
	"median": builtinMedian,
	"std":    builtinStd,
	"var":    builtinVar,
	"sum":    builtinSum,
	"min":    builtinMin,
	"max":    builtinMax,
	"len":    builtinLen,
	"mode":   builtinMode,
	"abs":    elementwise("abs", math.Abs),
	"sqrt":   elementwise("sqrt", math.Sqrt),
	"log":    elementwise("log", math.Log),
	"log10":  elementwise("log10", math.Log10),
	"exp":    elementwise("exp", math.Exp),
}

// isBuiltin checks whether a given function name is known.
func isBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

// applyBuiltin applies the named builtin to the given arguments.
func applyBuiltin(name string, args []Value) (Value, error) {
	fn, ok := builtins[name]
	//
	if !ok {
		return Value{}, typeMismatch("unknown function %q", name)
	}
	//
	return fn(args)
}

// numericArg extracts the single numeric argument expected by most builtins.
func numericArg(name string, args []Value) ([]float64, error) {
	if len(args) != 1 {
		return nil, typeMismatch("%s expects one argument, got %d", name, len(args))
	}
	//
	if args[0].Kind() != FLOATS {
		return nil, typeMismatch("%s requires a number, got %s", name, args[0].Kind())
	}
	//
	return args[0].Floats(), nil
}

func builtinMean(args []Value) (Value, error) {
	xs, err := numericArg("mean", args)
	if err != nil {
		return Value{}, err
	}
	//
	return FloatScalar(stat.Mean(xs, nil)), nil
}

// builtinMedian averages the two central values for even lengths.
func builtinMedian(args []Value) (Value, error) {
	xs, err := numericArg("median", args)
	if err != nil {
		return Value{}, err
	}
	//
	if len(xs) == 0 {
		return FloatScalar(math.NaN()), nil
	}
	//
	sorted := sortedCopy(xs)
	n := len(sorted)
	//
	if n%2 == 1 {
		return FloatScalar(sorted[n/2]), nil
	}
	//
	return FloatScalar((sorted[n/2-1] + sorted[n/2]) / 2), nil
}

// builtinStd computes the population standard deviation, as the original
// pipeline did.
func builtinStd(args []Value) (Value, error) {
	variance, err := builtinVar(args)
	if err != nil {
		return Value{}, err
	}
	//
	return FloatScalar(math.Sqrt(variance.Floats()[0])), nil
}

// builtinVar computes the population variance (the second moment about the
// mean).
func builtinVar(args []Value) (Value, error) {
	xs, err := numericArg("var", args)
	if err != nil {
		return Value{}, err
	}
	//
	if len(xs) == 0 {
		return FloatScalar(math.NaN()), nil
	}
	//
	mean := stat.Mean(xs, nil)
	//
	return FloatScalar(stat.MomentAbout(2, xs, mean, nil)), nil
}

func builtinSum(args []Value) (Value, error) {
	xs, err := numericArg("sum", args)
	if err != nil {
		return Value{}, err
	}
	//
	return FloatScalar(floats.Sum(xs)), nil
}

func builtinMin(args []Value) (Value, error) {
	xs, err := numericArg("min", args)
	if err != nil {
		return Value{}, err
	}
	//
	if len(xs) == 0 {
		return FloatScalar(math.NaN()), nil
	}
	//
	return FloatScalar(floats.Min(xs)), nil
}

func builtinMax(args []Value) (Value, error) {
	xs, err := numericArg("max", args)
	if err != nil {
		return Value{}, err
	}
	//
	if len(xs) == 0 {
		return FloatScalar(math.NaN()), nil
	}
	//
	return FloatScalar(floats.Max(xs)), nil
}

// builtinLen reports the element count of any vector (or scalar) value.
func builtinLen(args []Value) (Value, error) {
	if len(args) != 1 {
		return Value{}, typeMismatch("len expects one argument, got %d", len(args))
	}
	//
	return FloatScalar(float64(args[0].Len())), nil
}

// builtinMode reports the most common value.
func builtinMode(args []Value) (Value, error) {
	xs, err := numericArg("mode", args)
	if err != nil {
		return Value{}, err
	}
	//
	if len(xs) == 0 {
		return FloatScalar(math.NaN()), nil
	}
	// Mode requires sorted input
	mode, _ := stat.Mode(sortedCopy(xs), nil)
	//
	return FloatScalar(mode), nil
}

// elementwise lifts a pointwise function over vectors, preserving shape.
func elementwise(name string, fn func(float64) float64) func(args []Value) (Value, error) {
	return func(args []Value) (Value, error) {
		xs, err := numericArg(name, args)
		if err != nil {
			return Value{}, err
		}
		//
		data := make([]float64, len(xs))
		//
		for i, x := range xs {
			data[i] = fn(x)
		}
		//
		if args[0].IsScalar() {
			return FloatScalar(data[0]), nil
		}
		//
		return FloatVector(data), nil
	}
}

func sortedCopy(xs []float64) []float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	//
	return sorted
}
