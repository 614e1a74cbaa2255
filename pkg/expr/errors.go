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

import "fmt"

// UnknownColumnError signals that an identifier matched neither a catalog
// column nor a previously declared mask.
type UnknownColumnError struct {
	// Name of the offending identifier.
	Name string
}

// Error implements the error interface.
func (p *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown column %q", p.Name)
}

// MissingMaskError signals a brace reference to a mask which has not (yet)
// been declared.
type MissingMaskError struct {
	// Name of the missing mask.
	Name string
}

// Error implements the error interface.
func (p *MissingMaskError) Error() string {
	return fmt.Sprintf("unknown mask %q", p.Name)
}

// TypeMismatchError signals an operation applied to values of unsuitable kind
// or shape (for example, arithmetic on strings, or elementwise combination of
// vectors with different lengths).
type TypeMismatchError struct {
	// Msg describes the mismatch.
	Msg string
}

// Error implements the error interface.
func (p *TypeMismatchError) Error() string {
	return p.Msg
}

// typeMismatch constructs a TypeMismatchError from a format string.
func typeMismatch(format string, args ...any) error {
	return &TypeMismatchError{fmt.Sprintf(format, args...)}
}
