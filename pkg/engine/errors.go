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

import (
	"fmt"
)

// ConfigError signals a malformed directive or constraint line within an
// otherwise well formed section.
type ConfigError struct {
	// Section holding the offending line.
	Section string
	// Line is the offending (cleaned) line.
	Line string
	// Msg describes the problem.
	Msg string
}

// Error implements the error interface.
func (p *ConfigError) Error() string {
	if p.Line == "" {
		return fmt.Sprintf("section %q: %s", p.Section, p.Msg)
	}
	//
	return fmt.Sprintf("section %q: %q: %s", p.Section, p.Line, p.Msg)
}

// configError constructs a ConfigError from a format string.
func configError(section *Section, line string, format string, args ...any) error {
	return &ConfigError{section.Name, line, fmt.Sprintf(format, args...)}
}

// MissingParameterError signals a section which lacks one of its required
// directives (for example OUTPUT_FORMAT, PARAM_NAME or RATIO).
type MissingParameterError struct {
	// Section lacking the parameter.
	Section string
	// Param names the missing directive.
	Param string
}

// Error implements the error interface.
func (p *MissingParameterError) Error() string {
	return fmt.Sprintf("section %q: %s not provided", p.Section, p.Param)
}

// UnsupportedFormatError signals an OUTPUT_FORMAT value outside the supported
// set.
type UnsupportedFormatError struct {
	// Section declaring the format.
	Section string
	// Format is the unsupported value.
	Format string
}

// Error implements the error interface.
func (p *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("section %q: unsupported output format %q (expected fits, SEx_cat, ascii or txt)",
		p.Section, p.Format)
}

// lineError attaches section and line context to an evaluation error, keeping
// the underlying error available for unwrapping.
func lineError(section *Section, line Line, err error) error {
	return fmt.Errorf("section %q: %q: %w", section.Name, line.Text, err)
}
