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
	log "github.com/sirupsen/logrus"

	"github.com/setools/go-setools/pkg/catalog"
	"github.com/setools/go-setools/pkg/expr"
)

// FormatKey is the directive naming the output format of a new catalog.
const FormatKey = "OUTPUT_FORMAT"

// supportedFormats lists the formats a new catalog may be written in.
var supportedFormats = []string{"fits", "SEx_cat", "ascii", "txt"}

// DerivedCatalog is a new tabular product: named expression results, keyed in
// declaration order, plus the format they are to be written in.
type DerivedCatalog struct {
	Name string
	// Format is one of fits, SEx_cat, ascii or txt.
	Format string
	// Keys in declaration order (excluding OUTPUT_FORMAT).
	Keys []string
	// Columns maps each key to its evaluated value.
	Columns map[string]expr.Value
}

// BuildNewCats evaluates every NEW_CAT section of the configuration.  Each
// line is either the OUTPUT_FORMAT directive (required) or a key=expression
// column definition evaluated in value mode.
func BuildNewCats(cat *catalog.Catalog, config *Config, masks *MaskSet) ([]*DerivedCatalog, error) {
	var (
		cats []*DerivedCatalog
		ctx  = evalContext{cat, masks}
	)
	//
	for _, section := range config.Sections(NEW_CAT) {
		derived := &DerivedCatalog{
			Name:    section.Name,
			Columns: make(map[string]expr.Value),
		}
		//
		for _, line := range section.Lines {
			key, text, err := splitDirective(section, line)
			if err != nil {
				return nil, err
			}
			//
			if key == FormatKey {
				derived.Format = text
				continue
			}
			//
			value, err := evalLine(section, line, text, ctx)
			if err != nil {
				return nil, err
			}
			// Redefinition replaces the value but keeps the position
			if _, ok := derived.Columns[key]; !ok {
				derived.Keys = append(derived.Keys, key)
			}
			//
			derived.Columns[key] = value
		}
		//
		if derived.Format == "" {
			return nil, &MissingParameterError{section.Name, FormatKey}
		}
		//
		if !supportedFormat(derived.Format) {
			return nil, &UnsupportedFormatError{section.Name, derived.Format}
		}
		//
		cats = append(cats, derived)
		//
		log.Debugf("new catalog %q holds %d columns (%s)", derived.Name, len(derived.Keys), derived.Format)
	}
	//
	return cats, nil
}

func supportedFormat(format string) bool {
	for _, f := range supportedFormats {
		if f == format {
			return true
		}
	}
	//
	return false
}

// evalLine parses and evaluates the expression part of a key=expression line
// in value mode.
func evalLine(section *Section, line Line, text string, ctx evalContext) (expr.Value, error) {
	e, errs := expr.Parse(text)
	//
	if len(errs) != 0 {
		return expr.Value{}, configError(section, line.Text, "%s", errs[0].Message())
	}
	//
	value, err := e.Eval(ctx)
	if err != nil {
		return expr.Value{}, lineError(section, line, err)
	}
	//
	return value, nil
}
