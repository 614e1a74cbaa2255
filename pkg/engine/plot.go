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
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/setools/go-setools/pkg/catalog"
	"github.com/setools/go-setools/pkg/expr"
)

// PlotSpec is the structured form of one PLOT section, handed to the
// rendering collaborator: PARAM_subkey=value lines become a nested parameter
// map, with bare PARAM=value lines landing under subkey "0".  Titles and
// labels have their @expression@ templates resolved before handoff.
type PlotSpec struct {
	Name string
	// Params maps parameter name to subkey to value.
	Params map[string]map[string]string
	// order of first appearance of each parameter.
	order []string
}

// ParamNames returns the parameter names in declaration order.
func (p *PlotSpec) ParamNames() []string {
	return p.order
}

// interpolated lists the parameters whose values are templates resolved by
// this engine rather than expressions evaluated by the renderer.
var interpolated = []string{"TITLE", "LABEL"}

// expressions lists the parameters whose values the renderer evaluates
// against the catalog.  They are validated on demand (see CheckPlots), not
// during building.
var expressions = []string{"X", "Y", "SCATTER"}

// BuildPlots parses every PLOT section into its structured specification and
// resolves title and label templates.
func BuildPlots(cat *catalog.Catalog, config *Config, masks *MaskSet) ([]*PlotSpec, error) {
	var (
		plots []*PlotSpec
		ctx   = evalContext{cat, masks}
	)
	//
	for _, section := range config.Sections(PLOT) {
		spec := &PlotSpec{
			Name:   section.Name,
			Params: make(map[string]map[string]string),
		}
		//
		for _, line := range section.Lines {
			key, value, err := splitDirective(section, line)
			if err != nil {
				return nil, err
			}
			//
			param, subkey := key, "0"
			// Split PARAM_subkey keys
			if i := strings.Index(key, "_"); i >= 0 {
				param, subkey = key[:i], key[i+1:]
				//
				if subkey == "" || strings.Contains(subkey, "_") {
					return nil, configError(section, line.Text, "malformed parameter %q", key)
				}
			}
			//
			if _, ok := spec.Params[param]; !ok {
				spec.Params[param] = make(map[string]string)
				spec.order = append(spec.order, param)
			}
			// Quotes only protect spaces and comment markers from cleaning;
			// the renderer never sees them.
			spec.Params[param][subkey] = unquote(value)
		}
		// Resolve templates the renderer never sees
		for _, param := range interpolated {
			for subkey, value := range spec.Params[param] {
				resolved, err := expr.Interpolate(value, ctx)
				if err != nil {
					return nil, configError(section, value, "%s", err.Error())
				}
				//
				spec.Params[param][subkey] = resolved
			}
		}
		//
		plots = append(plots, spec)
		//
		log.Debugf("plot %q holds %d parameters", spec.Name, len(spec.order))
	}
	//
	return plots, nil
}

// unquote strips one pair of surrounding double quotes, if present.
func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	//
	return value
}

// CheckPlots resolves every plot expression against the catalog, reporting
// the first failure.  Plot expressions are otherwise evaluated only by the
// renderer, hence this is used for validation runs.
func CheckPlots(cat *catalog.Catalog, masks *MaskSet, plots []*PlotSpec) error {
	ctx := evalContext{cat, masks}
	//
	for _, spec := range plots {
		for _, param := range expressions {
			for _, value := range spec.Params[param] {
				e, errs := expr.Parse(value)
				if len(errs) != 0 {
					return &ConfigError{spec.Name, value, errs[0].Message()}
				}
				//
				if _, err := e.Eval(ctx); err != nil {
					return &ConfigError{spec.Name, value, err.Error()}
				}
			}
		}
	}
	//
	return nil
}
