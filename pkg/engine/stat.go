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

// StatGroup holds the named results of one STAT section, keyed in declaration
// order.  Values are typically scalars (aggregates) but may be arrays.
type StatGroup struct {
	Name   string
	Keys   []string
	Values map[string]expr.Value
}

// BuildStats evaluates every STAT section of the configuration.  Each line is
// a key=expression pair evaluated in value mode against the catalog and the
// declared masks.
func BuildStats(cat *catalog.Catalog, config *Config, masks *MaskSet) ([]*StatGroup, error) {
	var (
		groups []*StatGroup
		ctx    = evalContext{cat, masks}
	)
	//
	for _, section := range config.Sections(STAT) {
		group := &StatGroup{
			Name:   section.Name,
			Values: make(map[string]expr.Value),
		}
		//
		for _, line := range section.Lines {
			key, text, err := splitDirective(section, line)
			if err != nil {
				return nil, err
			}
			//
			value, err := evalLine(section, line, text, ctx)
			if err != nil {
				return nil, err
			}
			//
			if _, ok := group.Values[key]; !ok {
				group.Keys = append(group.Keys, key)
			}
			//
			group.Values[key] = value
		}
		//
		groups = append(groups, group)
		//
		log.Debugf("statistics %q holds %d entries", group.Name, len(group.Keys))
	}
	//
	return groups, nil
}
