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
	"math/rand/v2"

	"github.com/setools/go-setools/pkg/catalog"
)

// Options configures a run of the engine.
type Options struct {
	// Rand drives random splits.  A fixed seed makes them reproducible.
	Rand *rand.Rand
}

// Result holds every product of one run, one container per task family.
// Families without a section in the configuration are left nil.
type Result struct {
	Masks      *MaskSet
	Plots      []*PlotSpec
	NewCats    []*DerivedCatalog
	RandSplits []*RandSplit
	FlagSplits []*FlagSplit
	Stats      []*StatGroup
}

// Run evaluates a parsed configuration against a catalog, building every
// product in family order: masks first (later families may reference them by
// name), then plots, new catalogs, random splits, flag splits and statistics.
// Sections within a family are processed in declaration order.  The first
// error aborts the run.
func Run(cat *catalog.Catalog, config *Config, opts Options) (*Result, error) {
	var (
		result Result
		err    error
	)
	//
	masks, err := BuildMasks(cat, config)
	if err != nil {
		return nil, err
	}
	//
	if config.Count(MASK) != 0 {
		result.Masks = masks
	}
	//
	if result.Plots, err = BuildPlots(cat, config, masks); err != nil {
		return nil, err
	}
	//
	if result.NewCats, err = BuildNewCats(cat, config, masks); err != nil {
		return nil, err
	}
	//
	if result.RandSplits, err = BuildRandSplits(cat, config, masks, rng(opts)); err != nil {
		return nil, err
	}
	//
	if result.FlagSplits, err = BuildFlagSplits(cat, config); err != nil {
		return nil, err
	}
	//
	if result.Stats, err = BuildStats(cat, config, masks); err != nil {
		return nil, err
	}
	//
	return &result, nil
}

// rng returns the configured random source, or a freshly seeded one.
func rng(opts Options) *rand.Rand {
	if opts.Rand != nil {
		return opts.Rand
	}
	//
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
