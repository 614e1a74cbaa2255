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
	"math"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/setools/go-setools/pkg/catalog"
	"github.com/setools/go-setools/pkg/expr"
)

// RandSplit partitions a pool of rows into two complementary subsets drawn
// uniformly at random.  The pool is the conjunction of the referenced masks,
// or every catalog row when no masks are named.  Keep and Drop hold indices
// relative to the pool (i.e. into the pool selected rows, in ascending
// order).
type RandSplit struct {
	Name string
	// Pool selects the rows being partitioned.
	Pool *Mask
	// KeepLabel and DropLabel key the two subsets (e.g. "ratio_30").
	KeepLabel string
	DropLabel string
	// Keep and Drop are disjoint pool relative index sets covering the pool.
	Keep []int
	Drop []int
}

// FlagPart is one partition of a flag split: the rows on which the column
// takes a given value.
type FlagPart struct {
	// Value is the textual form of the flag value.
	Value string
	// Label keys the partition (e.g. "flag_2").
	Label string
	// Rows holds catalog absolute row indices, ascending.
	Rows []int
}

// FlagSplit partitions catalog rows by the distinct values of a column.
// Every row on which the column is defined belongs to exactly one partition.
type FlagSplit struct {
	Name   string
	Column string
	Parts  []FlagPart
}

// BuildRandSplits evaluates every RAND_SPLIT section, drawing each subset
// without replacement from the given random source.
func BuildRandSplits(cat *catalog.Catalog, config *Config, masks *MaskSet, rng *rand.Rand) ([]*RandSplit, error) {
	var splits []*RandSplit
	//
	for _, section := range config.Sections(RAND_SPLIT) {
		split, err := buildRandSplit(cat, section, masks, rng)
		if err != nil {
			return nil, err
		}
		//
		splits = append(splits, split)
	}
	//
	return splits, nil
}

func buildRandSplit(cat *catalog.Catalog, section *Section, masks *MaskSet, rng *rand.Rand) (*RandSplit, error) {
	var (
		pool     = allTrue(cat.Height())
		ratio    float64
		hasRatio bool
	)
	//
	for _, line := range section.Lines {
		key, value, err := splitDirective(section, line)
		if err != nil {
			return nil, err
		}
		//
		switch key {
		case "RATIO":
			ratio, err = strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, configError(section, line.Text, "RATIO is not a number")
			}
			//
			hasRatio = true
		case "MASK":
			for _, name := range strings.Split(value, ",") {
				mask, ok := masks.Get(name)
				if !ok {
					return nil, lineError(section, line, &expr.MissingMaskError{Name: name})
				}
				//
				for i := range pool {
					pool[i] = pool[i] && mask.Bits[i]
				}
			}
		default:
			return nil, configError(section, line.Text, "unknown directive %q", key)
		}
	}
	//
	if !hasRatio {
		return nil, &MissingParameterError{section.Name, "RATIO"}
	}
	// Ratios of one or more are percentages
	if ratio >= 1 {
		ratio /= 100
	}
	//
	if ratio <= 0 || ratio > 1 {
		return nil, configError(section, "", "RATIO %v lies outside (0,1]", ratio)
	}
	// Draw without replacement from the pool
	var (
		mask  = &Mask{Name: section.Name, Bits: pool}
		size  = mask.Count()
		nKeep = int(math.Ceil(float64(size) * ratio))
		perm  = rng.Perm(size)
		keep  = slices.Sorted(slices.Values(perm[:nKeep]))
		drop  = slices.Sorted(slices.Values(perm[nKeep:]))
	)
	//
	keepLabel, dropLabel := splitLabels(ratio)
	//
	log.Debugf("random split %q keeps %d of %d pool rows", section.Name, nKeep, size)
	//
	return &RandSplit{section.Name, mask, keepLabel, dropLabel, keep, drop}, nil
}

// splitLabels determines the keys of the two complementary subsets.  An even
// split would give both the same percentage label, hence that case is
// disambiguated explicitly.
func splitLabels(ratio float64) (string, string) {
	pct := int(ratio * 100)
	//
	if pct == 100-pct {
		return fmt.Sprintf("ratio_%d_keep", pct), fmt.Sprintf("ratio_%d_drop", pct)
	}
	//
	return fmt.Sprintf("ratio_%d", pct), fmt.Sprintf("ratio_%d", 100-pct)
}

// BuildFlagSplits evaluates every FLAG_SPLIT section.
func BuildFlagSplits(cat *catalog.Catalog, config *Config) ([]*FlagSplit, error) {
	var splits []*FlagSplit
	//
	for _, section := range config.Sections(FLAG_SPLIT) {
		split, err := buildFlagSplit(cat, section)
		if err != nil {
			return nil, err
		}
		//
		splits = append(splits, split)
	}
	//
	return splits, nil
}

func buildFlagSplit(cat *catalog.Catalog, section *Section) (*FlagSplit, error) {
	var param string
	//
	for _, line := range section.Lines {
		key, value, err := splitDirective(section, line)
		if err != nil {
			return nil, err
		}
		//
		if key != "PARAM_NAME" {
			return nil, configError(section, line.Text, "unknown directive %q", key)
		}
		//
		param = value
	}
	//
	if param == "" {
		return nil, &MissingParameterError{section.Name, "PARAM_NAME"}
	}
	//
	column, ok := cat.Column(param)
	if !ok {
		return nil, fmt.Errorf("section %q: %w", section.Name, &expr.UnknownColumnError{Name: param})
	}
	//
	if column.Width() != 1 {
		return nil, configError(section, "", "column %q holds %d values per row", param, column.Width())
	}
	//
	parts := flagParts(column)
	//
	log.Debugf("flag split %q partitions %q into %d parts", section.Name, param, len(parts))
	//
	return &FlagSplit{section.Name, param, parts}, nil
}

// flagParts groups the rows of a column by its distinct values, in ascending
// value order.  Rows where a numeric column is undefined (NaN) belong to no
// partition.
func flagParts(column *catalog.Column) []FlagPart {
	var (
		order []string
		rows  = make(map[string][]int)
	)
	//
	if column.IsString() {
		for i, v := range column.Strings() {
			if _, ok := rows[v]; !ok {
				order = append(order, v)
			}
			//
			rows[v] = append(rows[v], i)
		}
		//
		slices.Sort(order)
	} else {
		var values []float64
		//
		for i, v := range column.Floats() {
			if math.IsNaN(v) {
				continue
			}
			//
			key := expr.FormatFloat(v)
			if _, ok := rows[key]; !ok {
				values = append(values, v)
			}
			//
			rows[key] = append(rows[key], i)
		}
		//
		slices.Sort(values)
		//
		for _, v := range values {
			order = append(order, expr.FormatFloat(v))
		}
	}
	//
	parts := make([]FlagPart, len(order))
	//
	for i, value := range order {
		parts[i] = FlagPart{value, "flag_" + value, rows[value]}
	}
	//
	return parts
}

// splitDirective splits a key=value line on its first equals sign.
func splitDirective(section *Section, line Line) (string, string, error) {
	i := strings.Index(line.Text, "=")
	//
	if i <= 0 {
		return "", "", configError(section, line.Text, "not of the form key=value")
	}
	//
	return line.Text[:i], line.Text[i+1:], nil
}
