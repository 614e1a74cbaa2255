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

// Package output persists the products of a selection run beneath an output
// root, one subdirectory per task family (mask, plot, new_cat, rand_split,
// flag_split, stat).  Directories are created lazily for families with at
// least one section, and file names carry the run number of the source
// catalog.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	log "github.com/sirupsen/logrus"

	"github.com/setools/go-setools/pkg/catalog/fits"
	"github.com/setools/go-setools/pkg/engine"
)

// numberPattern matches the run number embedded in catalog file names: a
// three digit group and a further numeric group, separated by dashes.
var numberPattern = regexp.MustCompile(`-(\d{3})-(\d+)\.`)

// RunNumber extracts the run suffix from a catalog file name, such that
// products of "star_cat-012-3.fits" carry the suffix "-012-3".  File names
// outside the convention yield an empty suffix.
func RunNumber(filename string) string {
	m := numberPattern.FindStringSubmatch(filename)
	//
	if m == nil {
		log.Warnf("no run number in %q, writing products without one", filename)
		return ""
	}
	//
	return fmt.Sprintf("-%s-%s", m[1], m[2])
}

// Writer persists run products.  The source catalog provides the rows (and
// LDAC provenance) behind mask and split products.
type Writer struct {
	// Root output directory.
	root string
	// Num is the run suffix appended to every product file name.
	num string
	// Src is the source catalog the products derive from.
	src *fits.File
}

// NewWriter constructs a writer rooted at the given directory.
func NewWriter(root string, num string, src *fits.File) *Writer {
	return &Writer{root, num, src}
}

// WriteAll persists every product of a run, in family order.  Families
// without products are skipped entirely; a family with sections has its
// directory created even when nothing in it is persisted (e.g. every mask
// marked NO_SAVE).  The first failure aborts, leaving earlier files in
// place.
func (p *Writer) WriteAll(result *engine.Result) error {
	if result.Masks != nil {
		if _, err := p.familyDir("mask"); err != nil {
			return err
		}
		//
		for _, mask := range result.Masks.Masks() {
			if mask.NoSave {
				continue
			}
			//
			if err := p.WriteMask(mask); err != nil {
				return err
			}
		}
	}
	//
	for _, spec := range result.Plots {
		if err := p.WritePlot(spec); err != nil {
			return err
		}
	}
	//
	for _, derived := range result.NewCats {
		if err := p.WriteNewCat(derived); err != nil {
			return err
		}
	}
	//
	for _, split := range result.RandSplits {
		if err := p.WriteRandSplit(split); err != nil {
			return err
		}
	}
	//
	for _, split := range result.FlagSplits {
		if err := p.WriteFlagSplit(split); err != nil {
			return err
		}
	}
	//
	for _, group := range result.Stats {
		if err := p.WriteStats(group); err != nil {
			return err
		}
	}
	//
	return nil
}

// familyDir ensures the subdirectory of one task family exists.
func (p *Writer) familyDir(family string) (string, error) {
	if p.root == "" {
		return "", fmt.Errorf("output path not provided")
	}
	//
	dir := filepath.Join(p.root, family)
	//
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	//
	return dir, nil
}

// source returns the source catalog, failing when the writer has none.
func (p *Writer) source() (*fits.File, error) {
	if p.src == nil || p.src.Catalog == nil {
		return nil, fmt.Errorf("source catalog not provided")
	}
	//
	return p.src, nil
}
