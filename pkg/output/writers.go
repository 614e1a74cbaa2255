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
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/setools/go-setools/pkg/catalog"
	"github.com/setools/go-setools/pkg/catalog/ascii"
	"github.com/setools/go-setools/pkg/catalog/fits"
	"github.com/setools/go-setools/pkg/engine"
	"github.com/setools/go-setools/pkg/expr"
)

// WriteMask persists the source rows selected by a mask as an LDAC catalog
// (mask/<name><num>.fits).
func (p *Writer) WriteMask(mask *engine.Mask) error {
	if mask == nil {
		return fmt.Errorf("mask not provided")
	}
	//
	src, err := p.source()
	if err != nil {
		return err
	}
	//
	dir, err := p.familyDir("mask")
	if err != nil {
		return err
	}
	//
	sub, err := src.Catalog.SelectMask(mask.Bits)
	if err != nil {
		return err
	}
	//
	filename := filepath.Join(dir, mask.Name+p.num+".fits")
	//
	if err := fits.WriteFile(filename, &fits.File{Catalog: sub, Imhead: src.Imhead}); err != nil {
		return err
	}
	//
	log.Debugf("wrote %s (%d rows)", filename, sub.Height())
	//
	return nil
}

// WritePlot persists a plot specification for the renderer as JSON
// (plot/<name><num>.json).
func (p *Writer) WritePlot(spec *engine.PlotSpec) error {
	if spec == nil {
		return fmt.Errorf("plot not provided")
	}
	//
	dir, err := p.familyDir("plot")
	if err != nil {
		return err
	}
	//
	doc := struct {
		Name   string                       `json:"name"`
		Params map[string]map[string]string `json:"params"`
	}{spec.Name, spec.Params}
	//
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	//
	data = append(data, '\n')
	filename := filepath.Join(dir, spec.Name+p.num+".json")
	//
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}
	//
	log.Debugf("wrote %s", filename)
	//
	return nil
}

// WriteNewCat persists a derived catalog in its declared format
// (new_cat/<name><num>.fits or .txt).
func (p *Writer) WriteNewCat(derived *engine.DerivedCatalog) error {
	if derived == nil {
		return fmt.Errorf("new catalog not provided")
	}
	//
	dir, err := p.familyDir("new_cat")
	if err != nil {
		return err
	}
	//
	var filename string
	//
	switch derived.Format {
	case "fits", "SEx_cat":
		cat, err := derivedCatalog(derived)
		if err != nil {
			return err
		}
		//
		file := &fits.File{Catalog: cat}
		// SExtractor style catalogs carry the source provenance
		if derived.Format == "SEx_cat" {
			src, err := p.source()
			if err != nil {
				return err
			}
			//
			file.Imhead = src.Imhead
		}
		//
		filename = filepath.Join(dir, derived.Name+p.num+".fits")
		//
		if err := fits.WriteFile(filename, file); err != nil {
			return err
		}
	case "ascii", "txt":
		filename = filepath.Join(dir, derived.Name+p.num+".txt")
		//
		if err := ascii.WriteFile(filename, derivedTable(derived)); err != nil {
			return err
		}
	default:
		return &engine.UnsupportedFormatError{Section: derived.Name, Format: derived.Format}
	}
	//
	log.Debugf("wrote %s", filename)
	//
	return nil
}

// WriteRandSplit persists the two complementary subsets of a random split
// (rand_split/<name>_<label><num>.fits each).
func (p *Writer) WriteRandSplit(split *engine.RandSplit) error {
	if split == nil || split.Pool == nil {
		return fmt.Errorf("random split not provided")
	}
	//
	src, err := p.source()
	if err != nil {
		return err
	}
	//
	dir, err := p.familyDir("rand_split")
	if err != nil {
		return err
	}
	//
	pool, err := src.Catalog.SelectMask(split.Pool.Bits)
	if err != nil {
		return err
	}
	//
	parts := []struct {
		label string
		rows  []int
	}{
		{split.KeepLabel, split.Keep},
		{split.DropLabel, split.Drop},
	}
	//
	for _, part := range parts {
		var (
			sub      = pool.Select(part.rows)
			filename = filepath.Join(dir, split.Name+"_"+part.label+p.num+".fits")
		)
		//
		if err := fits.WriteFile(filename, &fits.File{Catalog: sub, Imhead: src.Imhead}); err != nil {
			return err
		}
		//
		log.Debugf("wrote %s (%d rows)", filename, sub.Height())
	}
	//
	return nil
}

// WriteFlagSplit persists one catalog per distinct value of a flag split
// (flag_split/<name>_<label><num>.fits each).
func (p *Writer) WriteFlagSplit(split *engine.FlagSplit) error {
	if split == nil {
		return fmt.Errorf("flag split not provided")
	}
	//
	src, err := p.source()
	if err != nil {
		return err
	}
	//
	dir, err := p.familyDir("flag_split")
	if err != nil {
		return err
	}
	//
	for _, part := range split.Parts {
		var (
			sub      = src.Catalog.Select(part.Rows)
			filename = filepath.Join(dir, split.Name+"_"+part.Label+p.num+".fits")
		)
		//
		if err := fits.WriteFile(filename, &fits.File{Catalog: sub, Imhead: src.Imhead}); err != nil {
			return err
		}
		//
		log.Debugf("wrote %s (%d rows)", filename, sub.Height())
	}
	//
	return nil
}

// WriteStats persists the results of one STAT section as key = value lines
// (stat/<name><num>.txt).
func (p *Writer) WriteStats(group *engine.StatGroup) error {
	if group == nil {
		return fmt.Errorf("statistics not provided")
	}
	//
	dir, err := p.familyDir("stat")
	if err != nil {
		return err
	}
	//
	var builder strings.Builder
	//
	builder.WriteString("# Statistics\n")
	//
	for _, key := range group.Keys {
		builder.WriteString(fmt.Sprintf("%s = %s\n", key, group.Values[key].String()))
	}
	//
	filename := filepath.Join(dir, group.Name+p.num+".txt")
	//
	if err := os.WriteFile(filename, []byte(builder.String()), 0644); err != nil {
		return err
	}
	//
	log.Debugf("wrote %s", filename)
	//
	return nil
}

// derivedCatalog converts the expression results of a derived catalog into
// storable columns.  FITS tables cannot hold ragged columns, hence mixing
// aggregates with full length columns fails here.
func derivedCatalog(derived *engine.DerivedCatalog) (*catalog.Catalog, error) {
	columns := make([]*catalog.Column, len(derived.Keys))
	//
	for i, key := range derived.Keys {
		columns[i] = valueColumn(key, derived.Columns[key])
	}
	//
	cat, err := catalog.New(columns...)
	if err != nil {
		return nil, fmt.Errorf("new catalog %q: %w", derived.Name, err)
	}
	//
	return cat, nil
}

// valueColumn converts one expression result to a column.  Booleans become
// logical storage; numbers and strings carry defaulted forms.
func valueColumn(name string, value expr.Value) *catalog.Column {
	switch value.Kind() {
	case expr.BOOLS:
		floats := make([]float64, value.Len())
		//
		for i, b := range value.Bools() {
			if b {
				floats[i] = 1
			}
		}
		//
		return catalog.NewFloatColumn(name, "1L", floats)
	case expr.STRINGS:
		return catalog.NewStringColumn(name, "", value.Strings())
	default:
		return catalog.NewFloatColumn(name, "", value.Floats())
	}
}

// derivedTable converts the expression results of a derived catalog into
// textual cells.  Unlike FITS output, ragged columns are permitted and pad
// with empty cells.
func derivedTable(derived *engine.DerivedCatalog) *ascii.Table {
	table := &ascii.Table{
		Keys:    derived.Keys,
		Columns: make([][]string, len(derived.Keys)),
	}
	//
	for i, key := range derived.Keys {
		table.Columns[i] = valueCells(derived.Columns[key])
	}
	//
	return table
}

// valueCells renders every element of an expression result.
func valueCells(value expr.Value) []string {
	cells := make([]string, value.Len())
	//
	for i := range cells {
		switch value.Kind() {
		case expr.BOOLS:
			cells[i] = strconv.FormatBool(value.Bools()[i])
		case expr.STRINGS:
			cells[i] = value.Strings()[i]
		default:
			cells[i] = expr.FormatFloat(value.Floats()[i])
		}
	}
	//
	return cells
}
