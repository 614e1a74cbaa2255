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
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/setools/go-setools/pkg/catalog"
	"github.com/setools/go-setools/pkg/catalog/ascii"
	"github.com/setools/go-setools/pkg/catalog/fits"
	"github.com/setools/go-setools/pkg/engine"
	"github.com/setools/go-setools/pkg/expr"
	"github.com/setools/go-setools/pkg/util/assert"
	"github.com/setools/go-setools/pkg/util/source"
)

func TestOutput_00(t *testing.T) {
	assert.Equal(t, "-012-3", RunNumber("star_cat-012-3.fits"))
	assert.Equal(t, "-123-45", RunNumber("image-123-45.fits.gz"))
	// names outside the convention carry no suffix
	assert.Equal(t, "", RunNumber("catalog.fits"))
	assert.Equal(t, "", RunNumber("cat-12-3.fits"))
}

func TestOutput_01(t *testing.T) {
	// a mask saves exactly its selected rows
	var (
		root   = t.TempDir()
		writer = NewWriter(root, "-001-2", testSource(t))
		bits   = make([]bool, 10)
	)
	// MAG < 20 holds on four rows
	for i, mag := range testMags {
		bits[i] = mag < 20
	}
	//
	assert.NoError(t, writer.WriteMask(&engine.Mask{Name: "bright", Bits: bits}))
	//
	back, err := fits.ReadFile(filepath.Join(root, "mask", "bright-001-2.fits"))
	assert.NoError(t, err)
	assert.Equal(t, 4, back.Catalog.Height())
	//
	mag, _ := back.Catalog.Column("MAG")
	assert.Equal(t, []float64{18, 19.5, 17, 19}, mag.Floats())
}

func TestOutput_02(t *testing.T) {
	// NO_SAVE masks evaluate but never persist; the family directory is
	// still created
	config := readConfig(t,
		"[MASK:faint]\n"+
			"MAG>20\n"+
			"NO_SAVE\n"+
			"[MASK:bright]\n"+
			"MAG<20\n")
	//
	src := testSource(t)
	//
	result, err := engine.Run(src.Catalog, config, engine.Options{})
	assert.NoError(t, err)
	//
	root := t.TempDir()
	assert.NoError(t, NewWriter(root, "-001-2", src).WriteAll(result))
	//
	_, err = os.Stat(filepath.Join(root, "mask", "bright-001-2.fits"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "mask", "faint-001-2.fits"))
	assert.Error(t, err)
}

func TestOutput_03(t *testing.T) {
	// both subsets of a random split persist, covering the pool
	var (
		root   = t.TempDir()
		writer = NewWriter(root, "-001-2", testSource(t))
		pool   = make([]bool, 10)
	)
	// nine row pool
	for i := range 9 {
		pool[i] = true
	}
	//
	split := &engine.RandSplit{
		Name:      "half",
		Pool:      &engine.Mask{Name: "half", Bits: pool},
		KeepLabel: "ratio_50_keep",
		DropLabel: "ratio_50_drop",
		Keep:      []int{0, 2, 4, 6, 8},
		Drop:      []int{1, 3, 5, 7},
	}
	assert.NoError(t, writer.WriteRandSplit(split))
	//
	keep, err := fits.ReadFile(filepath.Join(root, "rand_split", "half_ratio_50_keep-001-2.fits"))
	assert.NoError(t, err)
	drop, err := fits.ReadFile(filepath.Join(root, "rand_split", "half_ratio_50_drop-001-2.fits"))
	assert.NoError(t, err)
	//
	assert.Equal(t, 5, keep.Catalog.Height())
	assert.Equal(t, 4, drop.Catalog.Height())
	//
	keepMag, _ := keep.Catalog.Column("MAG")
	dropMag, _ := drop.Catalog.Column("MAG")
	assert.Equal(t, []float64{18, 19.5, 17, 19, 24}, keepMag.Floats())
	assert.Equal(t, []float64{22, 25, 21, 23}, dropMag.Floats())
}

func TestOutput_04(t *testing.T) {
	// one file per distinct flag value
	var (
		root   = t.TempDir()
		writer = NewWriter(root, "-001-2", testSource(t))
	)
	//
	split := &engine.FlagSplit{
		Name:   "byflag",
		Column: "FLAGS",
		Parts: []engine.FlagPart{
			{Value: "0", Label: "flag_0", Rows: []int{0, 7}},
			{Value: "1", Label: "flag_1", Rows: []int{1, 4, 8}},
			{Value: "2", Label: "flag_2", Rows: []int{2, 3, 5, 6, 9}},
		},
	}
	assert.NoError(t, writer.WriteFlagSplit(split))
	//
	sizes := []int{2, 3, 5}
	//
	for i, label := range []string{"flag_0", "flag_1", "flag_2"} {
		back, err := fits.ReadFile(filepath.Join(root, "flag_split", "byflag_"+label+"-001-2.fits"))
		assert.NoError(t, err)
		assert.Equal(t, sizes[i], back.Catalog.Height())
	}
}

func TestOutput_05(t *testing.T) {
	// derived catalogs persist in their declared format
	var (
		root   = t.TempDir()
		writer = NewWriter(root, "-001-2", testSource(t))
	)
	//
	derived := &engine.DerivedCatalog{
		Name:   "stars",
		Format: "fits",
		Keys:   []string{"mag", "star", "field"},
		Columns: map[string]expr.Value{
			"mag":   expr.FloatVector([]float64{20.5, 19.25}),
			"star":  expr.BoolVector([]bool{true, false}),
			"field": expr.StringVector([]string{"W3", "W1"}),
		},
	}
	assert.NoError(t, writer.WriteNewCat(derived))
	//
	back, err := fits.ReadFile(filepath.Join(root, "new_cat", "stars-001-2.fits"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"mag", "star", "field"}, back.Catalog.Names())
	//
	star, _ := back.Catalog.Column("star")
	assert.Equal(t, "1L", star.Form())
	assert.Equal(t, []float64{1, 0}, star.Floats())
}

func TestOutput_06(t *testing.T) {
	// ascii output pads ragged columns, fits output rejects them
	var (
		root   = t.TempDir()
		writer = NewWriter(root, "", testSource(t))
	)
	//
	derived := &engine.DerivedCatalog{
		Name:   "summary",
		Format: "ascii",
		Keys:   []string{"mean", "mag"},
		Columns: map[string]expr.Value{
			"mean": expr.FloatScalar(20.5),
			"mag":  expr.FloatVector([]float64{18, 22, 19.5}),
		},
	}
	assert.NoError(t, writer.WriteNewCat(derived))
	//
	table, err := ascii.ReadFile(filepath.Join(root, "new_cat", "summary.txt"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"mean", "mag"}, table.Keys)
	assert.Equal(t, 3, table.Height())
	assert.Equal(t, []string{"20.5", "", ""}, table.Columns[0])
	// the same ragged product cannot be a fits table
	derived.Format = "fits"
	assert.Error(t, writer.WriteNewCat(derived))
}

func TestOutput_07(t *testing.T) {
	var (
		root   = t.TempDir()
		writer = NewWriter(root, "-001-2", nil)
	)
	//
	group := &engine.StatGroup{
		Name: "stat_1",
		Keys: []string{"MEAN_MAG", "NB"},
		Values: map[string]expr.Value{
			"MEAN_MAG": expr.FloatScalar(20.55),
			"NB":       expr.FloatScalar(4),
		},
	}
	assert.NoError(t, writer.WriteStats(group))
	//
	data, err := os.ReadFile(filepath.Join(root, "stat", "stat_1-001-2.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "# Statistics\nMEAN_MAG = 20.55\nNB = 4\n", string(data))
}

func TestOutput_08(t *testing.T) {
	var (
		root   = t.TempDir()
		writer = NewWriter(root, "-001-2", nil)
	)
	//
	spec := &engine.PlotSpec{
		Name: "size_mag",
		Params: map[string]map[string]string{
			"X":     {"0": "FWHM_IMAGE"},
			"Y":     {"0": "MAG"},
			"TITLE": {"0": "mean=20.55"},
		},
	}
	assert.NoError(t, writer.WritePlot(spec))
	//
	data, err := os.ReadFile(filepath.Join(root, "plot", "size_mag-001-2.json"))
	assert.NoError(t, err)
	//
	var doc struct {
		Name   string                       `json:"name"`
		Params map[string]map[string]string `json:"params"`
	}
	assert.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "size_mag", doc.Name)
	assert.Equal(t, spec.Params, doc.Params)
}

func TestOutput_09(t *testing.T) {
	// writers fail fast on missing arguments
	writer := NewWriter(t.TempDir(), "-001-2", testSource(t))
	assert.Error(t, writer.WriteMask(nil))
	assert.Error(t, writer.WriteRandSplit(nil))
	assert.Error(t, writer.WriteFlagSplit(nil))
	assert.Error(t, writer.WriteNewCat(nil))
	assert.Error(t, writer.WriteStats(nil))
	assert.Error(t, writer.WritePlot(nil))
	// no output root
	rootless := NewWriter("", "-001-2", testSource(t))
	assert.Error(t, rootless.WriteMask(&engine.Mask{Name: "m", Bits: make([]bool, 10)}))
	// no source catalog
	srcless := NewWriter(t.TempDir(), "-001-2", nil)
	assert.Error(t, srcless.WriteMask(&engine.Mask{Name: "m", Bits: make([]bool, 10)}))
}

func TestOutput_10(t *testing.T) {
	// a full run writes one directory per active family
	config := readConfig(t,
		"[MASK:bright]\n"+
			"MAG < 20\n"+
			"[STAT:stat_mag]\n"+
			"MEAN_MAG = mean(MAG)\n"+
			"[RAND_SPLIT:half]\n"+
			"RATIO = 50\n"+
			"[FLAG_SPLIT]\n"+
			"PARAM_NAME = FLAGS\n")
	//
	src := testSource(t)
	//
	result, err := engine.Run(src.Catalog, config, engine.Options{Rand: rand.New(rand.NewPCG(1, 2))})
	assert.NoError(t, err)
	//
	root := t.TempDir()
	assert.NoError(t, NewWriter(root, "-001-2", src).WriteAll(result))
	//
	for _, family := range []string{"mask", "stat", "rand_split", "flag_split"} {
		info, err := os.Stat(filepath.Join(root, family))
		assert.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	// inactive families stay absent
	_, err = os.Stat(filepath.Join(root, "plot"))
	assert.Error(t, err)
	_, err = os.Stat(filepath.Join(root, "new_cat"))
	assert.Error(t, err)
}

// ==================================================================
// Framework
// ==================================================================

// testMags drives the selection fixtures; four values lie below 20.
var testMags = []float64{18, 22, 19.5, 25, 17, 21, 19, 23, 24, 26}

// testSource builds the ten row source catalog the writers select from.
func testSource(t *testing.T) *fits.File {
	t.Helper()
	//
	cat, err := catalog.New(
		catalog.NewFloatColumn("MAG", "1E", testMags),
		catalog.NewFloatColumn("FLAGS", "1I", []float64{0, 1, 2, 2, 1, 2, 2, 0, 1, 2}),
		catalog.NewStringColumn("FIELD", "4A", []string{
			"W1", "W1", "W2", "W2", "W3", "W3", "W3", "W4", "W4", "W4",
		}),
	)
	assert.NoError(t, err)
	//
	return &fits.File{Catalog: cat}
}

// readConfig parses a configuration, failing the test on syntax errors.
func readConfig(t *testing.T, text string) *engine.Config {
	t.Helper()
	//
	config, errs := engine.ReadConfig(source.NewSourceFile("test.setools", []byte(text)))
	//
	if len(errs) != 0 {
		t.Fatalf("unexpected syntax error: %s", errs[0].Message())
	}
	//
	return config
}
