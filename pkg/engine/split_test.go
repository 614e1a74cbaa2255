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
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/setools/go-setools/pkg/catalog"
	"github.com/setools/go-setools/pkg/expr"
	"github.com/setools/go-setools/pkg/util/assert"
)

func TestRandSplit_00(t *testing.T) {
	// an even split is disambiguated by suffix
	split := checkRun(t, "[RAND_SPLIT:half]\nRATIO=50\n").RandSplits[0]
	//
	assert.Equal(t, "half", split.Name)
	assert.Equal(t, "ratio_50_keep", split.KeepLabel)
	assert.Equal(t, "ratio_50_drop", split.DropLabel)
	assert.Equal(t, 5, len(split.Keep))
	assert.Equal(t, 5, len(split.Drop))
	//
	checkPartition(t, split)
}

func TestRandSplit_01(t *testing.T) {
	// the keep count rounds up
	split := checkRun(t, "[RAND_SPLIT:train]\nRATIO=30\n").RandSplits[0]
	//
	assert.Equal(t, "ratio_30", split.KeepLabel)
	assert.Equal(t, "ratio_70", split.DropLabel)
	assert.Equal(t, 3, len(split.Keep))
	assert.Equal(t, 7, len(split.Drop))
	//
	checkPartition(t, split)
}

func TestRandSplit_02(t *testing.T) {
	// fractional ratios mean the same as percentages
	split := checkRun(t, "[RAND_SPLIT:train]\nRATIO=0.3\n").RandSplits[0]
	//
	assert.Equal(t, "ratio_30", split.KeepLabel)
	assert.Equal(t, 3, len(split.Keep))
}

func TestRandSplit_03(t *testing.T) {
	// the MASK directive restricts the pool
	split := checkRun(t, `
[MASK:bright]
MAG < 20

[RAND_SPLIT:s]
MASK = bright
RATIO = 50
`).RandSplits[0]
	//
	assert.Equal(t, 4, split.Pool.Count())
	assert.Equal(t, 2, len(split.Keep))
	assert.Equal(t, 2, len(split.Drop))
	//
	checkPartition(t, split)
}

func TestRandSplit_04(t *testing.T) {
	// several masks conjoin
	split := checkRun(t, `
[MASK:bright]
MAG < 20

[MASK:clean]
FLAGS < 2

[RAND_SPLIT:s]
MASK = bright,clean
RATIO = 50
`).RandSplits[0]
	//
	assert.Equal(t, []int{0, 4}, selectedRows(split.Pool.Bits))
	assert.Equal(t, 1, len(split.Keep))
	assert.Equal(t, 1, len(split.Drop))
}

func TestRandSplit_05(t *testing.T) {
	// a full ratio keeps everything
	split := checkRun(t, "[RAND_SPLIT:all]\nRATIO=100\n").RandSplits[0]
	//
	assert.Equal(t, "ratio_100", split.KeepLabel)
	assert.Equal(t, "ratio_0", split.DropLabel)
	assert.Equal(t, 10, len(split.Keep))
	assert.Equal(t, 0, len(split.Drop))
}

func TestRandSplit_06(t *testing.T) {
	// the keep count of an odd pool rounds up
	split := checkRun(t, `
[MASK:most]
MAG < 26

[RAND_SPLIT:half]
MASK = most
RATIO = 50
`).RandSplits[0]
	//
	assert.Equal(t, 9, split.Pool.Count())
	assert.Equal(t, "ratio_50_keep", split.KeepLabel)
	assert.Equal(t, "ratio_50_drop", split.DropLabel)
	assert.Equal(t, 5, len(split.Keep))
	assert.Equal(t, 4, len(split.Drop))
	//
	checkPartition(t, split)
}

func TestRandSplit_Err_00(t *testing.T) {
	var missing *MissingParameterError
	//
	err := checkRunFails(t, "[RAND_SPLIT:s]\n")
	assert.True(t, errors.As(err, &missing))
	assert.Equal(t, "RATIO", missing.Param)
}

func TestRandSplit_Err_01(t *testing.T) {
	var config *ConfigError
	//
	err := checkRunFails(t, "[RAND_SPLIT:s]\nRATIO=lots\n")
	assert.True(t, errors.As(err, &config))
}

func TestRandSplit_Err_02(t *testing.T) {
	// ratios outside (0,1] are rejected
	assert.Error(t, checkRunFails(t, "[RAND_SPLIT:s]\nRATIO=0\n"))
	assert.Error(t, checkRunFails(t, "[RAND_SPLIT:s]\nRATIO=-30\n"))
	assert.Error(t, checkRunFails(t, "[RAND_SPLIT:s]\nRATIO=120\n"))
}

func TestRandSplit_Err_03(t *testing.T) {
	var missing *expr.MissingMaskError
	//
	err := checkRunFails(t, "[RAND_SPLIT:s]\nMASK=ghost\nRATIO=50\n")
	assert.True(t, errors.As(err, &missing))
	assert.Equal(t, "ghost", missing.Name)
}

func TestRandSplit_Err_04(t *testing.T) {
	var config *ConfigError
	//
	err := checkRunFails(t, "[RAND_SPLIT:s]\nRATIO=50\nSHUFFLE=yes\n")
	assert.True(t, errors.As(err, &config))
}

func TestFlagSplit_00(t *testing.T) {
	split := checkRun(t, "[FLAG_SPLIT]\nPARAM_NAME=FLAGS\n").FlagSplits[0]
	//
	assert.Equal(t, "flag_split_1", split.Name)
	assert.Equal(t, "FLAGS", split.Column)
	assert.Equal(t, 3, len(split.Parts))
	//
	assert.Equal(t, FlagPart{"0", "flag_0", []int{0, 7}}, split.Parts[0])
	assert.Equal(t, FlagPart{"1", "flag_1", []int{1, 4, 8}}, split.Parts[1])
	assert.Equal(t, FlagPart{"2", "flag_2", []int{2, 3, 5, 6, 9}}, split.Parts[2])
}

func TestFlagSplit_01(t *testing.T) {
	// string columns split on their distinct values
	split := checkRun(t, "[FLAG_SPLIT:fields]\nPARAM_NAME=FIELD\n").FlagSplits[0]
	//
	assert.Equal(t, 3, len(split.Parts))
	assert.Equal(t, FlagPart{"W1", "flag_W1", []int{0, 2, 5, 7, 9}}, split.Parts[0])
	assert.Equal(t, FlagPart{"W2", "flag_W2", []int{1, 4, 8}}, split.Parts[1])
	assert.Equal(t, FlagPart{"W3", "flag_W3", []int{3, 6}}, split.Parts[2])
}

func TestFlagSplit_02(t *testing.T) {
	// undefined rows belong to no partition
	cat, err := catalog.New(
		catalog.NewFloatColumn("VALS", "1D", []float64{1, math.NaN(), 2, 1}),
	)
	assert.NoError(t, err)
	//
	splits, err := BuildFlagSplits(cat, checkRead(t, "[FLAG_SPLIT]\nPARAM_NAME=VALS\n"))
	assert.NoError(t, err)
	//
	parts := splits[0].Parts
	assert.Equal(t, 2, len(parts))
	assert.Equal(t, FlagPart{"1", "flag_1", []int{0, 3}}, parts[0])
	assert.Equal(t, FlagPart{"2", "flag_2", []int{2}}, parts[1])
}

func TestFlagSplit_03(t *testing.T) {
	// generated names count per kind
	result := checkRun(t, "[FLAG_SPLIT]\nPARAM_NAME=FLAGS\n\n[FLAG_SPLIT]\nPARAM_NAME=FIELD\n")
	//
	assert.Equal(t, "flag_split_1", result.FlagSplits[0].Name)
	assert.Equal(t, "flag_split_2", result.FlagSplits[1].Name)
}

func TestFlagSplit_04(t *testing.T) {
	// fractional values key their partitions verbatim
	cat, err := catalog.New(
		catalog.NewFloatColumn("SNR", "1D", []float64{0.5, 1.25, 0.5}),
	)
	assert.NoError(t, err)
	//
	splits, err := BuildFlagSplits(cat, checkRead(t, "[FLAG_SPLIT]\nPARAM_NAME=SNR\n"))
	assert.NoError(t, err)
	//
	assert.Equal(t, "flag_0.5", splits[0].Parts[0].Label)
	assert.Equal(t, "flag_1.25", splits[0].Parts[1].Label)
}

func TestFlagSplit_Err_00(t *testing.T) {
	var missing *MissingParameterError
	//
	err := checkRunFails(t, "[FLAG_SPLIT:s]\n")
	assert.True(t, errors.As(err, &missing))
	assert.Equal(t, "PARAM_NAME", missing.Param)
}

func TestFlagSplit_Err_01(t *testing.T) {
	var unknown *expr.UnknownColumnError
	//
	err := checkRunFails(t, "[FLAG_SPLIT:s]\nPARAM_NAME=NO_SUCH\n")
	assert.True(t, errors.As(err, &unknown))
}

func TestFlagSplit_Err_02(t *testing.T) {
	// vector columns cannot drive a split
	assert.Error(t, checkRunFails(t, "[FLAG_SPLIT:s]\nPARAM_NAME=MAG_APER\n"))
}

func TestFlagSplit_Err_03(t *testing.T) {
	var config *ConfigError
	//
	err := checkRunFails(t, "[FLAG_SPLIT:s]\nCOLUMN=FLAGS\n")
	assert.True(t, errors.As(err, &config))
}

// ==================================================================
// Framework
// ==================================================================

// checkPartition verifies that keep and drop are disjoint and cover the pool.
func checkPartition(t *testing.T, split *RandSplit) {
	var (
		size = split.Pool.Count()
		rows = slices.Concat(split.Keep, split.Drop)
	)
	//
	slices.Sort(rows)
	//
	assert.Equal(t, size, len(rows))
	//
	for i, row := range rows {
		assert.Equal(t, i, row)
	}
}

func checkRunFails(t *testing.T, text string) error {
	_, err := Run(testCatalog(t), checkRead(t, text), Options{})
	assert.Error(t, err)
	//
	return err
}
