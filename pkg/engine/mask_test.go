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
	"testing"

	"github.com/setools/go-setools/pkg/expr"
	"github.com/setools/go-setools/pkg/util/assert"
)

func TestMask_00(t *testing.T) {
	// a section without constraints selects every row
	masks := checkMasks(t, "[MASK:all]\n")
	//
	mask, ok := masks.Get("all")
	assert.True(t, ok)
	assert.Equal(t, 10, mask.Count())
	assert.False(t, mask.NoSave)
}

func TestMask_01(t *testing.T) {
	masks := checkMasks(t, "[MASK:bright]\nMAG < 20\n")
	//
	mask, _ := masks.Get("bright")
	assert.Equal(t, []int{0, 2, 4, 6}, selectedRows(mask.Bits))
}

func TestMask_02(t *testing.T) {
	// constraint lines are conjoined
	masks := checkMasks(t, `
[MASK:tight]
MAG < 20
FWHM < 2.15
`)
	//
	mask, _ := masks.Get("tight")
	assert.Equal(t, []int{0, 4}, selectedRows(mask.Bits))
}

func TestMask_03(t *testing.T) {
	// NO_SAVE marks the mask without constraining it
	masks := checkMasks(t, "[MASK:tmp]\nNO_SAVE\nMAG<20\n\n[MASK:kept]\nMAG<20\n")
	//
	tmp, _ := masks.Get("tmp")
	kept, _ := masks.Get("kept")
	//
	assert.True(t, tmp.NoSave)
	assert.False(t, kept.NoSave)
	assert.Equal(t, kept.Count(), tmp.Count())
}

func TestMask_04(t *testing.T) {
	// aggregates over earlier masks feed later constraints
	masks := checkMasks(t, `
[MASK:bright]
MAG < 20

[MASK:brightest]
MAG < mean(MAG{bright})
`)
	//
	mask, _ := masks.Get("brightest")
	assert.Equal(t, []int{0, 4}, selectedRows(mask.Bits))
}

func TestMask_05(t *testing.T) {
	// scalar constraints broadcast over every row
	masks := checkMasks(t, "[MASK:none]\n1 > 2\n")
	//
	mask, _ := masks.Get("none")
	assert.Equal(t, 0, mask.Count())
}

func TestMask_06(t *testing.T) {
	// declaration order is preserved
	masks := checkMasks(t, "[MASK:a]\n[MASK:b]\n[MASK:c]\n")
	//
	assert.Equal(t, 3, masks.Len())
	assert.Equal(t, "a", masks.Masks()[0].Name)
	assert.Equal(t, "b", masks.Masks()[1].Name)
	assert.Equal(t, "c", masks.Masks()[2].Name)
	//
	_, ok := masks.Get("d")
	assert.False(t, ok)
}

func TestMask_Err_00(t *testing.T) {
	// masks cannot be referenced before their declaration
	var missing *expr.MissingMaskError
	//
	err := checkMasksFail(t, "[MASK:early]\nMAG < mean(MAG{late})\n\n[MASK:late]\nMAG < 20\n")
	assert.True(t, errors.As(err, &missing))
	assert.Equal(t, "late", missing.Name)
}

func TestMask_Err_01(t *testing.T) {
	var unknown *expr.UnknownColumnError
	//
	err := checkMasksFail(t, "[MASK:m]\nNO_SUCH < 1\n")
	assert.True(t, errors.As(err, &unknown))
}

func TestMask_Err_02(t *testing.T) {
	// constraint lines must be boolean
	var mismatch *expr.TypeMismatchError
	//
	err := checkMasksFail(t, "[MASK:m]\nMAG + 1\n")
	assert.True(t, errors.As(err, &mismatch))
}

func TestMask_Err_03(t *testing.T) {
	// unparsable lines report the section and line
	var config *ConfigError
	//
	err := checkMasksFail(t, "[MASK:m]\nMAG <\n")
	assert.True(t, errors.As(err, &config))
	assert.Equal(t, "m", config.Section)
}

// ==================================================================
// Framework
// ==================================================================

func checkMasks(t *testing.T, text string) *MaskSet {
	masks, err := BuildMasks(testCatalog(t), checkRead(t, text))
	assert.NoError(t, err)
	//
	return masks
}

func checkMasksFail(t *testing.T, text string) error {
	_, err := BuildMasks(testCatalog(t), checkRead(t, text))
	assert.Error(t, err)
	//
	return err
}
