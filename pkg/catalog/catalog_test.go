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
package catalog

import (
	"testing"

	"github.com/setools/go-setools/pkg/util/assert"
)

func TestCatalog_00(t *testing.T) {
	cat, err := New(
		NewFloatColumn("MAG", "1E", []float64{20.1, 19.2, 21.3}),
		NewStringColumn("NAME", "8A", []string{"a", "b", "c"}),
	)
	assert.NoError(t, err)
	assert.Equal(t, 3, cat.Height())
	assert.Equal(t, 2, cat.Width())
	assert.Equal(t, []string{"MAG", "NAME"}, cat.Names())
}

func TestCatalog_01(t *testing.T) {
	// ragged columns are rejected
	_, err := New(
		NewFloatColumn("MAG", "1E", []float64{20.1, 19.2, 21.3}),
		NewFloatColumn("FLAG", "1J", []float64{0, 1}),
	)
	assert.Error(t, err)
}

func TestCatalog_02(t *testing.T) {
	// duplicate names are rejected
	_, err := New(
		NewFloatColumn("MAG", "1E", []float64{20.1}),
		NewFloatColumn("MAG", "1E", []float64{19.2}),
	)
	assert.Error(t, err)
}

func TestCatalog_03(t *testing.T) {
	cat, err := New(NewFloatColumn("MAG", "1E", []float64{20.1, 19.2, 21.3}))
	assert.NoError(t, err)
	// lookup is case sensitive
	assert.True(t, cat.HasColumn("MAG"))
	assert.False(t, cat.HasColumn("mag"))
}

func TestCatalog_04(t *testing.T) {
	cat, err := New(
		NewFloatColumn("MAG", "1E", []float64{20.1, 19.2, 21.3, 18.4}),
		NewStringColumn("NAME", "8A", []string{"a", "b", "c", "d"}),
	)
	assert.NoError(t, err)
	//
	sub := cat.Select([]int{3, 1})
	assert.Equal(t, 2, sub.Height())
	//
	mag, _ := sub.Column("MAG")
	name, _ := sub.Column("NAME")
	assert.Equal(t, []float64{18.4, 19.2}, mag.Floats())
	assert.Equal(t, []string{"d", "b"}, name.Strings())
	// storage form survives selection
	assert.Equal(t, "1E", mag.Form())
}

func TestCatalog_05(t *testing.T) {
	cat, err := New(
		NewFloatColumn("MAG", "1E", []float64{20.1, 19.2, 21.3, 18.4}),
	)
	assert.NoError(t, err)
	//
	sub, err := cat.SelectMask([]bool{true, false, false, true})
	assert.NoError(t, err)
	//
	mag, _ := sub.Column("MAG")
	assert.Equal(t, []float64{20.1, 18.4}, mag.Floats())
	// a short mask is rejected
	_, err = cat.SelectMask([]bool{true})
	assert.Error(t, err)
}

func TestCatalog_06(t *testing.T) {
	// empty catalogs are permitted
	cat, err := New()
	assert.NoError(t, err)
	assert.Equal(t, 0, cat.Height())
	assert.Equal(t, 0, cat.Width())
}

func TestCatalog_07(t *testing.T) {
	// vector columns store their rows flattened
	cat, err := New(
		NewFloatColumn("MAG", "1E", []float64{20.1, 19.2, 21.3}),
		NewFloatArrayColumn("MAG_APER", "2E", 2, []float64{1, 2, 3, 4, 5, 6}),
	)
	assert.NoError(t, err)
	assert.Equal(t, 3, cat.Height())
	//
	aper, _ := cat.Column("MAG_APER")
	assert.Equal(t, 2, aper.Width())
	assert.Equal(t, []float64{3, 4}, aper.Row(1))
	// selection is width aware
	sub := cat.Select([]int{2, 0})
	aper, _ = sub.Column("MAG_APER")
	assert.Equal(t, []float64{5, 6, 1, 2}, aper.Floats())
}
