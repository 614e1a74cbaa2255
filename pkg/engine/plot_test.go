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

	"github.com/setools/go-setools/pkg/util/assert"
)

func TestPlot_00(t *testing.T) {
	spec := checkRun(t, `
[PLOT:size_mag]
TYPE = plot
X_1 = MAG
Y_1 = FWHM
`).Plots[0]
	//
	assert.Equal(t, "size_mag", spec.Name)
	assert.Equal(t, []string{"TYPE", "X", "Y"}, spec.ParamNames())
	assert.Equal(t, "plot", spec.Params["TYPE"]["0"])
	assert.Equal(t, "MAG", spec.Params["X"]["1"])
	assert.Equal(t, "FWHM", spec.Params["Y"]["1"])
}

func TestPlot_01(t *testing.T) {
	// parameters without a subkey land under "0"
	spec := checkRun(t, "[PLOT:p]\nTITLE=sizes\n").Plots[0]
	//
	assert.Equal(t, "sizes", spec.Params["TITLE"]["0"])
}

func TestPlot_02(t *testing.T) {
	// titles and labels resolve their templates
	spec := checkRun(t, `
[MASK:bright]
MAG < 20

[PLOT:p]
TITLE = "@len(MAG{bright})@ bright objects"
LABEL_1 = "mean @mean(MAG{bright})@"
X_1 = MAG{bright}
`).Plots[0]
	//
	assert.Equal(t, "4 bright objects", spec.Params["TITLE"]["0"])
	assert.Equal(t, "mean 18.375", spec.Params["LABEL"]["1"])
}

func TestPlot_03(t *testing.T) {
	// quotes protect spaces but never reach the renderer
	spec := checkRun(t, "[PLOT:p]\nY_1=\"FWHM * 2\"\n").Plots[0]
	//
	assert.Equal(t, "FWHM * 2", spec.Params["Y"]["1"])
}

func TestPlot_04(t *testing.T) {
	// one parameter may carry several subkeys
	spec := checkRun(t, "[PLOT:p]\nX_1=MAG\nX_2=FWHM\n").Plots[0]
	//
	assert.Equal(t, []string{"X"}, spec.ParamNames())
	assert.Equal(t, "MAG", spec.Params["X"]["1"])
	assert.Equal(t, "FWHM", spec.Params["X"]["2"])
}

func TestPlot_05(t *testing.T) {
	// expressions are validated on demand, not while building
	result := checkRun(t, `
[MASK:bright]
MAG < 20

[PLOT:p]
X_1 = MAG{bright}
Y_1 = FWHM{bright}
SCATTER_1 = CLASS_STAR{bright}
`)
	//
	err := CheckPlots(testCatalog(t), result.Masks, result.Plots)
	assert.NoError(t, err)
}

func TestPlot_Err_00(t *testing.T) {
	// subkeys cannot be empty or nested
	assert.Error(t, checkRunFails(t, "[PLOT:p]\nX_=MAG\n"))
	assert.Error(t, checkRunFails(t, "[PLOT:p]\nX__1=MAG\n"))
}

func TestPlot_Err_01(t *testing.T) {
	var config *ConfigError
	//
	err := checkRunFails(t, "[PLOT:p]\nTITLE=\"faint @NO_SUCH@\"\n")
	assert.True(t, errors.As(err, &config))
}

func TestPlot_Err_02(t *testing.T) {
	// a broken expression surfaces when the plots are checked
	result := checkRun(t, "[PLOT:p]\nX_1=NO_SUCH\n")
	//
	err := CheckPlots(testCatalog(t), result.Masks, result.Plots)
	assert.Error(t, err)
}
