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
package expr

import (
	"testing"
)

func TestParser_00(t *testing.T) {
	checkParse(t, "20", "20")
}

func TestParser_01(t *testing.T) {
	checkParse(t, "MAG", "MAG")
}

func TestParser_02(t *testing.T) {
	checkParse(t, "MAG<20", "(MAG<20)")
}

func TestParser_03(t *testing.T) {
	checkParse(t, "MAG <= 20.5", "(MAG<=20.5)")
}

func TestParser_04(t *testing.T) {
	checkParse(t, "MAG<20&FLAG==0", "((MAG<20)&(FLAG==0))")
}

func TestParser_05(t *testing.T) {
	checkParse(t, "A|B&C", "(A|(B&C))")
}

func TestParser_06(t *testing.T) {
	checkParse(t, "(A|B)&C", "((A|B)&C)")
}

func TestParser_07(t *testing.T) {
	checkParse(t, "(MAG_A+MAG_B)/2<20", "(((MAG_A+MAG_B)/2)<20)")
}

func TestParser_08(t *testing.T) {
	checkParse(t, "1-2+3", "((1-2)+3)")
}

func TestParser_09(t *testing.T) {
	checkParse(t, "2**3**2", "(2**(3**2))")
}

func TestParser_10(t *testing.T) {
	checkParse(t, "-MAG**2", "-(MAG**2)")
}

func TestParser_11(t *testing.T) {
	checkParse(t, "mean(MAG)+2*std(MAG)", "(mean(MAG)+(2*std(MAG)))")
}

func TestParser_12(t *testing.T) {
	checkParse(t, "MAG{bright}", "MAG{bright}")
}

func TestParser_13(t *testing.T) {
	checkParse(t, "{bright}&{round}", "({bright}&{round})")
}

func TestParser_14(t *testing.T) {
	checkParse(t, "NAME==\"star\"", "(NAME==\"star\")")
}

func TestParser_15(t *testing.T) {
	checkParse(t, "1.5e-3<FLUX", "(0.0015<FLUX)")
}

func TestParser_16(t *testing.T) {
	checkParse(t, "len(MAG{bright})>=4", "(len(MAG{bright})>=4)")
}

func TestParser_17(t *testing.T) {
	checkParse(t, "~{bright}", "~{bright}")
}

func TestParser_18(t *testing.T) {
	// one character comparisons following two character ones
	checkParse(t, "A>=1&B>2", "((A>=1)&(B>2))")
}

func TestParser_Err_00(t *testing.T) {
	checkParseFails(t, "")
}

func TestParser_Err_01(t *testing.T) {
	checkParseFails(t, "MAG<")
}

func TestParser_Err_02(t *testing.T) {
	checkParseFails(t, "(MAG<20")
}

func TestParser_Err_03(t *testing.T) {
	// comparisons do not chain
	checkParseFails(t, "1<MAG<20")
}

func TestParser_Err_04(t *testing.T) {
	// unknown function
	checkParseFails(t, "avg(MAG)")
}

func TestParser_Err_05(t *testing.T) {
	// unknown text
	checkParseFails(t, "MAG $ 20")
}

func TestParser_Err_06(t *testing.T) {
	checkParseFails(t, "MAG{}")
}

func TestParser_Err_07(t *testing.T) {
	checkParseFails(t, "MAG 20")
}

func TestParser_Err_08(t *testing.T) {
	// unterminated string
	checkParseFails(t, "NAME==\"star")
}

// ==================================================================
// Framework
// ==================================================================

func checkParse(t *testing.T, input string, expected string) {
	e, errs := Parse(input)
	//
	if len(errs) != 0 {
		t.Errorf("unexpected syntax error: %s", errs[0].Error())
	} else if e.String() != expected {
		t.Errorf("got %s, expected %s", e.String(), expected)
	}
}

func checkParseFails(t *testing.T, input string) {
	_, errs := Parse(input)
	//
	if len(errs) == 0 {
		t.Errorf("expected syntax error for %q", input)
	}
}
