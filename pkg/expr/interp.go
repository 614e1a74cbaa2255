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
	"fmt"
	"strings"
)

// Interpolate resolves @expression@ templates within a piece of text, such as
// a plot title.  The text is split on '@'; odd parts are evaluated against
// the context and rendered in place, even parts are kept verbatim.  Text
// containing fewer than two '@' markers passes through untouched, as does an
// unpaired trailing marker.
func Interpolate(text string, ctx Context) (string, error) {
	parts := strings.Split(text, "@")
	//
	if len(parts) < 3 {
		return text, nil
	}
	//
	var builder strings.Builder
	//
	builder.WriteString(parts[0])
	//
	for i := 1; i < len(parts); i++ {
		if i%2 == 0 {
			builder.WriteString(parts[i])
			continue
		}
		// An unpaired trailing marker stays literal
		if i == len(parts)-1 {
			builder.WriteString("@")
			builder.WriteString(parts[i])
			//
			break
		}
		// Evaluate this part
		e, errs := Parse(parts[i])
		//
		if len(errs) != 0 {
			return "", fmt.Errorf("template %q: %s", parts[i], errs[0].Message())
		}
		//
		value, err := e.Eval(ctx)
		if err != nil {
			return "", fmt.Errorf("template %q: %w", parts[i], err)
		}
		//
		builder.WriteString(value.String())
	}
	//
	return builder.String(), nil
}
