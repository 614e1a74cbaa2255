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
package fits

import (
	"fmt"
	"strconv"
	"strings"
)

// card is one parsed header card: an eight character keyword plus the value
// field of its value indicator (if any), with string values unquoted and
// comments stripped.
type card struct {
	key   string
	value string
}

// header holds the cards of one header unit, in file order and excluding the
// terminating END card.
type header struct {
	cards []card
}

// get returns the value field of the first card with the given keyword.
func (p *header) get(key string) (string, bool) {
	for _, c := range p.cards {
		if c.key == key {
			return c.value, true
		}
	}
	//
	return "", false
}

// getInt returns the integer value of the given keyword.
func (p *header) getInt(key string) (int, error) {
	value, ok := p.get(key)
	if !ok {
		return 0, fmt.Errorf("missing header card %s", key)
	}
	//
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("header card %s holds %q, expected an integer", key, value)
	}
	//
	return n, nil
}

// intOr returns the integer value of the given keyword, or a default when the
// card is absent.
func (p *header) intOr(key string, dflt int) int {
	if _, ok := p.get(key); !ok {
		return dflt
	}
	//
	n, err := p.getInt(key)
	if err != nil {
		return dflt
	}
	//
	return n
}

// parseCard decodes one 80 byte card.  Cards without a value indicator (such
// as COMMENT and HISTORY) parse to an empty value.
func parseCard(raw []byte) card {
	key := strings.TrimRight(string(raw[:8]), " ")
	//
	if raw[8] != '=' || raw[9] != ' ' {
		return card{key, ""}
	}
	//
	return card{key, parseValueField(string(raw[10:]))}
}

// parseValueField extracts the value of a card: quoted strings are unquoted
// (with '' escapes resolved and the conventional trailing padding removed),
// everything else is truncated at its comment and trimmed.
func parseValueField(text string) string {
	s := strings.TrimLeft(text, " ")
	//
	if !strings.HasPrefix(s, "'") {
		if i := strings.IndexByte(s, '/'); i >= 0 {
			s = s[:i]
		}
		//
		return strings.TrimSpace(s)
	}
	//
	var builder strings.Builder
	//
	for i := 1; i < len(s); i++ {
		if s[i] == '\'' {
			// A doubled quote stands for a literal one
			if i+1 < len(s) && s[i+1] == '\'' {
				builder.WriteByte('\'')
				i++
				//
				continue
			}
			//
			break
		}
		//
		builder.WriteByte(s[i])
	}
	//
	return strings.TrimRight(builder.String(), " ")
}

// headerBuilder assembles the cards of one header unit for writing.
type headerBuilder struct {
	cards []string
}

// logical appends a fixed format logical card.
func (p *headerBuilder) logical(key string, value bool) {
	text := "F"
	if value {
		text = "T"
	}
	//
	p.append(fmt.Sprintf("%-8s= %20s", key, text))
}

// integer appends a fixed format integer card.
func (p *headerBuilder) integer(key string, value int) {
	p.append(fmt.Sprintf("%-8s= %20d", key, value))
}

// str appends a string card, quoting and padding the value to the
// conventional minimum width.
func (p *headerBuilder) str(key string, value string) {
	escaped := strings.ReplaceAll(value, "'", "''")
	//
	p.append(fmt.Sprintf("%-8s= '%-8s'", key, escaped))
}

// bytes closes the header with its END card and pads it to a whole number of
// blocks with spaces.
func (p *headerBuilder) bytes() []byte {
	var builder strings.Builder
	//
	for _, c := range p.cards {
		builder.WriteString(c)
	}
	//
	builder.WriteString(fmt.Sprintf("%-80s", "END"))
	//
	for builder.Len()%blockSize != 0 {
		builder.WriteString(" ")
	}
	//
	return []byte(builder.String())
}

func (p *headerBuilder) append(text string) {
	if len(text) > cardSize {
		panic(fmt.Sprintf("header card %q exceeds %d characters", text, cardSize))
	}
	//
	p.cards = append(p.cards, fmt.Sprintf("%-80s", text))
}
