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

// Package engine implements the selection language: reading a selection
// configuration into sections, building named masks, random and flag driven
// partitions, derived catalogs, statistics and plot specifications from a
// source catalog.
package engine

import (
	"fmt"
	"strings"

	"github.com/setools/go-setools/pkg/util/source"
)

// Line is a single cleaned line of a configuration section, retaining the
// span of the physical line it came from for error reporting.
type Line struct {
	// Text after cleaning (whitespace and comments removed).
	Text string
	// Span of the physical line within the configuration file.
	Span source.Span
}

// Section is one named, typed block of a selection configuration, holding its
// cleaned lines in declaration order.
type Section struct {
	Kind  SectionKind
	Name  string
	Lines []Line
}

// Config is a parsed selection configuration: an ordered sequence of named
// sections.  Section names are unique per kind; unnamed sections receive a
// generated name from a per kind counter.
type Config struct {
	sections []*Section
}

// Sections returns every section of the given kind, in declaration order.
func (p *Config) Sections(kind SectionKind) []*Section {
	var matches []*Section
	//
	for _, s := range p.sections {
		if s.Kind == kind {
			matches = append(matches, s)
		}
	}
	//
	return matches
}

// Count returns the number of sections of the given kind.
func (p *Config) Count(kind SectionKind) int {
	return len(p.Sections(kind))
}

// ReadConfig parses the text of a selection configuration into its sections.
// Environment variable expansion is assumed to have happened already.
func ReadConfig(srcfile *source.File) (*Config, []source.SyntaxError) {
	var (
		config   Config
		section  *Section
		counters [nKinds]int
	)
	//
	for _, physical := range physicalLines(srcfile) {
		text := cleanLine(lineText(srcfile, physical))
		//
		if text == "" {
			continue
		}
		// A header line closes any open section
		if strings.HasPrefix(text, "[") {
			next, err := readHeader(srcfile, physical, text, &config, &counters)
			if err != nil {
				return nil, []source.SyntaxError{*err}
			}
			//
			config.sections = append(config.sections, next)
			section = next
			//
			continue
		}
		//
		if section == nil {
			return nil, []source.SyntaxError{*srcfile.SyntaxError(physical, "no section found")}
		}
		//
		section.Lines = append(section.Lines, Line{text, physical})
	}
	//
	return &config, nil
}

// readHeader parses a section header of the form [KIND] or [KIND:NAME],
// assigning a generated name when none is given.
func readHeader(srcfile *source.File, span source.Span, text string,
	config *Config, counters *[nKinds]int) (*Section, *source.SyntaxError) {
	//
	if !strings.HasSuffix(text, "]") || strings.Count(text, "[") != 1 || strings.Count(text, "]") != 1 {
		return nil, srcfile.SyntaxError(span, "malformed section header")
	}
	// Strip enclosing brackets
	inner := text[1 : len(text)-1]
	//
	keyword, name := inner, ""
	// Name is everything after the first colon
	if i := strings.Index(inner, ":"); i >= 0 {
		keyword, name = inner[:i], inner[i+1:]
		//
		if name == "" {
			return nil, srcfile.SyntaxError(span, "empty section name")
		}
	}
	//
	kind, ok := kindOf(keyword)
	if !ok {
		return nil, srcfile.SyntaxError(span, fmt.Sprintf("unknown section kind %q", keyword))
	}
	// Per kind monotonic counter drives generated names
	counters[kind]++
	//
	if name == "" {
		name = fmt.Sprintf("%s_%d", kind.lower(), counters[kind])
	}
	//
	for _, s := range config.Sections(kind) {
		if s.Name == name {
			return nil, srcfile.SyntaxError(span, fmt.Sprintf("duplicate %s section %q", kind, name))
		}
	}
	//
	return &Section{Kind: kind, Name: name}, nil
}

// cleanLine removes whitespace outside double quoted substrings and truncates
// the line at the first comment marker outside quotes.
func cleanLine(text string) string {
	var (
		builder strings.Builder
		quoted  bool
	)
	//
	for _, r := range text {
		switch {
		case r == '"':
			quoted = !quoted
			builder.WriteRune(r)
		case quoted:
			builder.WriteRune(r)
		case r == '#':
			return builder.String()
		case r == ' ' || r == '\t' || r == '\r':
			// dropped
		default:
			builder.WriteRune(r)
		}
	}
	//
	return builder.String()
}

// physicalLines splits a source file into the spans of its physical lines,
// excluding the line terminators themselves.
func physicalLines(srcfile *source.File) []source.Span {
	var (
		spans    []source.Span
		contents = srcfile.Contents()
		start    = 0
	)
	//
	for i, r := range contents {
		if r == '\n' {
			spans = append(spans, source.NewSpan(start, i))
			start = i + 1
		}
	}
	// Final line may lack a terminator
	if start < len(contents) {
		spans = append(spans, source.NewSpan(start, len(contents)))
	}
	//
	return spans
}

// lineText extracts the text of a physical line.
func lineText(srcfile *source.File, span source.Span) string {
	return string(srcfile.Contents()[span.Start():span.End()])
}
