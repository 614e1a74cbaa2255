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
	"slices"
	"strconv"

	"github.com/setools/go-setools/pkg/util"
	"github.com/setools/go-setools/pkg/util/source"
	"github.com/setools/go-setools/pkg/util/source/lex"
)

// Parse a given input string into an expression tree.  Name resolution
// happens later (during evaluation), except for function names which must
// refer to known builtins.
func Parse(input string) (Expr, []source.SyntaxError) {
	var (
		srcfile = source.NewSourceFile("expr", []byte(input))
		lexer   = lex.NewLexer[rune](srcfile.Contents(), rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start, end := lexer.Index(), lexer.Index()+lexer.Remaining()
		err := srcfile.SyntaxError(source.NewSpan(int(start), int(end)), "unknown text encountered")

		return nil, []source.SyntaxError{*err}
	}
	// Remove any whitespace
	tokens = util.RemoveMatching(tokens, func(t lex.Token) bool { return t.Kind == WHITESPACE })
	//
	parser := &Parser{srcfile, tokens, 0}
	// Parse term
	e, errs := parser.parseTerm()
	// Check all parsed
	if len(errs) == 0 && !parser.Done() {
		return nil, parser.syntaxErrors(parser.lookahead(), "unknown token")
	}
	// All good!
	return e, errs
}

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// LBRACE signals "left brace"
const LBRACE uint = 2

// RBRACE signals "right brace"
const RBRACE uint = 3

// LCURLY signals "left curly brace"
const LCURLY uint = 4

// RCURLY signals "right curly brace"
const RCURLY uint = 5

// COMMA signals an argument separator
const COMMA uint = 6

// NUMBER signals a numeric literal
const NUMBER uint = 7

// STRING signals a double-quoted string literal
const STRING uint = 8

// IDENTIFIER signals a column, mask or function name.
const IDENTIFIER uint = 9

// EQUALS signals an equality
const EQUALS uint = 10

// NOT_EQUALS signals a non-equality
const NOT_EQUALS uint = 11

// LESSTHAN signals a (strict) inequality X < Y
const LESSTHAN uint = 12

// LESSTHAN_EQUALS signals a (non-strict) inequality X <= Y
const LESSTHAN_EQUALS uint = 13

// GREATERTHAN signals a (strict) inequality X > Y
const GREATERTHAN uint = 14

// GREATERTHAN_EQUALS signals a (non-strict) inequality X >= Y
const GREATERTHAN_EQUALS uint = 15

// OR represents elementwise disjunction
const OR uint = 16

// AND represents elementwise conjunction
const AND uint = 17

// ADD represents addition
const ADD uint = 18

// SUB represents subtraction
const SUB uint = 19

// MUL represents multiplication
const MUL uint = 20

// DIV represents division
const DIV uint = 21

// POW represents exponentiation
const POW uint = 22

// NOT represents elementwise complement
const NOT uint = 23

// CONDITIONS captures the set of comparison operators.
var CONDITIONS = []uint{EQUALS, NOT_EQUALS, LESSTHAN, LESSTHAN_EQUALS, GREATERTHAN, GREATERTHAN_EQUALS}

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t')))

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

// Rule for describing numeric literals (integer or decimal, with an optional
// exponent).  At least one digit must appear around a decimal point.
func number(items []rune) uint {
	var (
		index  uint
		digits bool
	)
	// integral part
	for index < uint(len(items)) && isDigit(items[index]) {
		index++
		digits = true
	}
	// fractional part
	if index < uint(len(items)) && items[index] == '.' {
		index++
		//
		for index < uint(len(items)) && isDigit(items[index]) {
			index++
			digits = true
		}
	}
	//
	if !digits {
		// fail
		return 0
	}
	// optional exponent
	if index < uint(len(items)) && (items[index] == 'e' || items[index] == 'E') {
		mark := index + 1
		//
		if mark < uint(len(items)) && (items[mark] == '+' || items[mark] == '-') {
			mark++
		}
		//
		for mark < uint(len(items)) && isDigit(items[mark]) {
			mark++
			index = mark
		}
	}
	//
	return index
}

// Rule for double-quoted string literals.  Cleaned configuration lines never
// contain embedded quotes, hence no escape mechanism is required.
func stringLiteral(items []rune) uint {
	if len(items) == 0 || items[0] != '"' {
		return 0
	}
	//
	for i := 1; i < len(items); i++ {
		if items[i] == '"' {
			return uint(i + 1)
		}
	}
	// unterminated
	return 0
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// lexing rules.  Two character operators appear before their one character
// prefixes, since the first matching rule wins.
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(lex.Unit('*', '*'), POW),
	lex.Rule(lex.Unit('=', '='), EQUALS),
	lex.Rule(lex.Unit('!', '='), NOT_EQUALS),
	lex.Rule(lex.Unit('<', '='), LESSTHAN_EQUALS),
	lex.Rule(lex.Unit('>', '='), GREATERTHAN_EQUALS),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit('<'), LESSTHAN),
	lex.Rule(lex.Unit('>'), GREATERTHAN),
	lex.Rule(lex.Unit('|'), OR),
	lex.Rule(lex.Unit('&'), AND),
	lex.Rule(lex.Unit('+'), ADD),
	lex.Rule(lex.Unit('-'), SUB),
	lex.Rule(lex.Unit('*'), MUL),
	lex.Rule(lex.Unit('/'), DIV),
	lex.Rule(lex.Unit('~'), NOT),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(stringLiteral, STRING),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Parser provides a recursive descent parser for selection expressions, with
// the usual precedence climbing: disjunction, conjunction, comparison,
// additive, multiplicative, exponent, prefix and postfix terms.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
}

// Done determines whether or not the parser has parsed all the available
// tokens.
func (p *Parser) Done() bool {
	return p.index+1 >= len(p.tokens)
}

func (p *Parser) parseTerm() (Expr, []source.SyntaxError) {
	term, errs := p.parseConjunction()
	//
	for len(errs) == 0 && p.follows(OR) {
		p.expect(OR)
		//
		rhs, rhsErrs := p.parseConjunction()
		if len(rhsErrs) != 0 {
			return nil, rhsErrs
		}
		// Left associative
		term = &Binary{OR, term, rhs}
	}
	//
	return term, errs
}

func (p *Parser) parseConjunction() (Expr, []source.SyntaxError) {
	term, errs := p.parseCondition()
	//
	for len(errs) == 0 && p.follows(AND) {
		p.expect(AND)
		//
		rhs, rhsErrs := p.parseCondition()
		if len(rhsErrs) != 0 {
			return nil, rhsErrs
		}
		// Left associative
		term = &Binary{AND, term, rhs}
	}
	//
	return term, errs
}

func (p *Parser) parseCondition() (Expr, []source.SyntaxError) {
	lhs, errs := p.parseArithmeticTerm()
	// Check for infix comparison
	if len(errs) != 0 || !p.follows(CONDITIONS...) {
		// Not a binary condition
		return lhs, errs
	}
	// Accept binary condition
	token := p.expect(p.lookahead().Kind)
	// Parse rhs
	rhs, errs := p.parseArithmeticTerm()
	//
	if len(errs) != 0 {
		return nil, errs
	}
	// Comparisons do not chain
	if p.follows(CONDITIONS...) {
		return nil, p.syntaxErrors(p.lookahead(), "comparisons cannot be chained")
	}
	//
	return &Binary{token.Kind, lhs, rhs}, nil
}

func (p *Parser) parseArithmeticTerm() (Expr, []source.SyntaxError) {
	term, errs := p.parseMulTerm()
	//
	for len(errs) == 0 && p.follows(ADD, SUB) {
		token := p.expect(p.lookahead().Kind)
		//
		rhs, rhsErrs := p.parseMulTerm()
		if len(rhsErrs) != 0 {
			return nil, rhsErrs
		}
		// Left associative
		term = &Binary{token.Kind, term, rhs}
	}
	//
	return term, errs
}

func (p *Parser) parseMulTerm() (Expr, []source.SyntaxError) {
	term, errs := p.parseUnaryTerm()
	//
	for len(errs) == 0 && p.follows(MUL, DIV) {
		token := p.expect(p.lookahead().Kind)
		//
		rhs, rhsErrs := p.parseUnaryTerm()
		if len(rhsErrs) != 0 {
			return nil, rhsErrs
		}
		// Left associative
		term = &Binary{token.Kind, term, rhs}
	}
	//
	return term, errs
}

func (p *Parser) parseUnaryTerm() (Expr, []source.SyntaxError) {
	if p.follows(SUB, ADD, NOT) {
		token := p.expect(p.lookahead().Kind)
		//
		arg, errs := p.parseUnaryTerm()
		if len(errs) != 0 {
			return nil, errs
		}
		//
		return &Unary{token.Kind, arg}, nil
	}
	//
	return p.parsePowerTerm()
}

func (p *Parser) parsePowerTerm() (Expr, []source.SyntaxError) {
	base, errs := p.parsePostfixTerm()
	//
	if len(errs) == 0 && p.match(POW) {
		// Right associative, and the exponent may carry its own sign
		exponent, expErrs := p.parseUnaryTerm()
		if len(expErrs) != 0 {
			return nil, expErrs
		}
		//
		return &Binary{POW, base, exponent}, nil
	}
	//
	return base, errs
}

func (p *Parser) parsePostfixTerm() (Expr, []source.SyntaxError) {
	term, errs := p.parseUnitTerm()
	// Check for mask filters
	for len(errs) == 0 && p.follows(LCURLY) {
		p.expect(LCURLY)
		//
		if !p.follows(IDENTIFIER) {
			return nil, p.syntaxErrors(p.lookahead(), "expected mask name")
		}
		//
		id := p.expect(IDENTIFIER)
		//
		if !p.match(RCURLY) {
			return nil, p.syntaxErrors(p.lookahead(), "expected '}'")
		}
		//
		term = &Filter{term, p.string(id)}
	}
	//
	return term, errs
}

// ParseTerm parses an atomic expression.
func (p *Parser) parseUnitTerm() (Expr, []source.SyntaxError) {
	token := p.lookahead()
	//
	switch token.Kind {
	case LBRACE:
		return p.parseBracketedTerm()
	case LCURLY:
		return p.parseMaskRef()
	case IDENTIFIER:
		return p.parseIdentifier()
	case NUMBER:
		return p.parseNumber()
	case STRING:
		return p.parseString()
	}
	//
	return nil, p.syntaxErrors(token, "unknown expression")
}

func (p *Parser) parseBracketedTerm() (Expr, []source.SyntaxError) {
	p.expect(LBRACE)
	//
	term, errs := p.parseTerm()
	//
	if len(errs) == 0 && !p.match(RBRACE) {
		return nil, p.syntaxErrors(p.lookahead(), "expected ')'")
	}
	//
	return term, errs
}

func (p *Parser) parseMaskRef() (Expr, []source.SyntaxError) {
	p.expect(LCURLY)
	//
	if !p.follows(IDENTIFIER) {
		return nil, p.syntaxErrors(p.lookahead(), "expected mask name")
	}
	//
	id := p.expect(IDENTIFIER)
	//
	if !p.match(RCURLY) {
		return nil, p.syntaxErrors(p.lookahead(), "expected '}'")
	}
	//
	return &MaskRef{p.string(id)}, nil
}

func (p *Parser) parseIdentifier() (Expr, []source.SyntaxError) {
	id := p.expect(IDENTIFIER)
	name := p.string(id)
	// Check for function application
	if !p.follows(LBRACE) {
		return &ColumnRef{name}, nil
	}
	// Function names must be known up front
	if !isBuiltin(name) {
		return nil, p.syntaxErrors(id, "unknown function")
	}
	//
	p.expect(LBRACE)
	//
	var args []Expr
	//
	if !p.follows(RBRACE) {
		for {
			arg, errs := p.parseTerm()
			if len(errs) != 0 {
				return nil, errs
			}
			//
			args = append(args, arg)
			//
			if !p.match(COMMA) {
				break
			}
		}
	}
	//
	if !p.match(RBRACE) {
		return nil, p.syntaxErrors(p.lookahead(), "expected ')'")
	}
	//
	return &Call{name, args}, nil
}

func (p *Parser) parseNumber() (Expr, []source.SyntaxError) {
	id := p.expect(NUMBER)
	//
	value, err := strconv.ParseFloat(p.string(id), 64)
	if err != nil {
		return nil, p.syntaxErrors(id, "malformed number")
	}
	//
	return &Literal{value}, nil
}

func (p *Parser) parseString() (Expr, []source.SyntaxError) {
	id := p.expect(STRING)
	text := p.string(id)
	// Drop enclosing quotes
	return &StringLit{text[1 : len(text)-1]}, nil
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	start, end := token.Span.Start(), token.Span.End()
	return string(p.srcfile.Contents()[start:end])
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

func (p *Parser) expect(kind uint) lex.Token {
	if p.lookahead().Kind != kind {
		panic("internal failure")
	}
	//
	token := p.tokens[p.index]
	p.index++
	//
	return token
}

func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
