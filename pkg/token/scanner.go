// Copyright Consensys Software Inc.
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
package token

import (
	"strconv"
	"strings"

	"github.com/qcirlang/qcir/pkg/qcirerr"
)

// Resolver resolves an include path to its contents. The frontend supplies
// this (typically backed by os.ReadFile); the scanner itself performs no
// file I/O.
type Resolver func(path string) (string, error)

// frame is one entry in the scanner's include stack.
type frame struct {
	name  string
	runes []rune
	pos   int
	line  int
	col   int
}

func newFrame(name, text string) *frame {
	return &frame{name: name, runes: []rune(text), line: 1, col: 1}
}

func (f *frame) atEnd() bool {
	return f.pos >= len(f.runes)
}

func (f *frame) peek(off int) rune {
	i := f.pos + off
	if i >= len(f.runes) {
		return 0
	}
	return f.runes[i]
}

func (f *frame) advance() rune {
	c := f.runes[f.pos]
	f.pos++
	if c == '\n' {
		f.line++
		f.col = 1
	} else {
		f.col++
	}
	return c
}

// Scanner tokenises a character stream, transparently following "include"
// directives via a LIFO stack of input sources (§4.A). EOF is returned to
// the client only once the stack is empty.
type Scanner struct {
	stack    []*frame
	resolve  Resolver
	included map[string]bool
}

// NewScanner constructs a scanner over the given named source text. resolve
// is consulted whenever an "include" directive is encountered; it may be
// nil if the source is known not to use include.
func NewScanner(name, text string, resolve Resolver) *Scanner {
	s := &Scanner{resolve: resolve, included: map[string]bool{name: true}}
	s.stack = append(s.stack, newFrame(name, text))
	return s
}

func (s *Scanner) top() *frame {
	return s.stack[len(s.stack)-1]
}

func (s *Scanner) err(msg string) (Token, error) {
	f := s.top()
	return Token{}, &qcirerr.ParseError{Line: f.line, Col: f.col, Message: msg}
}

// Next returns the next token in the stream, transparently popping finished
// include frames. Once the entire stack is exhausted it returns an EOF
// token, and keeps returning EOF on every later call.
func (s *Scanner) Next() (Token, error) {
	for {
		f := s.top()
		s.skipWhitespaceAndComments(f)

		if f.atEnd() {
			if len(s.stack) == 1 {
				return Token{Kind: EOF, Line: f.line, Col: f.col}, nil
			}
			delete(s.included, f.name)
			s.stack = s.stack[:len(s.stack)-1]
			continue
		}

		line, col := f.line, f.col
		c := f.peek(0)

		switch {
		case c == '"':
			return s.scanString(f, line, col)
		case isDigit(c) || (c == '.' && isDigit(f.peek(1))):
			return s.scanNumber(f, line, col)
		case isIdentStart(c):
			tok, err := s.scanIdentifierOrKeyword(f, line, col)
			if err != nil {
				return Token{}, err
			}
			if tok.Kind == Include {
				if err := s.pushInclude(f); err != nil {
					return Token{}, err
				}
				continue
			}
			return tok, nil
		default:
			return s.scanSymbol(f, line, col)
		}
	}
}

func (s *Scanner) skipWhitespaceAndComments(f *frame) {
	for !f.atEnd() {
		c := f.peek(0)
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			f.advance()
		case c == '/' && f.peek(1) == '/':
			for !f.atEnd() && f.peek(0) != '\n' {
				f.advance()
			}
		default:
			return
		}
	}
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentRest(c rune) bool {
	return isIdentStart(c) || isDigit(c)
}

func (s *Scanner) scanString(f *frame, line, col int) (Token, error) {
	f.advance() // opening quote
	var sb strings.Builder
	for {
		if f.atEnd() {
			return s.err("unterminated string literal")
		}
		c := f.advance()
		if c == '"' {
			break
		}
		sb.WriteRune(c)
	}
	return Token{Kind: Str, Line: line, Col: col, Str: sb.String()}, nil
}

func (s *Scanner) scanNumber(f *frame, line, col int) (Token, error) {
	var sb strings.Builder
	isReal := false

	for isDigit(f.peek(0)) {
		sb.WriteRune(f.advance())
	}
	if f.peek(0) == '.' && isDigit(f.peek(1)) {
		isReal = true
		sb.WriteRune(f.advance())
		for isDigit(f.peek(0)) {
			sb.WriteRune(f.advance())
		}
	}
	if f.peek(0) == 'e' || f.peek(0) == 'E' {
		save := f.pos
		exp := string(f.peek(0))
		n := 1
		if f.peek(1) == '+' || f.peek(1) == '-' {
			n = 2
		}
		if isDigit(f.peek(n)) {
			isReal = true
			for i := 0; i < n; i++ {
				exp += string(f.advance())
			}
			for isDigit(f.peek(0)) {
				exp += string(f.advance())
			}
			sb.WriteString(exp)
		} else {
			f.pos = save
		}
	}

	text := sb.String()
	if isReal {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return s.err("malformed real literal " + text)
		}
		return Token{Kind: Real, Line: line, Col: col, RealVal: v}, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return s.err("malformed integer literal " + text)
	}
	return Token{Kind: NNInteger, Line: line, Col: col, IntVal: v, RealVal: float64(v)}, nil
}

func (s *Scanner) scanIdentifierOrKeyword(f *frame, line, col int) (Token, error) {
	var sb strings.Builder
	for isIdentRest(f.peek(0)) {
		sb.WriteRune(f.advance())
	}
	text := sb.String()
	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind, Line: line, Col: col, Str: text}, nil
	}
	return Token{Kind: Identifier, Line: line, Col: col, Str: text}, nil
}

func (s *Scanner) scanSymbol(f *frame, line, col int) (Token, error) {
	c := f.advance()
	mk := func(k Kind) (Token, error) { return Token{Kind: k, Line: line, Col: col}, nil }

	switch c {
	case '+':
		return mk(Plus)
	case '-':
		return mk(Minus)
	case '*':
		return mk(Times)
	case '/':
		return mk(Div)
	case '^':
		return mk(Power)
	case ';':
		return mk(Semicolon)
	case ',':
		return mk(Comma)
	case '(':
		return mk(LParen)
	case ')':
		return mk(RParen)
	case '[':
		return mk(LBracket)
	case ']':
		return mk(RBracket)
	case '{':
		return mk(LBrace)
	case '}':
		return mk(RBrace)
	case '>':
		return mk(Gt)
	case '=':
		if f.peek(0) == '=' {
			f.advance()
			return mk(Eq)
		}
		return mk(Assign)
	}
	return s.err("unexpected character " + strconv.QuoteRune(c))
}

// pushInclude parses the quoted path following an "include" keyword,
// resolves it, and pushes a new frame onto the stack. A trailing ";" after
// the path is consumed here as well.
func (s *Scanner) pushInclude(f *frame) error {
	s.skipWhitespaceAndComments(f)
	line, col := f.line, f.col
	pathTok, err := s.scanString(f, line, col)
	if err != nil {
		return err
	}
	s.skipWhitespaceAndComments(f)
	if f.peek(0) == ';' {
		f.advance()
	}

	path := pathTok.Str
	if s.included[path] {
		return &qcirerr.IncludeCycle{Path: path}
	}
	if s.resolve == nil {
		_, e := s.err("include directive used without a resolver")
		return e
	}
	text, err := s.resolve(path)
	if err != nil {
		_, e := s.err("cannot resolve include " + strconv.Quote(path) + ": " + err.Error())
		return e
	}
	s.included[path] = true
	s.stack = append(s.stack, newFrame(path, text))
	return nil
}
