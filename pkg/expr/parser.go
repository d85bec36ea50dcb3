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
package expr

import (
	"fmt"
	"math"

	"github.com/qcirlang/qcir/pkg/qcirerr"
	"github.com/qcirlang/qcir/pkg/token"
)

// nextTokenFn pulls the next token from whatever scanner the caller is
// driving (pkg/token.Scanner in production, a fixed slice in tests).
type nextTokenFn func() (token.Token, error)

// Parser implements the Exp/Term/Factor/Exponentiation grammar of §4.B by
// recursive descent over a one-token lookahead, mirroring the teacher's
// scan()/check() driver shape.
type Parser struct {
	next nextTokenFn
	sym  token.Token
}

// NewParser constructs a parser and primes the first lookahead token.
func NewParser(next nextTokenFn) (*Parser, error) {
	p := &Parser{next: next}
	if err := p.scan(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) scan() error {
	t, err := p.next()
	if err != nil {
		return err
	}
	p.sym = t
	return nil
}

func (p *Parser) check(k token.Kind) error {
	if p.sym.Kind != k {
		return p.errorf("expected %s, got %s", k, p.sym.Kind)
	}
	return p.scan()
}

func (p *Parser) errorf(format string, args ...any) error {
	return &qcirerr.ParseError{Line: p.sym.Line, Col: p.sym.Col, Message: fmt.Sprintf(format, args...)}
}

// ParseExp parses a full expression, per §4.B's `Exp` production.
func (p *Parser) ParseExp() (*Expr, error) { return p.exp() }

// Lookahead returns the token the parser's cursor currently rests on, i.e.
// the first token past the expression just parsed. Callers driving their
// own outer grammar around an embedded expression resynchronise on this.
func (p *Parser) Lookahead() token.Token { return p.sym }

func (p *Parser) exp() (*Expr, error) {
	var x *Expr
	var err error
	if p.sym.Kind == token.Minus {
		if err = p.scan(); err != nil {
			return nil, err
		}
		x, err = p.term()
		if err != nil {
			return nil, err
		}
		x = unary(Sign, x)
	} else {
		x, err = p.term()
		if err != nil {
			return nil, err
		}
	}
	for p.sym.Kind == token.Plus || p.sym.Kind == token.Minus {
		op := p.sym.Kind
		if err = p.scan(); err != nil {
			return nil, err
		}
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		if op == token.Plus {
			x = binary(Plus, x, y)
		} else {
			x = binary(Minus, x, y)
		}
	}
	return x, nil
}

func (p *Parser) term() (*Expr, error) {
	x, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.sym.Kind == token.Times || p.sym.Kind == token.Div {
		op := p.sym.Kind
		if err = p.scan(); err != nil {
			return nil, err
		}
		y, err := p.factor()
		if err != nil {
			return nil, err
		}
		if op == token.Times {
			x = binary(Times, x, y)
		} else {
			x = binary(Div, x, y)
		}
	}
	return x, nil
}

func (p *Parser) factor() (*Expr, error) {
	x, err := p.exponentiation()
	if err != nil {
		return nil, err
	}
	for p.sym.Kind == token.Power {
		if err = p.scan(); err != nil {
			return nil, err
		}
		y, err := p.exponentiation()
		if err != nil {
			return nil, err
		}
		x = binary(Power, x, y)
	}
	return x, nil
}

// unaryFnKinds maps the unary-function token kinds onto their Expr kind, per
// §4.B's `unaryFn ∈ {sin,cos,tan,exp,ln,sqrt}`.
var unaryFnKinds = map[token.Kind]Kind{
	token.KwSin:  Sin,
	token.KwCos:  Cos,
	token.KwTan:  Tan,
	token.KwExp:  Exp,
	token.KwLn:   Ln,
	token.KwSqrt: Sqrt,
}

func (p *Parser) exponentiation() (*Expr, error) {
	if p.sym.Kind == token.Minus {
		if err := p.scan(); err != nil {
			return nil, err
		}
		x, err := p.exponentiation()
		if err != nil {
			return nil, err
		}
		if x.IsLiteral() {
			return NumberNode(-x.Val), nil
		}
		return unary(Sign, x), nil
	}

	switch p.sym.Kind {
	case token.Real:
		v := p.sym.RealVal
		if err := p.scan(); err != nil {
			return nil, err
		}
		return NumberNode(v), nil
	case token.NNInteger:
		v := float64(p.sym.IntVal)
		if err := p.scan(); err != nil {
			return nil, err
		}
		return NumberNode(v), nil
	case token.KwPi:
		if err := p.scan(); err != nil {
			return nil, err
		}
		return NumberNode(math.Pi), nil
	case token.Identifier:
		name := p.sym.Str
		if err := p.scan(); err != nil {
			return nil, err
		}
		return IdNode(name), nil
	case token.LParen:
		if err := p.scan(); err != nil {
			return nil, err
		}
		x, err := p.exp()
		if err != nil {
			return nil, err
		}
		if err := p.check(token.RParen); err != nil {
			return nil, err
		}
		return x, nil
	}

	if k, ok := unaryFnKinds[p.sym.Kind]; ok {
		if err := p.scan(); err != nil {
			return nil, err
		}
		if err := p.check(token.LParen); err != nil {
			return nil, err
		}
		x, err := p.exp()
		if err != nil {
			return nil, err
		}
		if err := p.check(token.RParen); err != nil {
			return nil, err
		}
		return unary(k, x), nil
	}

	return nil, p.errorf("invalid expression, unexpected %s", p.sym.Kind)
}
