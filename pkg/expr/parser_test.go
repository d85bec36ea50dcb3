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
	"math"
	"testing"

	"github.com/qcirlang/qcir/pkg/token"
)

func tokenFeed(toks []token.Token) nextTokenFn {
	i := 0
	return func() (token.Token, error) {
		if i >= len(toks) {
			return token.Token{Kind: token.EOF}, nil
		}
		t := toks[i]
		i++
		return t, nil
	}
}

func numTok(v float64) token.Token { return token.Token{Kind: token.Real, RealVal: v} }

func TestConstantFolding(t *testing.T) {
	// pi/2 + 1
	toks := []token.Token{
		{Kind: token.KwPi}, {Kind: token.Div}, numTok(2),
		{Kind: token.Plus}, numTok(1),
		{Kind: token.EOF},
	}
	p, err := NewParser(tokenFeed(toks))
	if err != nil {
		t.Fatal(err)
	}
	e, err := p.ParseExp()
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsLiteral() {
		t.Fatalf("expected folded literal, got kind %v", e.Kind)
	}
	want := math.Pi/2 + 1
	if math.Abs(e.Val-want) > 1e-12 {
		t.Fatalf("got %v, want %v", e.Val, want)
	}
}

func TestUnboundIdentifierStaysSymbolic(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Identifier, Str: "theta"}, {Kind: token.Times}, numTok(2),
		{Kind: token.EOF},
	}
	p, err := NewParser(tokenFeed(toks))
	if err != nil {
		t.Fatal(err)
	}
	e, err := p.ParseExp()
	if err != nil {
		t.Fatal(err)
	}
	if e.Kind != Times {
		t.Fatalf("expected an unfolded times node, got %v", e.Kind)
	}
}

func TestRewriteExprFoldsAfterSubstitution(t *testing.T) {
	toks := []token.Token{
		{Kind: token.Identifier, Str: "theta"}, {Kind: token.Times}, numTok(2),
		{Kind: token.EOF},
	}
	p, err := NewParser(tokenFeed(toks))
	if err != nil {
		t.Fatal(err)
	}
	e, err := p.ParseExp()
	if err != nil {
		t.Fatal(err)
	}
	bound := RewriteExpr(e, map[string]*Expr{"theta": NumberNode(3)})
	if !bound.IsLiteral() || bound.Val != 6 {
		t.Fatalf("got %+v, want literal 6", bound)
	}
}

func TestUnaryFunctionFoldsOnLiteral(t *testing.T) {
	toks := []token.Token{
		{Kind: token.KwSqrt}, {Kind: token.LParen}, numTok(4), {Kind: token.RParen},
		{Kind: token.EOF},
	}
	p, err := NewParser(tokenFeed(toks))
	if err != nil {
		t.Fatal(err)
	}
	e, err := p.ParseExp()
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsLiteral() || e.Val != 2 {
		t.Fatalf("got %+v, want literal 2", e)
	}
}

func TestNegationOfLiteralNegatesInPlace(t *testing.T) {
	toks := []token.Token{{Kind: token.Minus}, numTok(5), {Kind: token.EOF}}
	p, err := NewParser(tokenFeed(toks))
	if err != nil {
		t.Fatal(err)
	}
	e, err := p.ParseExp()
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsLiteral() || e.Val != -5 {
		t.Fatalf("got %+v, want literal -5", e)
	}
}

func TestNegationOfIdentifierBuildsSignNode(t *testing.T) {
	toks := []token.Token{{Kind: token.Minus}, {Kind: token.Identifier, Str: "x"}, {Kind: token.EOF}}
	p, err := NewParser(tokenFeed(toks))
	if err != nil {
		t.Fatal(err)
	}
	e, err := p.ParseExp()
	if err != nil {
		t.Fatal(err)
	}
	if e.Kind != Sign {
		t.Fatalf("got kind %v, want Sign", e.Kind)
	}
}

func TestMismatchedParenIsParseError(t *testing.T) {
	toks := []token.Token{{Kind: token.LParen}, numTok(1), {Kind: token.EOF}}
	p, err := NewParser(tokenFeed(toks))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.ParseExp(); err == nil {
		t.Fatal("expected a parse error for the missing closing paren")
	}
}
