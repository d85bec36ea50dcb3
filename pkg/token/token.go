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

// Package token provides the scanner shared by the OpenQASM-2 frontend: a
// token stream over an input source plus an include stack.
package token

// Kind identifies the lexical category of a Token.
type Kind uint

const (
	// EOF signals the end of the (fully unwound) include stack.
	EOF Kind = iota
	// Include signals the "include" directive keyword.
	Include
	// Identifier signals a bare name.
	Identifier
	// NNInteger signals a non-negative integer literal.
	NNInteger
	// Real signals a floating-point literal.
	Real
	// Str signals a double-quoted string literal.
	Str

	// Symbols.
	Plus
	Minus
	Times
	Div
	Power
	Assign
	Eq
	Semicolon
	Comma
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Gt

	// Keywords.
	KwQreg
	KwCreg
	KwGate
	KwOpaque
	KwBarrier
	KwMeasure
	KwReset
	KwIf
	KwOpenQASM
	KwU
	KwCX
	KwSwap
	KwPi
	KwSin
	KwCos
	KwTan
	KwExp
	KwLn
	KwSqrt
	KwProbabilities
	KwSnapshot
)

// keywords maps the reserved words of §4.A onto their token kind.
var keywords = map[string]Kind{
	"include":       Include,
	"qreg":          KwQreg,
	"creg":          KwCreg,
	"gate":          KwGate,
	"opaque":        KwOpaque,
	"barrier":       KwBarrier,
	"measure":       KwMeasure,
	"reset":         KwReset,
	"if":            KwIf,
	"OPENQASM":      KwOpenQASM,
	"U":             KwU,
	"CX":            KwCX,
	"swap":          KwSwap,
	"pi":            KwPi,
	"sin":           KwSin,
	"cos":           KwCos,
	"tan":           KwTan,
	"exp":           KwExp,
	"ln":            KwLn,
	"sqrt":          KwSqrt,
	"show_probabilities": KwProbabilities,
	"snapshot":      KwSnapshot,
}

// names gives the display form of each kind, used in error messages.
var names = map[Kind]string{
	EOF:             "EOF",
	Include:         "include",
	Identifier:      "<identifier>",
	NNInteger:       "<nninteger>",
	Real:            "<real>",
	Str:             "<string>",
	Plus:            "+",
	Minus:           "-",
	Times:           "*",
	Div:             "/",
	Power:           "^",
	Assign:          "=",
	Eq:              "==",
	Semicolon:       ";",
	Comma:           ",",
	LParen:          "(",
	RParen:          ")",
	LBracket:        "[",
	RBracket:        "]",
	LBrace:          "{",
	RBrace:          "}",
	Gt:              ">",
	KwQreg:          "qreg",
	KwCreg:          "creg",
	KwGate:          "gate",
	KwOpaque:        "opaque",
	KwBarrier:       "barrier",
	KwMeasure:       "measure",
	KwReset:         "reset",
	KwIf:            "if",
	KwOpenQASM:      "OPENQASM",
	KwU:             "U",
	KwCX:            "CX",
	KwSwap:          "swap",
	KwPi:            "pi",
	KwSin:           "sin",
	KwCos:           "cos",
	KwTan:           "tan",
	KwExp:           "exp",
	KwLn:            "ln",
	KwSqrt:          "sqrt",
	KwProbabilities: "show_probabilities",
	KwSnapshot:      "snapshot",
}

// String gives the display form of a kind, used in error messages.
func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return "?"
}

// Token associates a lexical category with its source position and, where
// relevant, its decoded value.
type Token struct {
	Kind Kind
	Line int
	Col  int
	// IntVal holds the decoded value of an NNInteger token.
	IntVal int
	// RealVal holds the decoded value of a Real token (or an NNInteger,
	// for callers that want a uniform numeric view).
	RealVal float64
	// Str holds the text of an Identifier or Str token.
	Str string
}
