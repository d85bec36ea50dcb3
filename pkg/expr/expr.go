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

// Package expr implements the gate-argument expression language of the
// OpenQASM-2 frontend: a small arithmetic grammar over literals, pi,
// identifiers and a handful of unary functions, with eager constant folding.
package expr

// Kind identifies the shape of an expression tree node.
type Kind uint

const (
	Number Kind = iota
	Id
	Plus
	Minus
	Sign
	Times
	Div
	Power
	Sin
	Cos
	Tan
	Exp
	Ln
	Sqrt
)

// Expr is an arithmetic expression tree node. Number nodes carry Val; Id
// nodes carry Name; every other kind carries one or two Children.
type Expr struct {
	Kind     Kind
	Val      float64
	Name     string
	Children []*Expr
}

// NumberNode builds a literal node.
func NumberNode(v float64) *Expr { return &Expr{Kind: Number, Val: v} }

// IdNode builds a free-identifier node (a formal parameter reference).
func IdNode(name string) *Expr { return &Expr{Kind: Id, Name: name} }

// IsLiteral reports whether e is a folded numeric literal.
func (e *Expr) IsLiteral() bool { return e.Kind == Number }

// Clone deep-copies an expression tree.
func (e *Expr) Clone() *Expr {
	if e == nil {
		return nil
	}
	c := &Expr{Kind: e.Kind, Val: e.Val, Name: e.Name}
	if len(e.Children) > 0 {
		c.Children = make([]*Expr, len(e.Children))
		for i, ch := range e.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return c
}

// binary builds a binary-operator node, folding immediately if both operands
// are literals.
func binary(k Kind, a, b *Expr) *Expr {
	n := &Expr{Kind: k, Children: []*Expr{a, b}}
	return fold(n)
}

// unary builds a unary-operator node (Sign or a transcendental function),
// folding immediately if the operand is a literal.
func unary(k Kind, a *Expr) *Expr {
	n := &Expr{Kind: k, Children: []*Expr{a}}
	return fold(n)
}

// DivExpr builds a division node, exported for gate-table bodies that need
// to express a builtin definition (e.g. qelib1's crz) symbolically in terms
// of an as-yet-unbound formal parameter.
func DivExpr(a, b *Expr) *Expr { return binary(Div, a, b) }

// NegateExpr builds a sign node (or folds immediately if a is a literal).
func NegateExpr(a *Expr) *Expr { return unary(Sign, a) }
