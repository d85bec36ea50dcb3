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

import "math"

// fold collapses n to a Number literal if every child is already a literal,
// using IEEE-754 double arithmetic with the usual trig/log/exp semantics
// (radians). It leaves n unchanged otherwise.
func fold(n *Expr) *Expr {
	for _, c := range n.Children {
		if !c.IsLiteral() {
			return n
		}
	}
	switch n.Kind {
	case Sign:
		return NumberNode(-n.Children[0].Val)
	case Plus:
		return NumberNode(n.Children[0].Val + n.Children[1].Val)
	case Minus:
		return NumberNode(n.Children[0].Val - n.Children[1].Val)
	case Times:
		return NumberNode(n.Children[0].Val * n.Children[1].Val)
	case Div:
		return NumberNode(n.Children[0].Val / n.Children[1].Val)
	case Power:
		return NumberNode(math.Pow(n.Children[0].Val, n.Children[1].Val))
	case Sin:
		return NumberNode(math.Sin(n.Children[0].Val))
	case Cos:
		return NumberNode(math.Cos(n.Children[0].Val))
	case Tan:
		return NumberNode(math.Tan(n.Children[0].Val))
	case Exp:
		return NumberNode(math.Exp(n.Children[0].Val))
	case Ln:
		return NumberNode(math.Log(n.Children[0].Val))
	case Sqrt:
		return NumberNode(math.Sqrt(n.Children[0].Val))
	}
	return n
}

// RewriteExpr substitutes every Id node by cloning the subtree bound for its
// name in env, then re-folds bottom-up. It is the only interface through
// which a gate body's formal parameters become numeric at a call site.
func RewriteExpr(e *Expr, env map[string]*Expr) *Expr {
	if e == nil {
		return nil
	}
	if e.Kind == Id {
		if bound, ok := env[e.Name]; ok {
			return bound.Clone()
		}
		return e.Clone()
	}
	n := &Expr{Kind: e.Kind, Val: e.Val, Name: e.Name}
	if len(e.Children) > 0 {
		n.Children = make([]*Expr, len(e.Children))
		for i, c := range e.Children {
			n.Children[i] = RewriteExpr(c, env)
		}
	}
	return fold(n)
}

// Eval returns the numeric value of a fully-folded (parameter-free)
// expression. It panics if e still contains an Id node; callers are expected
// to RewriteExpr first.
func Eval(e *Expr) float64 {
	if e.IsLiteral() {
		return e.Val
	}
	if e.Kind == Id {
		panic("expr: Eval called on an unbound identifier " + e.Name)
	}
	vals := make([]float64, len(e.Children))
	for i, c := range e.Children {
		vals[i] = Eval(c)
	}
	switch e.Kind {
	case Sign:
		return -vals[0]
	case Plus:
		return vals[0] + vals[1]
	case Minus:
		return vals[0] - vals[1]
	case Times:
		return vals[0] * vals[1]
	case Div:
		return vals[0] / vals[1]
	case Power:
		return math.Pow(vals[0], vals[1])
	case Sin:
		return math.Sin(vals[0])
	case Cos:
		return math.Cos(vals[0])
	case Tan:
		return math.Tan(vals[0])
	case Exp:
		return math.Exp(vals[0])
	case Ln:
		return math.Log(vals[0])
	case Sqrt:
		return math.Sqrt(vals[0])
	}
	panic("expr: Eval: unhandled kind")
}
