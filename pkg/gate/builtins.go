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
package gate

import (
	"math"

	"github.com/qcirlang/qcir/pkg/expr"
)

func lit(v float64) *expr.Expr { return expr.NumberNode(v) }

// uGate builds a single-qubit U(theta,phi,lambda) body on argument index a.
func uGate(theta, phi, lambda float64, a int) BodyGate {
	return BodyGate{Kind: U, Theta: lit(theta), Phi: lit(phi), Lambda: lit(lambda), Target: a}
}

func cxGate(c, t int) BodyGate {
	return BodyGate{Kind: CX, Controls: []int{c}, Target: t}
}

// installBuiltins pre-parses the qelib1 builtin header into the table,
// as ready-made bodies of U and CX primitives, with the controlled
// single-qubit builtins (cu1, cu3) using CU and ccx using MCX.
func installBuiltins(t *Table) {
	def := func(name string, params, args []string, body ...BodyGate) {
		t.Define(&GateDef{Name: name, ParameterNames: params, ArgumentNames: args, Body: body})
	}

	def("u3", []string{"theta", "phi", "lambda"}, []string{"a"})
	// u3's body is the identity inlining target: BodyGate U itself, with the
	// formal parameter expressions substituted at call time rather than
	// folded here (RewriteExpr binds theta/phi/lambda per call).
	t.defs["u3"].Body = []BodyGate{{Kind: U, Theta: expr.IdNode("theta"), Phi: expr.IdNode("phi"), Lambda: expr.IdNode("lambda"), Target: 0}}

	def("u2", []string{"phi", "lambda"}, []string{"a"})
	t.defs["u2"].Body = []BodyGate{{Kind: U, Theta: lit(math.Pi / 2), Phi: expr.IdNode("phi"), Lambda: expr.IdNode("lambda"), Target: 0}}

	def("u1", []string{"lambda"}, []string{"a"})
	t.defs["u1"].Body = []BodyGate{{Kind: U, Theta: lit(0), Phi: lit(0), Lambda: expr.IdNode("lambda"), Target: 0}}

	def("u0", []string{"gamma"}, []string{"a"}, uGate(0, 0, 0, 0))
	def("id", nil, []string{"a"}, uGate(0, 0, 0, 0))

	def("cx", nil, []string{"c", "t"}, cxGate(0, 1))

	def("x", nil, []string{"a"}, uGate(math.Pi, 0, math.Pi, 0))
	def("y", nil, []string{"a"}, uGate(math.Pi, math.Pi/2, math.Pi/2, 0))
	def("z", nil, []string{"a"}, uGate(0, 0, math.Pi, 0))
	def("h", nil, []string{"a"}, uGate(math.Pi/2, 0, math.Pi, 0))
	def("s", nil, []string{"a"}, uGate(0, 0, math.Pi/2, 0))
	def("sdg", nil, []string{"a"}, uGate(0, 0, -math.Pi/2, 0))
	def("t", nil, []string{"a"}, uGate(0, 0, math.Pi/4, 0))
	def("tdg", nil, []string{"a"}, uGate(0, 0, -math.Pi/4, 0))

	def("rx", []string{"theta"}, []string{"a"})
	t.defs["rx"].Body = []BodyGate{{Kind: U, Theta: expr.IdNode("theta"), Phi: lit(-math.Pi / 2), Lambda: lit(math.Pi / 2), Target: 0}}
	def("ry", []string{"theta"}, []string{"a"})
	t.defs["ry"].Body = []BodyGate{{Kind: U, Theta: expr.IdNode("theta"), Phi: lit(0), Lambda: lit(0), Target: 0}}
	def("rz", []string{"phi"}, []string{"a"})
	t.defs["rz"].Body = []BodyGate{{Kind: U, Theta: lit(0), Phi: lit(0), Lambda: expr.IdNode("phi"), Target: 0}}

	// Two-qubit compounds, flattened to CX/U sequences.
	def("cz", nil, []string{"a", "b"},
		uGate(math.Pi/2, 0, math.Pi, 1), cxGate(0, 1), uGate(math.Pi/2, 0, math.Pi, 1))
	def("cy", nil, []string{"a", "b"},
		uGate(0, 0, -math.Pi/2, 1), cxGate(0, 1), uGate(0, 0, math.Pi/2, 1))
	def("ch", nil, []string{"a", "b"},
		uGate(0, 0, math.Pi/2, 1), uGate(math.Pi/2, 0, math.Pi, 1),
		uGate(0, 0, math.Pi/4, 1), cxGate(0, 1),
		uGate(0, 0, -math.Pi/4, 1), uGate(math.Pi/2, 0, math.Pi, 1),
		uGate(0, 0, -math.Pi/2, 1))
	def("swap", nil, []string{"a", "b"}, cxGate(0, 1), cxGate(1, 0), cxGate(0, 1))

	def("crz", []string{"lambda"}, []string{"a", "b"})
	half := expr.DivExpr(expr.IdNode("lambda"), lit(2))
	negHalf := expr.NegateExpr(expr.DivExpr(expr.IdNode("lambda"), lit(2)))
	t.defs["crz"].Body = []BodyGate{
		{Kind: U, Theta: lit(0), Phi: lit(0), Lambda: half, Target: 1},
		cxGate(0, 1),
		{Kind: U, Theta: lit(0), Phi: lit(0), Lambda: negHalf, Target: 1},
		cxGate(0, 1),
	}

	def("cu1", []string{"lambda"}, []string{"a", "b"})
	t.defs["cu1"].Body = []BodyGate{
		{Kind: CU, Theta: lit(0), Phi: lit(0), Lambda: expr.IdNode("lambda"), Controls: []int{0}, Target: 1},
	}
	def("cu3", []string{"theta", "phi", "lambda"}, []string{"a", "b"})
	t.defs["cu3"].Body = []BodyGate{
		{Kind: CU, Theta: expr.IdNode("theta"), Phi: expr.IdNode("phi"), Lambda: expr.IdNode("lambda"), Controls: []int{0}, Target: 1},
	}

	def("ccx", nil, []string{"a", "b", "c"}, BodyGate{Kind: MCX, Controls: []int{0, 1}, Target: 2})
}
