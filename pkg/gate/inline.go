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
	"strings"

	"github.com/qcirlang/qcir/pkg/expr"
	"github.com/qcirlang/qcir/pkg/qcirerr"
)

// Call is one statement inside a `gate ... { ... }` declaration body: a
// reference to another table entry together with the parameter expressions
// and argument names the enclosing declaration used at that call site.
type Call struct {
	Name       string
	Parameters []*expr.Expr
	Arguments  []string
}

// StripControlPrefix strips leading 'c' characters from name, reporting how
// many were stripped. This mirrors the frontend's controlled-gate
// inference rule (§4.E) and is reused here to decide whether a declaration
// should be skipped as redundant.
func StripControlPrefix(name string) (base string, ncontrols int) {
	base = name
	for strings.HasPrefix(base, "c") && len(base) > 1 {
		base = base[1:]
		ncontrols++
	}
	return base, ncontrols
}

// ShouldSkipDeclaration reports whether a `gate` declaration named name is
// redundant because it matches `c^k <base>` for a base already present in
// the table with a single-body definition — the inferred-controlled path
// already produces its expansion, so installing an explicit definition
// would just shadow the inference rule for no benefit.
func (t *Table) ShouldSkipDeclaration(name string) bool {
	base, k := StripControlPrefix(name)
	if k == 0 {
		return false
	}
	def, ok := t.Lookup(base)
	return ok && len(def.Body) == 1
}

// Inline flattens a declaration's call list into a primitive body, binding
// each call's formal names against the already-registered table entry it
// refers to and rewriting its body expressions through the caller's
// parameter environment.
//
// argIndex maps an argument name used inside the declaration body to its
// index in the declaration's own ArgumentNames; it is built once by the
// caller and passed down, since Go has no closures over a comprehension.
func (t *Table) Inline(calls []Call, argIndex map[string]int) ([]BodyGate, error) {
	var out []BodyGate
	for _, call := range calls {
		def, ok := t.Lookup(call.Name)
		if !ok {
			return nil, &qcirerr.UndefinedGate{Name: call.Name}
		}
		if len(call.Parameters) != len(def.ParameterNames) {
			return nil, &qcirerr.ArgumentCountMismatch{Expected: len(def.ParameterNames), Got: len(call.Parameters)}
		}
		if len(call.Arguments) != len(def.ArgumentNames) {
			return nil, &qcirerr.ArgumentCountMismatch{Expected: len(def.ArgumentNames), Got: len(call.Arguments)}
		}

		env := make(map[string]*expr.Expr, len(def.ParameterNames))
		for i, p := range def.ParameterNames {
			env[p] = call.Parameters[i]
		}
		// Map the callee's argument positions onto indices in the enclosing
		// declaration's own argument list.
		argMap := make([]int, len(call.Arguments))
		for i, a := range call.Arguments {
			idx, ok := argIndex[a]
			if !ok {
				return nil, &qcirerr.UnknownRegister{Name: a}
			}
			argMap[i] = idx
		}

		for _, bg := range def.Body {
			out = append(out, BodyGate{
				Kind:     bg.Kind,
				Theta:    expr.RewriteExpr(bg.Theta, env),
				Phi:      expr.RewriteExpr(bg.Phi, env),
				Lambda:   expr.RewriteExpr(bg.Lambda, env),
				Controls: remapIndices(bg.Controls, argMap),
				Target:   argMap[bg.Target],
			})
		}
	}
	return out, nil
}

func remapIndices(idx []int, argMap []int) []int {
	if idx == nil {
		return nil
	}
	out := make([]int, len(idx))
	for i, v := range idx {
		out[i] = argMap[v]
	}
	return out
}
