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
package qasm

import (
	"strconv"
	"strings"

	"github.com/qcirlang/qcir/pkg/circuit"
	"github.com/qcirlang/qcir/pkg/expr"
	"github.com/qcirlang/qcir/pkg/gate"
	"github.com/qcirlang/qcir/pkg/qcirerr"
	"github.com/qcirlang/qcir/pkg/token"
)

// gateDecl parses `gate name(params) args { body }`, inlines body against
// already-registered table entries, and installs the flattened definition
// -- unless it is redundant with the controlled-inference path (§4.C).
func (f *Frontend) gateDecl() error {
	if err := f.scan(); err != nil {
		return err
	}
	name := f.sym.Str
	if err := f.check(token.Identifier); err != nil {
		return err
	}
	params, err := f.optionalParenIdentList()
	if err != nil {
		return err
	}
	args, err := f.identList(token.LBrace)
	if err != nil {
		return err
	}

	argIndex := make(map[string]int, len(args))
	for i, a := range args {
		argIndex[a] = i
	}

	var calls []gate.Call
	for f.sym.Kind != token.RBrace {
		call, err := f.gateBodyCall()
		if err != nil {
			return err
		}
		calls = append(calls, call)
	}
	if err := f.check(token.RBrace); err != nil {
		return err
	}

	if f.tbl.ShouldSkipDeclaration(name) {
		return nil
	}

	body, err := f.tbl.Inline(calls, argIndex)
	if err != nil {
		return err
	}
	f.tbl.Define(&gate.GateDef{Name: name, ParameterNames: params, ArgumentNames: args, Body: body})
	return nil
}

// gateBodyCall reads one `name(params) args;` statement inside a gate body.
func (f *Frontend) gateBodyCall() (gate.Call, error) {
	name := f.sym.Str
	if err := f.check(token.Identifier); err != nil {
		return gate.Call{}, err
	}
	var params []*expr.Expr
	if f.sym.Kind == token.LParen {
		if err := f.scan(); err != nil {
			return gate.Call{}, err
		}
		for f.sym.Kind != token.RParen {
			p, err := f.parseParamExpr()
			if err != nil {
				return gate.Call{}, err
			}
			params = append(params, p)
			if f.sym.Kind == token.Comma {
				if err := f.scan(); err != nil {
					return gate.Call{}, err
				}
			}
		}
		if err := f.check(token.RParen); err != nil {
			return gate.Call{}, err
		}
	}
	args, err := f.identList(token.Semicolon)
	if err != nil {
		return gate.Call{}, err
	}
	return gate.Call{Name: name, Parameters: params, Arguments: args}, nil
}

// parseParamExpr drives pkg/expr's recursive-descent parser over this
// frontend's own token stream, sharing the single lookahead token.
func (f *Frontend) parseParamExpr() (*expr.Expr, error) {
	primed := false
	next := func() (token.Token, error) {
		if !primed {
			primed = true
			return f.sym, nil
		}
		return f.scan1()
	}
	p, err := expr.NewParser(next)
	if err != nil {
		return nil, err
	}
	e, err := p.ParseExp()
	if err != nil {
		return nil, err
	}
	// expr.Parser advanced the scanner via f.scan1; resynchronise
	// this frontend's lookahead to the token the expression parser landed
	// on (the one just past the expression).
	f.sym = p.Lookahead()
	return e, nil
}

// scan1 advances this frontend's own scanner and returns the token read.
// parseParamExpr's token feed calls it for every token after the shared
// first one.
func (f *Frontend) scan1() (token.Token, error) {
	if err := f.scan(); err != nil {
		return token.Token{}, err
	}
	return f.sym, nil
}

// gateApplicationStmt implements the gate-application semantics of §4.E,
// the most intricate piece of the frontend.
func (f *Frontend) gateApplicationStmt() error {
	name := f.sym.Str
	switch f.sym.Kind {
	case token.KwU:
		return f.nativeUStmt()
	case token.KwCX:
		return f.nativeCXStmt()
	case token.KwSwap:
		return f.nativeSwapStmt()
	}
	if f.sym.Kind != token.Identifier {
		return &qcirerr.ParseError{Line: f.sym.Line, Col: f.sym.Col, Message: "expected a gate application"}
	}
	if err := f.scan(); err != nil {
		return err
	}

	var paramExprs []*expr.Expr
	if f.sym.Kind == token.LParen {
		if err := f.scan(); err != nil {
			return err
		}
		for f.sym.Kind != token.RParen {
			p, err := f.parseParamExpr()
			if err != nil {
				return err
			}
			paramExprs = append(paramExprs, p)
			if f.sym.Kind == token.Comma {
				if err := f.scan(); err != nil {
					return err
				}
			}
		}
		if err := f.check(token.RParen); err != nil {
			return err
		}
	}

	var argRefs [][]int
	for {
		idx, err := f.argumentQubit()
		if err != nil {
			return err
		}
		argRefs = append(argRefs, idx)
		if f.sym.Kind != token.Comma {
			break
		}
		if err := f.scan(); err != nil {
			return err
		}
	}
	if err := f.check(token.Semicolon); err != nil {
		return err
	}

	def, direct := f.tbl.Lookup(name)
	base, ncontrols := gate.StripControlPrefix(name)
	inferred := false
	if !direct {
		bdef, ok := f.tbl.Lookup(base)
		if !ok || len(bdef.Body) != 1 {
			return &qcirerr.UndefinedGate{Name: name}
		}
		def = bdef
		inferred = true
	}

	if inferred {
		if len(argRefs) != ncontrols+len(def.ArgumentNames) {
			return &qcirerr.ArgumentCountMismatch{Expected: ncontrols + len(def.ArgumentNames), Got: len(argRefs)}
		}
		for _, a := range argRefs {
			if len(a) > 1 {
				return &qcirerr.CtrlRegisterUnsupported{}
			}
		}
		return f.emitInferredControlled(def, paramExprs, argRefs, ncontrols)
	}

	if len(argRefs) != len(def.ArgumentNames) {
		return &qcirerr.ArgumentCountMismatch{Expected: len(def.ArgumentNames), Got: len(argRefs)}
	}
	return f.emitDirectCall(def, paramExprs, argRefs)
}

// broadcastShape validates the register-broadcast rule of §4.E and returns
// the common slice length s (1 if every argument is scalar).
func broadcastShape(argRefs [][]int) (int, error) {
	s := 1
	for _, a := range argRefs {
		if len(a) > 1 {
			if s != 1 && s != len(a) {
				return 0, &qcirerr.RegisterSizeMismatch{Message: "conflicting slice lengths in broadcast"}
			}
			s = len(a)
		}
	}
	return s, nil
}

func (f *Frontend) emitDirectCall(def *gate.GateDef, paramExprs []*expr.Expr, argRefs [][]int) error {
	s, err := broadcastShape(argRefs)
	if err != nil {
		return err
	}
	env := make(map[string]*expr.Expr, len(def.ParameterNames))
	for i, p := range def.ParameterNames {
		if i < len(paramExprs) {
			env[p] = paramExprs[i]
		}
	}
	for i := 0; i < s; i++ {
		row := make([]int, len(argRefs))
		for j, a := range argRefs {
			if len(a) == 1 {
				row[j] = a[0]
			} else {
				row[j] = a[i]
			}
		}
		for _, bg := range def.Body {
			op, err := bodyGateToOperation(bg, row, env, f.total())
			if err != nil {
				return err
			}
			f.circ.Ops = append(f.circ.Ops, op)
		}
	}
	return nil
}

func (f *Frontend) emitInferredControlled(def *gate.GateDef, paramExprs []*expr.Expr, argRefs [][]int, ncontrols int) error {
	env := make(map[string]*expr.Expr, len(def.ParameterNames))
	for i, p := range def.ParameterNames {
		if i < len(paramExprs) {
			env[p] = paramExprs[i]
		}
	}
	controls := make([]circuit.Control, ncontrols)
	for i := 0; i < ncontrols; i++ {
		controls[i] = circuit.Control{Qubit: argRefs[i][0], Polarity: circuit.Pos}
	}
	row := make([]int, len(def.ArgumentNames))
	for i := range row {
		row[i] = argRefs[ncontrols+i][0]
	}
	for _, bg := range def.Body {
		op, err := bodyGateToOperation(bg, row, env, f.total())
		if err != nil {
			return err
		}
		op.Controls = append(append([]circuit.Control{}, controls...), op.Controls...)
		if err := op.Validate(); err != nil {
			return err
		}
		f.circ.Ops = append(f.circ.Ops, op)
	}
	return nil
}

func bodyGateToOperation(bg gate.BodyGate, row []int, env map[string]*expr.Expr, nqt int) (circuit.Operation, error) {
	theta := expr.RewriteExpr(bg.Theta, env)
	phi := expr.RewriteExpr(bg.Phi, env)
	lambda := expr.RewriteExpr(bg.Lambda, env)
	params := [3]float64{valueOrZero(theta), valueOrZero(phi), valueOrZero(lambda)}

	switch bg.Kind {
	case gate.U:
		return circuit.NewStandard(nqt, circuit.GateU3, nil, []int{row[bg.Target]}, params)
	case gate.CX:
		return circuit.NewStandard(nqt, circuit.GateX, []circuit.Control{{Qubit: row[bg.Controls[0]], Polarity: circuit.Pos}}, []int{row[bg.Target]}, params)
	case gate.CU:
		ctrls := make([]circuit.Control, len(bg.Controls))
		for i, c := range bg.Controls {
			ctrls[i] = circuit.Control{Qubit: row[c], Polarity: circuit.Pos}
		}
		return circuit.NewStandard(nqt, circuit.GateU3, ctrls, []int{row[bg.Target]}, params)
	case gate.MCX:
		ctrls := make([]circuit.Control, len(bg.Controls))
		for i, c := range bg.Controls {
			ctrls[i] = circuit.Control{Qubit: row[c], Polarity: circuit.Pos}
		}
		return circuit.NewStandard(nqt, circuit.GateX, ctrls, []int{row[bg.Target]}, params)
	}
	return circuit.Operation{}, &qcirerr.ParseError{Message: "unhandled body gate kind"}
}

func valueOrZero(e *expr.Expr) float64 {
	if e == nil {
		return 0
	}
	return expr.Eval(e)
}

func (f *Frontend) nativeUStmt() error {
	if err := f.scan(); err != nil {
		return err
	}
	if err := f.check(token.LParen); err != nil {
		return err
	}
	theta, err := f.parseParamExpr()
	if err != nil {
		return err
	}
	if err := f.check(token.Comma); err != nil {
		return err
	}
	phi, err := f.parseParamExpr()
	if err != nil {
		return err
	}
	if err := f.check(token.Comma); err != nil {
		return err
	}
	lambda, err := f.parseParamExpr()
	if err != nil {
		return err
	}
	if err := f.check(token.RParen); err != nil {
		return err
	}
	idx, err := f.argumentQubit()
	if err != nil {
		return err
	}
	if err := f.check(token.Semicolon); err != nil {
		return err
	}
	op, err := circuit.NewStandard(f.total(), circuit.GateU3, nil, idx, [3]float64{valueOrZero(theta), valueOrZero(phi), valueOrZero(lambda)})
	if err != nil {
		return err
	}
	f.circ.Ops = append(f.circ.Ops, op)
	return nil
}

func (f *Frontend) nativeCXStmt() error {
	if err := f.scan(); err != nil {
		return err
	}
	c, err := f.argumentQubit()
	if err != nil {
		return err
	}
	if err := f.check(token.Comma); err != nil {
		return err
	}
	t, err := f.argumentQubit()
	if err != nil {
		return err
	}
	if err := f.check(token.Semicolon); err != nil {
		return err
	}
	s, err := broadcastShape([][]int{c, t})
	if err != nil {
		return err
	}
	for i := 0; i < s; i++ {
		ci, ti := pick(c, i), pick(t, i)
		op, err := circuit.NewStandard(f.total(), circuit.GateX, []circuit.Control{{Qubit: ci, Polarity: circuit.Pos}}, []int{ti}, [3]float64{})
		if err != nil {
			return err
		}
		f.circ.Ops = append(f.circ.Ops, op)
	}
	return nil
}

// pick returns a[i] for a multi-element slice, or a[0] (the shared scalar)
// when a has length 1, per §4.E's register-broadcast rule.
func pick(a []int, i int) int {
	if len(a) == 1 {
		return a[0]
	}
	return a[i]
}

func (f *Frontend) nativeSwapStmt() error {
	if err := f.scan(); err != nil {
		return err
	}
	a, err := f.argumentQubit()
	if err != nil {
		return err
	}
	if err := f.check(token.Comma); err != nil {
		return err
	}
	b, err := f.argumentQubit()
	if err != nil {
		return err
	}
	if err := f.check(token.Semicolon); err != nil {
		return err
	}
	if len(a) != len(b) {
		return &qcirerr.RegisterSizeMismatch{Message: "swap register length mismatch"}
	}
	for i := range a {
		op, err := circuit.NewStandard(f.total(), circuit.GateSWAP, nil, []int{a[i], b[i]}, [3]float64{})
		if err != nil {
			return err
		}
		f.circ.Ops = append(f.circ.Ops, op)
	}
	return nil
}

// LoadLayoutComments scans raw source text for the two reserved comment
// forms `// i p0 p1 ...` and `// o p0 p1 ...` and, if present, installs them
// as the circuit's initialLayout/outputPermutation, overriding the identity
// default §4.E installs per-declaration.
func LoadLayoutComments(c *circuit.Circuit, source string) {
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		var target map[int]int
		switch {
		case strings.HasPrefix(line, "// i "):
			target = c.InitialLayout
			line = strings.TrimPrefix(line, "// i ")
		case strings.HasPrefix(line, "// o "):
			target = c.OutputPermutation
			line = strings.TrimPrefix(line, "// o ")
		default:
			continue
		}
		for k := range target {
			delete(target, k)
		}
		for logical, tok := range strings.Fields(line) {
			p, err := strconv.Atoi(tok)
			if err != nil {
				continue
			}
			target[p] = logical
		}
	}
}
