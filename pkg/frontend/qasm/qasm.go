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

// Package qasm implements the OpenQASM-2 frontend of §4.E: it drives the
// scanner, expression parser and gate table to populate a circuit.Circuit.
package qasm

import (
	log "github.com/sirupsen/logrus"

	"github.com/qcirlang/qcir/pkg/circuit"
	"github.com/qcirlang/qcir/pkg/gate"
	"github.com/qcirlang/qcir/pkg/qcirerr"
	"github.com/qcirlang/qcir/pkg/token"
)

// Frontend drives an OpenQASM-2 source into a fresh circuit.Circuit.
type Frontend struct {
	sc   *token.Scanner
	sym  token.Token
	tbl  *gate.Table
	circ *circuit.Circuit

	// qubitArgs resolves an identifier (bare register name or a sliced
	// "name[i]" reference) to a slice of logical qubit indices.
	qubitArgs map[string][]int
	cregArgs  map[string][]int
}

// New constructs a frontend over a named source, with resolve consulted for
// `include` directives (nil if the source is known not to use them).
func New(name, text string, resolve token.Resolver) *Frontend {
	return &Frontend{
		sc:        token.NewScanner(name, text, resolve),
		tbl:       gate.NewTable(),
		circ:      circuit.New(),
		qubitArgs: map[string][]int{},
		cregArgs:  map[string][]int{},
	}
}

func (f *Frontend) scan() error {
	t, err := f.sc.Next()
	if err != nil {
		return err
	}
	f.sym = t
	return nil
}

func (f *Frontend) check(k token.Kind) error {
	if f.sym.Kind != k {
		return &qcirerr.ParseError{Line: f.sym.Line, Col: f.sym.Col, Message: "expected " + k.String() + ", got " + f.sym.Kind.String()}
	}
	return f.scan()
}

// Import runs the entry protocol of §4.E and returns the populated circuit.
func (f *Frontend) Import() (*circuit.Circuit, error) {
	if err := f.scan(); err != nil {
		return nil, err
	}
	if err := f.check(token.KwOpenQASM); err != nil {
		return nil, err
	}
	if f.sym.Kind != token.Real && f.sym.Kind != token.NNInteger {
		return nil, &qcirerr.BadHeader{Message: "expected a version number after OPENQASM"}
	}
	if err := f.scan(); err != nil {
		return nil, err
	}
	if err := f.check(token.Semicolon); err != nil {
		return nil, err
	}

	for f.sym.Kind != token.EOF {
		if err := f.statement(); err != nil {
			return nil, err
		}
	}

	f.installDefaultLayout()
	log.WithFields(log.Fields{"nqubits": f.circ.NQubits, "nclassics": f.circ.NClassics}).Debug("qasm: import complete")
	return f.circ, nil
}

func (f *Frontend) installDefaultLayout() {
	// Identity layouts were already installed per-register at declaration
	// time (circuit.AddQubitRegister); here we only need to restrict
	// outputPermutation to qubits that are not idle in ops, per §4.E's
	// final paragraph. This always runs; explicit "// i"/"// o" layout
	// comments loaded afterwards by LoadLayoutComments replace both maps.
	for p := range f.circ.OutputPermutation {
		if f.circ.IsIdleQubit(p) {
			delete(f.circ.OutputPermutation, p)
		}
	}
}

func (f *Frontend) statement() error {
	switch f.sym.Kind {
	case token.KwQreg:
		return f.qregDecl()
	case token.KwCreg:
		return f.cregDecl()
	case token.KwGate:
		return f.gateDecl()
	case token.KwOpaque:
		return f.opaqueDecl()
	case token.KwBarrier:
		return f.barrierStmt()
	case token.KwIf:
		return f.ifStmt()
	case token.KwSnapshot:
		return f.snapshotStmt()
	case token.KwProbabilities:
		if err := f.scan(); err != nil {
			return err
		}
		f.circ.Ops = append(f.circ.Ops, circuit.Operation{Kind: circuit.KindNonUnitary, NQubitsTotal: f.total(), NonUnitary: circuit.OpShowProbabilities})
		return f.check(token.Semicolon)
	case token.KwMeasure:
		return f.measureStmt()
	case token.KwReset:
		return f.resetStmt()
	default:
		return f.gateApplicationStmt()
	}
}

func (f *Frontend) total() int { return f.circ.NQubits + f.circ.NAncillae }

func (f *Frontend) qregDecl() error {
	if err := f.scan(); err != nil {
		return err
	}
	name := f.sym.Str
	if err := f.check(token.Identifier); err != nil {
		return err
	}
	if err := f.check(token.LBracket); err != nil {
		return err
	}
	n := f.sym.IntVal
	if err := f.check(token.NNInteger); err != nil {
		return err
	}
	if err := f.check(token.RBracket); err != nil {
		return err
	}
	if err := f.check(token.Semicolon); err != nil {
		return err
	}
	base := f.circ.NQubits
	if err := f.circ.AddQubitRegister(n, name); err != nil {
		return err
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = base + i
	}
	f.qubitArgs[name] = idx
	return nil
}

func (f *Frontend) cregDecl() error {
	if err := f.scan(); err != nil {
		return err
	}
	name := f.sym.Str
	if err := f.check(token.Identifier); err != nil {
		return err
	}
	if err := f.check(token.LBracket); err != nil {
		return err
	}
	n := f.sym.IntVal
	if err := f.check(token.NNInteger); err != nil {
		return err
	}
	if err := f.check(token.RBracket); err != nil {
		return err
	}
	if err := f.check(token.Semicolon); err != nil {
		return err
	}
	base := f.circ.NClassics
	if err := f.circ.AddClassicalRegister(n, name); err != nil {
		return err
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = base + i
	}
	f.cregArgs[name] = idx
	return nil
}

func (f *Frontend) opaqueDecl() error {
	// An opaque gate declares a signature with no body; record it with an
	// empty flattened body so call sites resolve but emit nothing.
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
	args, err := f.identList(token.Semicolon)
	if err != nil {
		return err
	}
	if err := f.check(token.Semicolon); err != nil {
		return err
	}
	f.tbl.Define(&gate.GateDef{Name: name, ParameterNames: params, ArgumentNames: args, Body: nil})
	return nil
}

func (f *Frontend) optionalParenIdentList() ([]string, error) {
	if f.sym.Kind != token.LParen {
		return nil, nil
	}
	if err := f.scan(); err != nil {
		return nil, err
	}
	return f.identList(token.RParen)
}

// identList reads comma-separated identifiers until stop is seen (and
// consumes stop).
func (f *Frontend) identList(stop token.Kind) ([]string, error) {
	var out []string
	if f.sym.Kind == stop {
		return out, f.scan()
	}
	for {
		out = append(out, f.sym.Str)
		if err := f.check(token.Identifier); err != nil {
			return nil, err
		}
		if f.sym.Kind == token.Comma {
			if err := f.scan(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return out, f.check(stop)
}

func (f *Frontend) barrierStmt() error {
	if err := f.scan(); err != nil {
		return err
	}
	targets, err := f.argumentQubitList()
	if err != nil {
		return err
	}
	if err := f.check(token.Semicolon); err != nil {
		return err
	}
	f.circ.Ops = append(f.circ.Ops, circuit.Operation{Kind: circuit.KindNonUnitary, NQubitsTotal: f.total(), NonUnitary: circuit.OpBarrier, Targets: targets})
	return nil
}

func (f *Frontend) snapshotStmt() error {
	if err := f.scan(); err != nil {
		return err
	}
	if err := f.check(token.LParen); err != nil {
		return err
	}
	n := f.sym.IntVal
	if err := f.check(token.NNInteger); err != nil {
		return err
	}
	if err := f.check(token.RParen); err != nil {
		return err
	}
	targets, err := f.argumentQubitList()
	if err != nil {
		return err
	}
	if err := f.check(token.Semicolon); err != nil {
		return err
	}
	f.circ.Ops = append(f.circ.Ops, circuit.Operation{Kind: circuit.KindNonUnitary, NQubitsTotal: f.total(), NonUnitary: circuit.OpSnapshot, Targets: targets, SnapshotIndex: n})
	return nil
}

func (f *Frontend) measureStmt() error {
	if err := f.scan(); err != nil {
		return err
	}
	qtargets, err := f.argumentQubit()
	if err != nil {
		return err
	}
	if err := f.check(token.Minus); err != nil {
		return err
	}
	if err := f.check(token.Gt); err != nil {
		return err
	}
	ctargets, err := f.argumentClassical()
	if err != nil {
		return err
	}
	if err := f.check(token.Semicolon); err != nil {
		return err
	}
	if len(qtargets) != len(ctargets) {
		return &qcirerr.ArgumentCountMismatch{Expected: len(qtargets), Got: len(ctargets)}
	}
	f.circ.Ops = append(f.circ.Ops, circuit.Operation{
		Kind: circuit.KindNonUnitary, NQubitsTotal: f.total(), NonUnitary: circuit.OpMeasure,
		MeasureTargets: qtargets, MeasureClassics: ctargets,
	})
	return nil
}

func (f *Frontend) resetStmt() error {
	if err := f.scan(); err != nil {
		return err
	}
	targets, err := f.argumentQubitList()
	if err != nil {
		return err
	}
	if err := f.check(token.Semicolon); err != nil {
		return err
	}
	f.circ.Ops = append(f.circ.Ops, circuit.Operation{Kind: circuit.KindNonUnitary, NQubitsTotal: f.total(), NonUnitary: circuit.OpReset, Targets: targets})
	return nil
}

func (f *Frontend) ifStmt() error {
	if err := f.scan(); err != nil {
		return err
	}
	if err := f.check(token.LParen); err != nil {
		return err
	}
	cregName := f.sym.Str
	if err := f.check(token.Identifier); err != nil {
		return err
	}
	if err := f.check(token.Eq); err != nil {
		return err
	}
	n := f.sym.IntVal
	if err := f.check(token.NNInteger); err != nil {
		return err
	}
	if err := f.check(token.RParen); err != nil {
		return err
	}
	idx, ok := f.cregArgs[cregName]
	if !ok {
		return &qcirerr.UnknownRegister{Name: cregName}
	}
	before := len(f.circ.Ops)
	if err := f.gateApplicationStmt(); err != nil {
		return err
	}
	if len(f.circ.Ops) != before+1 {
		return &qcirerr.CtrlRegisterUnsupported{}
	}
	inner := f.circ.Ops[before]
	f.circ.Ops[before] = circuit.Operation{
		Kind: circuit.KindClassicControlled, NQubitsTotal: f.total(),
		CregBase: idx[0], CregLength: len(idx), Expected: n, Inner: &inner,
	}
	return nil
}

// argumentQubit reads one "name" or "name[i]" reference, returning its
// resolved logical indices (length 1 for an indexed reference).
func (f *Frontend) argumentQubit() ([]int, error) {
	name := f.sym.Str
	if err := f.check(token.Identifier); err != nil {
		return nil, err
	}
	all, ok := f.qubitArgs[name]
	if !ok {
		return nil, &qcirerr.UnknownRegister{Name: name}
	}
	if f.sym.Kind == token.LBracket {
		if err := f.scan(); err != nil {
			return nil, err
		}
		i := f.sym.IntVal
		if err := f.check(token.NNInteger); err != nil {
			return nil, err
		}
		if err := f.check(token.RBracket); err != nil {
			return nil, err
		}
		if i < 0 || i >= len(all) {
			return nil, &qcirerr.UnknownRegister{Name: name}
		}
		return []int{all[i]}, nil
	}
	return all, nil
}

func (f *Frontend) argumentClassical() ([]int, error) {
	name := f.sym.Str
	if err := f.check(token.Identifier); err != nil {
		return nil, err
	}
	all, ok := f.cregArgs[name]
	if !ok {
		return nil, &qcirerr.UnknownRegister{Name: name}
	}
	if f.sym.Kind == token.LBracket {
		if err := f.scan(); err != nil {
			return nil, err
		}
		i := f.sym.IntVal
		if err := f.check(token.NNInteger); err != nil {
			return nil, err
		}
		if err := f.check(token.RBracket); err != nil {
			return nil, err
		}
		return []int{all[i]}, nil
	}
	return all, nil
}

func (f *Frontend) argumentQubitList() ([]int, error) {
	var out []int
	for {
		idx, err := f.argumentQubit()
		if err != nil {
			return nil, err
		}
		out = append(out, idx...)
		if f.sym.Kind != token.Comma {
			break
		}
		if err := f.scan(); err != nil {
			return nil, err
		}
	}
	return out, nil
}
