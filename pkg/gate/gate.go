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

// Package gate holds the OpenQASM-2 gate table: the builtin qelib1
// definitions plus whatever a program declares, and the inlining logic that
// flattens a gate call into a sequence of primitive BodyGate operations.
package gate

import "github.com/qcirlang/qcir/pkg/expr"

// BodyKind identifies which primitive a BodyGate applies.
type BodyKind uint

const (
	U BodyKind = iota
	CX
	CU
	MCX
)

// BodyGate is one primitive step of a gate definition's flattened body. Its
// argument fields are indices into the enclosing call's formal argument
// list, resolved to concrete qubits at inlining time.
type BodyGate struct {
	Kind     BodyKind
	Theta    *expr.Expr
	Phi      *expr.Expr
	Lambda   *expr.Expr
	Controls []int // indices into argument names, for CU/MCX
	Target   int   // index into argument names
}

// GateDef is a table entry: a parameterised, flattened gate body.
type GateDef struct {
	Name           string
	ParameterNames []string
	ArgumentNames  []string
	Body           []BodyGate
}

// Table is the gate registry consulted by the frontend: the qelib1 builtins
// at construction, plus whatever `gate` declarations the source adds.
type Table struct {
	defs map[string]*GateDef
}

// NewTable builds a table pre-populated with the qelib1 builtin header.
func NewTable() *Table {
	t := &Table{defs: map[string]*GateDef{}}
	installBuiltins(t)
	return t
}

// Lookup returns the definition for name, and whether it was found.
func (t *Table) Lookup(name string) (*GateDef, bool) {
	d, ok := t.defs[name]
	return d, ok
}

// Define installs a (possibly overwriting) definition. Callers are expected
// to have already inlined the declaration's body via Inline.
func (t *Table) Define(def *GateDef) {
	t.defs[def.Name] = def
}

// Has reports whether name is present in the table.
func (t *Table) Has(name string) bool {
	_, ok := t.defs[name]
	return ok
}
