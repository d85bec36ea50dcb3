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

// Package ddport declares the narrow interface the circuit model consumes
// from an external decision-diagram kernel. No implementation of Kernel is
// provided here: the DD kernel itself (node table, complex-number cache,
// garbage collection, dynamic reordering) is an explicit non-goal (§1, §6).
package ddport

// Edge is an opaque handle to a decision-diagram edge, as returned by a
// Kernel implementation. The core never inspects its fields directly.
type Edge interface{}

// Weight is an opaque handle to a cached complex amplitude.
type Weight interface{}

// Mode selects whether the kernel is building a state vector or a unitary
// matrix.
type Mode int

const (
	Vector Mode = iota
	Matrix
)

// ReorderStrategy selects a dynamic variable-reordering strategy.
type ReorderStrategy int

const (
	ReorderNone ReorderStrategy = iota
	ReorderSifting
)

// VarMap is a mutable physical->logical permutation, the same shape the
// circuit model's InitialLayout/OutputPermutation use, threaded through
// dynamic reordering so the core can keep its own bookkeeping in sync with
// whatever the kernel did internally.
type VarMap map[int]int

// Children enumerates a nonterminal node's four successor edges in the
// canonical (e00, e01, e10, e11) order.
type Children [4]Edge

// Kernel is the exact boundary described by §4.H. Every method the core
// calls on the external DD evaluator is declared here; a concrete
// implementation lives outside this module.
type Kernel interface {
	MakeIdent(low, high int) Edge
	MakeZeroState(n int) Edge
	MakeNonterminal(v int, children Children) Edge

	Multiply(a, b Edge) Edge
	Add(a, b Edge) Edge

	IncRef(e Edge)
	DecRef(e Edge)
	GarbageCollect()

	SetMode(m Mode)

	// DynamicReorder reorders e according to strategy, mutating varMap in
	// place to reflect whatever permutation the reordering performed, and
	// returns the reordered edge.
	DynamicReorder(e Edge, varMap VarMap, strategy ReorderStrategy) Edge

	MulCached(a, b Weight) Weight
	Lookup(w Weight) Weight
	ReleaseCached(w Weight)
	EqualsZero(w Weight) bool

	IsTerminal(e Edge) bool
	DDZero() Edge
	DDOne() Edge

	// NodeVar and NodeChildren expose enough of a nonterminal's structure
	// for reduceAncillae/reduceGarbage to walk it; IsTerminal(e) must be
	// false before calling either.
	NodeVar(e Edge) int
	NodeChildren(e Edge) Children
	EdgeWeight(e Edge) Weight
	WithWeight(e Edge, w Weight) Edge
}
