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
package circuit

import "github.com/qcirlang/qcir/pkg/qcirerr"

// Polarity is the control-qubit sense.
type Polarity bool

const (
	Pos Polarity = true
	Neg Polarity = false
)

// Control pairs a qubit with the polarity it must be in to fire.
type Control struct {
	Qubit    int
	Polarity Polarity
}

// StandardKind enumerates the fixed gate set of §3's Standard variant.
type StandardKind uint

const (
	GateI StandardKind = iota
	GateH
	GateX
	GateY
	GateZ
	GateS
	GateSdg
	GateT
	GateTdg
	GateV
	GateVdg
	GateU1
	GateU2
	GateU3
	GateRX
	GateRY
	GateRZ
	GateSWAP
	GateISWAP
	GateP
	GatePdg
)

// NonUnitaryKind enumerates the NonUnitary operation variant's five forms,
// grounded on the Op enum of NonUnitaryOperation.
type NonUnitaryKind uint

const (
	OpMeasure NonUnitaryKind = iota
	OpReset
	OpBarrier
	OpSnapshot
	OpShowProbabilities
)

// Kind discriminates an Operation's variant.
type Kind uint

const (
	KindStandard Kind = iota
	KindCompound
	KindNonUnitary
	KindClassicControlled
)

// Operation is the sum type of §3's Operation variant. Only the fields
// relevant to Kind are meaningful; Compound owns its Children by value,
// ClassicControlled owns its Inner by value.
type Operation struct {
	Kind Kind

	// Total qubit count this op was emitted against (nqubits+nancillae at
	// emission time); re-broadcast by stripIdleQubits/removeQubit edits.
	NQubitsTotal int

	Targets  []int
	Controls []Control
	Params   [3]float64

	// Standard
	Standard StandardKind

	// Compound
	Children []Operation

	// NonUnitary
	NonUnitary      NonUnitaryKind
	MeasureTargets  []int // qubit side of the Measure pairing
	MeasureClassics []int // classical-bit side, index-aligned with MeasureTargets
	SnapshotIndex   int

	// ClassicControlled
	CregBase   int
	CregLength int
	Expected   int
	Inner      *Operation
}

// AllIndices returns the union of this op's targets and controls, used by
// isIdleQubit and by the invariant checks.
func (o *Operation) AllIndices() []int {
	idx := append([]int{}, o.Targets...)
	for _, c := range o.Controls {
		idx = append(idx, c.Qubit)
	}
	if o.Kind == KindClassicControlled && o.Inner != nil {
		idx = append(idx, o.Inner.AllIndices()...)
	}
	if o.Kind == KindCompound {
		for i := range o.Children {
			idx = append(idx, o.Children[i].AllIndices()...)
		}
	}
	return idx
}

// Validate checks I2 (controls/targets pairwise disjoint) for this op alone.
func (o *Operation) Validate() error {
	seen := map[int]bool{}
	for _, t := range o.Targets {
		if seen[t] {
			return &qcirerr.DuplicateQubit{Index: t}
		}
		seen[t] = true
	}
	for _, c := range o.Controls {
		if seen[c.Qubit] {
			return &qcirerr.DuplicateQubit{Index: c.Qubit}
		}
		seen[c.Qubit] = true
	}
	return nil
}

// NewStandard builds a Standard operation, checking I2 eagerly.
func NewStandard(nqt int, kind StandardKind, controls []Control, targets []int, params [3]float64) (Operation, error) {
	op := Operation{Kind: KindStandard, NQubitsTotal: nqt, Standard: kind, Controls: controls, Targets: targets, Params: params}
	if err := op.Validate(); err != nil {
		return Operation{}, err
	}
	return op, nil
}
