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

import (
	"github.com/bits-and-blooms/bitset"
	log "github.com/sirupsen/logrus"

	"github.com/qcirlang/qcir/pkg/qcirerr"
)

// MaxQubits bounds nqubits+nancillae, mirroring the compile-time MAX_QUBITS
// ceiling of the reference model.
const MaxQubits = 128

// Circuit is the mutable QC-IR circuit model of §3.
type Circuit struct {
	NQubits    int
	NAncillae  int
	NClassics  int

	QRegs   *RegisterMap
	CRegs   *RegisterMap
	AncRegs *RegisterMap

	Ops []Operation

	// InitialLayout is a partial bijection physical->logical; every
	// assigned physical qubit appears exactly once (I3).
	InitialLayout map[int]int
	// OutputPermutation is a partial injective map physical->logical; a
	// missing key means that physical wire is garbage at output (I4).
	OutputPermutation map[int]int

	Ancillary *bitset.BitSet
	Garbage   *bitset.BitSet

	MaxControls int
}

// New returns an empty circuit, ready for importer or API edits.
func New() *Circuit {
	return &Circuit{
		QRegs:             NewRegisterMap(),
		CRegs:             NewRegisterMap(),
		AncRegs:           NewRegisterMap(),
		InitialLayout:     map[int]int{},
		OutputPermutation: map[int]int{},
		Ancillary:         bitset.New(MaxQubits),
		Garbage:           bitset.New(MaxQubits),
	}
}

func (c *Circuit) total() int { return c.NQubits + c.NAncillae }

func (c *Circuit) invertLayout(logical int) (physical int, ok bool) {
	for p, l := range c.InitialLayout {
		if l == logical {
			return p, true
		}
	}
	return 0, false
}

// AddQubitRegister implements §4.D.1.
func (c *Circuit) AddQubitRegister(n int, name string) error {
	if c.NAncillae > 0 {
		return &qcirerr.AncillaePresent{}
	}
	if c.total()+n > MaxQubits {
		return &qcirerr.CapacityExceeded{Requested: c.total() + n, Max: MaxQubits}
	}
	base, err := c.QRegs.Augment(name, n, c.NQubits)
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		p := base + i
		c.InitialLayout[p] = p
		c.OutputPermutation[p] = p
	}
	c.NQubits += n
	c.rebroadcastTotal()
	return nil
}

// AddAncillaryRegister implements §4.D.2.
func (c *Circuit) AddAncillaryRegister(n int, name string) error {
	if c.total()+n > MaxQubits {
		return &qcirerr.CapacityExceeded{Requested: c.total() + n, Max: MaxQubits}
	}
	base, err := c.AncRegs.Augment(name, n, c.total())
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		logical := base + i
		c.Ancillary.Set(uint(logical))
		c.InitialLayout[logical] = logical
		c.OutputPermutation[logical] = logical
	}
	c.NAncillae += n
	c.rebroadcastTotal()
	return nil
}

// AddClassicalRegister adds a block of classical bits.
func (c *Circuit) AddClassicalRegister(n int, name string) error {
	if _, err := c.CRegs.Augment(name, n, c.NClassics); err != nil {
		return err
	}
	c.NClassics += n
	return nil
}

// RemoveQubit implements §4.D.3.
func (c *Circuit) RemoveQubit(logicalIndex int) (physicalIndex int, outputIndex int, hadOutput bool, err error) {
	p, ok := c.invertLayout(logicalIndex)
	if !ok {
		return 0, 0, false, &qcirerr.UnknownRegister{Name: "logical index has no layout entry"}
	}

	isAnc := c.Ancillary.Test(uint(logicalIndex))
	m := c.QRegs
	if isAnc {
		m = c.AncRegs
	}
	name, offset, found := m.FindByIndex(logicalIndex)
	if !found {
		return 0, 0, false, &qcirerr.UnknownRegister{Name: "no register owns this logical index"}
	}
	m.Remove(name, offset)

	if isAnc {
		c.NAncillae--
	} else {
		c.NQubits--
	}

	delete(c.InitialLayout, p)
	outputIndex, hadOutput = c.OutputPermutation[p]
	if hadOutput {
		delete(c.OutputPermutation, p)
	}

	// Shift the ancillary/garbage bitsets down above the removed logical
	// index. c.total() already reflects the decrement above, so the prior
	// (larger) length is one more than that. The layout maps are left
	// untouched here — renumbering them above the removed index is
	// StripIdleQubits's job (§4.D.6), not this primitive's, so that
	// AddQubit undoing a RemoveQubit restores the prior state exactly (R2).
	priorTotal := c.total() + 1
	for i := logicalIndex; i < priorTotal; i++ {
		if c.Ancillary.Test(uint(i + 1)) {
			c.Ancillary.Set(uint(i))
		} else {
			c.Ancillary.Clear(uint(i))
		}
		if c.Garbage.Test(uint(i + 1)) {
			c.Garbage.Set(uint(i))
		} else {
			c.Garbage.Clear(uint(i))
		}
	}
	c.Ancillary.Clear(uint(priorTotal))
	c.Garbage.Clear(uint(priorTotal))

	c.rebroadcastTotal()
	return p, outputIndex, hadOutput, nil
}

// shiftLayoutDown decrements every value strictly greater than removed by
// one, used to renumber a physical->logical map after a logical index is
// removed.
func shiftLayoutDown(m map[int]int, removed int) {
	for p, l := range m {
		if l > removed {
			m[p] = l - 1
		}
	}
}

// AddAncillaryQubit implements §4.D.4.
func (c *Circuit) AddAncillaryQubit(p int, outputIndex int, hasOutput bool) error {
	if _, ok := c.InitialLayout[p]; ok {
		return &qcirerr.QubitAlreadyAssigned{Physical: p}
	}
	if c.total()+1 > MaxQubits {
		return &qcirerr.CapacityExceeded{Requested: c.total() + 1, Max: MaxQubits}
	}

	logical := c.total()
	name := c.lastAncillaFlankName(logical)
	if _, err := c.AncRegs.Augment(name, 1, logical); err != nil {
		return err
	}

	c.Ancillary.Set(uint(logical))
	c.InitialLayout[p] = logical
	if hasOutput {
		c.OutputPermutation[p] = outputIndex
	}
	c.NAncillae++
	c.rebroadcastTotal()
	return nil
}

func (c *Circuit) lastAncillaFlankName(logical int) string {
	for _, name := range c.AncRegs.Names() {
		b, _ := c.AncRegs.Lookup(name)
		if b.End() == logical || b.Base == logical+1 {
			return name
		}
	}
	return "anc"
}

// AddQubit implements §4.D.5.
func (c *Circuit) AddQubit(logical, p int, outputIndex int, hasOutput bool) error {
	if _, ok := c.InitialLayout[p]; ok {
		return &qcirerr.QubitAlreadyAssigned{Physical: p}
	}
	if c.total()+1 > MaxQubits {
		return &qcirerr.CapacityExceeded{Requested: c.total() + 1, Max: MaxQubits}
	}

	// Every pre-existing ancilla's logical index must shift up by one
	// whenever a regular qubit is inserted, since nqubits always grows by
	// one and ancillae occupy the topmost range (I7) — regardless of
	// which physical slot p the new qubit lands in.
	c.shiftAncillaLogicalUp(logical)
	if p == c.NQubits {
		c.AncRegs.ShiftUp(p)
	}

	c.QRegs.Consolidate()
	if _, err := c.QRegs.Augment("q", 1, logical); err != nil {
		return err
	}

	c.InitialLayout[p] = logical
	if hasOutput {
		c.OutputPermutation[p] = outputIndex
	}
	c.NQubits++
	c.rebroadcastTotal()
	return nil
}

// shiftAncillaLogicalUp increments every ancilla logical index >= threshold
// by one in the layout maps and bitsets, preserving (I7) when a new
// non-ancilla qubit is inserted below the ancilla range.
func (c *Circuit) shiftAncillaLogicalUp(threshold int) {
	for p, l := range c.InitialLayout {
		if l >= threshold && c.Ancillary.Test(uint(l)) {
			c.InitialLayout[p] = l + 1
		}
	}
	for p, l := range c.OutputPermutation {
		if l >= threshold && c.Ancillary.Test(uint(l)) {
			c.OutputPermutation[p] = l + 1
		}
	}
	for i := c.total(); i >= threshold; i-- {
		if c.Ancillary.Test(uint(i)) {
			c.Ancillary.Set(uint(i + 1))
			c.Ancillary.Clear(uint(i))
		}
		if c.Garbage.Test(uint(i)) {
			c.Garbage.Set(uint(i + 1))
			c.Garbage.Clear(uint(i))
		}
	}
}

// IsIdleQubit implements §4.D.7.
func (c *Circuit) IsIdleQubit(p int) bool {
	logical, ok := c.InitialLayout[p]
	if !ok {
		return true
	}
	for i := range c.Ops {
		for _, idx := range c.Ops[i].AllIndices() {
			if idx == logical {
				return false
			}
		}
	}
	return true
}

// StripIdleQubits implements §4.D.6.
func (c *Circuit) StripIdleQubits(force bool) error {
	physicals := make([]int, 0, len(c.InitialLayout))
	for p := range c.InitialLayout {
		physicals = append(physicals, p)
	}
	// descending order, per §4.D.6.
	for i := 0; i < len(physicals); i++ {
		for j := i + 1; j < len(physicals); j++ {
			if physicals[j] > physicals[i] {
				physicals[i], physicals[j] = physicals[j], physicals[i]
			}
		}
	}

	for _, p := range physicals {
		logical, ok := c.InitialLayout[p]
		if !ok {
			continue
		}
		if !c.IsIdleQubit(p) {
			continue
		}
		out, hasOutput := c.OutputPermutation[p]
		if !force && hasOutput && out >= 0 {
			continue
		}
		if _, _, _, err := c.RemoveQubit(logical); err != nil {
			return err
		}
		// Renumber the surviving layout entries above the removed logical
		// index — RemoveQubit itself leaves them untouched (so that undoing
		// it via AddQubit restores the prior state exactly), so this is the
		// one call site that performs the §4.D.6 renumbering.
		shiftLayoutDown(c.InitialLayout, logical)
		shiftLayoutDown(c.OutputPermutation, logical)
	}
	return nil
}

func (c *Circuit) rebroadcastTotal() {
	nqt := c.total()
	for i := range c.Ops {
		rebroadcastOp(&c.Ops[i], nqt)
	}
	log.WithFields(log.Fields{"nqubits": c.NQubits, "nancillae": c.NAncillae}).Debug("circuit: total qubit count updated")
}

func rebroadcastOp(o *Operation, nqt int) {
	o.NQubitsTotal = nqt
	for i := range o.Children {
		rebroadcastOp(&o.Children[i], nqt)
	}
	if o.Inner != nil {
		rebroadcastOp(o.Inner, nqt)
	}
}
