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

// Package circuit implements the QC-IR circuit model: registers, layout
// maps, the ancillary/garbage bitsets, and the operation list, together
// with the register-edit and qubit-management operations that keep them
// mutually consistent.
package circuit

import (
	"sort"
	"strings"

	"github.com/qcirlang/qcir/pkg/qcirerr"
)

// Block is a contiguous range of indices belonging to one register.
type Block struct {
	Base, Length int
}

// End returns the index one past the last index of the block.
func (b Block) End() int { return b.Base + b.Length }

// RegisterMap is an ordered name→block table for one of qregs, cregs or
// ancregs. Mutation is restricted to "augment the last-allocated block" and
// "split at an interior index" on removal, per §3's Register description.
type RegisterMap struct {
	order []string
	blocks map[string]Block
}

// NewRegisterMap constructs an empty map.
func NewRegisterMap() *RegisterMap {
	return &RegisterMap{blocks: map[string]Block{}}
}

// Names returns the registered names in insertion order.
func (m *RegisterMap) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Lookup returns the block for name, and whether it exists.
func (m *RegisterMap) Lookup(name string) (Block, bool) {
	b, ok := m.blocks[name]
	return b, ok
}

// Has reports whether name exists.
func (m *RegisterMap) Has(name string) bool {
	_, ok := m.blocks[name]
	return ok
}

// TotalLength sums the lengths of every block.
func (m *RegisterMap) TotalLength() int {
	total := 0
	for _, b := range m.blocks {
		total += b.Length
	}
	return total
}

// Augment appends a fresh block of length n named name, if absent, or
// extends name's existing block by n when its tail currently coincides with
// end (the "augment only the last-allocated block" rule of §4.D.1/4.D.2).
// end is the current end-of-range (nqubits, nqubits+nancillae, or
// nclassics, depending on which map is being edited). It returns the base
// of the newly added range, or an AugmentNotLast error if name already
// exists but its tail does not coincide with end — extending it in place
// would silently overlap whatever register was allocated after it (I6).
func (m *RegisterMap) Augment(name string, n, end int) (int, error) {
	if b, ok := m.blocks[name]; ok {
		if b.End() != end {
			return 0, &qcirerr.AugmentNotLast{Name: name}
		}
		for other, ob := range m.blocks {
			if other != name && ob.Base >= b.End() {
				return 0, &qcirerr.AugmentNotLast{Name: name}
			}
		}
		b.Length += n
		m.blocks[name] = b
		return end, nil
	}
	m.order = append(m.order, name)
	m.blocks[name] = Block{Base: end, Length: n}
	return end, nil
}

// Remove edits the map to drop a single index (physical or logical,
// whichever index space this map is keyed in) at offset, belonging to
// register name. It implements the four cases of §4.D.3 step 3.
func (m *RegisterMap) Remove(name string, offset int) {
	b := m.blocks[name]
	switch {
	case offset == 0 && b.Length == 1:
		delete(m.blocks, name)
		m.removeFromOrder(name)
	case offset == 0:
		b.Base++
		b.Length--
		m.blocks[name] = b
	case offset == b.Length-1:
		b.Length--
		m.blocks[name] = b
	default:
		lo := Block{Base: b.Base, Length: offset}
		hi := Block{Base: b.Base + offset + 1, Length: b.Length - offset - 1}
		delete(m.blocks, name)
		m.removeFromOrder(name)
		lname, hname := name+"_l", name+"_h"
		m.blocks[lname] = lo
		m.order = append(m.order, lname)
		m.blocks[hname] = hi
		m.order = append(m.order, hname)
	}
}

func (m *RegisterMap) removeFromOrder(name string) {
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// FindByIndex returns the (name, offset) of the register containing index,
// by range scan, and whether one was found.
func (m *RegisterMap) FindByIndex(index int) (name string, offset int, ok bool) {
	for n, b := range m.blocks {
		if index >= b.Base && index < b.End() {
			return n, index - b.Base, true
		}
	}
	return "", 0, false
}

// ShiftUp increments the base of every block whose base is >= threshold by
// one, used when inserting a qubit below existing ancilla registers (§4.D.5,
// "shift all ancilla-register bases by +1").
func (m *RegisterMap) ShiftUp(threshold int) {
	for n, b := range m.blocks {
		if b.Base >= threshold {
			b.Base++
			m.blocks[n] = b
		}
	}
}

// Consolidate fuses back together any pair of names `X_l`/`X_h` whose
// blocks are index-contiguous (X_l.End() == X_h.Base), per §3's Register
// consolidation rule.
func (m *RegisterMap) Consolidate() {
	for _, name := range m.Names() {
		if !strings.HasSuffix(name, "_l") {
			continue
		}
		base := strings.TrimSuffix(name, "_l")
		hname := base + "_h"
		lo, ok1 := m.blocks[name]
		hi, ok2 := m.blocks[hname]
		if !ok1 || !ok2 || lo.End() != hi.Base {
			continue
		}
		delete(m.blocks, name)
		delete(m.blocks, hname)
		m.removeFromOrder(name)
		m.removeFromOrder(hname)
		m.order = append(m.order, base)
		m.blocks[base] = Block{Base: lo.Base, Length: lo.Length + hi.Length}
	}
}

// SortedByBase returns (name, block) pairs ordered by Base, used for
// deterministic iteration (layout dumps, the CLI inspector).
func (m *RegisterMap) SortedByBase() []struct {
	Name  string
	Block Block
} {
	out := make([]struct {
		Name  string
		Block Block
	}, 0, len(m.blocks))
	for n, b := range m.blocks {
		out = append(out, struct {
			Name  string
			Block Block
		}{n, b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Block.Base < out[j].Block.Base })
	return out
}
