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

import "testing"

func TestAddQubitRegisterInstallsIdentityLayout(t *testing.T) {
	c := New()
	if err := c.AddQubitRegister(3, "q"); err != nil {
		t.Fatal(err)
	}
	if c.NQubits != 3 {
		t.Fatalf("got NQubits=%d, want 3", c.NQubits)
	}
	for p := 0; p < 3; p++ {
		if c.InitialLayout[p] != p || c.OutputPermutation[p] != p {
			t.Fatalf("expected identity layout at %d", p)
		}
	}
}

func TestAddQubitRegisterRejectsWhenAncillaePresent(t *testing.T) {
	c := New()
	if err := c.AddQubitRegister(1, "q"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddAncillaryRegister(1, "anc"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddQubitRegister(1, "q2"); err == nil {
		t.Fatal("expected AncillaePresent error")
	}
}

func TestDuplicateQubitOnStandardOp(t *testing.T) {
	c := New()
	if err := c.AddQubitRegister(2, "q"); err != nil {
		t.Fatal(err)
	}
	_, err := NewStandard(2, GateX, []Control{{Qubit: 0, Polarity: Pos}}, []int{0}, [3]float64{})
	if err == nil {
		t.Fatal("expected DuplicateQubit for control==target")
	}
}

func TestStripIdleQubitsRenumbers(t *testing.T) {
	c := New()
	if err := c.AddQubitRegister(3, "q"); err != nil {
		t.Fatal(err)
	}
	// Only qubit 1 is used by any operation; 0 and 2 are idle.
	op, err := NewStandard(3, GateX, nil, []int{1}, [3]float64{})
	if err != nil {
		t.Fatal(err)
	}
	c.Ops = append(c.Ops, op)

	if err := c.StripIdleQubits(true); err != nil {
		t.Fatal(err)
	}
	if c.NQubits != 1 {
		t.Fatalf("got NQubits=%d, want 1", c.NQubits)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("circuit invalid after strip: %v", err)
	}
}

func TestRegisterMapRemoveSplitsInteriorIndex(t *testing.T) {
	m := NewRegisterMap()
	m.order = append(m.order, "q")
	m.blocks["q"] = Block{Base: 0, Length: 5}
	m.Remove("q", 2) // interior removal -> q_l[0,2), q_h[3,5) in original index space... see below

	if !m.Has("q_l") || !m.Has("q_h") {
		t.Fatalf("expected interior split, got names %v", m.Names())
	}
	// q_l is [0,2), q_h starts at 3 (one past the removed index) with length 2:
	// contiguous fusion requires q_l.End()==q_h.Base, which holds (2==2) only
	// after a renumbering step external callers perform; verify the blocks
	// reported here directly instead.
	lo, _ := m.Lookup("q_l")
	hi, _ := m.Lookup("q_h")
	if lo.Base != 0 || lo.Length != 2 {
		t.Fatalf("got q_l=%+v", lo)
	}
	if hi.Base != 3 || hi.Length != 2 {
		t.Fatalf("got q_h=%+v", hi)
	}
}

func TestValidateCatchesOutOfRangeIndex(t *testing.T) {
	c := New()
	if err := c.AddQubitRegister(1, "q"); err != nil {
		t.Fatal(err)
	}
	c.Ops = append(c.Ops, Operation{Kind: KindStandard, NQubitsTotal: 1, Targets: []int{5}})
	if err := c.Validate(); err == nil {
		t.Fatal("expected Validate to catch the out-of-range target")
	}
}

func TestAddQubitShiftsAncillaRegardlessOfPhysicalSlot(t *testing.T) {
	c := New()
	if err := c.AddQubitRegister(2, "q"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddAncillaryRegister(1, "anc"); err != nil {
		t.Fatal(err)
	}
	if !c.Ancillary.Test(2) {
		t.Fatal("expected the ancilla to start at logical index 2")
	}

	// Insert a new regular qubit at logical index 2 (the ancilla's current
	// slot), landing on a non-boundary physical index (10). The ancilla must
	// shift to logical 3 regardless of which physical slot 10 is.
	if err := c.AddQubit(2, 10, 0, false); err != nil {
		t.Fatal(err)
	}

	if c.InitialLayout[10] != 2 {
		t.Fatalf("got InitialLayout[10]=%d, want 2 (the newly inserted qubit)", c.InitialLayout[10])
	}
	if c.InitialLayout[2] != 3 {
		t.Fatalf("got InitialLayout[2]=%d, want 3 (the ancilla shifted up)", c.InitialLayout[2])
	}
	if c.Ancillary.Test(2) || !c.Ancillary.Test(3) {
		t.Fatal("expected the ancillary bit to move from logical 2 to logical 3")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("circuit invalid after AddQubit (I3 injectivity violated): %v", err)
	}
}

func TestAddAncillaryQubitAppendsAtTop(t *testing.T) {
	c := New()
	if err := c.AddQubitRegister(2, "q"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddAncillaryQubit(5, 0, false); err != nil {
		t.Fatal(err)
	}
	if c.NAncillae != 1 {
		t.Fatalf("got NAncillae=%d, want 1", c.NAncillae)
	}
	if c.InitialLayout[5] != 2 {
		t.Fatalf("got InitialLayout[5]=%d, want 2 (appended at nqubits+nancillae)", c.InitialLayout[5])
	}
	if !c.Ancillary.Test(2) {
		t.Fatal("expected the new ancilla's logical index to be marked ancillary")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("circuit invalid after AddAncillaryQubit: %v", err)
	}
}

// TestRemoveQubitThenAddQubitRoundTrips exercises R2 as removeQubit of a
// logical index followed by addQubit with the returned physical index and
// output entry, which restores the prior state, on a circuit with no
// ancillae so the re-inserted qubit doesn't displace anything else's
// logical identity.
func TestRemoveQubitThenAddQubitRoundTrips(t *testing.T) {
	c := New()
	if err := c.AddQubitRegister(3, "q"); err != nil {
		t.Fatal(err)
	}
	wantLayout := map[int]int{0: 0, 1: 1, 2: 2}

	if err := c.AddQubit(1, 1, 1, true); err == nil {
		t.Fatal("expected QubitAlreadyAssigned: physical 1 is already in the layout")
	}

	p, out, hadOut, err := c.RemoveQubit(1)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("circuit invalid after RemoveQubit: %v", err)
	}

	if err := c.AddQubit(1, p, out, hadOut); err != nil {
		t.Fatal(err)
	}
	if c.NQubits != 3 {
		t.Fatalf("got NQubits=%d, want 3 after addQubit undoes removeQubit", c.NQubits)
	}
	for phys, logical := range wantLayout {
		if c.InitialLayout[phys] != logical || c.OutputPermutation[phys] != logical {
			t.Fatalf("got InitialLayout[%d]=%d, want %d (round trip did not restore prior state)", phys, c.InitialLayout[phys], logical)
		}
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("circuit invalid after addQubit undid removeQubit: %v", err)
	}
}

// TestRemoveQubitLeavesLayoutGapForStripIdleQubits pins down the split the
// maintainer review demanded: RemoveQubit only erases the removed physical
// entry and shifts the ancillary/garbage bitsets, it never renumbers the
// surviving layout entries above the removed logical index — that's
// StripIdleQubits's job, exercised separately above.
func TestRemoveQubitLeavesLayoutGapForStripIdleQubits(t *testing.T) {
	c := New()
	if err := c.AddQubitRegister(3, "q"); err != nil {
		t.Fatal(err)
	}
	if err := c.AddAncillaryRegister(1, "anc"); err != nil {
		t.Fatal(err)
	}

	if _, _, _, err := c.RemoveQubit(1); err != nil {
		t.Fatal(err)
	}

	if c.InitialLayout[2] != 2 || c.InitialLayout[3] != 3 {
		t.Fatalf("got InitialLayout={2:%d,3:%d}, want {2:2,3:3} (unshifted)", c.InitialLayout[2], c.InitialLayout[3])
	}
	if !c.Ancillary.Test(2) || c.Ancillary.Test(3) {
		t.Fatal("expected the ancillary bit to have shifted down to logical 2")
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("circuit invalid after bare RemoveQubit: %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	c := New()
	if err := c.AddQubitRegister(2, "q"); err != nil {
		t.Fatal(err)
	}
	clone := c.Clone()
	clone.InitialLayout[0] = 99
	if c.InitialLayout[0] == 99 {
		t.Fatal("clone must not alias the original's layout map")
	}
}
