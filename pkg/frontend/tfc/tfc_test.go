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
package tfc

import (
	"testing"

	"github.com/qcirlang/qcir/pkg/circuit"
)

func TestTFCToffoli(t *testing.T) {
	src := ".v a,b,c\n.i a,b,c\n.o a,b,c\nBEGIN\nt3 a,b,c\nEND\n"
	c, err := Import(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Ops) != 1 {
		t.Fatalf("got %d ops, want 1", len(c.Ops))
	}
	op := c.Ops[0]
	if op.Standard != circuit.GateX || len(op.Controls) != 2 {
		t.Fatalf("got %+v, want a Toffoli-shaped X", op)
	}
	if op.Targets[0] != 2 {
		t.Fatalf("got target=%d, want c (index 2)", op.Targets[0])
	}
}

func TestTFCNegativeControl(t *testing.T) {
	src := ".v a,b\n.i a,b\n.o a,b\nBEGIN\nt2 a',b\nEND\n"
	c, err := Import(src)
	if err != nil {
		t.Fatal(err)
	}
	if c.Ops[0].Controls[0].Polarity != circuit.Neg {
		t.Fatalf("got polarity=%v, want Neg for the a' control", c.Ops[0].Controls[0].Polarity)
	}
}

func TestTFCVariablesNotInOutputAreGarbage(t *testing.T) {
	src := ".v a,b,g\n.i a,b,g\n.o a,b\nBEGIN\nt1 g\nEND\n"
	c, err := Import(src)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Garbage.Test(2) {
		t.Fatal("expected g (index 2) to be marked garbage since it is absent from .o")
	}
	if c.Garbage.Test(0) || c.Garbage.Test(1) {
		t.Fatal("expected a and b to not be marked garbage")
	}
}

func TestTFCConstantInitialValue(t *testing.T) {
	// a is the sole input; b is a constant, so it becomes an ancilla at
	// logical index ninputs+0 = 1, with its initial value taken from the
	// single ".c" token (there is exactly one constant variable).
	src := ".v a,b\n.i a\n.o a,b\n.c 1\nBEGIN\nEND\n"
	c, err := Import(src)
	if err != nil {
		t.Fatal(err)
	}
	if c.NQubits != 1 || c.NAncillae != 1 {
		t.Fatalf("got nqubits=%d nancillae=%d, want 1,1", c.NQubits, c.NAncillae)
	}
	if !c.Ancillary.Test(1) {
		t.Fatal("expected b (logical index 1) to be marked ancillary")
	}
	if len(c.Ops) != 1 || c.Ops[0].Standard != circuit.GateX || c.Ops[0].Targets[0] != 1 {
		t.Fatalf("got %+v, want a single X on b for its constant-1 initial value", c.Ops)
	}
}

func TestTFCInterleavedInputsAndConstantsGetPartitionedIndices(t *testing.T) {
	// b is the only constant, but it sits between the two inputs in .v —
	// the partition must still put both inputs at [0,2) and b at index 2,
	// taking b's initial value from the .c list position of constants
	// among non-input variables (position 0), not from .v position 1.
	src := ".v a,b,c\n.i a,c\n.o a,b,c\n.c 0\nBEGIN\nt1 b\nEND\n"
	circ, err := Import(src)
	if err != nil {
		t.Fatal(err)
	}
	if circ.NQubits != 2 || circ.NAncillae != 1 {
		t.Fatalf("got nqubits=%d nancillae=%d, want 2,1", circ.NQubits, circ.NAncillae)
	}
	// a is the first input encountered in .v order -> logical 0;
	// c is the second -> logical 1; b is the constant -> logical 2.
	if circ.InitialLayout[0] != 0 || circ.InitialLayout[1] != 2 || circ.InitialLayout[2] != 1 {
		t.Fatalf("got InitialLayout=%v, want {0:0, 1:2, 2:1}", circ.InitialLayout)
	}
	if len(circ.Ops) != 1 || circ.Ops[0].Targets[0] != 2 {
		t.Fatalf("got ops=%+v, want a single op on b (logical index 2)", circ.Ops)
	}
}
