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
	"testing"

	"github.com/qcirlang/qcir/pkg/circuit"
)

func noIncludes(path string) (string, error) {
	if path == "qelib1.inc" {
		return "", nil // the builtin table is pre-populated; the include is a no-op here
	}
	return "", nil
}

func TestBellStateImport(t *testing.T) {
	src := `OPENQASM 2.0;
include "qelib1.inc";
qreg q[2];
creg c[2];
h q[0];
cx q[0],q[1];
measure q -> c;
`
	f := New("bell.qasm", src, noIncludes)
	c, err := f.Import()
	if err != nil {
		t.Fatal(err)
	}
	if c.NQubits != 2 {
		t.Fatalf("got nqubits=%d, want 2", c.NQubits)
	}
	if len(c.Ops) != 3 {
		t.Fatalf("got %d ops, want 3 (H, CX, Measure)", len(c.Ops))
	}
	if c.Ops[0].Kind != circuit.KindStandard || c.Ops[0].Targets[0] != 0 {
		t.Fatalf("op0 = %+v, want H on qubit 0", c.Ops[0])
	}
	if c.Ops[1].Kind != circuit.KindStandard || len(c.Ops[1].Controls) != 1 || c.Ops[1].Controls[0].Qubit != 0 || c.Ops[1].Targets[0] != 1 {
		t.Fatalf("op1 = %+v, want CX(0->1)", c.Ops[1])
	}
	if c.Ops[2].Kind != circuit.KindNonUnitary || c.Ops[2].NonUnitary != circuit.OpMeasure {
		t.Fatalf("op2 = %+v, want Measure", c.Ops[2])
	}
	if c.InitialLayout[0] != 0 || c.InitialLayout[1] != 1 {
		t.Fatalf("got InitialLayout=%v, want identity", c.InitialLayout)
	}
}

func TestControlledGateInference(t *testing.T) {
	src := `OPENQASM 2.0;
include "qelib1.inc";
gate mygate(theta) a { u3(theta,0,pi) a; }
qreg q[3];
cmygate(pi) q[0],q[1];
ccmygate(pi) q[0],q[1],q[2];
`
	f := New("infer.qasm", src, noIncludes)
	c, err := f.Import()
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Ops) != 2 {
		t.Fatalf("got %d ops, want 2", len(c.Ops))
	}
	if len(c.Ops[0].Controls) != 1 {
		t.Fatalf("op0 controls = %d, want 1", len(c.Ops[0].Controls))
	}
	if len(c.Ops[1].Controls) != 2 {
		t.Fatalf("op1 controls = %d, want 2", len(c.Ops[1].Controls))
	}
}

func TestRegisterBroadcastDuplicateQubit(t *testing.T) {
	src := `OPENQASM 2.0;
include "qelib1.inc";
qreg q[3];
cx q[0], q;
`
	f := New("broadcast.qasm", src, noIncludes)
	if _, err := f.Import(); err == nil {
		t.Fatal("expected DuplicateQubit when q[0] broadcasts against q and overlaps itself")
	}
}

func TestLoadLayoutComments(t *testing.T) {
	c := circuit.New()
	if err := c.AddQubitRegister(2, "q"); err != nil {
		t.Fatal(err)
	}
	LoadLayoutComments(c, "// i 1 0\n// o 0 1\n")
	if c.InitialLayout[1] != 0 || c.InitialLayout[0] != 1 {
		t.Fatalf("got InitialLayout=%v, want the reversed layout from the comment", c.InitialLayout)
	}
}
