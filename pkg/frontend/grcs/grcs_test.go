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
package grcs

import (
	"math"
	"testing"

	"github.com/qcirlang/qcir/pkg/circuit"
)

func TestGRCSHeaderSetsQubitCount(t *testing.T) {
	src := "3\n1 h 0\n"
	c, err := Import(src)
	if err != nil {
		t.Fatal(err)
	}
	if c.NQubits != 3 {
		t.Fatalf("got nqubits=%d, want 3", c.NQubits)
	}
}

func TestGRCSCZMapsToControlledZ(t *testing.T) {
	src := "2\n1 cz 0 1\n"
	c, err := Import(src)
	if err != nil {
		t.Fatal(err)
	}
	op := c.Ops[0]
	if op.Standard != circuit.GateZ || len(op.Controls) != 1 || op.Controls[0].Qubit != 0 || op.Targets[0] != 1 {
		t.Fatalf("got %+v, want CZ(0->1)", op)
	}
}

func TestGRCSX12MapsToRXHalfPi(t *testing.T) {
	src := "1\n1 x_1_2 0\n"
	c, err := Import(src)
	if err != nil {
		t.Fatal(err)
	}
	op := c.Ops[0]
	if op.Standard != circuit.GateRX || math.Abs(op.Params[0]-math.Pi/2) > 1e-12 {
		t.Fatalf("got %+v, want RX(pi/2)", op)
	}
}

func TestGRCSUnknownGateNameErrors(t *testing.T) {
	src := "1\n1 bogus 0\n"
	if _, err := Import(src); err == nil {
		t.Fatal("expected an error for an unrecognised gate name")
	}
}
