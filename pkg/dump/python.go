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
package dump

import (
	"fmt"
	"strings"

	"github.com/qcirlang/qcir/pkg/circuit"
)

// Python renders c as a Qiskit-flavoured transpiler script. This is a
// thin pretty-printer for the CLI; it does not round-trip back through
// an importer the way the QASM dumper does.
func Python(c *circuit.Circuit) string {
	var b strings.Builder
	n := c.NQubits + c.NAncillae
	fmt.Fprintf(&b, "from qiskit import QuantumCircuit\n\n")
	fmt.Fprintf(&b, "qc = QuantumCircuit(%d, %d)\n", n, c.NClassics)

	for i := range c.Ops {
		writePyOp(&b, &c.Ops[i])
	}
	return b.String()
}

func writePyOp(b *strings.Builder, o *circuit.Operation) {
	switch o.Kind {
	case circuit.KindStandard:
		writePyStandard(b, o)
	case circuit.KindNonUnitary:
		writePyNonUnitary(b, o)
	case circuit.KindClassicControlled:
		b.WriteString("# classically-controlled:\n")
		if o.Inner != nil {
			writePyOp(b, o.Inner)
		}
	case circuit.KindCompound:
		for i := range o.Children {
			writePyOp(b, &o.Children[i])
		}
	}
}

var pyMethodNames = map[circuit.StandardKind]string{
	circuit.GateI: "id", circuit.GateH: "h", circuit.GateX: "x", circuit.GateY: "y",
	circuit.GateZ: "z", circuit.GateS: "s", circuit.GateSdg: "sdg", circuit.GateT: "t",
	circuit.GateTdg: "tdg", circuit.GateU1: "p", circuit.GateU2: "u", circuit.GateU3: "u",
	circuit.GateRX: "rx", circuit.GateRY: "ry", circuit.GateRZ: "rz",
	circuit.GateSWAP: "swap", circuit.GateISWAP: "iswap", circuit.GateP: "p", circuit.GatePdg: "p",
}

func writePyStandard(b *strings.Builder, o *circuit.Operation) {
	method := pyMethodNames[o.Standard]
	if len(o.Controls) > 0 {
		method = strings.Repeat("c", len(o.Controls)) + method
	}
	var args []string
	switch o.Standard {
	case circuit.GateU1, circuit.GateRX, circuit.GateRY, circuit.GateRZ, circuit.GateP:
		args = append(args, fmt.Sprintf("%g", o.Params[0]))
	case circuit.GateU2:
		args = append(args, fmt.Sprintf("%g", o.Params[0]), fmt.Sprintf("%g", o.Params[1]))
	case circuit.GateU3:
		args = append(args, fmt.Sprintf("%g", o.Params[0]), fmt.Sprintf("%g", o.Params[1]), fmt.Sprintf("%g", o.Params[2]))
	}
	for _, ctl := range o.Controls {
		args = append(args, fmt.Sprintf("%d", ctl.Qubit))
	}
	for _, t := range o.Targets {
		args = append(args, fmt.Sprintf("%d", t))
	}
	fmt.Fprintf(b, "qc.%s(%s)\n", method, strings.Join(args, ", "))
}

func writePyNonUnitary(b *strings.Builder, o *circuit.Operation) {
	switch o.NonUnitary {
	case circuit.OpMeasure:
		for i, q := range o.MeasureTargets {
			fmt.Fprintf(b, "qc.measure(%d, %d)\n", q, o.MeasureClassics[i])
		}
	case circuit.OpReset:
		for _, t := range o.Targets {
			fmt.Fprintf(b, "qc.reset(%d)\n", t)
		}
	case circuit.OpBarrier:
		parts := make([]string, len(o.Targets))
		for i, t := range o.Targets {
			parts[i] = fmt.Sprintf("%d", t)
		}
		fmt.Fprintf(b, "qc.barrier(%s)\n", strings.Join(parts, ", "))
	case circuit.OpSnapshot:
		fmt.Fprintf(b, "# snapshot %d\n", o.SnapshotIndex)
	case circuit.OpShowProbabilities:
		b.WriteString("# show_probabilities\n")
	}
}
