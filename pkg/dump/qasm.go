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

// Package dump renders a circuit.Circuit back out as human-readable text.
// This is deliberately outside the core (§1's non-goals): the core only
// needs to round-trip through the model, not through a printer.
package dump

import (
	"fmt"
	"sort"
	"strings"

	"github.com/qcirlang/qcir/pkg/circuit"
)

// QASM renders c as OpenQASM 2.0 source, sufficient to satisfy the R1
// round-trip law (import -> dump -> import gives back identical ops,
// layouts, and register structure modulo consolidate). Layout comments list
// the physical index of each logical qubit in logical order; a partial
// output permutation whose logical indices have gaps is read back with
// those logical indices renumbered consecutively. Every qubit and
// classical-bit reference is resolved back to its owning register by name
// and local offset (not a bare "q[...]"), since that is the only form the
// frontend in pkg/frontend/qasm actually parses.
func QASM(c *circuit.Circuit) string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")

	writeLayoutComment(&b, "i", c.InitialLayout, c.NQubits)
	writeLayoutComment(&b, "o", c.OutputPermutation, c.NQubits)

	for _, name := range c.QRegs.Names() {
		blk, _ := c.QRegs.Lookup(name)
		fmt.Fprintf(&b, "qreg %s[%d];\n", name, blk.Length)
	}
	for _, name := range c.AncRegs.Names() {
		blk, _ := c.AncRegs.Lookup(name)
		fmt.Fprintf(&b, "qreg %s[%d];\n", name, blk.Length)
	}
	for _, name := range c.CRegs.Names() {
		blk, _ := c.CRegs.Lookup(name)
		fmt.Fprintf(&b, "creg %s[%d];\n", name, blk.Length)
	}

	for i := range c.Ops {
		writeOp(&b, c, &c.Ops[i])
	}
	return b.String()
}

func writeLayoutComment(b *strings.Builder, tag string, layout map[int]int, n int) {
	if len(layout) == 0 {
		return
	}
	indices := make([]int, 0, len(layout))
	for k := range layout {
		indices = append(indices, k)
	}
	sort.Slice(indices, func(i, j int) bool { return layout[indices[i]] < layout[indices[j]] })
	b.WriteString("// " + tag)
	for _, k := range indices {
		fmt.Fprintf(b, " %d", k)
	}
	b.WriteString("\n")
}

// qubitRef resolves a global qubit/ancilla index to the "name[offset]"
// reference the frontend's argumentQubit parses, searching QRegs then
// AncRegs (they share one global index space, ancillae following qubits).
func qubitRef(c *circuit.Circuit, idx int) string {
	if name, off, ok := c.QRegs.FindByIndex(idx); ok {
		return fmt.Sprintf("%s[%d]", name, off)
	}
	if name, off, ok := c.AncRegs.FindByIndex(idx); ok {
		return fmt.Sprintf("%s[%d]", name, off)
	}
	return fmt.Sprintf("q[%d]", idx)
}

func classicalRef(c *circuit.Circuit, idx int) string {
	if name, off, ok := c.CRegs.FindByIndex(idx); ok {
		return fmt.Sprintf("%s[%d]", name, off)
	}
	return fmt.Sprintf("c[%d]", idx)
}

// wholeRegisterName reports the name of a qreg/ancreg/creg block whose full
// extent, in order, equals indices exactly — the only shape the frontend's
// bare (unindexed) argumentQubit/argumentClassical accepts.
func wholeRegisterName(maps []*circuit.RegisterMap, indices []int) (string, bool) {
	if len(indices) == 0 {
		return "", false
	}
	for _, m := range maps {
		for _, name := range m.Names() {
			blk, _ := m.Lookup(name)
			if blk.Length != len(indices) {
				continue
			}
			match := true
			for i, v := range indices {
				if v != blk.Base+i {
					match = false
					break
				}
			}
			if match {
				return name, true
			}
		}
	}
	return "", false
}

func writeOp(b *strings.Builder, c *circuit.Circuit, o *circuit.Operation) {
	switch o.Kind {
	case circuit.KindStandard:
		writeStandard(b, c, o)
	case circuit.KindNonUnitary:
		writeNonUnitary(b, c, o)
	case circuit.KindClassicControlled:
		cregName, ok := wholeRegisterName([]*circuit.RegisterMap{c.CRegs}, crange(o.CregBase, o.CregLength))
		if !ok {
			cregName = fmt.Sprintf("c[%d]", o.CregBase)
		}
		fmt.Fprintf(b, "if (%s==%d) ", cregName, o.Expected)
		if o.Inner != nil {
			writeOp(b, c, o.Inner)
		}
	case circuit.KindCompound:
		for i := range o.Children {
			writeOp(b, c, &o.Children[i])
		}
	}
}

func crange(base, length int) []int {
	out := make([]int, length)
	for i := range out {
		out[i] = base + i
	}
	return out
}

var standardNames = map[circuit.StandardKind]string{
	circuit.GateI: "id", circuit.GateH: "h", circuit.GateX: "x", circuit.GateY: "y",
	circuit.GateZ: "z", circuit.GateS: "s", circuit.GateSdg: "sdg", circuit.GateT: "t",
	circuit.GateTdg: "tdg", circuit.GateV: "v", circuit.GateVdg: "vdg",
	circuit.GateU1: "u1", circuit.GateU2: "u2", circuit.GateU3: "u3",
	circuit.GateRX: "rx", circuit.GateRY: "ry", circuit.GateRZ: "rz",
	circuit.GateSWAP: "swap", circuit.GateISWAP: "iswap", circuit.GateP: "p", circuit.GatePdg: "pdg",
}

func writeStandard(b *strings.Builder, c *circuit.Circuit, o *circuit.Operation) {
	name := standardNames[o.Standard]
	for range o.Controls {
		name = "c" + name
	}
	fmt.Fprintf(b, "%s%s", name, paramSuffix(o.Standard, o.Params))
	var args []string
	for _, ctl := range o.Controls {
		if ctl.Polarity == circuit.Neg {
			args = append(args, "~"+qubitRef(c, ctl.Qubit))
		} else {
			args = append(args, qubitRef(c, ctl.Qubit))
		}
	}
	for _, t := range o.Targets {
		args = append(args, qubitRef(c, t))
	}
	b.WriteString(" " + strings.Join(args, ",") + ";\n")
}

func paramSuffix(kind circuit.StandardKind, p [3]float64) string {
	switch kind {
	case circuit.GateU1, circuit.GateRX, circuit.GateRY, circuit.GateRZ, circuit.GateP, circuit.GatePdg:
		return fmt.Sprintf("(%g)", p[0])
	case circuit.GateU2:
		return fmt.Sprintf("(%g,%g)", p[0], p[1])
	case circuit.GateU3:
		return fmt.Sprintf("(%g,%g,%g)", p[0], p[1], p[2])
	}
	return ""
}

// writeNonUnitary emits measure/reset/barrier/snapshot/show_probabilities in
// the grammar §6 names and pkg/frontend/qasm actually parses: comma-separated
// "name[i]" qubit arguments for barrier/snapshot/reset (argumentQubitList),
// and a single qubit/classical reference — bracketed, or the bare register
// name when the op covers a whole register end to end — for measure
// (argumentQubit, which has no comma-list form).
func writeNonUnitary(b *strings.Builder, c *circuit.Circuit, o *circuit.Operation) {
	switch o.NonUnitary {
	case circuit.OpMeasure:
		writeMeasure(b, c, o.MeasureTargets, o.MeasureClassics)
	case circuit.OpReset:
		fmt.Fprintf(b, "reset %s;\n", joinQubitRefs(c, o.Targets))
	case circuit.OpBarrier:
		fmt.Fprintf(b, "barrier %s;\n", joinQubitRefs(c, o.Targets))
	case circuit.OpSnapshot:
		fmt.Fprintf(b, "snapshot(%d) %s;\n", o.SnapshotIndex, joinQubitRefs(c, o.Targets))
	case circuit.OpShowProbabilities:
		b.WriteString("show_probabilities;\n")
	}
}

func writeMeasure(b *strings.Builder, c *circuit.Circuit, targets, classics []int) {
	if len(targets) == 1 {
		fmt.Fprintf(b, "measure %s -> %s;\n", qubitRef(c, targets[0]), classicalRef(c, classics[0]))
		return
	}
	qname, qok := wholeRegisterName([]*circuit.RegisterMap{c.QRegs, c.AncRegs}, targets)
	cname, cok := wholeRegisterName([]*circuit.RegisterMap{c.CRegs}, classics)
	if qok && cok {
		fmt.Fprintf(b, "measure %s -> %s;\n", qname, cname)
		return
	}
	// Not expressible as one statement in this grammar (no partial-slice
	// list form for measure); split into one single-qubit statement per
	// pair, each of which always fits the bracketed form above.
	for i := range targets {
		fmt.Fprintf(b, "measure %s -> %s;\n", qubitRef(c, targets[i]), classicalRef(c, classics[i]))
	}
}

func joinQubitRefs(c *circuit.Circuit, idx []int) string {
	parts := make([]string, len(idx))
	for i, v := range idx {
		parts[i] = qubitRef(c, v)
	}
	return strings.Join(parts, ",")
}
