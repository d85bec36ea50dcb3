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

// Package tfc implements the TFC auxiliary format importer of §4.F.
package tfc

import (
	"bufio"
	"strings"

	"github.com/qcirlang/qcir/pkg/circuit"
	"github.com/qcirlang/qcir/pkg/qcirerr"
)

// Import parses a TFC-format source into a fresh circuit.Circuit.
func Import(source string) (*circuit.Circuit, error) {
	c := circuit.New()
	names := map[string]int{}
	var order []string
	inputs := map[string]bool{}
	outputs := map[string]bool{}
	var constants []string

	sc := bufio.NewScanner(strings.NewReader(source))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		args := splitArgs(fields[1:])

		switch {
		case cmd == ".v":
			order = append(order, args...)
		case cmd == ".i":
			for _, n := range args {
				inputs[n] = true
			}
		case cmd == ".o":
			for _, n := range args {
				outputs[n] = true
			}
		case cmd == ".c":
			constants = append(constants, args...)
		case cmd == ".ol":
			continue
		case cmd == "BEGIN" || cmd == "begin":
			if err := beginCircuit(c, order, inputs, names, constants, outputs); err != nil {
				return nil, err
			}
		case cmd == "END" || cmd == "end":
			continue
		case strings.HasPrefix(cmd, "t") || strings.HasPrefix(cmd, "T") || strings.HasPrefix(cmd, "f") || strings.HasPrefix(cmd, "F"):
			if err := gateLine(c, names, fields); err != nil {
				return nil, err
			}
		default:
			return nil, &qcirerr.UnknownCommand{Command: cmd}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// splitArgs joins whitespace-separated fields back together and re-splits
// on ',', since TFC variable lists are comma-separated without spaces.
func splitArgs(fields []string) []string {
	joined := strings.Join(fields, "")
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}

// beginCircuit partitions the `.v` variables into inputs (qreg "q") and
// constants (ancreg "anc"), grounded on QuantumComputation.cpp's
// readTFCHeader: inputs get sequential logical indices [0,ninputs), the
// remaining variables — in `.v` order, *not* `.v` position — get logical
// indices [ninputs,n) and consume the `.c` values in that same order, each
// emitting an X op when the supplied initial value is '1'. initialLayout
// then maps each variable's original `.v` position to the logical index it
// was assigned, and outputPermutation keeps only the variables named in
// `.o`.
func beginCircuit(c *circuit.Circuit, order []string, inputs map[string]bool, names map[string]int, constants []string, outputs map[string]bool) error {
	ninputs := 0
	for _, v := range order {
		if inputs[v] {
			ninputs++
		}
	}
	nconstants := len(order) - ninputs

	if err := c.AddQubitRegister(ninputs, "q"); err != nil {
		return err
	}
	if nconstants > 0 {
		if err := c.AddAncillaryRegister(nconstants, "anc"); err != nil {
			return err
		}
	}

	qidx := 0
	constidx := ninputs
	constPos := 0
	for _, v := range order {
		if inputs[v] {
			names[v] = qidx
			qidx++
			continue
		}
		if constPos >= len(constants) {
			return &qcirerr.BadHeader{Message: "not enough .c values for the constant variables in .v"}
		}
		val := constants[constPos]
		constPos++
		if val != "0" && val != "1" {
			return &qcirerr.BadHeader{Message: "non-binary constant specified: " + val}
		}
		if val == "1" {
			op, err := circuit.NewStandard(c.NQubits+c.NAncillae, circuit.GateX, nil, []int{constidx}, [3]float64{})
			if err != nil {
				return err
			}
			c.Ops = append(c.Ops, op)
		}
		names[v] = constidx
		constidx++
	}

	for pos, v := range order {
		logical := names[v]
		c.InitialLayout[pos] = logical
		if outputs[v] {
			c.OutputPermutation[pos] = logical
		} else {
			delete(c.OutputPermutation, pos)
			c.Garbage.Set(uint(logical))
		}
	}
	return nil
}

func gateLine(c *circuit.Circuit, names map[string]int, fields []string) error {
	toks := splitArgs(fields[1:])
	if len(toks) == 0 {
		return &qcirerr.BadHeader{Message: "empty gate line"}
	}

	var controls []circuit.Control
	for _, tok := range toks[:len(toks)-1] {
		neg := strings.HasSuffix(tok, "'")
		if neg {
			tok = strings.TrimSuffix(tok, "'")
		}
		idx, ok := names[tok]
		if !ok {
			return &qcirerr.UnknownRegister{Name: tok}
		}
		pol := circuit.Pos
		if neg {
			pol = circuit.Neg
		}
		controls = append(controls, circuit.Control{Qubit: idx, Polarity: pol})
	}
	targetTok := strings.TrimSuffix(toks[len(toks)-1], "'")
	target, ok := names[targetTok]
	if !ok {
		return &qcirerr.UnknownRegister{Name: targetTok}
	}

	op, err := circuit.NewStandard(c.NQubits+c.NAncillae, circuit.GateX, controls, []int{target}, [3]float64{})
	if err != nil {
		return err
	}
	c.Ops = append(c.Ops, op)
	return nil
}
