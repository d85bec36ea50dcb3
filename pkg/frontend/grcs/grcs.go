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

// Package grcs implements the GRCS auxiliary format importer of §4.F.
package grcs

import (
	"bufio"
	"math"
	"strconv"
	"strings"

	"github.com/qcirlang/qcir/pkg/circuit"
	"github.com/qcirlang/qcir/pkg/qcirerr"
)

// Import parses a GRCS-format source into a fresh circuit.Circuit.
//
// The first line holds the qubit count `n`; every subsequent line is
// `cycle name args` where name selects the gate and args are 0-based
// qubit indices.
func Import(source string) (*circuit.Circuit, error) {
	sc := bufio.NewScanner(strings.NewReader(source))
	if !sc.Scan() {
		return nil, &qcirerr.BadHeader{Message: "missing qubit count line"}
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return nil, &qcirerr.BadHeader{Message: "qubit count line is not an integer"}
	}

	c := circuit.New()
	if err := c.AddQubitRegister(n, "q"); err != nil {
		return nil, err
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, &qcirerr.BadHeader{Message: "gate line needs at least a cycle and a name"}
		}
		// fields[0] is the cycle index; it orders the original schedule but
		// has no bearing on the linear operation list built here.
		if err := gateLine(c, fields[1], fields[2:]); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func gateLine(c *circuit.Circuit, name string, args []string) error {
	qubits, err := parseIndices(args)
	if err != nil {
		return err
	}
	nqt := c.NQubits + c.NAncillae

	switch name {
	case "cz":
		if len(qubits) != 2 {
			return &qcirerr.ArgumentCountMismatch{Expected: 2, Got: len(qubits)}
		}
		op, err := circuit.NewStandard(nqt, circuit.GateZ, []circuit.Control{{Qubit: qubits[0], Polarity: circuit.Pos}}, []int{qubits[1]}, [3]float64{})
		if err != nil {
			return err
		}
		c.Ops = append(c.Ops, op)
	case "h":
		return emitSingleQubit(c, nqt, qubits, circuit.GateH, [3]float64{})
	case "t":
		return emitSingleQubit(c, nqt, qubits, circuit.GateT, [3]float64{})
	case "x_1_2":
		return emitSingleQubit(c, nqt, qubits, circuit.GateRX, [3]float64{math.Pi / 2, 0, 0})
	case "y_1_2":
		return emitSingleQubit(c, nqt, qubits, circuit.GateRY, [3]float64{math.Pi / 2, 0, 0})
	default:
		return &qcirerr.UndefinedGate{Name: name}
	}
	return nil
}

func emitSingleQubit(c *circuit.Circuit, nqt int, qubits []int, kind circuit.StandardKind, params [3]float64) error {
	if len(qubits) != 1 {
		return &qcirerr.ArgumentCountMismatch{Expected: 1, Got: len(qubits)}
	}
	op, err := circuit.NewStandard(nqt, kind, nil, []int{qubits[0]}, params)
	if err != nil {
		return err
	}
	c.Ops = append(c.Ops, op)
	return nil
}

func parseIndices(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, &qcirerr.UnknownRegister{Name: a}
		}
		out[i] = v
	}
	return out, nil
}
