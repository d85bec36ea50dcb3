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

// Package real implements the REAL auxiliary format importer of §4.F.
package real

import (
	"bufio"
	"math"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/qcirlang/qcir/pkg/circuit"
	"github.com/qcirlang/qcir/pkg/qcirerr"
)

// Import parses a REAL-format source into a fresh circuit.Circuit.
func Import(source string) (*circuit.Circuit, error) {
	c := circuit.New()
	names := map[string]int{} // variable name -> logical qubit index
	var order []string
	constants := map[string]byte{}

	sc := bufio.NewScanner(strings.NewReader(source))
	inDefine := false
	var begun bool

	for sc.Scan() {
		line := stripComment(sc.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if inDefine {
			if line == ".enddefine" {
				inDefine = false
			}
			continue
		}

		fields := strings.Fields(line)
		cmd := fields[0]

		switch {
		case cmd == ".numvars":
			continue
		case cmd == ".variables":
			order = append(order, fields[1:]...)
		case cmd == ".constants":
			for i, tok := range fields[1:] {
				if i < len(order) {
					constants[order[i]] = tok[0]
				}
			}
		case cmd == ".inputs", cmd == ".outputs", cmd == ".garbage":
			continue
		case cmd == ".define":
			inDefine = true
			log.Warn("real: .define block skipped")
			continue
		case cmd == ".begin":
			if err := c.AddQubitRegister(len(order), "q"); err != nil {
				return nil, err
			}
			for i, n := range order {
				names[n] = i
			}
			for i, n := range order {
				if constants[n] == '1' {
					op, err := circuit.NewStandard(c.NQubits, circuit.GateX, nil, []int{i}, [3]float64{})
					if err != nil {
						return nil, err
					}
					c.Ops = append(c.Ops, op)
				}
			}
			begun = true
		case cmd == ".end":
			begun = false
		case begun:
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

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// gateLine parses one `⟨gate⟩[⟨n⟩][:⟨λ⟩] ⟨q1⟩ … ⟨qk⟩` line, per §4.F.
func gateLine(c *circuit.Circuit, names map[string]int, fields []string) error {
	head := fields[0]
	gateName, lambda, hasLambda := splitGateHead(head)
	if gateName == "t" {
		gateName = "X"
	}

	qubitToks := fields[1:]
	var controls []circuit.Control
	for _, tok := range qubitToks[:len(qubitToks)-1] {
		neg := strings.HasPrefix(tok, "-")
		if neg {
			tok = tok[1:]
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
	targetTok := strings.TrimPrefix(qubitToks[len(qubitToks)-1], "-")
	target, ok := names[targetTok]
	if !ok {
		return &qcirerr.UnknownRegister{Name: targetTok}
	}

	kind, theta, err := standardKindFor(gateName, lambda, hasLambda)
	if err != nil {
		return err
	}
	op, err := circuit.NewStandard(c.NQubits+c.NAncillae, kind, controls, []int{target}, [3]float64{theta, 0, 0})
	if err != nil {
		return err
	}
	c.Ops = append(c.Ops, op)
	return nil
}

// splitGateHead splits `⟨gate⟩[⟨n⟩][:⟨λ⟩]` into the bare gate name and an
// optional lambda divisor.
func splitGateHead(head string) (name string, lambda float64, hasLambda bool) {
	name = head
	if i := strings.IndexByte(name, ':'); i >= 0 {
		v, _ := strconv.ParseFloat(name[i+1:], 64)
		lambda, hasLambda = v, true
		name = name[:i]
	}
	for len(name) > 1 {
		last := name[len(name)-1]
		if last < '0' || last > '9' {
			break
		}
		name = name[:len(name)-1]
	}
	return name, lambda, hasLambda
}

// standardKindFor maps a REAL gate name (+ optional lambda) to a Standard
// kind and angle, including the RZ/U1 near-integer-divisor collapse rule
// of §4.F.
func standardKindFor(name string, lambda float64, hasLambda bool) (circuit.StandardKind, float64, error) {
	switch strings.ToUpper(name) {
	case "X":
		return circuit.GateX, 0, nil
	case "Y":
		return circuit.GateY, 0, nil
	case "Z":
		return circuit.GateZ, 0, nil
	case "H":
		return circuit.GateH, 0, nil
	case "S":
		return circuit.GateS, 0, nil
	case "RZ", "U1":
		if !hasLambda {
			return circuit.GateRZ, 0, nil
		}
		if k, ok := collapseDivisor(lambda); ok {
			return k, 0, nil
		}
		return circuit.GateRZ, math.Pi / lambda, nil
	case "RX":
		return circuit.GateRX, math.Pi / lambda, nil
	case "RY":
		return circuit.GateRY, math.Pi / lambda, nil
	}
	return 0, 0, &qcirerr.UndefinedGate{Name: name}
}

// collapseDivisor implements the RZ/U1 near-integer-divisor collapse rule:
// ±1 -> Z, ±2 -> S/S†, ±4 -> T/T†.
func collapseDivisor(lambda float64) (circuit.StandardKind, bool) {
	r := math.Round(lambda)
	if math.Abs(lambda-r) > 1e-9 {
		return 0, false
	}
	switch r {
	case 1:
		return circuit.GateZ, true
	case -1:
		return circuit.GateZ, true
	case 2:
		return circuit.GateS, true
	case -2:
		return circuit.GateSdg, true
	case 4:
		return circuit.GateT, true
	case -4:
		return circuit.GateTdg, true
	}
	return 0, false
}
