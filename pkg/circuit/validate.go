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

import "github.com/qcirlang/qcir/pkg/qcirerr"

// Validate checks I1-I5 in one pass over the circuit. It is the backbone of
// this package's tests and a useful post-import sanity check for every
// frontend.
func (c *Circuit) Validate() error {
	total := c.total()

	for i := range c.Ops {
		for _, idx := range c.Ops[i].AllIndices() {
			if idx < 0 || idx >= total {
				return &qcirerr.UnknownRegister{Name: "op references an out-of-range qubit index"}
			}
		}
		if err := c.Ops[i].Validate(); err != nil {
			return err
		}
	}

	seenLogical := map[int]bool{}
	for _, l := range c.InitialLayout {
		if seenLogical[l] {
			return &qcirerr.QubitAlreadyAssigned{Physical: l}
		}
		seenLogical[l] = true
	}

	seenOut := map[int]bool{}
	for _, l := range c.OutputPermutation {
		if seenOut[l] {
			return &qcirerr.QubitAlreadyAssigned{Physical: l}
		}
		seenOut[l] = true
	}

	for i := 0; i < total; i++ {
		if c.Ancillary.Test(uint(i)) && i < c.NQubits {
			return &qcirerr.UnknownRegister{Name: "ancillary bit set below nqubits"}
		}
	}

	return nil
}
