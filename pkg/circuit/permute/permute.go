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

// Package permute implements the permutation-adaptation algorithm of §4.G:
// reconciling a tracked physical->logical map against a target map by
// emitting SWAPs, each multiplied into a DD edge on the side the caller's
// regular flag selects.
package permute

import (
	"github.com/qcirlang/qcir/pkg/circuit/ddport"
)

// SwapImage builds the DD edge for a SWAP gate on physical wires p, q.
type SwapImage func(p, q int) ddport.Edge

// Adapt reconciles from (the tracked physical->logical map) against to (the
// target map) by emitting SWAPs, each left-multiplied into e when regular
// is true, right-multiplied otherwise. from is mutated in place to equal to
// on every key to covers. Precondition: len(from) >= len(to) and every key
// of to is a key of from.
func Adapt(k ddport.Kernel, e ddport.Edge, from, to map[int]int, order []int, swap SwapImage, regular bool) ddport.Edge {
	for _, p := range order {
		goal, ok := to[p]
		if !ok {
			continue
		}
		if from[p] == goal {
			continue
		}

		q := findKeyForValue(from, goal)

		swapEdge := swap(p, q)
		var next ddport.Edge
		if regular {
			next = k.Multiply(swapEdge, e)
		} else {
			next = k.Multiply(e, swapEdge)
		}
		k.IncRef(next)
		k.DecRef(e)
		e = next

		prev := from[p]
		from[p] = goal
		from[q] = prev
	}
	return e
}

func findKeyForValue(m map[int]int, goal int) int {
	for k, v := range m {
		if v == goal {
			return k
		}
	}
	return -1
}
