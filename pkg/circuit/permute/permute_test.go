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
package permute

import (
	"testing"

	"github.com/qcirlang/qcir/pkg/circuit/ddport"
)

// recordingKernel is a minimal fake satisfying ddport.Kernel, just enough
// to exercise Adapt's multiply/incRef/decRef discipline without a real DD
// implementation.
type recordingKernel struct {
	multiplies int
	incRefs    int
	decRefs    int
}

func (k *recordingKernel) MakeIdent(low, high int) ddport.Edge                     { return "ident" }
func (k *recordingKernel) MakeZeroState(n int) ddport.Edge                        { return "zero" }
func (k *recordingKernel) MakeNonterminal(v int, c ddport.Children) ddport.Edge   { return "node" }
func (k *recordingKernel) Multiply(a, b ddport.Edge) ddport.Edge {
	k.multiplies++
	return "product"
}
func (k *recordingKernel) Add(a, b ddport.Edge) ddport.Edge { return "sum" }
func (k *recordingKernel) IncRef(e ddport.Edge)              { k.incRefs++ }
func (k *recordingKernel) DecRef(e ddport.Edge)              { k.decRefs++ }
func (k *recordingKernel) GarbageCollect()                   {}
func (k *recordingKernel) SetMode(m ddport.Mode)              {}
func (k *recordingKernel) DynamicReorder(e ddport.Edge, vm ddport.VarMap, s ddport.ReorderStrategy) ddport.Edge {
	return e
}
func (k *recordingKernel) MulCached(a, b ddport.Weight) ddport.Weight { return nil }
func (k *recordingKernel) Lookup(w ddport.Weight) ddport.Weight       { return w }
func (k *recordingKernel) ReleaseCached(w ddport.Weight)              {}
func (k *recordingKernel) EqualsZero(w ddport.Weight) bool            { return w == nil }
func (k *recordingKernel) IsTerminal(e ddport.Edge) bool              { return e == "zero" || e == "ident" }
func (k *recordingKernel) DDZero() ddport.Edge                        { return "zero" }
func (k *recordingKernel) DDOne() ddport.Edge                         { return "ident" }
func (k *recordingKernel) NodeVar(e ddport.Edge) int                  { return 0 }
func (k *recordingKernel) NodeChildren(e ddport.Edge) ddport.Children { return ddport.Children{} }
func (k *recordingKernel) EdgeWeight(e ddport.Edge) ddport.Weight     { return nil }
func (k *recordingKernel) WithWeight(e ddport.Edge, w ddport.Weight) ddport.Edge { return e }

func TestAdaptSingleSwapScenario(t *testing.T) {
	// from: identity on {0,1}; to swaps them -- exactly one SWAP expected.
	from := map[int]int{0: 0, 1: 1}
	to := map[int]int{0: 1, 1: 0}
	k := &recordingKernel{}

	result := Adapt(k, "ident", from, to, []int{0, 1}, func(p, q int) ddport.Edge { return "swap" }, true)

	if result != "product" {
		t.Fatalf("got %v, want the multiplied edge", result)
	}
	if k.multiplies != 1 {
		t.Fatalf("got %d multiplies, want exactly 1 SWAP for this scenario", k.multiplies)
	}
	if from[0] != 1 || from[1] != 0 {
		t.Fatalf("from map not updated correctly: %v", from)
	}
}

func TestAdaptSkipsAlreadyFixedEntries(t *testing.T) {
	from := map[int]int{0: 0, 1: 1, 2: 2}
	to := map[int]int{0: 0, 1: 1, 2: 2}
	k := &recordingKernel{}

	Adapt(k, "ident", from, to, []int{0, 1, 2}, func(p, q int) ddport.Edge { return "swap" }, true)

	if k.multiplies != 0 {
		t.Fatalf("got %d multiplies, want 0 when from already equals to", k.multiplies)
	}
}
