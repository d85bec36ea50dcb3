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
package ddport

// IsFlagged reports whether the kernel has marked logical variable v as
// ancillary or garbage; the core supplies this via the circuit's own
// bitsets rather than asking the kernel to track it.
type IsFlagged func(v int) bool

// ReduceAncillae performs the DFS described in §4.H: below firstAncillary
// the edge is left untouched; at a node flagged ancillary, the [01]/[11]
// successors are zeroed in regular mode, [10]/[11] otherwise.
func ReduceAncillae(k Kernel, e Edge, firstAncillary int, ancillary IsFlagged, regular bool) Edge {
	return reduceDFS(k, e, firstAncillary, ancillary, regular, false)
}

// ReduceGarbage performs the DFS described in §4.H: at a node flagged
// garbage, the non-zero children of the suppressed half are folded into the
// preserved half via Add, producing (g,h,0,0) in regular mode or (g,0,h,0)
// otherwise.
func ReduceGarbage(k Kernel, e Edge, garbage IsFlagged, regular bool) Edge {
	return reduceDFS(k, e, 0, garbage, regular, true)
}

func reduceDFS(k Kernel, e Edge, threshold int, flagged IsFlagged, regular, fold bool) Edge {
	if k.IsTerminal(e) {
		return e
	}
	v := k.NodeVar(e)
	children := k.NodeChildren(e)

	var reduced Children
	for i, c := range children {
		if k.IsTerminal(c) {
			reduced[i] = c
			continue
		}
		if v+1 < threshold {
			reduced[i] = c
			continue
		}
		reduced[i] = reduceDFS(k, c, threshold, flagged, regular, fold)
	}

	if v >= threshold && flagged(v) {
		if fold {
			reduced = foldGarbage(k, reduced, regular)
		} else {
			reduced = zeroAncillaHalf(k, reduced, regular)
		}
	}

	out := k.MakeNonterminal(v, reduced)
	w := k.MulCached(k.EdgeWeight(e), k.EdgeWeight(out))
	out = k.WithWeight(out, k.Lookup(w))
	k.ReleaseCached(w)
	return out
}

// zeroAncillaHalf zeroes [e01,e11] (regular) or [e10,e11] (otherwise),
// leaving the other half untouched.
func zeroAncillaHalf(k Kernel, c Children, regular bool) Children {
	z := k.DDZero()
	if regular {
		return Children{c[0], z, c[2], z}
	}
	return Children{c[0], c[1], z, z}
}

// foldGarbage folds the suppressed half's non-zero children into the
// preserved half via Add, per §4.H's reduceGarbage contract.
func foldGarbage(k Kernel, c Children, regular bool) Children {
	z := k.DDZero()
	if regular {
		g := c[0]
		if !k.EqualsZero(k.EdgeWeight(c[2])) {
			g = k.Add(g, c[2])
		}
		h := c[1]
		if !k.EqualsZero(k.EdgeWeight(c[3])) {
			h = k.Add(h, c[3])
		}
		return Children{g, h, z, z}
	}
	g := c[0]
	if !k.EqualsZero(k.EdgeWeight(c[1])) {
		g = k.Add(g, c[1])
	}
	h := c[2]
	if !k.EqualsZero(k.EdgeWeight(c[3])) {
		h = k.Add(h, c[3])
	}
	return Children{g, z, h, z}
}
