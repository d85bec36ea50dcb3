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

import log "github.com/sirupsen/logrus"

// OpImage converts one circuit operation into its DD edge, in isolation of
// the others; the caller (pkg/frontend-adjacent matrix builder) supplies
// this per op-kind, since only it knows how to turn a Standard/Compound/
// NonUnitary/ClassicControlled operation into a concrete nonterminal chain
// against a particular Kernel.
type OpImage func(low, high int) Edge

// BuildMatrix implements §4.H's "Matrix construction contract": start from
// I^{⊗n} reduced by ReduceAncillae, left-multiply by each op's DD image in
// order, garbage-collecting between ops, then adapt the permutation and
// reduce ancillae/garbage on the result.
func BuildMatrix(k Kernel, n, firstAncillary int, ancillary, garbage IsFlagged, images []OpImage, adaptPermutation func(e Edge) Edge) Edge {
	k.SetMode(Matrix)

	e := k.MakeIdent(0, n-1)
	e = ReduceAncillae(k, e, firstAncillary, ancillary, true)
	k.IncRef(e)

	for i, img := range images {
		opEdge := img(0, n-1)
		next := k.Multiply(opEdge, e)
		k.IncRef(next)
		k.DecRef(e)
		e = next
		k.GarbageCollect()
		log.WithField("step", i).Debug("ddport: applied op image")
	}

	e = adaptPermutation(e)
	e = ReduceAncillae(k, e, firstAncillary, ancillary, true)
	e = ReduceGarbage(k, e, garbage, true)
	return e
}
