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

import "testing"

func TestAugmentExtendsOnlyWhenTailCoincidesWithEnd(t *testing.T) {
	m := NewRegisterMap()
	if _, err := m.Augment("q", 3, 0); err != nil {
		t.Fatal(err)
	}
	// The block's tail (End()==3) coincides with end==3: a legitimate
	// append-more-to-the-last-block call.
	if _, err := m.Augment("q", 2, 3); err != nil {
		t.Fatal(err)
	}
	b, _ := m.Lookup("q")
	if b.Base != 0 || b.Length != 5 {
		t.Fatalf("got %+v, want Base=0 Length=5", b)
	}
}

func TestAugmentRejectsReaugmentingNonLastBlock(t *testing.T) {
	m := NewRegisterMap()
	if _, err := m.Augment("q", 3, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Augment("anc", 2, 3); err != nil {
		t.Fatal(err)
	}
	// "q"'s tail is 3, but callers must now pass end==5 (the true
	// end-of-range with "anc" allocated after it); passing end==3 again
	// would silently overlap "anc" were it not rejected.
	if _, err := m.Augment("q", 1, 3); err == nil {
		t.Fatal("expected AugmentNotLast error when re-augmenting a non-last block")
	}
	b, _ := m.Lookup("q")
	if b.Length != 3 {
		t.Fatalf("got q.Length=%d, want unchanged at 3 after the rejected augment", b.Length)
	}
	anc, _ := m.Lookup("anc")
	if anc.Base != 3 || anc.Length != 2 {
		t.Fatalf("got anc=%+v, want unchanged Base=3 Length=2", anc)
	}
}
