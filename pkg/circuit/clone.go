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

// Clone deep-copies a circuit, including its owned compound/classic-
// controlled operation trees, so that the copy shares no Operation with the
// original.
func (c *Circuit) Clone() *Circuit {
	out := New()
	out.NQubits, out.NAncillae, out.NClassics = c.NQubits, c.NAncillae, c.NClassics
	out.MaxControls = c.MaxControls

	out.QRegs = cloneRegisterMap(c.QRegs)
	out.CRegs = cloneRegisterMap(c.CRegs)
	out.AncRegs = cloneRegisterMap(c.AncRegs)

	for p, l := range c.InitialLayout {
		out.InitialLayout[p] = l
	}
	for p, l := range c.OutputPermutation {
		out.OutputPermutation[p] = l
	}

	out.Ancillary = c.Ancillary.Clone()
	out.Garbage = c.Garbage.Clone()

	out.Ops = make([]Operation, len(c.Ops))
	for i := range c.Ops {
		out.Ops[i] = cloneOperation(c.Ops[i])
	}
	return out
}

func cloneRegisterMap(m *RegisterMap) *RegisterMap {
	out := NewRegisterMap()
	for _, name := range m.Names() {
		b, _ := m.Lookup(name)
		out.order = append(out.order, name)
		out.blocks[name] = b
	}
	return out
}

func cloneOperation(o Operation) Operation {
	c := o
	c.Targets = append([]int{}, o.Targets...)
	c.Controls = append([]Control{}, o.Controls...)
	c.MeasureTargets = append([]int{}, o.MeasureTargets...)
	c.MeasureClassics = append([]int{}, o.MeasureClassics...)
	if len(o.Children) > 0 {
		c.Children = make([]Operation, len(o.Children))
		for i := range o.Children {
			c.Children[i] = cloneOperation(o.Children[i])
		}
	}
	if o.Inner != nil {
		inner := cloneOperation(*o.Inner)
		c.Inner = &inner
	}
	return c
}
