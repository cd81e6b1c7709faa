/*
 * MIT License
 *
 * Copyright (c) 2024 The Loadforge Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package value

// Method is one dispatch-table entry: a signature plus the closure that
// implements it.
type Method struct {
	Signature
	Call func(args []Variable) (Variable, error)
}

// Dispatcher gives a builtin Variable an array-indexed method table
// (§9: "re-architect as a per-type method table indexed by position so
// dispatch is an array lookup" rather than a name switch evaluated on
// every call). Builtins embed a Dispatcher and populate it once at
// construction.
type Dispatcher struct {
	methods []Method
}

// NewDispatcher builds a Dispatcher from a fixed method table. The
// table's order is the index space MethodIndex/Invoke operate over, so
// it must never be reordered once a type ships.
func NewDispatcher(methods []Method) Dispatcher {
	return Dispatcher{methods: methods}
}

// MethodIndex finds the method exactly matching name and argTypes,
// returning -1 when none matches.
func (d Dispatcher) MethodIndex(name string, argTypes []string) int {
	for i, m := range d.methods {
		if m.Name != name || len(m.ArgTypes) != len(argTypes) {
			continue
		}
		match := true
		for j, t := range m.ArgTypes {
			if t != "any" && t != argTypes[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Invoke calls the method at idx. A caller passing an index not
// returned by MethodIndex for this table is a programming error.
func (d Dispatcher) Invoke(idx int, args []Variable) (Variable, error) {
	if idx < 0 || idx >= len(d.methods) {
		return nil, ErrNoSuchMethod
	}
	return d.methods[idx].Call(args)
}

// Methods returns the table's signatures in index order.
func (d Dispatcher) Methods() []Signature {
	out := make([]Signature, len(d.methods))
	for i, m := range d.methods {
		out[i] = m.Signature
	}
	return out
}
