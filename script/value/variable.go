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

// Package value implements the script engine's runtime value system
// (§3, §4.3): named, typed Variables with an ordered method table and
// uniform, array-indexed operation dispatch.
package value

// StatTracker is a named time-series attached to a Variable (§4.3): a
// counter, value-distribution, or duration, started before a script's
// first instruction and stopped after its last.
type StatTracker interface {
	Name() string
	Kind() string
}

// Variable is the mandatory contract every script value type
// implements (§3): assign-from-same-type, method lookup, invocation by
// index, and a debug string rendering.
type Variable interface {
	// TypeName returns the value's registered type name, lowercase.
	TypeName() string

	// AssignFrom copies the state of another Variable of the same type
	// into this one. Implementations must reject a type mismatch.
	AssignFrom(other Variable) error

	// MethodIndex resolves (name, arg-type-vector) to a stable method
	// index, or -1 if no method matches exactly (§3 invariant).
	MethodIndex(name string, argTypes []string) int

	// Invoke calls the method at idx with already-evaluated arguments.
	Invoke(idx int, args []Variable) (Variable, error)

	// String renders the value for debug tracing (§4.5).
	String() string

	// Methods lists every (name, argTypes, returnType) signature in
	// table order, for parse-time resolution and round-trip printing.
	Methods() []Signature

	// StatTrackers returns the trackers this value owns, collected by
	// the interpreter at job end (§4.3, §3 lifecycle).
	StatTrackers() []StatTracker
}

// Signature is one entry of a Variable's method table.
type Signature struct {
	Name       string
	ArgTypes   []string
	ReturnType string
}
