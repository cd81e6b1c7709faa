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

import "strconv"

func init() {
	_ = Default.Register("integer", func() Variable { return NewInteger(0) })
}

// Integer is the builtin signed-integer type (§4.3).
type Integer struct {
	Dispatcher
	v int64
}

// NewInteger wraps v as an Integer Variable.
func NewInteger(v int64) *Integer {
	n := &Integer{v: v}
	n.Dispatcher = NewDispatcher([]Method{
		{Signature{"set", []string{"integer"}, ""}, func(a []Variable) (Variable, error) {
			n.v = a[0].(*Integer).v
			return nil, nil
		}},
		{Signature{"add", []string{"integer"}, "integer"}, func(a []Variable) (Variable, error) {
			return NewInteger(n.v + a[0].(*Integer).v), nil
		}},
		{Signature{"subtract", []string{"integer"}, "integer"}, func(a []Variable) (Variable, error) {
			return NewInteger(n.v - a[0].(*Integer).v), nil
		}},
		{Signature{"multiply", []string{"integer"}, "integer"}, func(a []Variable) (Variable, error) {
			return NewInteger(n.v * a[0].(*Integer).v), nil
		}},
		{Signature{"equals", []string{"integer"}, "boolean"}, func(a []Variable) (Variable, error) {
			return NewBoolean(n.v == a[0].(*Integer).v), nil
		}},
		{Signature{"lessthan", []string{"integer"}, "boolean"}, func(a []Variable) (Variable, error) {
			return NewBoolean(n.v < a[0].(*Integer).v), nil
		}},
		{Signature{"greaterthan", []string{"integer"}, "boolean"}, func(a []Variable) (Variable, error) {
			return NewBoolean(n.v > a[0].(*Integer).v), nil
		}},
		{Signature{"tostring", nil, "string"}, func(a []Variable) (Variable, error) {
			return NewString(strconv.FormatInt(n.v, 10)), nil
		}},
	})
	return n
}

func (n *Integer) TypeName() string { return "integer" }

func (n *Integer) Value() int64 { return n.v }

func (n *Integer) AssignFrom(other Variable) error {
	o, ok := other.(*Integer)
	if !ok {
		return ErrTypeMismatch
	}
	n.v = o.v
	return nil
}

func (n *Integer) String() string { return strconv.FormatInt(n.v, 10) }

func (n *Integer) StatTrackers() []StatTracker { return nil }
