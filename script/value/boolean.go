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
	_ = Default.Register("boolean", func() Variable { return NewBoolean(false) })
}

// Boolean is the builtin boolean type (§4.3).
type Boolean struct {
	Dispatcher
	v bool
}

// NewBoolean wraps v as a Boolean Variable.
func NewBoolean(v bool) *Boolean {
	b := &Boolean{v: v}
	b.Dispatcher = NewDispatcher([]Method{
		{Signature{"set", []string{"boolean"}, ""}, func(a []Variable) (Variable, error) {
			b.v = a[0].(*Boolean).v
			return nil, nil
		}},
		{Signature{"not", nil, "boolean"}, func(a []Variable) (Variable, error) {
			return NewBoolean(!b.v), nil
		}},
		{Signature{"and", []string{"boolean"}, "boolean"}, func(a []Variable) (Variable, error) {
			return NewBoolean(b.v && a[0].(*Boolean).v), nil
		}},
		{Signature{"or", []string{"boolean"}, "boolean"}, func(a []Variable) (Variable, error) {
			return NewBoolean(b.v || a[0].(*Boolean).v), nil
		}},
	})
	return b
}

func (b *Boolean) TypeName() string { return "boolean" }

func (b *Boolean) Value() bool { return b.v }

func (b *Boolean) AssignFrom(other Variable) error {
	o, ok := other.(*Boolean)
	if !ok {
		return ErrTypeMismatch
	}
	b.v = o.v
	return nil
}

func (b *Boolean) String() string { return strconv.FormatBool(b.v) }

func (b *Boolean) StatTrackers() []StatTracker { return nil }
