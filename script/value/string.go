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

import "strings"

func init() {
	_ = Default.Register("string", func() Variable { return NewString("") })
}

// String is the builtin string type (§4.3).
type String struct {
	Dispatcher
	v string
}

// NewString wraps v as a String Variable.
func NewString(v string) *String {
	s := &String{v: v}
	s.Dispatcher = NewDispatcher([]Method{
		{Signature{"set", []string{"string"}, ""}, func(a []Variable) (Variable, error) {
			s.v = a[0].(*String).v
			return nil, nil
		}},
		{Signature{"concat", []string{"string"}, "string"}, func(a []Variable) (Variable, error) {
			return NewString(s.v + a[0].(*String).v), nil
		}},
		{Signature{"length", nil, "integer"}, func(a []Variable) (Variable, error) {
			return NewInteger(int64(len(s.v))), nil
		}},
		{Signature{"equals", []string{"string"}, "boolean"}, func(a []Variable) (Variable, error) {
			return NewBoolean(s.v == a[0].(*String).v), nil
		}},
		{Signature{"contains", []string{"string"}, "boolean"}, func(a []Variable) (Variable, error) {
			return NewBoolean(strings.Contains(s.v, a[0].(*String).v)), nil
		}},
		{Signature{"toupper", nil, "string"}, func(a []Variable) (Variable, error) {
			return NewString(strings.ToUpper(s.v)), nil
		}},
		{Signature{"split", []string{"string"}, "string-array"}, func(a []Variable) (Variable, error) {
			return NewStringArray(strings.Split(s.v, a[0].(*String).v)), nil
		}},
	})
	return s
}

func (s *String) TypeName() string { return "string" }

func (s *String) Value() string { return s.v }

func (s *String) AssignFrom(other Variable) error {
	o, ok := other.(*String)
	if !ok {
		return ErrTypeMismatch
	}
	s.v = o.v
	return nil
}

func (s *String) String() string { return s.v }

func (s *String) StatTrackers() []StatTracker { return nil }
