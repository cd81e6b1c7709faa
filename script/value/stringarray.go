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
	_ = Default.Register("string-array", func() Variable { return NewStringArray(nil) })
}

// StringArray is the builtin string-array type (§4.3).
type StringArray struct {
	Dispatcher
	v []string
}

// NewStringArray wraps v as a StringArray Variable.
func NewStringArray(v []string) *StringArray {
	a := &StringArray{v: v}
	a.Dispatcher = NewDispatcher([]Method{
		{Signature{"set", []string{"string-array"}, ""}, func(args []Variable) (Variable, error) {
			a.v = args[0].(*StringArray).v
			return nil, nil
		}},
		{Signature{"size", nil, "integer"}, func(args []Variable) (Variable, error) {
			return NewInteger(int64(len(a.v))), nil
		}},
		{Signature{"get", []string{"integer"}, "string"}, func(args []Variable) (Variable, error) {
			i := args[0].(*Integer).Value()
			if i < 0 || i >= int64(len(a.v)) {
				return nil, ErrIndexOutOfRange
			}
			return NewString(a.v[i]), nil
		}},
		{Signature{"append", []string{"string"}, ""}, func(args []Variable) (Variable, error) {
			a.v = append(a.v, args[0].(*String).Value())
			return nil, nil
		}},
		{Signature{"join", []string{"string"}, "string"}, func(args []Variable) (Variable, error) {
			return NewString(strings.Join(a.v, args[0].(*String).Value())), nil
		}},
	})
	return a
}

func (a *StringArray) TypeName() string { return "string-array" }

func (a *StringArray) Values() []string { return a.v }

func (a *StringArray) AssignFrom(other Variable) error {
	o, ok := other.(*StringArray)
	if !ok {
		return ErrTypeMismatch
	}
	a.v = o.v
	return nil
}

func (a *StringArray) String() string { return strings.Join(a.v, ",") }

func (a *StringArray) StatTrackers() []StatTracker { return nil }
