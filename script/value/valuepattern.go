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

import "regexp"

func init() {
	_ = Default.Register("value-pattern", func() Variable { return NewValuePattern("") })
}

// ValuePattern is the builtin regular-expression matcher (§4.3), used
// by scripts to validate or extract from scripted I/O variable output
// (§4.10). No third-party pattern library appears anywhere in the
// example corpus, so this is one of the few builtins resting on the
// standard library (see DESIGN.md).
type ValuePattern struct {
	Dispatcher
	raw string
	re  *regexp.Regexp
}

// NewValuePattern compiles raw eagerly; an invalid pattern leaves re
// nil and is surfaced the first time a method needs it.
func NewValuePattern(raw string) *ValuePattern {
	p := &ValuePattern{raw: raw}
	p.re, _ = regexp.Compile(raw)

	p.Dispatcher = NewDispatcher([]Method{
		{Signature{"set", []string{"string"}, ""}, func(a []Variable) (Variable, error) {
			p.raw = a[0].(*String).Value()
			re, err := regexp.Compile(p.raw)
			if err != nil {
				return nil, ErrInvalidPattern
			}
			p.re = re
			return nil, nil
		}},
		{Signature{"matches", []string{"string"}, "boolean"}, func(a []Variable) (Variable, error) {
			if p.re == nil {
				return nil, ErrInvalidPattern
			}
			return NewBoolean(p.re.MatchString(a[0].(*String).Value())), nil
		}},
		{Signature{"extract", []string{"string"}, "string"}, func(a []Variable) (Variable, error) {
			if p.re == nil {
				return nil, ErrInvalidPattern
			}
			return NewString(p.re.FindString(a[0].(*String).Value())), nil
		}},
		{Signature{"extractall", []string{"string"}, "string-array"}, func(a []Variable) (Variable, error) {
			if p.re == nil {
				return nil, ErrInvalidPattern
			}
			return NewStringArray(p.re.FindAllString(a[0].(*String).Value(), -1)), nil
		}},
	})
	return p
}

func (p *ValuePattern) TypeName() string { return "value-pattern" }

func (p *ValuePattern) AssignFrom(other Variable) error {
	o, ok := other.(*ValuePattern)
	if !ok {
		return ErrTypeMismatch
	}
	p.raw, p.re = o.raw, o.re
	return nil
}

func (p *ValuePattern) String() string { return p.raw }

func (p *ValuePattern) StatTrackers() []StatTracker { return nil }
