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

import "net/url"

func init() {
	_ = Default.Register("file-url", func() Variable { return NewFileURL("") })
}

// FileURL is the builtin file-URL type (§4.3): a parsed net/url.URL
// reachable by the scripted I/O variables (§4.10) as a source or
// destination reference.
type FileURL struct {
	Dispatcher
	raw string
	u   *url.URL
}

// NewFileURL parses raw eagerly; a parse failure leaves u nil and is
// surfaced the first time a method needs it.
func NewFileURL(raw string) *FileURL {
	f := &FileURL{raw: raw}
	f.u, _ = url.Parse(raw)

	f.Dispatcher = NewDispatcher([]Method{
		{Signature{"set", []string{"string"}, ""}, func(a []Variable) (Variable, error) {
			f.raw = a[0].(*String).Value()
			u, err := url.Parse(f.raw)
			if err != nil {
				return nil, ErrInvalidURL
			}
			f.u = u
			return nil, nil
		}},
		{Signature{"scheme", nil, "string"}, func(a []Variable) (Variable, error) {
			if f.u == nil {
				return nil, ErrInvalidURL
			}
			return NewString(f.u.Scheme), nil
		}},
		{Signature{"host", nil, "string"}, func(a []Variable) (Variable, error) {
			if f.u == nil {
				return nil, ErrInvalidURL
			}
			return NewString(f.u.Host), nil
		}},
		{Signature{"path", nil, "string"}, func(a []Variable) (Variable, error) {
			if f.u == nil {
				return nil, ErrInvalidURL
			}
			return NewString(f.u.Path), nil
		}},
		{Signature{"tostring", nil, "string"}, func(a []Variable) (Variable, error) {
			return NewString(f.raw), nil
		}},
	})
	return f
}

func (f *FileURL) TypeName() string { return "file-url" }

func (f *FileURL) URL() *url.URL { return f.u }

func (f *FileURL) AssignFrom(other Variable) error {
	o, ok := other.(*FileURL)
	if !ok {
		return ErrTypeMismatch
	}
	f.raw, f.u = o.raw, o.u
	return nil
}

func (f *FileURL) String() string { return f.raw }

func (f *FileURL) StatTrackers() []StatTracker { return nil }
