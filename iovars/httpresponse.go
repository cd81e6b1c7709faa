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

package iovars

import (
	"net/http"

	libval "github.com/nabbar/loadforge/script/value"
)

func init() {
	_ = libval.Default.Register("http-response", func() libval.Variable { return NewHttpResponse() })
}

// HttpResponse is the read-only result of an HttpClient send (§4.10).
type HttpResponse struct {
	libval.Dispatcher

	statusCode int64
	status     string
	header     http.Header
	body       string
}

// NewHttpResponse returns a zero-value response; HttpClient.send fills
// one in on every call rather than mutating a caller-supplied instance.
func NewHttpResponse() *HttpResponse {
	r := &HttpResponse{header: make(http.Header)}
	r.Dispatcher = libval.NewDispatcher([]libval.Method{
		{Signature: libval.Signature{Name: "statuscode", ArgTypes: nil, ReturnType: "integer"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			return libval.NewInteger(r.statusCode), nil
		}},
		{Signature: libval.Signature{Name: "status", ArgTypes: nil, ReturnType: "string"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			return libval.NewString(r.status), nil
		}},
		{Signature: libval.Signature{Name: "header", ArgTypes: []string{"string"}, ReturnType: "string"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			return libval.NewString(r.header.Get(a[0].(*libval.String).Value())), nil
		}},
		{Signature: libval.Signature{Name: "body", ArgTypes: nil, ReturnType: "string"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			return libval.NewString(r.body), nil
		}},
	})
	return r
}

func (r *HttpResponse) TypeName() string { return "http-response" }

func (r *HttpResponse) AssignFrom(other libval.Variable) error {
	o, ok := other.(*HttpResponse)
	if !ok {
		return libval.ErrTypeMismatch
	}
	r.statusCode, r.status, r.header, r.body = o.statusCode, o.status, o.header.Clone(), o.body
	return nil
}

func (r *HttpResponse) String() string { return r.status }

func (r *HttpResponse) StatTrackers() []libval.StatTracker { return nil }
