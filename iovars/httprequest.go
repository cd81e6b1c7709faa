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

// Package iovars implements the scripted I/O leaf variables (§4.10):
// an HTTP client/request/response trio, an HTML document, and an FTP
// client, each a script/value.Variable reachable from a worker's
// script the same way a Boolean or Integer is.
package iovars

import (
	"net/http"
	"net/url"
	"strings"

	libval "github.com/nabbar/loadforge/script/value"
)

func init() {
	_ = libval.Default.Register("http-request", func() libval.Variable { return NewHttpRequest() })
}

// HttpRequest accumulates a method, URL, headers, query parameters and
// body ahead of being handed to an HttpClient's send method.
type HttpRequest struct {
	libval.Dispatcher

	method string
	url    *url.URL
	header http.Header
	params url.Values
	body   string
}

// NewHttpRequest returns a GET request with no URL set yet.
func NewHttpRequest() *HttpRequest {
	r := &HttpRequest{
		method: http.MethodGet,
		header: make(http.Header),
		params: make(url.Values),
	}
	r.Dispatcher = libval.NewDispatcher([]libval.Method{
		{Signature: libval.Signature{Name: "setmethod", ArgTypes: []string{"string"}}, Call: func(a []libval.Variable) (libval.Variable, error) {
			r.method = strings.ToUpper(a[0].(*libval.String).Value())
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "seturl", ArgTypes: []string{"string"}}, Call: func(a []libval.Variable) (libval.Variable, error) {
			u, err := url.Parse(a[0].(*libval.String).Value())
			if err != nil {
				return nil, libval.ErrInvalidURL
			}
			r.url = u
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "addheader", ArgTypes: []string{"string", "string"}}, Call: func(a []libval.Variable) (libval.Variable, error) {
			r.header.Add(a[0].(*libval.String).Value(), a[1].(*libval.String).Value())
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "addparam", ArgTypes: []string{"string", "string"}}, Call: func(a []libval.Variable) (libval.Variable, error) {
			r.params.Add(a[0].(*libval.String).Value(), a[1].(*libval.String).Value())
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "setbody", ArgTypes: []string{"string"}}, Call: func(a []libval.Variable) (libval.Variable, error) {
			r.body = a[0].(*libval.String).Value()
			return nil, nil
		}},
	})
	return r
}

// build resolves the final *http.Request, folding params into the URL
// query string.
func (r *HttpRequest) build() (*http.Request, error) {
	if r.url == nil {
		return nil, libval.ErrInvalidURL
	}
	u := *r.url
	q := u.Query()
	for k, vs := range r.params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	var body *strings.Reader
	if r.body != "" {
		body = strings.NewReader(r.body)
	}

	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(r.method, u.String(), body)
	} else {
		req, err = http.NewRequest(r.method, u.String(), nil)
	}
	if err != nil {
		return nil, err
	}
	req.Header = r.header.Clone()
	return req, nil
}

func (r *HttpRequest) TypeName() string { return "http-request" }

func (r *HttpRequest) AssignFrom(other libval.Variable) error {
	o, ok := other.(*HttpRequest)
	if !ok {
		return libval.ErrTypeMismatch
	}
	r.method, r.url, r.header, r.params, r.body = o.method, o.url, o.header.Clone(), cloneValues(o.params), o.body
	return nil
}

func (r *HttpRequest) String() string {
	if r.url == nil {
		return r.method + " <no url>"
	}
	return r.method + " " + r.url.String()
}

func (r *HttpRequest) StatTrackers() []libval.StatTracker { return nil }

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		cp := make([]string, len(vs))
		copy(cp, vs)
		out[k] = cp
	}
	return out
}
