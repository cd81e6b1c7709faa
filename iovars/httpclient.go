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
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	libval "github.com/nabbar/loadforge/script/value"
	libstat "github.com/nabbar/loadforge/script/statrack"
)

func init() {
	_ = libval.Default.Register("http-client", func() libval.Variable { return NewHttpClient() })
}

// HttpClient is the scripted HTTP client leaf (§4.10): send-request,
// redirect policy, keep-alive, proxy config, socket timeout, and an
// opt-in statistics toggle.
type HttpClient struct {
	libval.Dispatcher

	timeout      time.Duration
	proxy        *url.URL
	redirects    bool
	keepAlive    bool
	statsEnabled bool

	requests *libstat.Incremental
	latency  *libstat.Time
	statuses *libstat.Categorical
}

// NewHttpClient returns a client with redirects and keep-alive enabled
// and no statistics collection, matching net/http's own defaults.
func NewHttpClient() *HttpClient {
	c := &HttpClient{redirects: true, keepAlive: true}
	c.Dispatcher = libval.NewDispatcher([]libval.Method{
		{Signature: libval.Signature{Name: "settimeout", ArgTypes: []string{"integer"}}, Call: func(a []libval.Variable) (libval.Variable, error) {
			c.timeout = time.Duration(a[0].(*libval.Integer).Value()) * time.Millisecond
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "setproxy", ArgTypes: []string{"string"}}, Call: func(a []libval.Variable) (libval.Variable, error) {
			raw := a[0].(*libval.String).Value()
			if raw == "" {
				c.proxy = nil
				return nil, nil
			}
			u, err := url.Parse(raw)
			if err != nil {
				return nil, libval.ErrInvalidURL
			}
			c.proxy = u
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "enableredirects", ArgTypes: []string{"boolean"}}, Call: func(a []libval.Variable) (libval.Variable, error) {
			c.redirects = a[0].(*libval.Boolean).Value()
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "enablekeepalive", ArgTypes: []string{"boolean"}}, Call: func(a []libval.Variable) (libval.Variable, error) {
			c.keepAlive = a[0].(*libval.Boolean).Value()
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "enablestatisticscollection", ArgTypes: nil}, Call: func(a []libval.Variable) (libval.Variable, error) {
			c.enableStatistics()
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "send", ArgTypes: []string{"http-request"}, ReturnType: "http-response"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			return c.send(a[0].(*HttpRequest))
		}},
	})
	return c
}

func (c *HttpClient) enableStatistics() {
	if c.statsEnabled {
		return
	}
	c.statsEnabled = true
	c.requests = libstat.NewIncremental("http_requests_sent")
	c.latency = libstat.NewTime("http_request_latency")
	c.statuses = libstat.NewCategorical("http_status_class")
}

func (c *HttpClient) httpClient() *http.Client {
	tr := &http.Transport{DisableKeepAlives: !c.keepAlive}
	if c.proxy != nil {
		tr.Proxy = http.ProxyURL(c.proxy)
	}
	cli := &http.Client{Timeout: c.timeout, Transport: tr}
	if !c.redirects {
		cli.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return cli
}

func (c *HttpClient) send(r *HttpRequest) (libval.Variable, error) {
	req, err := r.build()
	if err != nil {
		return nil, err
	}

	if c.statsEnabled {
		c.requests.TryIncrement()
		c.latency.TryBegin()
	}

	res, err := c.httpClient().Do(req)

	if c.statsEnabled {
		c.latency.TryEnd()
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if c.statsEnabled {
		c.statuses.TryRecord(strconv.Itoa(res.StatusCode/100) + "xx")
	}

	resp := NewHttpResponse()
	resp.statusCode = int64(res.StatusCode)
	resp.status = res.Status
	resp.header = res.Header.Clone()
	resp.body = string(body)
	return resp, nil
}

func (c *HttpClient) TypeName() string { return "http-client" }

func (c *HttpClient) AssignFrom(other libval.Variable) error {
	o, ok := other.(*HttpClient)
	if !ok {
		return libval.ErrTypeMismatch
	}
	c.timeout, c.proxy, c.redirects, c.keepAlive = o.timeout, o.proxy, o.redirects, o.keepAlive
	return nil
}

func (c *HttpClient) String() string { return "http-client" }

func (c *HttpClient) StatTrackers() []libval.StatTracker {
	if !c.statsEnabled {
		return nil
	}
	return []libval.StatTracker{c.requests, c.latency, c.statuses}
}
