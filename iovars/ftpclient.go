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
	"bytes"
	"io"
	"time"

	"github.com/jlaffaye/ftp"

	libstat "github.com/nabbar/loadforge/script/statrack"
	libval "github.com/nabbar/loadforge/script/value"
)

func init() {
	_ = libval.Default.Register("ftp-client", func() libval.Variable { return NewFtpClient() })
}

// FtpClient is a scripted file-transfer client leaf (§4.10 names the
// HTTP/TFTP client objects as examples of the contract; FTP fills the
// same role with jlaffaye/ftp as the transport).
type FtpClient struct {
	libval.Dispatcher

	timeout      time.Duration
	statsEnabled bool

	conn *ftp.ServerConn

	transfers *libstat.Incremental
	bytesMov  *libstat.IntegerValue
	latency   *libstat.Time
}

// NewFtpClient returns an unconnected client with no statistics
// collection, matching HttpClient's own default.
func NewFtpClient() *FtpClient {
	c := &FtpClient{timeout: 30 * time.Second}
	c.Dispatcher = libval.NewDispatcher([]libval.Method{
		{Signature: libval.Signature{Name: "settimeout", ArgTypes: []string{"integer"}, ReturnType: ""}, Call: func(a []libval.Variable) (libval.Variable, error) {
			c.timeout = time.Duration(a[0].(*libval.Integer).Value()) * time.Millisecond
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "enablestatisticscollection", ArgTypes: nil, ReturnType: ""}, Call: func(a []libval.Variable) (libval.Variable, error) {
			c.enableStatistics()
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "connect", ArgTypes: []string{"string", "string", "string"}, ReturnType: "boolean"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			addr := a[0].(*libval.String).Value()
			user := a[1].(*libval.String).Value()
			pass := a[2].(*libval.String).Value()
			return libval.NewBoolean(c.connect(addr, user, pass) == nil), nil
		}},
		{Signature: libval.Signature{Name: "upload", ArgTypes: []string{"string", "string"}, ReturnType: "boolean"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			name := a[0].(*libval.String).Value()
			body := a[1].(*libval.String).Value()
			return libval.NewBoolean(c.upload(name, body) == nil), nil
		}},
		{Signature: libval.Signature{Name: "download", ArgTypes: []string{"string"}, ReturnType: "string"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			name := a[0].(*libval.String).Value()
			body, err := c.download(name)
			if err != nil {
				return libval.NewString(""), nil
			}
			return libval.NewString(body), nil
		}},
		{Signature: libval.Signature{Name: "quit", ArgTypes: nil, ReturnType: ""}, Call: func(a []libval.Variable) (libval.Variable, error) {
			c.quit()
			return nil, nil
		}},
	})
	return c
}

func (c *FtpClient) enableStatistics() {
	if c.statsEnabled {
		return
	}
	c.statsEnabled = true
	c.transfers = libstat.NewIncremental("ftp_transfers_completed")
	c.bytesMov = libstat.NewIntegerValue("ftp_transfer_bytes")
	c.latency = libstat.NewTime("ftp_transfer_latency")
}

func (c *FtpClient) connect(addr, user, pass string) error {
	conn, err := ftp.Dial(addr, ftp.DialWithTimeout(c.timeout))
	if err != nil {
		return err
	}
	if err = conn.Login(user, pass); err != nil {
		_ = conn.Quit()
		return err
	}
	c.conn = conn
	return nil
}

func (c *FtpClient) upload(name, body string) error {
	if c.conn == nil {
		return io.ErrClosedPipe
	}

	if c.statsEnabled {
		c.latency.TryBegin()
	}
	err := c.conn.Stor(name, bytes.NewReader([]byte(body)))
	if c.statsEnabled {
		c.latency.TryEnd()
		c.bytesMov.TryRecord(int64(len(body)))
		if err == nil {
			c.transfers.TryIncrement()
		}
	}
	return err
}

func (c *FtpClient) download(name string) (string, error) {
	if c.conn == nil {
		return "", io.ErrClosedPipe
	}

	if c.statsEnabled {
		c.latency.TryBegin()
	}
	r, err := c.conn.Retr(name)
	if err != nil {
		if c.statsEnabled {
			c.latency.TryEnd()
		}
		return "", err
	}
	defer r.Close()

	buf, err := io.ReadAll(r)
	if c.statsEnabled {
		c.latency.TryEnd()
	}
	if err != nil {
		return "", err
	}

	if c.statsEnabled {
		c.transfers.TryIncrement()
		c.bytesMov.TryRecord(int64(len(buf)))
	}
	return string(buf), nil
}

func (c *FtpClient) quit() {
	if c.conn != nil {
		_ = c.conn.Quit()
		c.conn = nil
	}
}

func (c *FtpClient) TypeName() string { return "ftp-client" }

func (c *FtpClient) AssignFrom(other libval.Variable) error {
	o, ok := other.(*FtpClient)
	if !ok {
		return libval.ErrTypeMismatch
	}
	c.timeout = o.timeout
	return nil
}

func (c *FtpClient) String() string { return "ftp-client" }

func (c *FtpClient) StatTrackers() []libval.StatTracker {
	if !c.statsEnabled {
		return nil
	}
	return []libval.StatTracker{c.transfers, c.bytesMov, c.latency}
}
