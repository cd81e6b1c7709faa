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

package wire

import (
	"net"
	"time"

	liberr "github.com/nabbar/loadforge/errors"
)

// Conn is the subset of net.Conn the framing layer needs: a reader it
// can bound with a read deadline, and a writer for outgoing frames.
type Conn interface {
	SetReadDeadline(t time.Time) error
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
}

// ReadFrame performs one bounded blocking read of a full element, honoring
// deadline (zero value disables the deadline) and maxLen.
func ReadFrame(c Conn, deadline time.Time, maxLen int) (Value, liberr.Error) {
	if !deadline.IsZero() {
		if err := c.SetReadDeadline(deadline); err != nil {
			return Value{}, CodecError(ErrCodeTruncated, "wire: failed to set read deadline", err)
		}
	} else {
		_ = c.SetReadDeadline(time.Time{})
	}

	return Decode(readerOf(c), maxLen)
}

// WriteFrame encodes v and writes it to c in one call.
func WriteFrame(c Conn, v Value) error {
	_, err := c.Write(Encode(v))
	return err
}

func readerOf(c Conn) connReader { return connReader{c} }

type connReader struct{ c Conn }

func (r connReader) Read(b []byte) (int, error) { return r.c.Read(b) }

// IsTimeout reports whether err is a network timeout, the signal the
// link's Connected-state loop uses to fall through and service
// child-process supervision between frames.
func IsTimeout(err error) bool {
	ne, ok := err.(net.Error)
	return ok && ne.Timeout()
}
