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

package link

import (
	"crypto/tls"
	"io"
	"net"

	liberr "github.com/nabbar/loadforge/errors"
)

func tlsDial(dialer net.Dialer, address string, cfg *tls.Config) (net.Conn, error) {
	return tls.DialWithDialer(&dialer, "tcp", address, cfg)
}

// isEndOfStream reports whether lerr wraps io.EOF, the controller
// closing the connection cleanly (§4.9: "reading returns
// end-of-stream"). lerr.Error() alone only surfaces the outermost
// message text, so this walks the parent chain via HasError rather
// than string-matching the rendered error.
func isEndOfStream(lerr liberr.Error) bool {
	if lerr == nil {
		return false
	}
	return lerr.HasError(io.EOF)
}
