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
	"fmt"
	"net"
	"time"

	liblog "github.com/nabbar/loadforge/logger"
	libproto "github.com/nabbar/loadforge/protocol"
	libver "github.com/nabbar/loadforge/version"
	libwire "github.com/nabbar/loadforge/wire"
)

// ControllerConn is the controller side of one accepted client-manager
// connection (§4.9's link state machine, mirrored): it answers the
// inbound ClientManagerHello and then issues StartClientRequest,
// StopClientRequest and ServerShutdown, each a blocking round trip.
//
// A client-manager mints odd message IDs starting at 1 (see Manager);
// ControllerConn mints even IDs starting at 2, so IDs never collide on
// a link neither side fully controls the numbering of.
type ControllerConn struct {
	conn    net.Conn
	log     liblog.Logger
	ids     *libproto.IDSequence
	timeout time.Duration

	peerVersion string
	peerID      string
}

// AcceptController performs the controller side of the opening
// handshake on a freshly accepted conn: read the ClientManagerHello,
// check it against ver, and write back a HelloResponse. On any
// rejection the connection is left open for the caller to close; the
// manager side treats a non-recoverable code as fatal and a
// recoverable one as a retry signal (§4.2).
func AcceptController(conn net.Conn, ver libver.Version, log liblog.Logger, readTimeout time.Duration) (*ControllerConn, error) {
	if readTimeout <= 0 {
		readTimeout = 5 * time.Second
	}

	c := &ControllerConn{conn: conn, log: log, ids: libproto.NewIDSequence(2), timeout: readTimeout}

	v, lerr := libwire.ReadFrame(conn, time.Now().Add(readTimeout), libwire.DefaultMaxLen)
	if lerr != nil {
		return nil, lerr
	}

	msg, err := libproto.Decode(v)
	if err != nil {
		return nil, err
	}

	hello, err := libproto.DecodeClientManagerHello(msg)
	if err != nil {
		return nil, err
	}
	c.peerVersion = hello.ClientVersion
	c.peerID = hello.ClientID

	resp := libproto.HelloResponse{Code: libproto.Success}
	if ver != nil && !ver.Accepts(hello.ClientVersion) {
		resp = libproto.HelloResponse{
			Code: libproto.UnsupportedClientVersion,
			Text: fmt.Sprintf("manager version %s not accepted by %s", hello.ClientVersion, ver.String()),
		}
	}

	if werr := libwire.WriteFrame(conn, libproto.NewHelloResponse(msg.ID, resp).Encode()); werr != nil {
		return nil, werr
	}

	c.trace("accepted client-manager", "clientId", hello.ClientID, "clientVersion", hello.ClientVersion, "code", resp.Code.String())

	if resp.Code != libproto.Success {
		return c, fmt.Errorf("link: rejected client-manager hello: %s", resp.Code.String())
	}
	return c, nil
}

// PeerClientID is the ClientID the manager presented in its hello.
func (c *ControllerConn) PeerClientID() string { return c.peerID }

// PeerClientVersion is the ClientVersion the manager presented in its hello.
func (c *ControllerConn) PeerClientVersion() string { return c.peerVersion }

// StartClient asks the manager to spawn count client processes and
// blocks for its StartClientResponse.
func (c *ControllerConn) StartClient(count int64) (libproto.StartClientResponse, error) {
	id := c.ids.Next()
	if err := libwire.WriteFrame(c.conn, libproto.NewStartClientRequest(id, libproto.StartClientRequest{Count: count}).Encode()); err != nil {
		return libproto.StartClientResponse{}, err
	}
	return c.awaitStartClientResponse(id)
}

// StopClient asks the manager to kill count children (count<0 means
// all) and blocks for its StopClientResponse.
func (c *ControllerConn) StopClient(count int64) (libproto.StopClientResponse, error) {
	id := c.ids.Next()
	if err := libwire.WriteFrame(c.conn, libproto.NewStopClientRequest(id, libproto.StopClientRequest{Count: count}).Encode()); err != nil {
		return libproto.StopClientResponse{}, err
	}
	return c.awaitStopClientResponse(id)
}

// Shutdown tells the manager to close the link and enter its
// reconnect wait; it carries no response.
func (c *ControllerConn) Shutdown() error {
	id := c.ids.Next()
	return libwire.WriteFrame(c.conn, libproto.NewServerShutdown(id).Encode())
}

// Close closes the underlying connection.
func (c *ControllerConn) Close() error { return c.conn.Close() }

func (c *ControllerConn) awaitStartClientResponse(wantID int64) (libproto.StartClientResponse, error) {
	v, lerr := libwire.ReadFrame(c.conn, time.Now().Add(c.timeout), libwire.DefaultMaxLen)
	if lerr != nil {
		return libproto.StartClientResponse{}, lerr
	}
	msg, err := libproto.Decode(v)
	if err != nil {
		return libproto.StartClientResponse{}, err
	}
	if msg.ID != wantID {
		return libproto.StartClientResponse{}, fmt.Errorf("link: StartClientResponse id mismatch: want %d, got %d", wantID, msg.ID)
	}
	return libproto.DecodeStartClientResponse(msg)
}

func (c *ControllerConn) awaitStopClientResponse(wantID int64) (libproto.StopClientResponse, error) {
	v, lerr := libwire.ReadFrame(c.conn, time.Now().Add(c.timeout), libwire.DefaultMaxLen)
	if lerr != nil {
		return libproto.StopClientResponse{}, lerr
	}
	msg, err := libproto.Decode(v)
	if err != nil {
		return libproto.StopClientResponse{}, err
	}
	if msg.ID != wantID {
		return libproto.StopClientResponse{}, fmt.Errorf("link: StopClientResponse id mismatch: want %d, got %d", wantID, msg.ID)
	}
	return libproto.DecodeStopClientResponse(msg)
}

func (c *ControllerConn) trace(msg string, fields ...any) {
	if c.log == nil {
		return
	}
	e := c.log.Entry(liblog.InfoLevel, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		if k, ok := fields[i].(string); ok {
			e = e.FieldAdd(k, fields[i+1])
		}
	}
	e.Log()
}
