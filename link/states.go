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
	"net"
	"time"

	libproto "github.com/nabbar/loadforge/protocol"
	libwire "github.com/nabbar/loadforge/wire"
)

func (m *Manager) runDisconnected() {
	conn, err := m.dial()
	if err != nil {
		m.trace("dial failed", "error", err.Error())
		m.interruptibleSleep(m.cfg.effectiveReconnectWait())
		return
	}
	m.conn = conn
	m.ioErrors = 0
	m.setState(Connecting)
}

func (m *Manager) dial() (net.Conn, error) {
	var dialer net.Dialer
	if m.cfg.LocalAddress != "" {
		addr, err := net.ResolveTCPAddr("tcp", m.cfg.LocalAddress)
		if err != nil {
			return nil, err
		}
		dialer.LocalAddr = addr
	}

	if m.cfg.Transport != nil {
		tlsCfg, lerr := m.cfg.Transport.TLSConfig()
		if lerr != nil {
			return nil, lerr
		}
		if tlsCfg != nil {
			return tlsDial(dialer, m.cfg.Address, tlsCfg)
		}
	}
	return dialer.Dial("tcp", m.cfg.Address)
}

func (m *Manager) runConnecting() {
	hello := libproto.NewClientManagerHello(m.ids.Next(), libproto.ClientManagerHello{
		ClientVersion: m.cfg.ClientVersion,
		ClientID:      m.cfg.ClientID,
		MaxClients:    m.cfg.MaxClients,
	})
	if err := m.writeFrame(hello.Encode()); err != nil {
		m.trace("hello write failed", "error", err.Error())
		m.disconnect()
		return
	}

	v, lerr := libwire.ReadFrame(m.conn, time.Now().Add(m.cfg.effectiveReadTimeout()*4), libwire.DefaultMaxLen)
	if lerr != nil {
		m.trace("hello response read failed", "error", lerr.Error())
		m.disconnect()
		return
	}

	msg, err := libproto.Decode(v)
	if err != nil {
		m.trace("hello response malformed", "error", err.Error())
		m.disconnect()
		return
	}

	resp, err := libproto.DecodeHelloResponse(msg)
	if err != nil {
		m.trace("hello response malformed", "error", err.Error())
		m.disconnect()
		return
	}

	switch {
	case resp.Code == libproto.Success:
		m.setState(Connected)
		m.spawnChildren(m.cfg.AutoCreate)
	case resp.Code.NonRecoverable():
		m.trace("non-recoverable hello response", "code", resp.Code.String(), "text", resp.Text)
		m.RequestStop()
	default:
		m.trace("recoverable hello rejection, retrying", "code", resp.Code.String())
		m.disconnect()
		m.interruptibleSleep(m.cfg.effectiveReconnectWait())
	}
}

func (m *Manager) disconnect() {
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.killAllChildren()
	m.setState(Disconnected)
}

func (m *Manager) runConnected() {
	m.reapChildren()
	m.drainChildren()

	v, lerr := libwire.ReadFrame(m.conn, time.Now().Add(m.cfg.effectiveReadTimeout()), libwire.DefaultMaxLen)
	if lerr != nil {
		if libwire.IsTimeout(lerr) {
			return
		}
		if isEndOfStream(lerr) {
			m.trace("controller closed connection")
			m.disconnect()
			return
		}
		if libwire.IsCodecError(lerr) {
			m.trace("wire codec error, fatal", "error", lerr.Error(), "code", lerr.GetCode().Uint16())
			m.disconnect()
			return
		}
		m.ioErrors++
		m.trace("connected read error", "error", lerr.Error(), "consecutive", m.ioErrors)
		if m.ioErrors >= 2 {
			m.disconnect()
		}
		return
	}
	m.ioErrors = 0

	msg, err := libproto.Decode(v)
	if err != nil {
		m.trace("framing desynchronization, fatal", "error", err.Error())
		m.disconnect()
		return
	}

	m.dispatch(msg)
}

func (m *Manager) dispatch(msg libproto.Message) {
	switch msg.Kind {
	case libproto.KindStartClientRequest:
		m.handleStartClientRequest(msg)
	case libproto.KindStopClientRequest:
		m.handleStopClientRequest(msg)
	case libproto.KindServerShutdown:
		m.trace("server shutdown received")
		m.disconnect()
	default:
		m.trace("unexpected message kind", "kind", msg.Kind.String())
	}
}

func (m *Manager) handleStartClientRequest(msg libproto.Message) {
	req, err := libproto.DecodeStartClientRequest(msg)
	if err != nil {
		m.trace("malformed StartClientRequest", "error", err.Error())
		return
	}

	if req.Count+int64(len(m.children)) > m.cfg.MaxClients {
		_ = m.writeFrame(libproto.NewStartClientResponse(msg.ID, libproto.StartClientResponse{
			Code: libproto.InsufficientClients,
			Text: "requested clients would exceed max_clients",
		}).Encode())
		return
	}

	for i := int64(0); i < req.Count; i++ {
		child, err := m.spawner(m.cfg.StartCommand)
		if err != nil {
			_ = m.writeFrame(libproto.NewStartClientResponse(msg.ID, libproto.StartClientResponse{
				Code: libproto.LocalError,
				Text: err.Error(),
			}).Encode())
			return
		}
		m.children = append(m.children, child)
	}

	_ = m.writeFrame(libproto.NewStartClientResponse(msg.ID, libproto.StartClientResponse{Code: libproto.Success}).Encode())
}

func (m *Manager) handleStopClientRequest(msg libproto.Message) {
	req, err := libproto.DecodeStopClientRequest(msg)
	if err != nil {
		m.trace("malformed StopClientRequest", "error", err.Error())
		return
	}

	n := req.Count
	if n < 0 || n > int64(len(m.children)) {
		n = int64(len(m.children))
	}

	var stopped int64
	for i := int64(0); i < n; i++ {
		idx := len(m.children) - 1
		_ = m.children[idx].Kill()
		m.children = m.children[:idx]
		stopped++
	}

	_ = m.writeFrame(libproto.NewStopClientResponse(msg.ID, libproto.StopClientResponse{StoppedCount: stopped}).Encode())
}

func (m *Manager) spawnChildren(n int64) {
	for i := int64(0); i < n; i++ {
		child, err := m.spawner(m.cfg.StartCommand)
		if err != nil {
			m.trace("auto_create_clients spawn failed", "error", err.Error())
			return
		}
		m.children = append(m.children, child)
	}
}

func (m *Manager) reapChildren() {
	live := m.children[:0]
	for _, c := range m.children {
		if exited, code := c.TryWait(); exited {
			m.trace("child exited", "code", code)
			continue
		}
		live = append(live, c)
	}
	m.children = live
}

func (m *Manager) drainChildren() {
	for _, c := range m.children {
		c.DrainStdout()
	}
}

func (m *Manager) killAllChildren() {
	for _, c := range m.children {
		_ = c.Kill()
	}
	m.children = nil
}
