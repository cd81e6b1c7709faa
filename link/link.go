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

// Package link implements the client-manager side of the control
// protocol (§4.9): a Disconnected/Connecting/Connected state machine
// over the wire/protocol packages, with child-process supervision.
package link

import (
	"net"
	"sync/atomic"
	"time"

	liblog "github.com/nabbar/loadforge/logger"
	libproto "github.com/nabbar/loadforge/protocol"
	libtransport "github.com/nabbar/loadforge/transport"
	libwire "github.com/nabbar/loadforge/wire"
)

// State is one of the three client-manager states (§4.9).
type State int

const (
	Disconnected State = iota
	Connecting
	Connected
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Config holds everything the client-manager needs to reach and
// authenticate to a controller (§4.9, §6).
type Config struct {
	Address        string
	LocalAddress   string
	Transport      *libtransport.Config
	ClientVersion  string
	ClientID       string
	MaxClients     int64
	AutoCreate     int64
	ReconnectWait  time.Duration
	ReadTimeout    time.Duration
	StartCommand   []string
}

func (c *Config) effectiveReconnectWait() time.Duration {
	if c.ReconnectWait <= 0 {
		return 30 * time.Second
	}
	return c.ReconnectWait
}

func (c *Config) effectiveReadTimeout() time.Duration {
	if c.ReadTimeout <= 0 {
		return 5 * time.Second
	}
	return c.ReadTimeout
}

// Spawner starts one client process and returns a supervised handle;
// swapped out in tests for a fake.
type Spawner func(startCommand []string) (ChildProcess, error)

// ChildProcess is the narrow process-supervision surface link needs
// (§4.9's child-process supervision): non-blocking exit poll, a
// drainable stdout, and a kill.
type ChildProcess interface {
	TryWait() (exited bool, code int)
	DrainStdout()
	Kill() error
}

// Manager runs the client-manager link state machine.
type Manager struct {
	cfg     Config
	log     liblog.Logger
	spawner Spawner

	state   atomic.Int32
	stopReq atomic.Bool

	conn     net.Conn
	ids      *libproto.IDSequence
	children []ChildProcess
	ioErrors int
}

// New builds a Manager. If spawner is nil, a real os/exec-backed
// spawner is used (wired by cmd/).
func New(cfg Config, log liblog.Logger, spawner Spawner) *Manager {
	if spawner == nil {
		spawner = NewOSSpawner(log)
	}
	return &Manager{cfg: cfg, log: log, spawner: spawner, ids: libproto.NewIDSequence(1)}
}

// State reports the manager's current state.
func (m *Manager) State() State { return State(m.state.Load()) }

// RequestStop asks the run loop to exit at its next interruptible
// wait point (§5 cancellation).
func (m *Manager) RequestStop() { m.stopReq.Store(true) }

func (m *Manager) stopRequested() bool { return m.stopReq.Load() }

func (m *Manager) setState(s State) {
	m.state.Store(int32(s))
	m.trace("state transition", "state", s.String())
}

func (m *Manager) trace(msg string, fields ...any) {
	if m.log == nil {
		return
	}
	e := m.log.Entry(liblog.InfoLevel, msg)
	for i := 0; i+1 < len(fields); i += 2 {
		if k, ok := fields[i].(string); ok {
			e = e.FieldAdd(k, fields[i+1])
		}
	}
	e.Log()
}

// Run drives the state machine until RequestStop is observed at an
// interruptible point (§4.9, §5).
func (m *Manager) Run() {
	for !m.stopRequested() {
		switch m.State() {
		case Disconnected:
			m.runDisconnected()
		case Connecting:
			m.runConnecting()
		case Connected:
			m.runConnected()
		}
	}
	m.teardown()
}

func (m *Manager) interruptibleSleep(d time.Duration) {
	const tick = 250 * time.Millisecond
	end := time.Now().Add(d)
	for time.Now().Before(end) {
		if m.stopRequested() {
			return
		}
		remaining := time.Until(end)
		if remaining > tick {
			remaining = tick
		}
		time.Sleep(remaining)
	}
}

func (m *Manager) teardown() {
	m.killAllChildren()
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
}

func (m *Manager) writeFrame(v libwire.Value) error {
	return libwire.WriteFrame(m.conn, v)
}
