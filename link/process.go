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
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"

	liberr "github.com/nabbar/loadforge/errors"
	liblog "github.com/nabbar/loadforge/logger"
)

// NewOSSpawner returns a Spawner that launches a client process with
// os/exec, one per requested client (§4.9's "spawns one client process
// per unit"). log receives one Entry per line of the child's stdout.
func NewOSSpawner(log liblog.Logger) Spawner {
	return func(startCommand []string) (ChildProcess, error) {
		if len(startCommand) == 0 {
			return nil, liberr.New(ErrCodeNoStartCommand, "link: start_command is empty")
		}

		cmd := exec.Command(startCommand[0], startCommand[1:]...)
		out, err := cmd.StdoutPipe()
		if err != nil {
			return nil, liberr.New(ErrCodeSpawnFailed, "link: failed to attach stdout pipe", err)
		}
		if err = cmd.Start(); err != nil {
			return nil, liberr.New(ErrCodeSpawnFailed, fmt.Sprintf("link: failed to start %q", startCommand[0]), err)
		}

		p := &osChild{cmd: cmd, log: log, out: bufio.NewScanner(out)}
		go p.wait()
		go p.drainLoop()
		return p, nil
	}
}

// ErrCodeNoStartCommand and ErrCodeSpawnFailed are link's own liberr
// codes for process-supervision failures (§6, outside the wire/protocol
// code ranges already claimed by CodecError and scripterr).
const (
	ErrCodeNoStartCommand uint16 = iota + 9000
	ErrCodeSpawnFailed
)

// osChild supervises one client process started via os/exec: a
// background goroutine owns the blocking Wait, TryWait only reads the
// outcome it already recorded.
type osChild struct {
	cmd *exec.Cmd
	log liblog.Logger
	out *bufio.Scanner

	mu       sync.Mutex
	exited   atomic.Bool
	exitCode int
}

func (p *osChild) wait() {
	err := p.cmd.Wait()
	p.mu.Lock()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			p.exitCode = ee.ExitCode()
		} else {
			p.exitCode = -1
		}
	}
	p.mu.Unlock()
	p.exited.Store(true)
}

func (p *osChild) TryWait() (exited bool, code int) {
	if !p.exited.Load() {
		return false, 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return true, p.exitCode
}

// drainLoop owns the blocking Scan loop so the manager's own read loop
// never waits on a child's stdout.
func (p *osChild) drainLoop() {
	for p.out.Scan() {
		if p.log != nil {
			p.log.Entry(liblog.DebugLevel, "client stdout").FieldAdd("line", p.out.Text()).Log()
		}
	}
	if err := p.out.Err(); err != nil && err != io.EOF && p.log != nil {
		p.log.Entry(liblog.WarnLevel, "client stdout read error").ErrorAdd(false, err).Log()
	}
}

// DrainStdout is a no-op for an os/exec-backed child: drainLoop already
// consumes stdout continuously in the background.
func (p *osChild) DrainStdout() {}

func (p *osChild) Kill() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}
