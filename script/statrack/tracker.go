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

// Package statrack implements the four builtin stat-tracker value
// types (§4.3): named time-series a script attaches to a job, started
// before its first instruction and stopped after its last, and
// exported to Prometheus by internal/stat.
package statrack

import "sync"

// Kind identifies the stat-tracker shape for export (§4.3).
type Kind string

const (
	KindIncremental  Kind = "incremental"
	KindCategorical  Kind = "categorical"
	KindIntegerValue Kind = "integer-value"
	KindTime         Kind = "time"
)

// Tracker satisfies value.StatTracker and is embedded by every builtin
// tracker type so the interpreter's getStatTrackers() call returns a
// uniform, nameable handle regardless of concrete kind.
type Tracker struct {
	mu      sync.Mutex
	name    string
	kind    Kind
	running bool
}

func newTracker(name string, kind Kind) Tracker {
	return Tracker{name: name, kind: kind}
}

func (t *Tracker) Name() string { return t.name }

func (t *Tracker) Kind() string { return string(t.kind) }

// Start marks the tracker as live for the duration of one job
// execution (§4.3 startStatTrackers).
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = true
}

// Stop marks the tracker as finished (§4.3 stopStatTrackers).
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
}

// Running reports whether Start has run without a matching Stop.
func (t *Tracker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
