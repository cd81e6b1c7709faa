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

package statrack

import (
	"fmt"
	"sync"
	"time"

	libval "github.com/nabbar/loadforge/script/value"
)

func init() {
	_ = libval.Default.Register("time", func() libval.Variable { return NewTime("") })
}

// Time is a duration-distribution tracker (§4.3): a running clock
// started by "begin" and recorded by "end", e.g. request latency.
type Time struct {
	libval.Dispatcher
	Tracker

	mu      sync.Mutex
	started time.Time
	count   int64
	total   time.Duration
}

// NewTime returns a tracker named name, not yet started.
func NewTime(name string) *Time {
	t := &Time{Tracker: newTracker(name, KindTime)}
	t.Dispatcher = libval.NewDispatcher([]libval.Method{
		{Signature: libval.Signature{Name: "begin", ArgTypes: nil, ReturnType: ""}, Call: func(a []libval.Variable) (libval.Variable, error) {
			t.mu.Lock()
			t.started = time.Now()
			t.mu.Unlock()
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "end", ArgTypes: nil, ReturnType: "integer"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			t.mu.Lock()
			d := time.Since(t.started)
			t.total += d
			t.count++
			t.mu.Unlock()
			return libval.NewInteger(d.Milliseconds()), nil
		}},
		{Signature: libval.Signature{Name: "averagemillis", ArgTypes: nil, ReturnType: "integer"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			t.mu.Lock()
			defer t.mu.Unlock()
			if t.count == 0 {
				return libval.NewInteger(0), nil
			}
			return libval.NewInteger((t.total / time.Duration(t.count)).Milliseconds()), nil
		}},
	})
	return t
}

func (t *Time) TypeName() string { return "time" }

// TryBegin and TryEnd are the Go-level counterparts to the
// script-facing begin/end methods, for ambient code (e.g. iovars) that
// times an operation without going through the interpreter.
func (t *Time) TryBegin() {
	t.mu.Lock()
	t.started = time.Now()
	t.mu.Unlock()
}

func (t *Time) TryEnd() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	d := time.Since(t.started)
	t.total += d
	t.count++
	return d
}

func (t *Time) Snapshot() (count int64, total time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count, t.total
}

func (t *Time) AssignFrom(other libval.Variable) error {
	o, ok := other.(*Time)
	if !ok {
		return libval.ErrTypeMismatch
	}
	t.count, t.total = o.Snapshot()
	return nil
}

func (t *Time) String() string {
	count, total := t.Snapshot()
	return fmt.Sprintf("count=%d total=%s", count, total)
}

func (t *Time) StatTrackers() []libval.StatTracker { return []libval.StatTracker{&t.Tracker} }
