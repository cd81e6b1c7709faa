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
	"strconv"
	"sync/atomic"

	libval "github.com/nabbar/loadforge/script/value"
)

func init() {
	_ = libval.Default.Register("incremental", func() libval.Variable { return NewIncremental("") })
}

// Incremental is a monotonically-increasing counter (§4.3), e.g.
// "requests sent" or "errors observed".
type Incremental struct {
	libval.Dispatcher
	Tracker
	count atomic.Int64
}

// NewIncremental returns a zeroed counter named name.
func NewIncremental(name string) *Incremental {
	c := &Incremental{Tracker: newTracker(name, KindIncremental)}
	c.Dispatcher = libval.NewDispatcher([]libval.Method{
		{Signature: libval.Signature{Name: "increment", ArgTypes: nil, ReturnType: ""}, Call: func(a []libval.Variable) (libval.Variable, error) {
			c.count.Add(1)
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "incrementby", ArgTypes: []string{"integer"}, ReturnType: ""}, Call: func(a []libval.Variable) (libval.Variable, error) {
			c.count.Add(a[0].(*libval.Integer).Value())
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "value", ArgTypes: nil, ReturnType: "integer"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			return libval.NewInteger(c.count.Load()), nil
		}},
	})
	return c
}

func (c *Incremental) TypeName() string { return "incremental" }

func (c *Incremental) Value() int64 { return c.count.Load() }

// Add increments the counter by n; the Go-level counterpart to the
// script-facing increment/incrementby methods, for ambient code (e.g.
// iovars) that updates a tracker without going through the interpreter.
func (c *Incremental) Add(n int64) { c.count.Add(n) }

// TryIncrement is Add(1) under the name ambient callers use when the
// tracker is guarded by a statsEnabled flag.
func (c *Incremental) TryIncrement() { c.count.Add(1) }

func (c *Incremental) AssignFrom(other libval.Variable) error {
	o, ok := other.(*Incremental)
	if !ok {
		return libval.ErrTypeMismatch
	}
	c.count.Store(o.count.Load())
	return nil
}

func (c *Incremental) String() string { return strconv.FormatInt(c.count.Load(), 10) }

func (c *Incremental) StatTrackers() []libval.StatTracker { return []libval.StatTracker{&c.Tracker} }
