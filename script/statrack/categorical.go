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
	"sort"
	"sync"

	libval "github.com/nabbar/loadforge/script/value"
)

func init() {
	_ = libval.Default.Register("categorical", func() libval.Variable { return NewCategorical("") })
}

// Categorical counts occurrences per label (§4.3), e.g. HTTP status
// class or error type.
type Categorical struct {
	libval.Dispatcher
	Tracker

	mu     sync.Mutex
	counts map[string]int64
}

// NewCategorical returns an empty tracker named name.
func NewCategorical(name string) *Categorical {
	c := &Categorical{Tracker: newTracker(name, KindCategorical), counts: make(map[string]int64)}
	c.Dispatcher = libval.NewDispatcher([]libval.Method{
		{Signature: libval.Signature{Name: "record", ArgTypes: []string{"string"}, ReturnType: ""}, Call: func(a []libval.Variable) (libval.Variable, error) {
			label := a[0].(*libval.String).Value()
			c.mu.Lock()
			c.counts[label]++
			c.mu.Unlock()
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "countof", ArgTypes: []string{"string"}, ReturnType: "integer"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			label := a[0].(*libval.String).Value()
			c.mu.Lock()
			n := c.counts[label]
			c.mu.Unlock()
			return libval.NewInteger(n), nil
		}},
	})
	return c
}

func (c *Categorical) TypeName() string { return "categorical" }

// TryRecord is the Go-level counterpart to the script-facing record
// method, for ambient code (e.g. iovars) that classifies an outcome
// without going through the interpreter.
func (c *Categorical) TryRecord(label string) {
	c.mu.Lock()
	c.counts[label]++
	c.mu.Unlock()
}

func (c *Categorical) Counts() map[string]int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int64, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

func (c *Categorical) AssignFrom(other libval.Variable) error {
	o, ok := other.(*Categorical)
	if !ok {
		return libval.ErrTypeMismatch
	}
	c.counts = o.Counts()
	return nil
}

func (c *Categorical) String() string {
	counts := c.Counts()
	labels := make([]string, 0, len(counts))
	for k := range counts {
		labels = append(labels, k)
	}
	sort.Strings(labels)

	out := ""
	for i, l := range labels {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%s=%d", l, counts[l])
	}
	return out
}

func (c *Categorical) StatTrackers() []libval.StatTracker { return []libval.StatTracker{&c.Tracker} }
