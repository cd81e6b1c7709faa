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

	libval "github.com/nabbar/loadforge/script/value"
)

func init() {
	_ = libval.Default.Register("integer-value", func() libval.Variable { return NewIntegerValue("") })
}

// IntegerValue is a value-distribution tracker (§4.3): count, sum,
// min, and max of every sample recorded, e.g. response sizes.
type IntegerValue struct {
	libval.Dispatcher
	Tracker

	mu    sync.Mutex
	count int64
	sum   int64
	min   int64
	max   int64
}

// NewIntegerValue returns an empty tracker named name.
func NewIntegerValue(name string) *IntegerValue {
	v := &IntegerValue{Tracker: newTracker(name, KindIntegerValue)}
	v.Dispatcher = libval.NewDispatcher([]libval.Method{
		{Signature: libval.Signature{Name: "record", ArgTypes: []string{"integer"}, ReturnType: ""}, Call: func(a []libval.Variable) (libval.Variable, error) {
			v.record(a[0].(*libval.Integer).Value())
			return nil, nil
		}},
		{Signature: libval.Signature{Name: "count", ArgTypes: nil, ReturnType: "integer"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			v.mu.Lock()
			defer v.mu.Unlock()
			return libval.NewInteger(v.count), nil
		}},
		{Signature: libval.Signature{Name: "sum", ArgTypes: nil, ReturnType: "integer"}, Call: func(a []libval.Variable) (libval.Variable, error) {
			v.mu.Lock()
			defer v.mu.Unlock()
			return libval.NewInteger(v.sum), nil
		}},
	})
	return v
}

// TryRecord is the Go-level counterpart to the script-facing record
// method, for ambient code (e.g. iovars) that samples a value without
// going through the interpreter.
func (v *IntegerValue) TryRecord(n int64) { v.record(n) }

func (v *IntegerValue) record(n int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.count == 0 || n < v.min {
		v.min = n
	}
	if v.count == 0 || n > v.max {
		v.max = n
	}
	v.sum += n
	v.count++
}

func (v *IntegerValue) TypeName() string { return "integer-value" }

func (v *IntegerValue) Snapshot() (count, sum, min, max int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.count, v.sum, v.min, v.max
}

func (v *IntegerValue) AssignFrom(other libval.Variable) error {
	o, ok := other.(*IntegerValue)
	if !ok {
		return libval.ErrTypeMismatch
	}
	v.count, v.sum, v.min, v.max = o.Snapshot()
	return nil
}

func (v *IntegerValue) String() string {
	count, sum, min, max := v.Snapshot()
	return fmt.Sprintf("count=%d sum=%d min=%d max=%d", count, sum, min, max)
}

func (v *IntegerValue) StatTrackers() []libval.StatTracker { return []libval.StatTracker{&v.Tracker} }
