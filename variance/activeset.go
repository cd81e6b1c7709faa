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

package variance

import "sync/atomic"

// ActiveSet is the fixed-size active[0..N-1] array from the data model
// (§3): a single writer (the scheduler) and many readers (the workers).
// Every slot is its own atomic.Bool so there is no ordering requirement
// between distinct indices, matching §5's shared-state rules.
type ActiveSet struct {
	flags []atomic.Bool
}

// NewActiveSet allocates an ActiveSet of size n, all initially false.
func NewActiveSet(n int) *ActiveSet {
	return &ActiveSet{flags: make([]atomic.Bool, n)}
}

// Len returns the number of worker slots.
func (a *ActiveSet) Len() int { return len(a.flags) }

// Get returns whether worker i is currently active. Out-of-range i
// returns false rather than panicking, since workers only ever read
// their own index.
func (a *ActiveSet) Get(i int) bool {
	if i < 0 || i >= len(a.flags) {
		return false
	}
	return a.flags[i].Load()
}

// ActiveCount returns the current number of true entries.
func (a *ActiveSet) ActiveCount() int {
	n := 0
	for i := range a.flags {
		if a.flags[i].Load() {
			n++
		}
	}
	return n
}

// SetAll sets every entry to v; used at scheduler start (empty program)
// and scheduler stop (§4.7 edge cases).
func (a *ActiveSet) SetAll(v bool) {
	for i := range a.flags {
		a.flags[i].Store(v)
	}
}

// activateNext turns on up to n inactive slots (scheduler-only).
func (a *ActiveSet) activateNext(n int) {
	for i := 0; i < len(a.flags) && n > 0; i++ {
		if !a.flags[i].Load() {
			a.flags[i].Store(true)
			n--
		}
	}
}

// deactivateTop turns off up to n active slots, highest index first
// (scheduler-only), matching "top |delta| active slots" in §4.7.
func (a *ActiveSet) deactivateTop(n int) {
	for i := len(a.flags) - 1; i >= 0 && n > 0; i-- {
		if a.flags[i].Load() {
			a.flags[i].Store(false)
			n--
		}
	}
}

// Apply mutates the set by delta: positive activates inactive slots,
// negative deactivates active slots, both clamped to the set's bounds —
// the scheduler's sole write path (§4.7 step 3).
func (a *ActiveSet) Apply(delta int) {
	if delta > 0 {
		a.activateNext(delta)
	} else if delta < 0 {
		a.deactivateTop(-delta)
	}
}
