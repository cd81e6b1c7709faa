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

// Package algorithm implements the pure load-variance shape functions
// (stair-step, linear, sine) that turn one variance-program instruction
// into a sequence of single-unit worker-activation events.
package algorithm

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Event is one (offset_ms, delta) pair produced by an algorithm.
type Event struct {
	OffsetMs int64
	Delta    int
}

// Algorithm computes an event sequence for one variance-program
// instruction, given the duration of that instruction and the worker
// counts known at compile time.
type Algorithm interface {
	// Name is the lowercase, registered algorithm name used in variance
	// program files (e.g. "stairstep", "linear", "sine").
	Name() string

	// Compile parses the algorithm's string arguments once, validating
	// them, and returns a closure-free Algorithm ready for Apply.
	Compile(args []string) (Algorithm, error)

	// Apply computes the event list for durationMs given totalWorkers and
	// the number currently active.
	Apply(durationMs int64, totalWorkers, activeWorkers int) ([]Event, error)
}

// Target is a parsed worker-count directive: +N, -N, +N%, -N%, =N, =N%.
type Target struct {
	Op      byte // '+', '-', or '='
	Value   int
	Percent bool
}

// ParseTarget parses the common single-token argument syntax shared by
// every algorithm (spec §4.6).
func ParseTarget(tok string) (Target, error) {
	var t Target

	if len(tok) < 2 {
		return t, fmt.Errorf("algorithm: malformed target argument %q", tok)
	}

	op := tok[0]
	if op != '+' && op != '-' && op != '=' {
		return t, fmt.Errorf("algorithm: target argument %q must start with +, - or =", tok)
	}
	t.Op = op

	rest := tok[1:]
	if strings.HasSuffix(rest, "%") {
		t.Percent = true
		rest = strings.TrimSuffix(rest, "%")
	}

	n, err := strconv.Atoi(rest)
	if err != nil {
		return t, fmt.Errorf("algorithm: target argument %q has a non-integer value: %w", tok, err)
	}
	if n < 0 {
		return t, fmt.Errorf("algorithm: target argument %q must not be negative", tok)
	}
	if t.Percent && n > 100 {
		return t, fmt.Errorf("algorithm: target argument %q exceeds 100%%", tok)
	}

	t.Value = n
	return t, nil
}

// Delta resolves the target against the current worker counts into a
// signed delta, clamped so active+delta stays within [0, total].
func (t Target) Delta(total, active int) int {
	var want int

	switch t.Op {
	case '+':
		want = active + t.resolvedCount(total)
	case '-':
		want = active - t.resolvedCount(total)
	case '=':
		want = t.resolvedCount(total)
	}

	if want < 0 {
		want = 0
	}
	if want > total {
		want = total
	}

	return want - active
}

func (t Target) resolvedCount(total int) int {
	if !t.Percent {
		return t.Value
	}
	return (t.Value * total) / 100
}

// evenlySpacedOffsets returns `number` offsets across [1, duration], the
// i-th at (i+1)*duration/number, matching the linear algorithm's spec.
func evenlySpacedOffsets(durationMs int64, number int) []int64 {
	out := make([]int64, number)
	for i := 0; i < number; i++ {
		out[i] = int64(i+1) * durationMs / int64(number)
	}
	return out
}

// sineOffsets computes the `number` offsets for the sine algorithm. The
// concave curve places its i-th unit event (1-indexed y=i+1 out of
// `number`) at floor(2*duration_ms * asin(y/number) / pi): events bunch
// up early and spread out as the curve flattens toward duration_ms.
//
// The convex curve is the point reflection of the concave curve through
// the window's center (duration_ms/2, duration_ms/2), not a per-index
// mirror: pairing y with (number+1-y) keeps the result non-decreasing,
// which a naive durationMs-v mirror of the concave sequence does not.
func sineOffsets(durationMs int64, number int, convex bool) []int64 {
	concave := make([]int64, number)
	for i := 0; i < number; i++ {
		y := float64(i+1) / float64(number)
		off := 2 * float64(durationMs) * math.Asin(y) / math.Pi
		concave[i] = int64(math.Floor(off))
	}

	if !convex {
		return concave
	}

	out := make([]int64, number)
	for i := 0; i < number; i++ {
		out[i] = durationMs - concave[number-1-i]
	}
	return out
}
