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

package algorithm

import "fmt"

// Sine spaces its unit events using an arcsine timing curve, producing
// a concave (front-loaded) or convex (back-loaded) activation ramp.
type Sine struct {
	convex bool
	target Target
}

func (s *Sine) Name() string { return "sine" }

func (s *Sine) Compile(args []string) (Algorithm, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("algorithm: sine takes exactly two arguments (shape, target), got %d", len(args))
	}

	var convex bool
	switch args[0] {
	case "concave":
		convex = false
	case "convex":
		convex = true
	default:
		return nil, fmt.Errorf("algorithm: sine shape must be 'concave' or 'convex', got %q", args[0])
	}

	t, err := ParseTarget(args[1])
	if err != nil {
		return nil, err
	}

	return &Sine{convex: convex, target: t}, nil
}

func (s *Sine) Apply(durationMs int64, totalWorkers, activeWorkers int) ([]Event, error) {
	delta := s.target.Delta(totalWorkers, activeWorkers)
	if delta == 0 {
		return nil, nil
	}

	if durationMs <= 0 {
		return []Event{{OffsetMs: 0, Delta: delta}}, nil
	}

	number := delta
	sign := 1
	if number < 0 {
		number = -number
		sign = -1
	}

	offsets := sineOffsets(durationMs, number, s.convex)

	events := make([]Event, number)
	for i, off := range offsets {
		events[i] = Event{OffsetMs: off, Delta: sign}
	}

	return events, nil
}
