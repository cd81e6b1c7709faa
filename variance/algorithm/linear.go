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

// Linear spreads its delta across `number` evenly-spaced single-unit
// events over the instruction's duration.
type Linear struct {
	target Target
}

func (l *Linear) Name() string { return "linear" }

func (l *Linear) Compile(args []string) (Algorithm, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("algorithm: linear takes exactly one argument, got %d", len(args))
	}

	t, err := ParseTarget(args[0])
	if err != nil {
		return nil, err
	}

	return &Linear{target: t}, nil
}

func (l *Linear) Apply(durationMs int64, totalWorkers, activeWorkers int) ([]Event, error) {
	delta := l.target.Delta(totalWorkers, activeWorkers)
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

	events := make([]Event, number)
	for i := 0; i < number; i++ {
		events[i] = Event{
			OffsetMs: int64(i+1) * durationMs / int64(number),
			Delta:    sign,
		}
	}

	return events, nil
}
