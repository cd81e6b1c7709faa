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

import (
	"fmt"

	libalg "github.com/nabbar/loadforge/variance/algorithm"
)

// Timeline is the flat, immutable event list produced by Compile.
type Timeline struct {
	Events []libalg.Event
	Loop   bool
}

// Compile turns a Program into a flat Timeline by summing delays and
// invoking each instruction's algorithm against the *projected* active
// count (§4.7): offset_cursor starts at 0; each instruction adds
// 1000*delay_before_s, runs its algorithm, appends the resulting events
// rebased onto the cursor, then adds 1000*duration_s.
//
// If the program is empty, the caller (the scheduler) fills active[] with
// true and never starts a timeline — Compile returns an empty Timeline in
// that case, which the scheduler recognizes by len(Events) == 0 combined
// with len(Instructions) == 0.
func Compile(p Program, totalWorkers int) (Timeline, error) {
	if len(p.Instructions) == 0 {
		return Timeline{Loop: p.Loop}, nil
	}

	var (
		cursor  int64
		active  = 0
		events  = make([]libalg.Event, 0, len(p.Instructions))
	)

	for _, ins := range p.Instructions {
		algo, err := libalg.Compile(ins.Algorithm, ins.Args)
		if err != nil {
			return Timeline{}, fmt.Errorf("variance program line %d: %w", ins.Line, err)
		}

		cursor += 1000 * ins.DelayBeforeSeconds
		durationMs := 1000 * ins.DurationSeconds

		e, err := algo.Apply(durationMs, totalWorkers, active)
		if err != nil {
			return Timeline{}, fmt.Errorf("variance program line %d: %w", ins.Line, err)
		}

		for _, ev := range e {
			events = append(events, libalg.Event{OffsetMs: cursor + ev.OffsetMs, Delta: ev.Delta})
			active += ev.Delta
			if active < 0 {
				active = 0
			}
			if active > totalWorkers {
				active = totalWorkers
			}
		}

		cursor += durationMs
	}

	return Timeline{Events: events, Loop: p.Loop}, nil
}
