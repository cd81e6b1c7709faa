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
	"sort"
	"time"

	libalg "github.com/nabbar/loadforge/variance/algorithm"
	liblog "github.com/nabbar/loadforge/logger"
)

// PollInterval is the scheduler's maximum sleep between checks (§4.7
// step 4), kept short so stop requests are serviced promptly.
const PollInterval = 100 * time.Millisecond

// Scheduler is the per-client variance-controller task: the sole writer
// of an ActiveSet, applying a compiled Timeline against wall-clock time.
type Scheduler struct {
	timeline Timeline
	active   *ActiveSet
	log      liblog.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewScheduler builds a scheduler for the given timeline and active set.
// Events are sorted by offset to guarantee non-decreasing application
// order even if a caller built the Timeline by hand (invariant 1, §8).
func NewScheduler(t Timeline, active *ActiveSet, log liblog.Logger) *Scheduler {
	events := append([]libalg.Event(nil), t.Events...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].OffsetMs < events[j].OffsetMs })
	t.Events = events

	if log == nil {
		log = liblog.New()
	}

	return &Scheduler{
		timeline: t,
		active:   active,
		log:      log,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the scheduler loop in a new goroutine. If the timeline has
// no instructions at all (an empty variance program), it fills active[]
// with true and returns immediately without starting a background task
// (§4.7 edge case).
func (s *Scheduler) Start() {
	if len(s.timeline.Events) == 0 {
		s.active.SetAll(true)
		close(s.doneCh)
		return
	}

	go s.run()
}

// Stop requests the scheduler to exit; it sets every active[] entry to
// false (§4.7 step 5) before returning. Safe to call more than once.
func (s *Scheduler) Stop() {
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	<-s.doneCh
	s.active.SetAll(false)
}

// Done returns a channel closed when the scheduler task has exited.
func (s *Scheduler) Done() <-chan struct{} { return s.doneCh }

func (s *Scheduler) run() {
	defer close(s.doneCh)

	jobStart := time.Now()
	slot := 0

	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		if slot >= len(s.timeline.Events) {
			if !s.timeline.Loop {
				return
			}
			slot = 0
			jobStart = time.Now()
			continue
		}

		ev := s.timeline.Events[slot]
		target := jobStart.Add(time.Duration(ev.OffsetMs) * time.Millisecond)
		now := time.Now()

		if !now.Before(target) {
			s.active.Apply(ev.Delta)
			s.log.Entry(liblog.DebugLevel, "variance event applied").
				FieldAdd("offset_ms", ev.OffsetMs).FieldAdd("delta", ev.Delta).Log()
			slot++
			continue
		}

		wait := target.Sub(now)
		if wait > PollInterval {
			wait = PollInterval
		}

		select {
		case <-s.stopCh:
			return
		case <-time.After(wait):
		}
	}
}
