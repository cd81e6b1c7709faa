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

// Package worker runs the per-client worker-thread pool (§4.8): each
// worker cooperatively checks the variance scheduler's active[] flag
// and invokes the workload's per-iteration callback.
package worker

import (
	"sync"
	"sync/atomic"
	"time"

	libatm "github.com/nabbar/loadforge/atomic"
	libctx "github.com/nabbar/loadforge/context"
)

// ctxKey is the key type of JobContext's generic config map. As an
// alias of string it adds no separate key space; each JobContext holds
// its own map.
type ctxKey = string

// JobContext is the per-client-process shared state (§3's "Job state"):
// the active[] flags, the stop request, and whatever ambient values the
// workload callbacks need, carried through the generic atomic context
// container the rest of the module already uses.
type JobContext struct {
	libctx.Config[ctxKey]

	stopRequested atomic.Bool
}

// NewJobContext builds a JobContext wrapping a fresh generic config map.
func NewJobContext() *JobContext {
	return &JobContext{Config: libctx.New[ctxKey](nil)}
}

// RequestStop flags the job for shutdown; observed by every worker
// within idle_sleep_ms (§5 ordering guarantees).
func (j *JobContext) RequestStop() { j.stopRequested.Store(true) }

// StopRequested reports whether RequestStop has been called.
func (j *JobContext) StopRequested() bool { return j.stopRequested.Load() }

// Callbacks are the three workload hooks supplied by the script/runtime
// glue (§4.8): startup, the per-iteration body, and shutdown.
type Callbacks struct {
	Startup      func(me int)
	PerIteration func(me int)
	Shutdown     func(me int)
	IdleSleep    time.Duration
}

// ActiveReader is the read side of variance.ActiveSet — kept as a
// narrow interface here so worker does not need the variance package's
// write methods, only Get.
type ActiveReader interface {
	Get(i int) bool
}

// Pool runs N workers, each cooperatively polling an ActiveReader.
type Pool struct {
	active ActiveReader
	job    *JobContext
	cb     Callbacks
	n      int
	idle   libatm.Value[time.Duration]

	wg sync.WaitGroup
}

// NewPool builds a pool of n workers sharing job and reading active.
func NewPool(n int, active ActiveReader, job *JobContext, cb Callbacks) *Pool {
	if cb.IdleSleep <= 0 {
		cb.IdleSleep = 100 * time.Millisecond
	}
	p := &Pool{active: active, job: job, cb: cb, n: n, idle: libatm.NewValue[time.Duration]()}
	p.idle.Store(cb.IdleSleep)
	return p
}

// SetIdleSleep changes how long an idle worker sleeps between
// active-flag polls, effective on every worker's very next idle tick.
// config.Loader's OnReload hook calls this so idle_sleep_ms can be
// tuned without restarting loadforge-client.
func (p *Pool) SetIdleSleep(d time.Duration) {
	if d > 0 {
		p.idle.Store(d)
	}
}

// Start launches all N worker goroutines; they run until the job
// requests a stop.
func (p *Pool) Start() {
	for i := 0; i < p.n; i++ {
		p.wg.Add(1)
		go p.runWorker(i)
	}
}

// Wait blocks until every worker has run its shutdown callback and
// returned.
func (p *Pool) Wait() { p.wg.Wait() }

// ShouldPauseOrStop is the callback exposed to user per-iteration code
// (per §4.8): true once the worker's flag drops or the job is stopping.
func (p *Pool) ShouldPauseOrStop(me int) bool {
	return p.job.StopRequested() || !p.active.Get(me)
}

func (p *Pool) runWorker(me int) {
	defer p.wg.Done()

	if p.cb.Startup != nil {
		p.cb.Startup(me)
	}

	for {
		switch {
		case p.job.StopRequested():
			if p.cb.Shutdown != nil {
				p.cb.Shutdown(me)
			}
			return
		case p.active.Get(me):
			if p.cb.PerIteration != nil {
				p.cb.PerIteration(me)
			}
		default:
			time.Sleep(p.idle.Load())
		}
	}
}
