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

package value

import (
	"time"

	"github.com/juju/ratelimit"
)

func init() {
	_ = Default.Register("rate-limiter", func() Variable { return NewRateLimiter(1, 1) })
}

// RateLimiter is the builtin rate-limiter type (§4.3, §4.10): a token
// bucket a scripted I/O variable consults before issuing a request.
type RateLimiter struct {
	Dispatcher
	ratePerSec float64
	capacity   int64
	bucket     *ratelimit.Bucket
}

// NewRateLimiter builds a bucket refilling at ratePerSec tokens/second
// up to capacity tokens.
func NewRateLimiter(ratePerSec float64, capacity int64) *RateLimiter {
	if capacity <= 0 {
		capacity = 1
	}
	r := &RateLimiter{ratePerSec: ratePerSec, capacity: capacity}
	r.bucket = ratelimit.NewBucketWithRate(ratePerSec, capacity)

	r.Dispatcher = NewDispatcher([]Method{
		{Signature{"configure", []string{"integer", "integer"}, ""}, func(a []Variable) (Variable, error) {
			r.ratePerSec = float64(a[0].(*Integer).Value())
			r.capacity = a[1].(*Integer).Value()
			if r.capacity <= 0 {
				r.capacity = 1
			}
			r.bucket = ratelimit.NewBucketWithRate(r.ratePerSec, r.capacity)
			return nil, nil
		}},
		{Signature{"acquire", nil, ""}, func(a []Variable) (Variable, error) {
			time.Sleep(r.bucket.Take(1))
			return nil, nil
		}},
		{Signature{"tryacquire", nil, "boolean"}, func(a []Variable) (Variable, error) {
			return NewBoolean(r.bucket.TakeAvailable(1) == 1), nil
		}},
	})
	return r
}

func (r *RateLimiter) TypeName() string { return "rate-limiter" }

func (r *RateLimiter) AssignFrom(other Variable) error {
	o, ok := other.(*RateLimiter)
	if !ok {
		return ErrTypeMismatch
	}
	r.ratePerSec, r.capacity, r.bucket = o.ratePerSec, o.capacity, o.bucket
	return nil
}

func (r *RateLimiter) String() string { return "rate-limiter" }

func (r *RateLimiter) StatTrackers() []StatTracker { return nil }
