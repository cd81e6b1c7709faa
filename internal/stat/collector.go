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

// Package stat exports script stat trackers (§4.3's getStatTrackers())
// as Prometheus metrics. It is a pull-based collector: every Collect
// call walks the current tracker snapshot rather than caching counter
// state, since the trackers themselves already own the authoritative
// value (the collector never mutates them).
package stat

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	libstat "github.com/nabbar/loadforge/script/statrack"
	libval "github.com/nabbar/loadforge/script/value"
)

var (
	incrementalDesc = prometheus.NewDesc(
		"loadforge_tracker_incremental_total",
		"Current value of an incremental stat tracker.",
		[]string{"job_id", "name"}, nil)

	categoricalDesc = prometheus.NewDesc(
		"loadforge_tracker_categorical_total",
		"Per-label occurrence count of a categorical stat tracker.",
		[]string{"job_id", "name", "label"}, nil)

	integerCountDesc = prometheus.NewDesc(
		"loadforge_tracker_integer_value_count",
		"Number of samples recorded by an integer-value tracker.",
		[]string{"job_id", "name"}, nil)

	integerSumDesc = prometheus.NewDesc(
		"loadforge_tracker_integer_value_sum",
		"Sum of samples recorded by an integer-value tracker.",
		[]string{"job_id", "name"}, nil)

	integerMinDesc = prometheus.NewDesc(
		"loadforge_tracker_integer_value_min",
		"Minimum sample recorded by an integer-value tracker.",
		[]string{"job_id", "name"}, nil)

	integerMaxDesc = prometheus.NewDesc(
		"loadforge_tracker_integer_value_max",
		"Maximum sample recorded by an integer-value tracker.",
		[]string{"job_id", "name"}, nil)

	timeCountDesc = prometheus.NewDesc(
		"loadforge_tracker_time_count",
		"Number of intervals recorded by a time tracker.",
		[]string{"job_id", "name"}, nil)

	timeTotalMsDesc = prometheus.NewDesc(
		"loadforge_tracker_time_total_milliseconds",
		"Total recorded duration of a time tracker, in milliseconds.",
		[]string{"job_id", "name"}, nil)
)

// Collector adapts one job's stat trackers to prometheus.Collector. The
// tracker list is re-read from lister on every Collect, so newly
// registered trackers (a script variable declared mid-run is not
// possible per §4.4, but a worker may own several Interpreter
// instances) are picked up without re-registering the collector.
type Collector struct {
	jobID  string
	lister func() []libval.StatTracker
}

// NewCollector builds a Collector tagging every metric with a fresh
// job ID (§3 "Job state" has no natural identifier at the metrics
// layer, so one is minted here).
func NewCollector(lister func() []libval.StatTracker) *Collector {
	return &Collector{jobID: uuid.NewString(), lister: lister}
}

func (c *Collector) JobID() string { return c.jobID }

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- incrementalDesc
	ch <- categoricalDesc
	ch <- integerCountDesc
	ch <- integerSumDesc
	ch <- integerMinDesc
	ch <- integerMaxDesc
	ch <- timeCountDesc
	ch <- timeTotalMsDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	if c.lister == nil {
		return
	}

	for _, t := range c.lister() {
		switch v := t.(type) {
		case *libstat.Incremental:
			ch <- prometheus.MustNewConstMetric(incrementalDesc, prometheus.CounterValue, float64(v.Value()), c.jobID, v.Name())

		case *libstat.Categorical:
			for label, n := range v.Counts() {
				ch <- prometheus.MustNewConstMetric(categoricalDesc, prometheus.CounterValue, float64(n), c.jobID, v.Name(), label)
			}

		case *libstat.IntegerValue:
			count, sum, min, max := v.Snapshot()
			ch <- prometheus.MustNewConstMetric(integerCountDesc, prometheus.CounterValue, float64(count), c.jobID, v.Name())
			ch <- prometheus.MustNewConstMetric(integerSumDesc, prometheus.CounterValue, float64(sum), c.jobID, v.Name())
			ch <- prometheus.MustNewConstMetric(integerMinDesc, prometheus.GaugeValue, float64(min), c.jobID, v.Name())
			ch <- prometheus.MustNewConstMetric(integerMaxDesc, prometheus.GaugeValue, float64(max), c.jobID, v.Name())

		case *libstat.Time:
			count, total := v.Snapshot()
			ch <- prometheus.MustNewConstMetric(timeCountDesc, prometheus.CounterValue, float64(count), c.jobID, v.Name())
			ch <- prometheus.MustNewConstMetric(timeTotalMsDesc, prometheus.CounterValue, float64(total.Milliseconds()), c.jobID, v.Name())
		}
	}
}
