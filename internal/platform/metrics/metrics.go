// Package metrics keeps lightweight in-process request counters for the
// operational metrics endpoint. These are service health figures, not
// the HR analytics payloads.
package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	requests        atomic.Uint64
	serverErrors    atomic.Uint64
	clientErrors    atomic.Uint64
	totalDurationMs atomic.Uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.Add(1)
	switch {
	case status >= 500:
		c.serverErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
	c.totalDurationMs.Add(uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := c.requests.Load()
	totalMs := c.totalDurationMs.Load()
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":     total,
		"serverErrorsTotal": c.serverErrors.Load(),
		"clientErrorsTotal": c.clientErrors.Load(),
		"avgDurationMs":     avg,
	}
}
