package core

import (
	"context"
	"time"
)

// Operation kinds, each with its own simulated delay.
const (
	OpList = iota
	OpGet
	OpCreate
	OpUpdate
	OpDelete
	OpLookup // entity helpers: by batch, by subject, summaries...
)

var defaultDelays = map[int]time.Duration{
	OpList:   300 * time.Millisecond,
	OpGet:    200 * time.Millisecond,
	OpCreate: 400 * time.Millisecond,
	OpUpdate: 300 * time.Millisecond,
	OpDelete: 300 * time.Millisecond,
	OpLookup: 200 * time.Millisecond,
}

// Latency simulates the round trip of a remote data source.
// The zero value does not wait.
type Latency struct {
	delays map[int]time.Duration
}

// NewLatency scales the default delays according to conf. A disabled config yields no delay.
func NewLatency(conf LatencyConfig) Latency {
	if !conf.Enabled || conf.Scale <= 0 {
		return Latency{}
	}
	delays := make(map[int]time.Duration, len(defaultDelays))
	for op, d := range defaultDelays {
		delays[op] = time.Duration(float64(d) * conf.Scale)
	}
	return Latency{delays: delays}
}

// Delay returns the configured delay for op.
func (l Latency) Delay(op int) time.Duration {
	return l.delays[op]
}

// Wait blocks for the delay of op, or until ctx is done.
func (l Latency) Wait(ctx context.Context, op int) error {
	d := l.delays[op]
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
