package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewLatency(t *testing.T) {
	assert.Zero(t, NewLatency(LatencyConfig{}).Delay(OpList))
	assert.Zero(t, NewLatency(LatencyConfig{Enabled: true}).Delay(OpList))

	l := NewLatency(LatencyConfig{Enabled: true, Scale: 1})
	assert.Equal(t, 300*time.Millisecond, l.Delay(OpList))
	assert.Equal(t, 400*time.Millisecond, l.Delay(OpCreate))

	l = NewLatency(LatencyConfig{Enabled: true, Scale: 0.5})
	assert.Equal(t, 100*time.Millisecond, l.Delay(OpGet))
}

func TestLatency_Wait(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, Latency{}.Wait(ctx, OpList))

	l := NewLatency(LatencyConfig{Enabled: true, Scale: 0.01})
	start := time.Now()
	assert.NoError(t, l.Wait(ctx, OpCreate))
	assert.GreaterOrEqual(t, time.Since(start), 4*time.Millisecond)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, NewLatency(LatencyConfig{Enabled: true, Scale: 100}).Wait(canceled, OpList), context.Canceled)
	assert.ErrorIs(t, Latency{}.Wait(canceled, OpList), context.Canceled)
}
