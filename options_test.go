package eventio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestResolveRunOptions_Defaults verifies the zero-option defaults.
func TestResolveRunOptions_Defaults(t *testing.T) {
	cfg := resolveRunOptions(nil)
	require.NotNil(t, cfg)
	assert.Equal(t, 16, cfg.readyCapacity)
	assert.Equal(t, 16, cfg.waitCapacity)
	assert.NotNil(t, cfg.clock, "want a default real clock")
	assert.NotNil(t, cfg.logger, "want a default logger")
	assert.Equal(t, 5, cfg.rateWindow[time.Second])
}

// TestResolveRunOptions_Overrides verifies every RunOption actually mutates
// the field it documents, and that a nil option in the slice is skipped
// without panicking.
func TestResolveRunOptions_Overrides(t *testing.T) {
	clock := NewSimClock()
	limiter := map[time.Duration]int{time.Minute: 10}
	cfg := resolveRunOptions([]RunOption{
		WithReadyCapacity(4),
		WithWaitCapacity(8),
		WithClock(clock),
		WithLogger(nil),
		WithErrorRateLimiter(limiter),
		nil,
	})
	require.NotNil(t, cfg)
	assert.Equal(t, 4, cfg.readyCapacity)
	assert.Equal(t, 8, cfg.waitCapacity)
	assert.Same(t, clock, cfg.clock)
	assert.Nil(t, cfg.logger, "want nil override to stick")
	assert.Equal(t, 10, cfg.rateWindow[time.Minute])
}
