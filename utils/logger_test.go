package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Not parallel: swaps the package logger.
func TestTimerLogsThroughLogf(t *testing.T) {
	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { SetLogger(nil) })

	func() {
		defer StartTimer("scope").Stop()
		time.Sleep(time.Millisecond)
	}()

	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "scope: ")
}

func TestSetLoggerNilMutes(t *testing.T) {
	SetLogger(nil)
	assert.NotPanics(t, func() { Logf("ignored %d", 1) })
	assert.GreaterOrEqual(t, StartTimer("muted").Stop(), time.Duration(0))
}

func TestStatsUpdate(t *testing.T) {
	t.Parallel()
	s := NewStats()

	s.Update(1, 100, 10*time.Millisecond)
	assert.Equal(t, 1, s.TotalGenerations)
	assert.InDelta(t, 100.0, s.GenerationsPerSecond, 0.001)
	assert.InDelta(t, 100.0, s.AveragePopulation, 0.001)

	s.Update(2, 200, 0)
	assert.InDelta(t, 110.0, s.AveragePopulation, 0.001)
	assert.Equal(t, time.Duration(0), s.LastTickDuration)
}

func TestRNG(t *testing.T) {
	t.Parallel()

	a, b := NewRNG(42), NewRNG(42)
	for range 100 {
		assert.Equal(t, a.Bool(0.5), b.Bool(0.5))
	}

	never, always := NewRNG(1).Seed(0), NewRNG(1).Seed(1)
	for range 100 {
		assert.False(t, never())
		assert.True(t, always())
	}

	assert.Equal(t, 0, NewRNG(1).IntN(0))
	assert.Less(t, NewRNG(1).IntN(5), 5)
}
