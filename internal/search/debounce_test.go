package search

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncerLastWriteWins(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	fired := make(chan int32, 3)

	for i := int32(1); i <= 3; i++ {
		v := i
		d.Schedule(func() {
			calls.Add(1)
			fired <- v
		})
	}

	select {
	case v := <-fired:
		assert.Equal(t, int32(3), v)
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}

	// Give earlier cancelled timers a moment to prove they stay dead
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Schedule(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncerDefaultDelay(t *testing.T) {
	d := NewDebouncer(0)
	require.Equal(t, DefaultDebounce, d.delay)
}

func TestResultGuardDiscardsStale(t *testing.T) {
	var g ResultGuard

	first := g.Issue()
	second := g.Issue()

	// The newer response lands first
	assert.True(t, g.Apply(second))
	// The older one is stale and must not overwrite it
	assert.False(t, g.Apply(first))
	// Replays of the applied sequence are rejected too
	assert.False(t, g.Apply(second))

	third := g.Issue()
	assert.True(t, g.Apply(third))
}
