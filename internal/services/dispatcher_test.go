package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherRunsTasks(t *testing.T) {
	dispatcher := NewDispatcher(2, 8)

	var ran int32
	for i := 0; i < 5; i++ {
		ok := dispatcher.Submit(func(ctx context.Context) {
			atomic.AddInt32(&ran, 1)
		})
		assert.True(t, ok)
	}

	dispatcher.Stop()
	assert.Equal(t, int32(5), atomic.LoadInt32(&ran))
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	dispatcher := NewDispatcher(1, 1)
	defer dispatcher.Stop()

	block := make(chan struct{})
	started := make(chan struct{})

	// First task occupies the single worker, second fills the queue.
	dispatcher.Submit(func(ctx context.Context) {
		close(started)
		<-block
	})
	<-started
	assert.True(t, dispatcher.Submit(func(ctx context.Context) {}))

	dropped := dispatcher.Submit(func(ctx context.Context) {
		t.Error("dropped task must not run")
	})
	assert.False(t, dropped)

	close(block)
}

func TestDispatcherRecoversPanics(t *testing.T) {
	dispatcher := NewDispatcher(1, 4)

	var afterPanic int32
	dispatcher.Submit(func(ctx context.Context) {
		panic("task blew up")
	})
	dispatcher.Submit(func(ctx context.Context) {
		atomic.AddInt32(&afterPanic, 1)
	})

	dispatcher.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&afterPanic), "worker must survive a panicking task")
}

func TestDispatcherStopIsIdempotent(t *testing.T) {
	dispatcher := NewDispatcher(1, 1)
	dispatcher.Stop()
	assert.NotPanics(t, func() { dispatcher.Stop() })
}

func TestDispatcherSubmitAfterStopDrops(t *testing.T) {
	dispatcher := NewDispatcher(1, 4)
	dispatcher.Stop()

	var accepted bool
	assert.NotPanics(t, func() {
		accepted = dispatcher.Submit(func(ctx context.Context) {
			t.Error("task submitted after stop must not run")
		})
	})
	assert.False(t, accepted)
}

func TestDispatcherStopWaitsForInFlight(t *testing.T) {
	dispatcher := NewDispatcher(1, 1)

	var done int32
	dispatcher.Submit(func(ctx context.Context) {
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt32(&done, 1)
	})

	dispatcher.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&done))
}
