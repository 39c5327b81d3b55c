// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkrylov/go-data-vault/internal/logger"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run was called.
type mockWorker struct {
	runCount int
}

func (m *mockWorker) Run() {
	m.runCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := NewWorkers(w1, w2, w3)
	ws.Run()

	for i, w := range []*mockWorker{w1, w2, w3} {
		assert.Equal(t, 1, w.runCount, "worker[%d]", i)
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := NewWorkers()

	// Should not panic on empty workers list
	ws.Run()
}

// fakePublisher implements IdentityPublisher with an atomic call counter.
type fakePublisher struct {
	unlocked atomic.Bool
	calls    atomic.Int64
	err      error
}

func (f *fakePublisher) Unlocked() bool {
	return f.unlocked.Load()
}

func (f *fakePublisher) PublishIdentity(context.Context) error {
	f.calls.Add(1)
	return f.err
}

func TestRepublishWorker_PublishesWhileUnlocked(t *testing.T) {
	publisher := &fakePublisher{}
	publisher.unlocked.Store(true)

	worker := NewRepublishWorker(publisher, 10*time.Millisecond, logger.Nop())
	worker.Run()
	defer worker.Stop()

	require.Eventually(t, func() bool {
		return publisher.calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRepublishWorker_SkipsTicksWhileLocked(t *testing.T) {
	publisher := &fakePublisher{}

	worker := NewRepublishWorker(publisher, 5*time.Millisecond, logger.Nop())
	worker.Run()

	time.Sleep(50 * time.Millisecond)
	worker.Stop()

	assert.Zero(t, publisher.calls.Load())
}

func TestRepublishWorker_StopIsIdempotent(t *testing.T) {
	publisher := &fakePublisher{}
	publisher.unlocked.Store(true)

	worker := NewRepublishWorker(publisher, time.Millisecond, logger.Nop())
	worker.Run()

	worker.Stop()
	worker.Stop()

	calls := publisher.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, publisher.calls.Load(), "no ticks after Stop")
}
