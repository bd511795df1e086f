package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkerRunsEnqueuedJobs(t *testing.T) {
	w := NewWorker(2)

	done := make(chan struct{})
	w.Enqueue(func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}

	w.Shutdown()

	stats := w.GetStats()
	assert.Equal(t, int64(1), stats.CompletedJobs)
	assert.Equal(t, int64(0), stats.FailedJobs)
	assert.Equal(t, 0, stats.ActiveJobs)
}

func TestWorkerCountsFailedJobs(t *testing.T) {
	w := NewWorker(1)

	done := make(chan struct{})
	w.Enqueue(func(ctx context.Context) error {
		defer close(done)
		return errors.New("boom")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}

	w.Shutdown()

	stats := w.GetStats()
	assert.Equal(t, int64(1), stats.FailedJobs)
	assert.Equal(t, int64(1), stats.CompletedJobs)
}

func TestWorkerShutdownStopsScheduledJobs(t *testing.T) {
	w := NewWorker(1)

	runs := make(chan struct{}, 10)
	w.ScheduleEvery(10*time.Millisecond, func(ctx context.Context) error {
		runs <- struct{}{}
		return nil
	})

	select {
	case <-runs:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled job did not run")
	}

	w.Shutdown()

	// Drain anything in flight, then verify no further runs arrive
	for {
		select {
		case <-runs:
			continue
		case <-time.After(50 * time.Millisecond):
		}
		break
	}

	select {
	case <-runs:
		t.Fatal("scheduled job ran after shutdown")
	case <-time.After(100 * time.Millisecond):
	}
}
