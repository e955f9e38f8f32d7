package worker_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learntrack/internal/worker"
)

type funcJob struct {
	name string
	fn   func(context.Context) error
}

func (j funcJob) Name() string { return j.name }

func (j funcJob) Run(ctx context.Context) error { return j.fn(ctx) }

func TestPool_RunsSubmittedJobs(t *testing.T) {
	pool := worker.NewPool(2, 8)
	pool.Start(context.Background())

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, pool.Submit(funcJob{name: "count", fn: func(context.Context) error {
			ran.Add(1)
			return nil
		}}))
	}
	pool.Stop()

	assert.Equal(t, int32(5), ran.Load())
}

func TestPool_FailingJobDoesNotStopWorker(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())

	var ran atomic.Int32
	require.NoError(t, pool.Submit(funcJob{name: "fail", fn: func(context.Context) error {
		return errors.New("boom")
	}}))
	require.NoError(t, pool.Submit(funcJob{name: "ok", fn: func(context.Context) error {
		ran.Add(1)
		return nil
	}}))
	pool.Stop()

	assert.Equal(t, int32(1), ran.Load())
}

func TestPool_SubmitRejectsWhenFull(t *testing.T) {
	pool := worker.NewPool(1, 1)
	release := make(chan struct{})
	started := make(chan struct{})
	pool.Start(context.Background())

	var once sync.Once
	block := funcJob{name: "block", fn: func(context.Context) error {
		once.Do(func() { close(started) })
		<-release
		return nil
	}}
	require.NoError(t, pool.Submit(block))
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("worker never picked up the first job")
	}

	require.NoError(t, pool.Submit(block))
	assert.ErrorIs(t, pool.Submit(block), worker.ErrQueueFull)

	close(release)
	pool.Stop()
}

func TestPool_SubmitAfterStop(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	err := pool.Submit(funcJob{name: "late", fn: func(context.Context) error { return nil }})

	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}

type reconcilerFunc func(ctx context.Context, userID string) (int, error)

func (f reconcilerFunc) Reconcile(ctx context.Context, userID string) (int, error) {
	return f(ctx, userID)
}

func TestReconcileTotalsJob(t *testing.T) {
	var got string
	job := &worker.ReconcileTotalsJob{
		UserID: "u1",
		Reconciler: reconcilerFunc(func(_ context.Context, userID string) (int, error) {
			got = userID
			return 42, nil
		}),
	}

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, "u1", got)
	assert.Equal(t, "reconcile_totals", job.Name())

	failing := &worker.ReconcileTotalsJob{
		UserID: "u1",
		Reconciler: reconcilerFunc(func(context.Context, string) (int, error) {
			return 0, errors.New("locked")
		}),
	}
	assert.EqualError(t, failing.Run(context.Background()), "locked")
}
