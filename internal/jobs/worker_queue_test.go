package jobs_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/learntrack/internal/jobs"
	"github.com/vytor/learntrack/internal/worker"
)

type recordingReconciler struct {
	mu    sync.Mutex
	users []string
}

func (r *recordingReconciler) Reconcile(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
	return 0, nil
}

func TestWorkerQueue_EnqueueReconcile(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Start(context.Background())
	rec := &recordingReconciler{}
	queue := jobs.NewWorkerQueue(pool, rec)

	require.NoError(t, queue.EnqueueReconcile("u1"))
	require.NoError(t, queue.EnqueueReconcile("u2"))
	pool.Stop()

	assert.ElementsMatch(t, []string{"u1", "u2"}, rec.users)
}

func TestWorkerQueue_StoppedPool(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Stop()

	err := jobs.NewWorkerQueue(pool, &recordingReconciler{}).EnqueueReconcile("u1")

	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}
