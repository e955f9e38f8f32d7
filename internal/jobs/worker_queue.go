package jobs

import (
	"github.com/vytor/learntrack/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	reconcilePool *worker.Pool
	reconciler    worker.Reconciler
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(reconcilePool *worker.Pool, reconciler worker.Reconciler) JobQueue {
	return &WorkerQueue{
		reconcilePool: reconcilePool,
		reconciler:    reconciler,
	}
}

func (q *WorkerQueue) EnqueueReconcile(userID string) error {
	return q.reconcilePool.Submit(&worker.ReconcileTotalsJob{
		Reconciler: q.reconciler,
		UserID:     userID,
	})
}
