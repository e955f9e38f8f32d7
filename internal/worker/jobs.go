package worker

import (
	"context"

	"github.com/vytor/learntrack/internal/logger"
)

// Reconciler rebuilds a user's running points total from the ledger.
// It is satisfied by services.PointsService without importing it.
type Reconciler interface {
	Reconcile(ctx context.Context, userID string) (int, error)
}

// ReconcileTotalsJob recomputes the cached total for one user.
type ReconcileTotalsJob struct {
	Reconciler Reconciler
	UserID     string
}

func (j *ReconcileTotalsJob) Name() string { return "reconcile_totals" }

func (j *ReconcileTotalsJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("user_id", j.UserID)
	log.Debug("reconciling points total")

	total, err := j.Reconciler.Reconcile(ctx, j.UserID)
	if err != nil {
		return err
	}
	log.Info("points total reconciled: total=%d", total)
	return nil
}
