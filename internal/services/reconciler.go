package services

import (
	"log/slog"
	"time"
)

// Reconciler reapplies the two partial-failure windows the write paths can
// leave behind: votes whose tally increment failed and payments whose role
// promotion failed. Both reapply operations are idempotent, so running the
// loop against a healthy store is a no-op.
type Reconciler struct {
	votes    *VoteService
	payments *PaymentService
	interval time.Duration
	minAge   time.Duration
}

func NewReconciler(votes *VoteService, payments *PaymentService, interval, minAge time.Duration) *Reconciler {
	return &Reconciler{votes: votes, payments: payments, interval: interval, minAge: minAge}
}

// Start runs the reconciliation loop until done is closed.
func (r *Reconciler) Start(done chan struct{}) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.RunOnce()
			case <-done:
				return
			}
		}
	}()
}

// RunOnce performs a single reconciliation pass.
func (r *Reconciler) RunOnce() {
	if n, err := r.votes.ReapplyPending(r.minAge); err != nil {
		slog.Error("vote reconciliation failed", "error", err)
	} else if n > 0 {
		slog.Info("reapplied orphan vote tallies", "count", n)
	}

	if n, err := r.payments.ReapplyPending(r.minAge); err != nil {
		slog.Error("payment reconciliation failed", "error", err)
	} else if n > 0 {
		slog.Info("reapplied pending role promotions", "count", n)
	}
}
