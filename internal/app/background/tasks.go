package background

import (
	"context"
	"log/slog"
	"time"
)

// ExpirySweeper is the slice of the payment usecase the scheduler needs.
type ExpirySweeper interface {
	CancelExpiredPayments(ctx context.Context) (int, error)
}

// StartPaymentExpirySweep runs the expiry reconciliation on a fixed
// interval until ctx is cancelled. One run happens immediately at startup
// to catch payments that expired while the service was down.
func StartPaymentExpirySweep(ctx context.Context, sweeper ExpirySweeper, interval time.Duration) {
	go func() {
		runSweep(ctx, sweeper)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runSweep(ctx, sweeper)
			}
		}
	}()
}

func runSweep(ctx context.Context, sweeper ExpirySweeper) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("payment expiry sweep panicked", "panic", r)
		}
	}()

	count, err := sweeper.CancelExpiredPayments(ctx)
	if err != nil {
		slog.Error("payment expiry sweep failed", "error", err)
		return
	}
	if count > 0 {
		slog.Info("payment expiry sweep finished", "expired", count)
	}
}
