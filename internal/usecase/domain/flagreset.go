package domain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"user-seeding-service/internal/entities"
)

// ResetProblems clears the problems flag on all flagged rows and returns how
// many rows were transitioned. The repository performs count and update as
// one atomic statement; on a transaction conflict the whole operation is
// retried with bounded exponential backoff.
func (u *Usecase) ResetProblems(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	delay := u.flagReset.RetryBaseDelay
	var lastErr error
	for attempt := 0; attempt <= u.flagReset.MaxRetries; attempt++ {
		if attempt > 0 {
			u.log.Warnw("retrying problems reset", "attempt", attempt, "delay", delay)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return 0, ctx.Err()
			}
			delay *= 2
		}

		n, err := u.repo.ResetProblems(ctx)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, entities.ErrTxConflict) {
			return 0, err
		}
		lastErr = err
	}

	u.log.Errorw("problems reset retries exhausted", "retries", u.flagReset.MaxRetries, "error", lastErr)
	return 0, fmt.Errorf("reset problems after %d retries: %w", u.flagReset.MaxRetries, lastErr)
}
