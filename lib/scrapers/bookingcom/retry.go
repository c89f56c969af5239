package bookingcom

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Authenticator is what the retry loop drives. *Client satisfies it.
type Authenticator interface {
	ResetSession(ctx context.Context) error
	Login(ctx context.Context, username, password string) (AuthOutcome, error)
}

type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: 10,
		Delay:    time.Second * 5,
	}
}

// LoginWithRetry runs login attempts until one succeeds, a
// non-retryable outcome short-circuits the loop, or the policy is
// exhausted. every attempt starts from a cleared cookie jar; retrying
// on a stale session was observed to compound the vendor's
// anti-automation rejections.
func LoginWithRetry(ctx context.Context, auth Authenticator, username, password string, policy RetryPolicy) error {
	var lastErr error

	for attempt := 1; attempt <= policy.Attempts; attempt++ {
		if err := auth.ResetSession(ctx); err != nil {
			slog.WarnContext(ctx, "session reset failed, attempting login anyway", "err", err)
		}

		outcome, err := auth.Login(ctx, username, password)
		if err == nil {
			switch outcome {
			case OutcomeSuccess:
				if attempt > 1 {
					slog.InfoContext(ctx, "login succeeded after retries", "attempt", attempt)
				}
				return nil
			case OutcomeBadCredentials:
				return ErrBadCredentials
			case OutcomeRateLimited:
				return ErrUserActionRequired
			}
			err = ErrVendorUnavailable
		}
		lastErr = err

		slog.WarnContext(
			ctx, "login attempt failed",
			"attempt", attempt,
			"max_attempts", policy.Attempts,
			"err", err,
		)
		if attempt == policy.Attempts {
			break
		}

		select {
		case <-time.After(policy.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("authentication failed after %d attempts: %w", policy.Attempts, lastErr)
}
