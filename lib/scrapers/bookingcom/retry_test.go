package bookingcom

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var _ Authenticator = &Client{}

type fakeAuth struct {
	outcomes []AuthOutcome
	events   []string
	logins   int
}

func (f *fakeAuth) ResetSession(ctx context.Context) error {
	f.events = append(f.events, "reset")
	return nil
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (AuthOutcome, error) {
	f.events = append(f.events, "login")
	outcome := f.outcomes[len(f.outcomes)-1]
	if f.logins < len(f.outcomes) {
		outcome = f.outcomes[f.logins]
	}
	f.logins++
	return outcome, nil
}

func testPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 10, Delay: time.Millisecond}
}

func TestRetryEventualSuccess(t *testing.T) {
	auth := &fakeAuth{outcomes: []AuthOutcome{OutcomeUnknown, OutcomeUnknown, OutcomeSuccess}}

	err := LoginWithRetry(context.Background(), auth, "jane", "hunter2", testPolicy())
	require.NoError(t, err)
	require.Equal(t, 3, auth.logins)

	// every login must be immediately preceded by a session reset
	require.Equal(t, []string{
		"reset", "login",
		"reset", "login",
		"reset", "login",
	}, auth.events)
}

func TestRetryShortCircuitsOnBadCredentials(t *testing.T) {
	auth := &fakeAuth{outcomes: []AuthOutcome{OutcomeBadCredentials}}

	err := LoginWithRetry(context.Background(), auth, "jane", "nope", testPolicy())
	require.ErrorIs(t, err, ErrBadCredentials)
	require.Equal(t, 1, auth.logins)
}

func TestRetryShortCircuitsOnRateLimit(t *testing.T) {
	auth := &fakeAuth{outcomes: []AuthOutcome{OutcomeRateLimited}}

	err := LoginWithRetry(context.Background(), auth, "jane", "hunter2", testPolicy())
	require.ErrorIs(t, err, ErrUserActionRequired)
	require.Equal(t, 1, auth.logins)
}

func TestRetryExhaustion(t *testing.T) {
	auth := &fakeAuth{outcomes: []AuthOutcome{OutcomeUnknown}}

	err := LoginWithRetry(context.Background(), auth, "jane", "hunter2", testPolicy())
	require.ErrorIs(t, err, ErrVendorUnavailable)
	require.Equal(t, 10, auth.logins)
}

func TestRetryStopsOnCanceledContext(t *testing.T) {
	auth := &fakeAuth{outcomes: []AuthOutcome{OutcomeUnknown}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := LoginWithRetry(ctx, auth, "jane", "hunter2", testPolicy())
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, auth.logins)
}

func TestRetryableOutcomes(t *testing.T) {
	require.True(t, OutcomeUnknown.Retryable())
	require.False(t, OutcomeSuccess.Retryable())
	require.False(t, OutcomeBadCredentials.Retryable())
	require.False(t, OutcomeRateLimited.Retryable())
}
