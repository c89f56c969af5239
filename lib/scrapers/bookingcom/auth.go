package bookingcom

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel/codes"
)

var (
	ErrBadCredentials     = errors.New("the vendor rejected these credentials")
	ErrUserActionRequired = errors.New("too many failed logins, the vendor requires a password change")
	ErrVendorUnavailable  = errors.New("the vendor did not answer the login correctly")
)

type AuthOutcome int

const (
	// covers http errors, unmatched redirects and unknown vendor
	// error codes, all of which are worth retrying
	OutcomeUnknown AuthOutcome = iota
	OutcomeSuccess
	OutcomeBadCredentials
	OutcomeRateLimited
)

func (o AuthOutcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeBadCredentials:
		return "bad_credentials"
	case OutcomeRateLimited:
		return "rate_limited"
	}
	return "unknown"
}

func (o AuthOutcome) Retryable() bool {
	return o == OutcomeUnknown
}

// OutcomeClassifier turns a raw login response into an AuthOutcome.
// the vendor signals the result through markup internals, so the
// matching strategy lives behind this interface where it can be
// swapped without touching the retry loop.
type OutcomeClassifier interface {
	Classify(statusCode int, body string) AuthOutcome
}

// RedirectClassifier reads the client-side redirect the vendor embeds
// in the login response and pulls the `has_error` query parameter out
// of it. the coupling to exact vendor markup is unavoidable here; a
// failed match classifies as unknown, it never fails.
type RedirectClassifier struct{}

var hasErrorRegex = regexp.MustCompile(`has_error=([^&]*)&has_error_action`)

func (RedirectClassifier) Classify(statusCode int, body string) AuthOutcome {
	if statusCode != http.StatusOK {
		return OutcomeUnknown
	}
	for _, line := range strings.Split(body, "\n") {
		if !strings.Contains(line, "document.location.href") {
			continue
		}
		groups := hasErrorRegex.FindStringSubmatch(line)
		if len(groups) < 2 {
			continue
		}
		switch groups[1] {
		case "0":
			return OutcomeSuccess
		case "wrong_password", "wrong_username":
			return OutcomeBadCredentials
		case "too_many_tries":
			return OutcomeRateLimited
		}
		return OutcomeUnknown
	}
	return OutcomeUnknown
}

const loginPath = "/login.html"

func (c *Client) Login(ctx context.Context, username, password string) (AuthOutcome, error) {
	ctx, span := tracer.Start(ctx, "client:Login")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"loginname": username,
			"password":  password,
		}).
		Post(loginPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return OutcomeUnknown, err
	}

	outcome := c.classifier.Classify(res.StatusCode(), res.String())
	slog.DebugContext(
		ctx, "classified login response",
		"status", res.StatusCode(),
		"outcome", outcome.String(),
	)
	if outcome != OutcomeSuccess {
		span.SetStatus(codes.Error, outcome.String())
	}
	return outcome, nil
}
