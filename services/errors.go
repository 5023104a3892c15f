// services/errors.go - Failure kinds shared by the core engines
package services

import "errors"

var (
	// ErrNotFound means the referenced profile/hack/task/goal/code does not
	// exist. The operation is a no-op and the caller reports a failed result.
	ErrNotFound = errors.New("record not found")

	// ErrQuotaExceeded means the message allowance is exhausted.
	ErrQuotaExceeded = errors.New("message quota exceeded")

	// ErrInvalidCode covers nonexistent, inactive, exhausted and expired
	// promo codes. Callers must not reveal which precondition failed.
	ErrInvalidCode = errors.New("invalid or expired promo code")

	// ErrAlreadyRedeemed means this user already used this promo code.
	ErrAlreadyRedeemed = errors.New("promo code already redeemed")

	// ErrUpstreamUnavailable means the store or the AI provider failed or
	// timed out. The caller may retry.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrConflict means an atomic conditional write lost its race. The
	// engines retry one of these transparently before giving up.
	ErrConflict = errors.New("concurrent update conflict")

	// ErrMissingCredential means the AI client was constructed without an
	// API key.
	ErrMissingCredential = errors.New("missing API credential")
)
