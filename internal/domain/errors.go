package domain

import "errors"

var (
	// ErrReasonerFailure is returned when a request to the reasoning service fails
	// (transport error, non-success status or malformed payload)
	ErrReasonerFailure = errors.New("reasoner request failed")

	// ErrNoStrateosID is returned when no strateos ID can be extracted from an instance URI
	ErrNoStrateosID = errors.New("no strateos ID extractable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
