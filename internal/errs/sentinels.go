// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across store/service/handler layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is not
	// owned by the caller. The two cases are deliberately indistinguishable
	// so that ownership probing never reveals existence.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a uniqueness violation (duplicate email,
	// duplicate tracked application).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken indicates a token that failed signature verification,
	// is expired, or is malformed. No partial acceptance.
	ErrInvalidToken = errors.New("invalid token")

	// ErrValidation indicates missing or malformed input.
	ErrValidation = errors.New("validation failed")
)
