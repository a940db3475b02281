package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response never reveals whether an account exists.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrAccountDisabled is deliberately distinct: blocking the account
	// already implies it exists, and the client needs to show a different
	// message than "try again".
	ErrAccountDisabled = errors.New("auth: account disabled")

	// ErrInvalidCredentialFormat means a stored hash is not a recognisable
	// bcrypt string; comparing against it would be meaningless.
	ErrInvalidCredentialFormat = errors.New("auth: invalid credential format")

	// ErrTokenInvalid covers bad signature and expiry alike; the split is
	// not surfaced to callers.
	ErrTokenInvalid = errors.New("auth: token invalid or expired")

	ErrUnauthenticated = errors.New("auth: unauthenticated")
	ErrForbidden       = errors.New("auth: forbidden")
	ErrNotFound        = errors.New("auth: not found")
	ErrDuplicateEmail  = errors.New("auth: email already registered")
	ErrInvalidInput    = errors.New("auth: invalid input")
)
