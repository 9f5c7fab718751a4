package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these onto
// HTTP status codes; anything else is treated as an internal failure.
var (
	// ErrNotFound covers both true absence and ownership mismatch on
	// mutating operations. The collapse is deliberate: non-owners must not
	// be able to distinguish a hidden record from a missing one.
	ErrNotFound = errors.New("record not found")

	ErrDuplicateLike      = errors.New("post already liked")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrConflict           = errors.New("conflicting record already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrTokenMissing    = errors.New("authorization token missing or malformed")
	ErrTokenInvalid    = errors.New("token invalid or expired")
	ErrSubjectNotFound = errors.New("token subject no longer exists")
)
