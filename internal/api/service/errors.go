package service

import "errors"

// Sentinel errors surfaced by the auth and todo services. Controllers map
// these onto HTTP status codes; nothing below is ever retried.
var (
	// ErrUserNotFound means no user record matches the supplied username.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists means the username is already taken.
	ErrUserExists = errors.New("username already taken")
	// ErrBadPassword means the supplied password does not match the stored hash.
	ErrBadPassword = errors.New("bad password")
	// ErrTokenInvalid means the token signature or payload failed verification.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrTokenExpired means the token is past its embedded expiry.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenRevoked means the token was explicitly revoked before expiry.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrRevocationUnavailable means no revocation store is configured.
	ErrRevocationUnavailable = errors.New("token revocation unavailable")
	// ErrTodoNotFound covers both a missing todo and one owned by another
	// user; callers cannot tell the two apart.
	ErrTodoNotFound = errors.New("todo not found")
	// ErrValidation wraps payload constraint violations.
	ErrValidation = errors.New("validation failed")
)
