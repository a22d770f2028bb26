package domain

import "errors"

// Ceremony and store failures the transport layer maps to HTTP statuses.
// User-facing messages stay coarse; the detailed cause only reaches logs.
var (
	ErrChallengeExpired      = errors.New("challenge missing or expired")
	ErrUserNotFound          = errors.New("user not found")
	ErrAuthenticatorNotFound = errors.New("authenticator not found")
	ErrVerificationFailed    = errors.New("verification failed")
	ErrInvalidCredentialData = errors.New("invalid credential data")
	ErrMissingCredentialID   = errors.New("missing credential id")
	ErrMalformedRequest      = errors.New("malformed request")
	ErrReplayDetected        = errors.New("possible credential clone detected")
	ErrNotOwner              = errors.New("authenticator is owned by another user")
	ErrEmailTaken            = errors.New("user already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrStorage               = errors.New("storage failure")
)
