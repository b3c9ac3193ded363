package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Email verification state errors
	ErrAlreadyVerified   = errors.New("email address already verified")
	ErrResendCooldown    = errors.New("verification code requested too soon")
	ErrNoCodeOutstanding = errors.New("no verification code outstanding")
	ErrCodeExpired       = errors.New("verification code expired")
	ErrCodeMismatch      = errors.New("verification code mismatch")
)
