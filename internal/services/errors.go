package services

import "errors"

// Failure kinds surfaced by the auth service. Handlers translate these
// into HTTP statuses; login-path failures collapse into one generic
// message at the transport boundary so accounts cannot be enumerated.
var (
	ErrNotFound           = errors.New("record not found")
	ErrAlreadyRegistered  = errors.New("account already registered")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrExpiredCode        = errors.New("verification code expired")
	ErrNotVerified        = errors.New("email not verified")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrDeactivated        = errors.New("account deactivated")
)
