package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrSessionRevoked     = errors.New("session revoked")
	ErrAttachmentNotFound = errors.New("attachment not found")
	ErrSignerUnavailable  = errors.New("signed url unavailable")
)
