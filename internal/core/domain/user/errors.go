package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists         = errors.New("email already exists")
	ErrUserDoesNotExist           = errors.New("user does not exist")
	ErrInvalidCredentials         = errors.New("invalid credentials")
	ErrResetTokenDoesNotExist     = errors.New("password reset token does not exist")
	ErrInvalidOrExpiredResetToken = errors.New("invalid or expired password reset token")
	ErrInvalidSessionToken        = errors.New("invalid session token")
	ErrPermissionDenied           = errors.New("permission denied")
)
