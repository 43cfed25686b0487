package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidUserRole   = errors.New("invalid user role")

	ErrTokenInvalid = errors.New("refresh token is invalid")
	ErrTokenExpired = errors.New("refresh token has expired")
	ErrTokenRevoked = errors.New("refresh token has been revoked")
)
