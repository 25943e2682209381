// errors/auth_errors.go
package errors

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrUserConflict       = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
)
