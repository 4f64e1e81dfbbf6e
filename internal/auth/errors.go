package auth

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid OTP")
	ErrOTPAlreadyUsed     = errors.New("OTP already used")
	ErrMissingFields      = errors.New("missing required fields")
)
