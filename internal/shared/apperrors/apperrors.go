package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrWeakPassword       = errors.New("password does not meet the minimum strength requirements")
	ErrOTPExpired         = errors.New("verification code expired or not requested")
	ErrOTPMismatch        = errors.New("verification code does not match")
	ErrTooManyAttempts    = errors.New("too many verification attempts")
	ErrDestinationLimit   = errors.New("destination limit reached")
	ErrDestinationGone    = errors.New("destination not found")
	ErrInvalidStatus      = errors.New("invalid driver status")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrDriverNotFound     = errors.New("driver not found")
)

func CheckError(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrDriverNotFound), errors.Is(err, ErrDestinationGone):
		return http.StatusNotFound
	case errors.Is(err, ErrWeakPassword), errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, ErrOTPExpired), errors.Is(err, ErrOTPMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrDestinationLimit):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}
