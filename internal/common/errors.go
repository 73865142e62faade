package common

import (
	"errors"
	"net/http"
)

// AppError is the error taxonomy shared across the auth core. Errors compare
// by code, so wrapped and re-messaged instances still match their sentinel
// through errors.Is.
type AppError struct {
	Code    string
	Message string
	Status  int
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithMessage returns a copy carrying a flow-specific message.
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{Code: e.Code, Message: message, Status: e.Status}
}

var (
	ErrInvalidToken           = &AppError{Code: "INVALID_TOKEN", Message: "Invalid token", Status: http.StatusUnauthorized}
	ErrTokenExpired           = &AppError{Code: "TOKEN_EXPIRED", Message: "Token expired", Status: http.StatusUnauthorized}
	ErrAuthenticationRequired = &AppError{Code: "AUTHENTICATION_REQUIRED", Message: "Authentication required", Status: http.StatusUnauthorized}
	ErrOrganizationRequired   = &AppError{Code: "ORGANIZATION_REQUIRED", Message: "Organization context required", Status: http.StatusUnauthorized}
	ErrForbidden              = &AppError{Code: "FORBIDDEN", Message: "Insufficient permissions", Status: http.StatusForbidden}
	ErrUnauthorized           = &AppError{Code: "UNAUTHORIZED", Message: "Unauthorized", Status: http.StatusUnauthorized}
	ErrNotFound               = &AppError{Code: "NOT_FOUND", Message: "Resource not found", Status: http.StatusNotFound}
	ErrConflict               = &AppError{Code: "CONFLICT", Message: "Resource already exists", Status: http.StatusConflict}
)

// AsAppError unwraps err to its AppError, if it carries one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
