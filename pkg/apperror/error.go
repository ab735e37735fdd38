package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies an AppError independently of the transport status code.
type Kind string

const (
	KindNotFound        Kind = "not_found"
	KindValidation      Kind = "validation_error"
	KindInvalidStatus   Kind = "invalid_status"
	KindUpstream        Kind = "upstream_failure"
	KindUnauthorized    Kind = "unauthorized"
	KindTooManyRequests Kind = "rate_limited"
	KindInternal        Kind = "internal"
)

type AppError struct {
	Code    int      `json:"code"`
	Kind    Kind     `json:"kind"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

// Validation reports bad input. Details carries per-field messages when available.
func Validation(message string, details ...string) *AppError {
	e := New(http.StatusBadRequest, KindValidation, message, nil)
	e.Details = details
	return e
}

// InvalidStatus is a validation failure for a status value outside the lifecycle enumeration.
func InvalidStatus(message string, err error) *AppError {
	return New(http.StatusBadRequest, KindInvalidStatus, message, err)
}

// Upstream wraps a failure of a store or search collaborator.
func Upstream(message string, err error) *AppError {
	return New(http.StatusBadGateway, KindUpstream, message, err)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, KindTooManyRequests, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// KindOf returns the Kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsValidation reports whether err is a validation failure of any flavor.
func IsValidation(err error) bool {
	k := KindOf(err)
	return err != nil && (k == KindValidation || k == KindInvalidStatus)
}
