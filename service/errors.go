package service

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRepositoryNotSet = errors.New("criteria repository not set")
	ErrCompleterNotSet  = errors.New("completion client not set")
	ErrForbidden        = errors.New("operation requires admin role")
	ErrNoSelection      = errors.New("no selection set")
	ErrSetNotFound      = errors.New("criteria set not found")
)

// ValidationError is an input error with the HTTP status and the Dutch
// message shown to the user.
type ValidationError struct {
	Status int
	Code   string
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

func tooLarge(code, format string, args ...any) *ValidationError {
	return &ValidationError{Status: http.StatusRequestEntityTooLarge, Code: code, Detail: fmt.Sprintf(format, args...)}
}

func unprocessable(code, format string, args ...any) *ValidationError {
	return &ValidationError{Status: http.StatusUnprocessableEntity, Code: code, Detail: fmt.Sprintf(format, args...)}
}

func badRequest(code, detail string) *ValidationError {
	return &ValidationError{Status: http.StatusBadRequest, Code: code, Detail: detail}
}

// UpstreamError wraps a completion failure of a single-shot endpoint.
type UpstreamError struct {
	Detail string
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Err == nil {
		return e.Detail
	}
	return e.Detail + ": " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
