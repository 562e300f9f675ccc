package errors

import (
	"net/http"
)

// Kind classifies an error for callers that need to branch on it
// (re-prompt the form, redirect to login, render 404/403).
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindAuthRequired
	KindPermission
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	Kind       Kind
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

// Is matches any error of the same kind, so errors.Is(err, ErrNotFound)
// works regardless of the message.
func (e *ErrorWithStatusCode) Is(target error) bool {
	t, ok := target.(*ErrorWithStatusCode)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Kind != KindInternal
}

var (
	ErrValidation   = &ErrorWithStatusCode{Message: "validation error", StatusCode: http.StatusBadRequest, Kind: KindValidation}
	ErrNotFound     = &ErrorWithStatusCode{Message: "not found", StatusCode: http.StatusNotFound, Kind: KindNotFound}
	ErrAuthRequired = &ErrorWithStatusCode{Message: "authentication required", StatusCode: http.StatusUnauthorized, Kind: KindAuthRequired}
	ErrPermission   = &ErrorWithStatusCode{Message: "permission denied", StatusCode: http.StatusForbidden, Kind: KindPermission}
)

func Validation(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusBadRequest, Kind: KindValidation}
}

func NotFound(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusNotFound, Kind: KindNotFound}
}

func AuthRequired() error {
	return &ErrorWithStatusCode{Message: "Please sign-in", StatusCode: http.StatusUnauthorized, Kind: KindAuthRequired}
}

func Permission(message string) error {
	return &ErrorWithStatusCode{Message: message, StatusCode: http.StatusForbidden, Kind: KindPermission}
}
