package receiving

import (
	"fmt"
	"net/http"
)

// Kind classifies a request failure. The HTTP mapping happens only at the
// API boundary.
type Kind int

const (
	KindValidation Kind = iota
	KindAuth
	KindInternal
)

// Error is a classified request failure with a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// HTTPStatus maps the error kind to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindAuth:
		return http.StatusUnauthorized
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func ValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func AuthError(message string) *Error {
	return &Error{Kind: KindAuth, Message: message}
}

func InternalError(err error) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf("Internal server error: %v", err)}
}
