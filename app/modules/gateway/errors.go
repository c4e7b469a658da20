package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies a failed remote call.
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindTransient      Kind = "transient"
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
)

var (
	ErrUnauthorized = errors.New("not authenticated")
	ErrForbidden    = errors.New("not authorized")
	ErrTransient    = errors.New("remote temporarily unavailable")
	ErrValidation   = errors.New("request rejected")
	ErrNotFound     = errors.New("not found")
)

// Error is the uniform failure returned by every gateway operation. Error()
// yields the server's message so stores can surface it verbatim.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed (%s)", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case KindAuthentication:
		return ErrUnauthorized
	case KindAuthorization:
		return ErrForbidden
	case KindTransient:
		return ErrTransient
	case KindValidation:
		return ErrValidation
	case KindNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// KindFromStatus maps an HTTP status to an error kind.
func KindFromStatus(status int) Kind {
	switch {
	case status == 401:
		return KindAuthentication
	case status == 403:
		return KindAuthorization
	case status == 404:
		return KindNotFound
	case status == 408 || status == 429 || status >= 500:
		return KindTransient
	default:
		return KindValidation
	}
}

// NewError builds an Error from a response status and server message.
func NewError(op string, status int, message string) *Error {
	return &Error{Op: op, Kind: KindFromStatus(status), Status: status, Message: message}
}

// Transient wraps a transport failure or timeout.
func Transient(op string, err error) *Error {
	return &Error{Op: op, Kind: KindTransient, Err: err}
}

// KindOf returns the kind of a gateway error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind, true
	}
	return "", false
}

// IsAuthFailure reports whether err means the credential was rejected or lacks the role.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}
