package sessionservice

import "errors"

var (
	// ErrInvalidIdentity is returned by SetUser for an identity without an id or a known role.
	ErrInvalidIdentity = errors.New("invalid identity")
	// ErrEmptyLoginResponse is returned when the gateway accepted a login but sent nothing back.
	ErrEmptyLoginResponse = errors.New("login response was empty")
)
