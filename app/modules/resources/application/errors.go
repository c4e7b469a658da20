package resourcestore

import (
	"errors"

	"github.com/Black-And-White-Club/hackathon-portal/app/modules/gateway"
)

var (
	// ErrNotAuthenticated is returned by role-scoped mutations while nobody is logged in.
	ErrNotAuthenticated = errors.New("not logged in")
	// ErrRoleNotPermitted is returned when the current role may not attempt the action.
	ErrRoleNotPermitted = errors.New("action not permitted for this role")
	// ErrTransitionNotAllowed is returned when the cached task cannot move to the requested status.
	ErrTransitionNotAllowed = errors.New("task status transition not allowed")
)

// displayMessage is the text recorded in Cache.Error. Server messages are kept verbatim.
func displayMessage(err error) string {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	return err.Error()
}

// ErrEmptyResponse is returned when the server accepted a mutation but returned no entity.
var ErrEmptyResponse = errors.New("server returned no data")
