package sessionservice

import (
	"context"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	sessiondomain "github.com/Black-And-White-Club/hackathon-portal/app/modules/session/domain"
)

// CacheClearer is implemented by every store holding role-scoped data. Clear is
// called whenever the identity goes away.
type CacheClearer interface {
	Clear(ctx context.Context)
}

// Service is the session API consumed by the resource store and the CLI.
type Service interface {
	InitAuth(ctx context.Context) sessiondomain.State
	SetUser(ctx context.Context, identity models.Identity) error
	Login(ctx context.Context, role models.Role, username, password string) (sessiondomain.State, error)
	Logout(ctx context.Context) error
	ForceLogout(ctx context.Context)
	State() sessiondomain.State
	Role() (models.Role, bool)
	Ready() <-chan struct{}
	RegisterCacheClearer(c CacheClearer)
}
