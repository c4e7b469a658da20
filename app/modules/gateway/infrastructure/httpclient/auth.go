package httpclient

import (
	"context"
	"net/http"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

type authAPI struct{ c *Client }

// Login exchanges user credentials for a session cookie. A 401 here means bad
// credentials and does not fire the unauthorized hook.
func (a authAPI) Login(ctx context.Context, role models.Role, username, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := a.c.do(ctx, request{
		op:                   "auth.Login",
		method:               http.MethodPost,
		path:                 "/api/auth/login",
		body:                 models.LoginRequest{Role: role, Username: username, Password: password},
		skipUnauthorizedHook: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if err := a.c.adoptLoginToken(ctx, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a authAPI) Logout(ctx context.Context) error {
	return a.c.do(ctx, request{
		op:            "auth.Logout",
		method:        http.MethodPost,
		path:          "/api/auth/logout",
		authenticated: true,
	}, nil)
}

// VerifySession fails locally with an authentication error when no credential is held.
func (a authAPI) VerifySession(ctx context.Context) (*models.SessionCheck, error) {
	var check models.SessionCheck
	err := a.c.do(ctx, request{
		op:            "auth.VerifySession",
		method:        http.MethodGet,
		path:          "/api/auth/verify",
		authenticated: true,
	}, &check)
	if err != nil {
		return nil, err
	}
	return &check, nil
}
