package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/internal/kvstore"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// CredentialKey is the key/value entry holding the persisted API credential.
const CredentialKey = "credentials"

var errNoCredential = errors.New("no credential held")

// storedCredential is the persisted form of the cookie.
type storedCredential struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// credentials keeps the API token in the cookie jar and mirrors it into the
// key/value store so it survives restarts. It also serves as the oauth2
// TokenSource for authenticated requests.
type credentials struct {
	mu    sync.Mutex
	jar   *cookiejar.Jar
	base  *url.URL
	name  string
	store kvstore.Store
}

func newCredentials(jar *cookiejar.Jar, base *url.URL, name string, store kvstore.Store) *credentials {
	return &credentials{jar: jar, base: base, name: name, store: store}
}

// Token implements oauth2.TokenSource.
func (c *credentials) Token() (*oauth2.Token, error) {
	token := c.fromJar()
	if token == "" {
		return nil, errNoCredential
	}
	return &oauth2.Token{
		AccessToken: token,
		TokenType:   "Bearer",
		Expiry:      tokenExpiry(token),
	}, nil
}

func (c *credentials) fromJar() string {
	for _, cookie := range c.jar.Cookies(c.base) {
		if cookie.Name == c.name {
			return cookie.Value
		}
	}
	return ""
}

// valid reports whether a credential is held and, when it is a JWT with an
// expiry, whether that expiry is still ahead of now.
func (c *credentials) valid(now time.Time) bool {
	token := c.fromJar()
	if token == "" {
		return false
	}
	exp := tokenExpiry(token)
	return exp.IsZero() || exp.After(now)
}

func (c *credentials) set(ctx context.Context, token string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jar.SetCookies(c.base, []*http.Cookie{{Name: c.name, Value: token, Path: "/"}})
	return c.persistLocked(ctx, token)
}

func (c *credentials) persist(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persistLocked(ctx, c.fromJar())
}

func (c *credentials) persistLocked(ctx context.Context, token string) error {
	if c.store == nil {
		return nil
	}
	if token == "" {
		return c.store.Delete(ctx, CredentialKey)
	}
	raw, err := json.Marshal(storedCredential{Token: token, ExpiresAt: tokenExpiry(token)})
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	if err := c.store.Put(ctx, CredentialKey, raw); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}
	return nil
}

func (c *credentials) load(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	raw, err := c.store.Get(ctx, CredentialKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}

	var stored storedCredential
	if err := json.Unmarshal(raw, &stored); err != nil {
		// Unreadable state is treated as no credential.
		return c.clear(ctx)
	}
	if stored.Token == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.jar.SetCookies(c.base, []*http.Cookie{{Name: c.name, Value: stored.Token, Path: "/"}})
	return nil
}

func (c *credentials) clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jar.SetCookies(c.base, []*http.Cookie{{Name: c.name, Value: "", Path: "/", MaxAge: -1}})
	if c.store == nil {
		return nil
	}
	if err := c.store.Delete(ctx, CredentialKey); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// tokenExpiry reads the exp claim without verifying the signature; the client
// never holds the signing key. Opaque tokens report no expiry.
func tokenExpiry(token string) time.Time {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
