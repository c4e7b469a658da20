// Package httpclient implements the gateway contract over the portal's REST API.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/Black-And-White-Club/hackathon-portal/app/modules/gateway"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability"
	"github.com/Black-And-White-Club/hackathon-portal/app/observability/attr"
	"github.com/Black-And-White-Club/hackathon-portal/internal/kvstore"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	// DefaultCookieName is the cookie the portal API sets on login.
	DefaultCookieName = "token"
	// RequestIDHeader correlates client logs with server logs.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 8 << 20
)

// Config holds the connection settings for the remote API.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	CookieName        string
	RequestsPerSecond float64
	Burst             int
}

// Client is the HTTP gateway. It is safe for concurrent use.
type Client struct {
	base       *url.URL
	cookieName string

	public *http.Client
	authed *http.Client

	limiter *rate.Limiter
	creds   *credentials

	logger  *slog.Logger
	tracer  trace.Tracer
	metrics observability.GatewayMetrics

	hookMu         sync.RWMutex
	onUnauthorized func(ctx context.Context)
}

// NewClient builds a gateway client. The credential is restored from store by
// LoadCredentials, not here.
func NewClient(
	cfg Config,
	store kvstore.Store,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics observability.GatewayMetrics,
) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api base url is required")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api base url: %w", err)
	}
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if logger == nil {
		logger = observability.NopLogger()
	}
	if tracer == nil {
		tracer = observability.NoopTracer()
	}
	if metrics == nil {
		metrics = observability.NoOpMetrics{}
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}
	creds := newCredentials(jar, base, cfg.CookieName, store)

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := max(cfg.Burst, 1)

	return &Client{
		base:       base,
		cookieName: cfg.CookieName,
		public: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		authed: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
			Transport: &oauth2.Transport{
				Source: creds,
				Base:   http.DefaultTransport,
			},
		},
		limiter: rate.NewLimiter(limit, burst),
		creds:   creds,
		logger:  logger,
		tracer:  tracer,
		metrics: metrics,
	}, nil
}

// OnUnauthorized registers the hook run whenever the server rejects the
// credential with a 401. The hook runs before the error is returned.
func (c *Client) OnUnauthorized(fn func(ctx context.Context)) {
	c.hookMu.Lock()
	defer c.hookMu.Unlock()
	c.onUnauthorized = fn
}

// LoadCredentials restores a previously persisted credential into the jar.
func (c *Client) LoadCredentials(ctx context.Context) error {
	return c.creds.load(ctx)
}

func (c *Client) Auth() gateway.AuthAPI     { return authAPI{c} }
func (c *Client) Admin() gateway.AdminAPI   { return adminAPI{c} }
func (c *Client) Team() gateway.TeamAPI     { return teamAPI{c} }
func (c *Client) Public() gateway.PublicAPI { return publicAPI{c} }

func (c *Client) ClearCredentials(ctx context.Context) error {
	return c.creds.clear(ctx)
}

func (c *Client) HasCredential() bool {
	return c.creds.valid(time.Now())
}

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

type request struct {
	op     string
	method string
	path   string

	// body is JSON encoded when set; form takes precedence.
	body any
	form *multipartForm

	// authenticated requests need a credential and go through the oauth2 transport.
	authenticated bool
	// skipUnauthorizedHook is set for login, where a 401 means bad credentials.
	skipUnauthorizedHook bool
}

func (c *Client) do(ctx context.Context, req request, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, req.op, trace.WithAttributes(
		attribute.String("http.method", req.method),
		attribute.String("http.route", req.path),
	))
	defer span.End()

	start := time.Now()
	status := 0
	defer func() {
		c.metrics.RecordRequest(ctx, req.op, status, time.Since(start))
		span.SetAttributes(attribute.Int("http.status_code", status))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	if req.authenticated && !c.HasCredential() {
		return &gateway.Error{Op: req.op, Kind: gateway.KindAuthentication, Message: "Not logged in"}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return gateway.Transient(req.op, err)
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", req.op, err)
	}

	client := c.public
	if req.authenticated {
		client = c.authed
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		if errors.Is(err, errNoCredential) {
			return &gateway.Error{Op: req.op, Kind: gateway.KindAuthentication, Message: "Not logged in", Err: err}
		}
		c.logger.WarnContext(ctx, "Remote call failed",
			attr.String("operation", req.op),
			attr.RequestID(ctx),
			attr.Error(err),
		)
		return gateway.Transient(req.op, err)
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return gateway.Transient(req.op, fmt.Errorf("read response: %w", err))
	}

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if jsonErr := json.Unmarshal(raw, &env); jsonErr != nil && status < 400 {
			return fmt.Errorf("%s: decode response: %w", req.op, jsonErr)
		}
	}

	if status >= 400 {
		gwErr := gateway.NewError(req.op, status, serverMessage(env, status))
		c.logger.InfoContext(ctx, "Remote call rejected",
			attr.String("operation", req.op),
			attr.Int("status", status),
			attr.String("message", gwErr.Message),
			attr.RequestID(ctx),
		)
		if status == http.StatusUnauthorized && !req.skipUnauthorizedHook {
			c.fireUnauthorized(ctx)
		}
		return gwErr
	}

	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s: decode data: %w", req.op, err)
		}
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, req request) (*http.Request, error) {
	target := c.base.JoinPath(req.path)

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.form != nil:
		buf, ct, err := req.form.encode()
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case req.body != nil:
		payload, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		body, contentType = bytes.NewReader(payload), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target.String(), body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	httpReq.Header.Set("Accept", "application/json")

	requestID, ok := attr.RequestIDFrom(ctx)
	if !ok {
		requestID = uuid.NewString()
	}
	httpReq.Header.Set(RequestIDHeader, requestID)
	return httpReq, nil
}

func (c *Client) fireUnauthorized(ctx context.Context) {
	c.hookMu.RLock()
	hook := c.onUnauthorized
	c.hookMu.RUnlock()
	if hook != nil {
		hook(ctx)
	}
}

func serverMessage(env envelope, status int) string {
	switch {
	case env.Message != "":
		return env.Message
	case env.Error != "":
		return env.Error
	default:
		return http.StatusText(status)
	}
}

// adoptLoginToken persists the credential set by login, falling back to the token in the body
// when the server did not set a cookie.
func (c *Client) adoptLoginToken(ctx context.Context, resp *models.LoginResponse) error {
	if c.creds.fromJar() != "" {
		return c.creds.persist(ctx)
	}
	if resp.Token == "" {
		return &gateway.Error{Op: "auth.Login", Kind: gateway.KindAuthentication, Message: "Login response carried no credential"}
	}
	return c.creds.set(ctx, resp.Token)
}

var _ gateway.Gateway = (*Client)(nil)
