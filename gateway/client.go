// gateway/client.go

// Package gateway talks to the hosted CRM service that supplies login,
// health and reporting data. Requests go to the CRM's public endpoint
// first; when that fails at the network level the client durably switches
// to the same-origin proxy route and stays there for its lifetime.
package gateway

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
	"resty.dev/v3"

	pw_errors "github.com/pingwise/clinic-api/errors"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
)

type Client struct {
	direct *resty.Client
	proxy  *resty.Client

	// useDirect flips to false once and never back. Not a circuit
	// breaker: there is no recovery probe.
	useDirect atomic.Bool

	loginTimeout  time.Duration
	healthTimeout time.Duration
}

type Config struct {
	BaseURL       string
	ProxyURL      string
	APIKey        string
	LoginTimeout  time.Duration
	HealthTimeout time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.LoginTimeout == 0 {
		cfg.LoginTimeout = 30 * time.Second
	}
	if cfg.HealthTimeout == 0 {
		cfg.HealthTimeout = 5 * time.Second
	}

	newResty := func(baseURL string) *resty.Client {
		c := resty.New().SetBaseURL(baseURL)
		if cfg.APIKey != "" {
			c.SetHeader("X-Api-Key", cfg.APIKey)
		}
		return c
	}

	client := &Client{
		direct:        newResty(cfg.BaseURL),
		proxy:         newResty(cfg.ProxyURL),
		loginTimeout:  cfg.LoginTimeout,
		healthTimeout: cfg.HealthTimeout,
	}
	client.useDirect.Store(true)
	return client
}

// execute runs fn against the direct endpoint, downgrading to the proxy
// permanently on a network-level failure and retrying the same logical
// call once. HTTP error responses are not failures here; resty surfaces
// them on the response, and they never flip the mode.
func (c *Client) execute(fn func(*resty.Client) (*resty.Response, error)) (*resty.Response, error) {
	if !c.useDirect.Load() {
		return fn(c.proxy)
	}

	resp, err := fn(c.direct)
	if err == nil {
		return resp, nil
	}

	if !isNetworkFailure(err) {
		return nil, err
	}

	if c.useDirect.CompareAndSwap(true, false) {
		logger.Warn("CRM direct endpoint unreachable, switching to proxy route for the remainder of this client's lifetime",
			zap.Error(err))
	}
	return fn(c.proxy)
}

// Network-level failure signatures. A transient blip and a genuine
// cross-origin misconfiguration look identical here and both cause the
// permanent downgrade.
var networkFailureSignatures = []string{
	"cors",
	"cross-origin",
	"network error",
	"connection refused",
	"connection reset",
	"no such host",
	"unexpected eof",
	"eof",
	"broken pipe",
	"i/o timeout",
}

func isNetworkFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range networkFailureSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}

// UsingProxy reports whether the client has downgraded to the proxy route.
func (c *Client) UsingProxy() bool {
	return !c.useDirect.Load()
}

// Login authenticates against the CRM gateway. Bounded by a fixed timeout;
// a timeout maps to ErrGatewayTimeout and a refused connection to
// ErrGatewayUnavailable so the handler can answer 504 vs 503.
func (c *Client) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.loginTimeout)
	defer cancel()

	var out crmLoginResponse
	resp, err := c.execute(func(rc *resty.Client) (*resty.Response, error) {
		return rc.R().
			SetContext(ctx).
			SetBody(map[string]string{"email": email, "password": password}).
			SetResult(&out).
			Post("/v1/auth/login")
	})
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if resp.IsError() {
		if resp.StatusCode() == 401 {
			return nil, pw_errors.ErrInvalidCredentials
		}
		logger.Error("CRM login returned error status",
			zap.Int("status", resp.StatusCode()))
		return nil, pw_errors.ErrGatewayRequest
	}
	return out.toAuthResult(), nil
}

// Health checks the CRM gateway, bounded by a short timeout.
func (c *Client) Health(ctx context.Context) (*model.GatewayHealth, error) {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	var out crmHealthResponse
	resp, err := c.execute(func(rc *resty.Client) (*resty.Response, error) {
		return rc.R().
			SetContext(ctx).
			SetResult(&out).
			Get("/v1/health")
	})
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if resp.IsError() {
		return nil, pw_errors.ErrGatewayRequest
	}
	return out.toGatewayHealth(), nil
}

// Reports fetches CRM reporting rows on behalf of the given bearer token.
func (c *Client) Reports(ctx context.Context, token string) ([]*model.Report, error) {
	var out crmReportsResponse
	resp, err := c.execute(func(rc *resty.Client) (*resty.Response, error) {
		return rc.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&out).
			Get("/v1/reports")
	})
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if resp.IsError() {
		if resp.StatusCode() == 401 {
			return nil, pw_errors.ErrUnauthorized
		}
		return nil, pw_errors.ErrGatewayRequest
	}
	return out.toReports(), nil
}

// WalletBalance fetches the clinic's CRM wallet balance.
func (c *Client) WalletBalance(ctx context.Context, token string) (*model.WalletBalance, error) {
	var out crmWalletResponse
	resp, err := c.execute(func(rc *resty.Client) (*resty.Response, error) {
		return rc.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&out).
			Get("/v1/wallet/balance")
	})
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if resp.IsError() {
		if resp.StatusCode() == 401 {
			return nil, pw_errors.ErrUnauthorized
		}
		return nil, pw_errors.ErrGatewayRequest
	}
	return out.toWalletBalance(), nil
}

func classifyTransportError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return pw_errors.ErrGatewayTimeout
	case errors.Is(err, syscall.ECONNREFUSED):
		return pw_errors.ErrGatewayUnavailable
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return pw_errors.ErrGatewayTimeout
	}
	if isNetworkFailure(err) {
		return pw_errors.ErrGatewayUnavailable
	}
	return pw_errors.ErrGatewayRequest
}
