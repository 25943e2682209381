// gateway/client_test.go
package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pw_errors "github.com/pingwise/clinic-api/errors"
	"github.com/pingwise/clinic-api/gateway"
	logger "github.com/pingwise/clinic-api/logging"
)

func crmStub(t *testing.T, health string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"state": health, "release": "2.4.1"})
	})
	mux.HandleFunc("/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		w.Header().Set("Content-Type", "application/json")
		if creds["password"] != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "crm-token",
			"account": map[string]string{
				"uid":          "u42",
				"display_name": "Front Desk",
				"mail":         "desk@clinic.example",
				"access_level": "member",
			},
		})
	})
	return httptest.NewServer(mux)
}

// unreachableURL points at a port nothing listens on.
func unreachableURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return url
}

func TestClientDowngradesToProxyOnNetworkFailure(t *testing.T) {
	logger.InitLogger("../logging")
	defer logger.Sync()

	proxy := crmStub(t, "healthy")
	defer proxy.Close()

	client := gateway.NewClient(gateway.Config{
		BaseURL:       unreachableURL(t),
		ProxyURL:      proxy.URL,
		HealthTimeout: 2 * time.Second,
	})

	assert.False(t, client.UsingProxy())

	health, err := client.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, client.UsingProxy(), "client should have switched to the proxy route")

	// Subsequent calls stay on the proxy.
	_, err = client.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, client.UsingProxy())
}

func TestClientKeepsDirectRouteOnHTTPError(t *testing.T) {
	logger.InitLogger("../logging")
	defer logger.Sync()

	direct := crmStub(t, "healthy")
	defer direct.Close()

	client := gateway.NewClient(gateway.Config{
		BaseURL:  direct.URL,
		ProxyURL: unreachableURL(t),
	})

	// 401 is an HTTP-level error, not a transport failure.
	_, err := client.Login(context.Background(), "desk@clinic.example", "wrong")
	assert.ErrorIs(t, err, pw_errors.ErrInvalidCredentials)
	assert.False(t, client.UsingProxy(), "HTTP errors must not trigger the proxy downgrade")
}

func TestClientLoginSuccess(t *testing.T) {
	logger.InitLogger("../logging")
	defer logger.Sync()

	direct := crmStub(t, "healthy")
	defer direct.Close()

	client := gateway.NewClient(gateway.Config{BaseURL: direct.URL, ProxyURL: direct.URL})

	result, err := client.Login(context.Background(), "desk@clinic.example", "correct")
	require.NoError(t, err)
	assert.Equal(t, "crm-token", result.Token)
	assert.Equal(t, "u42", result.User.ID)
	assert.Equal(t, "staff", result.User.Role)
}

func TestClientLoginUnavailableWhenBothRoutesDown(t *testing.T) {
	logger.InitLogger("../logging")
	defer logger.Sync()

	client := gateway.NewClient(gateway.Config{
		BaseURL:      unreachableURL(t),
		ProxyURL:     unreachableURL(t),
		LoginTimeout: 2 * time.Second,
	})

	_, err := client.Login(context.Background(), "desk@clinic.example", "correct")
	assert.ErrorIs(t, err, pw_errors.ErrGatewayUnavailable)
}

func TestClientHealthTimeout(t *testing.T) {
	logger.InitLogger("../logging")
	defer logger.Sync()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]string{"state": "healthy"})
	}))
	defer slow.Close()

	client := gateway.NewClient(gateway.Config{
		BaseURL:       slow.URL,
		ProxyURL:      slow.URL,
		HealthTimeout: 50 * time.Millisecond,
	})

	_, err := client.Health(context.Background())
	assert.ErrorIs(t, err, pw_errors.ErrGatewayTimeout)
}
