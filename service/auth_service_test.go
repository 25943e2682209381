// service/auth_service_test.go
package service_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pingwise/clinic-api/dao"
	pw_errors "github.com/pingwise/clinic-api/errors"
	"github.com/pingwise/clinic-api/gateway"
	"github.com/pingwise/clinic-api/middleware"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/service"
	"github.com/pingwise/clinic-api/util"
)

func newAuthService(store *dao.MockStore) service.IAuthService {
	return service.NewAuthService(store, nil, util.NewValidationUtil(), nil)
}

func TestAuthServiceRegister(t *testing.T) {
	store := dao.NewMockStore()
	svc := newAuthService(store)
	ctx := context.Background()

	result, err := svc.Register(ctx, model.RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "abcdef",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "a@x.com", result.User.Email)
	assert.NotEqual(t, "abcdef", result.User.PasswordHash, "password must never be stored in clear")
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	store := dao.NewMockStore()
	svc := newAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, model.RegisterRequest{Name: "A", Email: "a@x.com", Password: "abcdef"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, model.RegisterRequest{Name: "B", Email: "a@x.com", Password: "ghijkl"})
	assert.ErrorIs(t, err, pw_errors.ErrUserConflict)
}

func TestAuthServiceRegisterShortPassword(t *testing.T) {
	svc := newAuthService(dao.NewMockStore())

	_, err := svc.Register(context.Background(), model.RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "abc",
	})
	assert.ErrorIs(t, err, pw_errors.ErrPasswordTooShort)
}

func TestAuthServiceLocalLogin(t *testing.T) {
	store := dao.NewMockStore()
	svc := newAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, model.RegisterRequest{Name: "A", Email: "a@x.com", Password: "abcdef"})
	require.NoError(t, err)

	result, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "abcdef"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, pw_errors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "nobody@x.com", Password: "abcdef"})
	assert.ErrorIs(t, err, pw_errors.ErrInvalidCredentials)
}

// A gateway-verified login must hand back a session token our own bearer
// middleware accepts. The CRM access token is opaque to us and stays
// inside the service.
func TestAuthServiceGatewayLoginIssuesLocalToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"access_token": "crm-opaque-access-token",
			"account": {
				"uid": "crm-user-42",
				"display_name": "Dr. Ada",
				"mail": "ada@clinic.test",
				"access_level": "owner"
			}
		}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := gateway.NewClient(gateway.Config{BaseURL: srv.URL})
	svc := service.NewAuthService(dao.NewMockStore(), client, util.NewValidationUtil(), nil)

	result, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "ada@clinic.test",
		Password: "correct",
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.NotEqual(t, "crm-opaque-access-token", result.Token)

	claims, err := middleware.ParseToken(result.Token)
	require.NoError(t, err, "login token must validate against the bearer middleware")
	assert.Equal(t, "crm-user-42", claims.UserID)
	assert.Equal(t, "ada@clinic.test", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}
