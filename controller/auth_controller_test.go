// controller/auth_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/pingwise/clinic-api/controller"
	pw_errors "github.com/pingwise/clinic-api/errors"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/test/mock"
)

func TestAuthController(t *testing.T) {
	logger.InitLogger("../logging")
	defer logger.Sync()

	mockAuthService := new(mock.MockAuthService)
	authController := controller.NewAuthController(mockAuthService)
	router := setupRouter()
	api := router.Group("/api")
	authController.RegisterRoutes(api)

	t.Run("Register_Success", func(t *testing.T) {
		mockAuthService.On("Register", tmock.Anything, tmock.Anything).
			Return(&model.AuthResult{Token: "tok", User: &model.User{ID: "u1", Email: "a@x.com"}}, nil).Once()

		body := strings.NewReader(`{"name":"A","email":"a@x.com","password":"abcdef"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/auth/register", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"token":"tok"`)
	})

	t.Run("Register_Failure_DuplicateEmail", func(t *testing.T) {
		mockAuthService.On("Register", tmock.Anything, tmock.Anything).
			Return(nil, pw_errors.ErrUserConflict).Once()

		body := strings.NewReader(`{"name":"A","email":"a@x.com","password":"abcdef"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/auth/register", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "User already exists with this email")
	})

	t.Run("Register_Failure_ShortPassword", func(t *testing.T) {
		mockAuthService.On("Register", tmock.Anything, tmock.Anything).
			Return(nil, pw_errors.ErrPasswordTooShort).Once()

		body := strings.NewReader(`{"name":"A","email":"a@x.com","password":"abc"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/auth/register", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Login_Failure_InvalidCredentials", func(t *testing.T) {
		mockAuthService.On("Login", tmock.Anything, tmock.Anything).
			Return(nil, pw_errors.ErrInvalidCredentials).Once()

		body := strings.NewReader(`{"email":"a@x.com","password":"wrong"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/auth/login", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Login_Failure_GatewayTimeout", func(t *testing.T) {
		mockAuthService.On("Login", tmock.Anything, tmock.Anything).
			Return(nil, pw_errors.ErrGatewayTimeout).Once()

		body := strings.NewReader(`{"email":"a@x.com","password":"abcdef"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/auth/login", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})

	t.Run("Login_Failure_GatewayUnavailable", func(t *testing.T) {
		mockAuthService.On("Login", tmock.Anything, tmock.Anything).
			Return(nil, pw_errors.ErrGatewayUnavailable).Once()

		body := strings.NewReader(`{"email":"a@x.com","password":"abcdef"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/auth/login", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("Login_Success", func(t *testing.T) {
		mockAuthService.On("Login", tmock.Anything, tmock.Anything).
			Return(&model.AuthResult{Token: "tok", User: &model.User{ID: "u1"}}, nil).Once()

		body := strings.NewReader(`{"email":"a@x.com","password":"abcdef"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/auth/login", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	mockAuthService.AssertExpectations(t)
}
