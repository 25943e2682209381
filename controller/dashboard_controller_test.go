// controller/dashboard_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/pingwise/clinic-api/controller"
	pw_errors "github.com/pingwise/clinic-api/errors"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/test/mock"
)

func TestDashboardController(t *testing.T) {
	logger.InitLogger("../logging")
	defer logger.Sync()

	mockDashboardService := new(mock.MockDashboardService)
	dashboardController := controller.NewDashboardController(mockDashboardService)
	router := setupRouter()
	api := router.Group("/api")
	dashboardController.RegisterRoutes(api)

	wallet := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/dashboard/wallet", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("WalletBalance_Success", func(t *testing.T) {
		mockDashboardService.On("WalletBalance", tmock.Anything, "some-token").
			Return(&model.WalletBalance{BalanceCents: 125000, Currency: "EUR"}, nil).Once()

		w := wallet()
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "125000")
	})

	t.Run("WalletBalance_Failure_RejectedToken", func(t *testing.T) {
		mockDashboardService.On("WalletBalance", tmock.Anything, "some-token").
			Return(nil, pw_errors.ErrUnauthorized).Once()

		w := wallet()
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("WalletBalance_Failure_Timeout", func(t *testing.T) {
		mockDashboardService.On("WalletBalance", tmock.Anything, "some-token").
			Return(nil, pw_errors.ErrGatewayTimeout).Once()

		w := wallet()
		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})

	t.Run("WalletBalance_Failure_Unavailable", func(t *testing.T) {
		mockDashboardService.On("WalletBalance", tmock.Anything, "some-token").
			Return(nil, pw_errors.ErrGatewayUnavailable).Once()

		w := wallet()
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("GetStats_Success", func(t *testing.T) {
		mockDashboardService.On("GetStats", tmock.Anything).
			Return(&model.DashboardStats{PatientCount: 12}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/dashboard/stats", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	mockDashboardService.AssertExpectations(t)
}
