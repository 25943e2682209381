// controller/report_controller_test.go
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

func TestReportController(t *testing.T) {
	logger.InitLogger("../logging")
	defer logger.Sync()

	mockReportService := new(mock.MockReportService)
	reportController := controller.NewReportController(mockReportService)
	router := setupRouter()
	api := router.Group("/api")
	reportController.RegisterRoutes(api)
	reportController.RegisterPublicRoutes(api)

	listReports := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/reports", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("ListReports_Success", func(t *testing.T) {
		mockReportService.On("ListReports", tmock.Anything, "some-token").
			Return([]*model.Report{{ID: "r1", Title: "Monthly revenue"}}, nil).Once()

		w := listReports()
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Monthly revenue")
	})

	t.Run("ListReports_Failure_RejectedToken", func(t *testing.T) {
		mockReportService.On("ListReports", tmock.Anything, "some-token").
			Return(nil, pw_errors.ErrUnauthorized).Once()

		w := listReports()
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ListReports_Failure_Timeout", func(t *testing.T) {
		mockReportService.On("ListReports", tmock.Anything, "some-token").
			Return(nil, pw_errors.ErrGatewayTimeout).Once()

		w := listReports()
		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})

	t.Run("ListReports_Failure_Unavailable", func(t *testing.T) {
		mockReportService.On("ListReports", tmock.Anything, "some-token").
			Return(nil, pw_errors.ErrGatewayUnavailable).Once()

		w := listReports()
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("CrmHealth_Success", func(t *testing.T) {
		mockReportService.On("GatewayHealth", tmock.Anything).
			Return(&model.GatewayHealth{Status: "ok"}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/health/crm", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ok")
	})

	mockReportService.AssertExpectations(t)
}
