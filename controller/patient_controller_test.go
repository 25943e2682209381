// controller/patient_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	tmock "github.com/stretchr/testify/mock"

	"github.com/pingwise/clinic-api/controller"
	pw_errors "github.com/pingwise/clinic-api/errors"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/test/mock"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestPatientController(t *testing.T) {
	logger.InitLogger("../logging")
	defer logger.Sync()

	mockPatientService := new(mock.MockPatientService)
	patientController := controller.NewPatientController(mockPatientService)
	router := setupRouter()
	api := router.Group("/api")
	patientController.RegisterRoutes(api)

	t.Run("CreatePatient_Success", func(t *testing.T) {
		mockPatientService.On("CreatePatient", tmock.Anything, tmock.Anything, tmock.Anything).
			Return(&model.Patient{ID: "p1", Name: "Jordan Li"}, nil).Once()

		body := strings.NewReader(`{"name":"Jordan Li","email":"jordan@example.com"}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/patients", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var envelope struct {
			Success bool          `json:"success"`
			Data    model.Patient `json:"data"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.True(t, envelope.Success)
		assert.Equal(t, "p1", envelope.Data.ID)
	})

	t.Run("CreatePatient_Failure_Validation", func(t *testing.T) {
		mockPatientService.On("CreatePatient", tmock.Anything, tmock.Anything, tmock.Anything).
			Return(nil, pw_errors.ErrInvalidPatientData).Once()

		body := strings.NewReader(`{"name":""}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/patients", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetPatient_Failure_NotFound", func(t *testing.T) {
		mockPatientService.On("GetPatient", tmock.Anything, "missing").
			Return(nil, pw_errors.ErrPatientNotFound).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/patients/missing", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var envelope struct {
			Success bool `json:"success"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
		assert.False(t, envelope.Success)
	})

	t.Run("DeletePatient_Failure_HasAppointments", func(t *testing.T) {
		mockPatientService.On("DeletePatient", tmock.Anything, "p1", tmock.Anything).
			Return(pw_errors.ErrPatientHasAppointments).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/patients/p1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Cannot delete patient with existing appointments")
	})

	t.Run("DeletePatient_Success", func(t *testing.T) {
		mockPatientService.On("DeletePatient", tmock.Anything, "p2", tmock.Anything).
			Return(nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/patients/p2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "deleted successfully")
	})

	t.Run("ListPatients_Success", func(t *testing.T) {
		mockPatientService.On("ListPatients", tmock.Anything, tmock.Anything, tmock.Anything).
			Return([]*model.Patient{{ID: "p1"}, {ID: "p2"}}, nil).Once()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/patients", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	mockPatientService.AssertExpectations(t)
}
