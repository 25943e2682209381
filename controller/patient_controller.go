// controller/patient_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	pw_errors "github.com/pingwise/clinic-api/errors"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/service"
	"github.com/pingwise/clinic-api/util"
	helper_util "github.com/pingwise/clinic-api/util/helper"
)

type PatientController struct {
	patientService service.IPatientService
}

func NewPatientController(patientService service.IPatientService) *PatientController {
	return &PatientController{
		patientService: patientService,
	}
}

// RegisterRoutes registers the patient API routes
func (pc *PatientController) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", pc.CreatePatient)
		patients.PUT("/:id", pc.UpdatePatient)
		patients.DELETE("/:id", pc.DeletePatient)
		patients.GET("/:id", pc.GetPatient)
		patients.GET("", pc.ListPatients)
		patients.GET("/search", pc.SearchPatients)
	}
}

// CreatePatient endpoint
func (pc *PatientController) CreatePatient(c *gin.Context) {
	var patient model.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid patient data", pw_errors.ErrInvalidPatientData)
		return
	}
	creatorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", pw_errors.ErrUnauthorized)
		return
	}

	createdPatient, err := pc.patientService.CreatePatient(c, patient, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, pw_errors.ErrInvalidPatientData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, pw_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create patient", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusCreated, createdPatient)
}

// UpdatePatient endpoint
func (pc *PatientController) UpdatePatient(c *gin.Context) {
	patientID := c.Param("id")
	var patient model.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid patient data", err)
		return
	}
	patient.ID = patientID
	updaterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedPatient, err := pc.patientService.UpdatePatient(c, patient, updaterID)
	if err != nil {
		switch {
		case errors.Is(err, pw_errors.ErrPatientNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Patient not found", err)
		case errors.Is(err, pw_errors.ErrInvalidPatientData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update patient", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusOK, updatedPatient)
}

// DeletePatient endpoint
func (pc *PatientController) DeletePatient(c *gin.Context) {
	patientID := c.Param("id")
	deleterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := pc.patientService.DeletePatient(c, patientID, deleterID); err != nil {
		switch {
		case errors.Is(err, pw_errors.ErrPatientHasAppointments):
			util.RespondWithError(c, http.StatusBadRequest, "Cannot delete patient with existing appointments", err)
		case errors.Is(err, pw_errors.ErrPatientNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Patient not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete patient", err)
		}
		return
	}

	util.RespondWithMessage(c, http.StatusOK, "Patient deleted successfully")
}

// GetPatient endpoint
func (pc *PatientController) GetPatient(c *gin.Context) {
	patientID := c.Param("id")

	patient, err := pc.patientService.GetPatient(c, patientID)
	if err != nil {
		if errors.Is(err, pw_errors.ErrPatientNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Patient not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve patient", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusOK, patient)
}

// SearchPatients endpoint
func (pc *PatientController) SearchPatients(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	criteria := model.PatientSearchCriteria{
		Name:   c.Query("query"),
		Email:  c.Query("email"),
		Phone:  c.Query("phone"),
		Gender: c.Query("gender"),
		Limit:  limit,
		Offset: offset,
	}
	if criteria.Name == "" && criteria.Email == "" && criteria.Phone == "" && criteria.Gender == "" {
		util.RespondWithError(c, http.StatusBadRequest, "At least one search parameter is required", nil)
		return
	}

	patients, err := pc.patientService.SearchPatients(c, criteria)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to search patients", err)
		return
	}

	util.RespondWithData(c, http.StatusOK, patients)
}

// ListPatients endpoint
func (pc *PatientController) ListPatients(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	patients, err := pc.patientService.ListPatients(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list patients", err)
		return
	}

	util.RespondWithData(c, http.StatusOK, patients)
}
