// controller/appointment_controller.go
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

type AppointmentController struct {
	appointmentService service.IAppointmentService
}

func NewAppointmentController(appointmentService service.IAppointmentService) *AppointmentController {
	return &AppointmentController{
		appointmentService: appointmentService,
	}
}

// RegisterRoutes registers the appointment API routes
func (ac *AppointmentController) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", ac.CreateAppointment)
		appointments.PUT("/:id", ac.UpdateAppointment)
		appointments.DELETE("/:id", ac.DeleteAppointment)
		appointments.GET("/:id", ac.GetAppointment)
		appointments.GET("", ac.ListAppointments)
	}
}

// CreateAppointment endpoint
func (ac *AppointmentController) CreateAppointment(c *gin.Context) {
	var appointment model.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid appointment data", pw_errors.ErrInvalidAppointmentData)
		return
	}
	creatorID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", pw_errors.ErrUnauthorized)
		return
	}

	createdAppointment, err := ac.appointmentService.CreateAppointment(c, appointment, creatorID)
	if err != nil {
		switch {
		case errors.Is(err, pw_errors.ErrInvalidAppointmentData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create appointment", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusCreated, createdAppointment)
}

// UpdateAppointment endpoint
func (ac *AppointmentController) UpdateAppointment(c *gin.Context) {
	appointmentID := c.Param("id")
	var appointment model.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid appointment data", err)
		return
	}
	appointment.ID = appointmentID
	updaterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedAppointment, err := ac.appointmentService.UpdateAppointment(c, appointment, updaterID)
	if err != nil {
		switch {
		case errors.Is(err, pw_errors.ErrAppointmentNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Appointment not found", err)
		case errors.Is(err, pw_errors.ErrInvalidAppointmentData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update appointment", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusOK, updatedAppointment)
}

// DeleteAppointment endpoint
func (ac *AppointmentController) DeleteAppointment(c *gin.Context) {
	appointmentID := c.Param("id")
	deleterID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := ac.appointmentService.DeleteAppointment(c, appointmentID, deleterID); err != nil {
		if errors.Is(err, pw_errors.ErrAppointmentNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Appointment not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete appointment", err)
		}
		return
	}

	util.RespondWithMessage(c, http.StatusOK, "Appointment deleted successfully")
}

// GetAppointment endpoint
func (ac *AppointmentController) GetAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	appointment, err := ac.appointmentService.GetAppointment(c, appointmentID)
	if err != nil {
		if errors.Is(err, pw_errors.ErrAppointmentNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Appointment not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve appointment", err)
		}
		return
	}

	util.RespondWithData(c, http.StatusOK, appointment)
}

// ListAppointments endpoint. With from/to query parameters (RFC3339) the
// listing is filtered to appointments starting in that range.
func (ac *AppointmentController) ListAppointments(c *gin.Context) {
	if fromParam := c.Query("from"); fromParam != "" {
		from, err := helper_util.ParseTime(fromParam)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp", err)
			return
		}
		to, err := helper_util.ParseTime(c.Query("to"))
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp", err)
			return
		}

		appointments, err := ac.appointmentService.ListAppointmentsBetween(c, from, to)
		if err != nil {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to list appointments", err)
			return
		}
		util.RespondWithData(c, http.StatusOK, appointments)
		return
	}

	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	appointments, err := ac.appointmentService.ListAppointments(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list appointments", err)
		return
	}

	util.RespondWithData(c, http.StatusOK, appointments)
}
