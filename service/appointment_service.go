// service/appointment_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pingwise/clinic-api/audit"
	"github.com/pingwise/clinic-api/dao"
	pw_errors "github.com/pingwise/clinic-api/errors"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/util"
)

// IAppointmentService defines the interface for appointment operations
type IAppointmentService interface {
	CreateAppointment(ctx context.Context, appointment model.Appointment, creatorID string) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, appointment model.Appointment, updaterID string) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID string, deleterID string) error
	GetAppointment(ctx context.Context, appointmentID string) (*model.Appointment, error)
	ListAppointments(ctx context.Context, limit int, offset int) ([]*model.Appointment, error)
	ListAppointmentsBetween(ctx context.Context, from, to time.Time) ([]*model.Appointment, error)
}

// AppointmentService handles business logic for appointment operations
type AppointmentService struct {
	appointmentDAO  dao.IAppointmentDAO
	patientDAO      dao.IPatientDAO
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
	auditService    audit.Service
}

var _ IAppointmentService = &AppointmentService{}

// NewAppointmentService creates a new instance of AppointmentService
func NewAppointmentService(
	appointmentDAO dao.IAppointmentDAO,
	patientDAO dao.IPatientDAO,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
	auditService audit.Service,
) *AppointmentService {
	service := &AppointmentService{
		appointmentDAO:  appointmentDAO,
		patientDAO:      patientDAO,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		auditService:    auditService,
	}

	eventBus.Subscribe("appointment.created", service.handleAppointmentCreated)
	eventBus.Subscribe("appointment.updated", service.handleAppointmentUpdated)

	return service
}

func (s *AppointmentService) handleAppointmentCreated(ctx context.Context, event util.Event) error {
	appointment := event.Payload.(model.Appointment)
	logger.Info("Appointment created event received", zap.String("appointmentID", appointment.ID))

	if err := s.notificationSvc.NotifyAppointmentChange(ctx, "created", appointment); err != nil {
		logger.Warn("Failed to send appointment creation notification", zap.Error(err), zap.String("appointmentID", appointment.ID))
	}

	return nil
}

func (s *AppointmentService) handleAppointmentUpdated(ctx context.Context, event util.Event) error {
	appointment := event.Payload.(model.Appointment)
	logger.Info("Appointment updated event received", zap.String("appointmentID", appointment.ID))

	if err := s.notificationSvc.NotifyAppointmentChange(ctx, "updated", appointment); err != nil {
		logger.Warn("Failed to send appointment update notification", zap.Error(err), zap.String("appointmentID", appointment.ID))
	}

	return nil
}

// CreateAppointment handles the scheduling of a new appointment. The
// referenced patient must exist.
func (s *AppointmentService) CreateAppointment(ctx context.Context, appointment model.Appointment, creatorID string) (*model.Appointment, error) {
	if err := s.validationUtil.ValidateAppointment(appointment); err != nil {
		return nil, fmt.Errorf("%w: %s", pw_errors.ErrInvalidAppointmentData, err)
	}

	if _, err := s.patientDAO.GetPatient(ctx, appointment.PatientID); err != nil {
		if errors.Is(err, pw_errors.ErrPatientNotFound) {
			return nil, fmt.Errorf("%w: patient %s", pw_errors.ErrInvalidAppointmentData, appointment.PatientID)
		}
		return nil, err
	}

	if appointment.Status == "" {
		appointment.Status = model.AppointmentScheduled
	}
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	appointmentID, err := s.appointmentDAO.CreateAppointment(ctx, appointment)
	if err != nil {
		logger.Error("Error creating appointment", zap.Error(err), zap.String("creatorID", creatorID))
		return nil, err
	}

	appointment.ID = appointmentID

	if err := s.cacheService.SetAppointment(ctx, appointment); err != nil {
		logger.Warn("Failed to cache appointment", zap.Error(err), zap.String("appointmentID", appointmentID))
	}

	s.recordActivity(ctx, creatorID, "created", appointmentID)
	s.eventBus.Publish(ctx, "appointment.created", appointment)

	logger.Info("Appointment created successfully", zap.String("appointmentID", appointmentID), zap.String("patientID", appointment.PatientID))
	return &appointment, nil
}

// UpdateAppointment handles updates to an existing appointment
func (s *AppointmentService) UpdateAppointment(ctx context.Context, appointment model.Appointment, updaterID string) (*model.Appointment, error) {
	if err := s.validationUtil.ValidateAppointment(appointment); err != nil {
		return nil, fmt.Errorf("%w: %s", pw_errors.ErrInvalidAppointmentData, err)
	}

	appointment.UpdatedAt = time.Now()

	updatedAppointment, err := s.appointmentDAO.UpdateAppointment(ctx, appointment)
	if err != nil {
		logger.Error("Error updating appointment", zap.Error(err), zap.String("appointmentID", appointment.ID), zap.String("updaterID", updaterID))
		return nil, err
	}

	if err := s.cacheService.SetAppointment(ctx, *updatedAppointment); err != nil {
		logger.Warn("Failed to update appointment in cache", zap.Error(err), zap.String("appointmentID", appointment.ID))
	}

	s.recordActivity(ctx, updaterID, "updated", appointment.ID)
	s.eventBus.Publish(ctx, "appointment.updated", *updatedAppointment)

	logger.Info("Appointment updated successfully", zap.String("appointmentID", appointment.ID), zap.String("updaterID", updaterID))
	return updatedAppointment, nil
}

// DeleteAppointment handles the cancellation and removal of an appointment
func (s *AppointmentService) DeleteAppointment(ctx context.Context, appointmentID string, deleterID string) error {
	if err := s.appointmentDAO.DeleteAppointment(ctx, appointmentID); err != nil {
		logger.Error("Error deleting appointment", zap.Error(err), zap.String("appointmentID", appointmentID), zap.String("deleterID", deleterID))
		return err
	}

	if err := s.cacheService.DeleteAppointment(ctx, appointmentID); err != nil {
		logger.Warn("Failed to delete appointment from cache", zap.Error(err), zap.String("appointmentID", appointmentID))
	}

	s.recordActivity(ctx, deleterID, "deleted", appointmentID)

	logger.Info("Appointment deleted successfully", zap.String("appointmentID", appointmentID), zap.String("deleterID", deleterID))
	return nil
}

// GetAppointment retrieves an appointment by its ID
func (s *AppointmentService) GetAppointment(ctx context.Context, appointmentID string) (*model.Appointment, error) {
	cachedAppointment, err := s.cacheService.GetAppointment(ctx, appointmentID)
	if err == nil && cachedAppointment != nil {
		return cachedAppointment, nil
	}

	appointment, err := s.appointmentDAO.GetAppointment(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, pw_errors.ErrAppointmentNotFound) {
			return nil, pw_errors.ErrAppointmentNotFound
		}
		logger.Error("Error retrieving appointment", zap.Error(err), zap.String("appointmentID", appointmentID))
		return nil, pw_errors.ErrInternalServer
	}

	if err := s.cacheService.SetAppointment(ctx, *appointment); err != nil {
		logger.Warn("Failed to cache appointment", zap.Error(err), zap.String("appointmentID", appointmentID))
	}

	return appointment, nil
}

// ListAppointments retrieves appointments with pagination
func (s *AppointmentService) ListAppointments(ctx context.Context, limit int, offset int) ([]*model.Appointment, error) {
	appointments, err := s.appointmentDAO.ListAppointments(ctx, limit, offset)
	if err != nil {
		logger.Error("Error listing appointments", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	return appointments, nil
}

// ListAppointmentsBetween retrieves appointments starting inside [from, to)
func (s *AppointmentService) ListAppointmentsBetween(ctx context.Context, from, to time.Time) ([]*model.Appointment, error) {
	appointments, err := s.appointmentDAO.ListAppointmentsBetween(ctx, from, to)
	if err != nil {
		logger.Error("Error listing appointments by range", zap.Error(err), zap.Time("from", from), zap.Time("to", to))
		return nil, fmt.Errorf("failed to list appointments in range: %w", err)
	}

	return appointments, nil
}

func (s *AppointmentService) recordActivity(ctx context.Context, userID, action, appointmentID string) {
	if s.auditService == nil {
		return
	}
	err := s.auditService.LogActivity(ctx, audit.ActivityLog{
		Timestamp:  time.Now(),
		UserID:     userID,
		Action:     action,
		EntityType: "appointment",
		EntityID:   appointmentID,
	})
	if err != nil {
		logger.Warn("Failed to record appointment activity", zap.Error(err), zap.String("appointmentID", appointmentID))
	}
}
