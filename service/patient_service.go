// service/patient_service.go
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

// IPatientService defines the interface for patient operations
type IPatientService interface {
	CreatePatient(ctx context.Context, patient model.Patient, creatorID string) (*model.Patient, error)
	UpdatePatient(ctx context.Context, patient model.Patient, updaterID string) (*model.Patient, error)
	DeletePatient(ctx context.Context, patientID string, deleterID string) error
	GetPatient(ctx context.Context, patientID string) (*model.Patient, error)
	ListPatients(ctx context.Context, limit int, offset int) ([]*model.Patient, error)
	SearchPatients(ctx context.Context, criteria model.PatientSearchCriteria) ([]*model.Patient, error)
}

// PatientService handles business logic for patient operations
type PatientService struct {
	patientDAO      dao.IPatientDAO
	appointmentDAO  dao.IAppointmentDAO
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
	auditService    audit.Service
}

var _ IPatientService = &PatientService{}

// NewPatientService creates a new instance of PatientService
func NewPatientService(
	patientDAO dao.IPatientDAO,
	appointmentDAO dao.IAppointmentDAO,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
	auditService audit.Service,
) *PatientService {
	service := &PatientService{
		patientDAO:      patientDAO,
		appointmentDAO:  appointmentDAO,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		auditService:    auditService,
	}

	// Set up event subscriptions
	eventBus.Subscribe("patient.created", service.handlePatientCreated)
	eventBus.Subscribe("patient.updated", service.handlePatientUpdated)
	eventBus.Subscribe("patient.deleted", service.handlePatientDeleted)

	return service
}

func (s *PatientService) handlePatientCreated(ctx context.Context, event util.Event) error {
	patient := event.Payload.(model.Patient)
	logger.Info("Patient created event received", zap.String("patientID", patient.ID))

	if err := s.notificationSvc.NotifyPatientChange(ctx, "created", patient); err != nil {
		logger.Warn("Failed to send patient creation notification", zap.Error(err), zap.String("patientID", patient.ID))
	}

	return nil
}

func (s *PatientService) handlePatientUpdated(ctx context.Context, event util.Event) error {
	payload := event.Payload.(map[string]model.Patient)
	newPatient := payload["new"]

	logger.Info("Patient updated event received", zap.String("patientID", newPatient.ID))

	if err := s.notificationSvc.NotifyPatientChange(ctx, "updated", newPatient); err != nil {
		logger.Warn("Failed to send patient update notification", zap.Error(err), zap.String("patientID", newPatient.ID))
		// Continue execution despite the error
	}

	return nil
}

func (s *PatientService) handlePatientDeleted(ctx context.Context, event util.Event) error {
	patientID := event.Payload.(string)
	logger.Info("Patient deleted event received", zap.String("patientID", patientID))

	if err := s.notificationSvc.NotifyPatientChange(ctx, "deleted", model.Patient{ID: patientID}); err != nil {
		logger.Warn("Failed to send patient deletion notification", zap.Error(err), zap.String("patientID", patientID))
		// Continue execution despite the error
	}

	return nil
}

// CreatePatient handles the creation of a new patient record
func (s *PatientService) CreatePatient(ctx context.Context, patient model.Patient, creatorID string) (*model.Patient, error) {
	if err := s.validationUtil.ValidatePatient(patient); err != nil {
		return nil, fmt.Errorf("%w: %s", pw_errors.ErrInvalidPatientData, err)
	}

	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	patientID, err := s.patientDAO.CreatePatient(ctx, patient)
	if err != nil {
		logger.Error("Error creating patient", zap.Error(err), zap.String("creatorID", creatorID))
		return nil, err
	}

	patient.ID = patientID

	// Update cache
	if err := s.cacheService.SetPatient(ctx, patient); err != nil {
		logger.Warn("Failed to cache patient", zap.Error(err), zap.String("patientID", patientID))
	}

	s.recordActivity(ctx, creatorID, "created", patientID)

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "patient.created", patient)

	logger.Info("Patient created successfully", zap.String("patientID", patientID), zap.String("creatorID", creatorID))
	return &patient, nil
}

// UpdatePatient handles updates to an existing patient record
func (s *PatientService) UpdatePatient(ctx context.Context, patient model.Patient, updaterID string) (*model.Patient, error) {
	if err := s.validationUtil.ValidatePatient(patient); err != nil {
		return nil, fmt.Errorf("%w: %s", pw_errors.ErrInvalidPatientData, err)
	}

	oldPatient, err := s.patientDAO.GetPatient(ctx, patient.ID)
	if err != nil {
		logger.Error("Error retrieving existing patient", zap.Error(err), zap.String("patientID", patient.ID))
		return nil, err
	}

	patient.UpdatedAt = time.Now()

	updatedPatient, err := s.patientDAO.UpdatePatient(ctx, patient)
	if err != nil {
		logger.Error("Error updating patient", zap.Error(err), zap.String("patientID", patient.ID), zap.String("updaterID", updaterID))
		return nil, err
	}

	// Update cache
	if err := s.cacheService.SetPatient(ctx, *updatedPatient); err != nil {
		logger.Warn("Failed to update patient in cache", zap.Error(err), zap.String("patientID", patient.ID))
	}

	s.recordActivity(ctx, updaterID, "updated", patient.ID)

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "patient.updated", map[string]model.Patient{
		"old": *oldPatient,
		"new": *updatedPatient,
	})

	logger.Info("Patient updated successfully", zap.String("patientID", patient.ID), zap.String("updaterID", updaterID))
	return updatedPatient, nil
}

// DeletePatient handles the deletion of a patient record. Patients with
// existing appointments cannot be deleted.
func (s *PatientService) DeletePatient(ctx context.Context, patientID string, deleterID string) error {
	count, err := s.appointmentDAO.CountAppointmentsByPatient(ctx, patientID)
	if err != nil {
		logger.Error("Error counting appointments for patient", zap.Error(err), zap.String("patientID", patientID))
		return err
	}
	if count > 0 {
		return pw_errors.ErrPatientHasAppointments
	}

	if err := s.patientDAO.DeletePatient(ctx, patientID); err != nil {
		logger.Error("Error deleting patient", zap.Error(err), zap.String("patientID", patientID), zap.String("deleterID", deleterID))
		return err
	}

	// Remove from cache
	if err := s.cacheService.DeletePatient(ctx, patientID); err != nil {
		logger.Warn("Failed to delete patient from cache", zap.Error(err), zap.String("patientID", patientID))
	}

	s.recordActivity(ctx, deleterID, "deleted", patientID)

	// Publish event for asynchronous processing
	s.eventBus.Publish(ctx, "patient.deleted", patientID)

	logger.Info("Patient deleted successfully", zap.String("patientID", patientID), zap.String("deleterID", deleterID))
	return nil
}

// GetPatient retrieves a patient by their ID
func (s *PatientService) GetPatient(ctx context.Context, patientID string) (*model.Patient, error) {
	// Try to get from cache first
	cachedPatient, err := s.cacheService.GetPatient(ctx, patientID)
	if err == nil && cachedPatient != nil {
		return cachedPatient, nil
	}

	patient, err := s.patientDAO.GetPatient(ctx, patientID)
	if err != nil {
		if errors.Is(err, pw_errors.ErrPatientNotFound) {
			return nil, pw_errors.ErrPatientNotFound
		}
		logger.Error("Error retrieving patient", zap.Error(err), zap.String("patientID", patientID))
		return nil, pw_errors.ErrInternalServer
	}

	// Update cache
	if err := s.cacheService.SetPatient(ctx, *patient); err != nil {
		logger.Warn("Failed to cache patient", zap.Error(err), zap.String("patientID", patientID))
	}

	return patient, nil
}

// ListPatients retrieves all patients, possibly with pagination
func (s *PatientService) ListPatients(ctx context.Context, limit int, offset int) ([]*model.Patient, error) {
	patients, err := s.patientDAO.ListPatients(ctx, limit, offset)
	if err != nil {
		logger.Error("Error listing patients", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	return patients, nil
}

// SearchPatients finds patients matching the given criteria
func (s *PatientService) SearchPatients(ctx context.Context, criteria model.PatientSearchCriteria) ([]*model.Patient, error) {
	if criteria.Limit <= 0 {
		criteria.Limit = 10
	}

	patients, err := s.patientDAO.SearchPatients(ctx, criteria)
	if err != nil {
		logger.Error("Error searching patients", zap.Error(err))
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}

	return patients, nil
}

// recordActivity writes to the clinic activity log. Best-effort only.
func (s *PatientService) recordActivity(ctx context.Context, userID, action, patientID string) {
	if s.auditService == nil {
		return
	}
	err := s.auditService.LogActivity(ctx, audit.ActivityLog{
		Timestamp:  time.Now(),
		UserID:     userID,
		Action:     action,
		EntityType: "patient",
		EntityID:   patientID,
	})
	if err != nil {
		logger.Warn("Failed to record patient activity", zap.Error(err), zap.String("patientID", patientID))
	}
}
