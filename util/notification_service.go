// util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyPatientChange(ctx context.Context, changeType string, patient model.Patient) error {
	switch changeType {
	case "created":
		logger.Info("NOTIFICATION: New patient registered",
			zap.String("patientID", patient.ID),
			zap.String("patientName", patient.Name))
	case "updated":
		logger.Info("NOTIFICATION: Patient record updated",
			zap.String("patientID", patient.ID),
			zap.String("patientName", patient.Name))
	case "deleted":
		logger.Info("NOTIFICATION: Patient record deleted",
			zap.String("patientID", patient.ID))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}

	return nil
}

func (n *NotificationService) NotifyAppointmentChange(ctx context.Context, changeType string, appointment model.Appointment) error {
	switch changeType {
	case "created":
		logger.Info("NOTIFICATION: New appointment booked",
			zap.String("appointmentID", appointment.ID),
			zap.String("patientID", appointment.PatientID),
			zap.Time("startsAt", appointment.StartsAt))
	case "updated":
		logger.Info("NOTIFICATION: Appointment updated",
			zap.String("appointmentID", appointment.ID),
			zap.String("status", appointment.Status))
	case "deleted":
		logger.Info("NOTIFICATION: Appointment cancelled",
			zap.String("appointmentID", appointment.ID))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}

	return nil
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	// Mock email sending
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))

	return nil
}
