// util/validation_util.go

package util

import (
	"fmt"
	"strings"

	"github.com/pingwise/clinic-api/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidatePatient(patient model.Patient) error {
	if patient.Name == "" {
		return fmt.Errorf("patient name cannot be empty")
	}
	if patient.Email == "" && patient.Phone == "" {
		return fmt.Errorf("patient must have an email or a phone number")
	}
	if patient.Email != "" && !strings.Contains(patient.Email, "@") {
		return fmt.Errorf("patient email is not valid")
	}
	return nil
}

func (v *ValidationUtil) ValidateAppointment(appointment model.Appointment) error {
	if appointment.PatientID == "" {
		return fmt.Errorf("appointment patient ID cannot be empty")
	}
	if appointment.Title == "" {
		return fmt.Errorf("appointment title cannot be empty")
	}
	if appointment.StartsAt.IsZero() {
		return fmt.Errorf("appointment start time cannot be empty")
	}
	if appointment.DurationMins <= 0 {
		return fmt.Errorf("appointment duration must be positive")
	}
	if appointment.Status != "" && !model.ValidAppointmentStatus(appointment.Status) {
		return fmt.Errorf("unknown appointment status: %s", appointment.Status)
	}
	return nil
}

func (v *ValidationUtil) ValidateTeamMember(member model.TeamMember) error {
	if member.Name == "" {
		return fmt.Errorf("team member name cannot be empty")
	}
	if member.Email == "" {
		return fmt.Errorf("team member email cannot be empty")
	}
	if member.Role == "" {
		return fmt.Errorf("team member role cannot be empty")
	}
	return nil
}

func (v *ValidationUtil) ValidateCampaign(campaign model.Campaign) error {
	if campaign.Name == "" {
		return fmt.Errorf("campaign name cannot be empty")
	}
	if campaign.Channel == "" {
		return fmt.Errorf("campaign channel cannot be empty")
	}
	if campaign.Status != "" && !model.ValidCampaignStatus(campaign.Status) {
		return fmt.Errorf("unknown campaign status: %s", campaign.Status)
	}
	if campaign.BudgetCents < 0 {
		return fmt.Errorf("campaign budget cannot be negative")
	}
	if campaign.StartDate != nil && campaign.EndDate != nil && campaign.EndDate.Before(*campaign.StartDate) {
		return fmt.Errorf("campaign end date cannot be before its start date")
	}
	return nil
}

func (v *ValidationUtil) ValidateRegistration(req model.RegisterRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if req.Email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("email is not valid")
	}
	return nil
}
