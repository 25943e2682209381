package model

import "time"

// Appointment statuses
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
	AppointmentNoShow    = "no_show"
)

type Appointment struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	PatientID    string    `json:"patient_id" bson:"patient_id"`
	TeamMemberID string    `json:"team_member_id" bson:"team_member_id"`
	Title        string    `json:"title" bson:"title"`
	Status       string    `json:"status" bson:"status"`
	StartsAt     time.Time `json:"starts_at" bson:"starts_at"`
	DurationMins int       `json:"duration_mins" bson:"duration_mins"`
	Notes        string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// ValidAppointmentStatus reports whether s is one of the known statuses.
func ValidAppointmentStatus(s string) bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow:
		return true
	}
	return false
}
