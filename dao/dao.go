// dao/dao.go
package dao

import (
	"context"
	"time"

	"github.com/pingwise/clinic-api/model"
)

// IPatientDAO defines storage operations for patients.
type IPatientDAO interface {
	CreatePatient(ctx context.Context, patient model.Patient) (string, error)
	UpdatePatient(ctx context.Context, patient model.Patient) (*model.Patient, error)
	DeletePatient(ctx context.Context, patientID string) error
	GetPatient(ctx context.Context, patientID string) (*model.Patient, error)
	ListPatients(ctx context.Context, limit, offset int) ([]*model.Patient, error)
	ListRecentPatients(ctx context.Context, limit int) ([]*model.Patient, error)
	SearchPatients(ctx context.Context, criteria model.PatientSearchCriteria) ([]*model.Patient, error)
	CountPatients(ctx context.Context) (int64, error)
}

// IAppointmentDAO defines storage operations for appointments.
type IAppointmentDAO interface {
	CreateAppointment(ctx context.Context, appointment model.Appointment) (string, error)
	UpdateAppointment(ctx context.Context, appointment model.Appointment) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, appointmentID string) error
	GetAppointment(ctx context.Context, appointmentID string) (*model.Appointment, error)
	ListAppointments(ctx context.Context, limit, offset int) ([]*model.Appointment, error)
	ListAppointmentsBetween(ctx context.Context, from, to time.Time) ([]*model.Appointment, error)
	CountAppointmentsByPatient(ctx context.Context, patientID string) (int64, error)
	CountAppointments(ctx context.Context) (int64, error)
	StatusBreakdown(ctx context.Context) (map[string]int64, error)
}

// ITeamDAO defines storage operations for team members.
type ITeamDAO interface {
	CreateTeamMember(ctx context.Context, member model.TeamMember) (string, error)
	UpdateTeamMember(ctx context.Context, member model.TeamMember) (*model.TeamMember, error)
	DeleteTeamMember(ctx context.Context, memberID string) error
	GetTeamMember(ctx context.Context, memberID string) (*model.TeamMember, error)
	ListTeamMembers(ctx context.Context, limit, offset int) ([]*model.TeamMember, error)
	CountTeamMembers(ctx context.Context) (int64, error)
}

// ICampaignDAO defines storage operations for marketing campaigns.
type ICampaignDAO interface {
	CreateCampaign(ctx context.Context, campaign model.Campaign) (string, error)
	UpdateCampaign(ctx context.Context, campaign model.Campaign) (*model.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID string) error
	GetCampaign(ctx context.Context, campaignID string) (*model.Campaign, error)
	ListCampaigns(ctx context.Context, limit, offset int) ([]*model.Campaign, error)
	CountCampaigns(ctx context.Context) (int64, error)
}

// IUserDAO defines storage operations for dashboard users.
type IUserDAO interface {
	CreateUser(ctx context.Context, user model.User) (string, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
}
