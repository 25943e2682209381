// controller/controllers.go
package controller

import (
	"github.com/pingwise/clinic-api/config"
	"github.com/pingwise/clinic-api/service"
)

// Controllers aggregates all controller instances
type Controllers struct {
	Patient     *PatientController
	Appointment *AppointmentController
	Team        *TeamController
	Campaign    *CampaignController
	Auth        *AuthController
	Dashboard   *DashboardController
	Report      *ReportController
	CRMProxy    *CRMProxyController
}

// InitializeControllers creates and initializes all controllers
func InitializeControllers(services *service.Services) (*Controllers, error) {
	crmProxy, err := NewCRMProxyController(config.GetString("crm.baseURL"), config.GetString("crm.apiKey"))
	if err != nil {
		return nil, err
	}

	return &Controllers{
		Patient:     NewPatientController(services.Patient),
		Appointment: NewAppointmentController(services.Appointment),
		Team:        NewTeamController(services.Team),
		Campaign:    NewCampaignController(services.Campaign),
		Auth:        NewAuthController(services.Auth),
		Dashboard:   NewDashboardController(services.Dashboard),
		Report:      NewReportController(services.Report),
		CRMProxy:    crmProxy,
	}, nil
}
