// service/services.go
package service

import (
	"github.com/pingwise/clinic-api/audit"
	"github.com/pingwise/clinic-api/dao"
	"github.com/pingwise/clinic-api/gateway"
	"github.com/pingwise/clinic-api/util"
)

// Services aggregates all service instances
type Services struct {
	Patient     IPatientService
	Appointment IAppointmentService
	Team        ITeamService
	Campaign    ICampaignService
	Auth        IAuthService
	Dashboard   IDashboardService
	Report      IReportService
}

// DAOs bundles the storage implementations the services run against,
// either the Mongo-backed set or the in-memory mock store.
type DAOs struct {
	Patient     dao.IPatientDAO
	Appointment dao.IAppointmentDAO
	Team        dao.ITeamDAO
	Campaign    dao.ICampaignDAO
	User        dao.IUserDAO
}

// InitializeServices creates and initializes all services
func InitializeServices(
	daos DAOs,
	gatewayClient *gateway.Client,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *Services {
	return &Services{
		Patient:     NewPatientService(daos.Patient, daos.Appointment, validationUtil, cacheService, notificationSvc, eventBus, auditService),
		Appointment: NewAppointmentService(daos.Appointment, daos.Patient, validationUtil, cacheService, notificationSvc, eventBus, auditService),
		Team:        NewTeamService(daos.Team, validationUtil, cacheService, eventBus, auditService),
		Campaign:    NewCampaignService(daos.Campaign, validationUtil, cacheService, eventBus, auditService),
		Auth:        NewAuthService(daos.User, gatewayClient, validationUtil, auditService),
		Dashboard:   NewDashboardService(daos.Patient, daos.Appointment, daos.Team, daos.Campaign, gatewayClient),
		Report:      NewReportService(gatewayClient),
	}
}
