// service/dashboard_service.go
package service

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pingwise/clinic-api/cache"
	"github.com/pingwise/clinic-api/config"
	"github.com/pingwise/clinic-api/dao"
	pw_errors "github.com/pingwise/clinic-api/errors"
	"github.com/pingwise/clinic-api/gateway"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
	helper_util "github.com/pingwise/clinic-api/util/helper"
)

const recentPatientLimit = 5

// IDashboardService provides the aggregate views behind the dashboard
// landing page.
type IDashboardService interface {
	GetStats(ctx context.Context) (*model.DashboardStats, error)
	TodayAppointments(ctx context.Context) ([]*model.Appointment, error)
	WalletBalance(ctx context.Context, token string) (*model.WalletBalance, error)
}

// DashboardService aggregates counts across collections and serves the
// two high-traffic reads (today's appointments, wallet balance) through
// fixed-window feature caches so a dashboard reload does not hammer the
// database or the CRM gateway.
type DashboardService struct {
	patientDAO     dao.IPatientDAO
	appointmentDAO dao.IAppointmentDAO
	teamDAO        dao.ITeamDAO
	campaignDAO    dao.ICampaignDAO
	gatewayClient  *gateway.Client

	todayCache  *cache.Feature[[]*model.Appointment]
	walletCache *cache.Feature[*model.WalletBalance]
	walletToken atomic.Value
}

var _ IDashboardService = &DashboardService{}

// NewDashboardService creates a new instance of DashboardService
func NewDashboardService(
	patientDAO dao.IPatientDAO,
	appointmentDAO dao.IAppointmentDAO,
	teamDAO dao.ITeamDAO,
	campaignDAO dao.ICampaignDAO,
	gatewayClient *gateway.Client,
) *DashboardService {
	s := &DashboardService{
		patientDAO:     patientDAO,
		appointmentDAO: appointmentDAO,
		teamDAO:        teamDAO,
		campaignDAO:    campaignDAO,
		gatewayClient:  gatewayClient,
	}

	ttl := config.GetDuration("cache.featureTTL")
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	// Refresh today's list in the background once a hit is past half its
	// window, so the schedule stays current without blocking a reload.
	s.todayCache = cache.New[[]*model.Appointment]("today_appointments", ttl, s.loadTodayAppointments,
		cache.WithBackgroundRefresh[[]*model.Appointment](ttl/2))
	s.walletCache = cache.New[*model.WalletBalance]("wallet_balance", ttl, s.loadWalletBalance)

	return s
}

// GetStats assembles the dashboard counters. Each component failure is
// logged and zeroed rather than failing the whole view.
func (s *DashboardService) GetStats(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{GeneratedAt: time.Now()}

	var err error
	if stats.PatientCount, err = s.patientDAO.CountPatients(ctx); err != nil {
		logger.Warn("Failed to count patients for dashboard", zap.Error(err))
	}
	if stats.AppointmentCount, err = s.appointmentDAO.CountAppointments(ctx); err != nil {
		logger.Warn("Failed to count appointments for dashboard", zap.Error(err))
	}
	if stats.TeamMemberCount, err = s.teamDAO.CountTeamMembers(ctx); err != nil {
		logger.Warn("Failed to count team members for dashboard", zap.Error(err))
	}
	if stats.CampaignCount, err = s.campaignDAO.CountCampaigns(ctx); err != nil {
		logger.Warn("Failed to count campaigns for dashboard", zap.Error(err))
	}

	if stats.StatusBreakdown, err = s.appointmentDAO.StatusBreakdown(ctx); err != nil {
		logger.Warn("Failed to compute appointment status breakdown", zap.Error(err))
		stats.StatusBreakdown = map[string]int64{}
	}

	if stats.RecentPatients, err = s.patientDAO.ListRecentPatients(ctx, recentPatientLimit); err != nil {
		logger.Warn("Failed to list recent patients for dashboard", zap.Error(err))
		stats.RecentPatients = []*model.Patient{}
	}

	return stats, nil
}

// TodayAppointments returns the appointments scheduled for the current
// calendar day, served from the feature cache within its validity window.
func (s *DashboardService) TodayAppointments(ctx context.Context) ([]*model.Appointment, error) {
	return s.todayCache.Get(ctx)
}

func (s *DashboardService) loadTodayAppointments(ctx context.Context) ([]*model.Appointment, error) {
	start, end := helper_util.DayBounds(time.Now())

	appointments, err := s.appointmentDAO.ListAppointmentsBetween(ctx, start, end)
	if err != nil {
		logger.Error("Error loading today's appointments", zap.Error(err))
		return nil, err
	}
	return appointments, nil
}

// WalletBalance returns the clinic's CRM wallet balance. The cached value
// is shared across users; the bearer token of the most recent cache miss
// is the one presented upstream.
func (s *DashboardService) WalletBalance(ctx context.Context, token string) (*model.WalletBalance, error) {
	s.walletToken.Store(token)
	return s.walletCache.Get(ctx)
}

func (s *DashboardService) loadWalletBalance(ctx context.Context) (*model.WalletBalance, error) {
	if s.gatewayClient == nil {
		return nil, pw_errors.ErrGatewayUnavailable
	}
	token, _ := s.walletToken.Load().(string)
	balance, err := s.gatewayClient.WalletBalance(ctx, token)
	if err != nil {
		logger.Error("Error fetching wallet balance", zap.Error(err))
		return nil, err
	}
	return balance, nil
}
