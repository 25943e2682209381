// service/report_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	pw_errors "github.com/pingwise/clinic-api/errors"
	"github.com/pingwise/clinic-api/gateway"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
)

// IReportService exposes CRM-backed reporting data.
type IReportService interface {
	ListReports(ctx context.Context, token string) ([]*model.Report, error)
	GatewayHealth(ctx context.Context) (*model.GatewayHealth, error)
}

// ReportService fetches reporting rows and health state from the CRM
// gateway and returns them in the local schema.
type ReportService struct {
	gatewayClient *gateway.Client
}

var _ IReportService = &ReportService{}

// NewReportService creates a new instance of ReportService
func NewReportService(gatewayClient *gateway.Client) *ReportService {
	return &ReportService{gatewayClient: gatewayClient}
}

// ListReports returns the CRM reports visible to the given bearer token.
func (s *ReportService) ListReports(ctx context.Context, token string) ([]*model.Report, error) {
	if s.gatewayClient == nil {
		return nil, pw_errors.ErrGatewayUnavailable
	}

	reports, err := s.gatewayClient.Reports(ctx, token)
	if err != nil {
		logger.Error("Error fetching reports from gateway", zap.Error(err))
		return nil, err
	}

	return reports, nil
}

// GatewayHealth probes the CRM gateway's health endpoint.
func (s *ReportService) GatewayHealth(ctx context.Context) (*model.GatewayHealth, error) {
	if s.gatewayClient == nil {
		return nil, pw_errors.ErrGatewayUnavailable
	}

	health, err := s.gatewayClient.Health(ctx)
	if err != nil {
		logger.Warn("Gateway health check failed", zap.Error(err))
		return nil, err
	}

	return health, nil
}
