// test/mock/services.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pingwise/clinic-api/model"
)

// MockPatientService is a mock implementation of service.IPatientService
type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) CreatePatient(ctx context.Context, patient model.Patient, creatorID string) (*model.Patient, error) {
	args := m.Called(ctx, patient, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *MockPatientService) UpdatePatient(ctx context.Context, patient model.Patient, updaterID string) (*model.Patient, error) {
	args := m.Called(ctx, patient, updaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *MockPatientService) DeletePatient(ctx context.Context, patientID string, deleterID string) error {
	args := m.Called(ctx, patientID, deleterID)
	return args.Error(0)
}

func (m *MockPatientService) GetPatient(ctx context.Context, patientID string) (*model.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *MockPatientService) ListPatients(ctx context.Context, limit int, offset int) ([]*model.Patient, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Patient), args.Error(1)
}

func (m *MockPatientService) SearchPatients(ctx context.Context, criteria model.PatientSearchCriteria) ([]*model.Patient, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Patient), args.Error(1)
}

// MockAuthService is a mock implementation of service.IAuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResult), args.Error(1)
}

// MockReportService is a mock implementation of service.IReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ListReports(ctx context.Context, token string) ([]*model.Report, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Report), args.Error(1)
}

func (m *MockReportService) GatewayHealth(ctx context.Context) (*model.GatewayHealth, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GatewayHealth), args.Error(1)
}

// MockDashboardService is a mock implementation of service.IDashboardService
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetStats(ctx context.Context) (*model.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardStats), args.Error(1)
}

func (m *MockDashboardService) TodayAppointments(ctx context.Context) ([]*model.Appointment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Appointment), args.Error(1)
}

func (m *MockDashboardService) WalletBalance(ctx context.Context, token string) (*model.WalletBalance, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WalletBalance), args.Error(1)
}
