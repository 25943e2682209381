// service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/pingwise/clinic-api/audit"
	"github.com/pingwise/clinic-api/config"
	"github.com/pingwise/clinic-api/dao"
	pw_errors "github.com/pingwise/clinic-api/errors"
	"github.com/pingwise/clinic-api/gateway"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/middleware"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/util"
)

const minPasswordLength = 6

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResult, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error)
}

// AuthService handles dashboard user registration and login. Registration
// is local; login is delegated to the CRM gateway, falling back to local
// credential verification when no gateway is configured.
type AuthService struct {
	userDAO        dao.IUserDAO
	gatewayClient  *gateway.Client
	validationUtil *util.ValidationUtil
	auditService   audit.Service
}

var _ IAuthService = &AuthService{}

// NewAuthService creates a new instance of AuthService
func NewAuthService(
	userDAO dao.IUserDAO,
	gatewayClient *gateway.Client,
	validationUtil *util.ValidationUtil,
	auditService audit.Service,
) *AuthService {
	return &AuthService{
		userDAO:        userDAO,
		gatewayClient:  gatewayClient,
		validationUtil: validationUtil,
		auditService:   auditService,
	}
}

// Register creates a dashboard user with a bcrypt-hashed password and
// returns a signed session token.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResult, error) {
	if err := s.validationUtil.ValidateRegistration(req); err != nil {
		return nil, fmt.Errorf("%w: %s", pw_errors.ErrInvalidUserData, err)
	}
	if len(req.Password) < minPasswordLength {
		return nil, pw_errors.ErrPasswordTooShort
	}

	if existing, err := s.userDAO.GetUserByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, pw_errors.ErrUserConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Error hashing password", zap.Error(err))
		return nil, pw_errors.ErrInternalServer
	}

	user := model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         "staff",
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	userID, err := s.userDAO.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, pw_errors.ErrUserConflict) {
			return nil, pw_errors.ErrUserConflict
		}
		logger.Error("Error creating user", zap.Error(err), zap.String("email", req.Email))
		return nil, pw_errors.ErrInternalServer
	}
	user.ID = userID

	token, err := s.issueToken(user)
	if err != nil {
		logger.Error("Error issuing token", zap.Error(err), zap.String("userID", userID))
		return nil, pw_errors.ErrInternalServer
	}

	s.recordActivity(ctx, userID, "registered")

	logger.Info("User registered successfully", zap.String("userID", userID))
	return &model.AuthResult{Token: token, User: &user}, nil
}

// Login authenticates a user. When a CRM gateway is configured, the
// credentials are verified there; otherwise they are checked against the
// local user store. Either way the caller receives a locally signed
// session token, so the bearer middleware can validate every subsequent
// request without another gateway round trip. The CRM's own access token
// never leaves the service.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", pw_errors.ErrInvalidUserData)
	}

	if s.gatewayClient != nil {
		result, err := s.gatewayClient.Login(ctx, req.Email, req.Password)
		if err != nil {
			logger.Warn("Gateway login failed", zap.Error(err), zap.String("email", req.Email))
			return nil, err
		}
		if result.User == nil {
			logger.Error("Gateway login response carried no user", zap.String("email", req.Email))
			return nil, pw_errors.ErrInternalServer
		}

		token, err := s.issueToken(*result.User)
		if err != nil {
			logger.Error("Error issuing token", zap.Error(err), zap.String("userID", result.User.ID))
			return nil, pw_errors.ErrInternalServer
		}
		result.Token = token

		s.recordActivity(ctx, result.User.ID, "logged_in")
		logger.Info("User logged in via gateway", zap.String("userID", result.User.ID))
		return result, nil
	}

	return s.localLogin(ctx, req)
}

func (s *AuthService) localLogin(ctx context.Context, req model.LoginRequest) (*model.AuthResult, error) {
	user, err := s.userDAO.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pw_errors.ErrUserNotFound) {
			return nil, pw_errors.ErrInvalidCredentials
		}
		logger.Error("Error looking up user", zap.Error(err), zap.String("email", req.Email))
		return nil, pw_errors.ErrInternalServer
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, pw_errors.ErrInvalidCredentials
	}

	token, err := s.issueToken(*user)
	if err != nil {
		logger.Error("Error issuing token", zap.Error(err), zap.String("userID", user.ID))
		return nil, pw_errors.ErrInternalServer
	}

	s.recordActivity(ctx, user.ID, "logged_in")

	logger.Info("User logged in", zap.String("userID", user.ID))
	return &model.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) issueToken(user model.User) (string, error) {
	ttl := config.GetDuration("auth.tokenTTL")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	claims := middleware.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.GetString("auth.jwtSecret")))
}

func (s *AuthService) recordActivity(ctx context.Context, userID, action string) {
	if s.auditService == nil {
		return
	}
	err := s.auditService.LogActivity(ctx, audit.ActivityLog{
		Timestamp:  time.Now(),
		UserID:     userID,
		Action:     action,
		EntityType: "user",
		EntityID:   userID,
	})
	if err != nil {
		logger.Warn("Failed to record auth activity", zap.Error(err), zap.String("userID", userID))
	}
}
