// service/team_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pingwise/clinic-api/audit"
	"github.com/pingwise/clinic-api/dao"
	pw_errors "github.com/pingwise/clinic-api/errors"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
	"github.com/pingwise/clinic-api/util"
)

// ITeamService defines the interface for team member operations
type ITeamService interface {
	CreateTeamMember(ctx context.Context, member model.TeamMember, creatorID string) (*model.TeamMember, error)
	UpdateTeamMember(ctx context.Context, member model.TeamMember, updaterID string) (*model.TeamMember, error)
	DeleteTeamMember(ctx context.Context, memberID string, deleterID string) error
	GetTeamMember(ctx context.Context, memberID string) (*model.TeamMember, error)
	ListTeamMembers(ctx context.Context, limit int, offset int) ([]*model.TeamMember, error)
}

// TeamService handles business logic for clinic team members
type TeamService struct {
	teamDAO        dao.ITeamDAO
	validationUtil *util.ValidationUtil
	cacheService   *util.CacheService
	eventBus       *util.EventBus
	auditService   audit.Service
}

var _ ITeamService = &TeamService{}

// NewTeamService creates a new instance of TeamService
func NewTeamService(
	teamDAO dao.ITeamDAO,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	eventBus *util.EventBus,
	auditService audit.Service,
) *TeamService {
	return &TeamService{
		teamDAO:        teamDAO,
		validationUtil: validationUtil,
		cacheService:   cacheService,
		eventBus:       eventBus,
		auditService:   auditService,
	}
}

// CreateTeamMember adds a member to the clinic team. Initials are always
// derived from the name server-side; client-supplied initials are ignored.
func (s *TeamService) CreateTeamMember(ctx context.Context, member model.TeamMember, creatorID string) (*model.TeamMember, error) {
	if err := s.validationUtil.ValidateTeamMember(member); err != nil {
		return nil, fmt.Errorf("%w: %s", pw_errors.ErrInvalidTeamMemberData, err)
	}

	member.Initials = model.DeriveInitials(member.Name)
	member.CreatedAt = time.Now()
	member.UpdatedAt = time.Now()

	memberID, err := s.teamDAO.CreateTeamMember(ctx, member)
	if err != nil {
		logger.Error("Error creating team member", zap.Error(err), zap.String("creatorID", creatorID))
		return nil, err
	}

	member.ID = memberID

	if err := s.cacheService.SetTeamMember(ctx, member); err != nil {
		logger.Warn("Failed to cache team member", zap.Error(err), zap.String("memberID", memberID))
	}

	s.recordActivity(ctx, creatorID, "created", memberID)
	s.eventBus.Publish(ctx, "team.created", member)

	logger.Info("Team member created successfully", zap.String("memberID", memberID), zap.String("role", member.Role))
	return &member, nil
}

// UpdateTeamMember updates an existing team member, re-deriving initials
// from the possibly changed name.
func (s *TeamService) UpdateTeamMember(ctx context.Context, member model.TeamMember, updaterID string) (*model.TeamMember, error) {
	if err := s.validationUtil.ValidateTeamMember(member); err != nil {
		return nil, fmt.Errorf("%w: %s", pw_errors.ErrInvalidTeamMemberData, err)
	}

	member.Initials = model.DeriveInitials(member.Name)
	member.UpdatedAt = time.Now()

	updatedMember, err := s.teamDAO.UpdateTeamMember(ctx, member)
	if err != nil {
		logger.Error("Error updating team member", zap.Error(err), zap.String("memberID", member.ID), zap.String("updaterID", updaterID))
		return nil, err
	}

	if err := s.cacheService.SetTeamMember(ctx, *updatedMember); err != nil {
		logger.Warn("Failed to update team member in cache", zap.Error(err), zap.String("memberID", member.ID))
	}

	s.recordActivity(ctx, updaterID, "updated", member.ID)
	s.eventBus.Publish(ctx, "team.updated", *updatedMember)

	logger.Info("Team member updated successfully", zap.String("memberID", member.ID), zap.String("updaterID", updaterID))
	return updatedMember, nil
}

// DeleteTeamMember removes a member from the clinic team
func (s *TeamService) DeleteTeamMember(ctx context.Context, memberID string, deleterID string) error {
	if err := s.teamDAO.DeleteTeamMember(ctx, memberID); err != nil {
		logger.Error("Error deleting team member", zap.Error(err), zap.String("memberID", memberID), zap.String("deleterID", deleterID))
		return err
	}

	if err := s.cacheService.DeleteTeamMember(ctx, memberID); err != nil {
		logger.Warn("Failed to delete team member from cache", zap.Error(err), zap.String("memberID", memberID))
	}

	s.recordActivity(ctx, deleterID, "deleted", memberID)

	logger.Info("Team member deleted successfully", zap.String("memberID", memberID), zap.String("deleterID", deleterID))
	return nil
}

// GetTeamMember retrieves a team member by their ID
func (s *TeamService) GetTeamMember(ctx context.Context, memberID string) (*model.TeamMember, error) {
	cachedMember, err := s.cacheService.GetTeamMember(ctx, memberID)
	if err == nil && cachedMember != nil {
		return cachedMember, nil
	}

	member, err := s.teamDAO.GetTeamMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, pw_errors.ErrTeamMemberNotFound) {
			return nil, pw_errors.ErrTeamMemberNotFound
		}
		logger.Error("Error retrieving team member", zap.Error(err), zap.String("memberID", memberID))
		return nil, pw_errors.ErrInternalServer
	}

	if err := s.cacheService.SetTeamMember(ctx, *member); err != nil {
		logger.Warn("Failed to cache team member", zap.Error(err), zap.String("memberID", memberID))
	}

	return member, nil
}

// ListTeamMembers retrieves team members with pagination
func (s *TeamService) ListTeamMembers(ctx context.Context, limit int, offset int) ([]*model.TeamMember, error) {
	members, err := s.teamDAO.ListTeamMembers(ctx, limit, offset)
	if err != nil {
		logger.Error("Error listing team members", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	return members, nil
}

func (s *TeamService) recordActivity(ctx context.Context, userID, action, memberID string) {
	if s.auditService == nil {
		return
	}
	err := s.auditService.LogActivity(ctx, audit.ActivityLog{
		Timestamp:  time.Now(),
		UserID:     userID,
		Action:     action,
		EntityType: "team_member",
		EntityID:   memberID,
	})
	if err != nil {
		logger.Warn("Failed to record team activity", zap.Error(err), zap.String("memberID", memberID))
	}
}
