// service/campaign_service.go
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

// ICampaignService defines the interface for marketing campaign operations
type ICampaignService interface {
	CreateCampaign(ctx context.Context, campaign model.Campaign, creatorID string) (*model.Campaign, error)
	UpdateCampaign(ctx context.Context, campaign model.Campaign, updaterID string) (*model.Campaign, error)
	DeleteCampaign(ctx context.Context, campaignID string, deleterID string) error
	GetCampaign(ctx context.Context, campaignID string) (*model.Campaign, error)
	ListCampaigns(ctx context.Context, limit int, offset int) ([]*model.Campaign, error)
}

// CampaignService handles business logic for marketing campaigns
type CampaignService struct {
	campaignDAO    dao.ICampaignDAO
	validationUtil *util.ValidationUtil
	cacheService   *util.CacheService
	eventBus       *util.EventBus
	auditService   audit.Service
}

var _ ICampaignService = &CampaignService{}

// NewCampaignService creates a new instance of CampaignService
func NewCampaignService(
	campaignDAO dao.ICampaignDAO,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	eventBus *util.EventBus,
	auditService audit.Service,
) *CampaignService {
	return &CampaignService{
		campaignDAO:    campaignDAO,
		validationUtil: validationUtil,
		cacheService:   cacheService,
		eventBus:       eventBus,
		auditService:   auditService,
	}
}

// CreateCampaign creates a new marketing campaign. New campaigns without
// an explicit status start as drafts.
func (s *CampaignService) CreateCampaign(ctx context.Context, campaign model.Campaign, creatorID string) (*model.Campaign, error) {
	if campaign.Status == "" {
		campaign.Status = model.CampaignDraft
	}
	if err := s.validationUtil.ValidateCampaign(campaign); err != nil {
		return nil, fmt.Errorf("%w: %s", pw_errors.ErrInvalidCampaignData, err)
	}

	campaign.CreatedAt = time.Now()
	campaign.UpdatedAt = time.Now()

	campaignID, err := s.campaignDAO.CreateCampaign(ctx, campaign)
	if err != nil {
		logger.Error("Error creating campaign", zap.Error(err), zap.String("creatorID", creatorID))
		return nil, err
	}

	campaign.ID = campaignID

	if err := s.cacheService.SetCampaign(ctx, campaign); err != nil {
		logger.Warn("Failed to cache campaign", zap.Error(err), zap.String("campaignID", campaignID))
	}

	s.recordActivity(ctx, creatorID, "created", campaignID)
	s.eventBus.Publish(ctx, "campaign.created", campaign)

	logger.Info("Campaign created successfully", zap.String("campaignID", campaignID), zap.String("status", campaign.Status))
	return &campaign, nil
}

// UpdateCampaign updates an existing campaign
func (s *CampaignService) UpdateCampaign(ctx context.Context, campaign model.Campaign, updaterID string) (*model.Campaign, error) {
	if err := s.validationUtil.ValidateCampaign(campaign); err != nil {
		return nil, fmt.Errorf("%w: %s", pw_errors.ErrInvalidCampaignData, err)
	}

	campaign.UpdatedAt = time.Now()

	updatedCampaign, err := s.campaignDAO.UpdateCampaign(ctx, campaign)
	if err != nil {
		logger.Error("Error updating campaign", zap.Error(err), zap.String("campaignID", campaign.ID), zap.String("updaterID", updaterID))
		return nil, err
	}

	if err := s.cacheService.SetCampaign(ctx, *updatedCampaign); err != nil {
		logger.Warn("Failed to update campaign in cache", zap.Error(err), zap.String("campaignID", campaign.ID))
	}

	s.recordActivity(ctx, updaterID, "updated", campaign.ID)
	s.eventBus.Publish(ctx, "campaign.updated", *updatedCampaign)

	logger.Info("Campaign updated successfully", zap.String("campaignID", campaign.ID), zap.String("updaterID", updaterID))
	return updatedCampaign, nil
}

// DeleteCampaign removes a campaign
func (s *CampaignService) DeleteCampaign(ctx context.Context, campaignID string, deleterID string) error {
	if err := s.campaignDAO.DeleteCampaign(ctx, campaignID); err != nil {
		logger.Error("Error deleting campaign", zap.Error(err), zap.String("campaignID", campaignID), zap.String("deleterID", deleterID))
		return err
	}

	if err := s.cacheService.DeleteCampaign(ctx, campaignID); err != nil {
		logger.Warn("Failed to delete campaign from cache", zap.Error(err), zap.String("campaignID", campaignID))
	}

	s.recordActivity(ctx, deleterID, "deleted", campaignID)

	logger.Info("Campaign deleted successfully", zap.String("campaignID", campaignID), zap.String("deleterID", deleterID))
	return nil
}

// GetCampaign retrieves a campaign by its ID
func (s *CampaignService) GetCampaign(ctx context.Context, campaignID string) (*model.Campaign, error) {
	cachedCampaign, err := s.cacheService.GetCampaign(ctx, campaignID)
	if err == nil && cachedCampaign != nil {
		return cachedCampaign, nil
	}

	campaign, err := s.campaignDAO.GetCampaign(ctx, campaignID)
	if err != nil {
		if errors.Is(err, pw_errors.ErrCampaignNotFound) {
			return nil, pw_errors.ErrCampaignNotFound
		}
		logger.Error("Error retrieving campaign", zap.Error(err), zap.String("campaignID", campaignID))
		return nil, pw_errors.ErrInternalServer
	}

	if err := s.cacheService.SetCampaign(ctx, *campaign); err != nil {
		logger.Warn("Failed to cache campaign", zap.Error(err), zap.String("campaignID", campaignID))
	}

	return campaign, nil
}

// ListCampaigns retrieves campaigns with pagination
func (s *CampaignService) ListCampaigns(ctx context.Context, limit int, offset int) ([]*model.Campaign, error) {
	campaigns, err := s.campaignDAO.ListCampaigns(ctx, limit, offset)
	if err != nil {
		logger.Error("Error listing campaigns", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, nil
}

func (s *CampaignService) recordActivity(ctx context.Context, userID, action, campaignID string) {
	if s.auditService == nil {
		return
	}
	err := s.auditService.LogActivity(ctx, audit.ActivityLog{
		Timestamp:  time.Now(),
		UserID:     userID,
		Action:     action,
		EntityType: "campaign",
		EntityID:   campaignID,
	})
	if err != nil {
		logger.Warn("Failed to record campaign activity", zap.Error(err), zap.String("campaignID", campaignID))
	}
}
