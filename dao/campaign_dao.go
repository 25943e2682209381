// dao/campaign_dao.go
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/pingwise/clinic-api/db"
	pw_errors "github.com/pingwise/clinic-api/errors"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
)

type CampaignDAO struct {
	Collection *mongo.Collection
}

var _ ICampaignDAO = (*CampaignDAO)(nil)

func NewCampaignDAO() *CampaignDAO {
	return &CampaignDAO{Collection: db.Collection(db.CollCampaigns)}
}

func (dao *CampaignDAO) CreateCampaign(ctx context.Context, campaign model.Campaign) (string, error) {
	start := time.Now()
	logger.Info("Creating new campaign", zap.String("campaignName", campaign.Name))

	if campaign.ID == "" {
		campaign.ID = uuid.New().String()
	}

	_, err := dao.Collection.InsertOne(ctx, campaign)
	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create campaign",
			zap.Error(err),
			zap.String("campaignName", campaign.Name),
			zap.Duration("duration", duration))
		return "", pw_errors.ErrDatabaseOperation
	}

	logger.Info("Campaign created successfully",
		zap.String("campaignID", campaign.ID),
		zap.Duration("duration", duration))
	return campaign.ID, nil
}

func (dao *CampaignDAO) UpdateCampaign(ctx context.Context, campaign model.Campaign) (*model.Campaign, error) {
	update := bson.M{"$set": bson.M{
		"name":         campaign.Name,
		"channel":      campaign.Channel,
		"status":       campaign.Status,
		"budget_cents": campaign.BudgetCents,
		"start_date":   campaign.StartDate,
		"end_date":     campaign.EndDate,
		"updated_at":   campaign.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Campaign
	err := dao.Collection.FindOneAndUpdate(ctx, bson.M{"_id": campaign.ID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pw_errors.ErrCampaignNotFound
		}
		logger.Error("Failed to update campaign", zap.Error(err), zap.String("campaignID", campaign.ID))
		return nil, pw_errors.ErrDatabaseOperation
	}

	logger.Info("Campaign updated successfully", zap.String("campaignID", campaign.ID))
	return &updated, nil
}

func (dao *CampaignDAO) DeleteCampaign(ctx context.Context, campaignID string) error {
	res, err := dao.Collection.DeleteOne(ctx, bson.M{"_id": campaignID})
	if err != nil {
		logger.Error("Failed to delete campaign", zap.Error(err), zap.String("campaignID", campaignID))
		return pw_errors.ErrDatabaseOperation
	}
	if res.DeletedCount == 0 {
		return pw_errors.ErrCampaignNotFound
	}

	logger.Info("Campaign deleted successfully", zap.String("campaignID", campaignID))
	return nil
}

func (dao *CampaignDAO) GetCampaign(ctx context.Context, campaignID string) (*model.Campaign, error) {
	var campaign model.Campaign
	err := dao.Collection.FindOne(ctx, bson.M{"_id": campaignID}).Decode(&campaign)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pw_errors.ErrCampaignNotFound
		}
		logger.Error("Failed to get campaign", zap.Error(err), zap.String("campaignID", campaignID))
		return nil, pw_errors.ErrDatabaseOperation
	}
	return &campaign, nil
}

func (dao *CampaignDAO) ListCampaigns(ctx context.Context, limit, offset int) ([]*model.Campaign, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := dao.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logger.Error("Failed to list campaigns", zap.Error(err))
		return nil, pw_errors.ErrDatabaseOperation
	}
	defer cursor.Close(ctx)

	var campaigns []*model.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		return nil, pw_errors.ErrDatabaseOperation
	}
	return campaigns, nil
}

func (dao *CampaignDAO) CountCampaigns(ctx context.Context) (int64, error) {
	count, err := dao.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		logger.Error("Failed to count campaigns", zap.Error(err))
		return 0, pw_errors.ErrDatabaseOperation
	}
	return count, nil
}
