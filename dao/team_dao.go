// dao/team_dao.go
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

type TeamDAO struct {
	Collection *mongo.Collection
}

var _ ITeamDAO = (*TeamDAO)(nil)

func NewTeamDAO() *TeamDAO {
	return &TeamDAO{Collection: db.Collection(db.CollTeam)}
}

func (dao *TeamDAO) CreateTeamMember(ctx context.Context, member model.TeamMember) (string, error) {
	start := time.Now()
	logger.Info("Creating new team member", zap.String("memberName", member.Name))

	if member.ID == "" {
		member.ID = uuid.New().String()
	}

	_, err := dao.Collection.InsertOne(ctx, member)
	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create team member",
			zap.Error(err),
			zap.String("memberName", member.Name),
			zap.Duration("duration", duration))
		if mongo.IsDuplicateKeyError(err) {
			return "", pw_errors.ErrTeamMemberConflict
		}
		return "", pw_errors.ErrDatabaseOperation
	}

	logger.Info("Team member created successfully",
		zap.String("teamMemberID", member.ID),
		zap.Duration("duration", duration))
	return member.ID, nil
}

func (dao *TeamDAO) UpdateTeamMember(ctx context.Context, member model.TeamMember) (*model.TeamMember, error) {
	update := bson.M{"$set": bson.M{
		"name":       member.Name,
		"initials":   member.Initials,
		"role":       member.Role,
		"email":      member.Email,
		"phone":      member.Phone,
		"specialty":  member.Specialty,
		"updated_at": member.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.TeamMember
	err := dao.Collection.FindOneAndUpdate(ctx, bson.M{"_id": member.ID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pw_errors.ErrTeamMemberNotFound
		}
		logger.Error("Failed to update team member", zap.Error(err), zap.String("teamMemberID", member.ID))
		return nil, pw_errors.ErrDatabaseOperation
	}

	logger.Info("Team member updated successfully", zap.String("teamMemberID", member.ID))
	return &updated, nil
}

func (dao *TeamDAO) DeleteTeamMember(ctx context.Context, memberID string) error {
	res, err := dao.Collection.DeleteOne(ctx, bson.M{"_id": memberID})
	if err != nil {
		logger.Error("Failed to delete team member", zap.Error(err), zap.String("teamMemberID", memberID))
		return pw_errors.ErrDatabaseOperation
	}
	if res.DeletedCount == 0 {
		return pw_errors.ErrTeamMemberNotFound
	}

	logger.Info("Team member deleted successfully", zap.String("teamMemberID", memberID))
	return nil
}

func (dao *TeamDAO) GetTeamMember(ctx context.Context, memberID string) (*model.TeamMember, error) {
	var member model.TeamMember
	err := dao.Collection.FindOne(ctx, bson.M{"_id": memberID}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pw_errors.ErrTeamMemberNotFound
		}
		logger.Error("Failed to get team member", zap.Error(err), zap.String("teamMemberID", memberID))
		return nil, pw_errors.ErrDatabaseOperation
	}
	return &member, nil
}

func (dao *TeamDAO) ListTeamMembers(ctx context.Context, limit, offset int) ([]*model.TeamMember, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := dao.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logger.Error("Failed to list team members", zap.Error(err))
		return nil, pw_errors.ErrDatabaseOperation
	}
	defer cursor.Close(ctx)

	var members []*model.TeamMember
	if err := cursor.All(ctx, &members); err != nil {
		return nil, pw_errors.ErrDatabaseOperation
	}
	return members, nil
}

func (dao *TeamDAO) CountTeamMembers(ctx context.Context) (int64, error) {
	count, err := dao.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		logger.Error("Failed to count team members", zap.Error(err))
		return 0, pw_errors.ErrDatabaseOperation
	}
	return count, nil
}
