// dao/user_dao.go
package dao

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/pingwise/clinic-api/db"
	pw_errors "github.com/pingwise/clinic-api/errors"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
)

type UserDAO struct {
	Collection *mongo.Collection
}

var _ IUserDAO = (*UserDAO)(nil)

func NewUserDAO() *UserDAO {
	return &UserDAO{Collection: db.Collection(db.CollUsers)}
}

func (dao *UserDAO) CreateUser(ctx context.Context, user model.User) (string, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	_, err := dao.Collection.InsertOne(ctx, user)
	if err != nil {
		// users.email carries a unique index
		if mongo.IsDuplicateKeyError(err) {
			return "", pw_errors.ErrUserConflict
		}
		logger.Error("Failed to create user", zap.Error(err), zap.String("email", user.Email))
		return "", pw_errors.ErrDatabaseOperation
	}

	logger.Info("User created successfully", zap.String("userID", user.ID))
	return user.ID, nil
}

func (dao *UserDAO) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := dao.Collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pw_errors.ErrUserNotFound
		}
		logger.Error("Failed to get user", zap.Error(err), zap.String("userID", userID))
		return nil, pw_errors.ErrDatabaseOperation
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := dao.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pw_errors.ErrUserNotFound
		}
		logger.Error("Failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, pw_errors.ErrDatabaseOperation
	}
	return &user, nil
}
