// dao/patient_dao.go
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

type PatientDAO struct {
	Collection *mongo.Collection
}

var _ IPatientDAO = (*PatientDAO)(nil)

func NewPatientDAO() *PatientDAO {
	return &PatientDAO{Collection: db.Collection(db.CollPatients)}
}

func (dao *PatientDAO) CreatePatient(ctx context.Context, patient model.Patient) (string, error) {
	start := time.Now()
	logger.Info("Creating new patient", zap.String("patientName", patient.Name))

	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}

	_, err := dao.Collection.InsertOne(ctx, patient)
	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create patient",
			zap.Error(err),
			zap.String("patientName", patient.Name),
			zap.Duration("duration", duration))
		if mongo.IsDuplicateKeyError(err) {
			return "", pw_errors.ErrPatientConflict
		}
		return "", pw_errors.ErrDatabaseOperation
	}

	logger.Info("Patient created successfully",
		zap.String("patientID", patient.ID),
		zap.Duration("duration", duration))
	return patient.ID, nil
}

func (dao *PatientDAO) UpdatePatient(ctx context.Context, patient model.Patient) (*model.Patient, error) {
	start := time.Now()

	update := bson.M{"$set": bson.M{
		"name":          patient.Name,
		"email":         patient.Email,
		"phone":         patient.Phone,
		"gender":        patient.Gender,
		"date_of_birth": patient.DateOfBirth,
		"address":       patient.Address,
		"notes":         patient.Notes,
		"updated_at":    patient.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Patient
	err := dao.Collection.FindOneAndUpdate(ctx, bson.M{"_id": patient.ID}, update, opts).Decode(&updated)
	duration := time.Since(start)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pw_errors.ErrPatientNotFound
		}
		logger.Error("Failed to update patient",
			zap.Error(err),
			zap.String("patientID", patient.ID),
			zap.Duration("duration", duration))
		return nil, pw_errors.ErrDatabaseOperation
	}

	logger.Info("Patient updated successfully",
		zap.String("patientID", patient.ID),
		zap.Duration("duration", duration))
	return &updated, nil
}

func (dao *PatientDAO) DeletePatient(ctx context.Context, patientID string) error {
	res, err := dao.Collection.DeleteOne(ctx, bson.M{"_id": patientID})
	if err != nil {
		logger.Error("Failed to delete patient", zap.Error(err), zap.String("patientID", patientID))
		return pw_errors.ErrDatabaseOperation
	}
	if res.DeletedCount == 0 {
		return pw_errors.ErrPatientNotFound
	}

	logger.Info("Patient deleted successfully", zap.String("patientID", patientID))
	return nil
}

func (dao *PatientDAO) GetPatient(ctx context.Context, patientID string) (*model.Patient, error) {
	var patient model.Patient
	err := dao.Collection.FindOne(ctx, bson.M{"_id": patientID}).Decode(&patient)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pw_errors.ErrPatientNotFound
		}
		logger.Error("Failed to get patient", zap.Error(err), zap.String("patientID", patientID))
		return nil, pw_errors.ErrDatabaseOperation
	}
	return &patient, nil
}

func (dao *PatientDAO) ListPatients(ctx context.Context, limit, offset int) ([]*model.Patient, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := dao.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logger.Error("Failed to list patients", zap.Error(err))
		return nil, pw_errors.ErrDatabaseOperation
	}
	defer cursor.Close(ctx)

	var patients []*model.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, pw_errors.ErrDatabaseOperation
	}
	return patients, nil
}

func (dao *PatientDAO) ListRecentPatients(ctx context.Context, limit int) ([]*model.Patient, error) {
	return dao.ListPatients(ctx, limit, 0)
}

func (dao *PatientDAO) SearchPatients(ctx context.Context, criteria model.PatientSearchCriteria) ([]*model.Patient, error) {
	filter := bson.M{}
	if criteria.Name != "" {
		filter["name"] = bson.M{"$regex": criteria.Name, "$options": "i"}
	}
	if criteria.Email != "" {
		filter["email"] = criteria.Email
	}
	if criteria.Phone != "" {
		filter["phone"] = criteria.Phone
	}
	if criteria.Gender != "" {
		filter["gender"] = criteria.Gender
	}
	if criteria.FromDate != nil || criteria.ToDate != nil {
		created := bson.M{}
		if criteria.FromDate != nil {
			created["$gte"] = *criteria.FromDate
		}
		if criteria.ToDate != nil {
			created["$lt"] = *criteria.ToDate
		}
		filter["created_at"] = created
	}

	sortField := "created_at"
	if criteria.SortBy != "" {
		sortField = criteria.SortBy
	}
	order := -1
	if criteria.SortOrder == "asc" {
		order = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: order}}).
		SetLimit(int64(criteria.Limit)).
		SetSkip(int64(criteria.Offset))

	cursor, err := dao.Collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Error("Failed to search patients", zap.Error(err))
		return nil, pw_errors.ErrDatabaseOperation
	}
	defer cursor.Close(ctx)

	var patients []*model.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, pw_errors.ErrDatabaseOperation
	}
	return patients, nil
}

func (dao *PatientDAO) CountPatients(ctx context.Context) (int64, error) {
	count, err := dao.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		logger.Error("Failed to count patients", zap.Error(err))
		return 0, pw_errors.ErrDatabaseOperation
	}
	return count, nil
}
