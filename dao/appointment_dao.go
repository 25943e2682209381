// dao/appointment_dao.go
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

type AppointmentDAO struct {
	Collection *mongo.Collection
}

var _ IAppointmentDAO = (*AppointmentDAO)(nil)

func NewAppointmentDAO() *AppointmentDAO {
	return &AppointmentDAO{Collection: db.Collection(db.CollAppointments)}
}

func (dao *AppointmentDAO) CreateAppointment(ctx context.Context, appointment model.Appointment) (string, error) {
	start := time.Now()
	logger.Info("Creating new appointment",
		zap.String("patientID", appointment.PatientID),
		zap.Time("startsAt", appointment.StartsAt))

	if appointment.ID == "" {
		appointment.ID = uuid.New().String()
	}

	_, err := dao.Collection.InsertOne(ctx, appointment)
	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create appointment",
			zap.Error(err),
			zap.String("patientID", appointment.PatientID),
			zap.Duration("duration", duration))
		return "", pw_errors.ErrDatabaseOperation
	}

	logger.Info("Appointment created successfully",
		zap.String("appointmentID", appointment.ID),
		zap.Duration("duration", duration))
	return appointment.ID, nil
}

func (dao *AppointmentDAO) UpdateAppointment(ctx context.Context, appointment model.Appointment) (*model.Appointment, error) {
	update := bson.M{"$set": bson.M{
		"patient_id":     appointment.PatientID,
		"team_member_id": appointment.TeamMemberID,
		"title":          appointment.Title,
		"status":         appointment.Status,
		"starts_at":      appointment.StartsAt,
		"duration_mins":  appointment.DurationMins,
		"notes":          appointment.Notes,
		"updated_at":     appointment.UpdatedAt,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated model.Appointment
	err := dao.Collection.FindOneAndUpdate(ctx, bson.M{"_id": appointment.ID}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pw_errors.ErrAppointmentNotFound
		}
		logger.Error("Failed to update appointment",
			zap.Error(err),
			zap.String("appointmentID", appointment.ID))
		return nil, pw_errors.ErrDatabaseOperation
	}

	logger.Info("Appointment updated successfully", zap.String("appointmentID", appointment.ID))
	return &updated, nil
}

func (dao *AppointmentDAO) DeleteAppointment(ctx context.Context, appointmentID string) error {
	res, err := dao.Collection.DeleteOne(ctx, bson.M{"_id": appointmentID})
	if err != nil {
		logger.Error("Failed to delete appointment", zap.Error(err), zap.String("appointmentID", appointmentID))
		return pw_errors.ErrDatabaseOperation
	}
	if res.DeletedCount == 0 {
		return pw_errors.ErrAppointmentNotFound
	}

	logger.Info("Appointment deleted successfully", zap.String("appointmentID", appointmentID))
	return nil
}

func (dao *AppointmentDAO) GetAppointment(ctx context.Context, appointmentID string) (*model.Appointment, error) {
	var appointment model.Appointment
	err := dao.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(&appointment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, pw_errors.ErrAppointmentNotFound
		}
		logger.Error("Failed to get appointment", zap.Error(err), zap.String("appointmentID", appointmentID))
		return nil, pw_errors.ErrDatabaseOperation
	}
	return &appointment, nil
}

func (dao *AppointmentDAO) ListAppointments(ctx context.Context, limit, offset int) ([]*model.Appointment, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "starts_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))

	cursor, err := dao.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logger.Error("Failed to list appointments", zap.Error(err))
		return nil, pw_errors.ErrDatabaseOperation
	}
	defer cursor.Close(ctx)

	var appointments []*model.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, pw_errors.ErrDatabaseOperation
	}
	return appointments, nil
}

func (dao *AppointmentDAO) ListAppointmentsBetween(ctx context.Context, from, to time.Time) ([]*model.Appointment, error) {
	filter := bson.M{"starts_at": bson.M{"$gte": from, "$lt": to}}
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})

	cursor, err := dao.Collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Error("Failed to list appointments in window",
			zap.Error(err), zap.Time("from", from), zap.Time("to", to))
		return nil, pw_errors.ErrDatabaseOperation
	}
	defer cursor.Close(ctx)

	var appointments []*model.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, pw_errors.ErrDatabaseOperation
	}
	return appointments, nil
}

func (dao *AppointmentDAO) CountAppointmentsByPatient(ctx context.Context, patientID string) (int64, error) {
	count, err := dao.Collection.CountDocuments(ctx, bson.M{"patient_id": patientID})
	if err != nil {
		logger.Error("Failed to count appointments for patient",
			zap.Error(err), zap.String("patientID", patientID))
		return 0, pw_errors.ErrDatabaseOperation
	}
	return count, nil
}

func (dao *AppointmentDAO) CountAppointments(ctx context.Context) (int64, error) {
	count, err := dao.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		logger.Error("Failed to count appointments", zap.Error(err))
		return 0, pw_errors.ErrDatabaseOperation
	}
	return count, nil
}

func (dao *AppointmentDAO) StatusBreakdown(ctx context.Context) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := dao.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Error("Failed to aggregate appointment statuses", zap.Error(err))
		return nil, pw_errors.ErrDatabaseOperation
	}
	defer cursor.Close(ctx)

	breakdown := make(map[string]int64)
	for cursor.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Count int64  `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, pw_errors.ErrDatabaseOperation
		}
		breakdown[row.ID] = row.Count
	}
	return breakdown, nil
}
