// db/redis.go
package db

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/model"
)

var (
	RedisClient   *redis.Client
	encryptionKey []byte
)

// InitRedis connects the entity cache. On any failure RedisClient stays
// nil so callers can detect the tier is down and fall through to direct
// reads instead of erroring against a dead client.
func InitRedis() error {
	key := []byte(viper.GetString("redis.encryptionKey"))
	if len(key) != 32 {
		return fmt.Errorf("redis.encryptionKey must be 32 bytes, got %d", len(key))
	}

	client := redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	RedisClient = client
	encryptionKey = key

	logger.Info("Successfully connected to Redis")
	return nil
}

// Available reports whether the cache tier was successfully initialized.
func Available() bool {
	return RedisClient != nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

func encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err = io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

// Patient records carry PHI, so cached copies are encrypted at rest.
func CachePatient(ctx context.Context, patient *model.Patient) error {
	patientJSON, err := json.Marshal(patient)
	if err != nil {
		return fmt.Errorf("failed to marshal patient: %w", err)
	}

	encryptedPatient, err := encrypt(patientJSON)
	if err != nil {
		return fmt.Errorf("failed to encrypt patient: %w", err)
	}

	key := fmt.Sprintf("patient:%s", patient.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, base64.StdEncoding.EncodeToString(encryptedPatient), defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache patient: %w", err)
	}

	logger.Debug("Patient cached successfully", zap.String("patientID", patient.ID))
	return nil
}

func GetCachedPatient(ctx context.Context, patientID string) (*model.Patient, error) {
	key := fmt.Sprintf("patient:%s", patientID)
	encryptedPatientStr, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Patient not found in cache", zap.String("patientID", patientID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get patient from cache: %w", err)
	}

	encryptedPatient, err := base64.StdEncoding.DecodeString(encryptedPatientStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode patient: %w", err)
	}

	patientJSON, err := decrypt(encryptedPatient)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt patient: %w", err)
	}

	var patient model.Patient
	err = json.Unmarshal(patientJSON, &patient)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal patient: %w", err)
	}

	logger.Debug("Patient retrieved from cache", zap.String("patientID", patientID))
	return &patient, nil
}

func DeleteCachedPatient(ctx context.Context, patientID string) error {
	key := fmt.Sprintf("patient:%s", patientID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete patient from cache: %w", err)
	}
	logger.Debug("Patient deleted from cache", zap.String("patientID", patientID))
	return nil
}

func CacheAppointment(ctx context.Context, appointment *model.Appointment) error {
	appointmentJSON, err := json.Marshal(appointment)
	if err != nil {
		return fmt.Errorf("failed to marshal appointment: %w", err)
	}

	key := fmt.Sprintf("appointment:%s", appointment.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, appointmentJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache appointment: %w", err)
	}

	logger.Debug("Appointment cached successfully", zap.String("appointmentID", appointment.ID))
	return nil
}

func GetCachedAppointment(ctx context.Context, appointmentID string) (*model.Appointment, error) {
	key := fmt.Sprintf("appointment:%s", appointmentID)
	appointmentJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Appointment not found in cache", zap.String("appointmentID", appointmentID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get appointment from cache: %w", err)
	}

	var appointment model.Appointment
	err = json.Unmarshal([]byte(appointmentJSON), &appointment)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal appointment: %w", err)
	}

	logger.Debug("Appointment retrieved from cache", zap.String("appointmentID", appointmentID))
	return &appointment, nil
}

func DeleteCachedAppointment(ctx context.Context, appointmentID string) error {
	key := fmt.Sprintf("appointment:%s", appointmentID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete appointment from cache: %w", err)
	}
	logger.Debug("Appointment deleted from cache", zap.String("appointmentID", appointmentID))
	return nil
}

func CacheTeamMember(ctx context.Context, member *model.TeamMember) error {
	memberJSON, err := json.Marshal(member)
	if err != nil {
		return fmt.Errorf("failed to marshal team member: %w", err)
	}

	key := fmt.Sprintf("team:%s", member.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, memberJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache team member: %w", err)
	}

	logger.Debug("Team member cached successfully", zap.String("teamMemberID", member.ID))
	return nil
}

func GetCachedTeamMember(ctx context.Context, memberID string) (*model.TeamMember, error) {
	key := fmt.Sprintf("team:%s", memberID)
	memberJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Team member not found in cache", zap.String("teamMemberID", memberID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get team member from cache: %w", err)
	}

	var member model.TeamMember
	err = json.Unmarshal([]byte(memberJSON), &member)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal team member: %w", err)
	}

	logger.Debug("Team member retrieved from cache", zap.String("teamMemberID", memberID))
	return &member, nil
}

func DeleteCachedTeamMember(ctx context.Context, memberID string) error {
	key := fmt.Sprintf("team:%s", memberID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete team member from cache: %w", err)
	}
	logger.Debug("Team member deleted from cache", zap.String("teamMemberID", memberID))
	return nil
}

func CacheCampaign(ctx context.Context, campaign *model.Campaign) error {
	campaignJSON, err := json.Marshal(campaign)
	if err != nil {
		return fmt.Errorf("failed to marshal campaign: %w", err)
	}

	key := fmt.Sprintf("campaign:%s", campaign.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, campaignJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache campaign: %w", err)
	}

	logger.Debug("Campaign cached successfully", zap.String("campaignID", campaign.ID))
	return nil
}

func GetCachedCampaign(ctx context.Context, campaignID string) (*model.Campaign, error) {
	key := fmt.Sprintf("campaign:%s", campaignID)
	campaignJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Campaign not found in cache", zap.String("campaignID", campaignID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get campaign from cache: %w", err)
	}

	var campaign model.Campaign
	err = json.Unmarshal([]byte(campaignJSON), &campaign)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal campaign: %w", err)
	}

	logger.Debug("Campaign retrieved from cache", zap.String("campaignID", campaignID))
	return &campaign, nil
}

func DeleteCachedCampaign(ctx context.Context, campaignID string) error {
	key := fmt.Sprintf("campaign:%s", campaignID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete campaign from cache: %w", err)
	}
	logger.Debug("Campaign deleted from cache", zap.String("campaignID", campaignID))
	return nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
