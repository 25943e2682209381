// util/cache_service.go

package util

import (
	"context"

	"github.com/pingwise/clinic-api/db"
	"github.com/pingwise/clinic-api/model"
)

type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

// available reports whether the Redis tier is up. Services treat cache
// failures as soft, so a missing tier degrades to plain reads.
func (c *CacheService) available() bool {
	return db.Available()
}

func (c *CacheService) GetPatient(ctx context.Context, patientID string) (*model.Patient, error) {
	if !c.available() {
		return nil, nil
	}
	return db.GetCachedPatient(ctx, patientID)
}

func (c *CacheService) SetPatient(ctx context.Context, patient model.Patient) error {
	if !c.available() {
		return nil
	}
	return db.CachePatient(ctx, &patient)
}

func (c *CacheService) DeletePatient(ctx context.Context, patientID string) error {
	if !c.available() {
		return nil
	}
	return db.DeleteCachedPatient(ctx, patientID)
}

func (c *CacheService) GetAppointment(ctx context.Context, appointmentID string) (*model.Appointment, error) {
	if !c.available() {
		return nil, nil
	}
	return db.GetCachedAppointment(ctx, appointmentID)
}

func (c *CacheService) SetAppointment(ctx context.Context, appointment model.Appointment) error {
	if !c.available() {
		return nil
	}
	return db.CacheAppointment(ctx, &appointment)
}

func (c *CacheService) DeleteAppointment(ctx context.Context, appointmentID string) error {
	if !c.available() {
		return nil
	}
	return db.DeleteCachedAppointment(ctx, appointmentID)
}

func (c *CacheService) GetTeamMember(ctx context.Context, memberID string) (*model.TeamMember, error) {
	if !c.available() {
		return nil, nil
	}
	return db.GetCachedTeamMember(ctx, memberID)
}

func (c *CacheService) SetTeamMember(ctx context.Context, member model.TeamMember) error {
	if !c.available() {
		return nil
	}
	return db.CacheTeamMember(ctx, &member)
}

func (c *CacheService) DeleteTeamMember(ctx context.Context, memberID string) error {
	if !c.available() {
		return nil
	}
	return db.DeleteCachedTeamMember(ctx, memberID)
}

func (c *CacheService) GetCampaign(ctx context.Context, campaignID string) (*model.Campaign, error) {
	if !c.available() {
		return nil, nil
	}
	return db.GetCachedCampaign(ctx, campaignID)
}

func (c *CacheService) SetCampaign(ctx context.Context, campaign model.Campaign) error {
	if !c.available() {
		return nil
	}
	return db.CacheCampaign(ctx, &campaign)
}

func (c *CacheService) DeleteCampaign(ctx context.Context, campaignID string) error {
	if !c.available() {
		return nil
	}
	return db.DeleteCachedCampaign(ctx, campaignID)
}
