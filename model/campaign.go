package model

import "time"

// Campaign statuses
const (
	CampaignDraft     = "draft"
	CampaignActive    = "active"
	CampaignPaused    = "paused"
	CampaignCompleted = "completed"
)

type Campaign struct {
	ID          string     `json:"id" bson:"_id,omitempty"`
	Name        string     `json:"name" bson:"name"`
	Channel     string     `json:"channel" bson:"channel"` // "email", "sms", "social"
	Status      string     `json:"status" bson:"status"`
	BudgetCents int64      `json:"budget_cents" bson:"budget_cents"`
	StartDate   *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// ValidCampaignStatus reports whether s is one of the known statuses.
func ValidCampaignStatus(s string) bool {
	switch s {
	case CampaignDraft, CampaignActive, CampaignPaused, CampaignCompleted:
		return true
	}
	return false
}
