// errors/campaign_errors.go
package errors

import "errors"

var (
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrInvalidCampaignData = errors.New("invalid campaign data")
	ErrCampaignConflict    = errors.New("campaign conflict")
)
