// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// ActivityLog records who did what to which clinic record.
type ActivityLog struct {
	Timestamp     time.Time       `json:"timestamp"`
	UserID        string          `json:"user_id"`
	Action        string          `json:"action"` // "created", "updated", "deleted"
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}
