package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ActivityLogModel adalah jejak audit append-only: tidak pernah di-update
// atau dihapus.
type ActivityLogModel struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Action     string         `gorm:"type:varchar(20);not null;index" json:"action"` // CREATE/DELETE/EXPORT/LOGIN
	EntityType string         `gorm:"type:varchar(30);not null" json:"entity_type"`
	EntityID   string         `gorm:"size:64;not null;index" json:"entity_id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null" json:"user_id"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}
