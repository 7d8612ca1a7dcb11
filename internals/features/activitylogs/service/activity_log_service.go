package service

import (
	"context"
	"log"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"ekspedisi_backend/internals/features/activitylogs/model"
)

// ActivityLogger dicatat best-effort: gagal menulis log tidak boleh
// menggagalkan mutasi utamanya.
type ActivityLogger interface {
	Record(ctx context.Context, action, entityType, entityID string, actorID uuid.UUID, metadata map[string]interface{})
}

type ActivityLogService struct {
	DB *gorm.DB
}

func NewActivityLogService(db *gorm.DB) *ActivityLogService {
	return &ActivityLogService{DB: db}
}

func (s *ActivityLogService) Record(ctx context.Context, action, entityType, entityID string, actorID uuid.UUID, metadata map[string]interface{}) {
	entry := model.ActivityLogModel{
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		UserID:     actorID,
	}
	if metadata != nil {
		if raw, err := sonic.Marshal(metadata); err == nil {
			entry.Metadata = datatypes.JSON(raw)
		} else {
			log.Printf("[WARN] metadata activity log tidak bisa di-serialize: %v", err)
		}
	}

	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("[WARN] gagal tulis activity log action=%s entity=%s/%s: %v", action, entityType, entityID, err)
	}
}

// List mengembalikan log terbaru lebih dulu (untuk halaman admin).
func (s *ActivityLogService) List(ctx context.Context, limit, offset int) ([]model.ActivityLogModel, error) {
	var logs []model.ActivityLogModel
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&logs).Error
	return logs, err
}
