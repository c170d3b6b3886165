package models

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog records operator actions. Best-effort: a failed write never
// blocks the operation it describes.
type AuditLog struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ActorID   uuid.UUID `gorm:"column:actor_id;type:uuid"`
	Action    string    `gorm:"column:action;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
