package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
)

// User is an operator (Admin) or customer (User) account.
type User struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Username     string     `gorm:"column:username;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Role         enums.Role `gorm:"column:role;not null;default:User"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
