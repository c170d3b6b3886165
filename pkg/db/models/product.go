package models

import (
	"time"
)

// Product is a catalog item keyed by its uppercase SKU.
type Product struct {
	SKU         string    `gorm:"column:sku;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	Threshold   int       `gorm:"column:threshold;not null;default:1"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
