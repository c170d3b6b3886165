package models

import (
	"time"
)

// StockEntry tracks the on-hand quantity of one SKU at one location.
// Quantity is never allowed below zero; the transfer engine enforces the
// floor before mutating.
type StockEntry struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	SKU       string    `gorm:"column:sku;not null;uniqueIndex:idx_stock_sku_location"`
	Location  string    `gorm:"column:location;not null;uniqueIndex:idx_stock_sku_location"`
	Quantity  int       `gorm:"column:quantity;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
