package models

import (
	"time"
)

// DemandForecast is a projected demand figure for a SKU on a future date.
type DemandForecast struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement"`
	SKU          string    `gorm:"column:sku;not null;index"`
	Value        int       `gorm:"column:forecast_value;not null"`
	ForecastDate time.Time `gorm:"column:forecast_date;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
