package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LogisticsRecord is the append-only journal entry written for every
// completed transfer. Rows are never updated or deleted outside the
// simulation reset.
type LogisticsRecord struct {
	ID            uint            `gorm:"column:id;primaryKey;autoIncrement"`
	SKU           string          `gorm:"column:sku;not null;index"`
	Origin        string          `gorm:"column:origin;not null"`
	Destination   string          `gorm:"column:destination;not null"`
	TransportCost decimal.Decimal `gorm:"column:transport_cost;type:numeric(14,2);not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
