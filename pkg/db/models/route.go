package models

import (
	"github.com/shopspring/decimal"
)

// Route is static reference data: a directed lane with a per-unit transport
// cost and a distance. Duplicate (origin, destination) rows are tolerated;
// lookups resolve them by lowest cost.
type Route struct {
	ID          uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Origin      string          `gorm:"column:origin;not null;index:idx_routes_lane"`
	Destination string          `gorm:"column:destination;not null;index:idx_routes_lane"`
	Cost        decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null"`
	DistanceKM  decimal.Decimal `gorm:"column:distance_km;type:numeric(10,2);not null"`
}
