package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
)

// Order is a customer request for quantity of a SKU delivered to their
// location. Created Pending; flipped to Processed only after a successful
// fulfillment transfer.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	SKU              string            `gorm:"column:sku;not null;index"`
	Quantity         int               `gorm:"column:quantity;not null"`
	CustomerName     string            `gorm:"column:customer_name;not null;index"`
	CustomerLocation string            `gorm:"column:customer_location;not null"`
	Status           enums.OrderStatus `gorm:"column:status;not null;default:Pending"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
