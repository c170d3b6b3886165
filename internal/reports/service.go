package reports

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/internal/ledger"
	"github.com/jalvarez-dev/supplysim-backend/internal/transfer"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

// Summary is the operator dashboard rollup.
type Summary struct {
	TotalOrders        int64           `json:"total_orders"`
	ProcessedOrders    int64           `json:"processed_orders"`
	LowStockSKUs       int64           `json:"low_stock_skus"`
	TotalLogisticsCost decimal.Decimal `json:"total_logistics_cost"`
}

// Service aggregates cross-table figures for reporting. Read-only.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

type service struct {
	db        *gorm.DB
	ledger    ledger.Repository
	logistics transfer.Repository
}

// NewService builds the reports service.
func NewService(db *gorm.DB, ledgerRepo ledger.Repository, logisticsRepo transfer.Repository) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if logisticsRepo == nil {
		return nil, fmt.Errorf("logistics repository required")
	}
	return &service{db: db, ledger: ledgerRepo, logistics: logisticsRepo}, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	summary := &Summary{}

	if err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Count(&summary.TotalOrders).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting orders")
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", enums.OrderStatusProcessed).
		Count(&summary.ProcessedOrders).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting processed orders")
	}

	low, err := s.ledger.BelowThreshold(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(low))
	for _, row := range low {
		seen[row.SKU] = struct{}{}
	}
	summary.LowStockSKUs = int64(len(seen))

	total, err := s.logistics.TotalCost(ctx)
	if err != nil {
		return nil, err
	}
	summary.TotalLogisticsCost = total

	return summary, nil
}
