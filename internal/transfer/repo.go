package transfer

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

// Repository owns the logistics journal. Append-only: no update or delete
// path exists outside the simulation reset.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Append(ctx context.Context, record *models.LogisticsRecord) error
	List(ctx context.Context, limit int) ([]models.LogisticsRecord, error)
	TotalCost(ctx context.Context) (decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Append(ctx context.Context, record *models.LogisticsRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "appending logistics record")
	}
	return nil
}

// List returns the newest records first.
func (r *repository) List(ctx context.Context, limit int) ([]models.LogisticsRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	var records []models.LogisticsRecord
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing logistics records")
	}
	return records, nil
}

// TotalCost sums transport cost over the whole journal.
func (r *repository) TotalCost(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.LogisticsRecord{}).
		Select("SUM(transport_cost)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summing logistics cost")
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
