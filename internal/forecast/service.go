package forecast

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/internal/ledger"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

// Repository persists demand forecasts.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, row *models.DemandForecast) error
	List(ctx context.Context) ([]models.DemandForecast, error)
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

func (r *repository) Create(ctx context.Context, row *models.DemandForecast) error {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating forecast")
	}
	return nil
}

func (r *repository) List(ctx context.Context) ([]models.DemandForecast, error) {
	var rows []models.DemandForecast
	err := r.db.WithContext(ctx).
		Order("forecast_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing forecasts")
	}
	return rows, nil
}

// RecordForecastInput is an operator's projected demand figure.
type RecordForecastInput struct {
	SKU          string
	Value        int
	ForecastDate time.Time
}

// Availability pairs a forecast view with current network-wide stock.
type Availability struct {
	SKU       string `json:"sku"`
	Available int    `json:"available"`
}

// Service records demand projections and reports how much stock the whole
// network currently holds against them.
type Service interface {
	Record(ctx context.Context, input RecordForecastInput) (*models.DemandForecast, error)
	List(ctx context.Context) ([]models.DemandForecast, error)
	Availability(ctx context.Context, sku string) (*Availability, error)
}

type service struct {
	repo   Repository
	ledger ledger.Repository
}

// NewService builds the forecast service.
func NewService(repo Repository, ledgerRepo ledger.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("forecast repository required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo, ledger: ledgerRepo}, nil
}

func (s *service) Record(ctx context.Context, input RecordForecastInput) (*models.DemandForecast, error) {
	sku := strings.ToUpper(strings.TrimSpace(input.SKU))
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if input.Value < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "forecast value cannot be negative")
	}
	if input.ForecastDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "forecast date required")
	}

	row := &models.DemandForecast{
		SKU:          sku,
		Value:        input.Value,
		ForecastDate: input.ForecastDate,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *service) List(ctx context.Context) ([]models.DemandForecast, error) {
	return s.repo.List(ctx)
}

// Availability reports totalAcrossLocations for the SKU; zero when the SKU
// holds no stock anywhere.
func (s *service) Availability(ctx context.Context, sku string) (*Availability, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	total, err := s.ledger.TotalForSKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return &Availability{SKU: sku, Available: total}, nil
}
