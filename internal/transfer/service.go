package transfer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/internal/audit"
	"github.com/jalvarez-dev/supplysim-backend/internal/ledger"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// TransferInput is a requested stock movement.
type TransferInput struct {
	SKU         string
	Origin      string
	Destination string
	Quantity    int
	Cost        decimal.Decimal
	ActorID     uuid.UUID
}

// Service is the transfer engine: the sole legal mutator of stock
// quantities outside operator-trusted corrections. A transfer debits the
// origin, credits (or creates) the destination, and appends one logistics
// record, atomically.
type Service interface {
	Transfer(ctx context.Context, input TransferInput) (*models.LogisticsRecord, error)
	ListLogistics(ctx context.Context, limit int) ([]models.LogisticsRecord, error)
}

type service struct {
	tx        txRunner
	ledger    ledger.Repository
	logistics Repository
	trail     audit.Recorder
	logg      *logger.Logger
}

// NewService builds the transfer engine.
func NewService(tx txRunner, ledgerRepo ledger.Repository, logisticsRepo Repository, trail audit.Recorder, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if logisticsRepo == nil {
		return nil, fmt.Errorf("logistics repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:        tx,
		ledger:    ledgerRepo,
		logistics: logisticsRepo,
		trail:     trail,
		logg:      logg,
	}, nil
}

func normalize(input TransferInput) (TransferInput, error) {
	input.SKU = strings.ToUpper(strings.TrimSpace(input.SKU))
	input.Origin = strings.TrimSpace(input.Origin)
	input.Destination = strings.TrimSpace(input.Destination)

	if input.SKU == "" {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if input.Origin == "" {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "origin required")
	}
	if input.Destination == "" {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "destination required")
	}
	if input.Quantity <= 0 {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.Cost.IsNegative() {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
	}
	return input, nil
}

// Transfer moves quantity of a SKU between locations. The debit, the
// credit, and the journal append commit together or not at all; the audit
// entry is written after commit and its failure never undoes a transfer.
func (s *service) Transfer(ctx context.Context, input TransferInput) (*models.LogisticsRecord, error) {
	input, err := normalize(input)
	if err != nil {
		return nil, err
	}

	record := &models.LogisticsRecord{
		SKU:           input.SKU,
		Origin:        input.Origin,
		Destination:   input.Destination,
		TransportCost: input.Cost,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		ledgerRepo := s.ledger.WithTx(tx)
		logisticsRepo := s.logistics.WithTx(tx)

		if err := ledgerRepo.Debit(ctx, input.SKU, input.Origin, input.Quantity); err != nil {
			return err
		}
		if err := ledgerRepo.Credit(ctx, input.SKU, input.Destination, input.Quantity); err != nil {
			return err
		}
		return logisticsRepo.Append(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.recordTrail(ctx, input)
	return record, nil
}

func (s *service) recordTrail(ctx context.Context, input TransferInput) {
	if s.trail == nil {
		return
	}
	action := fmt.Sprintf("transferred %d x %s from %s to %s (cost %s)",
		input.Quantity, input.SKU, input.Origin, input.Destination, input.Cost.StringFixed(2))
	if err := s.trail.Record(ctx, input.ActorID, action); err != nil {
		s.logg.Warn(s.logg.WithSKU(ctx, input.SKU), "audit trail write failed: "+err.Error())
	}
}

func (s *service) ListLogistics(ctx context.Context, limit int) ([]models.LogisticsRecord, error) {
	return s.logistics.List(ctx, limit)
}
