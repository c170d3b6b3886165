package catalog

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/internal/ledger"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateProductInput is the operator payload for a new catalog entry.
type CreateProductInput struct {
	SKU         string
	Name        string
	Description string
	Threshold   int
}

// UpdateProductInput mutates name, description, and reorder threshold.
type UpdateProductInput struct {
	Name        string
	Description string
	Threshold   int
}

// Service manages the product catalog. Deleting a product clears its stock
// entries first so the ledger never references a missing SKU.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Get(ctx context.Context, sku string) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, sku string, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, sku string) error
}

type service struct {
	tx     txRunner
	repo   Repository
	ledger ledger.Repository
}

// NewService builds the catalog service.
func NewService(tx txRunner, repo Repository, ledgerRepo ledger.Repository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{tx: tx, repo: repo, ledger: ledgerRepo}, nil
}

// NormalizeSKU upper-cases and trims a SKU the way every write path does.
func NormalizeSKU(sku string) string {
	return strings.ToUpper(strings.TrimSpace(sku))
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	sku := NormalizeSKU(input.SKU)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.Threshold < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "threshold must be at least 1")
	}

	product := &models.Product{
		SKU:         sku,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Threshold:   input.Threshold,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *service) Get(ctx context.Context, sku string) (*models.Product, error) {
	return s.repo.FindBySKU(ctx, NormalizeSKU(sku))
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, sku string, input UpdateProductInput) (*models.Product, error) {
	sku = NormalizeSKU(sku)
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.Threshold < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "threshold must be at least 1")
	}

	product := &models.Product{
		SKU:         sku,
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Threshold:   input.Threshold,
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.repo.FindBySKU(ctx, sku)
}

// Delete removes a product and its stock entries in one transaction.
func (s *service) Delete(ctx context.Context, sku string) error {
	sku = NormalizeSKU(sku)
	if sku == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ledger.WithTx(tx).DeleteForSKU(ctx, sku); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Delete(ctx, sku)
	})
}
