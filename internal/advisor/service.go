package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/internal/routes"
	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

// Suggestion is the cheapest feasible source for a SKU and destination.
type Suggestion struct {
	Origin string          `json:"origin"`
	Cost   decimal.Decimal `json:"cost"`
}

// Locations is the registry split consumed by the UI: source-capable
// origins and all route destinations.
type Locations struct {
	Origins      []string `json:"origins"`
	Destinations []string `json:"destinations"`
}

// Service answers read-only sourcing questions over the stock ledger and
// route table. Safe to call speculatively; suggestions may be stale by the
// time a transfer runs and the transfer's own sufficiency check is
// authoritative.
type Service interface {
	SuggestCheapestOrigin(ctx context.Context, sku, destination string) (*Suggestion, error)
	ValidOrigins(ctx context.Context, destination, sku string) ([]string, error)
	Locations(ctx context.Context) (*Locations, error)
}

type service struct {
	db     *gorm.DB
	routes routes.Repository
}

// NewService builds the origin advisor.
func NewService(db *gorm.DB, routesRepo routes.Repository) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if routesRepo == nil {
		return nil, fmt.Errorf("routes repository required")
	}
	return &service{db: db, routes: routesRepo}, nil
}

// SuggestCheapestOrigin returns the minimum-cost origin among warehouses
// holding stock of the SKU with a route row to the destination, or NotFound
// when no candidate exists.
func (s *service) SuggestCheapestOrigin(ctx context.Context, sku, destination string) (*Suggestion, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	destination = strings.TrimSpace(destination)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if destination == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "destination required")
	}

	var suggestion Suggestion
	err := s.db.WithContext(ctx).
		Table("routes").
		Select("routes.origin, routes.cost").
		Joins("JOIN stock_entries ON stock_entries.location = routes.origin").
		Where("routes.destination = ?", destination).
		Where("stock_entries.sku = ? AND stock_entries.quantity > 0", sku).
		Where("routes.origin NOT LIKE ?", enums.RetailHubPrefix+"%").
		Order("routes.cost ASC, routes.id ASC").
		Limit(1).
		Take(&suggestion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no feasible origin").
			WithDetails(map[string]any{"sku": sku, "destination": destination})
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "suggesting origin")
	}
	return &suggestion, nil
}

func (s *service) ValidOrigins(ctx context.Context, destination, sku string) ([]string, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	destination = strings.TrimSpace(destination)
	if sku == "" || destination == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku and destination required")
	}
	return s.routes.ValidOrigins(ctx, destination, sku)
}

func (s *service) Locations(ctx context.Context) (*Locations, error) {
	origins, err := s.routes.Origins(ctx)
	if err != nil {
		return nil, err
	}
	destinations, err := s.routes.Destinations(ctx)
	if err != nil {
		return nil, err
	}
	return &Locations{Origins: origins, Destinations: destinations}, nil
}
