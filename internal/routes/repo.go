package routes

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

// Repository reads the static route table and derives the location
// registry from it. Routes are reference data; duplicate rows for a lane
// are tolerated and the minimum-cost row wins for every lookup form, ties
// broken by lowest id.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	LookupCost(ctx context.Context, origin, destination string) (decimal.Decimal, error)
	Cheapest(ctx context.Context, origin, destination string) (*models.Route, error)
	ValidOrigins(ctx context.Context, destination, sku string) ([]string, error)
	Origins(ctx context.Context) ([]string, error)
	Destinations(ctx context.Context) ([]string, error)
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

// LookupCost returns the cost of the cheapest route row for the lane.
func (r *repository) LookupCost(ctx context.Context, origin, destination string) (decimal.Decimal, error) {
	route, err := r.Cheapest(ctx, origin, destination)
	if err != nil {
		return decimal.Zero, err
	}
	return route.Cost, nil
}

// Cheapest returns the minimum-cost route row for the lane.
func (r *repository) Cheapest(ctx context.Context, origin, destination string) (*models.Route, error) {
	var route models.Route
	err := r.db.WithContext(ctx).
		Where("origin = ? AND destination = ?", origin, destination).
		Order("cost ASC, id ASC").
		First(&route).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNoRouteFound, "no route for lane").
			WithDetails(map[string]any{"origin": origin, "destination": destination})
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "looking up route")
	}
	return &route, nil
}

// ValidOrigins lists origins that have a route to the destination and hold
// at least one unit of the SKU.
func (r *repository) ValidOrigins(ctx context.Context, destination, sku string) ([]string, error) {
	var origins []string
	err := r.db.WithContext(ctx).
		Table("routes").
		Distinct("routes.origin").
		Joins("JOIN stock_entries ON stock_entries.location = routes.origin").
		Where("routes.destination = ?", destination).
		Where("stock_entries.sku = ? AND stock_entries.quantity > 0", sku).
		Order("routes.origin ASC").
		Pluck("routes.origin", &origins).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing valid origins")
	}
	return origins, nil
}

// Origins returns every distinct route origin that is not a retail hub.
// Retail hubs are sinks and never act as sources.
func (r *repository) Origins(ctx context.Context) ([]string, error) {
	var origins []string
	err := r.db.WithContext(ctx).
		Model(&models.Route{}).
		Distinct("origin").
		Where("origin NOT LIKE ?", enums.RetailHubPrefix+"%").
		Order("origin ASC").
		Pluck("origin", &origins).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing route origins")
	}
	return origins, nil
}

// Destinations returns every distinct route destination, hubs included.
func (r *repository) Destinations(ctx context.Context) ([]string, error) {
	var destinations []string
	err := r.db.WithContext(ctx).
		Model(&models.Route{}).
		Distinct("destination").
		Order("destination ASC").
		Pluck("destination", &destinations).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing route destinations")
	}
	return destinations, nil
}
