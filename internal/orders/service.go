package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jalvarez-dev/supplysim-backend/internal/routes"
	"github.com/jalvarez-dev/supplysim-backend/internal/transfer"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

// PlaceOrderInput is a customer's order request.
type PlaceOrderInput struct {
	SKU              string
	Quantity         int
	CustomerName     string
	CustomerLocation string
}

// FulfillmentResult reports a completed fulfillment shipment.
type FulfillmentResult struct {
	Order     *models.Order           `json:"order"`
	Shipment  *models.LogisticsRecord `json:"shipment"`
	UnitCost  decimal.Decimal         `json:"unit_cost"`
	TotalCost decimal.Decimal         `json:"total_cost"`
}

// Service manages order intake and fulfillment. Fulfill ships stock but
// deliberately leaves the status flip to MarkProcessed, so the ledger
// mutation and the status mutation stay independently retryable.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (*models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	ListByCustomer(ctx context.Context, customerName string) ([]models.Order, error)
	Fulfill(ctx context.Context, orderID uuid.UUID, origin string, actorID uuid.UUID) (*FulfillmentResult, error)
	MarkProcessed(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
	Delete(ctx context.Context, orderID uuid.UUID) error
}

type service struct {
	repo      Repository
	routes    routes.Repository
	transfers transfer.Service
}

// NewService builds the orders service.
func NewService(repo Repository, routesRepo routes.Repository, transfers transfer.Service) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if routesRepo == nil {
		return nil, fmt.Errorf("routes repository required")
	}
	if transfers == nil {
		return nil, fmt.Errorf("transfer service required")
	}
	return &service{repo: repo, routes: routesRepo, transfers: transfers}, nil
}

func (s *service) Place(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	sku := strings.ToUpper(strings.TrimSpace(input.SKU))
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	customer := strings.TrimSpace(input.CustomerName)
	if customer == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	location := strings.TrimSpace(input.CustomerLocation)
	if location == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer location required")
	}

	order := &models.Order{
		SKU:              sku,
		Quantity:         input.Quantity,
		CustomerName:     customer,
		CustomerLocation: location,
		Status:           enums.OrderStatusPending,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) ListByCustomer(ctx context.Context, customerName string) ([]models.Order, error) {
	return s.repo.ListByCustomer(ctx, strings.TrimSpace(customerName))
}

// Fulfill resolves the route cost from origin to the order's customer
// location, prices the shipment at cost per unit times quantity, and
// delegates the movement to the transfer engine. InsufficientStock and
// NoRouteFound propagate unchanged, with zero ledger mutation.
func (s *service) Fulfill(ctx context.Context, orderID uuid.UUID, origin string, actorID uuid.UUID) (*FulfillmentResult, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "origin required")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != enums.OrderStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order already processed").
			WithDetails(map[string]any{"order_id": orderID.String()})
	}

	unitCost, err := s.routes.LookupCost(ctx, origin, order.CustomerLocation)
	if err != nil {
		return nil, err
	}
	totalCost := unitCost.Mul(decimal.NewFromInt(int64(order.Quantity)))

	shipment, err := s.transfers.Transfer(ctx, transfer.TransferInput{
		SKU:         order.SKU,
		Origin:      origin,
		Destination: order.CustomerLocation,
		Quantity:    order.Quantity,
		Cost:        totalCost,
		ActorID:     actorID,
	})
	if err != nil {
		return nil, err
	}

	return &FulfillmentResult{
		Order:     order,
		Shipment:  shipment,
		UnitCost:  unitCost,
		TotalCost: totalCost,
	}, nil
}

// MarkProcessed flips a fulfilled order to its terminal state.
func (s *service) MarkProcessed(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	if err := s.repo.UpdateStatus(ctx, orderID, enums.OrderStatusProcessed); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, orderID)
}

func (s *service) Delete(ctx context.Context, orderID uuid.UUID) error {
	return s.repo.DeletePending(ctx, orderID)
}
