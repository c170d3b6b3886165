package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jalvarez-dev/supplysim-backend/api/middleware"
	ordersvc "github.com/jalvarez-dev/supplysim-backend/internal/orders"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
)

func TestFulfillOrder(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	actorID := uuid.New()
	orderID := uuid.New()

	makeRequest := func(ctx context.Context, orderParam, body string, stub *stubOrderService) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+orderParam+"/fulfill", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		routeCtx := chi.NewRouteContext()
		routeCtx.URLParams.Add("id", orderParam)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, routeCtx)
		req = req.WithContext(ctx)
		rec := httptest.NewRecorder()
		FulfillOrder(stub, logg).ServeHTTP(rec, req)
		return rec
	}

	t.Run("invalid order id", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), actorID.String())
		rec := makeRequest(ctx, "not-a-uuid", `{"origin":"Warehouse A"}`, &stubOrderService{})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		rec := makeRequest(context.Background(), orderID.String(), `{"origin":"Warehouse A"}`, &stubOrderService{})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 when user context missing, got %d", rec.Code)
		}
	})

	t.Run("success marks processed", func(t *testing.T) {
		ctx := middleware.WithUserID(context.Background(), actorID.String())
		stub := &stubOrderService{}
		rec := makeRequest(ctx, orderID.String(), `{"origin":"Warehouse A"}`, stub)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.fulfilledID != orderID || stub.fulfilledOrigin != "Warehouse A" {
			t.Fatalf("unexpected fulfill call: %s from %q", stub.fulfilledID, stub.fulfilledOrigin)
		}
		if stub.processedID != orderID {
			t.Fatalf("expected MarkProcessed after fulfill, got %s", stub.processedID)
		}
	})
}

func TestListOrdersByRole(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})

	t.Run("admin sees all", func(t *testing.T) {
		ctx := middleware.WithRole(context.Background(), string(enums.RoleAdmin))
		stub := &stubOrderService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		ListOrders(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !stub.listedAll {
			t.Fatalf("expected admin listing to use ListAll")
		}
	})

	t.Run("user sees own", func(t *testing.T) {
		ctx := middleware.WithRole(context.Background(), string(enums.RoleUser))
		ctx = middleware.WithUsername(ctx, "user1")
		stub := &stubOrderService{}
		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		ListOrders(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.listedCustomer != "user1" {
			t.Fatalf("expected listing scoped to user1, got %q", stub.listedCustomer)
		}
	})
}

type stubOrderService struct {
	fulfilledID     uuid.UUID
	fulfilledOrigin string
	processedID     uuid.UUID
	listedAll       bool
	listedCustomer  string
}

func (s *stubOrderService) Place(ctx context.Context, input ordersvc.PlaceOrderInput) (*models.Order, error) {
	return &models.Order{SKU: input.SKU, Quantity: input.Quantity, Status: enums.OrderStatusPending}, nil
}

func (s *stubOrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	s.listedAll = true
	return nil, nil
}

func (s *stubOrderService) ListByCustomer(ctx context.Context, customerName string) ([]models.Order, error) {
	s.listedCustomer = customerName
	return nil, nil
}

func (s *stubOrderService) Fulfill(ctx context.Context, orderID uuid.UUID, origin string, actorID uuid.UUID) (*ordersvc.FulfillmentResult, error) {
	s.fulfilledID = orderID
	s.fulfilledOrigin = origin
	return &ordersvc.FulfillmentResult{
		Order:     &models.Order{ID: orderID, Status: enums.OrderStatusPending},
		Shipment:  &models.LogisticsRecord{Origin: origin},
		UnitCost:  decimal.RequireFromString("150.00"),
		TotalCost: decimal.RequireFromString("750.00"),
	}, nil
}

func (s *stubOrderService) MarkProcessed(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	s.processedID = orderID
	return &models.Order{ID: orderID, Status: enums.OrderStatusProcessed}, nil
}

func (s *stubOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	return nil
}
