package routes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:routes_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Route{}, &models.StockEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedRoute(t *testing.T, db *gorm.DB, origin, destination, cost, distance string) {
	t.Helper()
	route := models.Route{
		Origin:      origin,
		Destination: destination,
		Cost:        decimal.RequireFromString(cost),
		DistanceKM:  decimal.RequireFromString(distance),
	}
	if err := db.Create(&route).Error; err != nil {
		t.Fatalf("seed route: %v", err)
	}
}

func TestRepositoryCheapestPicksMinimumCost(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRoute(t, db, "Warehouse A", "Retail Hub 1", "180.00", "26.0")
	seedRoute(t, db, "Warehouse A", "Retail Hub 1", "150.00", "25.5")

	route, err := repo.Cheapest(ctx, "Warehouse A", "Retail Hub 1")
	if err != nil {
		t.Fatalf("Cheapest: %v", err)
	}
	if !route.Cost.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("expected minimum-cost row, got %s", route.Cost)
	}
	if !route.DistanceKM.Equal(decimal.RequireFromString("25.5")) {
		t.Fatalf("expected distance of cheapest row, got %s", route.DistanceKM)
	}

	cost, err := repo.LookupCost(ctx, "Warehouse A", "Retail Hub 1")
	if err != nil {
		t.Fatalf("LookupCost: %v", err)
	}
	if !cost.Equal(route.Cost) {
		t.Fatalf("lookup and cheapest must agree, got %s vs %s", cost, route.Cost)
	}
}

func TestRepositoryCheapestTieBreaksByID(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRoute(t, db, "Warehouse B", "Retail Hub 2", "200.00", "40.0")
	seedRoute(t, db, "Warehouse B", "Retail Hub 2", "200.00", "41.0")

	first, err := repo.Cheapest(ctx, "Warehouse B", "Retail Hub 2")
	if err != nil {
		t.Fatalf("Cheapest: %v", err)
	}
	second, err := repo.Cheapest(ctx, "Warehouse B", "Retail Hub 2")
	if err != nil {
		t.Fatalf("Cheapest again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("tie-break must be stable: %d vs %d", first.ID, second.ID)
	}
	if !first.DistanceKM.Equal(decimal.RequireFromString("40.0")) {
		t.Fatalf("expected earliest row on tie, got %s", first.DistanceKM)
	}
}

func TestRepositoryLookupCostNotFound(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)

	_, err := repo.LookupCost(context.Background(), "Warehouse X", "Nowhere")
	if !pkgerrors.IsCode(err, pkgerrors.CodeNoRouteFound) {
		t.Fatalf("expected no route error, got %v", err)
	}
}

func TestRepositoryValidOrigins(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRoute(t, db, "Warehouse A", "Retail Hub 1", "150.00", "25.5")
	seedRoute(t, db, "Warehouse B", "Retail Hub 1", "120.00", "20.0")
	seedRoute(t, db, "Warehouse C", "Retail Hub 2", "90.00", "10.0")

	entries := []models.StockEntry{
		{SKU: "SKU001", Location: "Warehouse A", Quantity: 20},
		{SKU: "SKU001", Location: "Warehouse B", Quantity: 0},
		{SKU: "SKU001", Location: "Warehouse C", Quantity: 9},
	}
	for i := range entries {
		if err := db.Create(&entries[i]).Error; err != nil {
			t.Fatalf("seed stock: %v", err)
		}
	}

	origins, err := repo.ValidOrigins(ctx, "Retail Hub 1", "SKU001")
	if err != nil {
		t.Fatalf("ValidOrigins: %v", err)
	}
	if len(origins) != 1 || origins[0] != "Warehouse A" {
		t.Fatalf("expected only Warehouse A (stock and route), got %v", origins)
	}
}

func TestRepositoryRegistry(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedRoute(t, db, "Warehouse A", "Retail Hub 1", "150.00", "25.5")
	seedRoute(t, db, "Warehouse A", "Warehouse B", "100.00", "30.0")
	seedRoute(t, db, "Retail Hub 1", "Warehouse A", "150.00", "25.5")

	origins, err := repo.Origins(ctx)
	if err != nil {
		t.Fatalf("Origins: %v", err)
	}
	if len(origins) != 1 || origins[0] != "Warehouse A" {
		t.Fatalf("retail hubs must never be origins, got %v", origins)
	}

	destinations, err := repo.Destinations(ctx)
	if err != nil {
		t.Fatalf("Destinations: %v", err)
	}
	if len(destinations) != 3 {
		t.Fatalf("expected 3 destinations, got %v", destinations)
	}
}
