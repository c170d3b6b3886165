package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:ledger_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.StockEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedEntry(t *testing.T, db *gorm.DB, sku, location string, qty int) {
	t.Helper()
	if err := db.Create(&models.StockEntry{SKU: sku, Location: location, Quantity: qty}).Error; err != nil {
		t.Fatalf("seed stock entry: %v", err)
	}
}

func seedProduct(t *testing.T, db *gorm.DB, sku, name string, threshold int) {
	t.Helper()
	if err := db.Create(&models.Product{SKU: sku, Name: name, Threshold: threshold}).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
}

func TestRepositoryQuantityAt(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedEntry(t, db, "SKU001", "Warehouse A", 20)

	qty, err := repo.QuantityAt(ctx, "SKU001", "Warehouse A")
	if err != nil {
		t.Fatalf("QuantityAt: %v", err)
	}
	if qty != 20 {
		t.Fatalf("expected 20, got %d", qty)
	}

	qty, err = repo.QuantityAt(ctx, "SKU001", "Warehouse Z")
	if err != nil {
		t.Fatalf("QuantityAt absent: %v", err)
	}
	if qty != 0 {
		t.Fatalf("absent entry should read as zero, got %d", qty)
	}
}

func TestRepositoryDebit(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedEntry(t, db, "SKU002", "Warehouse B", 15)

	if err := repo.Debit(ctx, "SKU002", "Warehouse B", 5); err != nil {
		t.Fatalf("Debit: %v", err)
	}
	qty, _ := repo.QuantityAt(ctx, "SKU002", "Warehouse B")
	if qty != 10 {
		t.Fatalf("expected 10 after debit, got %d", qty)
	}

	err := repo.Debit(ctx, "SKU002", "Warehouse B", 9999)
	if !pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	qty, _ = repo.QuantityAt(ctx, "SKU002", "Warehouse B")
	if qty != 10 {
		t.Fatalf("failed debit must not mutate, got %d", qty)
	}

	err = repo.Debit(ctx, "SKU002", "Nowhere", 1)
	if !pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock) {
		t.Fatalf("debit of absent entry should be insufficient stock, got %v", err)
	}

	err = repo.Debit(ctx, "SKU002", "Warehouse B", 0)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for zero amount, got %v", err)
	}
}

func TestRepositoryCredit(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := repo.Credit(ctx, "SKU003", "Retail Hub 1", 8); err != nil {
		t.Fatalf("Credit create: %v", err)
	}
	qty, _ := repo.QuantityAt(ctx, "SKU003", "Retail Hub 1")
	if qty != 8 {
		t.Fatalf("expected 8 after first credit, got %d", qty)
	}

	if err := repo.Credit(ctx, "SKU003", "Retail Hub 1", 2); err != nil {
		t.Fatalf("Credit increment: %v", err)
	}
	qty, _ = repo.QuantityAt(ctx, "SKU003", "Retail Hub 1")
	if qty != 10 {
		t.Fatalf("expected 10 after second credit, got %d", qty)
	}

	err := repo.Credit(ctx, "SKU003", "Retail Hub 1", -1)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRepositoryLocationsFor(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedEntry(t, db, "SKU001", "Warehouse A", 20)
	seedEntry(t, db, "SKU001", "Warehouse B", 3)
	seedEntry(t, db, "SKU001", "Retail Hub 1", 0)

	rows, err := repo.LocationsFor(ctx, "SKU001")
	if err != nil {
		t.Fatalf("LocationsFor: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(rows))
	}
	if rows[0].Location != "Warehouse A" || rows[0].Quantity != 20 {
		t.Fatalf("expected largest holding first, got %+v", rows[0])
	}
}

func TestRepositoryTotalForSKU(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedEntry(t, db, "SKU001", "Warehouse A", 20)
	seedEntry(t, db, "SKU001", "Warehouse B", 7)

	total, err := repo.TotalForSKU(ctx, "SKU001")
	if err != nil {
		t.Fatalf("TotalForSKU: %v", err)
	}
	if total != 27 {
		t.Fatalf("expected 27, got %d", total)
	}

	total, err = repo.TotalForSKU(ctx, "SKU404")
	if err != nil {
		t.Fatalf("TotalForSKU unknown: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0 for unknown sku, got %d", total)
	}
}

func TestRepositoryBelowThreshold(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "SKU003", "Router", 8)
	seedProduct(t, db, "SKU001", "Laptop", 5)
	seedEntry(t, db, "SKU003", "Warehouse A", 5)
	seedEntry(t, db, "SKU003", "Retail Hub 1", 1)
	seedEntry(t, db, "SKU001", "Warehouse A", 20)

	rows, err := repo.BelowThreshold(ctx)
	if err != nil {
		t.Fatalf("BelowThreshold: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 low stock row, got %d: %+v", len(rows), rows)
	}
	got := rows[0]
	if got.SKU != "SKU003" || got.Location != "Warehouse A" || got.Quantity != 5 || got.Threshold != 8 {
		t.Fatalf("unexpected low stock row: %+v", got)
	}
	if got.ProductName != "Router" {
		t.Fatalf("expected joined product name, got %q", got.ProductName)
	}
}

func TestRepositoryUpsert(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	if err := repo.Upsert(ctx, "SKU001", "Warehouse A", 12); err != nil {
		t.Fatalf("Upsert create: %v", err)
	}
	if err := repo.Upsert(ctx, "SKU001", "Warehouse A", 3); err != nil {
		t.Fatalf("Upsert overwrite: %v", err)
	}
	qty, _ := repo.QuantityAt(ctx, "SKU001", "Warehouse A")
	if qty != 3 {
		t.Fatalf("expected overwrite to 3, got %d", qty)
	}

	err := repo.Upsert(ctx, "SKU001", "Warehouse A", -1)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRepositoryDeleteForSKU(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedEntry(t, db, "SKU001", "Warehouse A", 20)
	seedEntry(t, db, "SKU001", "Warehouse B", 4)
	seedEntry(t, db, "SKU002", "Warehouse B", 15)

	if err := repo.DeleteForSKU(ctx, "SKU001"); err != nil {
		t.Fatalf("DeleteForSKU: %v", err)
	}

	locations, err := repo.Locations(ctx)
	if err != nil {
		t.Fatalf("Locations: %v", err)
	}
	if len(locations) != 1 || locations[0] != "Warehouse B" {
		t.Fatalf("expected only Warehouse B to remain, got %v", locations)
	}
	qty, _ := repo.QuantityAt(ctx, "SKU002", "Warehouse B")
	if qty != 15 {
		t.Fatalf("unrelated sku must survive, got %d", qty)
	}
}
