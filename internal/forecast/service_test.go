package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/internal/ledger"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:forecast_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.DemandForecast{}, &models.StockEntry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(NewRepository(db), ledger.NewRepository(db))
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestServiceRecordAndList(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	later := time.Now().AddDate(0, 0, 14)
	row, err := svc.Record(ctx, RecordForecastInput{SKU: " sku001 ", Value: 40, ForecastDate: later})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if row.SKU != "SKU001" || row.Value != 40 {
		t.Fatalf("unexpected forecast row: %+v", row)
	}

	rows, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one forecast, got %d", len(rows))
	}
}

func TestServiceRecordValidation(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	tests := []struct {
		name  string
		input RecordForecastInput
	}{
		{name: "empty sku", input: RecordForecastInput{Value: 1, ForecastDate: time.Now()}},
		{name: "negative value", input: RecordForecastInput{SKU: "SKU001", Value: -1, ForecastDate: time.Now()}},
		{name: "zero date", input: RecordForecastInput{SKU: "SKU001", Value: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Record(ctx, tc.input)
			if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestServiceAvailability(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	entries := []models.StockEntry{
		{SKU: "SKU001", Location: "Warehouse A", Quantity: 20},
		{SKU: "SKU001", Location: "Retail Hub 1", Quantity: 5},
	}
	for i := range entries {
		if err := db.Create(&entries[i]).Error; err != nil {
			t.Fatalf("seed stock: %v", err)
		}
	}

	got, err := svc.Availability(ctx, "sku001")
	if err != nil {
		t.Fatalf("Availability: %v", err)
	}
	if got.Available != 25 {
		t.Fatalf("expected 25 across locations, got %d", got.Available)
	}

	empty, err := svc.Availability(ctx, "SKU404")
	if err != nil {
		t.Fatalf("Availability unknown sku: %v", err)
	}
	if empty.Available != 0 {
		t.Fatalf("unknown sku reads as zero, got %d", empty.Available)
	}
}
