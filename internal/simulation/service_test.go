package simulation

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/internal/audit"
	"github.com/jalvarez-dev/supplysim-backend/pkg/config"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
	"github.com/jalvarez-dev/supplysim-backend/pkg/security"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r *gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:simulation_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Product{},
		&models.StockEntry{},
		&models.Route{},
		&models.LogisticsRecord{},
		&models.Order{},
		&models.DemandForecast{},
		&models.AuditLog{},
		&models.User{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T, db *gorm.DB, allow bool) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "simulation-test"})
	svc, err := NewService(
		&gormTxRunner{db: db},
		audit.NewRecorder(audit.NewRepository(db)),
		testPasswordConfig(),
		config.FeatureFlagsConfig{AllowReset: allow},
		logg,
	)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestServiceResetRestoresBaseline(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, true)
	ctx := context.Background()

	// Dirty state that the reset must clear.
	dirty := []any{
		&models.Product{SKU: "SKU999", Name: "Ghost", Threshold: 1},
		&models.StockEntry{SKU: "SKU999", Location: "Warehouse Z", Quantity: 3},
		&models.Order{ID: uuid.New(), SKU: "SKU999", Quantity: 1, CustomerName: "X", CustomerLocation: "Y", Status: enums.OrderStatusPending},
		&models.LogisticsRecord{SKU: "SKU999", Origin: "A", Destination: "B", TransportCost: decimal.RequireFromString("1.00")},
	}
	for _, row := range dirty {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("seed dirty state %T: %v", row, err)
		}
	}

	if err := svc.Reset(ctx, uuid.New()); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	var products []models.Product
	if err := db.Order("sku").Find(&products).Error; err != nil {
		t.Fatalf("read products: %v", err)
	}
	if len(products) != 3 || products[0].SKU != "SKU001" || products[2].Threshold != 8 {
		t.Fatalf("unexpected baseline products: %+v", products)
	}

	var stockCount, routeCount, orderCount int64
	db.Model(&models.StockEntry{}).Count(&stockCount)
	db.Model(&models.Route{}).Count(&routeCount)
	db.Model(&models.Order{}).Count(&orderCount)
	if stockCount != 3 {
		t.Fatalf("expected 3 stock entries, got %d", stockCount)
	}
	if routeCount != 8 {
		t.Fatalf("expected 8 routes, got %d", routeCount)
	}
	if orderCount != 0 {
		t.Fatalf("orders must be wiped, got %d", orderCount)
	}

	var entry models.StockEntry
	if err := db.Where("sku = ? AND location = ?", "SKU001", "Warehouse A").First(&entry).Error; err != nil {
		t.Fatalf("read baseline stock: %v", err)
	}
	if entry.Quantity != 20 {
		t.Fatalf("expected 20 units at Warehouse A, got %d", entry.Quantity)
	}

	var admin models.User
	if err := db.Where("username = ?", "admin1").First(&admin).Error; err != nil {
		t.Fatalf("read seeded admin: %v", err)
	}
	if admin.Role != enums.RoleAdmin {
		t.Fatalf("expected admin role, got %s", admin.Role)
	}
	ok, err := security.VerifyPassword("adminpass123", admin.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("seeded admin password must verify, ok=%v err=%v", ok, err)
	}

	// Reset writes its own trail entry after the wipe.
	var trailCount int64
	db.Model(&models.AuditLog{}).Count(&trailCount)
	if trailCount != 1 {
		t.Fatalf("expected one audit entry, got %d", trailCount)
	}
}

func TestServiceResetDisabledByFlag(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db, false)

	err := svc.Reset(context.Background(), uuid.New())
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden when flag is off, got %v", err)
	}
}
