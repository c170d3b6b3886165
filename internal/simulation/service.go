package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jalvarez-dev/supplysim-backend/internal/audit"
	"github.com/jalvarez-dev/supplysim-backend/pkg/config"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
	"github.com/jalvarez-dev/supplysim-backend/pkg/security"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type seedProduct struct {
	sku         string
	name        string
	description string
	threshold   int
}

type seedStock struct {
	sku      string
	location string
	quantity int
}

type seedRoute struct {
	origin      string
	destination string
	cost        string
	distanceKM  string
}

type seedUser struct {
	username string
	password string
	role     enums.Role
}

var (
	seedProducts = []seedProduct{
		{"SKU001", "Laptop", "High-performance laptop", 5},
		{"SKU002", "Smartphone", "Latest model smartphone", 10},
		{"SKU003", "Router", "Dual-band WiFi router", 8},
	}
	seedInventory = []seedStock{
		{"SKU001", "Warehouse A", 20},
		{"SKU002", "Warehouse B", 15},
		{"SKU003", "Warehouse A", 5},
	}
	seedRoutes = []seedRoute{
		{"Warehouse A", "Retail Hub 1", "150.00", "25.5"},
		{"Warehouse A", "Retail Hub 2", "120.00", "5.0"},
		{"Warehouse A", "Retail Hub 3", "90.00", "10.0"},
		{"Warehouse B", "Retail Hub 1", "70.00", "15.0"},
		{"Warehouse B", "Retail Hub 2", "100.00", "25.0"},
		{"Warehouse B", "Retail Hub 3", "175.00", "30.0"},
		{"Warehouse B", "Warehouse A", "80.00", "20.0"},
		{"Warehouse A", "Warehouse B", "100.00", "30.0"},
	}
	seedUsers = []seedUser{
		{"admin1", "adminpass123", enums.RoleAdmin},
		{"user1", "userpass123", enums.RoleUser},
	}
)

// Service restores the simulation to its initial state: every table wiped
// and the baseline products, inventory, routes, and accounts reinserted in
// one transaction. Disabled unless the reset feature flag is on.
type Service interface {
	Reset(ctx context.Context, actorID uuid.UUID) error
}

type service struct {
	tx       txRunner
	trail    audit.Recorder
	password config.PasswordConfig
	allow    bool
	logg     *logger.Logger
}

// NewService builds the simulation service.
func NewService(tx txRunner, trail audit.Recorder, password config.PasswordConfig, flags config.FeatureFlagsConfig, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		tx:       tx,
		trail:    trail,
		password: password,
		allow:    flags.AllowReset,
		logg:     logg,
	}, nil
}

func (s *service) Reset(ctx context.Context, actorID uuid.UUID) error {
	if !s.allow {
		return pkgerrors.New(pkgerrors.CodeForbidden, "simulation reset is disabled")
	}

	// Hash outside the transaction; argon2id is deliberately slow.
	hashes := make(map[string]string, len(seedUsers))
	for _, u := range seedUsers {
		hash, err := security.HashPassword(u.password, s.password)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing seed password")
		}
		hashes[u.username] = hash
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		wipe := []any{
			&models.Order{},
			&models.LogisticsRecord{},
			&models.DemandForecast{},
			&models.AuditLog{},
			&models.StockEntry{},
			&models.Product{},
			&models.Route{},
			&models.User{},
		}
		for _, model := range wipe {
			if err := tx.WithContext(ctx).Where("1 = 1").Delete(model).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("wiping %T", model))
			}
		}

		for _, p := range seedProducts {
			row := models.Product{SKU: p.sku, Name: p.name, Description: p.description, Threshold: p.threshold}
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seeding products")
			}
		}
		for _, e := range seedInventory {
			row := models.StockEntry{SKU: e.sku, Location: e.location, Quantity: e.quantity}
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seeding inventory")
			}
		}
		for _, r := range seedRoutes {
			row := models.Route{
				Origin:      r.origin,
				Destination: r.destination,
				Cost:        decimal.RequireFromString(r.cost),
				DistanceKM:  decimal.RequireFromString(r.distanceKM),
			}
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seeding routes")
			}
		}
		for _, u := range seedUsers {
			row := models.User{
				ID:           uuid.New(),
				Username:     u.username,
				PasswordHash: hashes[u.username],
				Role:         u.role,
				CreatedAt:    time.Now(),
			}
			if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "seeding users")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.trail != nil {
		if err := s.trail.Record(ctx, actorID, "simulation reset to initial state"); err != nil {
			s.logg.Warn(ctx, "audit trail write failed: "+err.Error())
		}
	}
	return nil
}
