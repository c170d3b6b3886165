package migrate

import (
	"context"
	"fmt"

	"github.com/jalvarez-dev/supplysim-backend/pkg/config"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db/models"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
	"gorm.io/gorm"
)

// AllModels is the schema set in dependency order.
func AllModels() []any {
	return []any{
		&models.User{},
		&models.Product{},
		&models.StockEntry{},
		&models.Route{},
		&models.LogisticsRecord{},
		&models.Order{},
		&models.DemandForecast{},
		&models.AuditLog{},
	}
}

// Run applies the model schema to the provided connection.
func Run(conn *gorm.DB) error {
	if err := conn.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto-migrating schema: %w", err)
	}
	return nil
}

// MaybeRunDev executes migrations automatically when the app is running in
// dev mode and the feature flag is enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	ctx = logg.WithField(ctx, "env", cfg.App.Env)
	logg.Info(ctx, "running schema migrations (dev auto-run)")

	if err := Run(client.DB()); err != nil {
		return err
	}

	logg.Info(ctx, "schema migrations completed")
	return nil
}
