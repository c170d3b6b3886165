package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/jalvarez-dev/supplysim-backend/api/responses"
	"github.com/jalvarez-dev/supplysim-backend/pkg/config"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db"
	pkgerrors "github.com/jalvarez-dev/supplysim-backend/pkg/errors"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
)

// Pinger is the health check surface a dependency exposes.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SupplySim-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when wired, redis. A nil redis pinger
// is skipped so the server can run without the idempotency store.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP db.Pinger, redisP Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SupplySim-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := dbP.Ping(ctx); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not ready"))
			return
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis not ready"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
