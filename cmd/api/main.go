package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jalvarez-dev/supplysim-backend/api/routes"
	"github.com/jalvarez-dev/supplysim-backend/internal/advisor"
	"github.com/jalvarez-dev/supplysim-backend/internal/audit"
	"github.com/jalvarez-dev/supplysim-backend/internal/catalog"
	"github.com/jalvarez-dev/supplysim-backend/internal/forecast"
	"github.com/jalvarez-dev/supplysim-backend/internal/ledger"
	"github.com/jalvarez-dev/supplysim-backend/internal/orders"
	"github.com/jalvarez-dev/supplysim-backend/internal/reports"
	routesdata "github.com/jalvarez-dev/supplysim-backend/internal/routes"
	"github.com/jalvarez-dev/supplysim-backend/internal/simulation"
	"github.com/jalvarez-dev/supplysim-backend/internal/transfer"
	"github.com/jalvarez-dev/supplysim-backend/internal/users"
	"github.com/jalvarez-dev/supplysim-backend/pkg/config"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
	"github.com/jalvarez-dev/supplysim-backend/pkg/migrate"
	"github.com/jalvarez-dev/supplysim-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency replay disabled")
	}

	gdb := dbClient.DB()

	ledgerRepo := ledger.NewRepository(gdb)
	routesRepo := routesdata.NewRepository(gdb)
	auditRepo := audit.NewRepository(gdb)
	logisticsRepo := transfer.NewRepository(gdb)
	trail := audit.NewRecorder(auditRepo)

	transferService, err := transfer.NewService(dbClient, ledgerRepo, logisticsRepo, trail, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create transfer service", err)
		os.Exit(1)
	}
	catalogService, err := catalog.NewService(dbClient, catalog.NewRepository(gdb), ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	ordersService, err := orders.NewService(orders.NewRepository(gdb), routesRepo, transferService)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}
	advisorService, err := advisor.NewService(gdb, routesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create advisor service", err)
		os.Exit(1)
	}
	forecastService, err := forecast.NewService(forecast.NewRepository(gdb), ledgerRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create forecast service", err)
		os.Exit(1)
	}
	reportsService, err := reports.NewService(gdb, ledgerRepo, logisticsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}
	simulationService, err := simulation.NewService(dbClient, trail, cfg.Password, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create simulation service", err)
		os.Exit(1)
	}
	usersService, err := users.NewService(users.NewRepository(gdb), cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			usersService,
			catalogService,
			ledgerRepo,
			transferService,
			ordersService,
			advisorService,
			forecastService,
			reportsService,
			auditRepo,
			simulationService,
		),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-shutdown:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
