package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jalvarez-dev/supplysim-backend/api/controllers"
	"github.com/jalvarez-dev/supplysim-backend/api/middleware"
	"github.com/jalvarez-dev/supplysim-backend/internal/advisor"
	"github.com/jalvarez-dev/supplysim-backend/internal/audit"
	"github.com/jalvarez-dev/supplysim-backend/internal/catalog"
	"github.com/jalvarez-dev/supplysim-backend/internal/forecast"
	"github.com/jalvarez-dev/supplysim-backend/internal/ledger"
	"github.com/jalvarez-dev/supplysim-backend/internal/orders"
	"github.com/jalvarez-dev/supplysim-backend/internal/reports"
	"github.com/jalvarez-dev/supplysim-backend/internal/simulation"
	"github.com/jalvarez-dev/supplysim-backend/internal/transfer"
	"github.com/jalvarez-dev/supplysim-backend/internal/users"
	"github.com/jalvarez-dev/supplysim-backend/pkg/config"
	"github.com/jalvarez-dev/supplysim-backend/pkg/db"
	"github.com/jalvarez-dev/supplysim-backend/pkg/enums"
	"github.com/jalvarez-dev/supplysim-backend/pkg/logger"
	pkgredis "github.com/jalvarez-dev/supplysim-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *pkgredis.Client,
	usersService users.Service,
	catalogService catalog.Service,
	ledgerRepo ledger.Repository,
	transferService transfer.Service,
	ordersService orders.Service,
	advisorService advisor.Service,
	forecastService forecast.Service,
	reportsService reports.Service,
	auditRepo audit.Repository,
	simulationService simulation.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))

	var redisP controllers.Pinger
	var idemStore pkgredis.IdempotencyStore
	if redisClient != nil {
		redisP = redisClient
		idemStore = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", controllers.Register(usersService, logg))
		r.Post("/login", controllers.Login(usersService, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(cfg.Idempotency, idemStore, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.PlaceOrder(ordersService, logg))
			r.Get("/", controllers.ListOrders(ordersService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))
				r.Post("/{id}/fulfill", controllers.FulfillOrder(ordersService, logg))
				r.Delete("/{id}", controllers.DeleteOrder(ordersService, logg))
			})
		})

		r.Get("/advisor/origin", controllers.SuggestOrigin(advisorService, logg))
		r.Get("/routes/origins", controllers.ValidOrigins(advisorService, logg))
		r.Get("/locations", controllers.ListLocations(advisorService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(enums.RoleAdmin), logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.ListProducts(catalogService, logg))
				r.Post("/", controllers.CreateProduct(catalogService, logg))
				r.Put("/{sku}", controllers.UpdateProduct(catalogService, logg))
				r.Delete("/{sku}", controllers.DeleteProduct(catalogService, logg))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", controllers.ListInventory(ledgerRepo, logg))
				r.Get("/low-stock", controllers.LowStock(ledgerRepo, logg))
				r.Post("/", controllers.CreditInventory(ledgerRepo, logg))
				r.Put("/", controllers.SetInventory(ledgerRepo, logg))
			})

			r.Post("/transfers", controllers.CreateTransfer(transferService, logg))
			r.Get("/logistics", controllers.ListLogistics(transferService, logg))

			r.Route("/forecast", func(r chi.Router) {
				r.Get("/", controllers.ListForecasts(forecastService, logg))
				r.Post("/", controllers.CreateForecast(forecastService, logg))
				r.Get("/availability", controllers.ForecastAvailability(forecastService, logg))
			})

			r.Get("/reports/summary", controllers.ReportSummary(reportsService, logg))
			r.Get("/logs", controllers.ListLogs(auditRepo, logg))
			r.Post("/simulation/reset", controllers.ResetSimulation(simulationService, logg))
		})
	})

	return r
}
