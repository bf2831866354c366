package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/salesorder/internal/accounting/accounts"
	"github.com/odyssey-erp/salesorder/internal/masterdata/items"
	"github.com/odyssey-erp/salesorder/internal/masterdata/taxes"
	"github.com/odyssey-erp/salesorder/internal/observability"
	"github.com/odyssey-erp/salesorder/internal/platform/httpx"
	"github.com/odyssey-erp/salesorder/internal/sales/customers"
	"github.com/odyssey-erp/salesorder/internal/sales/orders"
	"github.com/odyssey-erp/salesorder/jobs"
)

// Pinger reports backing-store liveness for /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AccountsHandler  *accounts.Handler
	CustomersHandler *customers.Handler
	ItemsHandler     *items.Handler
	TaxesHandler     *taxes.Handler
	OrdersHandler    *orders.Handler
	JobHandler       *jobs.Handler

	Database Pinger
	Metrics  *observability.Metrics
}

// NewRouter constructs the chi.Router with the service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	if !params.Config.IsProduction() {
		r.Use(chimw.Logger)
	}

	r.Get("/healthz", healthz(params.Database, params.Logger))

	r.Route("/api", func(r chi.Router) {
		if params.AccountsHandler != nil {
			r.Route("/accounts", params.AccountsHandler.MountRoutes)
		}
		if params.CustomersHandler != nil {
			r.Route("/customers", params.CustomersHandler.MountRoutes)
		}
		if params.ItemsHandler != nil {
			r.Route("/inventory-items", params.ItemsHandler.MountRoutes)
		}
		if params.TaxesHandler != nil {
			r.Route("/taxes", params.TaxesHandler.MountRoutes)
		}
		if params.OrdersHandler != nil {
			r.Route("/sales-orders", params.OrdersHandler.MountRoutes)
		}
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no route for "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Problem(w, http.StatusMethodNotAllowed, "Method Not Allowed", r.Method+" is not supported here")
	})
	return r
}

func healthz(db Pinger, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				logger.Warn("healthz database ping", slog.Any("error", err))
				httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "unreachable"})
				return
			}
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
