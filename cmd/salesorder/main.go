package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/salesorder/cmd/salesorder/cli"
	"github.com/odyssey-erp/salesorder/internal/accounting/accounts"
	"github.com/odyssey-erp/salesorder/internal/app"
	"github.com/odyssey-erp/salesorder/internal/masterdata/items"
	"github.com/odyssey-erp/salesorder/internal/masterdata/taxes"
	"github.com/odyssey-erp/salesorder/internal/observability"
	"github.com/odyssey-erp/salesorder/internal/platform/cache"
	"github.com/odyssey-erp/salesorder/internal/platform/db"
	"github.com/odyssey-erp/salesorder/internal/sales/customers"
	"github.com/odyssey-erp/salesorder/internal/sales/orders"
	"github.com/odyssey-erp/salesorder/internal/shared"
	"github.com/odyssey-erp/salesorder/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Default().Warn("load .env", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	decimal.MarshalJSONWithoutQuotes = true

	asynqOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	if len(os.Args) > 1 && os.Args[1] == "jobs" {
		jobsCLI := cli.NewJobsCLI(asynqOpts)
		defer jobsCLI.Close()
		if err := jobsCLI.Run(ctx, os.Args[2:], os.Stdout); err != nil {
			logger.Error("jobs", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := db.Migrate(dbpool); err != nil {
			logger.Error("migrate", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied")
		return
	}
	if cfg.MigrateOnStart {
		if err := db.Migrate(dbpool); err != nil {
			logger.Error("migrate", slog.Any("error", err))
			os.Exit(1)
		}
	}

	redisOpts := cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
	var idempotencyStore *shared.IdempotencyStore
	redisClient, err := cache.New(ctx, redisOpts)
	if err != nil {
		// Idempotency reservation is skipped while Redis is unavailable.
		logger.Warn("redis unavailable, idempotency keys disabled", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		idempotencyStore = shared.NewIdempotencyStore(redisClient, cfg.IdempotencyTTL)
	}

	jobClient, err := jobs.NewClient(asynqOpts)
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	inspector := asynq.NewInspector(asynqOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	numbers, err := orders.NewSnowflakeNumbers(cfg.SnowflakeNode)
	if err != nil {
		logger.Error("init order numbers", slog.Any("error", err))
		os.Exit(1)
	}

	accountsService := accounts.NewService(accounts.NewRepository(dbpool))
	customersService := customers.NewService(customers.NewRepository(dbpool))
	itemsService := items.NewService(items.NewRepository(dbpool))
	taxesService := taxes.NewService(taxes.NewRepository(dbpool), accountsService)

	ordersService := orders.NewService(
		orders.NewRepository(dbpool),
		orders.NewAssembler(taxesService, numbers),
		orders.References{
			Customers: customersService,
			Accounts:  accountsService,
			Items:     itemsService,
		},
		jobClient,
		logger,
	)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AccountsHandler:  accounts.NewHandler(logger, accountsService),
		CustomersHandler: customers.NewHandler(logger, customersService),
		ItemsHandler:     items.NewHandler(logger, itemsService),
		TaxesHandler:     taxes.NewHandler(logger, taxesService),
		OrdersHandler:    orders.NewHandler(logger, ordersService, idempotencyStore),
		JobHandler:       jobs.NewHandler(inspector, logger),
		Database:         dbpool,
		Metrics:          observability.NewMetrics(),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
