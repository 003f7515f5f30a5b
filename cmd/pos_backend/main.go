package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SscSPs/pos_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger_app/internal/core/services"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
	"github.com/SscSPs/pos_ledger_app/internal/handlers"
	"github.com/SscSPs/pos_ledger_app/internal/middleware"
	"github.com/SscSPs/pos_ledger_app/internal/platform/config"
	"github.com/SscSPs/pos_ledger_app/internal/platform/persistence"
	"github.com/SscSPs/pos_ledger_app/internal/platform/scheduler"
	"github.com/SscSPs/pos_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/pos_ledger_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/pos_ledger_app/internal/repositories/memory"
	"github.com/SscSPs/pos_ledger_app/internal/utils"
	"github.com/SscSPs/pos_ledger_app/pkg/database"
)

const shutdownTimeout = 15 * time.Second

// @title POS Ledger API
// @version 1.0
// @description Point of sale ledger with day session cash reconciliation.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo, closeRepo, err := openSnapshotRepository(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to open snapshot storage", slog.String("backend", cfg.StorageBackend), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeRepo()

	gateway := persistence.NewGateway(repo, cfg.SnapshotKey,
		persistence.WithDebounce(cfg.PersistDebounce),
		persistence.WithTimeout(cfg.PersistTimeout),
		persistence.WithLogger(logger),
		persistence.WithCloudSyncer(persistence.NoopCloudSyncer{}),
	)
	store := state.NewStore(gateway.Load(context.Background(), cfg.DefaultBankAccountID))
	gateway.Start(store)

	serviceContainer := services.NewServiceContainer(cfg, store, nil)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "x-api-key")
	r.Use(cors.New(corsConfig))

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(rateLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recurring := scheduler.NewRecurringExpenseScheduler(serviceContainer.RecurringExpense, cfg.RecurringExpenseSchedule, cfg.RecurringExpenseAtStart, logger)
	if err := recurring.Start(); err != nil {
		logger.Error("Failed to start recurring expense scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage", cfg.StorageBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	recurring.Stop(shutdownCtx)
	if err := gateway.Close(shutdownCtx); err != nil {
		logger.Error("Final snapshot flush failed", slog.String("error", err.Error()))
	}
}

// openSnapshotRepository opens the configured storage backend. The returned
// func releases its connections.
func openSnapshotRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories.SnapshotRepositoryFacade, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repo, err := sqlite.NewSnapshotRepository(db)
		if err != nil {
			database.CloseSQLiteDB(db)
			return nil, nil, err
		}
		return repo, func() { database.CloseSQLiteDB(db) }, nil

	case config.StoragePostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, nil, err
		}
		if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations", logger); err != nil {
			database.ClosePgxPool(pool)
			return nil, nil, err
		}
		return pgsql.NewSnapshotRepository(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.StorageMemory:
		logger.Warn("Using in-memory snapshot storage, state is lost on restart")
		return memory.NewSnapshotRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
