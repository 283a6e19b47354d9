// Package api boots the bookshop HTTP process: observability, storage,
// services, and routes.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpapi "github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/adapters/http"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/adapters/memory"
	shoppostgres "github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/adapters/persistence/postgres"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/application"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/seed"
	"github.com/bookshop-labs/go-bookshop-api/internal/domains/shop/storage"
	platformobservability "github.com/bookshop-labs/go-bookshop-api/internal/platform/observability"
	platformpostgres "github.com/bookshop-labs/go-bookshop-api/internal/platform/postgres"
)

// Run boots the bookshop HTTP API with observability and storage wired.
func Run(ctx context.Context) error {
	const serviceName = "bookshop-api"
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	store, cleanup, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	members := application.NewMemberService(store)
	items := application.NewItemService(store)
	orders := application.NewOrderService(store)

	if cfg.SeedDemoData {
		services := seed.Services{Members: members, Items: items, Orders: orders}
		if err := seed.Run(ctx, services); err != nil {
			logger.Warn("failed to seed demo data", slog.String("error", err.Error()))
		} else {
			logger.Info("demo data seeded")
		}
	}

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	httpapi.NewAPI(members, items, orders, logger).Register(router)

	addr := ":" + cfg.Port
	logger.Info("bookshop API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("bookshop API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildStore prefers postgres when a DSN is configured and falls back to the
// in-memory store otherwise.
func buildStore(ctx context.Context, cfg Config, logger *slog.Logger) (storage.Store, func(), error) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, using in-memory store")
		return memory.NewStore(), func() {}, nil
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, using in-memory store", slog.String("error", err.Error()))
		return memory.NewStore(), func() {}, nil
	}
	if err := shoppostgres.Migrate(db); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, err
	}
	logger.Info("store configured with postgres")
	return shoppostgres.NewStore(db), func() { _ = sqlDB.Close() }, nil
}
