package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	carthttp "github.com/drdrak3/silvershop-core/internal/domains/cart/adapters/http"
	cartmemory "github.com/drdrak3/silvershop-core/internal/domains/cart/adapters/memory"
	cartobs "github.com/drdrak3/silvershop-core/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/drdrak3/silvershop-core/internal/domains/cart/adapters/persistence/postgres"
	cartredis "github.com/drdrak3/silvershop-core/internal/domains/cart/adapters/redis"
	cartapp "github.com/drdrak3/silvershop-core/internal/domains/cart/application"
	cartports "github.com/drdrak3/silvershop-core/internal/domains/cart/ports"
	cataloghttp "github.com/drdrak3/silvershop-core/internal/domains/catalog/adapters/http"
	catalogmemory "github.com/drdrak3/silvershop-core/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/drdrak3/silvershop-core/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/drdrak3/silvershop-core/internal/domains/catalog/application"
	catalogdomain "github.com/drdrak3/silvershop-core/internal/domains/catalog/domain"
	catalogports "github.com/drdrak3/silvershop-core/internal/domains/catalog/ports"
	platformmigrations "github.com/drdrak3/silvershop-core/internal/platform/migrations"
	platformobservability "github.com/drdrak3/silvershop-core/internal/platform/observability"
	platformpostgres "github.com/drdrak3/silvershop-core/internal/platform/postgres"
)

// Run boots the shop HTTP API with observability, repositories, and hooks wired.
func Run(ctx context.Context) error {
	const serviceName = "silvershop-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
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

	db, cleanupDB := connectPostgres(ctx, cfg, logger)
	defer cleanupDB()
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	cartRepo, catalogRepo := buildRepositories(db, logger)
	binding, history, cleanupRedis := buildSessionStores(ctx, cfg, db, logger)
	defer cleanupRedis()

	catalogService := catalogapp.NewService(catalogRepo)

	deps := cartapp.Deps{
		Repo:    cartRepo,
		Binding: binding,
		History: history,
		Hooks:   cartapp.NewHooks(),
		Classes: catalogdomain.DefaultItemClasses(),
		Config:  cartapp.Config{AttachOwnerOnStart: cfg.AttachOwnerOnStart},
	}
	coreCartService := cartapp.NewService(deps, catalogService)
	cartService := cartobs.New(
		coreCartService,
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	router := NewRouter(carthttp.NewCartAPI(cartService), cataloghttp.NewCatalogAPI(catalogService))
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("shop API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("shop API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func connectPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("repositories configured with postgres")
	return db, func() { _ = sqlDB.Close() }
}

func buildRepositories(db *gorm.DB, logger *slog.Logger) (cartports.Repository, catalogports.Repository) {
	if db == nil {
		return cartmemory.NewRepository(), catalogmemory.NewRepository()
	}
	return cartpostgres.NewRepository(db), catalogpostgres.NewRepository(db)
}

// buildSessionStores picks the binding and history backends: redis when
// configured, then postgres, then memory.
func buildSessionStores(ctx context.Context, cfg Config, db *gorm.DB, logger *slog.Logger) (cartports.SessionBinding, cartports.HistoryStore, func()) {
	if cfg.RedisAddr != "" {
		rdb, err := cartredis.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("failed to connect to redis, falling back", slog.String("error", err.Error()))
		} else {
			logger.Info("session binding configured with redis")
			return cartredis.NewSessionBinding(rdb, cfg.SessionTTL), cartredis.NewHistoryStore(rdb), func() { _ = rdb.Close() }
		}
	}
	if db != nil {
		return cartpostgres.NewSessionBinding(db, cfg.SessionTTL), cartpostgres.NewHistoryStore(db), func() {}
	}
	return cartmemory.NewSessionBinding(), cartmemory.NewHistoryStore(), func() {}
}
