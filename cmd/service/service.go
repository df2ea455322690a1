package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "vehicle-app/docs" // 引入 swag 產出的 docs
	"vehicle-app/internal/cache"
	"vehicle-app/internal/config"
	"vehicle-app/internal/database"
	"vehicle-app/internal/handler"
	"vehicle-app/internal/logging"
	"vehicle-app/internal/metrics"
	"vehicle-app/internal/router"
	"vehicle-app/internal/service"
	"vehicle-app/internal/store"
)

const shutdownTimeout = 10 * time.Second

// 測試時替換
var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	waitForDB       = database.WaitForDB
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run migrations and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	return run(cmd.Context())
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if err := waitForDB(ctx, db, cfg.DBWaitRetries); err != nil {
		return fmt.Errorf("DB 無法使用: %w", err)
	}
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	var rdb cache.Cache
	if cfg.CacheEnabled() {
		rdb, err = newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("Redis 連線失敗: %w", err)
		}
		defer rdb.Close()
	} else {
		logger.Info("REDIS_ADDR not set, list cache disabled")
	}

	e := newServer(cfg, db, rdb, logger)
	logger.Info("server starting", slog.String("addr", cfg.Addr()))
	return serve(ctx, e, cfg.Addr())
}

// newServer 組裝 echo、中介層與所有路由
func newServer(cfg config.Config, db database.DB, rdb cache.Cache, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	m := metrics.New()
	e.Use(middleware.Recover())
	e.Use(logging.RequestLogger(logger))
	e.Use(m.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	tokens := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	auth := service.NewAuthService(store.NewUserStore(db), service.NewBcryptHasher(cfg.BcryptCost), tokens, cfg.AllowAdminSignup)
	catalog := service.NewCatalog(store.NewCatalog(db), rdb, cfg.CacheTTL)

	router.Setup(e, router.Deps{DB: db, Cache: rdb, Auth: auth, Catalog: catalog})
	e.GET("/metrics", m.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

// serve 在 ctx 結束時 graceful shutdown
func serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, addr) }()

	select {
	case err := <-errCh:
		return ignoreClosed(err)
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return ignoreClosed(<-errCh)
	}
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
