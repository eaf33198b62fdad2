// @title        Library System API
// @version      1.0
// @description  User directory and borrowing ledger for a library
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"os"
	"time"

	"library-system/internal/cache"
	"library-system/internal/config"
	"library-system/internal/database"
	"library-system/internal/logger"
	"library-system/internal/router"
	"library-system/internal/service"
	"library-system/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	_ "library-system/docs" // swag generated docs
)

// CustomValidator wraps go-playground/validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	scanOverdue     = service.ScanOverdue
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

func run(ctx context.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return err
	}

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	scanCtx, cancelScans := context.WithCancel(ctx)
	defer cancelScans()
	go runOverdueScans(scanCtx, wp, db, log, cfg.OverdueScanInterval)

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	router.Setup(e, db, rdb)

	log.Info().Str("port", cfg.Port).Msg("starting server")
	return startServer(e, ":"+cfg.Port)
}

// runOverdueScans submits a ledger sweep to the pool on every tick so scans
// never block the serving goroutines.
func runOverdueScans(ctx context.Context, wp worker.Pool, db database.DB, log zerolog.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			wp.Submit(func() {
				if _, err := scanOverdue(ctx, db, log, time.Now().UTC()); err != nil {
					log.Error().Err(err).Msg("overdue scan failed")
				}
			})
		}
	}
}

func main() {
	if err := run(context.Background()); err != nil {
		logger.Get().Error().Err(err).Msg("service failed")
		exitFunc(1)
	}
}
