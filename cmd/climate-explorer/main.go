package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/climate-data-explorer/internal/api/http"
	"github.com/i474232898/climate-data-explorer/internal/climate"
	"github.com/i474232898/climate-data-explorer/internal/climate/sources"
	"github.com/i474232898/climate-data-explorer/internal/config"
	"github.com/i474232898/climate-data-explorer/internal/logger"
	"github.com/i474232898/climate-data-explorer/internal/scheduler"
	"github.com/i474232898/climate-data-explorer/internal/store"
)

const serviceName = "climate-data-explorer"

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog := logger.New(cfg.LogLevel, cfg.Env).WithField("service", serviceName)
	if cfg.DotenvErr != nil {
		appLog.Debugf("no .env file loaded: %v", cfg.DotenvErr)
	}

	// Dataset source: a remote CSV when DATA_URL is set, else the local file.
	var source climate.Source = sources.NewFileSource(cfg.DataPath)
	if cfg.DataURL != "" {
		source = sources.NewHTTPSource(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.DataURL)
	}

	// Memo cache for per-country annual series.
	cache := store.NewMemoryCache(cfg.CacheMaxEntries, cfg.CacheMaxAge)

	service := climate.NewService(source, cache, appLog)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.HTTPTimeout+time.Minute)
	err = service.Reload(loadCtx)
	cancelLoad()
	if err != nil {
		appLog.Fatalf("failed to load dataset: %v", err)
	}

	// Scheduler that periodically reloads the dataset.
	sched := scheduler.New(cfg.ReloadInterval, service, appLog)
	if err := sched.Start(); err != nil {
		appLog.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"status":  "ok",
			"service": serviceName,
		}
		if st, err := service.Status(); err == nil {
			resp["records"] = st.Records
			resp["countries"] = st.Countries
			resp["loadedAt"] = st.LoadedAt
		}
		return c.JSON(resp)
	})

	httpapi.RegisterRoutes(app, service, httpapi.Options{
		Baseline: cfg.Baseline(),
		Window:   cfg.DefaultWindow,
	}, appLog)

	go func() {
		appLog.Infof("listening on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLog.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLog.Errorf("error during shutdown: %v", err)
	}
}
