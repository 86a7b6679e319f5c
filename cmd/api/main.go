package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"docportal/internal/auth"
	"docportal/internal/config"
	"docportal/internal/database"
	"docportal/internal/database/migration"
	"docportal/internal/filecheck"
	handlers "docportal/internal/http/handler"
	"docportal/internal/http/middleware"
	"docportal/internal/logger"
	appotel "docportal/internal/otel"
	"docportal/internal/portal"
	"docportal/internal/repository/postgres"
	"docportal/internal/scheduler"
	"docportal/internal/service"
	"docportal/internal/storage"
)

// Files per upload request the body limit is sized for.
const maxFilesPerRequest = 10

// @title Document Portal API
// @version 1.0
// @description Upload, track and export documents by expiration date.
// @BasePath /
func main() {
	cfg := config.Load()
	loc := cfg.Location()
	log := logger.New(os.Stdout, cfg.LogLevel, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	shutdownTracing, err := appotel.Init(ctx, log)
	if err != nil {
		log.Fatal("failed to initialize tracing", "err", err)
	}

	if cfg.Database.AutoMigrate {
		dsn, err := database.BuildPostgresDSN(cfg.Database)
		if err != nil {
			log.Fatal("invalid database config", "err", err)
		}
		if err := migration.Run(ctx, dsn, log); err != nil {
			log.Fatal("failed to migrate database", "err", err)
		}
	}

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", "err", err)
	}
	defer db.Close()

	var health []handlers.Pinger

	store, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatal("failed to initialize storage", "driver", cfg.Storage.Driver, "err", err)
	}
	if p, ok := store.(handlers.Pinger); ok {
		health = append(health, p)
	}

	var blacklist auth.Blacklist
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		rbl := auth.NewRedisBlacklist(rdb, "")
		blacklist, health = rbl, append(health, rbl)
	} else {
		log.Warn("REDIS_ADDR not set, revoked sessions are kept in memory")
		blacklist = auth.NewMemoryBlacklist()
	}

	now := func() time.Time { return time.Now().In(loc) }
	opts := []service.Option{
		service.WithValidator(filecheck.New(cfg.Storage.MaxBytes, cfg.Storage.StrictSniff)),
		service.WithClock(now),
		service.WithLogger(log),
	}

	docRepo := postgres.NewDocumentPostgres(db)
	activityRepo := postgres.NewActivityPostgres(db)
	docSvc := service.NewDocumentService(store, docRepo, activityRepo, opts...)
	authSvc := service.NewAuthService(postgres.NewUserPostgres(db), activityRepo, auth.NewPasswordHasher(),
		auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), blacklist, log)
	exportSvc := service.NewExportService(docSvc, activityRepo, opts...)

	portalClient, err := newPortalClient(cfg, now)
	if err != nil {
		log.Fatal("failed to initialize portal client", "err", err)
	}
	syncSvc := service.NewSyncService(portalClient, cfg.Portal.APIKey, docRepo, postgres.NewSyncStatePostgres(db), activityRepo, opts...)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal("failed to register http metrics", "err", err)
	}
	ingestMetrics, err := handlers.NewIngestMetrics(reg)
	if err != nil {
		log.Fatal("failed to register ingest metrics", "err", err)
	}

	app := fiber.New(fiber.Config{
		AppName:      "docportal",
		ErrorHandler: handlers.ErrorHandler(log),
		BodyLimit:    int(cfg.Storage.MaxBytes)*maxFilesPerRequest + 1<<20,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMW.Handler())

	handlers.RegisterRoutes(app, handlers.Deps{
		DB:        db,
		Health:    health,
		Documents: docSvc,
		Auth:      authSvc,
		Sync:      syncSvc,
		Export:    exportSvc,
		Cookie:    handlers.SessionCookie{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure},
		Metrics:   reg,
		Ingest:    ingestMetrics,
		Logger:    log,
	})

	refresher, err := scheduler.NewStatusRefresher(docSvc, cfg.StatusRefreshCron, loc, log)
	if err != nil {
		log.Fatal("failed to schedule status refresh", "err", err)
	}
	refresher.Start(ctx)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("server shutdown", "err", err)
		}
	}()

	log.Info("server starting", "addr", ":"+cfg.Port, "storage", cfg.Storage.Driver, "portal_mode", cfg.Portal.Mode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", "err", err)
	}

	<-refresher.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown", "err", err)
	}
}

func newStorage(ctx context.Context, cfg *config.AppConfig) (storage.Storage, error) {
	if cfg.Storage.Driver != "minio" {
		return storage.NewLocalDir(cfg.Storage.UploadDir)
	}
	m, err := storage.NewMinIO(ctx, cfg.MinIO)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func newPortalClient(cfg *config.AppConfig, now func() time.Time) (portal.Client, error) {
	if cfg.Portal.Mode == "http" {
		return portal.NewHTTPClient(cfg.Portal.URL, cfg.Portal.APIKey, cfg.Portal.Timeout)
	}
	return portal.NewSimulated(cfg.Portal.URL, now), nil
}
