package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/itprodirect/surplus-backend/api/routes"
	"github.com/itprodirect/surplus-backend/internal/catalog"
	"github.com/itprodirect/surplus-backend/internal/contact"
	"github.com/itprodirect/surplus-backend/internal/orders"
	"github.com/itprodirect/surplus-backend/pkg/config"
	"github.com/itprodirect/surplus-backend/pkg/db"
	"github.com/itprodirect/surplus-backend/pkg/logger"
	"github.com/itprodirect/surplus-backend/pkg/mailer"
	"github.com/itprodirect/surplus-backend/pkg/metrics"
	"github.com/itprodirect/surplus-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	catalogRepo := catalog.NewRepository(dbClient.DB())
	if cfg.Catalog.AutoMigrate {
		if err := catalogRepo.AutoMigrate(); err != nil {
			logg.Error(context.Background(), "failed to migrate catalog schema", err)
			os.Exit(1)
		}
	}

	catalogService, err := catalog.NewService(context.Background(), catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to load catalog", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, form rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	formMetrics := metrics.NewFormMetrics(registry)

	sender := mailer.New(cfg.Mail, logg)

	contactService, err := contact.NewService(sender, cfg.Mail, logg, formMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create contact service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(sender, cfg.Mail, cfg.Forms, logg, formMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"products": len(catalogService.Products()),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			catalogService,
			contactService,
			orderService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
