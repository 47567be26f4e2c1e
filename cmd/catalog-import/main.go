package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/itprodirect/surplus-backend/internal/catalog"
	"github.com/itprodirect/surplus-backend/pkg/config"
	"github.com/itprodirect/surplus-backend/pkg/db"
	"github.com/itprodirect/surplus-backend/pkg/logger"
)

// catalog-import replaces the catalog tables with the contents of a
// product feed file. Run it whenever the storefront's products.json
// changes.
func main() {
	feedPath := flag.String("feed", "", "path to the product feed (defaults to ITPD_CATALOG_SEED_PATH)")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "catalog-import"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	path := *feedPath
	if path == "" {
		path = cfg.Catalog.SeedPath
	}

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

	repo := catalog.NewRepository(dbClient.DB())
	if err := repo.AutoMigrate(); err != nil {
		logg.Error(context.Background(), "failed to migrate catalog schema", err)
		os.Exit(1)
	}

	count, err := catalog.ImportFile(context.Background(), repo, path)
	if err != nil {
		logg.Error(context.Background(), "catalog import failed", err)
		os.Exit(1)
	}

	ctx := logg.WithFields(context.Background(), map[string]any{
		"feed":     path,
		"products": count,
	})
	logg.Info(ctx, "catalog imported")
}
