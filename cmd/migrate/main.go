package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ridwanfathin/invoice-review-service/internal/config"
	"github.com/ridwanfathin/invoice-review-service/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger()

	if cfg.PostgresDBURL == "" {
		logger.Error("POSTGRES_DB_URL environment variable not set")
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPostgresDB(ctx, cfg.PostgresDBURL, cfg.DBPingTimeout)
	if err != nil {
		logger.Error("unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(ctx); err != nil {
		logger.Error("database is not reachable", "error", err)
		os.Exit(1)
	}

	if err := db.Migrate(ctx); err != nil {
		logger.Error("failed to execute migrations", "error", err)
		os.Exit(1)
	}

	logger.Info("migrations successfully executed")
}
