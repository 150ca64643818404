package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	dir := flag.String("dir", cfg.MigrationsDir, "directory of .sql migrations")
	flag.Parse()

	logger := middleware.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, *dir); err != nil {
		logger.Error("migration failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("all migrations applied successfully", slog.String("dir", *dir))
}

func run(cfg *config.Config, dir string) error {
	db, err := database.New(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	return database.RunMigrations(db, dir)
}
