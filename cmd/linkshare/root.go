package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"linkshare/internal/config"
	"linkshare/internal/db"
)

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "linkshare",
		Short:         "Bookmark sharing service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnvFile(envFile); err != nil {
				return err
			}
			setupLogging(os.Getenv("LOG_LEVEL"), os.Getenv("ENV"))
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return root
}

// loadEnvFile loads path into the environment. A missing file is not an error;
// variables already set win over the file.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// setupLogging installs the default slog logger: text in development, JSON elsewhere.
func setupLogging(level, env string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if env == "" || env == "development" || env == "dev" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// openStore loads configuration and opens a migrated store.
func openStore(ctx context.Context, requireSecrets bool) (*config.Config, *db.DB, error) {
	cfg := config.Load()
	if requireSecrets {
		if err := cfg.Validate(); err != nil {
			return nil, nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}

	database, err := db.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Migrations completed successfully")

	return cfg, database, nil
}

// seedCategories inserts the categories named in the YAML config file, or
// the defaults when the file is absent.
func seedCategories(ctx context.Context, cfg *config.Config, database *db.DB) error {
	yamlCfg, err := config.LoadYAMLConfig(cfg.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", cfg.ConfigFile, err)
	}

	added, err := database.SeedCategories(ctx, yamlCfg.SeedCategories())
	if err != nil {
		return err
	}
	if added > 0 {
		log.Printf("Seeded %d categories", added)
	}
	return nil
}
