package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"podcasts/internal/config"
	"podcasts/internal/db"
	"podcasts/internal/password"
	"podcasts/internal/repository"
	"podcasts/internal/service"
)

const defaultSeedTimeout = 30 * time.Second

type seedConfig struct {
	file    string
	timeout time.Duration
}

func newSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a podcast catalog into the database",
		Long: `Creates the accounts, podcasts and episodes listed in a YAML catalog.
Entries that already exist are skipped, so the command can be run repeatedly.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.file, "file", "f", "catalog.yaml", "path of the YAML catalog")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(ctx context.Context, cfg *seedConfig) error {
	appCfg := config.Load()

	raw, err := os.ReadFile(cfg.file)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	catalog, err := ParseCatalog(raw)
	if err != nil {
		return err
	}

	gormDB, err := db.Open(appCfg.DBDriver, appCfg.DBDSN)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	log.Info("connected to database", "driver", appCfg.DBDriver)

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	seeder := &Seeder{
		users:    service.NewUserService(repository.NewUserRepository(gormDB), nil, password.NewBcryptHasher(appCfg.BcryptCost), nil),
		podcasts: service.NewPodcastService(repository.NewPodcastRepository(gormDB), nil),
	}
	stats, err := seeder.Apply(ctx, catalog)
	if err != nil {
		return err
	}

	log.Info("seed completed",
		"accounts", stats.Accounts,
		"podcasts", stats.Podcasts,
		"episodes", stats.Episodes,
		"skipped", stats.Skipped)
	return nil
}

func main() {
	if err := newSeedCmd().Execute(); err != nil {
		log.Error("seed failed", "err", err)
		os.Exit(1)
	}
}
