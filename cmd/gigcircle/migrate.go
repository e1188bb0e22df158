package main

import (
	"github.com/spf13/cobra"

	"github.com/gigcircle/gigcircle/internal/infrastructure/config"
	"github.com/gigcircle/gigcircle/internal/infrastructure/db/postgres"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|version]",
		Short:     "Run database migrations",
		Long:      `Apply or roll back the PostgreSQL schema using the PG_* settings. Defaults to up.`,
		ValidArgs: []string{"up", "down", "version"},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE:      runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	action := "up"
	if len(args) == 1 {
		action = args[0]
	}

	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}

	m, err := postgres.NewMigrator(cfg.PostgresDSN())
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	switch action {
	case "down":
		cmd.Println("Rolling back migrations...")
		if err := m.Down(); err != nil {
			return err
		}
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		cmd.Printf("version %d (dirty: %t)\n", version, dirty)
		return nil
	default:
		cmd.Println("Running migrations...")
		if err := m.Up(); err != nil {
			return err
		}
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
