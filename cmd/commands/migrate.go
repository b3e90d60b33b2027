package commands

import (
	"database/sql"

	"github.com/motoshop/motoshop/internal/adapter/postgres"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
	Long: `Manage the database schema.

Subcommands:
  up      - Apply pending migrations
  down    - Roll back the latest migration
  status  - Show migration status`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(postgres.Migrate)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the latest migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(postgres.Rollback)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(postgres.MigrationStatus)
	},
}

func withDB(run func(db *sql.DB, dir string) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := postgres.Connect(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	return run(db, cfg.DB.MigrationsDir)
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}
