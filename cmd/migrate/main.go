package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/corehr/corehr-backend-go/internal/config"
	"github.com/corehr/corehr-backend-go/internal/pkg/database"
	"github.com/corehr/corehr-backend-go/internal/pkg/migrate"
	"github.com/corehr/corehr-backend-go/migrations"
)

var rootCmd = &cobra.Command{
	Use:   "migrate [up|down|to|status]",
	Short: "Manage schema migrations for the employee database",
	Long: `Apply or roll back the versioned SQL migrations embedded in the binary.

Migrations are applied in strictly increasing version order, each in its own
transaction, and recorded in the schema_migrations table.`,
	SilenceUsage: true,
}

func newMigrator(ctx context.Context) (*migrate.Migrator, *database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}

	migrator, err := migrate.NewFSMigrator(db, migrations.FS)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("loading migrations: %w", err)
	}

	return migrator, db, nil
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrator, db, err := newMigrator(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			return migrator.MigrateUp(cmd.Context())
		},
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recently applied migration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrator, db, err := newMigrator(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			return migrator.MigrateDown(cmd.Context())
		},
	}
}

func newToCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "to <version>",
		Short: "Migrate up or down to a specific version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			targetVersion, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid target version %q: %w", args[0], err)
			}

			migrator, db, err := newMigrator(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			return migrator.MigrateTo(cmd.Context(), targetVersion)
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show current version and pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			migrator, db, err := newMigrator(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			status, err := migrator.Status(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Current version:  %d\n", status.CurrentVersion)
			fmt.Printf("Total migrations: %d\n", status.TotalMigrations)
			if status.HasPendingChanges {
				fmt.Printf("Pending:          %v\n", status.PendingMigrations)
			} else {
				fmt.Println("Pending:          none")
			}
			return nil
		},
	}
}

func main() {
	rootCmd.AddCommand(newUpCommand())
	rootCmd.AddCommand(newDownCommand())
	rootCmd.AddCommand(newToCommand())
	rootCmd.AddCommand(newStatusCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
