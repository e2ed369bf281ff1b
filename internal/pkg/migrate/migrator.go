// Package migrate applies versioned SQL migrations in strictly increasing
// order, recording applied versions in a schema_migrations table. Each
// migration runs in its own transaction.
package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/corehr/corehr-backend-go/internal/pkg/database"
)

const migrationsSchemaSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    description TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Transaction-scoped advisory lock key shared by all migrator instances.
// Concurrent migrators serialize on it instead of racing on version rows.
const migrationLockKey = 811421201

// MigrationStatus represents the current state of migrations
type MigrationStatus struct {
	CurrentVersion    int   `json:"current_version"`
	PendingMigrations []int `json:"pending_migrations"`
	TotalMigrations   int   `json:"total_migrations"`
	HasPendingChanges bool  `json:"has_pending_changes"`
}

// Migrator handles schema migrations against a PostgreSQL database
type Migrator struct {
	db          *database.DB
	provider    MigrationProvider
	initialized bool
	logger      *slog.Logger
}

// NewFSMigrator creates a migrator that loads migrations from a filesystem,
// scanning for NNNNNNNNNN_description.up.sql / .down.sql pairs.
func NewFSMigrator(db *database.DB, fsys fs.FS) (*Migrator, error) {
	provider, err := NewFSMigrationProvider(fsys)
	if err != nil {
		return nil, err
	}
	return NewMigrator(db, provider), nil
}

// NewMigrator creates a new migrator with the given database handle
func NewMigrator(db *database.DB, provider MigrationProvider) *Migrator {
	return &Migrator{
		db:       db,
		provider: provider,
		logger:   slog.Default(),
	}
}

// WithLogger sets the logger for the migrator
func (m *Migrator) WithLogger(l *slog.Logger) *Migrator {
	tmp := *m
	tmp.logger = l
	return &tmp
}

// Initialize creates the schema_migrations table if it doesn't exist
func (m *Migrator) Initialize(ctx context.Context) error {
	if m.initialized {
		return nil
	}

	if _, err := m.db.Exec(ctx, migrationsSchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	m.initialized = true
	return nil
}

// CurrentVersion returns the highest applied migration version, 0 when none
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	if err := m.Initialize(ctx); err != nil {
		return 0, err
	}

	var version int
	row := m.db.QueryRow(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get current version: %w", err)
	}

	return version, nil
}

// AppliedMigrations returns the applied migration versions in ascending order
func (m *Migrator) AppliedMigrations(ctx context.Context) ([]int, error) {
	if err := m.Initialize(ctx); err != nil {
		return nil, err
	}

	rows, err := m.db.Query(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	var applied []int
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied = append(applied, version)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating migration rows: %w", err)
	}

	return applied, nil
}

// PendingMigrations returns the versions newer than the current one
func (m *Migrator) PendingMigrations(ctx context.Context) ([]int, error) {
	currentVersion, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	var pending []int
	for _, migration := range m.provider.Migrations() {
		if migration.Version > currentVersion {
			pending = append(pending, migration.Version)
		}
	}

	sort.Ints(pending)
	return pending, nil
}

// Status returns information about the current migration state
func (m *Migrator) Status(ctx context.Context) (*MigrationStatus, error) {
	currentVersion, err := m.CurrentVersion(ctx)
	if err != nil {
		return nil, err
	}

	pending, err := m.PendingMigrations(ctx)
	if err != nil {
		return nil, err
	}

	return &MigrationStatus{
		CurrentVersion:    currentVersion,
		PendingMigrations: pending,
		TotalMigrations:   len(m.provider.Migrations()),
		HasPendingChanges: len(pending) > 0,
	}, nil
}

// MigrateUp migrates the database up to the latest version
func (m *Migrator) MigrateUp(ctx context.Context) error {
	if err := m.Initialize(ctx); err != nil {
		return err
	}

	currentVersion, err := m.CurrentVersion(ctx)
	if err != nil {
		return err
	}

	migrations := m.provider.Migrations()
	m.logger.Info("migrating up", "current_version", currentVersion, "total_migrations", len(migrations))

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := m.apply(ctx, migration); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDownTo rolls back migrations until the target version is reached
func (m *Migrator) MigrateDownTo(ctx context.Context, targetVersion int) error {
	if err := m.Initialize(ctx); err != nil {
		return err
	}

	currentVersion, err := m.CurrentVersion(ctx)
	if err != nil {
		return err
	}

	if targetVersion >= currentVersion {
		m.logger.Info("already at or below target version", "target_version", targetVersion, "current_version", currentVersion)
		return nil
	}

	migrations := append([]*Migration(nil), m.provider.Migrations()...)
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version > migrations[j].Version
	})

	m.logger.Info("migrating down", "target_version", targetVersion, "current_version", currentVersion)

	for _, migration := range migrations {
		if migration.Version <= targetVersion || migration.Version > currentVersion {
			continue
		}

		if err := m.revert(ctx, migration); err != nil {
			return err
		}
	}

	return nil
}

// MigrateDown rolls back the most recently applied migration
func (m *Migrator) MigrateDown(ctx context.Context) error {
	currentVersion, err := m.CurrentVersion(ctx)
	if err != nil {
		return err
	}
	if currentVersion == 0 {
		return fmt.Errorf("no applied migrations to roll back")
	}

	previousVersion := 0
	for _, migration := range m.provider.Migrations() {
		if migration.Version >= currentVersion {
			break
		}
		previousVersion = migration.Version
	}

	return m.MigrateDownTo(ctx, previousVersion)
}

// MigrateTo migrates the database to a specific version, up or down
func (m *Migrator) MigrateTo(ctx context.Context, targetVersion int) error {
	currentVersion, err := m.CurrentVersion(ctx)
	if err != nil {
		return err
	}

	switch {
	case targetVersion == currentVersion:
		m.logger.Info("already at target version", "version", targetVersion)
		return nil
	case targetVersion > currentVersion:
		return m.migrateUpTo(ctx, targetVersion)
	default:
		return m.MigrateDownTo(ctx, targetVersion)
	}
}

func (m *Migrator) migrateUpTo(ctx context.Context, targetVersion int) error {
	currentVersion, err := m.CurrentVersion(ctx)
	if err != nil {
		return err
	}

	for _, migration := range m.provider.Migrations() {
		if migration.Version <= currentVersion || migration.Version > targetVersion {
			continue
		}

		if err := m.apply(ctx, migration); err != nil {
			return err
		}
	}

	return nil
}

// apply runs a single up migration and records it, all in one transaction.
func (m *Migrator) apply(ctx context.Context, migration *Migration) error {
	m.logger.Info("applying migration", "version", migration.Version, "description", migration.Description)

	tx, err := m.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", migrationLockKey); err != nil {
		return fmt.Errorf("failed to acquire migration lock for %d: %w", migration.Version, err)
	}

	var alreadyApplied bool
	err = tx.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)",
		migration.Version,
	).Scan(&alreadyApplied)
	if err != nil {
		return fmt.Errorf("failed to check migration %d: %w", migration.Version, err)
	}
	if alreadyApplied {
		m.logger.Info("migration already applied, skipping", "version", migration.Version)
		return nil
	}

	if err := migration.Up(ctx, tx); err != nil {
		return fmt.Errorf("failed to apply migration %d: %w", migration.Version, err)
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO schema_migrations (version, description) VALUES ($1, $2)",
		migration.Version, migration.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}

	m.logger.Info("applied migration", "version", migration.Version, "description", migration.Description)
	return nil
}

// revert runs a single down migration and removes its record.
func (m *Migrator) revert(ctx context.Context, migration *Migration) error {
	m.logger.Info("rolling back migration", "version", migration.Version, "description", migration.Description)

	tx, err := m.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
	}
	defer tx.Rollback(ctx)

	if err := migration.Down(ctx, tx); err != nil {
		return fmt.Errorf("failed to revert migration %d: %w", migration.Version, err)
	}

	_, err = tx.Exec(ctx, "DELETE FROM schema_migrations WHERE version = $1", migration.Version)
	if err != nil {
		return fmt.Errorf("failed to delete migration record %d: %w", migration.Version, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rollback of migration %d: %w", migration.Version, err)
	}

	m.logger.Info("rolled back migration", "version", migration.Version, "description", migration.Description)
	return nil
}
