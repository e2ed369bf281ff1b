package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"

	"github.com/jackc/pgx/v5"
)

// MigrationFunc applies one direction of a migration inside the given
// transaction. Files may contain several statements; they are executed
// through the simple query protocol in a single round trip.
type MigrationFunc func(ctx context.Context, tx pgx.Tx) error

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	Up          MigrationFunc
	Down        MigrationFunc
}

// MigrationProvider provides a list of migrations
type MigrationProvider interface {
	// Migrations provides a list of migrations sorted by version in ascending order
	Migrations() []*Migration
}

// Migration files follow NNNNNNNNNN_description.(up|down).sql.
var migrationFileRegex = regexp.MustCompile(`^(\d+)_([A-Za-z0-9_\-]+)\.(up|down)\.sql$`)

// MigrationFile holds the parsed parts of a migration filename.
type MigrationFile struct {
	Version   int
	Name      string
	Direction string
}

// ParseMigrationFileName parses a migration filename into its version,
// description and direction. Returns an error for anything that does not
// match the naming convention.
func ParseMigrationFileName(name string) (MigrationFile, error) {
	matches := migrationFileRegex.FindStringSubmatch(name)
	if matches == nil {
		return MigrationFile{}, fmt.Errorf("not a migration file: %s", name)
	}

	version, err := strconv.Atoi(matches[1])
	if err != nil {
		return MigrationFile{}, fmt.Errorf("invalid migration version in %s: %w", name, err)
	}

	return MigrationFile{
		Version:   version,
		Name:      matches[2],
		Direction: matches[3],
	}, nil
}

// MigrationFuncFromSQLFile returns a migration function that reads SQL from
// a file in the provided filesystem and executes it in the transaction.
func MigrationFuncFromSQLFile(filename string, fsys fs.FS) MigrationFunc {
	return func(ctx context.Context, tx pgx.Tx) error {
		sql, err := fs.ReadFile(fsys, filename)
		if err != nil {
			return fmt.Errorf("failed to read migration file: %w", err)
		}

		// Exec without arguments uses the simple protocol, which accepts
		// multi-statement SQL including dollar-quoted function bodies.
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to execute migration SQL from %s: %w", filename, err)
		}

		return nil
	}
}

// FSMigrationProvider is a migration provider that loads migrations from a
// filesystem, typically an embed.FS holding the migrations directory.
type FSMigrationProvider struct {
	fsys       fs.FS
	migrations []*Migration
}

// NewFSMigrationProvider scans the filesystem for migration files and
// validates that every version has both an up and a down file.
func NewFSMigrationProvider(fsys fs.FS) (*FSMigrationProvider, error) {
	p := &FSMigrationProvider{fsys: fsys}
	if err := p.load(); err != nil {
		return nil, err
	}
	return p, nil
}

// Migrations returns the loaded migrations sorted by version ascending.
func (p *FSMigrationProvider) Migrations() []*Migration {
	return p.migrations
}

func (p *FSMigrationProvider) load() error {
	migrationsMap := make(map[int]*Migration)

	err := fs.WalkDir(p.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		migrationFile, err := ParseMigrationFileName(d.Name())
		if err != nil {
			// Skip files that don't match the migration pattern
			return nil
		}

		m, exists := migrationsMap[migrationFile.Version]
		if !exists {
			m = &Migration{
				Version:     migrationFile.Version,
				Description: migrationFile.Name,
			}
			migrationsMap[migrationFile.Version] = m
		}

		switch migrationFile.Direction {
		case "up":
			m.Up = MigrationFuncFromSQLFile(path, p.fsys)
		case "down":
			m.Down = MigrationFuncFromSQLFile(path, p.fsys)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan migrations directory: %w", err)
	}

	var incomplete []int
	for version, migration := range migrationsMap {
		if migration.Up == nil || migration.Down == nil {
			incomplete = append(incomplete, version)
		}
	}
	if len(incomplete) > 0 {
		sort.Ints(incomplete)
		return fmt.Errorf("incomplete migrations found (missing up or down files): %v", incomplete)
	}

	for _, migration := range migrationsMap {
		p.migrations = append(p.migrations, migration)
	}
	sortMigrations(p.migrations)

	return nil
}

func sortMigrations(migrations []*Migration) {
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
}
