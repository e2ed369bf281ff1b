package migrate

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrationFileName(t *testing.T) {
	cases := []struct {
		input     string
		version   int
		name      string
		direction string
		wantErr   bool
	}{
		{"0000000001_create_employees.up.sql", 1, "create_employees", "up", false},
		{"0000000001_create_employees.down.sql", 1, "create_employees", "down", false},
		{"0000000042_add_index.up.sql", 42, "add_index", "up", false},
		{"42_short_version.up.sql", 42, "short_version", "up", false},
		{"README.md", 0, "", "", true},
		{"create_employees.up.sql", 0, "", "", true},
		{"0000000001_create_employees.sideways.sql", 0, "", "", true},
		{"0000000001_create_employees.up.txt", 0, "", "", true},
	}

	for _, c := range cases {
		parsed, err := ParseMigrationFileName(c.input)
		if c.wantErr {
			assert.Error(t, err, "expected error for %q", c.input)
			continue
		}
		require.NoError(t, err, "unexpected error for %q", c.input)
		assert.Equal(t, c.version, parsed.Version)
		assert.Equal(t, c.name, parsed.Name)
		assert.Equal(t, c.direction, parsed.Direction)
	}
}

func TestFSMigrationProvider_SortsByVersion(t *testing.T) {
	fsys := fstest.MapFS{
		"0000000003_third.up.sql":    {Data: []byte("SELECT 3")},
		"0000000003_third.down.sql":  {Data: []byte("SELECT 3")},
		"0000000001_first.up.sql":    {Data: []byte("SELECT 1")},
		"0000000001_first.down.sql":  {Data: []byte("SELECT 1")},
		"0000000002_second.up.sql":   {Data: []byte("SELECT 2")},
		"0000000002_second.down.sql": {Data: []byte("SELECT 2")},
	}

	provider, err := NewFSMigrationProvider(fsys)
	require.NoError(t, err)

	migrations := provider.Migrations()
	require.Len(t, migrations, 3)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "first", migrations[0].Description)
	assert.Equal(t, 2, migrations[1].Version)
	assert.Equal(t, 3, migrations[2].Version)

	for _, m := range migrations {
		assert.NotNil(t, m.Up)
		assert.NotNil(t, m.Down)
	}
}

func TestFSMigrationProvider_IgnoresUnrelatedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"0000000001_first.up.sql":   {Data: []byte("SELECT 1")},
		"0000000001_first.down.sql": {Data: []byte("SELECT 1")},
		"migrations.go":             {Data: []byte("package migrations")},
		"notes.txt":                 {Data: []byte("scratch")},
	}

	provider, err := NewFSMigrationProvider(fsys)
	require.NoError(t, err)
	assert.Len(t, provider.Migrations(), 1)
}

func TestFSMigrationProvider_RejectsIncompletePairs(t *testing.T) {
	fsys := fstest.MapFS{
		"0000000001_first.up.sql":    {Data: []byte("SELECT 1")},
		"0000000001_first.down.sql":  {Data: []byte("SELECT 1")},
		"0000000002_second.up.sql":   {Data: []byte("SELECT 2")},
		// second has no down file
	}

	_, err := NewFSMigrationProvider(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete migrations")
}
