package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const testSchema = `
CREATE TABLE IF NOT EXISTS settings (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    schema_version INTEGER NOT NULL,
    payload TEXT NOT NULL
);
`

func testRepo(t *testing.T) *Repository {
	t.Helper()

	dir := t.TempDir()
	db, err := OpenSQLite(filepath.Join(dir, "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	migration := filepath.Join(dir, "001_init_settings.sql")
	require.NoError(t, os.WriteFile(migration, []byte(testSchema), 0o644))

	repo := NewRepository(db)
	require.NoError(t, repo.Init(context.Background(), migration))
	return repo
}

func TestRepository_LoadEmpty(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_SaveLoadRoundtrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	rec := Default()
	rec.Conversion.BedWidthMm = 420
	require.NoError(t, repo.Save(ctx, rec))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	// Save replaces, never appends.
	rec.Conversion.BedWidthMm = 500
	require.NoError(t, repo.Save(ctx, rec))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 500.0, got.Conversion.BedWidthMm)
}

func TestRepository_InitMissingMigration(t *testing.T) {
	dir := t.TempDir()
	db, err := OpenSQLite(filepath.Join(dir, "settings.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	assert.Error(t, repo.Init(context.Background(), filepath.Join(dir, "missing.sql")))
}

func TestManager_SeedsAndUpgrades(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	// First start seeds the default at the current schema version.
	m, err := NewManager(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, m.Current().Version)

	// A stored v1 record is upgraded once at startup.
	old := m.Current()
	old.Version = 1
	old.Conversion.FeedrateMmMin = 0
	require.NoError(t, repo.Save(ctx, old))

	m, err = NewManager(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, m.Current().Version)
	assert.Equal(t, 3000.0, m.Current().Conversion.FeedrateMmMin)

	// The upgraded record was written back.
	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, stored.Version)
}

func TestManager_UnknownVersionFatal(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	bad := Default()
	bad.Version = SchemaVersion + 10
	require.NoError(t, repo.Save(ctx, bad))

	_, err := NewManager(ctx, repo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upgrade settings")
}

func TestManager_Replace(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	m, err := NewManager(ctx, repo)
	require.NoError(t, err)

	rec := m.Current()
	rec.Conversion.BedWidthMm = 610
	require.NoError(t, m.Replace(ctx, rec))
	assert.Equal(t, 610.0, m.Current().Conversion.BedWidthMm)

	// Invalid records are rejected and the live record is untouched.
	rec.Conversion.DPI = -1
	require.Error(t, m.Replace(ctx, rec))
	assert.Equal(t, Default().Conversion.DPI, m.Current().Conversion.DPI)
}
