package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ============================================================
// SQLite Repository
// ============================================================

// ErrNotFound reports that no settings record has been stored yet.
var ErrNotFound = errors.New("settings record not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init запускает миграции.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// Load reads the single stored record.
func (r *Repository) Load(ctx context.Context) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT schema_version, payload
        FROM settings
        WHERE id = 1
    `)

	var version int
	var payload string
	if err := row.Scan(&version, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return Record{}, fmt.Errorf("decode settings payload: %w", err)
	}
	// The column is authoritative for the version.
	rec.Version = version

	return rec, nil
}

// Save replaces the stored record.
func (r *Repository) Save(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode settings payload: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
        INSERT INTO settings (id, schema_version, payload)
        VALUES (1, ?, ?)
        ON CONFLICT(id) DO UPDATE SET schema_version = excluded.schema_version, payload = excluded.payload
    `, rec.Version, string(payload))
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// OpenSQLite открывает sqlite по указанному пути.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
