package settings

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ============================================================
// Settings Manager
// ============================================================

// Manager owns the live settings record for the session. The record
// is loaded and upgraded exactly once at startup; afterwards every
// mutation replaces the whole record and persists it through the
// repository.
type Manager struct {
	mu   sync.RWMutex
	rec  Record
	repo *Repository
}

// NewManager loads the stored record (or seeds the default), runs the
// schema upgrade and writes the result back. An upgrade failure is
// returned to the caller; the process must not continue past it.
func NewManager(ctx context.Context, repo *Repository) (*Manager, error) {
	rec, err := repo.Load(ctx)
	if errors.Is(err, ErrNotFound) {
		rec = Default()
	} else if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	upgraded, err := rec.Upgrade()
	if err != nil {
		return nil, fmt.Errorf("upgrade settings: %w", err)
	}

	if err := repo.Save(ctx, upgraded); err != nil {
		return nil, err
	}

	return &Manager{rec: upgraded, repo: repo}, nil
}

// Current returns a copy of the live record.
func (m *Manager) Current() Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rec
}

// Replace validates, persists and swaps in a new record. The version
// is server-owned and forced to the current schema.
func (m *Manager) Replace(ctx context.Context, rec Record) error {
	rec.Version = SchemaVersion
	if err := rec.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.Save(ctx, rec); err != nil {
		return err
	}
	m.rec = rec
	return nil
}
