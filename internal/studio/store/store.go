package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"plotbed/internal/studio/models"
	"plotbed/internal/studio/placement"
)

// ============================================================
// Drawing Store
// ============================================================

// ErrNotFound reports an unknown drawing ID.
var ErrNotFound = errors.New("drawing not found")

// Store keeps the session's drawings keyed by a stable ID, so that
// removing one drawing can never redirect a pending mutation to a
// different entry.
type Store struct {
	mu       sync.Mutex
	drawings map[string]*models.Drawing
	order    []string
}

func New() *Store {
	return &Store{
		drawings: make(map[string]*models.Drawing),
	}
}

// Add помещает рисунок в коллекцию и выдает ему ID.
func (s *Store) Add(d models.Drawing) models.Drawing {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = uuid.NewString()
	d.Placement = placement.New()

	s.drawings[d.ID] = &d
	s.order = append(s.order, d.ID)
	return d
}

// Get returns a snapshot of one drawing.
func (s *Store) Get(id string) (models.Drawing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drawings[id]
	if !ok {
		return models.Drawing{}, ErrNotFound
	}
	return *d, nil
}

// List returns snapshots in insertion order.
func (s *Store) List() []models.Drawing {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Drawing, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.drawings[id])
	}
	return out
}

// Select returns snapshots for the requested IDs, in request order.
func (s *Store) Select(ids []string) ([]models.Drawing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Drawing, 0, len(ids))
	for _, id := range ids {
		d, ok := s.drawings[id]
		if !ok {
			return nil, ErrNotFound
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.drawings[id]; !ok {
		return ErrNotFound
	}
	delete(s.drawings, id)
	for i, got := range s.order {
		if got == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// ============================================================
// Placement Mutations
// ============================================================

// SetScale applies the placement-model scale rule: invalid values are
// ignored without error.
func (s *Store) SetScale(id string, scale float64) (models.Drawing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drawings[id]
	if !ok {
		return models.Drawing{}, ErrNotFound
	}
	d.Placement.SetScale(scale)
	return *d, nil
}

func (s *Store) SetOffset(id string, x, y float64) (models.Drawing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drawings[id]
	if !ok {
		return models.Drawing{}, ErrNotFound
	}
	d.Placement.SetOffset(x, y)
	return *d, nil
}

// ============================================================
// Drag Sessions
// ============================================================

func (s *Store) StartDrag(id string, p placement.Pointer, vp placement.Viewport, bed placement.Bed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drawings[id]
	if !ok {
		return ErrNotFound
	}
	d.Drag.Start(p, vp, bed, d.Placement.Offset)
	return nil
}

// MoveDrag advances one drag and applies the clamped offset. A move
// with no active drag is a no-op.
func (s *Store) MoveDrag(id string, p placement.Pointer, vp placement.Viewport, bed placement.Bed) (models.Drawing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drawings[id]
	if !ok {
		return models.Drawing{}, ErrNotFound
	}

	if offset, ok := d.Drag.Move(p, vp, bed, d.Footprint()); ok {
		d.Placement.SetOffset(offset.X, offset.Y)
	}
	return *d, nil
}

func (s *Store) EndDrag(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drawings[id]
	if !ok {
		return ErrNotFound
	}
	d.Drag.End()
	return nil
}
