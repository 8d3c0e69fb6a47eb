package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotbed/internal/studio/models"
	"plotbed/internal/studio/placement"
)

const squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="100mm" height="100mm"><path d="M 0 0 L 10 10"/></svg>`

func addDrawing(t *testing.T, s *Store, name string) models.Drawing {
	t.Helper()
	d := s.Add(models.Drawing{Filename: name, Content: []byte(squareSVG)})
	require.NotEmpty(t, d.ID)
	return d
}

func TestAddListRemove(t *testing.T) {
	s := New()

	a := addDrawing(t, s, "a.svg")
	b := addDrawing(t, s, "b.svg")
	c := addDrawing(t, s, "c.svg")
	assert.NotEqual(t, a.ID, b.ID)

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"a.svg", "b.svg", "c.svg"}, []string{list[0].Filename, list[1].Filename, list[2].Filename})

	// Removing the middle entry must not disturb the others' IDs.
	require.NoError(t, s.Remove(b.ID))
	list = s.List()
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, c.ID, list[1].ID)

	assert.ErrorIs(t, s.Remove(b.ID), ErrNotFound)
	_, err := s.Get(b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSelect(t *testing.T) {
	s := New()
	a := addDrawing(t, s, "a.svg")
	b := addDrawing(t, s, "b.svg")

	got, err := s.Select([]string{b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b.svg", got[0].Filename)

	_, err = s.Select([]string{a.ID, "missing"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetScale(t *testing.T) {
	s := New()
	d := addDrawing(t, s, "a.svg")

	got, err := s.SetScale(d.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Placement.Scale)

	// Invalid scale keeps the prior value without erroring.
	got, err = s.SetScale(d.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.Placement.Scale)

	_, err = s.SetScale("missing", 2)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDragThroughStore(t *testing.T) {
	s := New()
	d := addDrawing(t, s, "a.svg") // 100x100 mm at scale 1

	bed := placement.Bed{WidthMm: 300, HeightMm: 200}
	vp := placement.Viewport{WidthPx: 300, HeightPx: 200}

	require.NoError(t, s.StartDrag(d.ID, placement.Pointer{X: 0, Y: 0}, vp, bed))

	got, err := s.MoveDrag(d.ID, placement.Pointer{X: 50, Y: 30}, vp, bed)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, got.Placement.Offset.X, 1e-9)
	assert.InDelta(t, 30.0, got.Placement.Offset.Y, 1e-9)

	// Offset clamps to bed minus the 100 mm footprint.
	got, err = s.MoveDrag(d.ID, placement.Pointer{X: 5000, Y: 5000}, vp, bed)
	require.NoError(t, err)
	assert.Equal(t, placement.Offset{X: 200, Y: 100}, got.Placement.Offset)

	require.NoError(t, s.EndDrag(d.ID))

	// Moves after release change nothing.
	got, err = s.MoveDrag(d.ID, placement.Pointer{X: 0, Y: 0}, vp, bed)
	require.NoError(t, err)
	assert.Equal(t, placement.Offset{X: 200, Y: 100}, got.Placement.Offset)

	// Drags on different drawings are independent.
	other := addDrawing(t, s, "b.svg")
	require.NoError(t, s.StartDrag(other.ID, placement.Pointer{}, vp, bed))
	require.NoError(t, s.EndDrag(other.ID))
}
