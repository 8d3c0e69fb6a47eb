package placement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"plotbed/internal/studio/units"
)

func TestSetScale(t *testing.T) {
	p := New()
	assert.Equal(t, 1.0, p.Scale)

	p.SetScale(2.5)
	assert.Equal(t, 2.5, p.Scale)

	// Invalid values leave the prior scale untouched.
	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		p.SetScale(bad)
		assert.Equal(t, 2.5, p.Scale, "scale %v must be rejected", bad)
	}
}

func TestSetOffset(t *testing.T) {
	p := New()
	p.SetOffset(12.5, -3)
	assert.Equal(t, Offset{X: 12.5, Y: -3}, p.Offset)

	p.SetOffset(0, 0)
	assert.Equal(t, Offset{}, p.Offset)
}

func TestFootprint(t *testing.T) {
	p := New()
	p.SetScale(2)

	fp := p.Footprint(units.Size{WidthMm: 100, HeightMm: 50})
	assert.Equal(t, units.Size{WidthMm: 200, HeightMm: 100}, fp)
}

func TestBedFits(t *testing.T) {
	bed := Bed{WidthMm: 300, HeightMm: 200}

	tests := []struct {
		footprint units.Size
		fits      bool
	}{
		{units.Size{WidthMm: 100, HeightMm: 100}, true},
		{units.Size{WidthMm: 300, HeightMm: 200}, true}, // boundary inclusive
		{units.Size{WidthMm: 300.1, HeightMm: 100}, false},
		{units.Size{WidthMm: 100, HeightMm: 200.1}, false},
		// Narrower than the bed but taller still does not fit.
		{units.Size{WidthMm: 10, HeightMm: 500}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.fits, bed.Fits(tt.footprint), "footprint %+v", tt.footprint)
	}
}
