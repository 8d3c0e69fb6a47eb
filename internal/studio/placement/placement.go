package placement

import (
	"math"

	"plotbed/internal/studio/units"
)

// ============================================================
// Placement Model
// ============================================================

// Offset is a bed-space position in millimeters.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bed is the physical work surface in millimeters.
type Bed struct {
	WidthMm  float64 `json:"width_mm"`
	HeightMm float64 `json:"height_mm"`
}

// Placement описывает, как рисунок ложится на стол: масштаб + смещение.
type Placement struct {
	Scale  float64 `json:"scale"`
	Offset Offset  `json:"offset"`
}

func New() Placement {
	return Placement{Scale: 1.0}
}

// SetScale accepts only positive finite values; anything else is
// silently ignored (bad text-field input means "no change").
func (p *Placement) SetScale(scale float64) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}
	p.Scale = scale
}

// SetOffset is an unconditional replace.
func (p *Placement) SetOffset(x, y float64) {
	p.Offset = Offset{X: x, Y: y}
}

// Footprint is the drawing's scaled physical size.
func (p Placement) Footprint(size units.Size) units.Size {
	return units.Size{
		WidthMm:  size.WidthMm * p.Scale,
		HeightMm: size.HeightMm * p.Scale,
	}
}

// Fits reports whether the footprint does not exceed the bed on
// either axis. Exactly bed-sized footprints fit.
func (b Bed) Fits(footprint units.Size) bool {
	return footprint.WidthMm <= b.WidthMm && footprint.HeightMm <= b.HeightMm
}
