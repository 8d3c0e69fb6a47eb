package placement

import "plotbed/internal/studio/units"

// ============================================================
// Drag Controller
// ============================================================

// Pointer is a pointer position in viewport pixels, relative to the
// top-left corner of the preview rectangle.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Viewport is the pixel size of the preview rectangle the pointer
// coordinates are relative to. Its aspect ratio is assumed to match
// the bed's.
type Viewport struct {
	WidthPx  float64 `json:"width_px"`
	HeightPx float64 `json:"height_px"`
}

// DragSession tracks one in-flight drag for one drawing. Sessions on
// different drawings are independent.
type DragSession struct {
	active bool
	grab   Offset
}

func (d *DragSession) Active() bool {
	return d.active
}

// Start записывает точку захвата, чтобы рисунок не прыгал под курсор.
func (d *DragSession) Start(p Pointer, vp Viewport, bed Bed, current Offset) {
	if vp.WidthPx <= 0 || vp.HeightPx <= 0 {
		return
	}
	at := bedPoint(p, vp, bed)
	d.grab = Offset{X: at.X - current.X, Y: at.Y - current.Y}
	d.active = true
}

// Move maps the pointer into bed space, subtracts the grab offset and
// clamps each axis to [0, bed-footprint]. When the footprint exceeds
// the bed on an axis the range collapses and the offset clamps to 0.
// Returns false when no drag is active.
func (d *DragSession) Move(p Pointer, vp Viewport, bed Bed, footprint units.Size) (Offset, bool) {
	if !d.active || vp.WidthPx <= 0 || vp.HeightPx <= 0 {
		return Offset{}, false
	}

	at := bedPoint(p, vp, bed)
	return Offset{
		X: clampAxis(at.X-d.grab.X, bed.WidthMm-footprint.WidthMm),
		Y: clampAxis(at.Y-d.grab.Y, bed.HeightMm-footprint.HeightMm),
	}, true
}

// End stops tracking; the offset is left wherever the last move put it.
func (d *DragSession) End() {
	d.active = false
}

// bedPoint — прямое пропорциональное отображение пикселей в миллиметры.
func bedPoint(p Pointer, vp Viewport, bed Bed) Offset {
	return Offset{
		X: p.X / vp.WidthPx * bed.WidthMm,
		Y: p.Y / vp.HeightPx * bed.HeightMm,
	}
}

func clampAxis(value, upper float64) float64 {
	if upper < 0 {
		upper = 0
	}
	if value < 0 {
		return 0
	}
	if value > upper {
		return upper
	}
	return value
}
