package models

import (
	"plotbed/internal/studio/placement"
	"plotbed/internal/studio/svg"
	"plotbed/internal/studio/units"
)

// ============================================================
// Drawing Model
// ============================================================

// Drawing is one uploaded vector document plus its placement state.
// The markup and overrides are immutable after upload; placement and
// drag state mutate through the store.
type Drawing struct {
	ID       string
	Filename string
	Content  []byte

	// Optional user-declared dimensions, one per axis.
	OverrideWidth  *units.Length
	OverrideHeight *units.Length

	Placement placement.Placement
	Drag      placement.DragSession
}

// ResolveSize определяет физический размер рисунка. Чистая функция от
// разметки и оверрайдов, пересчитывается по запросу и не кешируется.
func (d *Drawing) ResolveSize() (units.Size, bool) {
	doc, err := svg.Parse(d.Content)
	if err != nil {
		return units.Size{}, false
	}
	return units.ResolveSize(doc.Width, doc.Height, doc.ViewBox, d.OverrideWidth, d.OverrideHeight)
}

// Footprint is the scaled physical size, or a zero size when the
// drawing's size is unknown.
func (d *Drawing) Footprint() units.Size {
	size, ok := d.ResolveSize()
	if !ok {
		return units.Size{}
	}
	return d.Placement.Footprint(size)
}
