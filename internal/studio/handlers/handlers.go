package handlers

import (
	"plotbed/internal/studio/export"
	"plotbed/internal/studio/models"
	"plotbed/internal/studio/placement"
	"plotbed/internal/studio/settings"
	"plotbed/internal/studio/store"
	"plotbed/internal/studio/units"
)

// ============================================================
// Studio Handler
// ============================================================

type StudioHandler struct {
	store    *store.Store
	settings *settings.Manager
	exporter *export.Exporter
	copySink export.Sink // optional server-side copy of every export
}

func NewStudioHandler(s *store.Store, m *settings.Manager, e *export.Exporter, copySink export.Sink) *StudioHandler {
	return &StudioHandler{
		store:    s,
		settings: m,
		exporter: e,
		copySink: copySink,
	}
}

// ============================================================
// Payloads
// ============================================================

type sizePayload struct {
	WidthMm  float64 `json:"width_mm"`
	HeightMm float64 `json:"height_mm"`
}

type drawingPayload struct {
	ID       string           `json:"id"`
	Filename string           `json:"filename"`
	Size     *sizePayload     `json:"size"` // null when unknown
	Scale    float64          `json:"scale"`
	Offset   placement.Offset `json:"offset"`
	FitsBed  *bool            `json:"fits_bed"` // null when size unknown
}

// mapDrawing собирает ответ по рисунку с учетом текущего стола.
func (h *StudioHandler) mapDrawing(d models.Drawing) drawingPayload {
	payload := drawingPayload{
		ID:       d.ID,
		Filename: d.Filename,
		Scale:    d.Placement.Scale,
		Offset:   d.Placement.Offset,
	}

	if size, ok := d.ResolveSize(); ok {
		footprint := d.Placement.Footprint(size)
		payload.Size = &sizePayload{WidthMm: footprint.WidthMm, HeightMm: footprint.HeightMm}
		fits := h.settings.Current().Bed().Fits(footprint)
		payload.FitsBed = &fits
	}

	return payload
}

func parseOverride(value string) *units.Length {
	if value == "" {
		return nil
	}
	l, ok := units.ParseLength(value)
	if !ok {
		// A malformed override behaves like an absent one.
		return nil
	}
	return &l
}
