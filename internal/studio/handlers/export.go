package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"plotbed/internal/studio/export"
	"plotbed/internal/studio/models"
	"plotbed/internal/studio/store"
)

// ============================================================
// Export Handler
// ============================================================

type exportRequest struct {
	// IDs limits the batch; empty means every drawing.
	IDs []string `json:"ids"`
}

// Export запускает конвертацию и отдаёт результат как attachment:
// один рисунок — .gcode, несколько — zip.
func (h *StudioHandler) Export(c fiber.Ctx) error {
	var req exportRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
		}
	}

	var drawings []models.Drawing
	var err error
	if len(req.IDs) > 0 {
		drawings, err = h.store.Select(req.IDs)
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "drawing not found"})
		}
		if err != nil {
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	} else {
		drawings = h.store.List()
	}

	if len(drawings) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "no drawings to export"})
	}

	log.Printf("[EXPORT] Starting export of %d drawing(s)", len(drawings))

	artifact, err := h.exporter.Export(drawings, h.settings.Current())
	if errors.Is(err, export.ErrBusy) {
		return c.Status(http.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		log.Printf("[EXPORT] Export failed: %v", err)
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}

	// The optional server-side copy is part of delivery: if it fails,
	// the export fails — no partial output.
	if h.copySink != nil {
		if err := h.copySink.Deliver(artifact); err != nil {
			log.Printf("[EXPORT] Copy sink failed: %v", err)
			return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	log.Printf("[EXPORT] Delivering %s (%d bytes)", artifact.Filename, len(artifact.Data))

	c.Set("Content-Type", artifact.ContentType)
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	return c.Send(artifact.Data)
}
