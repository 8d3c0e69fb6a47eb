package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"plotbed/internal/studio/models"
	"plotbed/internal/studio/placement"
	"plotbed/internal/studio/preview"
	"plotbed/internal/studio/store"
	"plotbed/internal/studio/svg"
)

// ============================================================
// Drawing Handlers
// ============================================================

// Upload принимает SVG из multipart/form-data плюс опциональные
// оверрайды размеров ("width"/"height", например "20cm").
func (h *StudioHandler) Upload(c fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		log.Printf("[STUDIO] FormFile error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open file",
		})
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read file",
		})
	}

	// The markup must at least be well-formed; size may still be
	// unknown, which is not an error.
	if _, err := svg.Parse(content); err != nil {
		log.Printf("[STUDIO] Upload rejected: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	d := h.store.Add(models.Drawing{
		Filename:       file.Filename,
		Content:        content,
		OverrideWidth:  parseOverride(c.FormValue("width")),
		OverrideHeight: parseOverride(c.FormValue("height")),
	})

	log.Printf("[STUDIO] Drawing added: %s (%s, %d bytes)", d.ID, d.Filename, len(content))
	return c.Status(http.StatusCreated).JSON(h.mapDrawing(d))
}

// List возвращает все рисунки в порядке добавления.
func (h *StudioHandler) List(c fiber.Ctx) error {
	drawings := h.store.List()

	payload := make([]drawingPayload, 0, len(drawings))
	for _, d := range drawings {
		payload = append(payload, h.mapDrawing(d))
	}
	return c.JSON(payload)
}

// Remove удаляет рисунок по ID.
func (h *StudioHandler) Remove(c fiber.Ctx) error {
	id := c.Params("id")
	if err := h.store.Remove(id); err != nil {
		return drawingError(c, err)
	}

	log.Printf("[STUDIO] Drawing removed: %s", id)
	return c.SendStatus(http.StatusNoContent)
}

type scaleRequest struct {
	Scale float64 `json:"scale"`
}

// SetScale меняет масштаб. Невалидное значение — «нет изменений», не
// ошибка: клиент получает актуальное состояние.
func (h *StudioHandler) SetScale(c fiber.Ctx) error {
	var req scaleRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	d, err := h.store.SetScale(c.Params("id"), req.Scale)
	if err != nil {
		return drawingError(c, err)
	}
	return c.JSON(h.mapDrawing(d))
}

type offsetRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SetOffset устанавливает смещение без каких-либо условий.
func (h *StudioHandler) SetOffset(c fiber.Ctx) error {
	var req offsetRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	d, err := h.store.SetOffset(c.Params("id"), req.X, req.Y)
	if err != nil {
		return drawingError(c, err)
	}
	return c.JSON(h.mapDrawing(d))
}

// ============================================================
// Drag Handlers
// ============================================================

type dragRequest struct {
	Pointer  placement.Pointer  `json:"pointer"`
	Viewport placement.Viewport `json:"viewport"`
}

func (r dragRequest) valid() bool {
	return r.Viewport.WidthPx > 0 && r.Viewport.HeightPx > 0
}

// DragStart фиксирует точку захвата.
func (h *StudioHandler) DragStart(c fiber.Ctx) error {
	var req dragRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || !req.valid() {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "pointer and viewport required"})
	}

	bed := h.settings.Current().Bed()
	if err := h.store.StartDrag(c.Params("id"), req.Pointer, req.Viewport, bed); err != nil {
		return drawingError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// DragMove двигает рисунок; смещение кэмпится к столу.
func (h *StudioHandler) DragMove(c fiber.Ctx) error {
	var req dragRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil || !req.valid() {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "pointer and viewport required"})
	}

	bed := h.settings.Current().Bed()
	d, err := h.store.MoveDrag(c.Params("id"), req.Pointer, req.Viewport, bed)
	if err != nil {
		return drawingError(c, err)
	}
	return c.JSON(h.mapDrawing(d))
}

// DragEnd завершает перетаскивание; смещение не меняется.
func (h *StudioHandler) DragEnd(c fiber.Ctx) error {
	if err := h.store.EndDrag(c.Params("id")); err != nil {
		return drawingError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// ============================================================
// Preview Handler
// ============================================================

// Preview отдаёт раскладку стола для одного рисунка как SVG.
func (h *StudioHandler) Preview(c fiber.Ctx) error {
	d, err := h.store.Get(c.Params("id"))
	if err != nil {
		return drawingError(c, err)
	}

	out, err := preview.Render(&d, h.settings.Current().Bed())
	if err != nil {
		log.Printf("[STUDIO] Preview error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(out)
}

func drawingError(c fiber.Ctx, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "drawing not found"})
	}
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
