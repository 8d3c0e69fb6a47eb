package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"plotbed/internal/studio/settings"
)

// ============================================================
// Settings Handlers
// ============================================================

// GetSettings возвращает текущую запись настроек.
func (h *StudioHandler) GetSettings(c fiber.Ctx) error {
	return c.JSON(h.settings.Current())
}

// ReplaceSettings заменяет запись целиком — никаких частичных
// обновлений.
func (h *StudioHandler) ReplaceSettings(c fiber.Ctx) error {
	if len(c.Body()) == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	var rec settings.Record
	if err := json.Unmarshal(c.Body(), &rec); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
	}

	if err := h.settings.Replace(context.Background(), rec); err != nil {
		log.Printf("[SETTINGS] Replace rejected: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(h.settings.Current())
}
