package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"plotbed/internal/common/config"
	"plotbed/internal/common/middleware"
	"plotbed/internal/studio/export"
	"plotbed/internal/studio/handlers"
	"plotbed/internal/studio/settings"
	"plotbed/internal/studio/store"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/recover"
)

// ============================================================
// Studio Service
// ============================================================

func main() {
	cfg := config.Load()

	// Settings are loaded and upgraded exactly once, before any route
	// exists. An upgrade failure means the stored record is in a shape
	// this build cannot handle; proceeding would be worse than dying.
	db, err := settings.OpenSQLite(cfg.SettingsDBPath)
	if err != nil {
		log.Fatalf("open settings db: %v", err)
	}
	defer db.Close()

	repo := settings.NewRepository(db)
	if err := repo.Init(context.Background(), cfg.MigrationsPath); err != nil {
		log.Fatalf("init settings db: %v", err)
	}

	settingsManager, err := settings.NewManager(context.Background(), repo)
	if err != nil {
		log.Fatalf("settings lifecycle: %v", err)
	}

	drawingStore := store.New()
	exporter := export.New()

	var copySink export.Sink
	if cfg.ExportDir != "" {
		copySink = export.NewDirSink(cfg.ExportDir)
		log.Printf("Keeping export copies in %s", cfg.ExportDir)
	}

	studio := handlers.NewStudioHandler(drawingStore, settingsManager, exporter, copySink)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		AppName:      "Plotbed Studio",
	})

	// ============================================================
	// Global Middleware
	// ============================================================

	app.Use(recover.New())
	app.Use(middleware.Logger())
	app.Use(middleware.CORS())

	// ============================================================
	// Health Check Routes
	// ============================================================

	app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready"})
	})

	// ============================================================
	// Studio Routes
	// ============================================================

	app.Post("/drawings", studio.Upload)
	app.Get("/drawings", studio.List)
	app.Delete("/drawings/:id", studio.Remove)

	app.Put("/drawings/:id/scale", studio.SetScale)
	app.Put("/drawings/:id/offset", studio.SetOffset)

	app.Post("/drawings/:id/drag/start", studio.DragStart)
	app.Post("/drawings/:id/drag/move", studio.DragMove)
	app.Post("/drawings/:id/drag/end", studio.DragEnd)

	app.Get("/drawings/:id/preview", studio.Preview)

	app.Get("/settings", studio.GetSettings)
	app.Put("/settings", studio.ReplaceSettings)

	app.Post("/export", studio.Export)

	// ============================================================
	// Server Start
	// ============================================================

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("Starting Plotbed Studio on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
