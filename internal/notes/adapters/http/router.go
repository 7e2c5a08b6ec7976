// Package http собирает HTTP сервер сервиса заметок.
package http

import (
	"github.com/gofiber/fiber/v3"

	"gonotes/internal/notes/adapters/http/middleware"
	"gonotes/internal/notes/adapters/http/notes"
	"gonotes/internal/notes/ports/api"
	"gonotes/pkg/logger"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, noteService api.NoteService, log *logger.Logger) {
	noteHandler := notes.NewHandler(noteService)

	app.Use(middleware.NewRequestIDMiddleware(log))
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/notes", noteHandler.ListNotes)

	noteRoutes := app.Group("/note")
	noteRoutes.Post("/", noteHandler.CreateNote)
	noteRoutes.Get("/read/:title", noteHandler.GetNoteByTitle)
	noteRoutes.Get("/:id", noteHandler.GetNote)
	noteRoutes.Put("/:id", noteHandler.UpdateNote)
	noteRoutes.Delete("/:id", noteHandler.DeleteNote)

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Route not found",
		})
	})
}

// NewApp создает fiber.App с настройками, нужными API заметок.
// Путь не декодируется до маршрутизации: %2F в заголовке остается внутри
// одного сегмента, параметры декодируют обработчики.
func NewApp(cfg fiber.Config) *fiber.App {
	cfg.UnescapePath = false
	return fiber.New(cfg)
}
