package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindmesh/internship_enrollment/handlers"
)

func PublicRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/domains", handlers.ListDomains)
	api.Get("/config", handlers.GetPublicConfig)
}
