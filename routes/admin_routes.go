package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/mindmesh/internship_enrollment/handlers"
	"github.com/mindmesh/internship_enrollment/middleware"
	ws "github.com/mindmesh/internship_enrollment/websocket"
)

func AdminRoutes(app *fiber.App, h *handlers.AdminHandler) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/enrollments", h.ListEnrollments)
	admin.Patch("/enrollments/:enrollmentId/status", h.UpdateEnrollmentStatus)
	admin.Post("/enrollments/:enrollmentId/letter", h.GenerateLetter)
	admin.Get("/stats", h.GetStats)
	admin.Get("/razorpay", h.GetRazorpayData)

	admin.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	admin.Get("/ws", websocket.New(ws.ServeAdminFeed))
}
