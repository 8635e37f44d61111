package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindmesh/internship_enrollment/handlers"
)

func EnrollmentRoutes(app *fiber.App, h *handlers.WizardHandler) {
	api := app.Group("/api/v1")

	sessions := api.Group("/enrollments/sessions")
	sessions.Post("", h.CreateSession)
	sessions.Get("/:sessionId", h.GetSession)
	sessions.Post("/:sessionId/profile", h.SubmitProfile)
	sessions.Post("/:sessionId/domains", h.SubmitDomains)
	sessions.Post("/:sessionId/back", h.Back)

	sessions.Post("/:sessionId/payment/order", h.CreateOrder)
	sessions.Post("/:sessionId/payment/confirm", h.ConfirmPayment)
	sessions.Post("/:sessionId/payment/cancel", h.CancelPayment)
}
