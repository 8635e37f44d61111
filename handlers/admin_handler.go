package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/mindmesh/internship_enrollment/models"
	"github.com/mindmesh/internship_enrollment/notifications"
	"github.com/mindmesh/internship_enrollment/payments"
	"github.com/mindmesh/internship_enrollment/repository"
	"github.com/mindmesh/internship_enrollment/services"
	"github.com/mindmesh/internship_enrollment/websocket"
)

type AdminHandler struct {
	repo     *repository.EnrollmentRepository
	razorpay *payments.RazorpayService
	feed     websocket.FeedPublisher
}

func NewAdminHandler(repo *repository.EnrollmentRepository, razorpay *payments.RazorpayService) *AdminHandler {
	return &AdminHandler{repo: repo, razorpay: razorpay}
}

// ListEnrollments returns the full collection, newest first. The dashboard
// does its own free-text and status filtering.
func (h *AdminHandler) ListEnrollments(c *fiber.Ctx) error {
	enrollments, err := h.repo.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(enrollments)
}

func (h *AdminHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.repo.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(stats)
}

type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// UpdateEnrollmentStatus is the one state-changing admin action: move a staff
// application out of waiting_approval. The approver identity comes from the
// JWT, never from the request body.
func (h *AdminHandler) UpdateEnrollmentStatus(c *fiber.Ctx) error {
	var req StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	approver, _ := claims["email"].(string)

	enrollment, err := h.repo.UpdateStatus(c.Context(), c.Params("enrollmentId"), req.Status, approver)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEnrollmentNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
		case errors.Is(err, repository.ErrNotWaitingApproval):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Enrollment is not waiting for approval"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update status"})
		}
	}

	go func(e models.Enrollment) {
		if err := notifications.SendDecisionSMS(e.Phone, e.Name, e.Status); err != nil {
			log.Printf("Decision notification failed for %s: %v", e.EnrollmentID, err)
		}
		if e.Email != nil {
			subject := "Update on Your Staff Application"
			body := "<h1>Application Update</h1><p>We regret to inform you that after careful review, your staff application was not approved at this time.</p>"
			if e.Status == models.StatusApproved {
				subject = "Your Staff Application has been Approved!"
				body = "<h1>Congratulations!</h1><p>Your staff application has been approved. We will reach out with next steps.</p>"
			}
			notifications.SendEmail(e.Name, *e.Email, subject, body)
		}
	}(*enrollment)

	h.feed.EnrollmentStatusChanged(enrollment)

	return c.JSON(enrollment)
}

// GetRazorpayData proxies paginated provider records so the dashboard can
// reconcile without ever seeing the API credentials.
func (h *AdminHandler) GetRazorpayData(c *fiber.Ctx) error {
	count := c.QueryInt("count", 10)
	skip := c.QueryInt("skip", 0)
	if count < 1 || count > 100 {
		count = 10
	}
	if skip < 0 {
		skip = 0
	}

	switch c.Query("type") {
	case "payments":
		data, err := h.razorpay.FetchPayments(count, skip)
		if err != nil {
			log.Printf("🔥 Razorpay payments fetch failed: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to fetch payments"})
		}
		return c.JSON(data)
	case "settlements":
		data, err := h.razorpay.FetchSettlements(count, skip)
		if err != nil {
			log.Printf("🔥 Razorpay settlements fetch failed: %v", err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to fetch settlements"})
		}
		return c.JSON(data)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid type requested"})
	}
}

// GenerateLetter renders and uploads the confirmation letter for a record and
// returns its URL. The record itself is never modified.
func (h *AdminHandler) GenerateLetter(c *fiber.Ctx) error {
	enrollment, err := h.repo.GetByEnrollmentID(c.Context(), c.Params("enrollmentId"))
	if err != nil {
		if errors.Is(err, repository.ErrEnrollmentNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	url, err := services.GenerateConfirmationLetter(enrollment)
	if err != nil {
		log.Printf("🔥 Letter generation failed for %s: %v", enrollment.EnrollmentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate letter"})
	}

	return c.JSON(fiber.Map{"letter_url": url})
}
