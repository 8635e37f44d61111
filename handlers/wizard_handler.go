package handlers

import (
	"errors"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	config "github.com/mindmesh/internship_enrollment/configs"
	"github.com/mindmesh/internship_enrollment/models"
	"github.com/mindmesh/internship_enrollment/payments"
	"github.com/mindmesh/internship_enrollment/validation"
	"github.com/mindmesh/internship_enrollment/wizard"
)

// WizardHandler exposes the enrollment wizard over HTTP. Each browser owns one
// session; every endpoint locks that session so a session never has two
// transitions in flight.
type WizardHandler struct {
	sessions  *wizard.Store
	submitter wizard.Submitter
	razorpay  *payments.RazorpayService
}

func NewWizardHandler(sessions *wizard.Store, submitter wizard.Submitter, razorpay *payments.RazorpayService) *WizardHandler {
	return &WizardHandler{
		sessions:  sessions,
		submitter: submitter,
		razorpay:  razorpay,
	}
}

func sessionState(sess *wizard.Session) fiber.Map {
	m := sess.Machine
	state := fiber.Map{
		"session_id":   sess.ID,
		"step":         m.StepNumber(),
		"step_name":    m.Step().String(),
		"total_steps":  m.TotalSteps(),
		"role":         string(m.Draft().Profile.Role),
		"total_amount": m.Draft().TotalAmount(),
	}
	if m.EnrollmentID() != "" {
		state["enrollment_id"] = m.EnrollmentID()
	}
	return state
}

func (h *WizardHandler) CreateSession(c *fiber.Ctx) error {
	sess := h.sessions.Create(h.submitter)
	return c.Status(fiber.StatusCreated).JSON(sessionState(sess))
}

func (h *WizardHandler) GetSession(c *fiber.Ctx) error {
	sess, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	sess.Lock()
	defer sess.Unlock()
	return c.JSON(sessionState(sess))
}

// SubmitProfile handles the step 1 form: multipart fields plus an optional
// resume attachment. Validation errors never advance the wizard and are
// reported one message per offending field.
func (h *WizardHandler) SubmitProfile(c *fiber.Ctx) error {
	sess, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	role, err := wizard.ParseRole(c.FormValue("role"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Role must be student or staff"})
	}

	input, problems := validation.ValidateProfile(validation.ProfileInput{
		Name:          c.FormValue("name"),
		Email:         c.FormValue("email"),
		Phone:         c.FormValue("phone"),
		Qualification: c.FormValue("qualification"),
		College:       c.FormValue("college"),
	})
	if len(problems) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": problems})
	}

	profile := wizard.Profile{
		Role:          role,
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		Qualification: input.Qualification,
		College:       input.College,
	}

	if fh, err := c.FormFile("resume"); err == nil && fh != nil {
		contentType := fh.Header.Get("Content-Type")
		if err := validation.ValidateResume(fh.Filename, contentType, fh.Size); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"resume": err.Error()}})
		}

		f, err := fh.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"resume": "Could not read uploaded file"}})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": fiber.Map{"resume": "Could not read uploaded file"}})
		}

		profile.Resume = &wizard.ResumeFile{
			Filename:    fh.Filename,
			ContentType: contentType,
			Data:        data,
		}
	}

	sess.Lock()
	defer sess.Unlock()

	if err := sess.Machine.SubmitProfile(profile); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sessionState(sess))
}

type DomainSelectionRequest struct {
	DomainIDs []string `json:"domain_ids" validate:"required,min=1"`
}

// SubmitDomains handles step 2. For staff this runs the fast-path submission
// and, on success, lands directly on the terminal success step.
func (h *WizardHandler) SubmitDomains(c *fiber.Ctx) error {
	sess, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	var req DomainSelectionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please select an internship domain"})
	}

	domains := make([]models.InternshipDomain, 0, len(req.DomainIDs))
	for _, id := range req.DomainIDs {
		d, found := models.FindDomain(id)
		if !found {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown internship domain: " + id})
		}
		domains = append(domains, d)
	}

	sess.Lock()
	defer sess.Unlock()

	if err := sess.Machine.SubmitDomains(c.Context(), domains); err != nil {
		switch {
		case errors.Is(err, wizard.ErrNoDomains):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Please select an internship domain"})
		case errors.Is(err, wizard.ErrInvalidTransition):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Printf("🔥 Staff submission failed for session %s: %v", sess.ID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit application"})
		}
	}
	return c.JSON(sessionState(sess))
}

// CreateOrder registers a provider order for the session's payable total and
// returns everything the checkout widget needs.
func (h *WizardHandler) CreateOrder(c *fiber.Ctx) error {
	sess, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Machine.Step() != wizard.StepPayment {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Session is not on the payment step"})
	}

	draft := sess.Machine.Draft()
	order, err := h.razorpay.CreateOrder(draft.TotalAmount()*100, "INR", sess.ID)
	if err != nil {
		log.Printf("🔥 Razorpay order creation failed for session %s: %v", sess.ID, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Failed to create payment order"})
	}
	sess.OrderID = order.ID

	return c.JSON(fiber.Map{
		"key_id":   h.razorpay.KeyID,
		"order_id": order.ID,
		"amount":   order.Amount,
		"currency": order.Currency,
		"prefill": fiber.Map{
			"name":    draft.Profile.Name,
			"email":   draft.Profile.Email,
			"contact": draft.Profile.Phone,
		},
	})
}

// ConfirmPayment is the checkout success callback. The provider signature is
// verified before the submission orchestration runs.
func (h *WizardHandler) ConfirmPayment(c *fiber.Ctx) error {
	sess, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	var details wizard.PaymentDetails
	if err := c.BodyParser(&details); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(details); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.OrderID == "" || details.OrderID != sess.OrderID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order does not belong to this session"})
	}
	if !h.razorpay.VerifyPaymentSignature(details.OrderID, details.PaymentID, details.Signature) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment signature"})
	}

	if err := sess.Machine.ConfirmPayment(c.Context(), details); err != nil {
		if errors.Is(err, wizard.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		log.Printf("🔥 Enrollment submission failed for session %s: %v", sess.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete enrollment"})
	}
	return c.JSON(sessionState(sess))
}

// CancelPayment is the checkout dismissal callback: back to the domain step
// with the draft intact.
func (h *WizardHandler) CancelPayment(c *fiber.Ctx) error {
	sess, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	sess.Lock()
	defer sess.Unlock()

	if err := sess.Machine.CancelPayment(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	sess.OrderID = ""

	state := sessionState(sess)
	state["message"] = "Payment cancelled"
	return c.JSON(state)
}

func (h *WizardHandler) Back(c *fiber.Ctx) error {
	sess, ok := h.sessions.Get(c.Params("sessionId"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	}

	sess.Lock()
	defer sess.Unlock()

	if err := sess.Machine.Back(); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sessionState(sess))
}

// ListDomains serves the static catalog for the domain selection step.
func ListDomains(c *fiber.Ctx) error {
	return c.JSON(models.InternshipDomains())
}

// GetPublicConfig exposes the non-secret configuration the funnel UI needs.
func GetPublicConfig(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"razorpay_key_id":  config.Config("RAZORPAY_KEY_ID"),
		"whatsapp_contact": config.Config("WHATSAPP_CONTACT"),
		"currency":         "INR",
	})
}
