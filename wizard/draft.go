package wizard

import (
	"strings"

	"github.com/mindmesh/internship_enrollment/models"
)

// ResumeFile holds an attached resume until the submission uploads it. The
// bytes live in the draft because upload is deferred to the orchestration,
// keyed by the enrollment ID that does not exist yet at step 1.
type ResumeFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Profile struct {
	Role          Role
	Name          string
	Email         string
	Phone         string
	Qualification string
	College       string
	Resume        *ResumeFile
}

// PaymentDetails carries the provider-issued identifiers from a successful
// checkout callback.
type PaymentDetails struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

// Draft is the ephemeral enrollment state accumulated across wizard steps. It
// is discarded when the session ends; the persisted record is created exactly
// once by the submission orchestration.
type Draft struct {
	Profile Profile
	Domains []models.InternshipDomain
	Payment *PaymentDetails
}

// TotalAmount is the payable total: the sum of the selected domain prices for
// a student, always zero for staff.
func (d *Draft) TotalAmount() int {
	switch d.Profile.Role {
	case RoleStaff:
		return 0
	case RoleStudent:
		return models.TotalPrice(d.Domains)
	default:
		return models.TotalPrice(d.Domains)
	}
}

// DomainTitles renders the selection as the denormalized record column value.
func (d *Draft) DomainTitles() string {
	titles := make([]string, 0, len(d.Domains))
	for _, dom := range d.Domains {
		titles = append(titles, dom.Title)
	}
	return strings.Join(titles, ", ")
}
