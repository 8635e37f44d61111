package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment statuses. A student enrollment is born "completed" (payment already
// captured); a staff application is born "waiting_approval" and is moved to
// "approved" or "rejected" by an admin. No other transition exists.
const (
	StatusCompleted       = "completed"
	StatusWaitingApproval = "waiting_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
)

type Enrollment struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	EnrollmentID string    `gorm:"size:20;not null;unique" json:"enrollment_id"`
	Role         string    `gorm:"size:10;not null" json:"role"`

	Name          string  `gorm:"size:100;not null" json:"name"`
	Email         *string `gorm:"size:255" json:"email"`
	Phone         string  `gorm:"size:10;not null" json:"phone"`
	Qualification string  `gorm:"size:50;not null" json:"qualification"`
	College       *string `gorm:"size:200" json:"college"`
	ResumeURL     *string `gorm:"size:512" json:"resume_url"`

	// Comma-joined domain titles, e.g. "Frontend Development, Backend & Database".
	Domain string `gorm:"size:255;not null" json:"domain"`
	Amount int    `gorm:"not null" json:"amount"`
	Status string `gorm:"size:20;not null" json:"status"`

	RazorpayOrderID   *string `gorm:"size:64" json:"razorpay_order_id"`
	RazorpayPaymentID *string `gorm:"size:64" json:"razorpay_payment_id"`
	RazorpaySignature *string `gorm:"size:128" json:"razorpay_signature"`

	ApprovedBy *string    `gorm:"size:255" json:"approved_by"`
	ApprovedAt *time.Time `json:"approved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
