package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mindmesh/internship_enrollment/models"
	"github.com/mindmesh/internship_enrollment/utils"
	"github.com/mindmesh/internship_enrollment/wizard"
)

// EnrollmentStore is the slice of the persistence gateway the orchestration
// needs: one insert, plus the uniqueness probe for ID generation.
type EnrollmentStore interface {
	Insert(ctx context.Context, e *models.Enrollment) error
	ExistsEnrollmentID(enrollmentID string) (bool, error)
}

// ResumeStore uploads an attached resume and returns its retrievable URL.
type ResumeStore interface {
	UploadResume(ctx context.Context, data []byte, filename, enrollmentID string) (string, error)
}

// Notifier delivers the best-effort enrollment confirmation. Its errors are
// logged and swallowed; they never block or fail a submission.
type Notifier interface {
	SendEnrollmentConfirmation(name, phone, email string) error
}

// EventPublisher feeds the admin live dashboard. Optional; may be nil.
type EventPublisher interface {
	EnrollmentCreated(e *models.Enrollment)
}

// EnrollmentService runs the submission orchestration: generate an enrollment
// ID, upload the resume when one was attached, insert the record, then fire
// the confirmation notification. Any failure before the insert aborts the
// whole submission with no partial record; there is deliberately no
// compensating cleanup if the insert fails after a successful upload.
type EnrollmentService struct {
	store    EnrollmentStore
	resumes  ResumeStore
	notifier Notifier
	events   EventPublisher
	now      func() time.Time
}

func NewEnrollmentService(store EnrollmentStore, resumes ResumeStore, notifier Notifier, events EventPublisher) *EnrollmentService {
	return &EnrollmentService{
		store:    store,
		resumes:  resumes,
		notifier: notifier,
		events:   events,
		now:      time.Now,
	}
}

// SubmitStaff runs the staff fast-path: no payment, amount zero, record parked
// as waiting_approval for the admin review surface.
func (s *EnrollmentService) SubmitStaff(ctx context.Context, draft *wizard.Draft) (string, error) {
	return s.submit(ctx, draft, nil)
}

// SubmitStudent persists a paid enrollment carrying the verified provider
// identifiers, then triggers the confirmation notification.
func (s *EnrollmentService) SubmitStudent(ctx context.Context, draft *wizard.Draft, payment wizard.PaymentDetails) (string, error) {
	return s.submit(ctx, draft, &payment)
}

func (s *EnrollmentService) submit(ctx context.Context, draft *wizard.Draft, payment *wizard.PaymentDetails) (string, error) {
	enrollmentID, err := utils.GenerateEnrollmentID(s.now(), s.store.ExistsEnrollmentID)
	if err != nil {
		return "", fmt.Errorf("failed to generate enrollment ID: %v", err)
	}

	var resumeURL *string
	if draft.Profile.Resume != nil {
		url, err := s.resumes.UploadResume(ctx, draft.Profile.Resume.Data, draft.Profile.Resume.Filename, enrollmentID)
		if err != nil {
			return "", fmt.Errorf("resume upload failed: %v", err)
		}
		resumeURL = &url
	}

	record := &models.Enrollment{
		EnrollmentID:  enrollmentID,
		Role:          string(draft.Profile.Role),
		Name:          draft.Profile.Name,
		Email:         optional(draft.Profile.Email),
		Phone:         draft.Profile.Phone,
		Qualification: draft.Profile.Qualification,
		College:       optional(draft.Profile.College),
		ResumeURL:     resumeURL,
		Domain:        draft.DomainTitles(),
		Amount:        draft.TotalAmount(),
	}

	switch draft.Profile.Role {
	case wizard.RoleStaff:
		record.Status = models.StatusWaitingApproval
	case wizard.RoleStudent:
		if payment == nil {
			return "", fmt.Errorf("student submission is missing payment details")
		}
		record.Status = models.StatusCompleted
		record.RazorpayOrderID = optional(payment.OrderID)
		record.RazorpayPaymentID = optional(payment.PaymentID)
		record.RazorpaySignature = optional(payment.Signature)
	default:
		return "", fmt.Errorf("unknown role %q", draft.Profile.Role)
	}

	if err := s.store.Insert(ctx, record); err != nil {
		if resumeURL != nil {
			// No compensating delete: the uploaded object stays behind.
			log.Printf("⚠️ Enrollment insert failed after resume upload, orphaned object at %s", *resumeURL)
		}
		return "", fmt.Errorf("failed to create enrollment: %v", err)
	}

	if draft.Profile.Role == wizard.RoleStudent {
		if err := s.notifier.SendEnrollmentConfirmation(record.Name, record.Phone, draft.Profile.Email); err != nil {
			log.Printf("Notification trigger failed for %s: %v", enrollmentID, err)
		}
	}

	if s.events != nil {
		s.events.EnrollmentCreated(record)
	}

	return enrollmentID, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
