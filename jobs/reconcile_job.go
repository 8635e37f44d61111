package jobs

import (
	"context"
	"log"

	"github.com/mindmesh/internship_enrollment/models"
	"github.com/mindmesh/internship_enrollment/payments"
	"github.com/mindmesh/internship_enrollment/repository"
)

// ReconcilePayments cross-checks completed enrollments against provider-side
// payment records. It is purely advisory: mismatches are logged for the admin
// to investigate, nothing is mutated.
func ReconcilePayments(repo *repository.EnrollmentRepository, razorpay *payments.RazorpayService) {
	log.Println("Running job: ReconcilePayments...")

	list, err := razorpay.FetchPayments(100, 0)
	if err != nil {
		log.Printf("Reconcile: failed to fetch provider payments: %v", err)
		return
	}

	byOrderID := make(map[string]payments.ProviderPayment, len(list.Items))
	for _, p := range list.Items {
		if p.OrderID != "" {
			byOrderID[p.OrderID] = p
		}
	}

	enrollments, err := repo.ListByStatus(context.Background(), models.StatusCompleted)
	if err != nil {
		log.Printf("Reconcile: failed to list completed enrollments: %v", err)
		return
	}

	for _, e := range enrollments {
		if e.RazorpayOrderID == nil {
			log.Printf("Reconcile: completed enrollment %s has no provider order ID", e.EnrollmentID)
			continue
		}

		p, found := byOrderID[*e.RazorpayOrderID]
		if !found {
			// The provider window only covers the most recent payments, so
			// this is expected for older records.
			continue
		}

		if p.Status != "captured" {
			log.Printf("Reconcile: enrollment %s marked completed but provider payment %s is %q", e.EnrollmentID, p.ID, p.Status)
		}
		if p.Amount != e.Amount*100 {
			log.Printf("Reconcile: enrollment %s amount ₹%d does not match provider amount of %d paise", e.EnrollmentID, e.Amount, p.Amount)
		}
	}
}
