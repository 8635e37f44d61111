package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mindmesh/internship_enrollment/models"
	"gorm.io/gorm"
)

var (
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrNotWaitingApproval = errors.New("enrollment is not waiting for approval")
)

// EnrollmentRepository is the persistence gateway for enrollment records.
type EnrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Insert creates the record. An enrollment is born exactly once and is never
// deleted afterwards.
func (r *EnrollmentRepository) Insert(ctx context.Context, e *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EnrollmentRepository) ExistsEnrollmentID(enrollmentID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Enrollment{}).Where("enrollment_id = ?", enrollmentID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns the full collection, newest first. Filtering is done on the
// admin dashboard itself.
func (r *EnrollmentRepository) List(ctx context.Context) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) ListByStatus(ctx context.Context, status string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.WithContext(ctx).Where("status = ?", status).Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) GetByEnrollmentID(ctx context.Context, enrollmentID string) (*models.Enrollment, error) {
	var e models.Enrollment
	err := r.db.WithContext(ctx).Where("enrollment_id = ?", enrollmentID).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}

// UpdateStatus performs the only admin mutation: waiting_approval → approved
// or rejected. Approver identity and timestamp are stamped on approval.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, enrollmentID, status, approvedBy string) (*models.Enrollment, error) {
	var e models.Enrollment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("enrollment_id = ?", enrollmentID).First(&e).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEnrollmentNotFound
			}
			return err
		}

		if e.Status != models.StatusWaitingApproval {
			return ErrNotWaitingApproval
		}

		e.Status = status
		if status == models.StatusApproved {
			now := time.Now()
			e.ApprovedBy = &approvedBy
			e.ApprovedAt = &now
		}

		return tx.Save(&e).Error
	})
	if err != nil {
		return nil, err
	}

	return &e, nil
}

type Stats struct {
	TotalRevenue     int   `json:"totalRevenue"`
	TotalEnrollments int64 `json:"totalEnrollments"`
	CompletedCount   int64 `json:"completedCount"`
	PendingCount     int64 `json:"pendingCount"`
}

// Stats aggregates the dashboard numbers in one pass over (amount, status).
func (r *EnrollmentRepository) Stats(ctx context.Context) (*Stats, error) {
	var rows []struct {
		Amount int
		Status string
	}
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).Select("amount", "status").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for _, row := range rows {
		stats.TotalRevenue += row.Amount
		stats.TotalEnrollments++
		switch row.Status {
		case models.StatusCompleted:
			stats.CompletedCount++
		case models.StatusWaitingApproval:
			stats.PendingCount++
		}
	}
	return stats, nil
}
