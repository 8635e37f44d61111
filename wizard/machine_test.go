package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/mindmesh/internship_enrollment/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	staffCalls   int
	studentCalls int
	id           string
	err          error
	lastPayment  PaymentDetails
}

func (f *fakeSubmitter) SubmitStaff(ctx context.Context, draft *Draft) (string, error) {
	f.staffCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func (f *fakeSubmitter) SubmitStudent(ctx context.Context, draft *Draft, payment PaymentDetails) (string, error) {
	f.studentCalls++
	f.lastPayment = payment
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

func studentProfile() Profile {
	return Profile{
		Role:          RoleStudent,
		Name:          "Asha Verma",
		Phone:         "9876543210",
		Qualification: "B.Tech / B.E.",
	}
}

func catalogDomains(t *testing.T, ids ...string) []models.InternshipDomain {
	t.Helper()
	domains := make([]models.InternshipDomain, 0, len(ids))
	for _, id := range ids {
		d, ok := models.FindDomain(id)
		require.True(t, ok, "catalog is missing domain %q", id)
		domains = append(domains, d)
	}
	return domains
}

func TestSubmitProfileAdvancesWithDraftSet(t *testing.T) {
	m := NewMachine(&fakeSubmitter{id: "ENRL-20260305-001"})

	profile := studentProfile()
	require.NoError(t, m.SubmitProfile(profile))

	assert.Equal(t, StepDomains, m.Step())
	assert.Equal(t, profile, m.Draft().Profile)
}

func TestSubmitProfileOnlyFromFirstStep(t *testing.T) {
	m := NewMachine(&fakeSubmitter{id: "x"})
	require.NoError(t, m.SubmitProfile(studentProfile()))

	err := m.SubmitProfile(studentProfile())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSubmitDomainsRequiresSelection(t *testing.T) {
	m := NewMachine(&fakeSubmitter{id: "x"})
	require.NoError(t, m.SubmitProfile(studentProfile()))

	err := m.SubmitDomains(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoDomains)
	assert.Equal(t, StepDomains, m.Step())
}

func TestStudentAdvancesToPaymentStep(t *testing.T) {
	sub := &fakeSubmitter{id: "x"}
	m := NewMachine(sub)
	require.NoError(t, m.SubmitProfile(studentProfile()))

	require.NoError(t, m.SubmitDomains(context.Background(), catalogDomains(t, "frontend", "backend")))

	assert.Equal(t, StepPayment, m.Step())
	assert.Equal(t, 6000, m.Draft().TotalAmount())
	assert.Zero(t, sub.staffCalls)
	assert.Zero(t, sub.studentCalls)
}

func TestStaffFastPathSkipsPayment(t *testing.T) {
	sub := &fakeSubmitter{id: "ENRL-20260305-042"}
	m := NewMachine(sub)

	profile := studentProfile()
	profile.Role = RoleStaff
	require.NoError(t, m.SubmitProfile(profile))

	require.NoError(t, m.SubmitDomains(context.Background(), catalogDomains(t, "frontend")))

	assert.Equal(t, StepSuccess, m.Step())
	assert.Equal(t, 3, m.StepNumber())
	assert.Equal(t, 3, m.TotalSteps())
	assert.Equal(t, "ENRL-20260305-042", m.EnrollmentID())
	assert.Equal(t, 1, sub.staffCalls)
	assert.Zero(t, sub.studentCalls, "staff must never reach the payment adapter")
	assert.Equal(t, 0, m.Draft().TotalAmount())
	assert.Nil(t, m.Draft().Payment)
}

func TestStaffFastPathFailureStaysOnDomains(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("insert failed")}
	m := NewMachine(sub)

	profile := studentProfile()
	profile.Role = RoleStaff
	require.NoError(t, m.SubmitProfile(profile))

	err := m.SubmitDomains(context.Background(), catalogDomains(t, "backend"))
	require.Error(t, err)

	assert.Equal(t, StepDomains, m.Step())
	assert.Len(t, m.Draft().Domains, 1, "selection stays merged for retry")
	assert.Empty(t, m.EnrollmentID())
}

func TestConfirmPaymentAdvancesToSuccess(t *testing.T) {
	sub := &fakeSubmitter{id: "ENRL-20260305-777"}
	m := NewMachine(sub)
	require.NoError(t, m.SubmitProfile(studentProfile()))
	require.NoError(t, m.SubmitDomains(context.Background(), catalogDomains(t, "frontend")))

	payment := PaymentDetails{OrderID: "order_1", PaymentID: "pay_1", Signature: "sig"}
	require.NoError(t, m.ConfirmPayment(context.Background(), payment))

	assert.Equal(t, StepSuccess, m.Step())
	assert.Equal(t, 4, m.StepNumber())
	assert.Equal(t, "ENRL-20260305-777", m.EnrollmentID())
	require.NotNil(t, m.Draft().Payment)
	assert.Equal(t, payment, *m.Draft().Payment)
	assert.Equal(t, payment, sub.lastPayment)
}

func TestConfirmPaymentFailureLeavesDraftUntouched(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("upload failed")}
	m := NewMachine(sub)
	require.NoError(t, m.SubmitProfile(studentProfile()))
	require.NoError(t, m.SubmitDomains(context.Background(), catalogDomains(t, "frontend")))

	err := m.ConfirmPayment(context.Background(), PaymentDetails{OrderID: "o", PaymentID: "p", Signature: "s"})
	require.Error(t, err)

	assert.Equal(t, StepPayment, m.Step())
	assert.Nil(t, m.Draft().Payment)
	assert.Empty(t, m.EnrollmentID())
}

func TestCancelPaymentReturnsToDomains(t *testing.T) {
	m := NewMachine(&fakeSubmitter{id: "x"})
	require.NoError(t, m.SubmitProfile(studentProfile()))
	require.NoError(t, m.SubmitDomains(context.Background(), catalogDomains(t, "frontend", "backend")))

	require.NoError(t, m.CancelPayment())

	assert.Equal(t, StepDomains, m.Step())
	assert.Nil(t, m.Draft().Payment)
	assert.Len(t, m.Draft().Domains, 2, "draft survives the dismissal")
}

func TestBackPreservesDraft(t *testing.T) {
	m := NewMachine(&fakeSubmitter{id: "x"})
	profile := studentProfile()
	require.NoError(t, m.SubmitProfile(profile))
	require.NoError(t, m.SubmitDomains(context.Background(), catalogDomains(t, "frontend")))

	require.NoError(t, m.Back())
	assert.Equal(t, StepDomains, m.Step())
	require.NoError(t, m.Back())
	assert.Equal(t, StepProfile, m.Step())

	assert.Equal(t, profile, m.Draft().Profile)
	assert.Len(t, m.Draft().Domains, 1)

	err := m.Back()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestNoTransitionOutOfSuccess(t *testing.T) {
	sub := &fakeSubmitter{id: "done"}
	m := NewMachine(sub)

	profile := studentProfile()
	profile.Role = RoleStaff
	require.NoError(t, m.SubmitProfile(profile))
	require.NoError(t, m.SubmitDomains(context.Background(), catalogDomains(t, "frontend")))
	require.Equal(t, StepSuccess, m.Step())

	assert.ErrorIs(t, m.Back(), ErrInvalidTransition)
	assert.ErrorIs(t, m.CancelPayment(), ErrInvalidTransition)
	assert.ErrorIs(t, m.SubmitDomains(context.Background(), catalogDomains(t, "frontend")), ErrInvalidTransition)
	assert.ErrorIs(t, m.ConfirmPayment(context.Background(), PaymentDetails{}), ErrInvalidTransition)
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, role)

	role, err = ParseRole("staff")
	require.NoError(t, err)
	assert.Equal(t, RoleStaff, role)

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}
