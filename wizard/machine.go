package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindmesh/internship_enrollment/models"
)

type Step int

const (
	StepProfile Step = iota + 1
	StepDomains
	StepPayment
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepProfile:
		return "profile"
	case StepDomains:
		return "domains"
	case StepPayment:
		return "payment"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidTransition = errors.New("transition not allowed from current step")
	ErrNoDomains         = errors.New("at least one internship domain must be selected")
)

// Submitter runs the side-effecting submission sequence (resume upload, record
// insert, notification) and returns the generated enrollment ID. The machine
// blocks on it: a failed submission keeps the wizard on its current step with
// the draft intact.
type Submitter interface {
	SubmitStaff(ctx context.Context, draft *Draft) (string, error)
	SubmitStudent(ctx context.Context, draft *Draft, payment PaymentDetails) (string, error)
}

// Machine is the enrollment wizard: a strictly forward-or-back linear state
// machine over the draft, with exactly one conditional skip (staff bypassing
// the payment step).
type Machine struct {
	step         Step
	draft        Draft
	enrollmentID string
	submitter    Submitter
}

func NewMachine(submitter Submitter) *Machine {
	m := &Machine{step: StepProfile, submitter: submitter}
	m.draft.Profile.Role = RoleStudent
	return m
}

func (m *Machine) Step() Step           { return m.step }
func (m *Machine) Draft() *Draft        { return &m.draft }
func (m *Machine) EnrollmentID() string { return m.enrollmentID }

// StepNumber is the user-facing step index. Staff sessions have no payment
// step, so their terminal success step is shown as step 3 of 3.
func (m *Machine) StepNumber() int {
	if m.draft.Profile.Role == RoleStaff && m.step == StepSuccess {
		return 3
	}
	return int(m.step)
}

func (m *Machine) TotalSteps() int {
	switch m.draft.Profile.Role {
	case RoleStaff:
		return 3
	case RoleStudent:
		return 4
	default:
		return 4
	}
}

// SubmitProfile merges a validated profile into the draft and advances 1→2.
func (m *Machine) SubmitProfile(p Profile) error {
	if m.step != StepProfile {
		return ErrInvalidTransition
	}
	m.draft.Profile = p
	m.step = StepDomains
	return nil
}

// SubmitDomains merges the selection and advances out of step 2. For a student
// it moves to the payment step. For staff it runs the fast-path submission
// synchronously: on success it jumps straight to the terminal success step, on
// failure it stays on step 2 with the draft (selection included) preserved so
// the same action can be retried.
func (m *Machine) SubmitDomains(ctx context.Context, domains []models.InternshipDomain) error {
	if m.step != StepDomains {
		return ErrInvalidTransition
	}
	if len(domains) == 0 {
		return ErrNoDomains
	}
	m.draft.Domains = domains

	switch m.draft.Profile.Role {
	case RoleStaff:
		id, err := m.submitter.SubmitStaff(ctx, &m.draft)
		if err != nil {
			return err
		}
		m.enrollmentID = id
		m.step = StepSuccess
		return nil
	case RoleStudent:
		m.step = StepPayment
		return nil
	default:
		return fmt.Errorf("unknown role %q", m.draft.Profile.Role)
	}
}

// ConfirmPayment runs the student submission once the checkout success
// callback has delivered verified provider identifiers, then advances 3→4.
// The payment details are attached to the draft only after the submission
// succeeds, so a failed attempt leaves the draft exactly as it was.
func (m *Machine) ConfirmPayment(ctx context.Context, payment PaymentDetails) error {
	if m.step != StepPayment {
		return ErrInvalidTransition
	}
	switch m.draft.Profile.Role {
	case RoleStudent:
		id, err := m.submitter.SubmitStudent(ctx, &m.draft, payment)
		if err != nil {
			return err
		}
		m.draft.Payment = &payment
		m.enrollmentID = id
		m.step = StepSuccess
		return nil
	case RoleStaff:
		return ErrInvalidTransition
	default:
		return fmt.Errorf("unknown role %q", m.draft.Profile.Role)
	}
}

// CancelPayment handles the checkout dismissal callback: back to the domain
// step, draft intact, payment unset.
func (m *Machine) CancelPayment() error {
	if m.step != StepPayment {
		return ErrInvalidTransition
	}
	m.step = StepDomains
	return nil
}

// Back moves 2→1 or 3→2. Draft fields persist so the user can revise and
// resubmit. There is no way back out of the terminal success step.
func (m *Machine) Back() error {
	switch m.step {
	case StepDomains:
		m.step = StepProfile
		return nil
	case StepPayment:
		m.step = StepDomains
		return nil
	default:
		return ErrInvalidTransition
	}
}
