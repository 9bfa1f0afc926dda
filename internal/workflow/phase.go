package workflow

import "github.com/spec-kit/request-desk/internal/domain"

// Phase groups statuses the way the dashboard summarizes them.
type Phase string

const (
	PhasePending    Phase = "pending"
	PhaseInProgress Phase = "inProgress"
	PhaseDone       Phase = "done"
	PhaseRejected   Phase = "rejected"
)

// PhaseOf returns the dashboard phase for status.
func PhaseOf(status domain.RequestStatus) Phase {
	switch status {
	case domain.StatusRequested, domain.StatusApproved:
		return PhasePending
	case domain.StatusIntake, domain.StatusInProgress:
		return PhaseInProgress
	case domain.StatusCompleted, domain.StatusSurvey, domain.StatusClosed:
		return PhaseDone
	default:
		return PhaseRejected
	}
}
