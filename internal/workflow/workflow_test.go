package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/request-desk/internal/domain"
	apperrors "github.com/spec-kit/request-desk/pkg/util/errorutil"
)

var allStatuses = append(append([]domain.RequestStatus{}, Sequence...), domain.StatusRejected)

func expectedMoves(role domain.Role, from domain.RequestStatus) []domain.RequestStatus {
	approver := map[domain.RequestStatus][]domain.RequestStatus{
		domain.StatusRequested: {domain.StatusApproved, domain.StatusRejected},
	}
	handler := map[domain.RequestStatus][]domain.RequestStatus{
		domain.StatusApproved:   {domain.StatusIntake},
		domain.StatusIntake:     {domain.StatusInProgress},
		domain.StatusInProgress: {domain.StatusCompleted},
		domain.StatusSurvey:     {domain.StatusClosed},
	}
	switch role {
	case domain.RoleApprover:
		return approver[from]
	case domain.RoleHandler:
		return handler[from]
	case domain.RoleAdmin:
		return append(append([]domain.RequestStatus{}, approver[from]...), handler[from]...)
	default:
		return nil
	}
}

func TestCanTransitionCrossProduct(t *testing.T) {
	for _, role := range domain.Roles {
		for _, from := range allStatuses {
			got := CanTransition(role, from)
			require.NotNil(t, got, "role=%s from=%s", role, from)
			assert.ElementsMatch(t, expectedMoves(role, from), got, "role=%s from=%s", role, from)
		}
	}
}

func TestCanTransitionUnknownRole(t *testing.T) {
	assert.Empty(t, CanTransition(domain.Role("guest"), domain.StatusRequested))
}

func TestCanTransitionReturnsCopy(t *testing.T) {
	got := CanTransition(domain.RoleApprover, domain.StatusRequested)
	got[0] = domain.StatusClosed
	assert.Equal(t, domain.StatusApproved, CanTransition(domain.RoleApprover, domain.StatusRequested)[0])
}

func TestApplyTransitionDoesNotMutateInput(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now := created.Add(time.Hour)
	req := domain.Request{ID: "req-1", Status: domain.StatusRequested, CreatedAt: created, UpdatedAt: created}

	next, err := ApplyTransitionAt(req, domain.RoleApprover, domain.StatusApproved, now)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, next.Status)
	assert.Equal(t, now, next.UpdatedAt)
	assert.Equal(t, created, next.CreatedAt)

	assert.Equal(t, domain.StatusRequested, req.Status)
	assert.Equal(t, created, req.UpdatedAt)
}

func TestApplyTransitionRejectsSameStatus(t *testing.T) {
	req := domain.Request{Status: domain.StatusIntake}
	_, err := ApplyTransition(req, domain.RoleAdmin, domain.StatusIntake)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidTransition))
}

func TestApplyTransitionRejectsUnknownStatus(t *testing.T) {
	req := domain.Request{Status: domain.StatusRequested}
	_, err := ApplyTransition(req, domain.RoleAdmin, domain.RequestStatus("done-ish"))
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestApplyTransitionOnlyProducesKnownStatuses(t *testing.T) {
	targets := append(append([]domain.RequestStatus{}, allStatuses...), "bogus", "")
	for _, role := range domain.Roles {
		for _, from := range allStatuses {
			for _, to := range targets {
				next, err := ApplyTransition(domain.Request{Status: from}, role, to)
				if err != nil {
					continue
				}
				assert.True(t, Known(next.Status))
				assert.True(t, Allowed(role, from, next.Status))
			}
		}
	}
}

func TestApplyTransitionSkippingSteps(t *testing.T) {
	req := domain.Request{Status: domain.StatusRequested}
	_, err := ApplyTransition(req, domain.RoleAdmin, domain.StatusCompleted)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidTransition))
}

func TestIndexAndInitial(t *testing.T) {
	assert.Equal(t, domain.StatusRequested, Initial())
	assert.Equal(t, 0, Index(domain.StatusRequested))
	assert.Equal(t, 6, Index(domain.StatusClosed))
	assert.Equal(t, -1, Index(domain.StatusRejected))
	assert.True(t, Known(domain.StatusRejected))
	assert.False(t, Known("unknown"))
}

func TestPhaseOf(t *testing.T) {
	assert.Equal(t, PhasePending, PhaseOf(domain.StatusApproved))
	assert.Equal(t, PhaseInProgress, PhaseOf(domain.StatusIntake))
	assert.Equal(t, PhaseDone, PhaseOf(domain.StatusSurvey))
	assert.Equal(t, PhaseRejected, PhaseOf(domain.StatusRejected))
}
