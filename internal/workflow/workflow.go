// Package workflow holds the request lifecycle: the ordered status sequence
// and the per-role table of permitted status moves.
package workflow

import (
	"time"

	"github.com/spec-kit/request-desk/internal/domain"
	apperrors "github.com/spec-kit/request-desk/pkg/util/errorutil"
)

// Sequence is the ordered happy path every request walks through.
var Sequence = []domain.RequestStatus{
	domain.StatusRequested,
	domain.StatusApproved,
	domain.StatusIntake,
	domain.StatusInProgress,
	domain.StatusCompleted,
	domain.StatusSurvey,
	domain.StatusClosed,
}

type table map[domain.RequestStatus][]domain.RequestStatus

var approverMoves = table{
	domain.StatusRequested: {domain.StatusApproved, domain.StatusRejected},
}

var handlerMoves = table{
	domain.StatusApproved:   {domain.StatusIntake},
	domain.StatusIntake:     {domain.StatusInProgress},
	domain.StatusInProgress: {domain.StatusCompleted},
	domain.StatusSurvey:     {domain.StatusClosed},
}

var transitions = map[domain.Role]table{
	domain.RoleRequester: {},
	domain.RoleApprover:  approverMoves,
	domain.RoleHandler:   handlerMoves,
	domain.RoleAdmin:     union(approverMoves, handlerMoves),
}

func union(tables ...table) table {
	out := table{}
	for _, t := range tables {
		for from, targets := range t {
			for _, to := range targets {
				if !contains(out[from], to) {
					out[from] = append(out[from], to)
				}
			}
		}
	}
	return out
}

func contains(list []domain.RequestStatus, s domain.RequestStatus) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}

// Initial is the status assigned to newly created requests.
func Initial() domain.RequestStatus {
	return Sequence[0]
}

// Index returns the position of status in Sequence, or -1 when it is off the
// happy path (rejected) or unknown.
func Index(status domain.RequestStatus) int {
	for i, s := range Sequence {
		if s == status {
			return i
		}
	}
	return -1
}

// Known reports whether status is a valid request status.
func Known(status domain.RequestStatus) bool {
	return status == domain.StatusRejected || Index(status) >= 0
}

// CanTransition returns the statuses role may move a request to from current.
// The result is a fresh slice and is empty, never nil, when no move exists.
func CanTransition(role domain.Role, current domain.RequestStatus) []domain.RequestStatus {
	targets := transitions[role][current]
	out := make([]domain.RequestStatus, len(targets))
	copy(out, targets)
	return out
}

// Allowed reports whether role may move a request from current to target.
func Allowed(role domain.Role, current, target domain.RequestStatus) bool {
	return contains(transitions[role][current], target)
}

// ApplyTransition moves req to target on behalf of role, stamping UpdatedAt
// with the current time.
func ApplyTransition(req domain.Request, role domain.Role, target domain.RequestStatus) (domain.Request, error) {
	return ApplyTransitionAt(req, role, target, time.Now().UTC())
}

// ApplyTransitionAt is ApplyTransition with an explicit clock. The input is
// passed by value and never modified.
func ApplyTransitionAt(req domain.Request, role domain.Role, target domain.RequestStatus, now time.Time) (domain.Request, error) {
	if !Known(target) {
		return domain.Request{}, apperrors.NewValidationError("unknown status", map[string]any{"status": target})
	}
	if target == req.Status {
		return domain.Request{}, apperrors.NewInvalidTransition("request is already in the requested status", map[string]any{
			"status": target,
		})
	}
	if !Allowed(role, req.Status, target) {
		return domain.Request{}, apperrors.NewInvalidTransition("status transition not permitted", map[string]any{
			"from":    req.Status,
			"to":      target,
			"role":    role,
			"allowed": CanTransition(role, req.Status),
		})
	}
	req.Status = target
	req.UpdatedAt = now
	return req, nil
}
