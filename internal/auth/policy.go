package auth

import (
	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/workflow"
	apperrors "github.com/spec-kit/request-desk/pkg/util/errorutil"
)

// Action names an operation on a request.
type Action string

const (
	ActionRead         Action = "read"
	ActionChangeStatus Action = "change_status"
)

// Authorize decides whether user may perform action on req. For
// ActionChangeStatus it only reports whether the role has any move from the
// current status; CheckTransition validates a concrete target.
func Authorize(user domain.User, req domain.Request, action Action) bool {
	switch action {
	case ActionRead:
		return user.Role == domain.RoleAdmin || req.UserID == user.ID
	case ActionChangeStatus:
		return len(workflow.CanTransition(user.Role, req.Status)) > 0
	default:
		return false
	}
}

// CanSeeAll reports whether listings for user are unfiltered.
func CanSeeAll(user domain.User) bool {
	return user.Role == domain.RoleAdmin
}

// CheckRead returns Forbidden when user may not read req.
func CheckRead(user domain.User, req domain.Request) error {
	if !Authorize(user, req, ActionRead) {
		return apperrors.NewForbidden("you do not have access to this request")
	}
	return nil
}

// CheckTransition validates a status change by user to target. Unknown
// statuses are validation errors, a role with no move from the current
// status is forbidden, and any other disallowed target is an invalid
// transition.
func CheckTransition(user domain.User, req domain.Request, target domain.RequestStatus) error {
	if !workflow.Known(target) {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": target})
	}
	if !Authorize(user, req, ActionChangeStatus) {
		return apperrors.NewForbidden("your role cannot change the status of this request")
	}
	if target == req.Status {
		return apperrors.NewInvalidTransition("request is already in the requested status", map[string]any{"status": target})
	}
	if !workflow.Allowed(user.Role, req.Status, target) {
		return apperrors.NewInvalidTransition("status transition not permitted", map[string]any{
			"from":    req.Status,
			"to":      target,
			"allowed": workflow.CanTransition(user.Role, req.Status),
		})
	}
	return nil
}
