package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/request-desk/internal/auth"
	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/events"
	"github.com/spec-kit/request-desk/internal/repository"
	"github.com/spec-kit/request-desk/internal/workflow"
	apperrors "github.com/spec-kit/request-desk/pkg/util/errorutil"
)

// RequestService coordinates service request workflows.
type RequestService struct {
	requests   repository.RequestRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// RequestDependencies bundles repositories for the request service.
type RequestDependencies struct {
	RequestRepo  repository.RequestRepository
	CategoryRepo repository.CategoryRepository
	Dispatcher   events.Dispatcher
}

// RequestCreateInput describes request creation payload.
type RequestCreateInput struct {
	MajorCategory string
	MinorCategory string
	Title         string
	Description   string
}

// RequestListFilter describes listing filters.
type RequestListFilter struct {
	Status *domain.RequestStatus
}

// RequestStats summarizes visible requests by phase.
type RequestStats struct {
	Pending    int
	InProgress int
	Done       int
	Rejected   int
	Total      int
}

// NewRequestService constructs the service.
func NewRequestService(deps RequestDependencies) *RequestService {
	return &RequestService{
		requests:   deps.RequestRepo,
		categories: deps.CategoryRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// CreateRequest submits a new request on behalf of user.
func (s *RequestService) CreateRequest(ctx context.Context, user domain.User, input RequestCreateInput) (*domain.Request, error) {
	input.MajorCategory = strings.TrimSpace(input.MajorCategory)
	input.MinorCategory = strings.TrimSpace(input.MinorCategory)
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)

	missing := []string{}
	if input.MajorCategory == "" {
		missing = append(missing, "majorCategory")
	}
	if input.MinorCategory == "" {
		missing = append(missing, "minorCategory")
	}
	if input.Title == "" {
		missing = append(missing, "title")
	}
	if input.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, apperrors.NewValidationError("required fields are missing", map[string]any{"fields": missing})
	}
	if err := s.checkCategory(ctx, input.MajorCategory, input.MinorCategory); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	req := &domain.Request{
		ID:            newID("req", now),
		UserID:        user.ID,
		UserName:      user.Name,
		MajorCategory: input.MajorCategory,
		MinorCategory: input.MinorCategory,
		Title:         input.Title,
		Description:   input.Description,
		Status:        workflow.Initial(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventRequestCreated,
		RequestID: req.ID,
		Actor:     events.ActorFor(user),
		Payload: events.RequestCreatedPayload{
			MajorCategory: req.MajorCategory,
			MinorCategory: req.MinorCategory,
			Title:         req.Title,
		},
	})
	return req, nil
}

// ListRequests returns the requests visible to user in creation order.
func (s *RequestService) ListRequests(ctx context.Context, user domain.User, filter RequestListFilter) ([]domain.Request, error) {
	repoFilter := repository.RequestFilter{Status: filter.Status}
	if filter.Status != nil && !workflow.Known(*filter.Status) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *filter.Status})
	}
	if !auth.CanSeeAll(user) {
		userID := user.ID
		repoFilter.UserID = &userID
	}
	return s.requests.List(ctx, repoFilter)
}

// GetRequest fetches a request enforcing the read policy.
func (s *RequestService) GetRequest(ctx context.Context, user domain.User, id string) (*domain.Request, error) {
	req, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckRead(user, *req); err != nil {
		return nil, err
	}
	return req, nil
}

// ChangeStatus moves a request to target if user's role allows it. The
// check is repeated against the latest stored version under the write lock.
func (s *RequestService) ChangeStatus(ctx context.Context, user domain.User, id string, target domain.RequestStatus) (*domain.Request, error) {
	current, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.CheckTransition(user, *current, target); err != nil {
		return nil, err
	}

	var oldStatus domain.RequestStatus
	updated, err := s.requests.Update(ctx, id, func(req domain.Request) (domain.Request, error) {
		if err := auth.CheckTransition(user, req, target); err != nil {
			return req, err
		}
		oldStatus = req.Status
		return workflow.ApplyTransitionAt(req, user.Role, target, s.now().UTC())
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("request", map[string]any{"id": id})
		}
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventRequestStatusChanged,
		RequestID: updated.ID,
		Actor:     events.ActorFor(user),
		Payload: events.RequestStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: updated.Status,
		},
	})
	return updated, nil
}

// AvailableActions lists the statuses user may move req to.
func (s *RequestService) AvailableActions(user domain.User, req domain.Request) []domain.RequestStatus {
	return workflow.CanTransition(user.Role, req.Status)
}

// Stats counts the requests visible to user per dashboard phase.
func (s *RequestService) Stats(ctx context.Context, user domain.User) (*RequestStats, error) {
	items, err := s.ListRequests(ctx, user, RequestListFilter{})
	if err != nil {
		return nil, err
	}
	stats := &RequestStats{Total: len(items)}
	for _, item := range items {
		switch workflow.PhaseOf(item.Status) {
		case workflow.PhasePending:
			stats.Pending++
		case workflow.PhaseInProgress:
			stats.InProgress++
		case workflow.PhaseDone:
			stats.Done++
		case workflow.PhaseRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

func (s *RequestService) load(ctx context.Context, id string) (*domain.Request, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("request", map[string]any{"id": id})
		}
		return nil, err
	}
	return req, nil
}

// checkCategory validates the pair against the configured categories. An
// empty category list accepts any pair.
func (s *RequestService) checkCategory(ctx context.Context, major, minor string) error {
	if s.categories == nil {
		return nil
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return nil
	}
	for _, c := range categories {
		if c.MajorCategory != major {
			continue
		}
		if c.HasMinor(minor) {
			return nil
		}
		return apperrors.NewValidationError("unknown minor category", map[string]any{"majorCategory": major, "minorCategory": minor})
	}
	return apperrors.NewValidationError("unknown major category", map[string]any{"majorCategory": major})
}
