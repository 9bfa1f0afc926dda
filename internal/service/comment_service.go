package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/events"
	"github.com/spec-kit/request-desk/internal/repository"
	apperrors "github.com/spec-kit/request-desk/pkg/util/errorutil"
)

// CommentService manages request comment threads.
type CommentService struct {
	comments   repository.CommentRepository
	requests   repository.RequestRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewCommentService constructs the service.
func NewCommentService(comments repository.CommentRepository, requests repository.RequestRepository, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{
		comments:   comments,
		requests:   requests,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// AddComment appends a comment by user to the request thread. The author's
// name and role are copied onto the comment.
func (s *CommentService) AddComment(ctx context.Context, user domain.User, requestID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("content is required", map[string]any{"fields": []string{"content"}})
	}
	if err := s.ensureRequest(ctx, requestID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	comment := &domain.Comment{
		ID:        newID("comment", now),
		RequestID: requestID,
		UserID:    user.ID,
		UserName:  user.Name,
		UserRole:  user.Role,
		Content:   content,
		CreatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:      events.EventCommentAdded,
		RequestID: requestID,
		Actor:     events.ActorFor(user),
		Payload: events.CommentAddedPayload{
			CommentID:   comment.ID,
			BodyPreview: stringPreview(comment.Content, 120),
		},
	})
	return comment, nil
}

// ListComments returns the thread oldest first.
func (s *CommentService) ListComments(ctx context.Context, requestID string) ([]domain.Comment, error) {
	if err := s.ensureRequest(ctx, requestID); err != nil {
		return nil, err
	}
	return s.comments.ListByRequest(ctx, requestID)
}

func (s *CommentService) ensureRequest(ctx context.Context, requestID string) error {
	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("request", map[string]any{"id": requestID})
		}
		return err
	}
	return nil
}
