package repository

import (
	"context"

	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/persistence"
)

// CommentRepository manages request thread comments. Comments are only ever
// appended.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByRequest(ctx context.Context, requestID string) ([]domain.Comment, error)
}

type commentRepository struct {
	comments collection[domain.Comment]
}

// NewCommentRepository builds repository.
func NewCommentRepository(store persistence.CollectionStore) CommentRepository {
	return &commentRepository{comments: collection[domain.Comment]{store: store, name: persistence.CollectionComments}}
}

func (r *commentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	return r.comments.mutate(ctx, func(items []domain.Comment) ([]domain.Comment, error) {
		return append(items, *comment), nil
	})
}

// ListByRequest returns the thread in insertion order.
func (r *commentRepository) ListByRequest(ctx context.Context, requestID string) ([]domain.Comment, error) {
	items, err := r.comments.all(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Comment, 0)
	for _, c := range items {
		if c.RequestID == requestID {
			result = append(result, c)
		}
	}
	return result, nil
}
