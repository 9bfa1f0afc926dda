package repository

import (
	"context"

	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/persistence"
)

// RequestFilter narrows request listings.
type RequestFilter struct {
	UserID *string
	Status *domain.RequestStatus
}

func (f RequestFilter) matches(req domain.Request) bool {
	if f.UserID != nil && req.UserID != *f.UserID {
		return false
	}
	if f.Status != nil && req.Status != *f.Status {
		return false
	}
	return true
}

// RequestRepository encapsulates request persistence.
type RequestRepository interface {
	Create(ctx context.Context, req *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]domain.Request, error)
	Update(ctx context.Context, id string, fn func(domain.Request) (domain.Request, error)) (*domain.Request, error)
}

type requestRepository struct {
	requests collection[domain.Request]
}

// NewRequestRepository instantiates repository.
func NewRequestRepository(store persistence.CollectionStore) RequestRepository {
	return &requestRepository{requests: collection[domain.Request]{store: store, name: persistence.CollectionRequests}}
}

func (r *requestRepository) Create(ctx context.Context, req *domain.Request) error {
	return r.requests.mutate(ctx, func(items []domain.Request) ([]domain.Request, error) {
		return append(items, *req), nil
	})
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	items, err := r.requests.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, ErrNotFound
}

// List returns matching requests in stored (creation) order.
func (r *requestRepository) List(ctx context.Context, filter RequestFilter) ([]domain.Request, error) {
	items, err := r.requests.all(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Request, 0, len(items))
	for _, item := range items {
		if filter.matches(item) {
			result = append(result, item)
		}
	}
	return result, nil
}

// Update replaces the record with id by fn's result while holding the
// collection write lock. fn sees the latest stored version.
func (r *requestRepository) Update(ctx context.Context, id string, fn func(domain.Request) (domain.Request, error)) (*domain.Request, error) {
	var updated domain.Request
	err := r.requests.mutate(ctx, func(items []domain.Request) ([]domain.Request, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			next, err := fn(items[i])
			if err != nil {
				return nil, err
			}
			next.ID = items[i].ID
			items[i] = next
			updated = next
			return items, nil
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
