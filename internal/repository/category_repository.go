package repository

import (
	"context"

	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/persistence"
)

// CategoryRepository exposes the static request categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
}

type categoryRepository struct {
	categories collection[domain.Category]
}

// NewCategoryRepository builds the repository.
func NewCategoryRepository(store persistence.CollectionStore) CategoryRepository {
	return &categoryRepository{categories: collection[domain.Category]{store: store, name: persistence.CollectionCategories}}
}

func (r *categoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	return r.categories.all(ctx)
}
