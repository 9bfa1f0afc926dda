package repository

import (
	"context"

	"github.com/spec-kit/request-desk/internal/domain"
	"github.com/spec-kit/request-desk/internal/persistence"
)

// UserRepository defines read access to the seeded accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	users collection[domain.User]
}

// NewUserRepository returns a collection-backed implementation.
func NewUserRepository(store persistence.CollectionStore) UserRepository {
	return &userRepository{users: collection[domain.User]{store: store, name: persistence.CollectionUsers}}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.ID == id })
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.find(ctx, func(u domain.User) bool { return u.Email == email })
}

func (r *userRepository) find(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	users, err := r.users.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if match(users[i]) {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}
