package persistence

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/request-desk/internal/domain"
)

//go:embed seed/*.json
var seedFiles embed.FS

// PasswordHasher turns a seeded plaintext password into its stored form.
type PasswordHasher func(plain string) (string, error)

// errAlreadySeeded aborts a seeding update so a populated collection is not rewritten.
var errAlreadySeeded = errors.New("collection already populated")

// Seed fills the users and categories collections with the embedded defaults
// when they are empty. Existing data is never touched or rewritten, and seed
// passwords are only hashed when the users collection is actually filled.
func Seed(ctx context.Context, store CollectionStore, hash PasswordHasher, logger *zap.Logger) error {
	err := seedIfEmpty(ctx, store, CollectionUsers, func() ([]byte, error) {
		return seedUsers(hash)
	}, logger)
	if err != nil {
		return err
	}

	return seedIfEmpty(ctx, store, CollectionCategories, func() ([]byte, error) {
		categories, err := seedFiles.ReadFile("seed/categories.json")
		if err != nil {
			return nil, fmt.Errorf("read category seed: %w", err)
		}
		return categories, nil
	}, logger)
}

func seedUsers(hash PasswordHasher) ([]byte, error) {
	raw, err := seedFiles.ReadFile("seed/users.json")
	if err != nil {
		return nil, fmt.Errorf("read user seed: %w", err)
	}
	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("parse user seed: %w", err)
	}
	for _, u := range users {
		if !u.Role.Valid() {
			return nil, fmt.Errorf("seed user %s has unknown role %q", u.Email, u.Role)
		}
	}
	if hash != nil {
		for i := range users {
			hashed, err := hash(users[i].Password)
			if err != nil {
				return nil, fmt.Errorf("hash seed password for %s: %w", users[i].Email, err)
			}
			users[i].Password = hashed
		}
	}
	return json.MarshalIndent(users, "", "  ")
}

func seedIfEmpty(ctx context.Context, store CollectionStore, collection string, build func() ([]byte, error), logger *zap.Logger) error {
	populated, err := hasItems(ctx, store, collection)
	if err != nil {
		return fmt.Errorf("seed %s: %w", collection, err)
	}
	if populated {
		return nil
	}

	// Re-checked under the collection lock in case another process seeded first.
	err = store.Update(ctx, collection, func(current []byte) ([]byte, error) {
		existing, err := countItems(collection, current)
		if err != nil {
			return nil, err
		}
		if existing > 0 {
			return nil, errAlreadySeeded
		}
		return build()
	})
	if errors.Is(err, errAlreadySeeded) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed %s: %w", collection, err)
	}
	logger.Info("seeded collection", zap.String("collection", collection))
	return nil
}

func hasItems(ctx context.Context, store CollectionStore, collection string) (bool, error) {
	current, err := store.Load(ctx, collection)
	if err != nil {
		return false, err
	}
	n, err := countItems(collection, current)
	return n > 0, err
}

func countItems(collection string, doc []byte) (int, error) {
	var existing []json.RawMessage
	if err := json.Unmarshal(doc, &existing); err != nil {
		return 0, fmt.Errorf("parse %s: %w", collection, err)
	}
	return len(existing), nil
}
