package persistence

import (
	"context"
	"fmt"
	"regexp"
)

// Collection names persisted by the service.
const (
	CollectionUsers      = "users"
	CollectionCategories = "categories"
	CollectionRequests   = "requests"
	CollectionComments   = "comments"
)

// UpdateFunc receives the current JSON array of a collection and returns the
// document that replaces it. An error from fn aborts the update and leaves the
// stored collection untouched.
type UpdateFunc func(current []byte) ([]byte, error)

// CollectionStore loads and saves whole collections as JSON arrays. Update
// holds an exclusive per-collection lock for the full read-modify-write so
// concurrent writers cannot lose each other's changes.
type CollectionStore interface {
	Load(ctx context.Context, collection string) ([]byte, error)
	Update(ctx context.Context, collection string, fn UpdateFunc) error
	Ping(ctx context.Context) error
}

var collectionName = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func checkName(collection string) error {
	if !collectionName.MatchString(collection) {
		return fmt.Errorf("invalid collection name %q", collection)
	}
	return nil
}

var emptyCollection = []byte("[]")
