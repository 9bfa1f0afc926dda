package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spec-kit/request-desk/internal/persistence"
	apperrors "github.com/spec-kit/request-desk/pkg/util/errorutil"
)

// ErrNotFound is returned when a record id or key is absent.
var ErrNotFound = errors.New("record not found")

// collection decodes a whole-collection document into typed records.
type collection[T any] struct {
	store persistence.CollectionStore
	name  string
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
	raw, err := c.store.Load(ctx, c.name)
	if err != nil {
		return nil, apperrors.NewStorageError("load "+c.name, err)
	}
	items, err := c.decode(raw)
	if err != nil {
		return nil, apperrors.NewStorageError("load "+c.name, err)
	}
	return items, nil
}

// mutate runs fn against the current records under the collection's write
// lock and persists the returned slice. Errors returned by fn are passed
// through unchanged and nothing is written.
func (c collection[T]) mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	var fnErr error
	err := c.store.Update(ctx, c.name, func(current []byte) ([]byte, error) {
		items, err := c.decode(current)
		if err != nil {
			return nil, err
		}
		next, err := fn(items)
		if err != nil {
			fnErr = err
			return nil, err
		}
		return json.MarshalIndent(next, "", "  ")
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return apperrors.NewStorageError("save "+c.name, err)
	}
	return nil
}

func (c collection[T]) decode(raw []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.name, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
