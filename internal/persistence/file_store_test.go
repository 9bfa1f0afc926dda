package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/request-desk/internal/domain"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestFileStoreMissingCollectionIsEmpty(t *testing.T) {
	store := newTestStore(t)

	data, err := store.Load(context.Background(), CollectionRequests)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestFileStoreCorruptReadSurfacesError(t *testing.T) {
	store := newTestStore(t)
	path := filepath.Join(store.Dir(), CollectionRequests+".json")
	require.NoError(t, os.Mkdir(path, 0o755))

	_, err := store.Load(context.Background(), CollectionRequests)
	assert.Error(t, err)
}

func TestFileStoreUpdateWritesWholeDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.Update(ctx, CollectionComments, func(current []byte) ([]byte, error) {
		assert.JSONEq(t, `[]`, string(current))
		return []byte(`[{"id":"c1"}]`), nil
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(store.Dir(), CollectionComments+".json"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"c1"}]`, string(raw))

	entries, err := os.ReadDir(store.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file left behind: %s", e.Name())
	}
}

func TestFileStoreUpdateErrorLeavesDataUntouched(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.Update(ctx, CollectionRequests, func([]byte) ([]byte, error) {
		return []byte(`[{"id":"r1"}]`), nil
	}))

	boom := errors.New("boom")
	err := store.Update(ctx, CollectionRequests, func([]byte) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	data, err := store.Load(ctx, CollectionRequests)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"r1"}]`, string(data))
}

func TestFileStoreRejectsBadNames(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Load(context.Background(), "../etc/passwd")
	assert.Error(t, err)
}

func TestFileStoreConcurrentUpdatesDoNotLoseWrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.Update(ctx, CollectionComments, func(current []byte) ([]byte, error) {
				var items []int
				if err := json.Unmarshal(current, &items); err != nil {
					return nil, err
				}
				items = append(items, len(items))
				return json.Marshal(items)
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	data, err := store.Load(ctx, CollectionComments)
	require.NoError(t, err)
	var items []int
	require.NoError(t, json.Unmarshal(data, &items))
	assert.Len(t, items, writers)
}

func TestSeedFillsEmptyCollectionsOnce(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	hash := func(plain string) (string, error) { return "hashed:" + plain, nil }

	require.NoError(t, Seed(ctx, store, hash, zap.NewNop()))

	raw, err := store.Load(ctx, CollectionUsers)
	require.NoError(t, err)
	var users []domain.User
	require.NoError(t, json.Unmarshal(raw, &users))
	require.Len(t, users, 4)
	roles := map[domain.Role]bool{}
	for _, u := range users {
		assert.True(t, strings.HasPrefix(u.Password, "hashed:"))
		roles[u.Role] = true
	}
	assert.Len(t, roles, 4)

	raw, err = store.Load(ctx, CollectionCategories)
	require.NoError(t, err)
	var categories []domain.Category
	require.NoError(t, json.Unmarshal(raw, &categories))
	assert.NotEmpty(t, categories)

	require.NoError(t, store.Update(ctx, CollectionUsers, func([]byte) ([]byte, error) {
		return []byte(`[{"id":"only"}]`), nil
	}))
	require.NoError(t, Seed(ctx, store, hash, zap.NewNop()))
	raw, err = store.Load(ctx, CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"only"}]`, string(raw))
}

type countingStore struct {
	CollectionStore
	writes map[string]int
}

func (s *countingStore) Update(ctx context.Context, collection string, fn UpdateFunc) error {
	err := s.CollectionStore.Update(ctx, collection, fn)
	if err == nil {
		s.writes[collection]++
	}
	return err
}

func TestSeedSkipsHashingAndWritesWhenPopulated(t *testing.T) {
	store := &countingStore{CollectionStore: newTestStore(t), writes: map[string]int{}}
	ctx := context.Background()
	hashed := 0
	hash := func(plain string) (string, error) {
		hashed++
		return "hashed:" + plain, nil
	}

	require.NoError(t, Seed(ctx, store, hash, zap.NewNop()))
	assert.Equal(t, 4, hashed)
	assert.Equal(t, 1, store.writes[CollectionUsers])
	assert.Equal(t, 1, store.writes[CollectionCategories])

	require.NoError(t, Seed(ctx, store, hash, zap.NewNop()))
	assert.Equal(t, 4, hashed, "populated users must not be re-hashed")
	assert.Equal(t, 1, store.writes[CollectionUsers])
	assert.Equal(t, 1, store.writes[CollectionCategories])
}

func TestSeedIfEmptyDoesNotRewritePopulatedCollection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	build := func() ([]byte, error) { return []byte(`[{"id":"seed"}]`), nil }

	require.NoError(t, seedIfEmpty(ctx, store, CollectionCategories, build, zap.NewNop()))
	before, err := os.Stat(store.path(CollectionCategories))
	require.NoError(t, err)

	built := false
	require.NoError(t, seedIfEmpty(ctx, store, CollectionCategories, func() ([]byte, error) {
		built = true
		return []byte(`[]`), nil
	}, zap.NewNop()))
	assert.False(t, built)

	after, err := os.Stat(store.path(CollectionCategories))
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())

	raw, err := store.Load(ctx, CollectionCategories)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"seed"}]`, string(raw))
}
