package todo

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestStore creates a transient store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(Config{Path: MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

func strPtr(s string) *string {
	return &s
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{":memory:", true},
		{":memory", true},
		{"data.db", false},
		{"/tmp/todos.db", false},
		{"", false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, IsTransient(tc.path), "IsTransient(%q)", tc.path)
	}
}

func TestStore_Create(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	t.Run("title only", func(t *testing.T) {
		todo, err := store.Create(ctx, "Buy milk", nil, false)
		require.NoError(t, err)

		assert.NotZero(t, todo.ID)
		assert.Equal(t, "Buy milk", todo.Title)
		assert.Nil(t, todo.Description)
		assert.False(t, todo.Completed)
	})

	t.Run("all fields", func(t *testing.T) {
		todo, err := store.Create(ctx, "Write report", strPtr("quarterly numbers"), true)
		require.NoError(t, err)

		require.NotNil(t, todo.Description)
		assert.Equal(t, "quarterly numbers", *todo.Description)
		assert.True(t, todo.Completed)
	})

	t.Run("empty title is allowed", func(t *testing.T) {
		todo, err := store.Create(ctx, "", nil, false)
		require.NoError(t, err)
		assert.Equal(t, "", todo.Title)
	})

	t.Run("ids increase", func(t *testing.T) {
		first, err := store.Create(ctx, "first", nil, false)
		require.NoError(t, err)
		second, err := store.Create(ctx, "second", nil, false)
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
	})
}

func TestStore_Create_DoesNotAliasDescription(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	desc := "original"
	todo, err := store.Create(ctx, "alias", &desc, false)
	require.NoError(t, err)

	desc = "changed"
	assert.Equal(t, "original", *todo.Description)
}

func TestStore_Get(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "Get me", strPtr("details"), true)
	require.NoError(t, err)

	t.Run("existing todo", func(t *testing.T) {
		found, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, *created, *found)
	})

	t.Run("non-existent todo", func(t *testing.T) {
		found, err := store.Get(ctx, created.ID+1000)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestStore_List(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	t.Run("empty database", func(t *testing.T) {
		todos, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, todos)
		assert.Empty(t, todos)
	})

	const n = 5
	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		todo, err := store.Create(ctx, fmt.Sprintf("Todo %d", i), nil, false)
		require.NoError(t, err)
		ids = append(ids, todo.ID)
	}

	t.Run("every id exactly once in insertion order", func(t *testing.T) {
		todos, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, todos, n)

		got := make([]int64, 0, len(todos))
		for _, todo := range todos {
			got = append(got, todo.ID)
		}
		assert.Equal(t, ids, got)
	})
}

func TestStore_Update(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "Original", strPtr("old description"), false)
	require.NoError(t, err)

	t.Run("full replacement", func(t *testing.T) {
		updated, err := store.Update(ctx, created.ID, "Updated", strPtr("new description"), true)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, created.ID, updated.ID)

		found, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Updated", found.Title)
		require.NotNil(t, found.Description)
		assert.Equal(t, "new description", *found.Description)
		assert.True(t, found.Completed)
		assert.Equal(t, *updated, *found)
	})

	t.Run("omitted description is cleared, not merged", func(t *testing.T) {
		_, err := store.Update(ctx, created.ID, "No description", nil, false)
		require.NoError(t, err)

		found, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Nil(t, found.Description)
		assert.False(t, found.Completed)
	})

	t.Run("same values still count as found", func(t *testing.T) {
		_, err := store.Update(ctx, created.ID, "Same", nil, false)
		require.NoError(t, err)

		updated, err := store.Update(ctx, created.ID, "Same", nil, false)
		require.NoError(t, err)
		assert.NotNil(t, updated)
	})

	t.Run("non-existent todo", func(t *testing.T) {
		before, err := store.List(ctx)
		require.NoError(t, err)

		updated, err := store.Update(ctx, created.ID+1000, "Ghost", nil, true)
		require.NoError(t, err)
		assert.Nil(t, updated)

		after, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, after, len(before))
	})
}

func TestStore_Update_AfterDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "Short lived", nil, false)
	require.NoError(t, err)

	deleted, err := store.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.True(t, deleted)

	updated, err := store.Update(ctx, created.ID, "Too late", nil, true)
	require.NoError(t, err)
	assert.Nil(t, updated)

	found, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, found, "update must not resurrect a deleted todo")
}

func TestStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "To be deleted", nil, false)
	require.NoError(t, err)

	t.Run("delete existing todo", func(t *testing.T) {
		deleted, err := store.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		found, err := store.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("delete already deleted todo", func(t *testing.T) {
		deleted, err := store.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("delete never existing todo", func(t *testing.T) {
		deleted, err := store.Delete(ctx, 424242)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

// Same-id writers race at SQLite's isolation level: the last write wins and
// nothing detects the conflict.
func TestStore_ConcurrentUpdates_LastWriteWins(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "contended", nil, false)
	require.NoError(t, err)

	const writers = 10
	titles := make(map[string]bool, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		title := fmt.Sprintf("writer-%d", i)
		titles[title] = true

		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Update(ctx, created.ID, title, nil, true)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	found, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, titles[found.Title], "unexpected title %q", found.Title)

	todos, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}

func TestStore_TransientSurvivesAcrossOperations(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	assert.True(t, store.Transient())

	for i := 0; i < 20; i++ {
		_, err := store.Create(ctx, fmt.Sprintf("item %d", i), nil, false)
		require.NoError(t, err)
	}

	todos, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, todos, 20)
}

func TestStore_TransientStoresAreIndependent(t *testing.T) {
	first := setupTestStore(t)
	second := setupTestStore(t)
	ctx := context.Background()

	_, err := first.Create(ctx, "only in first", nil, false)
	require.NoError(t, err)

	todos, err := second.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestStore_DurablePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.db")
	ctx := context.Background()

	store, err := Open(Config{Path: path})
	require.NoError(t, err)
	assert.False(t, store.Transient())
	assert.Equal(t, path, store.Path())

	created, err := store.Create(ctx, "Survive restart", strPtr("kept on disk"), true)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(Config{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = reopened.Close()
	})

	found, err := reopened.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *created, *found)

	next, err := reopened.Create(ctx, "after restart", nil, false)
	require.NoError(t, err)
	assert.Greater(t, next.ID, created.ID)
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, "keep me", nil, false)
	require.NoError(t, err)

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))

	found, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestStore_Ping(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestStore_ClosedStoreReturnsErrors(t *testing.T) {
	store, err := Open(Config{Path: MemoryPath})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	ctx := context.Background()

	_, err = store.Create(ctx, "nope", nil, false)
	assert.Error(t, err)

	_, err = store.List(ctx)
	assert.Error(t, err)

	_, err = store.Get(ctx, 1)
	assert.Error(t, err)

	assert.Error(t, store.Ping(ctx))
}
