package pending

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPut_And_All_InsertionOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Mutation{ID: "a", Kind: KindAdd, Payload: []byte(`{"id":"a"}`)}))
	require.NoError(t, s.Put(ctx, Mutation{ID: "b", Kind: KindDelete}))
	require.NoError(t, s.Put(ctx, Mutation{ID: "c", Kind: KindAdd, Payload: []byte(`{"id":"c"}`)}))

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, "b", all[1].ID)
	assert.Equal(t, "c", all[2].ID)
	assert.Equal(t, KindDelete, all[1].Kind)
	assert.Equal(t, []byte(`{"id":"a"}`), all[0].Payload)
}

func TestPut_OverwriteMovesToEnd(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Mutation{ID: "a", Kind: KindAdd, Payload: []byte(`{}`)}))
	require.NoError(t, s.Put(ctx, Mutation{ID: "b", Kind: KindAdd, Payload: []byte(`{}`)}))
	// A delete for an already-queued add replaces it.
	require.NoError(t, s.Put(ctx, Mutation{ID: "a", Kind: KindDelete}))

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
	assert.Equal(t, KindDelete, all[1].Kind)
	assert.Empty(t, all[1].Payload)
}

func TestDelete_And_Count(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Mutation{ID: "a", Kind: KindAdd}))
	require.NoError(t, s.Put(ctx, Mutation{ID: "b", Kind: KindAdd}))

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "missing")) // no-op

	count, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, Mutation{ID: "a", Kind: KindAdd}))
	require.NoError(t, s.Put(ctx, Mutation{ID: "b", Kind: KindDelete}))

	require.NoError(t, s.Clear(ctx))

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEnqueuedAt_Preserved(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, s.Put(ctx, Mutation{ID: "a", Kind: KindAdd, EnqueuedAt: at}))

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].EnqueuedAt.Equal(at))
}

func TestMigrations_Idempotent(t *testing.T) {
	// Second migrate on an already-current schema must be a no-op.
	s := newTestStore(t)
	assert.NoError(t, migrateSchema(s.db))
}
