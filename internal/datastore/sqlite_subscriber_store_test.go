package datastore

import (
	"context"
	"path/filepath"
	"testing"

	"bambawatch/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteSubscriberStore(t *testing.T) *SQLiteSubscriberStore {
	t.Helper()
	store, err := NewSQLiteSubscriberStore(filepath.Join(t.TempDir(), "subscribers.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteSubscriberStore_UpsertCreatesThenUpdates(t *testing.T) {
	store := newTestSQLiteSubscriberStore(t)
	ctx := context.Background()

	outcome, err := store.Upsert(ctx, "a@example.com", models.Preferences{Frequency: models.FrequencyImmediate})
	require.NoError(t, err)
	assert.Equal(t, UpsertCreated, outcome)

	outcome, err = store.Upsert(ctx, "a@example.com", models.Preferences{
		Frequency:   models.FrequencyDaily,
		StoreFilter: "Dianella",
	})
	require.NoError(t, err)
	assert.Equal(t, UpsertUpdated, outcome)

	subs, err := store.List(ctx, models.FrequencyDaily)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Dianella", subs[0].StoreFilter)
}

func TestSQLiteSubscriberStore_ListFiltersByFrequency(t *testing.T) {
	store := newTestSQLiteSubscriberStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "now@example.com", models.Preferences{Frequency: models.FrequencyImmediate})
	require.NoError(t, err)
	_, err = store.Upsert(ctx, "later@example.com", models.Preferences{Frequency: models.FrequencyDaily})
	require.NoError(t, err)

	immediate, err := store.List(ctx, models.FrequencyImmediate)
	require.NoError(t, err)
	require.Len(t, immediate, 1)
	assert.Equal(t, "now@example.com", immediate[0].Address)
}

func TestSQLiteSubscriberStore_Remove(t *testing.T) {
	store := newTestSQLiteSubscriberStore(t)
	ctx := context.Background()

	_, err := store.Upsert(ctx, "a@example.com", models.Preferences{})
	require.NoError(t, err)

	removed, err := store.Remove(ctx, "a@example.com")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = store.Remove(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.False(t, removed)
}
