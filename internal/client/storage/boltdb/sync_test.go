package boltdb

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/iudanet/goalsync/internal/models"
	"github.com/iudanet/goalsync/pkg/api"
)

func putRaw(t *testing.T, s *Storage, bucketName, key []byte, value string) {
	t.Helper()
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put(key, []byte(value))
	})
	require.NoError(t, err)
}

func TestLoadMeta_GeneratesDeviceIDOnce(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	first, err := store.LoadMeta(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, first.DeviceID)
	assert.True(t, first.IsFirstSync())

	second, err := store.LoadMeta(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.DeviceID, second.DeviceID, "deviceId генерируется один раз")
}

func TestLoadMeta_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "meta.db")

	store, err := New(ctx, dbPath, testLogger())
	require.NoError(t, err)

	meta, err := store.LoadMeta(ctx)
	require.NoError(t, err)
	meta.LastSyncAt = 1234567890
	require.NoError(t, store.SaveMeta(ctx, meta))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath, testLogger())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadMeta(ctx)
	require.NoError(t, err)
	assert.Equal(t, meta, got)
}

func TestLoadMeta_CorruptDataRegenerates(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	putRaw(t, store, bucketMeta, keySyncMeta, "{not json")

	meta, err := store.LoadMeta(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, meta.DeviceID)
	assert.Zero(t, meta.LastSyncAt)
}

func TestQueue_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Пустое хранилище дает пустую очередь
	q, err := store.LoadQueue(ctx)
	require.NoError(t, err)
	assert.NotNil(t, q)
	assert.Zero(t, q.Len())

	resolve := int64(5)
	queue := models.Queue{
		api.EntityGoals: {
			{ID: "g1", Operation: api.OpUpdate, Version: 3, ClientUpdatedAt: 10,
				Payload: api.Entity{ID: "g1", Version: 3, Data: json.RawMessage(`{"title":"Run"}`)}},
		},
		api.EntityHabits: {
			{ID: "h1", Operation: api.OpDelete, Version: 1, ResolveConflictVersion: &resolve,
				Payload: api.Entity{ID: "h1", Version: 1}},
		},
	}
	require.NoError(t, store.SaveQueue(ctx, queue))

	got, err := store.LoadQueue(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	item, ok := got.Find(api.EntityHabits, "h1")
	require.True(t, ok)
	require.NotNil(t, item.ResolveConflictVersion)
	assert.Equal(t, int64(5), *item.ResolveConflictVersion)

	goal, ok := got.Find(api.EntityGoals, "g1")
	require.True(t, ok)
	assert.JSONEq(t, `{"title":"Run"}`, string(goal.Payload.Data))
}

func TestQueue_CorruptDataReturnsEmpty(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	putRaw(t, store, bucketQueue, keySyncQueue, `{"goals": "oops"}`)

	q, err := store.LoadQueue(ctx)
	require.NoError(t, err)
	assert.Zero(t, q.Len())
}

func TestConflicts_SaveLoadAndCorrupt(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	pending := models.PendingConflicts{
		api.EntityGoals: {{
			ID:             "g1",
			Message:        "version mismatch",
			LocalEntity:    api.Entity{ID: "g1", Version: 3},
			ServerEntity:   &api.Entity{ID: "g1", Version: 5},
			LocalOperation: api.OpUpdate,
			ClientVersion:  3,
			ServerVersion:  5,
		}},
	}
	require.NoError(t, store.SaveConflicts(ctx, pending))

	got, err := store.LoadConflicts(ctx)
	require.NoError(t, err)
	assert.Equal(t, pending, got)

	putRaw(t, store, bucketConflicts, keyConflicts, "[]garbage")
	got, err = store.LoadConflicts(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.Len())
}

func TestLoad_BucketMissing(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Удаляем bucket queue напрямую
	err := store.db.Update(func(tx *bbolt.Tx) error {
		return tx.DeleteBucket(bucketQueue)
	})
	require.NoError(t, err)

	_, err = store.LoadQueue(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "queue bucket not found")

	err = store.SaveQueue(ctx, models.Queue{})
	assert.Error(t, err)
}
