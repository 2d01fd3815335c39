package data

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goalsync/internal/client/storage"
	"github.com/iudanet/goalsync/internal/client/storage/boltdb"
	"github.com/iudanet/goalsync/pkg/api"
)

func newTestService(t *testing.T, engine Engine) (*Service, *boltdb.Storage) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "data.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := NewService(store, engine)
	svc.now = func() time.Time { return time.UnixMilli(1_700_000_000_000) }
	svc.newID = func() string { return "id-1" }
	return svc, store
}

func okEngine() *EngineMock {
	return &EngineMock{
		EnqueueChangeFunc: func(ctx context.Context, t api.EntityType, op api.Operation, e api.Entity) error {
			return nil
		},
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	engine := okEngine()
	svc, store := newTestService(t, engine)

	e, err := svc.Create(ctx, api.EntityGoals, json.RawMessage(`{"title":"Run"}`))
	require.NoError(t, err)
	assert.Equal(t, "id-1", e.ID)
	assert.Zero(t, e.Version)
	assert.Equal(t, int64(1_700_000_000_000), e.LocalUpdatedAt)

	stored, err := store.GetEntity(ctx, api.EntityGoals, "id-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Run"}`, string(stored.Data))

	require.Len(t, engine.EnqueueChangeCalls(), 1)
	call := engine.EnqueueChangeCalls()[0]
	assert.Equal(t, api.EntityGoals, call.T)
	assert.Equal(t, api.OpCreate, call.Op)
	assert.Equal(t, "id-1", call.E.ID)
}

func TestService_Create_InvalidInput(t *testing.T) {
	ctx := context.Background()
	engine := okEngine()
	svc, _ := newTestService(t, engine)

	_, err := svc.Create(ctx, api.EntityType("tasks"), json.RawMessage(`{}`))
	assert.Error(t, err)

	for _, data := range []string{``, `[1,2]`, `"str"`, `null`, `{broken`} {
		_, err = svc.Create(ctx, api.EntityGoals, json.RawMessage(data))
		assert.ErrorIs(t, err, ErrInvalidData, data)
	}

	assert.Empty(t, engine.EnqueueChangeCalls())
}

func TestService_UpdateKeepsVersion(t *testing.T) {
	ctx := context.Background()
	engine := okEngine()
	svc, store := newTestService(t, engine)

	require.NoError(t, store.PutEntity(ctx, api.EntityHabits, api.Entity{ID: "h1", Version: 4, Data: json.RawMessage(`{"a":1}`)}))

	e, err := svc.Update(ctx, api.EntityHabits, "h1", json.RawMessage(`{"a":2}`))
	require.NoError(t, err)
	assert.Equal(t, int64(4), e.Version)

	call := engine.EnqueueChangeCalls()[0]
	assert.Equal(t, api.OpUpdate, call.Op)
	assert.Equal(t, int64(4), call.E.Version)

	_, err = svc.Update(ctx, api.EntityHabits, "missing", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	engine := okEngine()
	svc, store := newTestService(t, engine)

	require.NoError(t, store.PutEntity(ctx, api.EntityMilestones, api.Entity{ID: "m1", Version: 2, Data: json.RawMessage(`{}`)}))

	require.NoError(t, svc.Delete(ctx, api.EntityMilestones, "m1"))

	_, err := store.GetEntity(ctx, api.EntityMilestones, "m1")
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)

	call := engine.EnqueueChangeCalls()[0]
	assert.Equal(t, api.OpDelete, call.Op)
	assert.Equal(t, int64(2), call.E.Version)
}

func TestService_EnqueueFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	queueErr := errors.New("queue full")
	engine := &EngineMock{
		EnqueueChangeFunc: func(ctx context.Context, t api.EntityType, op api.Operation, e api.Entity) error {
			return queueErr
		},
	}
	svc, store := newTestService(t, engine)

	_, err := svc.Create(ctx, api.EntityGoals, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, queueErr)
	_, err = store.GetEntity(ctx, api.EntityGoals, "id-1")
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)

	original := api.Entity{ID: "g2", Version: 1, Data: json.RawMessage(`{"v":1}`)}
	require.NoError(t, store.PutEntity(ctx, api.EntityGoals, original))

	_, err = svc.Update(ctx, api.EntityGoals, "g2", json.RawMessage(`{"v":2}`))
	assert.ErrorIs(t, err, queueErr)
	got, err := store.GetEntity(ctx, api.EntityGoals, "g2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":1}`, string(got.Data))

	assert.ErrorIs(t, svc.Delete(ctx, api.EntityGoals, "g2"), queueErr)
	_, err = store.GetEntity(ctx, api.EntityGoals, "g2")
	assert.NoError(t, err)
}

func TestService_ApplyAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, okEngine())

	require.NoError(t, svc.Apply(ctx, api.EntityGlobalGoals, api.Entity{ID: "gg1", Version: 3, LocalUpdatedAt: 99, Data: json.RawMessage(`{}`)}))

	list, err := svc.List(ctx, api.EntityGlobalGoals)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(3), list[0].Version)
	assert.Zero(t, list[0].LocalUpdatedAt)

	require.NoError(t, svc.Remove(ctx, api.EntityGlobalGoals, "gg1"))
	require.NoError(t, svc.Remove(ctx, api.EntityGlobalGoals, "gg1"), "удаление отсутствующей сущности не ошибка")

	list, err = svc.List(ctx, api.EntityGlobalGoals)
	require.NoError(t, err)
	assert.Empty(t, list)
}
