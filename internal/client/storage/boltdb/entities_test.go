package boltdb

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goalsync/internal/client/storage"
	"github.com/iudanet/goalsync/pkg/api"
)

func TestEntities_CRUD(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	// Пустой тип
	list, err := store.ListEntities(ctx, api.EntityGoals)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = store.GetEntity(ctx, api.EntityGoals, "g1")
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)

	g1 := api.Entity{ID: "g1", Version: 1, Data: json.RawMessage(`{"title":"Run"}`)}
	g2 := api.Entity{ID: "g2", Version: 2, Data: json.RawMessage(`{"title":"Read"}`)}
	require.NoError(t, store.PutEntity(ctx, api.EntityGoals, g2))
	require.NoError(t, store.PutEntity(ctx, api.EntityGoals, g1))

	got, err := store.GetEntity(ctx, api.EntityGoals, "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Version)

	// Сущности разных типов не пересекаются
	_, err = store.GetEntity(ctx, api.EntityHabits, "g1")
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)

	list, err = store.ListEntities(ctx, api.EntityGoals)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "g1", list[0].ID)
	assert.Equal(t, "g2", list[1].ID)

	require.NoError(t, store.DeleteEntity(ctx, api.EntityGoals, "g1"))
	_, err = store.GetEntity(ctx, api.EntityGoals, "g1")
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)

	// Удаление отсутствующей сущности и отсутствующего типа не ошибка
	assert.NoError(t, store.DeleteEntity(ctx, api.EntityGoals, "g1"))
	assert.NoError(t, store.DeleteEntity(ctx, api.EntityMilestones, "m1"))
}
