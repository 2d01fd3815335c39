package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goalsync/internal/client/api"
	"github.com/iudanet/goalsync/internal/client/storage"
	"github.com/iudanet/goalsync/internal/client/storage/boltdb"
	clientsync "github.com/iudanet/goalsync/internal/client/sync"
	"github.com/iudanet/goalsync/internal/crypto"
	"github.com/iudanet/goalsync/internal/models"
	"github.com/iudanet/goalsync/internal/server"
	"github.com/iudanet/goalsync/internal/server/handlers"
	"github.com/iudanet/goalsync/internal/server/middleware"
	"github.com/iudanet/goalsync/internal/server/storage/sqlite"
	pkgapi "github.com/iudanet/goalsync/pkg/api"
)

type device struct {
	store *boltdb.Storage
	sync  *clientsync.Service
}

func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := server.Config{
		Version: "e2e",
		JWT: handlers.JWTConfig{
			Secret:         []byte("e2e-secret-key-that-is-long-enough!!"),
			AccessTokenTTL: time.Hour,
		},
		HashParams:     crypto.Params{Memory: 1024, Time: 1, Threads: 1, KeyLen: 32},
		AuthRateLimit:  100,
		AuthRateWindow: time.Minute,
	}
	limiter := middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	t.Cleanup(limiter.Stop)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(server.NewRouter(cfg, store, limiter, logger))
	t.Cleanup(ts.Close)
	return ts
}

func authenticate(t *testing.T, client *api.Client) *storage.AuthData {
	t.Helper()
	ctx := context.Background()

	_, err := client.Register(ctx, pkgapi.RegisterRequest{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	tok, err := client.Login(ctx, pkgapi.LoginRequest{Username: "alice", Password: "correct-horse"})
	require.NoError(t, err)

	return &storage.AuthData{
		Username:    "alice",
		UserID:      tok.UserID,
		AccessToken: tok.AccessToken,
		ExpiresAt:   time.Now().Add(time.Hour).Unix(),
	}
}

// newDevice открывает локальную реплику и поднимает движок синхронизации так же, как CLI
func newDevice(t *testing.T, client *api.Client, auth *storage.AuthData) *device {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "client.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.SaveAuth(ctx, auth))

	svc := clientsync.NewService(client, store, store, nil, logger, clientsync.Config{})
	for _, typ := range pkgapi.EntityTypes() {
		svc.OnApply(typ, store.PutEntity)
		svc.OnDelete(typ, store.DeleteEntity)
	}
	require.NoError(t, svc.Load(ctx))

	return &device{store: store, sync: svc}
}

func (d *device) edit(t *testing.T, op pkgapi.Operation, id, data string) {
	t.Helper()
	ctx := context.Background()

	e := pkgapi.Entity{ID: id, Data: json.RawMessage(data)}
	if current, err := d.store.GetEntity(ctx, pkgapi.EntityGoals, id); err == nil {
		e.Version = current.Version
	}

	if op == pkgapi.OpDelete {
		require.NoError(t, d.store.DeleteEntity(ctx, pkgapi.EntityGoals, id))
	} else {
		require.NoError(t, d.store.PutEntity(ctx, pkgapi.EntityGoals, e))
	}
	require.NoError(t, d.sync.EnqueueGoalChange(ctx, op, e))
}

func (d *device) goal(t *testing.T, id string) pkgapi.Entity {
	t.Helper()
	e, err := d.store.GetEntity(context.Background(), pkgapi.EntityGoals, id)
	require.NoError(t, err)
	return e
}

func TestEndToEnd_TwoDevicesConverge(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	client := api.NewClient(ts.URL)
	auth := authenticate(t, client)

	laptop := newDevice(t, client, auth)
	phone := newDevice(t, client, auth)

	// Ноутбук создает цель; сервер возвращает ее с версией 1
	laptop.edit(t, pkgapi.OpCreate, "g1", `{"title":"Run 5k"}`)
	res, err := laptop.sync.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Zero(t, res.Conflicts)
	assert.Equal(t, int64(1), laptop.goal(t, "g1").Version)
	assert.Zero(t, laptop.sync.Status().Pending)

	// Телефон при первой синхронизации получает цель
	_, err = phone.sync.Sync(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Run 5k"}`, string(phone.goal(t, "g1").Data))

	// Телефон редактирует, ноутбук подтягивает изменения
	phone.edit(t, pkgapi.OpUpdate, "g1", `{"title":"Run 10k"}`)
	_, err = phone.sync.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), phone.goal(t, "g1").Version)

	res, err = laptop.sync.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Changes.Applied)
	assert.Equal(t, int64(2), laptop.goal(t, "g1").Version)
	assert.JSONEq(t, `{"title":"Run 10k"}`, string(laptop.goal(t, "g1").Data))

	// Удаление доходит до другого устройства как tombstone
	laptop.edit(t, pkgapi.OpDelete, "g1", ``)
	_, err = laptop.sync.Sync(ctx)
	require.NoError(t, err)

	res, err = phone.sync.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Changes.Deleted)
	_, err = phone.store.GetEntity(ctx, pkgapi.EntityGoals, "g1")
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
}

func TestEndToEnd_ConflictKeepLocal(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	client := api.NewClient(ts.URL)
	auth := authenticate(t, client)

	laptop := newDevice(t, client, auth)
	phone := newDevice(t, client, auth)

	laptop.edit(t, pkgapi.OpCreate, "g1", `{"title":"v1"}`)
	_, err := laptop.sync.Sync(ctx)
	require.NoError(t, err)
	_, err = phone.sync.Sync(ctx)
	require.NoError(t, err)

	// Оба устройства редактируют версию 1; телефон успевает первым
	phone.edit(t, pkgapi.OpUpdate, "g1", `{"title":"phone"}`)
	_, err = phone.sync.Sync(ctx)
	require.NoError(t, err)

	laptop.edit(t, pkgapi.OpUpdate, "g1", `{"title":"laptop"}`)

	var detected models.PendingConflicts
	laptop.sync.OnConflictsDetected(func(p models.PendingConflicts) { detected = p })

	res, err := laptop.sync.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Conflicts)
	require.Equal(t, 1, detected.Len())

	c := detected[pkgapi.EntityGoals][0]
	assert.Equal(t, "g1", c.ID)
	assert.Equal(t, int64(1), c.ClientVersion)
	assert.Equal(t, int64(2), c.ServerVersion)
	require.NotNil(t, c.ServerEntity)
	assert.JSONEq(t, `{"title":"phone"}`, string(c.ServerEntity.Data))

	// Очередь и watermark сохранены до решения пользователя
	status := laptop.sync.Status()
	assert.Equal(t, 1, status.Pending)
	assert.Equal(t, 1, status.Conflicts)
	assert.JSONEq(t, `{"title":"laptop"}`, string(laptop.goal(t, "g1").Data))

	cleared, err := laptop.sync.ResolveConflict(ctx, "g1", models.KeepLocal)
	require.NoError(t, err)
	assert.True(t, cleared)
	assert.Zero(t, laptop.sync.Status().Pending, "решение отправлено сразу после разрешения")
	assert.Equal(t, int64(3), laptop.goal(t, "g1").Version)

	_, err = phone.sync.Pull(ctx)
	require.NoError(t, err)
	got := phone.goal(t, "g1")
	assert.Equal(t, int64(3), got.Version)
	assert.JSONEq(t, `{"title":"laptop"}`, string(got.Data))
}

func TestEndToEnd_ConflictKeepServer(t *testing.T) {
	ctx := context.Background()
	ts := startServer(t)
	client := api.NewClient(ts.URL)
	auth := authenticate(t, client)

	laptop := newDevice(t, client, auth)
	phone := newDevice(t, client, auth)

	laptop.edit(t, pkgapi.OpCreate, "g1", `{"title":"v1"}`)
	_, err := laptop.sync.Sync(ctx)
	require.NoError(t, err)
	_, err = phone.sync.Sync(ctx)
	require.NoError(t, err)

	// Телефон удаляет, ноутбук параллельно редактирует
	phone.edit(t, pkgapi.OpDelete, "g1", ``)
	_, err = phone.sync.Sync(ctx)
	require.NoError(t, err)

	laptop.edit(t, pkgapi.OpUpdate, "g1", `{"title":"laptop"}`)
	res, err := laptop.sync.Sync(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, res.Conflicts)

	c := laptop.sync.PendingConflicts()[pkgapi.EntityGoals][0]
	assert.Nil(t, c.ServerEntity, "на сервере сущность удалена")

	cleared, err := laptop.sync.ResolveConflict(ctx, "g1", models.KeepServer)
	require.NoError(t, err)
	assert.True(t, cleared)

	_, err = laptop.store.GetEntity(ctx, pkgapi.EntityGoals, "g1")
	assert.ErrorIs(t, err, storage.ErrEntityNotFound)
	assert.Zero(t, laptop.sync.Status().Pending)
}
