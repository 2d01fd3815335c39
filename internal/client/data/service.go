// Package data выполняет локальные мутации сущностей: оптимистично меняет реплику
// и ставит мутацию в очередь синхронизации.
package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/goalsync/internal/client/storage"
	"github.com/iudanet/goalsync/pkg/api"
)

// ErrInvalidData данные сущности не являются JSON объектом
var ErrInvalidData = errors.New("entity data must be a JSON object")

//go:generate moq -out service_mock.go . Engine

// Engine очередь мутаций движка синхронизации
type Engine interface {
	EnqueueChange(ctx context.Context, t api.EntityType, op api.Operation, e api.Entity) error
}

// Service handles client-side entity operations
type Service struct {
	store  storage.EntityStorage
	engine Engine
	now    func() time.Time
	newID  func() string
}

// NewService creates a new data service
func NewService(store storage.EntityStorage, engine Engine) *Service {
	return &Service{
		store:  store,
		engine: engine,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Create создает сущность с новым id
func (s *Service) Create(ctx context.Context, t api.EntityType, data json.RawMessage) (api.Entity, error) {
	if err := checkInput(t, data); err != nil {
		return api.Entity{}, err
	}

	e := api.Entity{
		ID:             s.newID(),
		Data:           data,
		LocalUpdatedAt: s.now().UnixMilli(),
	}
	if err := s.mutate(ctx, t, api.OpCreate, e, nil); err != nil {
		return api.Entity{}, err
	}
	return e, nil
}

// Update заменяет данные существующей сущности, сохраняя известную версию
func (s *Service) Update(ctx context.Context, t api.EntityType, id string, data json.RawMessage) (api.Entity, error) {
	if err := checkInput(t, data); err != nil {
		return api.Entity{}, err
	}

	current, err := s.store.GetEntity(ctx, t, id)
	if err != nil {
		return api.Entity{}, fmt.Errorf("failed to get %s %s: %w", t, id, err)
	}

	e := api.Entity{
		ID:             id,
		Data:           data,
		Version:        current.Version,
		LocalUpdatedAt: s.now().UnixMilli(),
	}
	if err := s.mutate(ctx, t, api.OpUpdate, e, &current); err != nil {
		return api.Entity{}, err
	}
	return e, nil
}

// Delete удаляет сущность локально и ставит удаление в очередь
func (s *Service) Delete(ctx context.Context, t api.EntityType, id string) error {
	if !t.Valid() {
		return fmt.Errorf("unknown entity type %q", t)
	}

	current, err := s.store.GetEntity(ctx, t, id)
	if err != nil {
		return fmt.Errorf("failed to get %s %s: %w", t, id, err)
	}

	e := api.Entity{
		ID:             id,
		Version:        current.Version,
		LocalUpdatedAt: s.now().UnixMilli(),
	}
	return s.mutate(ctx, t, api.OpDelete, e, &current)
}

// Get возвращает сущность из локальной реплики
func (s *Service) Get(ctx context.Context, t api.EntityType, id string) (api.Entity, error) {
	return s.store.GetEntity(ctx, t, id)
}

// List возвращает все сущности типа из локальной реплики
func (s *Service) List(ctx context.Context, t api.EntityType) ([]api.Entity, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown entity type %q", t)
	}
	return s.store.ListEntities(ctx, t)
}

// Apply записывает серверную сущность в реплику (callback движка)
func (s *Service) Apply(ctx context.Context, t api.EntityType, e api.Entity) error {
	return s.store.PutEntity(ctx, t, e.Stripped())
}

// Remove удаляет сущность по серверному tombstone (callback движка)
func (s *Service) Remove(ctx context.Context, t api.EntityType, id string) error {
	return s.store.DeleteEntity(ctx, t, id)
}

// mutate меняет реплику и ставит мутацию в очередь.
// Если очередь отказала, реплика возвращается к previous.
func (s *Service) mutate(ctx context.Context, t api.EntityType, op api.Operation, e api.Entity, previous *api.Entity) error {
	var err error
	if op == api.OpDelete {
		err = s.store.DeleteEntity(ctx, t, e.ID)
	} else {
		err = s.store.PutEntity(ctx, t, e)
	}
	if err != nil {
		return fmt.Errorf("failed to write local %s %s: %w", t, e.ID, err)
	}

	if err := s.engine.EnqueueChange(ctx, t, op, e); err != nil {
		s.rollback(ctx, t, e.ID, previous)
		return err
	}
	return nil
}

func (s *Service) rollback(ctx context.Context, t api.EntityType, id string, previous *api.Entity) {
	if previous == nil {
		_ = s.store.DeleteEntity(ctx, t, id)
		return
	}
	_ = s.store.PutEntity(ctx, t, *previous)
}

func checkInput(t api.EntityType, data json.RawMessage) error {
	if !t.Valid() {
		return fmt.Errorf("unknown entity type %q", t)
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return ErrInvalidData
	}
	return nil
}
