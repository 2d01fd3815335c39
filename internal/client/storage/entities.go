package storage

import (
	"context"

	"github.com/iudanet/goalsync/pkg/api"
)

// EntityStorage локальная реплика сущностей, которую видит пользователь.
// Сервер пишет в нее через apply/delete callbacks движка, CLI при локальных мутациях.
type EntityStorage interface {
	// PutEntity создает или заменяет сущность
	PutEntity(ctx context.Context, t api.EntityType, e api.Entity) error

	// GetEntity возвращает сущность по id
	// Returns ErrEntityNotFound if entity doesn't exist
	GetEntity(ctx context.Context, t api.EntityType, id string) (api.Entity, error)

	// ListEntities возвращает все сущности типа, отсортированные по id
	ListEntities(ctx context.Context, t api.EntityType) ([]api.Entity, error)

	// DeleteEntity удаляет сущность; удаление отсутствующей сущности не ошибка
	DeleteEntity(ctx context.Context, t api.EntityType, id string) error
}
