package storage

import (
	"context"

	"github.com/iudanet/goalsync/internal/models"
	"github.com/iudanet/goalsync/pkg/api"
)

// SyncOutcome результат применения пакета мутаций одного устройства
type SyncOutcome struct {
	// Conflicts расхождения версий. Если не пусто, ни одна мутация не записана.
	Conflicts map[api.EntityType][]api.Conflict
	// Changes все сущности пользователя, измененные после watermark устройства (включая tombstones)
	Changes []*models.StoredEntity
	// Timestamp новый watermark (ms), строго больше любого ранее выданного
	Timestamp int64
}

// ConflictCount возвращает общее количество конфликтов
func (o *SyncOutcome) ConflictCount() int {
	n := 0
	for _, list := range o.Conflicts {
		n += len(list)
	}
	return n
}

// EntityStorage defines interface for synchronized entities persistence
type EntityStorage interface {
	// ApplyChanges atomically checks every queue item against the stored version and,
	// only if none mismatches, writes all of them bumping their versions.
	// The expected version of an item is resolveConflictVersion when present, else version.
	// Returns ErrDuplicateItem if the same entity appears twice.
	ApplyChanges(ctx context.Context, userID string, changes map[api.EntityType][]api.QueueItem, since int64) (*SyncOutcome, error)

	// GetEntity retrieves a single entity (tombstones included)
	// Returns ErrEntityNotFound if entity doesn't exist
	GetEntity(ctx context.Context, userID string, entityType api.EntityType, id string) (*models.StoredEntity, error)

	// GetUserEntitiesSince retrieves all entities (including deleted) of a user
	// modified strictly after the given server timestamp
	GetUserEntitiesSince(ctx context.Context, userID string, since int64) ([]*models.StoredEntity, error)
}
