package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/goalsync/internal/client/storage"
	"github.com/iudanet/goalsync/pkg/api"
)

// entityBucket возвращает вложенный bucket для типа сущности, создавая его при записи
func entityBucket(tx *bbolt.Tx, t api.EntityType, create bool) (*bbolt.Bucket, error) {
	root, err := bucket(tx, bucketEntities)
	if err != nil {
		return nil, err
	}
	if create {
		b, err := root.CreateBucketIfNotExists([]byte(t))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s bucket: %w", t, err)
		}
		return b, nil
	}
	return root.Bucket([]byte(t)), nil
}

// PutEntity создает или заменяет сущность
func (s *Storage) PutEntity(ctx context.Context, t api.EntityType, e api.Entity) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := entityBucket(tx, t, true)
		if err != nil {
			return err
		}
		if err := b.Put([]byte(e.ID), data); err != nil {
			return fmt.Errorf("failed to save entity %s: %w", e.ID, err)
		}
		return nil
	})
}

// GetEntity возвращает сущность по id
func (s *Storage) GetEntity(ctx context.Context, t api.EntityType, id string) (api.Entity, error) {
	var e api.Entity

	err := s.view(func(tx *bbolt.Tx) error {
		b, err := entityBucket(tx, t, false)
		if err != nil {
			return err
		}
		if b == nil {
			return storage.ErrEntityNotFound
		}

		data := b.Get([]byte(id))
		if data == nil {
			return storage.ErrEntityNotFound
		}

		if err := json.Unmarshal(data, &e); err != nil {
			return fmt.Errorf("failed to unmarshal entity %s: %w", id, err)
		}
		return nil
	})

	return e, err
}

// ListEntities возвращает все сущности типа в порядке ключей.
// Поврежденные записи пропускаются с предупреждением.
func (s *Storage) ListEntities(ctx context.Context, t api.EntityType) ([]api.Entity, error) {
	entities := []api.Entity{}

	err := s.view(func(tx *bbolt.Tx) error {
		b, err := entityBucket(tx, t, false)
		if err != nil || b == nil {
			return err
		}

		return b.ForEach(func(k, v []byte) error {
			var e api.Entity
			if err := json.Unmarshal(v, &e); err != nil {
				s.logger.Warn("Skipping corrupt entity", "type", t, "id", string(k), "error", err)
				return nil
			}
			entities = append(entities, e)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t, err)
	}

	return entities, nil
}

// DeleteEntity удаляет сущность; отсутствующая сущность не считается ошибкой
func (s *Storage) DeleteEntity(ctx context.Context, t api.EntityType, id string) error {
	return s.update(func(tx *bbolt.Tx) error {
		b, err := entityBucket(tx, t, false)
		if err != nil || b == nil {
			return err
		}
		if err := b.Delete([]byte(id)); err != nil {
			return fmt.Errorf("failed to delete entity %s: %w", id, err)
		}
		return nil
	})
}
