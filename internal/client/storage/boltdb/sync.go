package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/goalsync/internal/models"
)

var (
	keySyncMeta  = []byte("sync_meta")
	keySyncQueue = []byte("sync_queue")
	keyConflicts = []byte("pending_conflicts")
)

// LoadMeta загружает метаданные синхронизации.
// Если метаданных нет или они повреждены, генерирует новый deviceId и сохраняет его.
func (s *Storage) LoadMeta(ctx context.Context) (models.SyncMeta, error) {
	var meta models.SyncMeta

	err := s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketMeta)
		if err != nil {
			return err
		}

		if data := b.Get(keySyncMeta); data != nil {
			if err := json.Unmarshal(data, &meta); err != nil {
				s.logger.Warn("Corrupt sync metadata, resetting", "error", err)
				meta = models.SyncMeta{}
			}
		}

		if meta.DeviceID != "" {
			return nil
		}

		// Первый запуск на этом устройстве
		meta.DeviceID = uuid.New().String()
		data, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("failed to marshal sync metadata: %w", err)
		}
		if err := b.Put(keySyncMeta, data); err != nil {
			return fmt.Errorf("failed to save sync metadata: %w", err)
		}

		s.logger.Info("Generated new device id", "device_id", meta.DeviceID)
		return nil
	})
	if err != nil {
		return models.SyncMeta{}, fmt.Errorf("failed to load sync metadata: %w", err)
	}

	return meta, nil
}

// SaveMeta сохраняет метаданные синхронизации
func (s *Storage) SaveMeta(ctx context.Context, meta models.SyncMeta) error {
	return s.putJSON(bucketMeta, keySyncMeta, meta)
}

// LoadQueue загружает очередь ожидающих мутаций
func (s *Storage) LoadQueue(ctx context.Context) (models.Queue, error) {
	queue, err := getJSON[models.Queue](s, bucketQueue, keySyncQueue)
	if err != nil {
		return nil, fmt.Errorf("failed to load sync queue: %w", err)
	}
	if queue == nil {
		queue = models.Queue{}
	}
	return queue, nil
}

// SaveQueue сохраняет очередь целиком
func (s *Storage) SaveQueue(ctx context.Context, queue models.Queue) error {
	return s.putJSON(bucketQueue, keySyncQueue, queue)
}

// LoadConflicts загружает неразрешенные конфликты
func (s *Storage) LoadConflicts(ctx context.Context) (models.PendingConflicts, error) {
	conflicts, err := getJSON[models.PendingConflicts](s, bucketConflicts, keyConflicts)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending conflicts: %w", err)
	}
	if conflicts == nil {
		conflicts = models.PendingConflicts{}
	}
	return conflicts, nil
}

// SaveConflicts сохраняет неразрешенные конфликты целиком
func (s *Storage) SaveConflicts(ctx context.Context, conflicts models.PendingConflicts) error {
	return s.putJSON(bucketConflicts, keyConflicts, conflicts)
}

// putJSON сериализует значение в JSON и сохраняет под ключом
func (s *Storage) putJSON(bucketName, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	return s.update(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketName)
		if err != nil {
			return err
		}
		if err := b.Put(key, data); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
		return nil
	})
}

// getJSON читает значение по ключу.
// Отсутствующее или поврежденное значение возвращается как zero value; о поврежденном пишется предупреждение в лог.
func getJSON[T any](s *Storage, bucketName, key []byte) (T, error) {
	var out T

	err := s.view(func(tx *bbolt.Tx) error {
		b, err := bucket(tx, bucketName)
		if err != nil {
			return err
		}

		data := b.Get(key)
		if data == nil {
			return nil
		}

		var decoded T
		if err := json.Unmarshal(data, &decoded); err != nil {
			s.logger.Warn("Corrupt persisted value, using default", "key", string(key), "error", err)
			return nil
		}
		out = decoded
		return nil
	})

	return out, err
}
