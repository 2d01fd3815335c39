package validation

import (
	"errors"
	"fmt"

	"github.com/iudanet/goalsync/pkg/api"
)

// MaxIDLen максимальная длина идентификатора сущности
const MaxIDLen = 128

// MaxItemsPerRequest ограничивает размер одного sync-запроса
const MaxItemsPerRequest = 5000

// ErrInvalidSyncRequest базовая ошибка для некорректного sync-запроса
var ErrInvalidSyncRequest = errors.New("invalid sync request")

// ValidateEntityID проверяет идентификатор сущности
func ValidateEntityID(id string) error {
	if id == "" {
		return fmt.Errorf("entity id cannot be empty")
	}
	if len(id) > MaxIDLen {
		return fmt.Errorf("entity id must not exceed %d characters", MaxIDLen)
	}
	return nil
}

// ValidateQueueItem проверяет один элемент очереди
func ValidateQueueItem(item api.QueueItem) error {
	if err := ValidateEntityID(item.ID); err != nil {
		return err
	}
	if !item.Operation.Valid() {
		return fmt.Errorf("unknown operation %q for %s", item.Operation, item.ID)
	}
	if item.Payload.ID != "" && item.Payload.ID != item.ID {
		return fmt.Errorf("payload id %q does not match item id %q", item.Payload.ID, item.ID)
	}
	if item.Version < 0 || item.ExpectedVersion() < 0 {
		return fmt.Errorf("negative version for %s", item.ID)
	}
	return nil
}

// ValidateSyncRequest проверяет запрос синхронизации целиком.
// Все ошибки оборачивают ErrInvalidSyncRequest.
func ValidateSyncRequest(req *api.SyncRequest) error {
	if req.DeviceID == "" {
		return fmt.Errorf("%w: deviceId is required", ErrInvalidSyncRequest)
	}
	if req.LastSyncAt < 0 {
		return fmt.Errorf("%w: lastSyncAt must not be negative", ErrInvalidSyncRequest)
	}

	total := 0
	for t, items := range req.Changes {
		if !t.Valid() {
			return fmt.Errorf("%w: unknown entity type %q", ErrInvalidSyncRequest, t)
		}
		for _, item := range items {
			if err := ValidateQueueItem(item); err != nil {
				return fmt.Errorf("%w: %s: %w", ErrInvalidSyncRequest, t, err)
			}
		}
		total += len(items)
	}

	if total > MaxItemsPerRequest {
		return fmt.Errorf("%w: too many items (%d > %d)", ErrInvalidSyncRequest, total, MaxItemsPerRequest)
	}

	return nil
}
