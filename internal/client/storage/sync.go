package storage

import (
	"context"

	"github.com/iudanet/goalsync/internal/models"
)

//go:generate moq -out sync_mock.go . SyncStorage

// SyncStorage хранит состояние движка синхронизации.
// Отсутствующие или поврежденные данные возвращаются как значения по умолчанию,
// ошибка возвращается только при сбое самого хранилища.
type SyncStorage interface {
	// LoadMeta загружает метаданные синхронизации.
	// При первом вызове генерирует и сохраняет новый deviceId.
	LoadMeta(ctx context.Context) (models.SyncMeta, error)

	// SaveMeta сохраняет метаданные синхронизации
	SaveMeta(ctx context.Context, meta models.SyncMeta) error

	// LoadQueue загружает очередь ожидающих мутаций
	LoadQueue(ctx context.Context) (models.Queue, error)

	// SaveQueue сохраняет очередь целиком
	SaveQueue(ctx context.Context, queue models.Queue) error

	// LoadConflicts загружает неразрешенные конфликты
	LoadConflicts(ctx context.Context) (models.PendingConflicts, error)

	// SaveConflicts сохраняет неразрешенные конфликты целиком
	SaveConflicts(ctx context.Context, conflicts models.PendingConflicts) error
}
