package conflict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/goalsync/internal/models"
	"github.com/iudanet/goalsync/pkg/api"
)

var (
	ErrConflictNotFound = errors.New("conflict not found")
	ErrInvalidChoice    = errors.New("invalid resolution choice")
)

//go:generate moq -out conflict_mock.go . Store Queue Applier

// Store персистентное хранилище неразрешенных конфликтов
type Store interface {
	LoadConflicts(ctx context.Context) (models.PendingConflicts, error)
	SaveConflicts(ctx context.Context, conflicts models.PendingConflicts) error
}

// Queue операции очереди, нужные для разрешения конфликтов
type Queue interface {
	MarkResolution(ctx context.Context, t api.EntityType, id string, serverVersion int64) (bool, error)
	Restore(ctx context.Context, t api.EntityType, item api.QueueItem) error
	RemoveConflictedItems(ctx context.Context, ids []string) error
}

// Applier применяет сущности к локальному состоянию
type Applier interface {
	ApplyEntity(ctx context.Context, t api.EntityType, e api.Entity) error
	DeleteEntity(ctx context.Context, t api.EntityType, id string) error
}

// Handler держит набор неразрешенных конфликтов и разрешает их по выбору пользователя
type Handler struct {
	store   Store
	queue   Queue
	applier Applier
	logger  *slog.Logger
	pending models.PendingConflicts
	mu      sync.Mutex
}

// New создает обработчик конфликтов
func New(store Store, queue Queue, applier Applier, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		store:   store,
		queue:   queue,
		applier: applier,
		logger:  logger,
		pending: models.PendingConflicts{},
	}
}

// Load загружает сохраненные конфликты
func (h *Handler) Load(ctx context.Context) error {
	pending, err := h.store.LoadConflicts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load conflicts: %w", err)
	}
	if pending == nil {
		pending = models.PendingConflicts{}
	}

	h.mu.Lock()
	h.pending = pending
	h.mu.Unlock()

	if n := pending.Len(); n > 0 {
		h.logger.Info("Loaded pending conflicts", "count", n)
	}
	return nil
}

// Store добавляет обнаруженные конфликты к набору, заменяя конфликты с теми же id, и сохраняет набор
func (h *Handler) Store(ctx context.Context, detected models.PendingConflicts) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for t, list := range detected {
		for _, c := range list {
			h.removeLocked(c.ID)
			h.pending[t] = append(h.pending[t], c)
		}
	}

	return h.persistLocked(ctx)
}

// Pending возвращает копию набора неразрешенных конфликтов
func (h *Handler) Pending() models.PendingConflicts {
	h.mu.Lock()
	defer h.mu.Unlock()
	return clonePending(h.pending)
}

// Get возвращает конфликт по id
func (h *Handler) Get(id string) (api.EntityType, api.Conflict, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.findLocked(id)
}

// IDs возвращает множество id в конфликте
func (h *Handler) IDs() map[string]struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending.IDs()
}

// Len возвращает количество неразрешенных конфликтов
func (h *Handler) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pending.Len()
}

// Resolve разрешает конфликт по выбору пользователя:
//   - KeepServer: серверная сущность применяется локально, локальная мутация удаляется из очереди;
//   - KeepLocal: локальная сущность применяется повторно, а элемент очереди помечается
//     resolveConflictVersion = serverVersion, чтобы следующая синхронизация атомарно заменила серверную версию.
//
// Возвращает true, если после разрешения конфликтов не осталось.
func (h *Handler) Resolve(ctx context.Context, id string, choice models.Resolution) (bool, error) {
	if !choice.Valid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	t, c, ok := h.findLocked(id)
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrConflictNotFound, id)
	}

	var err error
	switch choice {
	case models.KeepServer:
		err = h.keepServer(ctx, t, c)
	case models.KeepLocal:
		err = h.keepLocal(ctx, t, c)
	}
	if err != nil {
		return false, err
	}

	h.removeLocked(id)
	if err := h.persistLocked(ctx); err != nil {
		return false, err
	}

	remaining := h.pending.Len()
	h.logger.Info("Conflict resolved", "type", t, "id", id, "choice", choice, "remaining", remaining)

	return remaining == 0, nil
}

func (h *Handler) keepServer(ctx context.Context, t api.EntityType, c api.Conflict) error {
	if c.ServerEntity != nil {
		if err := h.applier.ApplyEntity(ctx, t, *c.ServerEntity); err != nil {
			return fmt.Errorf("failed to apply server entity: %w", err)
		}
	} else {
		// На сервере сущность удалена
		if err := h.applier.DeleteEntity(ctx, t, c.ID); err != nil {
			return fmt.Errorf("failed to delete local entity: %w", err)
		}
	}

	if err := h.queue.RemoveConflictedItems(ctx, []string{c.ID}); err != nil {
		return fmt.Errorf("failed to drop queued mutation: %w", err)
	}
	return nil
}

func (h *Handler) keepLocal(ctx context.Context, t api.EntityType, c api.Conflict) error {
	if c.LocalOperation == api.OpDelete {
		if err := h.applier.DeleteEntity(ctx, t, c.ID); err != nil {
			return fmt.Errorf("failed to re-apply local delete: %w", err)
		}
	} else {
		if err := h.applier.ApplyEntity(ctx, t, c.LocalEntity); err != nil {
			return fmt.Errorf("failed to re-apply local entity: %w", err)
		}
	}

	found, err := h.queue.MarkResolution(ctx, t, c.ID, c.ServerVersion)
	if err != nil {
		return fmt.Errorf("failed to mark queued mutation: %w", err)
	}
	if found {
		return nil
	}

	// Мутации в очереди нет: восстанавливаем ее из конфликта
	serverVersion := c.ServerVersion
	item := api.QueueItem{
		ID:                     c.ID,
		Operation:              c.LocalOperation,
		Version:                c.ClientVersion,
		ClientUpdatedAt:        time.Now().UnixMilli(),
		Payload:                c.LocalEntity.Stripped(),
		ResolveConflictVersion: &serverVersion,
	}
	if err := h.queue.Restore(ctx, t, item); err != nil {
		return fmt.Errorf("failed to restore queued mutation: %w", err)
	}
	return nil
}

func (h *Handler) findLocked(id string) (api.EntityType, api.Conflict, bool) {
	for t, list := range h.pending {
		for _, c := range list {
			if c.ID == id {
				return t, c, true
			}
		}
	}
	return "", api.Conflict{}, false
}

func (h *Handler) removeLocked(id string) {
	for t, list := range h.pending {
		kept := list[:0]
		for _, c := range list {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		if len(kept) == 0 {
			delete(h.pending, t)
			continue
		}
		h.pending[t] = kept
	}
}

func (h *Handler) persistLocked(ctx context.Context) error {
	if err := h.store.SaveConflicts(ctx, clonePending(h.pending)); err != nil {
		return fmt.Errorf("failed to persist conflicts: %w", err)
	}
	return nil
}

func clonePending(p models.PendingConflicts) models.PendingConflicts {
	out := make(models.PendingConflicts, len(p))
	for t, list := range p {
		out[t] = append([]api.Conflict(nil), list...)
	}
	return out
}
