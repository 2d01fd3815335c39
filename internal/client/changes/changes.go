package changes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/goalsync/pkg/api"
)

// ErrNoHandler для типа сущности не зарегистрирован callback
var ErrNoHandler = errors.New("no handler registered for entity type")

// ApplyFunc применяет присланную сервером сущность к локальному состоянию
type ApplyFunc func(ctx context.Context, t api.EntityType, e api.Entity) error

// DeleteFunc удаляет сущность из локального состояния
type DeleteFunc func(ctx context.Context, t api.EntityType, id string) error

// Result итог применения изменений
type Result struct {
	Unhandled []api.EntityType // типы с изменениями, для которых нет callback
	Applied   int
	Deleted   int
	Skipped   int // отфильтрованы как находящиеся в конфликте или ожидающие отправки
	Failed    int
}

// Handler применяет изменения, присланные сервером, через зарегистрированные callbacks
type Handler struct {
	apply  map[api.EntityType]ApplyFunc
	del    map[api.EntityType]DeleteFunc
	logger *slog.Logger
	mu     sync.RWMutex
}

// New создает обработчик изменений
func New(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		apply:  make(map[api.EntityType]ApplyFunc),
		del:    make(map[api.EntityType]DeleteFunc),
		logger: logger,
	}
}

// RegisterApply регистрирует callback применения для типа сущности
func (h *Handler) RegisterApply(t api.EntityType, fn ApplyFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.apply[t] = fn
}

// RegisterDelete регистрирует callback удаления для типа сущности
func (h *Handler) RegisterDelete(t api.EntityType, fn DeleteFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.del[t] = fn
}

// Apply применяет изменения по всем типам.
// id из exclude пропускаются: конфликты разрешает пользователь, а не серверный push того же цикла.
// Ошибки отдельных callbacks логируются и учитываются в Result, но не прерывают обработку.
func (h *Handler) Apply(ctx context.Context, changes map[api.EntityType][]api.ChangeItem, exclude map[string]struct{}) Result {
	var res Result

	for _, t := range orderedTypes(changes) {
		items := changes[t]
		if len(items) == 0 {
			continue
		}
		if !t.Valid() {
			h.logger.Warn("Skipping changes for unknown entity type", "type", t, "count", len(items))
			res.Skipped += len(items)
			continue
		}

		var (
			upserts    []api.Entity
			tombstones []string
		)
		for _, item := range items {
			if _, ok := exclude[item.ID()]; ok {
				res.Skipped++
				continue
			}
			if e, ok := item.Entity(); ok {
				upserts = append(upserts, e)
			} else {
				tombstones = append(tombstones, item.ID())
			}
		}

		h.mu.RLock()
		applyFn, delFn := h.apply[t], h.del[t]
		h.mu.RUnlock()

		if (len(upserts) > 0 && applyFn == nil) || (len(tombstones) > 0 && delFn == nil) {
			// Без callback серверные изменения этого типа будут потеряны
			h.logger.Warn("No handler registered for entity type with pending changes",
				"type", t, "upserts", len(upserts), "tombstones", len(tombstones))
			res.Unhandled = append(res.Unhandled, t)
		}

		if delFn != nil {
			for _, id := range tombstones {
				if err := delFn(ctx, t, id); err != nil {
					h.logger.Error("Failed to delete entity", "type", t, "id", id, "error", err)
					res.Failed++
					continue
				}
				res.Deleted++
			}
		}

		if applyFn != nil {
			for _, e := range upserts {
				if err := applyFn(ctx, t, e); err != nil {
					h.logger.Error("Failed to apply entity", "type", t, "id", e.ID, "error", err)
					res.Failed++
					continue
				}
				res.Applied++
			}
		}
	}

	if res.Applied+res.Deleted+res.Failed > 0 {
		h.logger.Info("Applied server changes",
			"applied", res.Applied, "deleted", res.Deleted, "skipped", res.Skipped, "failed", res.Failed)
	}

	return res
}

// ApplyEntity применяет одну сущность через callback ее типа
func (h *Handler) ApplyEntity(ctx context.Context, t api.EntityType, e api.Entity) error {
	h.mu.RLock()
	fn := h.apply[t]
	h.mu.RUnlock()

	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, t)
	}
	return fn(ctx, t, e)
}

// DeleteEntity удаляет одну сущность через callback ее типа
func (h *Handler) DeleteEntity(ctx context.Context, t api.EntityType, id string) error {
	h.mu.RLock()
	fn := h.del[t]
	h.mu.RUnlock()

	if fn == nil {
		return fmt.Errorf("%w: %s", ErrNoHandler, t)
	}
	return fn(ctx, t, id)
}

// orderedTypes возвращает известные типы в стабильном порядке, затем неизвестные
func orderedTypes(changes map[api.EntityType][]api.ChangeItem) []api.EntityType {
	out := make([]api.EntityType, 0, len(changes))
	for _, t := range api.EntityTypes() {
		if _, ok := changes[t]; ok {
			out = append(out, t)
		}
	}
	for t := range changes {
		if !t.Valid() {
			out = append(out, t)
		}
	}
	return out
}
