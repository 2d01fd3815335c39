package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iudanet/goalsync/internal/models"
	"github.com/iudanet/goalsync/pkg/api"
)

// DefaultMaxSize максимальное количество элементов очереди по всем типам,
// при достижении которого запускается внеочередная синхронизация
const DefaultMaxSize = 1000

var (
	ErrInvalidEntityType = errors.New("invalid entity type")
	ErrInvalidOperation  = errors.New("invalid operation")
	ErrMissingID         = errors.New("entity id is required")
)

//go:generate moq -out store_mock.go . Store

// Store персистентное хранилище очереди
type Store interface {
	LoadQueue(ctx context.Context) (models.Queue, error)
	SaveQueue(ctx context.Context, queue models.Queue) error
}

// Config настройки очереди
type Config struct {
	Now     func() time.Time // источник времени для clientUpdatedAt, по умолчанию time.Now
	MaxSize int              // порог переполнения, по умолчанию DefaultMaxSize
}

// itemKey идентифицирует элемент очереди
type itemKey struct {
	t  api.EntityType
	id string
}

// Manager хранит ожидающие отправки мутации и схлопывает их по id.
// Каждая мутация сразу записывается в Store (write-through).
//
// Каждое изменение элемента получает новую ревизию. Snapshot запоминает ревизии
// отправленных элементов до ClearSentItems или ReleaseSnapshot.
type Manager struct {
	store      Store
	logger     *slog.Logger
	queue      models.Queue
	revs       map[itemKey]uint64
	sent       map[itemKey]uint64 // nil, если запроса в полете нет
	now        func() time.Time
	onOverflow func()
	maxSize    int
	rev        uint64
	mu         sync.Mutex
	flushing   atomic.Bool
}

// New создает менеджер очереди. Для загрузки сохраненного состояния вызовите Load.
func New(store Store, logger *slog.Logger, cfg Config) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Manager{
		store:   store,
		logger:  logger,
		queue:   models.Queue{},
		revs:    map[itemKey]uint64{},
		now:     cfg.Now,
		maxSize: cfg.MaxSize,
	}
}

// SetOverflowHandler задает обработчик переполнения очереди.
// Обработчик вызывается в отдельной горутине; одновременно выполняется не больше одного вызова.
func (m *Manager) SetOverflowHandler(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onOverflow = fn
}

// Load загружает очередь из хранилища, заменяя текущее состояние в памяти
func (m *Manager) Load(ctx context.Context) error {
	q, err := m.store.LoadQueue(ctx)
	if err != nil {
		return fmt.Errorf("failed to load queue: %w", err)
	}
	if q == nil {
		q = models.Queue{}
	}

	m.mu.Lock()
	m.queue = q
	m.revs = map[itemKey]uint64{}
	m.sent = nil
	m.mu.Unlock()

	m.logger.Debug("Queue loaded", "items", q.Len())
	return nil
}

// Enqueue ставит мутацию сущности в очередь, схлопывая ее с уже ожидающей мутацией того же id:
//   - create + delete: элемент удаляется, сервер о сущности не узнает;
//     если create уже ушел в запросе, в очереди остается delete;
//   - create + update/upsert: остается create с новыми payload, clientUpdatedAt и version;
//   - иначе новая операция заменяет старую.
func (m *Manager) Enqueue(ctx context.Context, t api.EntityType, op api.Operation, entity api.Entity) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEntityType, t)
	}
	if !op.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOperation, op)
	}
	if entity.ID == "" {
		return ErrMissingID
	}

	updatedAt := entity.LocalUpdatedAt
	if updatedAt == 0 {
		updatedAt = m.now().UnixMilli()
	}

	key := itemKey{t: t, id: entity.ID}

	m.mu.Lock()
	items := m.queue[t]
	idx := indexOf(items, entity.ID)
	_, inFlight := m.sent[key]

	switch {
	case idx < 0:
		items = append(items, api.QueueItem{
			ID:              entity.ID,
			Operation:       op,
			Version:         entity.Version,
			ClientUpdatedAt: updatedAt,
			Payload:         entity.Stripped(),
		})
		m.bumpLocked(key)

	case items[idx].Operation == api.OpCreate && op == api.OpDelete && !inFlight:
		items = append(items[:idx], items[idx+1:]...)
		delete(m.revs, key)
		m.logger.Debug("Create annihilated by delete", "type", t, "id", entity.ID)

	case items[idx].Operation == api.OpCreate && op == api.OpDelete:
		// Сервер может уже создать сущность: delete получит ее версию через Rebase
		items[idx] = api.QueueItem{
			ID:              entity.ID,
			Operation:       api.OpDelete,
			Version:         entity.Version,
			ClientUpdatedAt: updatedAt,
			Payload:         entity.Stripped(),
		}
		m.bumpLocked(key)
		m.logger.Debug("Create in flight replaced by delete", "type", t, "id", entity.ID)

	case items[idx].Operation == api.OpCreate && (op == api.OpUpdate || op == api.OpUpsert):
		items[idx].Payload = entity.Stripped()
		items[idx].ClientUpdatedAt = updatedAt
		items[idx].Version = entity.Version
		m.bumpLocked(key)

	default:
		// Решение конфликта в пользу локальной версии должно пережить повторное редактирование
		resolve := items[idx].ResolveConflictVersion
		items[idx] = api.QueueItem{
			ID:                     entity.ID,
			Operation:              op,
			Version:                entity.Version,
			ClientUpdatedAt:        updatedAt,
			Payload:                entity.Stripped(),
			ResolveConflictVersion: resolve,
		}
		m.bumpLocked(key)
	}
	m.setItems(t, items)

	err := m.persistLocked(ctx)
	m.checkOverflowLocked()
	m.mu.Unlock()

	return err
}

// Snapshot возвращает неизменяемую копию текущей очереди для отправки на сервер
// и запоминает ревизии ее элементов до ClearSentItems или ReleaseSnapshot
func (m *Manager) Snapshot() models.Queue {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = make(map[itemKey]uint64, m.queue.Len())
	for t, items := range m.queue {
		for _, item := range items {
			key := itemKey{t: t, id: item.ID}
			m.sent[key] = m.revs[key]
		}
	}
	return m.queue.Clone()
}

// ReleaseSnapshot забывает отправленный snapshot, когда сервер его не принял.
// Очередь при этом не меняется.
func (m *Manager) ReleaseSnapshot() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = nil
}

// ClearSentItems удаляет элементы, отправленные в составе snapshot.
// Элемент, измененный после снятия snapshot (ревизия сменилась), остается в очереди;
// его id возвращается в survivors, чтобы вызывающий мог перебазировать его на новую серверную версию.
func (m *Manager) ClearSentItems(ctx context.Context, snapshot models.Queue) (map[api.EntityType][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	survivors := make(map[api.EntityType][]string)
	cleared := 0

	for t, sent := range snapshot {
		items := m.queue[t]
		for _, s := range sent {
			idx := indexOf(items, s.ID)
			if idx < 0 {
				continue
			}
			key := itemKey{t: t, id: s.ID}
			if rev, ok := m.sent[key]; !ok || m.revs[key] != rev {
				survivors[t] = append(survivors[t], s.ID)
				continue
			}
			items = append(items[:idx], items[idx+1:]...)
			delete(m.revs, key)
			cleared++
		}
		m.setItems(t, items)
	}
	m.sent = nil

	m.logger.Debug("Cleared sent queue items", "cleared", cleared, "remaining", m.queue.Len())

	if err := m.persistLocked(ctx); err != nil {
		return survivors, err
	}
	return survivors, nil
}

// Rebase переводит элемент, измененный во время синхронизации, на версию,
// которую сервер присвоил отправленной записи. create становится update.
func (m *Manager) Rebase(ctx context.Context, t api.EntityType, id string, serverVersion int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.queue[t]
	idx := indexOf(items, id)
	if idx < 0 {
		return nil
	}

	item := &items[idx]
	item.Version = serverVersion
	item.Payload.Version = serverVersion
	item.ResolveConflictVersion = nil
	if item.Operation == api.OpCreate {
		item.Operation = api.OpUpdate
	}

	return m.persistLocked(ctx)
}

// RemoveConflictedItems удаляет элементы с указанными id из всех типов
func (m *Manager) RemoveConflictedItems(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for t, items := range m.queue {
		kept := items[:0]
		for _, item := range items {
			if _, ok := drop[item.ID]; !ok {
				kept = append(kept, item)
				continue
			}
			delete(m.revs, itemKey{t: t, id: item.ID})
		}
		m.setItems(t, kept)
	}

	return m.persistLocked(ctx)
}

// MarkResolution помечает ожидающий элемент как локальное решение конфликта,
// которое должно атомарно заменить серверную версию serverVersion.
// Возвращает false, если элемента в очереди нет.
func (m *Manager) MarkResolution(ctx context.Context, t api.EntityType, id string, serverVersion int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.queue[t]
	idx := indexOf(items, id)
	if idx < 0 {
		return false, nil
	}

	v := serverVersion
	items[idx].ResolveConflictVersion = &v
	items[idx].ClientUpdatedAt = m.now().UnixMilli()
	m.bumpLocked(itemKey{t: t, id: id})

	return true, m.persistLocked(ctx)
}

// Restore возвращает элемент в очередь, заменяя существующий с тем же id
func (m *Manager) Restore(ctx context.Context, t api.EntityType, item api.QueueItem) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidEntityType, t)
	}
	if item.ID == "" {
		return ErrMissingID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.queue[t]
	if idx := indexOf(items, item.ID); idx >= 0 {
		items[idx] = item.Clone()
	} else {
		items = append(items, item.Clone())
	}
	m.setItems(t, items)
	m.bumpLocked(itemKey{t: t, id: item.ID})

	err := m.persistLocked(ctx)
	m.checkOverflowLocked()
	return err
}

// Find возвращает копию ожидающего элемента
func (m *Manager) Find(t api.EntityType, id string) (api.QueueItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.queue.Find(t, id)
	if !ok {
		return api.QueueItem{}, false
	}
	return item.Clone(), true
}

// Items возвращает копию элементов одного типа в порядке постановки
func (m *Manager) Items(t api.EntityType) []api.QueueItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]api.QueueItem, 0, len(m.queue[t]))
	for _, item := range m.queue[t] {
		out = append(out, item.Clone())
	}
	return out
}

// PendingIDs возвращает множество id с ожидающими мутациями
func (m *Manager) PendingIDs() map[string]struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.IDs()
}

// Len возвращает количество элементов по всем типам
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Len()
}

// HasPending сообщает, есть ли что отправлять
func (m *Manager) HasPending() bool {
	return m.Len() > 0
}

// MaxSize возвращает порог переполнения
func (m *Manager) MaxSize() int {
	return m.maxSize
}

func (m *Manager) setItems(t api.EntityType, items []api.QueueItem) {
	if len(items) == 0 {
		delete(m.queue, t)
		return
	}
	m.queue[t] = items
}

func (m *Manager) bumpLocked(key itemKey) {
	m.rev++
	m.revs[key] = m.rev
}

func (m *Manager) persistLocked(ctx context.Context) error {
	if err := m.store.SaveQueue(ctx, m.queue.Clone()); err != nil {
		m.logger.Error("Failed to persist queue", "error", err)
		return fmt.Errorf("failed to persist queue: %w", err)
	}
	return nil
}

func (m *Manager) checkOverflowLocked() {
	size := m.queue.Len()
	if size < m.maxSize || m.onOverflow == nil {
		return
	}
	if !m.flushing.CompareAndSwap(false, true) {
		return
	}

	m.logger.Warn("Queue overflow, triggering emergency sync", "size", size, "max", m.maxSize)

	fn := m.onOverflow
	go func() {
		defer m.flushing.Store(false)
		fn()
	}()
}

func indexOf(items []api.QueueItem, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
