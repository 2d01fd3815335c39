package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	stdsync "sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	httpClient "github.com/iudanet/goalsync/internal/client/api"
	"github.com/iudanet/goalsync/internal/client/changes"
	"github.com/iudanet/goalsync/internal/client/conflict"
	"github.com/iudanet/goalsync/internal/client/polling"
	"github.com/iudanet/goalsync/internal/client/queue"
	"github.com/iudanet/goalsync/internal/client/retry"
	"github.com/iudanet/goalsync/internal/client/storage"
	"github.com/iudanet/goalsync/internal/models"
	"github.com/iudanet/goalsync/pkg/api"
)

const (
	DefaultPollInterval = 30 * time.Second
	// overflowSyncTimeout ограничивает внеочередную синхронизацию при переполнении очереди
	overflowSyncTimeout = 2 * time.Minute

	syncKey = "sync"
)

// ErrRetriesExhausted синхронизация остановлена после исчерпания попыток
var ErrRetriesExhausted = errors.New("sync retries exhausted")

//go:generate moq -out service_mock.go . APIClient Credentials Notifier

// APIClient транспорт до сервера синхронизации
type APIClient interface {
	Sync(ctx context.Context, accessToken string, req api.SyncRequest) (*api.SyncResponse, error)
}

// Credentials источник access token
type Credentials interface {
	AccessToken(ctx context.Context) (string, error)
}

// Config настройки синхронизации
type Config struct {
	Now          func() time.Time
	Timezone     string // IANA зона клиента; по умолчанию локальная
	Retry        retry.Config
	PollInterval time.Duration
	MaxQueueSize int
}

// SyncResult contains sync operation results
type SyncResult struct {
	Changes   changes.Result // итог применения серверных изменений
	Sent      int            // количество отправленных мутаций
	Received  int            // количество изменений, присланных сервером
	Conflicts int            // количество обнаруженных конфликтов
	Skipped   bool           // отправлять было нечего, сетевого запроса не было
}

// Status текущее состояние движка синхронизации
type Status struct {
	DeviceID   string
	LastError  string
	LastSyncAt int64
	Pending    int
	Conflicts  int
	Retries    int
	MaxRetries int
	Polling    bool
	Syncing    bool
}

// Service оркестрирует цикл синхронизации: снимок очереди, запрос, разбор ответа
type Service struct {
	apiClient   APIClient
	store       storage.SyncStorage
	creds       Credentials
	notifier    Notifier
	logger      *slog.Logger
	queue       *queue.Manager
	retry       *retry.Manager
	polling     *polling.Manager
	changes     *changes.Handler
	conflicts   *conflict.Handler
	onConflicts func(models.PendingConflicts)
	review      func() json.RawMessage
	pollCtx     context.Context
	cfg         Config
	group       singleflight.Group
	meta        models.SyncMeta
	lastErr     string
	started     atomic.Uint64 // номер последнего начатого цикла
	lastFailure atomic.Int64  // unix ms последней восстановимой ошибки
	mu          stdsync.Mutex
	inflight    atomic.Bool
	autoPoll    atomic.Bool
}

// cycleRun результат цикла вместе с его номером
type cycleRun struct {
	result *SyncResult
	gen    uint64
	forced bool
}

// NewService creates a new sync service. Сохраненное состояние загружается через Load.
func NewService(apiClient APIClient, store storage.SyncStorage, creds Credentials, notifier Notifier, logger *slog.Logger, cfg Config) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if notifier == nil {
		notifier = LogNotifier(logger)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Timezone == "" {
		cfg.Timezone = time.Local.String()
	}

	s := &Service{
		apiClient: apiClient,
		store:     store,
		creds:     creds,
		notifier:  notifier,
		logger:    logger,
		cfg:       cfg,
		pollCtx:   context.Background(),
	}

	s.queue = queue.New(store, logger.With("component", "queue"), queue.Config{MaxSize: cfg.MaxQueueSize, Now: cfg.Now})
	s.retry = retry.New(cfg.Retry)
	s.changes = changes.New(logger.With("component", "changes"))
	s.conflicts = conflict.New(store, s.queue, s.changes, logger.With("component", "conflicts"))
	s.polling = polling.New(s.hasWork, s.pollTick, s.pollInterval, logger.With("component", "polling"))
	s.queue.SetOverflowHandler(s.overflowSync)

	return s
}

// Load загружает метаданные, очередь и неразрешенные конфликты
func (s *Service) Load(ctx context.Context) error {
	meta, err := s.store.LoadMeta(ctx)
	if err != nil {
		return fmt.Errorf("failed to load sync metadata: %w", err)
	}
	s.mu.Lock()
	s.meta = meta
	s.mu.Unlock()

	if err := s.queue.Load(ctx); err != nil {
		return err
	}
	if err := s.conflicts.Load(ctx); err != nil {
		return err
	}

	s.logger.Info("Sync state loaded",
		"device_id", meta.DeviceID,
		"last_sync_at", meta.LastSyncAt,
		"pending", s.queue.Len(),
		"conflicts", s.conflicts.Len())
	return nil
}

// EnqueueGoalChange ставит изменение цели в очередь
func (s *Service) EnqueueGoalChange(ctx context.Context, op api.Operation, e api.Entity) error {
	return s.EnqueueChange(ctx, api.EntityGoals, op, e)
}

// EnqueueHabitChange ставит изменение привычки в очередь
func (s *Service) EnqueueHabitChange(ctx context.Context, op api.Operation, e api.Entity) error {
	return s.EnqueueChange(ctx, api.EntityHabits, op, e)
}

// EnqueueGlobalGoalChange ставит изменение глобальной цели в очередь
func (s *Service) EnqueueGlobalGoalChange(ctx context.Context, op api.Operation, e api.Entity) error {
	return s.EnqueueChange(ctx, api.EntityGlobalGoals, op, e)
}

// EnqueueMilestoneChange ставит изменение вехи в очередь
func (s *Service) EnqueueMilestoneChange(ctx context.Context, op api.Operation, e api.Entity) error {
	return s.EnqueueChange(ctx, api.EntityMilestones, op, e)
}

// EnqueueChange ставит изменение сущности любого типа в очередь
func (s *Service) EnqueueChange(ctx context.Context, t api.EntityType, op api.Operation, e api.Entity) error {
	if err := s.queue.Enqueue(ctx, t, op, e); err != nil {
		return fmt.Errorf("failed to enqueue %s %s: %w", t, op, err)
	}
	return nil
}

// OnApply регистрирует callback применения серверной сущности
func (s *Service) OnApply(t api.EntityType, fn changes.ApplyFunc) {
	s.changes.RegisterApply(t, fn)
}

// OnDelete регистрирует callback удаления сущности по серверному tombstone
func (s *Service) OnDelete(t api.EntityType, fn changes.DeleteFunc) {
	s.changes.RegisterDelete(t, fn)
}

// OnConflictsDetected регистрирует callback, вызываемый при обнаружении конфликтов.
// Callback вызывается внутри цикла синхронизации и не должен синхронно вызывать Sync.
func (s *Service) OnConflictsDetected(fn func(models.PendingConflicts)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onConflicts = fn
}

// SetReviewProvider задает источник прикладного блока review для запроса
func (s *Service) SetReviewProvider(fn func() json.RawMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.review = fn
}

// PendingConflicts возвращает неразрешенные конфликты
func (s *Service) PendingConflicts() models.PendingConflicts {
	return s.conflicts.Pending()
}

// PendingItems возвращает ожидающие мутации одного типа
func (s *Service) PendingItems(t api.EntityType) []api.QueueItem {
	return s.queue.Items(t)
}

// Sync выполняет цикл синхронизации.
// Если цикл уже идет, дожидается его (результат игнорируется) и запускает новый.
// Без ожидающих мутаций сетевой запрос выполняется только при первой синхронизации устройства.
func (s *Service) Sync(ctx context.Context) (*SyncResult, error) {
	return s.run(ctx, false)
}

// Pull выполняет цикл синхронизации даже при пустой очереди, чтобы получить изменения других устройств
func (s *Service) Pull(ctx context.Context) (*SyncResult, error) {
	return s.run(ctx, true)
}

// run выполняет цикл, который начался после вызова run.
// Цикл, начатый раньше, мог снять очередь до правок вызывающего: его результат
// игнорируется и запускается новый. Pull не принимает результат обычного цикла.
func (s *Service) run(ctx context.Context, force bool) (*SyncResult, error) {
	for {
		arrival := s.started.Load()

		v, err, _ := s.group.Do(syncKey, func() (any, error) {
			gen := s.started.Add(1)
			res, err := s.cycle(ctx, force)
			return &cycleRun{result: res, gen: gen, forced: force}, err
		})

		done := v.(*cycleRun)
		if done.gen > arrival && (done.forced || !force) {
			return done.result, err
		}

		s.logger.Debug("Joined sync cycle started earlier, running a fresh one", "cycle", done.gen)
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
	}
}

func (s *Service) cycle(ctx context.Context, force bool) (*SyncResult, error) {
	s.inflight.Store(true)
	defer s.inflight.Store(false)

	meta := s.currentMeta()
	if !force && !s.queue.HasPending() && !meta.IsFirstSync() {
		return &SyncResult{Skipped: true}, nil
	}

	token, err := s.creds.AccessToken(ctx)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to get access token: %w", err))
	}

	// Снимок очереди: все, что добавится во время запроса, уйдет в следующем цикле
	snapshot := s.queue.Snapshot()
	defer s.queue.ReleaseSnapshot()

	req := api.SyncRequest{
		Changes:         snapshot,
		DeviceID:        meta.DeviceID,
		LastSyncAt:      meta.LastSyncAt,
		ClientTimestamp: s.cfg.Now().UnixMilli(),
		ClientTimezone:  s.cfg.Timezone,
		Review:          s.reviewBlock(),
	}

	s.logger.Info("Starting synchronization",
		"device_id", meta.DeviceID,
		"last_sync_at", meta.LastSyncAt,
		"pending", snapshot.Len())

	resp, err := s.apiClient.Sync(ctx, token, req)
	if err != nil {
		conflictResp, ok := conflictResponse(err)
		if !ok {
			return nil, s.fail(err)
		}
		resp = conflictResp
	}

	return s.handleResponse(ctx, meta, snapshot, resp)
}

func (s *Service) handleResponse(ctx context.Context, meta models.SyncMeta, snapshot models.Queue, resp *api.SyncResponse) (*SyncResult, error) {
	result := &SyncResult{
		Sent:      snapshot.Len(),
		Received:  resp.ChangeCount(),
		Conflicts: resp.ConflictCount(),
	}

	s.logger.Info("Received server response",
		"changes", result.Received,
		"conflicts", result.Conflicts,
		"last_sync_at", resp.LastSyncAt,
		"server_timestamp", resp.ServerTimestamp)

	if result.Conflicts > 0 {
		// Watermark не двигаем и очередь не чистим: после разрешения мутации уйдут снова
		if err := s.conflicts.Store(ctx, resp.Conflicts); err != nil {
			s.logger.Error("Failed to persist conflicts", "error", err)
		}
		s.polling.Stop()
		s.setLastError("")

		s.mu.Lock()
		cb := s.onConflicts
		s.mu.Unlock()
		if cb != nil {
			cb(s.conflicts.Pending())
		}
	} else {
		survivors, err := s.queue.ClearSentItems(ctx, snapshot)
		if err != nil {
			s.logger.Error("Failed to persist cleared queue", "error", err)
		}
		s.rebase(ctx, survivors, resp.Changes)

		meta.LastSyncAt = resp.LastSyncAt
		s.mu.Lock()
		s.meta = meta
		s.mu.Unlock()
		if err := s.store.SaveMeta(ctx, meta); err != nil {
			s.logger.Error("Failed to save sync metadata", "error", err)
		}

		s.retry.Reset()
		s.setLastError("")
		s.resumePolling()
	}

	// Серверные изменения не перезаписывают конфликты и еще не отправленные локальные правки
	exclude := s.conflicts.IDs()
	for id := range s.queue.PendingIDs() {
		exclude[id] = struct{}{}
	}
	result.Changes = s.changes.Apply(ctx, resp.Changes, exclude)

	s.logger.Info("Synchronization completed",
		"sent", result.Sent,
		"received", result.Received,
		"applied", result.Changes.Applied,
		"deleted", result.Changes.Deleted,
		"conflicts", result.Conflicts)

	return result, nil
}

// rebase переводит элементы, измененные во время запроса, на версии, присвоенные сервером
func (s *Service) rebase(ctx context.Context, survivors map[api.EntityType][]string, pushed map[api.EntityType][]api.ChangeItem) {
	for t, ids := range survivors {
		for _, id := range ids {
			version, ok := pushedVersion(pushed[t], id)
			if !ok {
				s.logger.Warn("No server version for item edited during sync", "type", t, "id", id)
				continue
			}
			if err := s.queue.Rebase(ctx, t, id, version); err != nil {
				s.logger.Error("Failed to rebase queued item", "type", t, "id", id, "error", err)
			}
		}
	}
}

// fail обрабатывает ошибку запроса по категории
func (s *Service) fail(err error) error {
	s.setLastError(err.Error())

	switch retry.Classify(err) {
	case retry.Recoverable:
		n, delay := s.retry.RecordFailure()
		s.lastFailure.Store(s.cfg.Now().UnixMilli())
		if !s.retry.ShouldRetry(err) {
			s.polling.Stop()
			s.logger.Error("Sync retries exhausted", "attempts", n, "error", err)
			s.notifier.Notify(SeverityError, "Sync failed repeatedly. Check your connection and try again.")
			return fmt.Errorf("%w: %w", ErrRetriesExhausted, err)
		}

		s.logger.Warn("Sync failed, will retry", "attempt", n, "max", s.retry.Max(), "delay", delay, "error", err)
		s.notifier.Notify(SeverityWarning, fmt.Sprintf("Sync failed, retrying (%d/%d)", n, s.retry.Max()))
		s.resumePolling()

	case retry.Conflict:
		s.logger.Warn("Server rejected sync with conflict", "error", err)
		s.notifier.Notify(SeverityWarning, "Server reported a conflict, sync halted")

	case retry.NonRecoverable:
		s.logger.Error("Sync failed", "error", err)
		s.notifier.Notify(SeverityError, fmt.Sprintf("Sync failed: %v", err))
	}

	return err
}

// StartPolling запускает фоновую синхронизацию.
// При неразрешенных конфликтах опрос откладывается до их разрешения.
func (s *Service) StartPolling(ctx context.Context) {
	s.mu.Lock()
	s.pollCtx = ctx
	s.mu.Unlock()

	s.autoPoll.Store(true)
	if n := s.conflicts.Len(); n > 0 {
		s.logger.Info("Polling deferred until conflicts are resolved", "conflicts", n)
		return
	}
	s.polling.Start(ctx)
}

// StopPolling останавливает фоновую синхронизацию
func (s *Service) StopPolling() {
	s.autoPoll.Store(false)
	s.polling.Stop()
}

// ResolveConflict разрешает конфликт выбором пользователя.
// Когда разрешен последний конфликт, возобновляет опрос и сразу отправляет решения на сервер.
func (s *Service) ResolveConflict(ctx context.Context, id string, choice models.Resolution) (bool, error) {
	cleared, err := s.conflicts.Resolve(ctx, id, choice)
	if err != nil {
		return false, fmt.Errorf("failed to resolve conflict %s: %w", id, err)
	}
	if !cleared {
		return false, nil
	}

	s.resumePolling()
	if _, err := s.Sync(ctx); err != nil {
		s.logger.Warn("Failed to flush conflict resolutions", "error", err)
	}
	return true, nil
}

// Status возвращает текущее состояние
func (s *Service) Status() Status {
	meta := s.currentMeta()

	s.mu.Lock()
	lastErr := s.lastErr
	s.mu.Unlock()

	return Status{
		DeviceID:   meta.DeviceID,
		LastSyncAt: meta.LastSyncAt,
		LastError:  lastErr,
		Pending:    s.queue.Len(),
		Conflicts:  s.conflicts.Len(),
		Retries:    s.retry.Count(),
		MaxRetries: s.retry.Max(),
		Polling:    s.polling.Running(),
		Syncing:    s.inflight.Load(),
	}
}

func (s *Service) resumePolling() {
	if !s.autoPoll.Load() || s.conflicts.Len() > 0 {
		return
	}
	s.mu.Lock()
	ctx := s.pollCtx
	s.mu.Unlock()
	s.polling.Start(ctx)
}

func (s *Service) hasWork() bool {
	return s.queue.HasPending() || s.currentMeta().IsFirstSync()
}

func (s *Service) pollTick(ctx context.Context) error {
	_, err := s.Sync(ctx)
	return err
}

// pollInterval растягивает паузу между тиками после ошибок
func (s *Service) pollInterval() time.Duration {
	if d := s.retry.NextDelay(); d > 0 {
		return d
	}
	return s.cfg.PollInterval
}

// overflowSync не обгоняет backoff: после ошибки ждет ту же паузу, что и опрос
func (s *Service) overflowSync() {
	if s.retry.Exhausted() {
		s.logger.Warn("Emergency sync skipped, retries exhausted")
		return
	}
	if s.retry.Count() > 0 {
		elapsed := s.cfg.Now().Sub(time.UnixMilli(s.lastFailure.Load()))
		if wait := s.retry.NextDelay() - elapsed; wait > 0 {
			s.logger.Debug("Emergency sync deferred by backoff", "wait", wait)
			return
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), overflowSyncTimeout)
	defer cancel()

	if _, err := s.Sync(ctx); err != nil {
		s.logger.Error("Emergency sync failed", "error", err)
	}
}

func (s *Service) currentMeta() models.SyncMeta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

func (s *Service) reviewBlock() json.RawMessage {
	s.mu.Lock()
	fn := s.review
	s.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn()
}

func (s *Service) setLastError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}

// conflictResponse извлекает SyncResponse из тела ответа 409
func conflictResponse(err error) (*api.SyncResponse, bool) {
	var statusErr *httpClient.StatusError
	if !errors.As(err, &statusErr) || retry.Classify(err) != retry.Conflict || len(statusErr.Body) == 0 {
		return nil, false
	}

	var resp api.SyncResponse
	if jerr := json.Unmarshal(statusErr.Body, &resp); jerr != nil || resp.ConflictCount() == 0 {
		return nil, false
	}
	return &resp, true
}

func pushedVersion(items []api.ChangeItem, id string) (int64, bool) {
	for _, item := range items {
		if item.ID() != id {
			continue
		}
		if e, ok := item.Entity(); ok {
			return e.Version, true
		}
	}
	return 0, false
}
