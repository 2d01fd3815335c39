package polling

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager периодически запускает синхронизацию.
// Следующий тик планируется только после завершения текущего, поэтому тики никогда не пересекаются.
type Manager struct {
	hasWork  func() bool
	syncFn   func(ctx context.Context) error
	interval func() time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
	gen      uint64
	mu       sync.Mutex
	tickMu   sync.Mutex
	running  bool
}

// New создает менеджер опроса.
// hasWork сообщает, есть ли что синхронизировать; interval вызывается перед каждым ожиданием,
// чтобы backoff мог растягивать паузу после ошибок.
func New(hasWork func() bool, syncFn func(ctx context.Context) error, interval func() time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		hasWork:  hasWork,
		syncFn:   syncFn,
		interval: interval,
		logger:   logger,
	}
}

// Start запускает цикл опроса. Повторный вызов при работающем цикле ничего не делает.
func (m *Manager) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.gen++

	m.logger.Debug("Polling started")
	go m.loop(runCtx, m.gen)
}

// Stop отменяет ожидающий тик и переводит менеджер в режим ожидания.
// Не ждет завершения текущего тика, поэтому безопасен для вызова из syncFn.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	m.cancel()
	m.cancel = nil
	m.running = false
	m.logger.Debug("Polling stopped")
}

// Running сообщает, запущен ли цикл опроса
func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Manager) loop(ctx context.Context, gen uint64) {
	defer m.finish(gen)

	for {
		timer := time.NewTimer(m.nextInterval())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		m.tick(ctx)
	}
}

func (m *Manager) tick(ctx context.Context) {
	m.tickMu.Lock()
	defer m.tickMu.Unlock()

	// Stop мог прийти пока ждали предыдущий цикл
	if ctx.Err() != nil {
		return
	}
	if !m.hasWork() {
		return
	}

	if err := m.syncFn(ctx); err != nil {
		m.logger.Debug("Polling tick failed", "error", err)
	}
}

// finish сбрасывает состояние, если цикл завершился из-за отмены родительского контекста
func (m *Manager) finish(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gen != gen || !m.running {
		return
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.running = false
}

func (m *Manager) nextInterval() time.Duration {
	d := m.interval()
	if d <= 0 {
		d = time.Millisecond
	}
	return d
}
