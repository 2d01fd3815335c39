package retry

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	goretry "github.com/sethvargo/go-retry"
)

// Значения по умолчанию: 1/2/4/8/16/32/60s, не больше 5 попыток подряд
const (
	DefaultMaxRetries = 5
	DefaultBaseDelay  = time.Second
	DefaultMaxDelay   = 60 * time.Second
)

// Kind категория ошибки синхронизации
type Kind int

const (
	// Recoverable сетевые ошибки, 5xx и 429: повторяем с backoff
	Recoverable Kind = iota
	// NonRecoverable 4xx кроме 409: повтор не поможет
	NonRecoverable
	// Conflict 409: разрешается пользователем, не считается попыткой
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Recoverable:
		return "recoverable"
	case NonRecoverable:
		return "non-recoverable"
	case Conflict:
		return "conflict"
	}
	return "unknown"
}

// HTTPStatusError ошибка, несущая HTTP статус ответа
type HTTPStatusError interface {
	error
	HTTPStatus() int
}

// Config настройки повторов
type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// Manager классифицирует ошибки и считает задержки экспоненциального backoff.
// Сам Manager никогда не спит: задержку использует PollingManager для следующего тика.
type Manager struct {
	backoff goretry.Backoff
	cfg     Config
	delay   time.Duration
	count   int
	mu      sync.Mutex
}

// New создает менеджер повторов
func New(cfg Config) *Manager {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultMaxDelay
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}

	m := &Manager{cfg: cfg}
	m.backoff = m.newBackoff()
	return m
}

func (m *Manager) newBackoff() goretry.Backoff {
	return goretry.WithCappedDuration(m.cfg.MaxDelay, goretry.NewExponential(m.cfg.BaseDelay))
}

// Classify определяет категорию ошибки
func Classify(err error) Kind {
	if err == nil {
		return Recoverable
	}

	// Отмена по инициативе клиента повторять бессмысленно
	if errors.Is(err, context.Canceled) {
		return NonRecoverable
	}

	var statusErr HTTPStatusError
	if errors.As(err, &statusErr) {
		code := statusErr.HTTPStatus()
		switch {
		case code == http.StatusConflict:
			return Conflict
		case code == http.StatusTooManyRequests, code == http.StatusRequestTimeout, code >= 500:
			return Recoverable
		case code >= 400:
			return NonRecoverable
		}
		return Recoverable
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return Recoverable
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return Recoverable
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return Recoverable
	}

	return NonRecoverable
}

// Classify определяет категорию ошибки
func (m *Manager) Classify(err error) Kind {
	return Classify(err)
}

// ShouldRetry сообщает, стоит ли повторять после ошибки err
func (m *Manager) ShouldRetry(err error) bool {
	if Classify(err) != Recoverable {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count < m.cfg.MaxRetries
}

// RecordFailure учитывает очередную восстановимую ошибку и вычисляет задержку до следующей попытки.
// Возвращает номер попытки и задержку.
func (m *Manager) RecordFailure() (int, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.count++
	next, _ := m.backoff.Next()
	m.delay = next
	return m.count, m.delay
}

// NextDelay возвращает задержку, вычисленную последним RecordFailure, или 0
func (m *Manager) NextDelay() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delay
}

// Exhausted сообщает, что лимит попыток исчерпан
func (m *Manager) Exhausted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count >= m.cfg.MaxRetries
}

// Reset обнуляет счетчик после успешной синхронизации
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.count = 0
	m.delay = 0
	m.backoff = m.newBackoff()
}

// Count возвращает количество ошибок подряд
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Max возвращает лимит попыток
func (m *Manager) Max() int {
	return m.cfg.MaxRetries
}
