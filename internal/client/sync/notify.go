package sync

import "log/slog"

// Severity уровень уведомления пользователя
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier приемник пользовательских уведомлений (toast, вывод CLI)
type Notifier interface {
	Notify(severity Severity, message string)
}

// NotifierFunc адаптер функции к Notifier
type NotifierFunc func(severity Severity, message string)

// Notify implements Notifier
func (f NotifierFunc) Notify(severity Severity, message string) {
	f(severity, message)
}

// LogNotifier пишет уведомления в лог
func LogNotifier(logger *slog.Logger) Notifier {
	return NotifierFunc(func(severity Severity, message string) {
		switch severity {
		case SeverityError:
			logger.Error(message)
		case SeverityWarning:
			logger.Warn(message)
		default:
			logger.Info(message)
		}
	})
}
