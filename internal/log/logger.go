// Package log is a thin wrapper over log/slog that tags every record with
// the emitting component.
package log

import (
	"log/slog"
	"os"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentBot     = "bot"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentSheets  = "sheets"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentWebhook = "webhook"
)

type Logger struct {
	*slog.Logger
}

// New builds a text-handler logger tagged with the component name.
func New(component string, level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &Logger{Logger: slog.New(handler).With("component", component)}
}

// WithComponent returns a child logger for another component sharing the
// same handler.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{Logger: l.Logger.With("component", component)}
}

// SetDefault installs l as the process-wide slog default, so packages that
// log through slog directly inherit the same handler.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
