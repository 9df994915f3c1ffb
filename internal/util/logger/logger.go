package logger

import (
	"log/slog"
	"os"
	"sync"
)

var (
	loggerInstance *slog.Logger
	once           sync.Once
	mu             sync.RWMutex
)

// GetLogger returns the process logger. Until SetProductionMode is called it
// writes text at debug level, so access denials are visible in development.
func GetLogger() *slog.Logger {
	once.Do(func() {
		loggerInstance = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	})

	mu.RLock()
	defer mu.RUnlock()

	return loggerInstance
}

// SetProductionMode switches the process logger to JSON at info level.
// Callers must fetch the logger through GetLogger after the switch.
func SetProductionMode() {
	GetLogger()

	production := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	mu.Lock()
	loggerInstance = production
	mu.Unlock()

	slog.SetDefault(production)
}
