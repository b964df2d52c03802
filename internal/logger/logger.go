package logger

import (
	"sync"

	"go.uber.org/zap"
)

// Log levels accepted in config.yml.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// DefaultOutput keeps logs off stdout, which may be the operator console.
const DefaultOutput = "stderr"

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. The first call fixes level and
// output; later calls return the same instance.
func Get(level, output string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level, output)
	})
	return globalLogger
}

// Nop returns a logger that discards everything. Used by tests and by
// components constructed without a logger.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
