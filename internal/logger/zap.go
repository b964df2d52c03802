package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

const defaultZapLevel = zapcore.DebugLevel

func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

// openSink resolves output ("stderr", "stdout" or a file path) with zap.Open.
// Falls back to a locked stderr when the path cannot be opened.
func openSink(output string) zapcore.WriteSyncer {
	if output == "" {
		output = DefaultOutput
	}
	ws, _, err := zap.Open(output)
	if err != nil {
		return zapcore.Lock(os.Stderr)
	}
	return ws
}

func newConsoleCore(level zapcore.Level, ws zapcore.WriteSyncer) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	return zapcore.NewCore(encoder, ws, zap.NewAtomicLevelAt(level))
}

func newZapLogger(levelStr, output string) *Logger {
	core := newConsoleCore(toZapLevel(levelStr), openSink(output))
	return &Logger{
		SugaredLogger: zap.New(core).Sugar().Named("smartroom"),
	}
}
