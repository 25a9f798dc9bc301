package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// defaultLevel is used when the configured level is empty or unknown.
const defaultLevel = zapcore.InfoLevel

var (
	global *Logger
	once   sync.Once
)

// Get returns the process-wide logger, initializing it on first use with
// the given level ("debug", "info", "warn", "error"). Subsequent calls
// return the same instance and ignore the level.
func Get(level string) *Logger {
	once.Do(func() {
		global = New(level)
	})
	return global
}

// New builds a standalone logger at the given level. Unknown or empty
// level strings fall back to info.
func New(level string) *Logger {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = defaultLevel
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(os.Stdout),
		zap.NewAtomicLevelAt(lvl),
	)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}
