// Package log provides the kernel's structured logger: a thin zap wrapper
// so call sites get a stable, small surface (Debug/Info/Warn/Error plus a
// scoped With) without reaching for zap's full API directly.
package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.SugaredLogger, trimming the API the rest of the
// kernel needs down to leveled, structured calls with key-value fields.
type Logger struct {
	z *zap.SugaredLogger
}

// New builds a Logger. When dev is true it uses zap's development config
// (console-encoded, caller included); otherwise it uses the production
// JSON config, suitable for piping a running agent's logs into another
// tool.
func New(dev bool) *Logger {
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	z, err := cfg.Build()
	if err != nil {
		// Logger construction failing means the process's own config is
		// broken; fall back to a no-op logger rather than panic before
		// any command has had a chance to run.
		z = zap.NewNop()
	}
	return &Logger{z: z.Sugar()}
}

// Nop returns a Logger that discards everything, used in tests.
func Nop() *Logger {
	return &Logger{z: zap.NewNop().Sugar()}
}

// With returns a Logger that attaches the given key-value pairs to every
// subsequent call.
func (l *Logger) With(kv ...any) *Logger {
	return &Logger{z: l.z.With(kv...)}
}

func (l *Logger) Debug(msg string, kv ...any) { l.z.Debugw(msg, kv...) }
func (l *Logger) Info(msg string, kv ...any)  { l.z.Infow(msg, kv...) }
func (l *Logger) Warn(msg string, kv ...any)  { l.z.Warnw(msg, kv...) }
func (l *Logger) Error(msg string, kv ...any) { l.z.Errorw(msg, kv...) }

// Sync flushes any buffered log entries; callers should defer it from
// main.
func (l *Logger) Sync() error { return l.z.Sync() }
