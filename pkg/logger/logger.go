// Package logger provides a zap-based application logger that carries the
// service name and, when present, the trace id of the request context.
package logger

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity a Logger writes.
type Level = zapcore.Level

// Supported levels.
const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// TraceIDFn extracts a trace id from ctx, returning "" when there is none.
type TraceIDFn func(ctx context.Context) string

// Logger writes structured JSON log lines.
type Logger struct {
	z       *zap.SugaredLogger
	traceID TraceIDFn
}

// New returns a Logger writing JSON to w at level and above.
func New(w io.Writer, level Level, service string, traceID TraceIDFn) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), level)
	z := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).With(zap.String("service", service))
	return &Logger{z: z.Sugar(), traceID: traceID}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return &Logger{z: zap.NewNop().Sugar()}
}

// ParseLevel maps a name such as "debug" or "WARN" to a Level, defaulting to
// info.
func ParseLevel(s string) Level {
	l, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return LevelInfo
	}
	return l
}

// With returns a child logger that always includes keysAndValues.
func (l *Logger) With(keysAndValues ...any) *Logger {
	return &Logger{z: l.z.With(keysAndValues...), traceID: l.traceID}
}

func (l *Logger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	l.z.Debugw(msg, l.fields(ctx, keysAndValues)...)
}

func (l *Logger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	l.z.Infow(msg, l.fields(ctx, keysAndValues)...)
}

func (l *Logger) Warn(ctx context.Context, msg string, keysAndValues ...any) {
	l.z.Warnw(msg, l.fields(ctx, keysAndValues)...)
}

func (l *Logger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	l.z.Errorw(msg, l.fields(ctx, keysAndValues)...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.z.Sync()
}

func (l *Logger) fields(ctx context.Context, kv []any) []any {
	if l.traceID == nil || ctx == nil {
		return kv
	}
	if id := l.traceID(ctx); id != "" {
		return append([]any{"trace_id", id}, kv...)
	}
	return kv
}
