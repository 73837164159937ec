package logger

import (
	"sort"

	"go.uber.org/zap"
)

// ZapLogger implements ports.Logger on top of zap's sugared logger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewStd creates a logger. Without verbose every call is a no-op.
func NewStd(verbose bool) *ZapLogger {
	if !verbose {
		return New(zap.NewNop())
	}
	base, err := zap.NewDevelopment()
	if err != nil {
		base = zap.NewNop()
	}
	return New(base)
}

// New wraps an existing zap logger.
func New(base *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: base.Sugar()}
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.sugar.Debugw(msg, keysAndValues(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.sugar.Infow(msg, keysAndValues(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.sugar.Warnw(msg, keysAndValues(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	kv := append([]interface{}{"error", err}, keysAndValues(fields)...)
	l.sugar.Errorw(msg, kv...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() {
	_ = l.sugar.Sync()
}

func keysAndValues(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kv := make([]interface{}, 0, len(fields)*2)
	for _, k := range keys {
		kv = append(kv, k, fields[k])
	}
	return kv
}
