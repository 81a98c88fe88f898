// Package logger wraps zap with context-aware helpers.
// Every log line carries the request trace id when one is present.
package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appcontext "packquote/internal/core/context"
)

var log *zap.Logger = zap.NewNop()

// Init configures the global logger. level is one of debug, info, warn, error.
// In "development" mode output is console-friendly, otherwise JSON.
func Init(level, mode string) error {
	var cfg zap.Config
	if mode == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stdout"}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	log = l
	return nil
}

// Sync flushes buffered log entries.
func Sync() {
	_ = log.Sync()
}

func withCtx(ctx context.Context, fields []zap.Field) []zap.Field {
	if ctx == nil {
		return fields
	}
	if traceID := appcontext.TraceID(ctx); traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}
	if userID := appcontext.UserID(ctx); userID != "" {
		fields = append(fields, zap.String("user_id", userID))
	}
	return fields
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) {
	log.Debug(msg, withCtx(ctx, fields)...)
}

func Info(ctx context.Context, msg string, fields ...zap.Field) {
	log.Info(msg, withCtx(ctx, fields)...)
}

func Warn(ctx context.Context, msg string, fields ...zap.Field) {
	log.Warn(msg, withCtx(ctx, fields)...)
}

func Error(ctx context.Context, msg string, fields ...zap.Field) {
	log.Error(msg, withCtx(ctx, fields)...)
}

// Fatal logs and exits. Only used during startup.
func Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	log.Fatal(msg, withCtx(ctx, fields)...)
}
