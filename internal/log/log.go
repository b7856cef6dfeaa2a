// Package log builds the zap logger used across mergepdf and carries it on
// a context.Context.
package log

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelErr   Level = "error"
)

var Levels = []string{string(LevelDebug), string(LevelInfo), string(LevelWarn), string(LevelErr)}

type contextKey struct{}

// New returns a console logger writing to w at the given level.
func New(w io.Writer, level Level) (*zap.Logger, error) {
	var lvl zapcore.Level
	switch Level(strings.ToLower(string(level))) {
	case LevelDebug:
		lvl = zapcore.DebugLevel
	case LevelInfo:
		lvl = zapcore.InfoLevel
	case LevelWarn, "":
		lvl = zapcore.WarnLevel
	case LevelErr:
		lvl = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("log level must be one of: %s", strings.Join(Levels, ", "))
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// With returns a new context with the given logger added to the context.
func With(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// From returns the logger associated with the given context, or a no-op
// logger.
func From(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}
