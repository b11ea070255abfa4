// Package logx is a thin logging facade over zap so the rest of the
// codebase logs through one package-level API.
package logx

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level controls which messages are emitted.
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var (
	atomicLevel = zap.NewAtomicLevelAt(LevelInfo)
	sugar       *zap.SugaredLogger
)

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		logger = zap.NewNop()
	}
	sugar = logger.Sugar()
}

// SetLevel changes the minimum emitted level at runtime.
func SetLevel(l Level) { atomicLevel.SetLevel(l) }

// Sync flushes buffered log entries. Call on shutdown.
func Sync() { _ = sugar.Sync() }

func Debug(args ...interface{})                 { sugar.Debug(args...) }
func Debugf(format string, args ...interface{}) { sugar.Debugf(format, args...) }
func Info(args ...interface{})                  { sugar.Info(args...) }
func Infof(format string, args ...interface{})  { sugar.Infof(format, args...) }
func Warn(args ...interface{})                  { sugar.Warn(args...) }
func Warnf(format string, args ...interface{})  { sugar.Warnf(format, args...) }
func Error(args ...interface{})                 { sugar.Error(args...) }
func Errorf(format string, args ...interface{}) { sugar.Errorf(format, args...) }
func Fatalf(format string, args ...interface{}) { sugar.Fatalf(format, args...) }
