// Package logger provides the shared zap logger used across the engine.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is a no-op until Init is called, so library code can log
// unconditionally.
var Log = zap.NewNop()

var initialized bool

// Init sets up the global logger. Safe to call more than once.
func Init() {
	if initialized {
		return
	}
	initialized = true
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, err := config.Build()
	if err != nil {
		return
	}
	Log = logger
}

// Sync flushes any buffered log entries.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
