// Package log provides the application logger on top of zap.
//
// The terminal belongs to the UI, so records go to a file. Until Init is
// called (or when no file is configured) logging is a no-op.
package log

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	baseLogger = zap.NewNop()
	log        = baseLogger.Sugar()
)

// Init points the package logger at path. An empty path keeps the no-op
// logger.
func Init(debug bool, path string) error {
	if path == "" {
		baseLogger = zap.NewNop()
		log = baseLogger.Sugar()
		return nil
	}

	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}

	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}
	baseLogger = zapLogger
	log = zapLogger.Sugar()
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = log.Sync()
}

func Debugf(template string, args ...interface{}) {
	log.Debugf(template, args...)
}

func Debugw(msg string, keysAndValues ...interface{}) {
	log.Debugw(msg, keysAndValues...)
}

func Infow(msg string, keysAndValues ...interface{}) {
	log.Infow(msg, keysAndValues...)
}

func Warnw(msg string, keysAndValues ...interface{}) {
	log.Warnw(msg, keysAndValues...)
}

func Errorf(template string, args ...interface{}) {
	log.Errorf(template, args...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	log.Errorw(msg, keysAndValues...)
}
