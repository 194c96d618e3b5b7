// Package logger exposes a shared zap logger for the application.  All
// long-running components (server startup, queue consumer, billboard engine)
// log through it so output stays structured and machine-parseable.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var L *zap.Logger

func init() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	var err error
	L, err = config.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}
}

// WithComponent returns a logger tagged with a component field so log lines
// from the queue consumer, handlers and services can be told apart.
func WithComponent(component string) *zap.Logger {
	return L.With(zap.String("component", component))
}
