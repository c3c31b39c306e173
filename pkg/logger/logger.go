// Package logger builds the structured loggers every other ignitedb
// package expects to receive through its Config.Logger field.
package logger

import (
	"go.uber.org/zap"
)

// New returns a production-configured sugared logger scoped to service.
// Every call site elsewhere in this module treats the result as an
// opaque *zap.SugaredLogger and only ever calls Infow/Errorw/Warnw on it.
func New(service string) *zap.SugaredLogger {
	base, err := zap.NewProduction()
	if err != nil {
		// zap.NewProduction only fails on a broken encoder/sink config,
		// which never happens with the default config used here.
		base = zap.NewNop()
	}
	return base.Sugar().With("service", service)
}
