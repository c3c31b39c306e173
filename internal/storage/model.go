package storage

import (
	"sync/atomic"

	"ignitedb/pkg/options"

	"go.uber.org/zap"

	"ignitedb/internal/segio"
)

// Storage owns every segment file in the engine's directory: one
// active writer for the current generation, plus one reader per
// generation (including the active one) for satisfying reads.
type Storage struct {
	dir        string
	currentGen uint64
	writer     *segio.Writer
	readers    map[uint64]*segio.Reader
	closed     atomic.Bool
	options    *options.Options
	log        *zap.SugaredLogger
}

// Config encapsulates the configuration parameters required to initialize a Storage instance.
type Config struct {
	Dir     string
	Options *options.Options
	Logger  *zap.SugaredLogger
}
