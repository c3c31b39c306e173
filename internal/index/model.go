package index

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// CommandPos locates a live SET record on disk: which generation's
// segment file it lives in, the byte offset the record starts at, and
// how many bytes it occupies. A Get reads exactly Len bytes starting
// at Pos from generation Gen's segment file.
type CommandPos struct {
	Gen uint64
	Pos int64
	Len int64
}

// Index is the in-memory map from key to the position of its most
// recent SET record. The engine is single-threaded by design (spec's
// non-goal on concurrent access), so the only safety the index needs
// is double-close detection, handled with an atomic flag rather than
// a mutex.
type Index struct {
	dataDir string
	log     *zap.SugaredLogger
	entries map[string]CommandPos
	closed  atomic.Bool
}

// Config encapsulates the configuration parameters required to initialize an Index.
type Config struct {
	DataDir string
	Logger  *zap.SugaredLogger
}
