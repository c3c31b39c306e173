// Package index provides the in-memory hash map from key to on-disk
// position that the engine uses to answer reads in O(1) without
// scanning segment files.
package index

import (
	"context"
	stdErrors "errors"

	"ignitedb/pkg/errors"
)

var (
	ErrIndexClosed = stdErrors.New("operation failed: cannot access closed index")
)

// New creates and initializes a new Index instance.
func New(ctx context.Context, config *Config) (*Index, error) {
	if config == nil || config.DataDir == "" || config.Logger == nil {
		return nil, errors.NewIOError(nil, "index configuration is required").
			WithDetail("config", config)
	}

	return &Index{
		log:     config.Logger,
		dataDir: config.DataDir,
		entries: make(map[string]CommandPos, 2048),
	}, nil
}

// Get returns the position of key's live record, if any.
func (idx *Index) Get(key string) (CommandPos, bool) {
	pos, ok := idx.entries[key]
	return pos, ok
}

// Set records key as pointing at pos, returning the previous position
// if key already had a live entry. Callers use the previous entry's
// Len to account for the bytes it just made stale.
func (idx *Index) Set(key string, pos CommandPos) (CommandPos, bool) {
	old, existed := idx.entries[key]
	idx.entries[key] = pos
	return old, existed
}

// Remove deletes key's entry, returning the position it pointed at.
// The second return value is false if the key had no live entry.
func (idx *Index) Remove(key string) (CommandPos, bool) {
	old, existed := idx.entries[key]
	if existed {
		delete(idx.entries, key)
	}
	return old, existed
}

// Entries returns every live key and its position. Used by compaction
// to decide which bytes in each segment are still worth copying
// forward.
func (idx *Index) Entries() map[string]CommandPos {
	return idx.entries
}

// Len returns the number of live keys tracked by the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Close gracefully shuts down the Index, cleaning up resources and ensuring
// that the index cannot be used after closure.
func (idx *Index) Close() error {
	if !idx.closed.CompareAndSwap(false, true) {
		return ErrIndexClosed
	}

	idx.log.Infow("closing index")

	clear(idx.entries)
	idx.entries = nil

	idx.log.Infow("index closed")
	return nil
}
