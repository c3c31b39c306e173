// Package engine coordinates the index, storage, and compaction
// subsystems behind the four operations an embedded key-value store
// needs: open (New), Get, Set, Remove.
package engine

import (
	stdErrors "errors"
	"io"
	"sync/atomic"

	"ignitedb/internal/compaction"
	"ignitedb/internal/index"
	"ignitedb/internal/record"
	"ignitedb/internal/storage"
	"ignitedb/pkg/errors"
	"ignitedb/pkg/options"

	"go.uber.org/zap"
)

var (
	// ErrEngineClosed is returned by Close when the engine has already
	// been closed. Get, Set and Remove do not check for a closed engine.
	ErrEngineClosed = stdErrors.New("operation failed: cannot access closed engine")
)

// Engine is the main database engine that coordinates the index,
// storage, and compaction subsystems.
type Engine struct {
	options    *options.Options
	log        *zap.SugaredLogger
	closed     atomic.Bool
	index      *index.Index
	storage    *storage.Storage
	compaction *compaction.Compaction
	staleBytes uint64
}

// Config holds all the parameters needed to initialize a new Engine instance.
type Config struct {
	Dir     string
	Options *options.Options
	Logger  *zap.SugaredLogger
}

// New creates dir if missing, replays its segments to rebuild the
// index, and opens a fresh active segment for writes.
func New(config *Config) (*Engine, error) {
	idx, err := index.New(nil, &index.Config{DataDir: config.Dir, Logger: config.Logger})
	if err != nil {
		return nil, err
	}

	store, staleBytes, err := storage.Open(&storage.Config{
		Dir:     config.Dir,
		Options: config.Options,
		Logger:  config.Logger,
	}, idx)
	if err != nil {
		return nil, err
	}

	comp := compaction.New(config.Options.CompactionThreshold, config.Logger)

	return &Engine{
		options:    config.Options,
		log:        config.Logger,
		index:      idx,
		storage:    store,
		compaction: comp,
		staleBytes: staleBytes,
	}, nil
}

// Get returns the value stored for key and true, or false if key has
// no live entry.
func (e *Engine) Get(key string) (string, bool, error) {
	pos, ok := e.index.Get(key)
	if !ok {
		return "", false, nil
	}

	r, ok := e.storage.Reader(pos.Gen)
	if !ok {
		return "", false, errors.NewIOError(nil, "no reader registered for segment").
			WithSegment(pos.Gen)
	}

	if err := r.Seek(pos.Pos); err != nil {
		return "", false, errors.NewIOError(err, "failed to seek segment for read").
			WithSegment(pos.Gen).WithOffset(pos.Pos)
	}

	dec := record.NewDecoder(io.LimitReader(r, pos.Len))
	rec, _, err := dec.Next()
	if err != nil {
		return "", false, errors.NewCodecError(err, "failed to decode record").
			WithSegment(pos.Gen).WithOffset(pos.Pos)
	}

	if rec.Kind != record.KindSet {
		return "", false, errors.ErrUnexpectedCommandType
	}

	return rec.Value, true, nil
}

// Set writes a SET record for key/value, updates the index, and
// triggers compaction inline once the stale-byte counter crosses the
// configured threshold.
func (e *Engine) Set(key, value string) error {
	w := e.storage.Writer()
	pos := w.Pos()

	rec := record.NewSet(key, value)
	if err := record.Encode(w, rec); err != nil {
		return errors.NewCodecError(err, "failed to encode set record").WithDetail("key", key)
	}
	if err := w.Flush(); err != nil {
		return errors.NewIOError(err, "failed to flush set record").WithDetail("key", key)
	}

	newEntry := index.CommandPos{Gen: e.storage.CurrentGen(), Pos: pos, Len: w.Pos() - pos}
	old, existed := e.index.Set(key, newEntry)
	if existed {
		e.staleBytes += uint64(old.Len)
	}

	if e.staleBytes > e.compaction.Threshold() {
		return e.runCompaction()
	}

	return nil
}

// Remove deletes key's live entry, writing a REMOVE tombstone. It
// returns errors.ErrKeyNotFound if key has no live entry.
func (e *Engine) Remove(key string) error {
	old, existed := e.index.Get(key)
	if !existed {
		return errors.ErrKeyNotFound
	}

	w := e.storage.Writer()
	pos := w.Pos()

	rec := record.NewRemove(key)
	if err := record.Encode(w, rec); err != nil {
		return errors.NewCodecError(err, "failed to encode remove record").WithDetail("key", key)
	}
	if err := w.Flush(); err != nil {
		return errors.NewIOError(err, "failed to flush remove record").WithDetail("key", key)
	}

	e.index.Remove(key)
	e.staleBytes += uint64(old.Len) + uint64(w.Pos()-pos)

	if e.staleBytes > e.compaction.Threshold() {
		return e.runCompaction()
	}

	return nil
}

func (e *Engine) runCompaction() error {
	if _, err := e.compaction.Run(e.storage, e.index); err != nil {
		return err
	}
	e.staleBytes = 0
	return nil
}

// Close gracefully shuts down the engine and releases all associated resources.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return ErrEngineClosed
	}

	if err := e.storage.Close(); err != nil {
		return err
	}
	return e.index.Close()
}
