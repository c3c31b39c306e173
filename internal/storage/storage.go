// Package storage owns the engine directory's segment files: the
// current active writer, one reader per live generation, and the
// bootstrap pass that replays every existing segment into the shared
// index when the engine opens.
package storage

import (
	stdErrors "errors"
	"fmt"
	"os"

	"ignitedb/internal/index"
	"ignitedb/internal/loader"
	"ignitedb/internal/segio"
	"ignitedb/pkg/errors"
	"ignitedb/pkg/filesys"
	"ignitedb/pkg/seginfo"

	"go.uber.org/zap"
)

var (
	ErrSegmentClosed = stdErrors.New("operation failed: cannot access closed segment")
)

// Open creates dir if missing, replays every existing segment into
// idx in ascending generation order, and opens a fresh active segment
// for writes at (highest existing generation)+1. It returns the
// initialized Storage and the total stale-byte count accumulated
// during replay.
func Open(config *Config, idx *index.Index) (*Storage, uint64, error) {
	if config == nil || config.Dir == "" || config.Options == nil || config.Logger == nil {
		return nil, 0, fmt.Errorf("invalid storage configuration")
	}

	config.Logger.Infow("initializing storage", "dir", config.Dir)

	if err := filesys.CreateDir(config.Dir, 0755, true); err != nil {
		return nil, 0, errors.NewIOError(err, "failed to create engine directory").
			WithPath(config.Dir)
	}

	gens, err := seginfo.SortedGenList(config.Dir)
	if err != nil {
		return nil, 0, errors.NewIOError(err, "failed to enumerate segments").
			WithPath(config.Dir)
	}

	s := &Storage{
		dir:     config.Dir,
		options: config.Options,
		log:     config.Logger,
		readers: make(map[uint64]*segio.Reader, len(gens)+1),
	}

	var staleBytes uint64
	for _, gen := range gens {
		r, err := s.openReader(gen)
		if err != nil {
			return nil, 0, err
		}
		s.readers[gen] = r

		contributed, err := loader.Load(gen, r, idx)
		if err != nil {
			return nil, 0, errors.NewCodecError(err, "failed to replay segment").
				WithSegment(gen)
		}
		staleBytes += contributed

		config.Logger.Infow("replayed segment", "gen", gen, "staleBytes", contributed)
	}

	var nextGen uint64 = 1
	if len(gens) > 0 {
		nextGen = gens[len(gens)-1] + 1
	}

	if err := s.NewSegment(nextGen); err != nil {
		return nil, 0, err
	}
	s.currentGen = nextGen

	config.Logger.Infow("storage initialized", "currentGen", nextGen, "staleBytes", staleBytes)
	return s, staleBytes, nil
}

// openReader opens gen's segment file for reading, creating it if it
// doesn't already exist (so a fresh active segment always has a
// matching reader).
func (s *Storage) openReader(gen uint64) (*segio.Reader, error) {
	path := seginfo.LogPath(s.dir, gen)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDONLY, 0644)
	if err != nil {
		return nil, errors.NewIOError(err, "failed to open segment for reading").
			WithPath(path).WithSegment(gen)
	}

	r, err := segio.NewReader(file)
	if err != nil {
		file.Close()
		return nil, errors.NewIOError(err, "failed to position segment reader").
			WithPath(path).WithSegment(gen)
	}

	return r, nil
}

// NewSegment opens gen's segment file for both writing and reading,
// replacing the active writer and registering the reader. Used both
// when rotating to a new active generation and when compaction needs a
// fresh segment.
func (s *Storage) NewSegment(gen uint64) error {
	path := seginfo.LogPath(s.dir, gen)

	wf, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0644)
	if err != nil {
		return errors.NewIOError(err, "failed to open segment for writing").
			WithPath(path).WithSegment(gen)
	}

	w, err := segio.NewWriter(wf)
	if err != nil {
		wf.Close()
		return errors.NewIOError(err, "failed to position segment writer").
			WithPath(path).WithSegment(gen)
	}

	r, err := s.openReader(gen)
	if err != nil {
		w.Close()
		return err
	}

	if s.writer != nil {
		if err := s.writer.Close(); err != nil {
			s.log.Errorw("failed to close previous active segment", "error", err)
		}
	}

	s.writer = w
	s.readers[gen] = r
	return nil
}

// Writer returns the active segment's writer.
func (s *Storage) Writer() *segio.Writer {
	return s.writer
}

// Reader returns the reader registered for gen, if any.
func (s *Storage) Reader(gen uint64) (*segio.Reader, bool) {
	r, ok := s.readers[gen]
	return r, ok
}

// CurrentGen returns the active segment's generation.
func (s *Storage) CurrentGen() uint64 {
	return s.currentGen
}

// SetCurrentGen updates the active generation, called once compaction
// has switched the writer over to a freshly reserved generation.
func (s *Storage) SetCurrentGen(gen uint64) {
	s.currentGen = gen
}

// RemoveSegmentsBefore closes and deletes every segment whose
// generation is strictly less than gen.
func (s *Storage) RemoveSegmentsBefore(gen uint64) error {
	for g, r := range s.readers {
		if g >= gen {
			continue
		}

		if err := r.Close(); err != nil {
			s.log.Errorw("failed to close retired segment reader", "gen", g, "error", err)
		}
		delete(s.readers, g)

		path := seginfo.LogPath(s.dir, g)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.NewIOError(err, "failed to delete retired segment").
				WithPath(path).WithSegment(g)
		}
	}

	return nil
}

// Close flushes and closes the active writer and every registered
// reader.
func (s *Storage) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrSegmentClosed
	}

	var firstErr error
	if s.writer != nil {
		if err := s.writer.Close(); err != nil {
			firstErr = err
		}
	}

	for gen, r := range s.readers {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close reader for segment %d: %w", gen, err)
		}
	}

	return firstErr
}
