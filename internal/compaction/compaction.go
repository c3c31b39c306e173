// Package compaction reclaims space by copying every live record into
// a fresh segment and retiring the segments that only held stale
// bytes, bounding the engine's space amplification.
package compaction

import (
	"fmt"
	"io"

	"ignitedb/internal/index"
	"ignitedb/internal/storage"
	"ignitedb/pkg/errors"

	"go.uber.org/zap"
)

// Compaction runs the compact() algorithm once its stale-byte
// threshold is crossed.
type Compaction struct {
	threshold uint64
	log       *zap.SugaredLogger
}

// New returns a Compaction that triggers at threshold stale bytes.
func New(threshold uint64, log *zap.SugaredLogger) *Compaction {
	return &Compaction{threshold: threshold, log: log}
}

// Threshold returns the configured stale-byte trigger point.
func (c *Compaction) Threshold() uint64 {
	return c.threshold
}

// Run reserves two fresh generations — compactionGen for the copied
// live data and newCurrentGen for future writes — copies every live
// entry from idx into compactionGen, then retires every segment
// strictly older than compactionGen. It returns the engine's new
// current generation.
func (c *Compaction) Run(s *storage.Storage, idx *index.Index) (uint64, error) {
	current := s.CurrentGen()
	compactionGen := current + 1
	newCurrentGen := current + 2

	c.log.Infow("starting compaction",
		"currentGen", current, "compactionGen", compactionGen, "newCurrentGen", newCurrentGen,
		"liveKeys", idx.Len(),
	)

	if err := s.NewSegment(compactionGen); err != nil {
		return 0, err
	}
	compactionWriter := s.Writer()

	for key, pos := range idx.Entries() {
		r, ok := s.Reader(pos.Gen)
		if !ok {
			return 0, fmt.Errorf("no reader registered for segment %d", pos.Gen)
		}

		if err := r.Seek(pos.Pos); err != nil {
			return 0, errors.NewIOError(err, "failed to seek source segment during compaction").
				WithSegment(pos.Gen).WithOffset(pos.Pos)
		}

		newPos := compactionWriter.Pos()
		if _, err := io.CopyN(compactionWriter, r, pos.Len); err != nil {
			return 0, errors.NewIOError(err, "failed to copy live record during compaction").
				WithSegment(pos.Gen).WithOffset(pos.Pos)
		}

		idx.Set(key, index.CommandPos{Gen: compactionGen, Pos: newPos, Len: pos.Len})
	}

	if err := compactionWriter.Flush(); err != nil {
		return 0, errors.NewIOError(err, "failed to flush compaction segment").
			WithSegment(compactionGen)
	}

	if err := s.NewSegment(newCurrentGen); err != nil {
		return 0, err
	}
	s.SetCurrentGen(newCurrentGen)

	if err := s.RemoveSegmentsBefore(compactionGen); err != nil {
		return 0, err
	}

	c.log.Infow("compaction complete", "newCurrentGen", newCurrentGen, "liveKeys", idx.Len())
	return newCurrentGen, nil
}
