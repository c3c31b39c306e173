// Package loader replays a single segment's records into the shared
// index at engine startup, the way a crash-recovery pass rebuilds the
// in-memory view of what is live on disk.
package loader

import (
	stdErrors "errors"
	"io"

	"ignitedb/internal/index"
	"ignitedb/internal/record"
	"ignitedb/internal/segio"
)

// Load streams every record in a segment starting at offset 0,
// upserting or removing CommandPos entries in idx, and returns the
// number of bytes the segment contributed to the stale-byte tally.
//
// A record truncated mid-write (io.EOF or io.ErrUnexpectedEOF from the
// decoder) ends replay cleanly rather than failing the whole open — a
// segment interrupted by a crash shouldn't make the engine refuse to
// start.
func Load(gen uint64, r *segio.Reader, idx *index.Index) (uint64, error) {
	dec := record.NewDecoder(r)

	var pos int64
	var staleBytes uint64

	for {
		rec, newPos, err := dec.Next()
		if err != nil {
			if stdErrors.Is(err, io.EOF) || stdErrors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return staleBytes, err
		}

		length := newPos - pos

		switch rec.Kind {
		case record.KindSet:
			old, existed := idx.Set(rec.Key, index.CommandPos{Gen: gen, Pos: pos, Len: length})
			if existed {
				staleBytes += uint64(old.Len)
			}
		case record.KindRemove:
			old, existed := idx.Remove(rec.Key)
			if existed {
				staleBytes += uint64(old.Len)
			}
			staleBytes += uint64(length)
		}

		pos = newPos
	}

	return staleBytes, nil
}
