// Package errors provides ignitedb's typed error taxonomy. The engine
// recognizes four kinds of failure (spec's error handling design): an
// IOError for any underlying file-system or stream failure, a
// CodecError for a record that fails to encode or decode, and two
// sentinels — ErrKeyNotFound and ErrUnexpectedCommandType — that
// callers match with errors.Is rather than a typed error, because the
// caller never needs more context than "which of these two happened."
//
// IOError and CodecError share a fluent builder (WithSegment,
// WithOffset, WithDetail; IOError also has WithPath) so the point where an operation
// failed can be reconstructed from the error alone without parsing its
// message.
package errors

import stdErrors "errors"

var (
	// ErrKeyNotFound is returned by Remove when the key has no live
	// entry in the index. This is a first-class, user-visible result,
	// not a programming error.
	ErrKeyNotFound = stdErrors.New("key not found")

	// ErrUnexpectedCommandType is returned by Get when the record at
	// the indexed position decodes as something other than a SET. It
	// indicates on-disk corruption or an index/segment mismatch.
	ErrUnexpectedCommandType = stdErrors.New("unexpected command type")
)

// IsIOError reports whether err is, or wraps, an IOError.
func IsIOError(err error) bool {
	var ie *IOError
	return stdErrors.As(err, &ie)
}

// IsCodecError reports whether err is, or wraps, a CodecError.
func IsCodecError(err error) bool {
	var ce *CodecError
	return stdErrors.As(err, &ce)
}
