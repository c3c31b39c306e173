package errors

// CodecError wraps a record encode/decode failure with the segment
// position that produced it.
type CodecError struct {
	*baseError
	segment uint64
	offset  int64
}

// NewCodecError creates a new codec-specific error.
func NewCodecError(err error, msg string) *CodecError {
	return &CodecError{baseError: newBaseError(err, KindCodec, msg)}
}

// WithSegment records which generation was being decoded.
func (ce *CodecError) WithSegment(gen uint64) *CodecError {
	ce.segment = gen
	return ce
}

// WithOffset records the byte offset of the record that failed to decode.
func (ce *CodecError) WithOffset(offset int64) *CodecError {
	ce.offset = offset
	return ce
}

// WithDetail adds contextual information while preserving the CodecError type.
func (ce *CodecError) WithDetail(key string, value any) *CodecError {
	ce.baseError.WithDetail(key, value)
	return ce
}

// Segment returns the generation involved in the error.
func (ce *CodecError) Segment() uint64 { return ce.segment }

// Offset returns the byte offset involved in the error.
func (ce *CodecError) Offset() int64 { return ce.offset }
