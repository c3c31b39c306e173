package errors

// IOError wraps a file-system or stream failure with the segment
// context needed to locate exactly where it happened.
type IOError struct {
	*baseError
	path    string
	segment uint64
	offset  int64
}

// NewIOError creates a new IO-specific error.
func NewIOError(err error, msg string) *IOError {
	return &IOError{baseError: newBaseError(err, KindIO, msg)}
}

// WithPath records which segment file was being accessed.
func (ie *IOError) WithPath(path string) *IOError {
	ie.path = path
	return ie
}

// WithSegment records which generation was being accessed.
func (ie *IOError) WithSegment(gen uint64) *IOError {
	ie.segment = gen
	return ie
}

// WithOffset records the byte position within the segment where the
// failure happened.
func (ie *IOError) WithOffset(offset int64) *IOError {
	ie.offset = offset
	return ie
}

// WithDetail adds contextual information while preserving the IOError type.
func (ie *IOError) WithDetail(key string, value any) *IOError {
	ie.baseError.WithDetail(key, value)
	return ie
}

// Path returns the segment path involved in the error.
func (ie *IOError) Path() string { return ie.path }

// Segment returns the generation involved in the error.
func (ie *IOError) Segment() uint64 { return ie.segment }

// Offset returns the byte offset involved in the error.
func (ie *IOError) Offset() int64 { return ie.offset }
