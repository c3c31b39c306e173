package errors_test

import (
	stdErrors "errors"
	"testing"

	"ignitedb/pkg/errors"

	"github.com/stretchr/testify/require"
)

func TestIOErrorBuilders(t *testing.T) {
	cause := stdErrors.New("disk full")
	err := errors.NewIOError(cause, "failed to write segment").
		WithPath("/data/1.log").
		WithSegment(1).
		WithOffset(42)

	require.Equal(t, "failed to write segment", err.Error())
	require.ErrorIs(t, err, cause)
	require.Equal(t, "/data/1.log", err.Path())
	require.Equal(t, uint64(1), err.Segment())
	require.Equal(t, int64(42), err.Offset())
	require.True(t, errors.IsIOError(err))
	require.False(t, errors.IsCodecError(err))
}

func TestCodecErrorBuilders(t *testing.T) {
	cause := stdErrors.New("unexpected token")
	err := errors.NewCodecError(cause, "failed to decode record").
		WithSegment(3).
		WithOffset(128)

	require.ErrorIs(t, err, cause)
	require.Equal(t, uint64(3), err.Segment())
	require.Equal(t, int64(128), err.Offset())
	require.True(t, errors.IsCodecError(err))
	require.False(t, errors.IsIOError(err))
}

func TestSentinels(t *testing.T) {
	require.False(t, errors.IsIOError(errors.ErrKeyNotFound))
	require.True(t, stdErrors.Is(errors.ErrKeyNotFound, errors.ErrKeyNotFound))
	require.True(t, stdErrors.Is(errors.ErrUnexpectedCommandType, errors.ErrUnexpectedCommandType))
}
