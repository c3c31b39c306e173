package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"ignitedb/internal/index"
	"ignitedb/internal/storage"
	"ignitedb/pkg/logger"
	"ignitedb/pkg/options"

	"github.com/stretchr/testify/require"
)

func newIndex(t *testing.T, dir string) *index.Index {
	t.Helper()
	idx, err := index.New(nil, &index.Config{DataDir: dir, Logger: logger.New("storage-test")})
	require.NoError(t, err)
	return idx
}

func TestOpenBootstrapsFreshDirectory(t *testing.T) {
	dir := t.TempDir()
	idx := newIndex(t, dir)
	opts := options.NewDefaultOptions()

	s, staleBytes, err := storage.Open(&storage.Config{Dir: dir, Options: &opts, Logger: logger.New("storage-test")}, idx)
	require.NoError(t, err)
	defer s.Close()

	require.Equal(t, uint64(0), staleBytes)
	require.Equal(t, uint64(1), s.CurrentGen())

	_, ok := s.Reader(1)
	require.True(t, ok)
}

func TestOpenReplaysExistingSegments(t *testing.T) {
	dir := t.TempDir()
	idx := newIndex(t, dir)
	opts := options.NewDefaultOptions()

	s1, _, err := storage.Open(&storage.Config{Dir: dir, Options: &opts, Logger: logger.New("storage-test")}, idx)
	require.NoError(t, err)

	w := s1.Writer()
	_, err = w.Write([]byte(`{"kind":"set","key":"a","value":"1"}`))
	require.NoError(t, err)
	require.NoError(t, w.Flush())
	require.NoError(t, s1.Close())

	idx2 := newIndex(t, dir)
	s2, staleBytes, err := storage.Open(&storage.Config{Dir: dir, Options: &opts, Logger: logger.New("storage-test")}, idx2)
	require.NoError(t, err)
	defer s2.Close()

	require.Equal(t, uint64(0), staleBytes)
	require.Equal(t, uint64(2), s2.CurrentGen())

	pos, ok := idx2.Get("a")
	require.True(t, ok)
	require.Equal(t, uint64(1), pos.Gen)
}

func TestRemoveSegmentsBeforeDeletesFiles(t *testing.T) {
	dir := t.TempDir()
	idx := newIndex(t, dir)
	opts := options.NewDefaultOptions()

	s, _, err := storage.Open(&storage.Config{Dir: dir, Options: &opts, Logger: logger.New("storage-test")}, idx)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.NewSegment(2))
	require.NoError(t, s.NewSegment(3))

	require.NoError(t, s.RemoveSegmentsBefore(3))

	_, ok := s.Reader(1)
	require.False(t, ok)
	_, ok = s.Reader(2)
	require.False(t, ok)
	_, ok = s.Reader(3)
	require.True(t, ok)

	_, err = os.Stat(filepath.Join(dir, "1.log"))
	require.True(t, os.IsNotExist(err))
}
