package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"ignitedb/internal/index"
	"ignitedb/internal/loader"
	"ignitedb/internal/record"
	"ignitedb/internal/segio"
	"ignitedb/pkg/logger"

	"github.com/stretchr/testify/require"
)

func newIndex(t *testing.T) *index.Index {
	t.Helper()
	idx, err := index.New(nil, &index.Config{DataDir: t.TempDir(), Logger: logger.New("loader-test")})
	require.NoError(t, err)
	return idx
}

func writeSegment(t *testing.T, recs ...record.Record) *segio.Reader {
	t.Helper()

	path := filepath.Join(t.TempDir(), "1.log")
	wf, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	require.NoError(t, err)

	for _, rec := range recs {
		require.NoError(t, record.Encode(wf, rec))
	}
	require.NoError(t, wf.Close())

	rf, err := os.OpenFile(path, os.O_RDONLY, 0644)
	require.NoError(t, err)

	r, err := segio.NewReader(rf)
	require.NoError(t, err)
	return r
}

func TestLoadRebuildsIndex(t *testing.T) {
	idx := newIndex(t)
	r := writeSegment(t,
		record.NewSet("k1", "v1"),
		record.NewSet("k2", "v2"),
		record.NewSet("k1", "v1-updated"),
	)

	staleBytes, err := loader.Load(1, r, idx)
	require.NoError(t, err)
	require.Greater(t, staleBytes, uint64(0))

	pos, ok := idx.Get("k1")
	require.True(t, ok)
	require.Equal(t, uint64(1), pos.Gen)

	_, ok = idx.Get("k2")
	require.True(t, ok)
}

func TestLoadAppliesRemoves(t *testing.T) {
	idx := newIndex(t)
	r := writeSegment(t,
		record.NewSet("k1", "v1"),
		record.NewRemove("k1"),
	)

	staleBytes, err := loader.Load(1, r, idx)
	require.NoError(t, err)
	require.Greater(t, staleBytes, uint64(0))

	_, ok := idx.Get("k1")
	require.False(t, ok)
}

func TestLoadEmptySegment(t *testing.T) {
	idx := newIndex(t)
	r := writeSegment(t)

	staleBytes, err := loader.Load(1, r, idx)
	require.NoError(t, err)
	require.Equal(t, uint64(0), staleBytes)
	require.Equal(t, 0, idx.Len())
}
