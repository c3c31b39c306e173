package seginfo_test

import (
	"os"
	"path/filepath"
	"testing"

	"ignitedb/pkg/seginfo"

	"github.com/stretchr/testify/require"
)

func TestLogPath(t *testing.T) {
	require.Equal(t, filepath.Join("data", "7.log"), seginfo.LogPath("data", 7))
}

func TestSortedGenList(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"3.log", "1.log", "2.log", "not-a-log.txt", "10.log"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "5.log"), 0755))

	gens, err := seginfo.SortedGenList(dir)
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 2, 3, 10}, gens)
}

func TestSortedGenListEmptyDir(t *testing.T) {
	gens, err := seginfo.SortedGenList(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, gens)
}
