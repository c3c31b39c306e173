// Package seginfo names and discovers the engine's segment files.
//
// Filename format: <generation>.log — a bare decimal uint64 followed by
// the fixed ".log" extension (the engine itself only creates strictly
// positive, increasing generations). Anything else in the engine
// directory (a dotfile, a subdirectory, a file with a different
// extension) is ignored by SortedGenList.
package seginfo

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const extension = ".log"

// LogPath returns the path of the segment file for generation gen
// inside dir.
func LogPath(dir string, gen uint64) string {
	return filepath.Join(dir, fmt.Sprintf("%d%s", gen, extension))
}

// SortedGenList enumerates dir, keeps only regular files named
// "<uint64>.log", and returns their generations sorted ascending.
// Entries that aren't regular files, lack the .log extension, or
// don't parse as a uint64 are skipped rather than treated as errors.
func SortedGenList(dir string) ([]uint64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read segment directory %s: %w", dir, err)
	}

	gens := make([]uint64, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if filepath.Ext(name) != extension {
			continue
		}

		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		trimmed := strings.TrimSuffix(name, extension)
		gen, err := strconv.ParseUint(trimmed, 10, 64)
		if err != nil {
			continue
		}

		gens = append(gens, gen)
	}

	slices.Sort(gens)
	return gens, nil
}
