package fileio

import (
	"fmt"
	"io/fs"
	"path"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// Glob returns the files in fsys matching pattern whose extension is one of
// [Extensions]. The pattern supports "**" for recursive matching. Results
// are sorted.
func Glob(fsys fs.FS, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("fileio: glob %q: %w", pattern, doublestar.ErrBadPattern)
	}
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("fileio: glob %q: %w", pattern, err)
	}
	known := Extensions()
	out := matches[:0]
	for _, m := range matches {
		if slices.Contains(known, normalizeExt(path.Ext(m))) {
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return out, nil
}
