package scan

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoFiles is returned by Files when no pattern matched a regular file.
var ErrNoFiles = errors.New("no files matched")

// Files returns deduplicated absolute paths of regular files matching any of
// the given glob patterns. Patterns support "**" for recursive matching; a
// pattern without glob characters names a single file.
func Files(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		// Make pattern absolute for consistent paths.
		if !filepath.IsAbs(pattern) {
			wd, err := os.Getwd()
			if err != nil {
				return nil, err
			}
			pattern = filepath.Join(wd, pattern)
		}

		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, err
		}

		for _, m := range matches {
			abs, err := filepath.Abs(m)
			if err != nil {
				continue
			}
			info, err := os.Stat(abs)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			if !seen[abs] {
				seen[abs] = true
				result = append(result, abs)
			}
		}
	}

	if len(result) == 0 {
		return nil, ErrNoFiles
	}
	return result, nil
}
