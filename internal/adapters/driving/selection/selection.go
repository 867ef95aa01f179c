// Package selection expands user supplied paths and globs into the audio
// files to upload.
package selection

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/custodia-labs/scribe-cli/internal/core/domain"
	"github.com/custodia-labs/scribe-cli/internal/core/services"
)

// Expand resolves each pattern into audio file paths, keeping the order of
// patterns and dropping duplicates.
//
// A pattern may be a file, a directory (its audio files, not recursive) or
// a doublestar glob such as "recordings/**/*.wav". A pattern that yields no
// audio files is an error.
func Expand(patterns ...string) ([]string, error) {
	seen := make(map[string]struct{})
	paths := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}

		matches, err := expandOne(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: no audio files match %q", domain.ErrNoFiles, pattern)
		}

		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}

	return paths, nil
}

func expandOne(pattern string) ([]string, error) {
	if !hasMeta(pattern) {
		info, err := os.Stat(pattern)
		if err != nil {
			return nil, fmt.Errorf("select %s: %w", pattern, err)
		}
		if !info.IsDir() {
			if !domain.IsAudioFile(pattern) {
				return nil, fmt.Errorf("%w: %s is not an audio file", domain.ErrInvalidInput, pattern)
			}
			return []string{filepath.Clean(pattern)}, nil
		}
		pattern = filepath.Join(pattern, "*")
	}

	base, rel := doublestar.SplitPattern(filepath.ToSlash(pattern))
	matches, err := doublestar.Glob(os.DirFS(filepath.FromSlash(base)), rel)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %w", domain.ErrInvalidInput, pattern, err)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		full := filepath.Join(filepath.FromSlash(base), filepath.FromSlash(m))
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			continue
		}
		files = append(files, full)
	}
	return services.FilterAudio(files), nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
