package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/thoreinstein/mdcheck/internal/errors"
)

// Default discovery patterns.
var (
	DefaultInclude = []string{"**/*.md", "**/*.mdc"}
	DefaultExclude = []string{"**/node_modules/**"}
)

// Discover expands paths into the sorted, deduplicated list of files to
// validate. Files are accepted as given; directories are walked and
// filtered with the include and exclude glob patterns, matched against
// the slash-form path relative to the directory. Empty pattern lists fall
// back to the defaults.
func Discover(paths, include, exclude []string) ([]string, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	if len(exclude) == 0 {
		exclude = DefaultExclude
	}
	for _, pattern := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Newf("invalid discovery pattern %q", pattern)
		}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "inspecting %q", path)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		root := path
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return relErr
			}
			rel = filepath.ToSlash(rel)

			if matchAny(exclude, rel) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if matchAny(include, rel) {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking %q", root)
		}
	}

	sort.Strings(files)
	return files, nil
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}
