package commands

import (
	"fmt"
	"os"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/mdcheck/internal/errors"
	"github.com/thoreinstein/mdcheck/pkg/fileutil"
)

// pickDocuments lets the user narrow the discovered files with a fuzzy
// finder. Aborting the finder selects nothing.
func pickDocuments(files []string) ([]string, error) {
	indexes, err := fuzzyfinder.FindMulti(
		files,
		func(i int) string {
			return files[i]
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return previewDocument(files[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}

	selected := make([]string, 0, len(indexes))
	for _, i := range indexes {
		selected = append(selected, files[i])
	}
	return selected, nil
}

// previewDocument renders the head of a file for the preview pane.
func previewDocument(path string) string {
	content, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return fmt.Sprintf("cannot preview %s: %v", path, err)
	}

	const previewBytes = 2048
	if len(content) > previewBytes {
		content = content[:previewBytes]
	}
	info, err := os.Stat(path)
	if err != nil {
		return string(content)
	}
	return fmt.Sprintf("%s (%d bytes)\n\n%s", path, info.Size(), content)
}
