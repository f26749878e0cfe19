package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"datebook-cli/internal/model"
)

type WriteOptions struct {
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteEntry writes one entry page under <toDir>/entries/.
func WriteEntry(e *model.Entry, toDir string, opt WriteOptions) (WriteResult, error) {
	if e == nil {
		return WriteResult{}, errors.New("missing entry")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	md, err := RenderEntryMarkdown(e)
	if err != nil {
		return WriteResult{}, err
	}

	outDir := filepath.Join(toDir, "entries")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, e.ID+".md")
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

// WriteBook writes the day index plus one page per entry. The caller
// supplies entries already sorted by (date, start); the index keeps
// that order. Writing stops on the first error.
func WriteBook(entries []*model.Entry, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	entriesDir := filepath.Join(toDir, "entries")
	if err := os.MkdirAll(entriesDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderBookIndexMarkdown(entries)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	written := []string{indexPath}
	for _, e := range entries {
		if e == nil {
			continue
		}
		md, err := RenderEntryMarkdown(e)
		if err != nil {
			return WriteResult{}, err
		}
		p := filepath.Join(entriesDir, e.ID+".md")
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}
	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
