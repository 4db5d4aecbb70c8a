package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/guidebot-io/guidebot/internal/domain"
)

// Loader reads content documents from a directory tree.
type Loader struct {
	dir string
}

// NewLoader creates a Loader rooted at the given content directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// List walks the content tree and returns every document, sorted by slug.
// A document's slug is its relative path without the file extension, with
// segments joined by "/". A missing content directory yields no documents.
func (l *Loader) List() ([]*domain.Document, error) {
	var docs []*domain.Document

	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(d.Name())
		if ext != ".mdx" && ext != ".md" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(l.dir, path)
		if err != nil {
			return err
		}
		slug := strings.TrimSuffix(filepath.ToSlash(rel), ext)

		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		fm, body, err := ParseDocument(string(raw))
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		docs = append(docs, &domain.Document{
			Slug:        slug,
			Frontmatter: fm,
			Body:        body,
			ModTime:     info.ModTime(),
		})
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Slug < docs[j].Slug })
	return docs, nil
}
