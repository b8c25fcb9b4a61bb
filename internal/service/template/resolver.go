// Package template locates named template documents and harvests their
// inheritable font styles.
package template

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ninocam2680/slidegen-backend/internal/document"
	"github.com/ninocam2680/slidegen-backend/internal/infra/logger"
)

// Blank-deck page size, 16:9.
const (
	defaultPageWidth  = 10
	defaultPageHeight = 5.625
)

type Resolver struct {
	dir    string
	logger *logger.Logger

	// Injection points for tests; wired to the real container by default.
	open   func(path string) (document.Document, error)
	create func() document.Document
}

func NewResolver(dir string, log *logger.Logger) *Resolver {
	return &Resolver{
		dir:    dir,
		logger: log,
		open:   document.Open,
		create: document.New,
	}
}

// Resolve opens the template for a style identifier, purging any slides it
// ships with (templates are layout libraries, not decks). When no template
// matches, it synthesizes a blank 16:9 deck; that is a recoverable condition
// and never aborts the request. The returned bool reports whether a template
// was used.
func (r *Resolver) Resolve(style string) (document.Document, bool, error) {
	path := r.templatePath(style)
	if path == "" {
		if style != "" {
			r.logger.Warn("template not found, using blank deck", "style", style)
		}
		return r.blankDeck(), false, nil
	}

	doc, err := r.open(path)
	if err != nil {
		// An unreadable template degrades like a missing one.
		r.logger.Warn("failed to open template, using blank deck", "path", path, "error", err)
		return r.blankDeck(), false, nil
	}

	for _, s := range doc.Slides() {
		if err := doc.RemoveSlide(s); err != nil {
			r.logger.Warn("failed to purge template slide", "path", path, "error", err)
		}
	}

	r.logger.Info("template resolved", "style", style, "path", path)
	return doc, true, nil
}

func (r *Resolver) blankDeck() document.Document {
	doc := r.create()
	doc.SetPageSize(defaultPageWidth, defaultPageHeight)
	return doc
}

// templatePath maps a style identifier to <dir>/<style>.pptx,
// case-insensitively. Empty result means no template matched.
func (r *Resolver) templatePath(style string) string {
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		return ""
	}
	want := style + ".pptx"

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(e.Name(), want) {
			return filepath.Join(r.dir, e.Name())
		}
	}
	return ""
}
