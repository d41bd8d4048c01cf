package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/aipage"
)

// Ensure PageWriter implements aipage.PageWriter at compile time.
var _ aipage.PageWriter = (*PageWriter)(nil)

// PageWriter exports compiled pages as static files. Each write goes to a
// temporary file that is renamed over the target, so readers never see a
// partially written page and a re-export fully replaces the previous one.
type PageWriter struct {
	baseDir string
}

// NewPageWriter creates a PageWriter that writes below baseDir.
func NewPageWriter(baseDir string) *PageWriter {
	return &PageWriter{baseDir: baseDir}
}

// RouteToPath converts a page route to a relative file path.
// Example: /ai/conv-1 → ai/conv-1/index.html
func RouteToPath(route string) (string, error) {
	trimmed := strings.Trim(route, "/")
	if trimmed == "" {
		return "index.html", nil
	}

	rel := filepath.Join(filepath.FromSlash(trimmed), "index.html")
	if !filepath.IsLocal(rel) {
		return "", aipage.Errorf(aipage.EINVALID, "route %q escapes export directory", route)
	}
	return rel, nil
}

// WritePage writes the compiled page and returns the written file path.
func (w *PageWriter) WritePage(ctx context.Context, page *aipage.Page) (string, error) {
	if page.Compiled == "" {
		return "", aipage.Errorf(aipage.EINVALID, "page %s has not been compiled", page.Route)
	}

	relPath, err := RouteToPath(page.Route)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".index-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(page.Compiled); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
