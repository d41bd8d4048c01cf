package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/aipage"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ aipage.PageService = (*PageService)(nil)
	_ aipage.PageFinder  = (*PageService)(nil)
)

// PageService implements aipage.PageService and aipage.PageFinder using SQLite.
type PageService struct {
	db *DB

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db, Now: time.Now}
}

const pageColumns = `id, application_id, template_id, route, title, markup, style, script,
	content_hash, compiled, compiled_hash, saved_at, compiled_at`

// queryer is satisfied by both *DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SavePageSource creates or overwrites the page source for req.Key.
// Only parts whose Persist flag is set are written; the previously
// compiled document is kept until the next compile.
func (s *PageService) SavePageSource(ctx context.Context, req *aipage.SaveRequest) error {
	if err := req.Key.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	page, err := findPage(ctx, tx, req.Key)
	if aipage.ErrorCode(err) == aipage.ENOTFOUND {
		page = &aipage.Page{
			ID:            uuid.New().String(),
			ApplicationID: req.Key.ApplicationID,
			TemplateID:    req.Key.TemplateID,
			Route:         req.Key.Route,
		}
	} else if err != nil {
		return err
	}

	p := req.Payload
	if p.Page.Persist {
		page.Markup = p.Page.Source
	}
	if p.Style.Persist {
		page.Style = p.Style.Source
	}
	if p.Script.Persist {
		page.Script = p.Script.Source
	}
	if p.Settings.Persist {
		page.Title = p.Settings.Title
	}
	page.ContentHash = hashContent(page.Title, page.Markup, page.Style, page.Script)
	page.SavedAt = s.Now().UTC()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pages (id, application_id, template_id, route, title, markup, style, script, content_hash, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (application_id, template_id, route) DO UPDATE SET
			title = excluded.title,
			markup = excluded.markup,
			style = excluded.style,
			script = excluded.script,
			content_hash = excluded.content_hash,
			saved_at = excluded.saved_at
	`, page.ID, page.ApplicationID, page.TemplateID, page.Route, page.Title,
		page.Markup, page.Style, page.Script, page.ContentHash, formatTime(page.SavedAt)); err != nil {
		return err
	}

	return tx.Commit()
}

// CompilePage renders the saved source into a full HTML document.
func (s *PageService) CompilePage(ctx context.Context, req *aipage.CompileRequest) error {
	if err := req.Key.Validate(); err != nil {
		return err
	}

	page, err := s.FindPage(ctx, req.Key)
	if err != nil {
		return err
	}

	compiled := RenderDocument(page, req.ServerRender)

	result, err := s.db.ExecContext(ctx, `
		UPDATE pages
		SET compiled = ?, compiled_hash = ?, server_rendered = ?, compiled_at = ?
		WHERE id = ? AND content_hash = ?
	`, compiled, hashContent(compiled), req.ServerRender, formatTime(s.Now()), page.ID, page.ContentHash)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return aipage.Errorf(aipage.EINTERNAL, "page %s changed during compile", req.Key.Route)
	}
	return nil
}

// FindPage retrieves the page stored under key.
func (s *PageService) FindPage(ctx context.Context, key aipage.PageKey) (*aipage.Page, error) {
	return findPage(ctx, s.db, key)
}

func findPage(ctx context.Context, q queryer, key aipage.PageKey) (*aipage.Page, error) {
	var page aipage.Page
	var savedAt, compiledAt string

	err := q.QueryRowContext(ctx, `
		SELECT `+pageColumns+`
		FROM pages
		WHERE application_id = ? AND template_id = ? AND route = ?
	`, key.ApplicationID, key.TemplateID, key.Route).Scan(&page.ID, &page.ApplicationID, &page.TemplateID,
		&page.Route, &page.Title, &page.Markup, &page.Style, &page.Script,
		&page.ContentHash, &page.Compiled, &page.CompiledHash, &savedAt, &compiledAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, aipage.Errorf(aipage.ENOTFOUND, "page %s not found", key.Route)
	}
	if err != nil {
		return nil, err
	}

	if page.SavedAt, err = parseRFC3339(savedAt, "saved_at"); err != nil {
		return nil, err
	}
	if page.CompiledAt, err = parseRFC3339(compiledAt, "compiled_at"); err != nil {
		return nil, err
	}

	return &page, nil
}
