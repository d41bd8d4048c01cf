package mock

import (
	"context"

	"github.com/fwojciec/aipage"
)

// Compile-time interface verification.
var (
	_ aipage.PageService  = (*PageService)(nil)
	_ aipage.PageFinder   = (*PageFinder)(nil)
	_ aipage.PageWriter   = (*PageWriter)(nil)
	_ aipage.Publisher    = (*Publisher)(nil)
	_ aipage.Reconciler   = (*Reconciler)(nil)
	_ aipage.FontResolver = (*FontResolver)(nil)
)

// PageService is a mock implementation of aipage.PageService.
type PageService struct {
	SavePageSourceFn func(ctx context.Context, req *aipage.SaveRequest) error
	CompilePageFn    func(ctx context.Context, req *aipage.CompileRequest) error
}

func (s *PageService) SavePageSource(ctx context.Context, req *aipage.SaveRequest) error {
	return s.SavePageSourceFn(ctx, req)
}

func (s *PageService) CompilePage(ctx context.Context, req *aipage.CompileRequest) error {
	return s.CompilePageFn(ctx, req)
}

// PageFinder is a mock implementation of aipage.PageFinder.
type PageFinder struct {
	FindPageFn func(ctx context.Context, key aipage.PageKey) (*aipage.Page, error)
}

func (f *PageFinder) FindPage(ctx context.Context, key aipage.PageKey) (*aipage.Page, error) {
	return f.FindPageFn(ctx, key)
}

// PageWriter is a mock implementation of aipage.PageWriter.
type PageWriter struct {
	WritePageFn func(ctx context.Context, page *aipage.Page) (string, error)
}

func (w *PageWriter) WritePage(ctx context.Context, page *aipage.Page) (string, error) {
	return w.WritePageFn(ctx, page)
}

// Publisher is a mock implementation of aipage.Publisher.
type Publisher struct {
	PublishFn func(ctx context.Context, identity aipage.Identity, source *aipage.Source) *aipage.Outcome
	CompileFn func(ctx context.Context, route string) *aipage.Outcome
}

func (p *Publisher) Publish(ctx context.Context, identity aipage.Identity, source *aipage.Source) *aipage.Outcome {
	return p.PublishFn(ctx, identity, source)
}

func (p *Publisher) Compile(ctx context.Context, route string) *aipage.Outcome {
	return p.CompileFn(ctx, route)
}

// Reconciler is a mock implementation of aipage.Reconciler.
type Reconciler struct {
	ReconcileFn func(ctx context.Context, ws aipage.Workspace) (*aipage.Source, error)
}

func (r *Reconciler) Reconcile(ctx context.Context, ws aipage.Workspace) (*aipage.Source, error) {
	return r.ReconcileFn(ctx, ws)
}

// FontResolver is a mock implementation of aipage.FontResolver.
type FontResolver struct {
	ResolveFontImportsFn func(html string) string
}

func (r *FontResolver) ResolveFontImports(html string) string {
	return r.ResolveFontImportsFn(html)
}
