package mock

import (
	"context"

	"github.com/fwojciec/aipage"
)

var _ aipage.Workspace = (*Workspace)(nil)

// Workspace is a mock implementation of aipage.Workspace.
type Workspace struct {
	ReadFileFn func(ctx context.Context, path string) (string, error)
	ListDirFn  func(ctx context.Context, path string) ([]aipage.DirEntry, error)
	ExecFn     func(ctx context.Context, argv []string) (*aipage.ExecResult, error)
}

func (w *Workspace) ReadFile(ctx context.Context, path string) (string, error) {
	return w.ReadFileFn(ctx, path)
}

func (w *Workspace) ListDir(ctx context.Context, path string) ([]aipage.DirEntry, error) {
	return w.ListDirFn(ctx, path)
}

func (w *Workspace) Exec(ctx context.Context, argv []string) (*aipage.ExecResult, error) {
	return w.ExecFn(ctx, argv)
}
