// Package fs provides file-system backed collaborators: a conversation
// workspace rooted at a local directory and an exporter for compiled pages.
package fs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fwojciec/aipage"
)

// Ensure Workspace implements aipage.Workspace at compile time.
var _ aipage.Workspace = (*Workspace)(nil)

// Workspace is a conversation workspace rooted at a local directory.
// All paths are relative to the root and may not escape it.
type Workspace struct {
	root string
}

// NewWorkspace creates a Workspace rooted at dir.
func NewWorkspace(dir string) *Workspace {
	return &Workspace{root: dir}
}

// ConversationWorkspace returns the workspace of a conversation below
// baseDir. Each conversation owns the directory named after its ID.
func ConversationWorkspace(baseDir, conversationID string) *Workspace {
	return NewWorkspace(filepath.Join(baseDir, conversationID))
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

// resolve maps a workspace-relative path to a path on disk.
func (w *Workspace) resolve(path string) (string, error) {
	local := filepath.FromSlash(path)
	if !filepath.IsLocal(local) {
		return "", aipage.Errorf(aipage.EINVALID, "path %q escapes workspace", path)
	}
	return filepath.Join(w.root, local), nil
}

// ReadFile returns the content of the file at path, or ENOTFOUND.
func (w *Workspace) ReadFile(ctx context.Context, path string) (string, error) {
	full, err := w.resolve(path)
	if err != nil {
		return "", err
	}

	b, err := os.ReadFile(full)
	if errors.Is(err, os.ErrNotExist) {
		return "", aipage.Errorf(aipage.ENOTFOUND, "file %q not found", path)
	} else if err != nil {
		return "", err
	}
	return string(b), nil
}

// ListDir returns the entries of the directory at path, or ENOTFOUND.
func (w *Workspace) ListDir(ctx context.Context, path string) ([]aipage.DirEntry, error) {
	full, err := w.resolve(path)
	if err != nil {
		return nil, err
	}

	dirEntries, err := os.ReadDir(full)
	if errors.Is(err, os.ErrNotExist) {
		return nil, aipage.Errorf(aipage.ENOTFOUND, "directory %q not found", path)
	} else if err != nil {
		return nil, err
	}

	entries := make([]aipage.DirEntry, 0, len(dirEntries))
	for _, e := range dirEntries {
		entries = append(entries, aipage.DirEntry{Name: e.Name(), IsDir: e.IsDir()})
	}
	return entries, nil
}

// Exec runs argv with the workspace root as working directory.
// A command that runs and exits non-zero is not an error; its exit code
// and output are returned in the result.
func (w *Workspace) Exec(ctx context.Context, argv []string) (*aipage.ExecResult, error) {
	if len(argv) == 0 {
		return nil, aipage.Errorf(aipage.EINVALID, "command required")
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = w.root
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, err
	}

	return &aipage.ExecResult{
		ExitCode: cmd.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}
