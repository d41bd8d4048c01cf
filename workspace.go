package aipage

import "context"

// DirEntry is a single entry returned by Workspace.ListDir.
type DirEntry struct {
	Name  string
	IsDir bool
}

// ExecResult holds the result of a command run in a workspace.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Workspace is the execution environment holding one conversation's files.
// Paths are relative to the workspace root.
type Workspace interface {
	// ReadFile returns the file content.
	// Returns ENOTFOUND if the file does not exist.
	ReadFile(ctx context.Context, path string) (string, error)

	// ListDir returns the entries of a directory.
	// Returns ENOTFOUND if the directory does not exist.
	ListDir(ctx context.Context, path string) ([]DirEntry, error)

	// Exec runs argv in the workspace root. A non-zero exit code is
	// reported in the result, not as an error.
	Exec(ctx context.Context, argv []string) (*ExecResult, error)
}
