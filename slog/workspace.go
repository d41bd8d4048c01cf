// Package slog provides log/slog decorators for aipage collaborators.
package slog

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/aipage"
)

// Ensure LoggingWorkspace implements aipage.Workspace.
var _ aipage.Workspace = (*LoggingWorkspace)(nil)

// LoggingWorkspace wraps a Workspace with logging.
type LoggingWorkspace struct {
	next   aipage.Workspace
	logger *slog.Logger
}

// NewLoggingWorkspace creates a new LoggingWorkspace.
func NewLoggingWorkspace(next aipage.Workspace, logger *slog.Logger) *LoggingWorkspace {
	return &LoggingWorkspace{next: next, logger: logger}
}

// ReadFile delegates to the wrapped workspace and logs the read.
// Missing files are logged at debug level since probing for optional
// artifacts is expected.
func (w *LoggingWorkspace) ReadFile(ctx context.Context, path string) (content string, err error) {
	defer func(begin time.Time) {
		level := slog.LevelInfo
		if aipage.ErrorCode(err) == aipage.ENOTFOUND {
			level = slog.LevelDebug
		}
		w.logger.Log(ctx, level, "read file",
			"path", path,
			"bytes", len(content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.ReadFile(ctx, path)
}

// ListDir delegates to the wrapped workspace and logs the listing.
func (w *LoggingWorkspace) ListDir(ctx context.Context, path string) (entries []aipage.DirEntry, err error) {
	defer func(begin time.Time) {
		w.logger.Info("list dir",
			"path", path,
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.ListDir(ctx, path)
}

// Exec delegates to the wrapped workspace and logs the command and exit code.
func (w *LoggingWorkspace) Exec(ctx context.Context, argv []string) (res *aipage.ExecResult, err error) {
	defer func(begin time.Time) {
		exitCode := -1
		if res != nil {
			exitCode = res.ExitCode
		}
		w.logger.Info("exec",
			"cmd", strings.Join(argv, " "),
			"exit", exitCode,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.Exec(ctx, argv)
}
