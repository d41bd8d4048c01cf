package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/aipage"
)

// Compile-time interface verification.
var (
	_ aipage.Reconciler = (*LoggingReconciler)(nil)
	_ aipage.Publisher  = (*LoggingPublisher)(nil)
)

// LoggingReconciler wraps a Reconciler with logging.
type LoggingReconciler struct {
	next   aipage.Reconciler
	logger *slog.Logger
}

// NewLoggingReconciler creates a new LoggingReconciler.
func NewLoggingReconciler(next aipage.Reconciler, logger *slog.Logger) *LoggingReconciler {
	return &LoggingReconciler{next: next, logger: logger}
}

// Reconcile delegates to the wrapped reconciler and logs the sizes of the
// normalized parts.
func (r *LoggingReconciler) Reconcile(ctx context.Context, ws aipage.Workspace) (src *aipage.Source, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if src != nil {
			attrs = append(attrs,
				"markup_bytes", len(src.Markup),
				"style_bytes", len(src.Style),
				"script_bytes", len(src.Script),
			)
		}
		r.logger.Info("reconcile", attrs...)
	}(time.Now())
	return r.next.Reconcile(ctx, ws)
}

// LoggingPublisher wraps a Publisher with logging.
type LoggingPublisher struct {
	next   aipage.Publisher
	logger *slog.Logger
}

// NewLoggingPublisher creates a new LoggingPublisher.
func NewLoggingPublisher(next aipage.Publisher, logger *slog.Logger) *LoggingPublisher {
	return &LoggingPublisher{next: next, logger: logger}
}

// Publish delegates to the wrapped publisher and logs the outcome.
func (p *LoggingPublisher) Publish(ctx context.Context, identity aipage.Identity, source *aipage.Source) *aipage.Outcome {
	begin := time.Now()
	out := p.next.Publish(ctx, identity, source)
	p.log(ctx, "publish", out, time.Since(begin))
	return out
}

// Compile delegates to the wrapped publisher and logs the outcome.
func (p *LoggingPublisher) Compile(ctx context.Context, route string) *aipage.Outcome {
	begin := time.Now()
	out := p.next.Compile(ctx, route)
	p.log(ctx, "compile", out, time.Since(begin))
	return out
}

func (p *LoggingPublisher) log(ctx context.Context, msg string, out *aipage.Outcome, d time.Duration) {
	level := slog.LevelInfo
	if !out.Succeeded {
		level = slog.LevelWarn
	}
	p.logger.Log(ctx, level, msg,
		"route", out.Route,
		"ok", out.Succeeded,
		"duration", d,
		"err", out.Error,
	)
}
