package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/aipage"
)

// Ensure LoggingPageService implements aipage.PageService.
var _ aipage.PageService = (*LoggingPageService)(nil)

// LoggingPageService wraps a PageService with logging.
type LoggingPageService struct {
	next   aipage.PageService
	logger *slog.Logger
}

// NewLoggingPageService creates a new LoggingPageService.
func NewLoggingPageService(next aipage.PageService, logger *slog.Logger) *LoggingPageService {
	return &LoggingPageService{next: next, logger: logger}
}

// SavePageSource delegates to the wrapped service and logs the save.
func (s *LoggingPageService) SavePageSource(ctx context.Context, req *aipage.SaveRequest) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save page source",
			"app", req.Key.ApplicationID,
			"template", req.Key.TemplateID,
			"route", req.Key.Route,
			"markup_bytes", len(req.Payload.Page.Source),
			"style_bytes", len(req.Payload.Style.Source),
			"script_bytes", len(req.Payload.Script.Source),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SavePageSource(ctx, req)
}

// CompilePage delegates to the wrapped service and logs the compile.
func (s *LoggingPageService) CompilePage(ctx context.Context, req *aipage.CompileRequest) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("compile page",
			"app", req.Key.ApplicationID,
			"template", req.Key.TemplateID,
			"route", req.Key.Route,
			"ssr", req.ServerRender,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CompilePage(ctx, req)
}
