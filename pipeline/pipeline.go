package pipeline

import (
	"context"
	"fmt"

	"github.com/fwojciec/aipage"
)

// Status is the overall result of a pipeline run.
type Status int

const (
	// StatusSkipped means the workspace held no artifacts. Callers invoking
	// the pipeline opportunistically can stay silent.
	StatusSkipped Status = iota

	// StatusPublished means the page source was saved. The compile step
	// may still have failed; see Result.Warning.
	StatusPublished

	// StatusFailed means no page was saved.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusPublished:
		return "published"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Result holds the outcome of one pipeline run.
type Result struct {
	Status  Status
	Route   string
	Source  *aipage.Source
	Publish *aipage.Outcome
	Compile *aipage.Outcome

	// Error explains a skipped or failed run.
	Error string
}

// URL returns the page URL for published runs, or "".
func (r *Result) URL() string {
	if r.Status != StatusPublished || r.Publish == nil {
		return ""
	}
	return r.Publish.URL
}

// Warning returns a message when the page was saved but not compiled.
func (r *Result) Warning() string {
	if r.Status != StatusPublished || r.Compile == nil || r.Compile.Succeeded {
		return ""
	}
	return "page saved but not rebuilt: " + r.Compile.Error
}

// Pipeline runs reconcile, publish and compile for one conversation.
type Pipeline struct {
	Reconciler aipage.Reconciler
	Publisher  aipage.Publisher
}

// Run publishes the artifacts in ws as the page addressed by identity.
// It never returns an error: every failure, including an unexpected panic
// in a collaborator, is reported in the result.
func (p *Pipeline) Run(ctx context.Context, ws aipage.Workspace, identity aipage.Identity) (result *Result) {
	route := identity.Route()

	defer func() {
		if v := recover(); v != nil {
			result = &Result{
				Status: StatusFailed,
				Route:  route,
				Error:  fmt.Sprintf("unexpected fault: %v", v),
			}
		}
	}()

	if err := identity.Validate(); err != nil {
		return &Result{Status: StatusFailed, Route: route, Error: aipage.ErrorMessage(err)}
	}

	source, err := p.Reconciler.Reconcile(ctx, ws)
	if aipage.ErrorCode(err) == aipage.ENOTFOUND {
		return &Result{Status: StatusSkipped, Route: route, Error: aipage.ErrorMessage(err)}
	} else if err != nil {
		return &Result{Status: StatusFailed, Route: route, Error: aipage.ErrorMessage(err)}
	}

	pub := p.Publisher.Publish(ctx, identity, source)
	if !pub.Succeeded {
		return &Result{Status: StatusFailed, Route: route, Source: source, Publish: pub, Error: pub.Error}
	}

	return &Result{
		Status:  StatusPublished,
		Route:   route,
		Source:  source,
		Publish: pub,
		Compile: p.Publisher.Compile(ctx, pub.Route),
	}
}
