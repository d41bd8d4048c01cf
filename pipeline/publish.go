package pipeline

import (
	"context"
	"strings"

	"github.com/fwojciec/aipage"
)

// Ensure Publisher implements aipage.Publisher at compile time.
var _ aipage.Publisher = (*Publisher)(nil)

// Publisher saves page sources to a page service and compiles them.
// Collaborator failures are reported in the returned outcome.
type Publisher struct {
	Pages         aipage.PageService
	ApplicationID string
	TemplateID    string

	// BaseURL is prefixed to routes to build page URLs.
	BaseURL string
}

// NewPublisher creates a new Publisher.
func NewPublisher(pages aipage.PageService, applicationID, templateID, baseURL string) *Publisher {
	return &Publisher{
		Pages:         pages,
		ApplicationID: applicationID,
		TemplateID:    templateID,
		BaseURL:       baseURL,
	}
}

// Publish creates or overwrites the page source at identity's route.
// Every part is persisted on each call, so a second publish to the same
// route leaves no trace of the first.
func (p *Publisher) Publish(ctx context.Context, identity aipage.Identity, source *aipage.Source) *aipage.Outcome {
	route := identity.Route()
	out := p.outcome(route)

	req := &aipage.SaveRequest{
		Key:     p.key(route),
		Payload: NewPayload(identity.DisplayTitle(), source),
	}
	if err := p.Pages.SavePageSource(ctx, req); err != nil {
		out.Error = aipage.ErrorMessage(err)
		return out
	}

	out.Succeeded = true
	return out
}

// Compile server-renders the page at route. A failed compile does not
// undo a previous publish.
func (p *Publisher) Compile(ctx context.Context, route string) *aipage.Outcome {
	out := p.outcome(route)

	req := &aipage.CompileRequest{
		Key:          p.key(route),
		ServerRender: true,
	}
	if err := p.Pages.CompilePage(ctx, req); err != nil {
		out.Error = aipage.ErrorMessage(err)
		return out
	}

	out.Succeeded = true
	return out
}

// URL returns the public URL of route.
func (p *Publisher) URL(route string) string {
	return strings.TrimSuffix(p.BaseURL, "/") + route
}

func (p *Publisher) key(route string) aipage.PageKey {
	return aipage.PageKey{
		ApplicationID: p.ApplicationID,
		TemplateID:    p.TemplateID,
		Route:         route,
	}
}

func (p *Publisher) outcome(route string) *aipage.Outcome {
	return &aipage.Outcome{
		Route: route,
		URL:   p.URL(route),
	}
}

// NewPayload builds a source payload that persists every part.
func NewPayload(title string, source *aipage.Source) aipage.SourcePayload {
	return aipage.SourcePayload{
		Page:     aipage.SourceFile{Source: source.Markup, Language: aipage.LanguageHTML, Persist: true},
		Style:    aipage.SourceFile{Source: source.Style, Language: aipage.LanguageCSS, Persist: true},
		Script:   aipage.SourceFile{Source: source.Script, Language: aipage.LanguageJavaScript, Persist: true},
		Settings: aipage.Settings{Title: title, Persist: true},
	}
}
