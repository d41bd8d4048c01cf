package aipage

import (
	"context"
	"strings"
	"time"
)

// RouteNamespace is the first path segment of every published route.
const RouteNamespace = "ai"

// DefaultTitle is used when a page is published without a title.
const DefaultTitle = "AI Generated Page"

// RouteFor returns the published route for a conversation ID.
// The same ID always yields the same route, so re-publishing overwrites.
func RouteFor(id string) string {
	return "/" + RouteNamespace + "/" + id
}

// Bundle holds the raw artifacts read from a workspace.
// Style and Script are empty when no dedicated file was found; the
// combined markup document is then the fallback source for them.
type Bundle struct {
	Markup string
	Style  string
	Script string
}

// Source is the canonical page representation produced by reconciliation.
// Markup is a body fragment without style or script blocks, Style holds no
// <style> tags, and Script is always in deferred-initialization form.
type Source struct {
	Markup string `json:"markup"`
	Style  string `json:"style"`
	Script string `json:"script"`
}

// Identity addresses a published page.
type Identity struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Validate returns an error if the identity cannot be turned into a route.
func (i *Identity) Validate() error {
	if i.ID == "" {
		return Errorf(EINVALID, "page ID required")
	}
	if strings.Contains(i.ID, "/") {
		return Errorf(EINVALID, "page ID %q must not contain '/'", i.ID)
	}
	if i.ID == "." || i.ID == ".." {
		return Errorf(EINVALID, "page ID %q is reserved", i.ID)
	}
	return nil
}

// Route returns the deterministic route for the identity.
func (i *Identity) Route() string {
	return RouteFor(i.ID)
}

// DisplayTitle returns the title, falling back to DefaultTitle.
func (i *Identity) DisplayTitle() string {
	if strings.TrimSpace(i.Title) == "" {
		return DefaultTitle
	}
	return i.Title
}

// Outcome is the result of a single publish or compile attempt.
// Failures are reported here rather than returned as errors.
type Outcome struct {
	Succeeded bool   `json:"succeeded"`
	Route     string `json:"route"`
	URL       string `json:"url"`
	Error     string `json:"error,omitempty"`
}

// Reconciler produces a canonical page source from a workspace.
type Reconciler interface {
	// Reconcile reads the artifacts in ws and normalizes them.
	// Returns ENOTFOUND when the workspace holds no usable artifacts.
	Reconcile(ctx context.Context, ws Workspace) (*Source, error)
}

// Publisher saves and compiles page sources.
type Publisher interface {
	// Publish creates or overwrites the page source at identity's route.
	Publish(ctx context.Context, identity Identity, source *Source) *Outcome

	// Compile server-renders the page at route.
	Compile(ctx context.Context, route string) *Outcome
}

// FontResolver turns web-font stylesheet links into CSS import directives.
type FontResolver interface {
	// ResolveFontImports returns newline-joined @import directives for the
	// web-font links found in the document head, or "" if there are none.
	ResolveFontImports(html string) string
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}

// Page is a stored page as returned by a PageFinder.
type Page struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"applicationId"`
	TemplateID    string    `json:"templateId"`
	Route         string    `json:"route"`
	Title         string    `json:"title"`
	Markup        string    `json:"markup"`
	Style         string    `json:"style"`
	Script        string    `json:"script"`
	ContentHash   string    `json:"contentHash"`
	Compiled      string    `json:"compiled"`
	CompiledHash  string    `json:"compiledHash"`
	SavedAt       time.Time `json:"savedAt"`
	CompiledAt    time.Time `json:"compiledAt"`
}

// PageFinder looks up stored pages.
type PageFinder interface {
	// FindPage retrieves the page stored under key.
	// Returns ENOTFOUND if no source was saved for the key.
	FindPage(ctx context.Context, key PageKey) (*Page, error)
}

// PageWriter exports compiled pages outside the storage service.
type PageWriter interface {
	// WritePage writes the compiled page and returns where it was written.
	// Returns EINVALID if the page has not been compiled.
	WritePage(ctx context.Context, page *Page) (string, error)
}
