// Package goquery implements HTML inspection helpers on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/aipage"
)

// DefaultFontProviders are the web-font hosts whose stylesheet links are
// converted into @import directives.
var DefaultFontProviders = []string{
	"fonts.googleapis.com",
	"fonts.bunny.net",
	"api.fontshare.com",
	"use.typekit.net",
}

// Ensure FontResolver implements aipage.FontResolver at compile time.
var _ aipage.FontResolver = (*FontResolver)(nil)

// FontResolver finds web-font stylesheet links in a document head.
// Published pages only carry a body fragment and a stylesheet, so fonts
// linked from the head would otherwise be lost.
type FontResolver struct {
	providers []string
}

// Option configures a FontResolver.
type Option func(*FontResolver)

// WithProviders replaces the list of recognized web-font hosts.
func WithProviders(hosts ...string) Option {
	return func(r *FontResolver) {
		r.providers = hosts
	}
}

// NewFontResolver creates a new FontResolver.
func NewFontResolver(opts ...Option) *FontResolver {
	r := &FontResolver{
		providers: DefaultFontProviders,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveFontImports returns one @import directive per web-font stylesheet
// link in the head, newline-joined in document order. Duplicates are kept.
// Returns "" when the document has no head section.
func (r *FontResolver) ResolveFontImports(html string) string {
	head, ok := aipage.ExtractHead(html)
	if !ok {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(head))
	if err != nil {
		return ""
	}

	var imports []string
	doc.Find("link[href]").Each(func(_ int, sel *goquery.Selection) {
		if !isStylesheet(sel.AttrOr("rel", "")) {
			return
		}
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if !r.isFontProvider(href) {
			return
		}
		imports = append(imports, "@import url('"+href+"');")
	})

	return strings.Join(imports, "\n")
}

// isStylesheet checks whether a rel attribute lists "stylesheet".
func isStylesheet(rel string) bool {
	for _, token := range strings.Fields(strings.ToLower(rel)) {
		if token == "stylesheet" {
			return true
		}
	}
	return false
}

// isFontProvider checks whether href points at a known web-font host.
// Subdomains of a provider host do not match.
func (r *FontResolver) isFontProvider(href string) bool {
	u, err := url.Parse(href)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, provider := range r.providers {
		if host == provider {
			return true
		}
	}
	return false
}
