package aipage

import (
	"regexp"
	"strings"
)

// Extraction is deliberately pattern based: generated documents are often
// not well formed, and a missing element degrades to a fallback instead of
// a parse error.
var (
	styleBlockRe  = regexp.MustCompile(`(?is)<style\b[^>]*>(.*?)</style\s*>`)
	scriptBlockRe = regexp.MustCompile(`(?is)<script\b[^>]*>(.*?)</script\s*>`)
	bodyRe        = regexp.MustCompile(`(?is)<body\b[^>]*>(.*)</body\s*>`)
	headRe        = regexp.MustCompile(`(?is)<head\b[^>]*>(.*?)</head\s*>`)
)

// Embedded holds the inline style and script text of a document.
type Embedded struct {
	Style  string
	Script string
}

// ExtractEmbedded returns the inner text of every inline <style> and
// <script> block, each kind newline-joined in source order. Scripts that
// only reference an external src contribute nothing.
func ExtractEmbedded(html string) Embedded {
	return Embedded{
		Style:  joinBlocks(styleBlockRe, html),
		Script: joinBlocks(scriptBlockRe, html),
	}
}

func joinBlocks(re *regexp.Regexp, html string) string {
	matches := re.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		return ""
	}

	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		inner := strings.TrimSpace(m[1])
		if inner == "" {
			continue
		}
		parts = append(parts, inner)
	}
	return strings.Join(parts, "\n")
}

// ExtractBodyFragment returns the body content of a document with all
// style and script blocks removed. Without body tags the whole document
// is used.
func ExtractBodyFragment(html string) string {
	content := html
	if m := bodyRe.FindStringSubmatch(html); m != nil {
		content = m[1]
	}
	content = styleBlockRe.ReplaceAllString(content, "")
	content = scriptBlockRe.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}

// ExtractHead returns the content between the head tags.
// The second return value is false if the document has no head section.
func ExtractHead(html string) (string, bool) {
	m := headRe.FindStringSubmatch(html)
	if m == nil {
		return "", false
	}
	return m[1], true
}
