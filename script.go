package aipage

import (
	"regexp"
	"strings"
)

// Pages are published into a host that runs page scripts before the markup
// fragment is attached to the document. Scripts are therefore normalized
// into a named init function followed by an explicit call.

var (
	leadingCommentRe = regexp.MustCompile(`^(?:\s+|//[^\n]*|(?s:/\*.*?\*/))*`)
	initDefRe        = regexp.MustCompile(`^(?:async\s+)?function\s+(init|main)\s*\(`)
	initCallRe       = regexp.MustCompile(`(?:^|[^\w$.])(init|main)\s*\(\s*\)\s*;?$`)
)

// IsDeferred reports whether script already defines a top-level init or
// main function first and calls that same function last. A function that
// is defined but never called does not count.
func IsDeferred(script string) bool {
	trimmed := strings.TrimSpace(script)
	body := leadingCommentRe.ReplaceAllString(trimmed, "")

	def := initDefRe.FindStringSubmatch(body)
	if def == nil {
		return false
	}
	call := initCallRe.FindStringSubmatch(trimmed)
	if call == nil {
		return false
	}
	return def[1] == call[1]
}

// WrapForDeferredInit wraps script in function init() { ... } init();
// unless it is already in that form. Wrapping is idempotent.
func WrapForDeferredInit(script string) string {
	trimmed := strings.TrimSpace(script)
	if trimmed == "" {
		return ""
	}
	if IsDeferred(trimmed) {
		return script
	}
	return "function init() {\n" + trimmed + "\n}\ninit();"
}
