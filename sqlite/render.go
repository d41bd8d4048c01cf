package sqlite

import (
	"html"
	"strings"

	"github.com/fwojciec/aipage"
)

// AppElementID is the id of the element the markup fragment is attached to.
const AppElementID = "app"

// RenderDocument builds the full HTML document for a page. With
// serverRender the markup is placed inside the app element; otherwise it
// is shipped in a template element for the client to attach.
func RenderDocument(page *aipage.Page, serverRender bool) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>")
	b.WriteString(html.EscapeString(page.Title))
	b.WriteString("</title>\n")
	if page.Style != "" {
		b.WriteString("<style>\n")
		b.WriteString(page.Style)
		b.WriteString("\n</style>\n")
	}
	b.WriteString("</head>\n<body>\n")
	if serverRender {
		b.WriteString("<div id=\"" + AppElementID + "\">\n")
		b.WriteString(page.Markup)
		b.WriteString("\n</div>\n")
	} else {
		b.WriteString("<div id=\"" + AppElementID + "\"></div>\n")
		b.WriteString("<template id=\"" + AppElementID + "-markup\">\n")
		b.WriteString(page.Markup)
		b.WriteString("\n</template>\n")
	}
	if page.Script != "" {
		b.WriteString("<script>\n")
		b.WriteString(page.Script)
		b.WriteString("\n</script>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
