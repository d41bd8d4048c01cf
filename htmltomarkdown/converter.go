// Package htmltomarkdown renders published page markup as Markdown for
// terminal previews.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/aipage"
)

// Ensure Converter implements aipage.Converter at compile time.
var _ aipage.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert page markup to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms a markup fragment into Markdown. Pages made only of
// interactive elements (a canvas, empty containers) convert to "".
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", aipage.Errorf(aipage.EINVALID, "converting markup: %v", err)
	}

	return strings.TrimSpace(result), nil
}
