package mock

import "github.com/fwojciec/aipage"

var _ aipage.Converter = (*Converter)(nil)

// Converter is a mock implementation of aipage.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
