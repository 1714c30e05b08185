package mock

import "github.com/ham-zax/distill"

var _ distill.Converter = (*Converter)(nil)

// Converter is a mock implementation of distill.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
