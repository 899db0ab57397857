// Package catalog holds the fixed option tables the reader lets a user pick
// presentation settings from.
package catalog

import (
	"errors"
	"fmt"
)

// ErrUnknownValue is returned by lookups for a value the catalog does not list.
var ErrUnknownValue = errors.New("value not in catalog")

// Option is a single selectable entry. Options are only ever created by this
// package; callers copy them around by value.
type Option struct {
	Label      string
	Value      string
	StyleValue string
}

// Catalog is an ordered, immutable list of options with one default entry.
type Catalog struct {
	name     string
	options  []Option
	defaultI int
}

func newCatalog(name string, defaultIndex int, options ...Option) *Catalog {
	if defaultIndex < 0 || defaultIndex >= len(options) {
		panic("catalog: default index out of range for " + name)
	}
	return &Catalog{name: name, options: options, defaultI: defaultIndex}
}

// Name returns the catalog's identifier.
func (c *Catalog) Name() string {
	return c.name
}

// Options returns a copy of the entries in display order.
func (c *Catalog) Options() []Option {
	out := make([]Option, len(c.options))
	copy(out, c.options)
	return out
}

// Len reports the number of entries.
func (c *Catalog) Len() int {
	return len(c.options)
}

// Default returns the designated default entry.
func (c *Catalog) Default() Option {
	return c.options[c.defaultI]
}

// Contains reports whether opt is one of the catalog's entries.
func (c *Catalog) Contains(opt Option) bool {
	return c.Index(opt) >= 0
}

// Index returns the position of opt, or -1.
func (c *Catalog) Index(opt Option) int {
	for i, candidate := range c.options {
		if candidate == opt {
			return i
		}
	}
	return -1
}

// ByValue looks an entry up by its raw value.
func (c *Catalog) ByValue(value string) (Option, bool) {
	for _, candidate := range c.options {
		if candidate.Value == value {
			return candidate, true
		}
	}
	return Option{}, false
}

// Lookup is ByValue with an error for callers that take values from users.
func (c *Catalog) Lookup(value string) (Option, error) {
	opt, ok := c.ByValue(value)
	if !ok {
		return Option{}, fmt.Errorf("%s %q: %w", c.name, value, ErrUnknownValue)
	}
	return opt, nil
}

// At returns the entry at position i, wrapping around in both directions.
func (c *Catalog) At(i int) Option {
	n := len(c.options)
	return c.options[((i%n)+n)%n]
}

// Next returns the entry after opt, wrapping at the end. Unknown options
// resolve to the default.
func (c *Catalog) Next(opt Option) Option {
	i := c.Index(opt)
	if i < 0 {
		return c.Default()
	}
	return c.At(i + 1)
}

// Prev returns the entry before opt, wrapping at the start.
func (c *Catalog) Prev(opt Option) Option {
	i := c.Index(opt)
	if i < 0 {
		return c.Default()
	}
	return c.At(i - 1)
}
