// Package settings defines the presentation settings record and the style
// variables it emits.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kyaoi/readview/internal/catalog"
)

// ErrNotInCatalog is returned when an option does not belong to the catalog
// of the field it is assigned to.
var ErrNotInCatalog = errors.New("option not in catalog")

// Field names one adjustable property.
type Field int

const (
	FontFamily Field = iota
	FontSize
	FontColor
	BackgroundColor
	ContentWidth
)

// Fields lists every field in panel order.
func Fields() []Field {
	return []Field{FontFamily, FontSize, FontColor, BackgroundColor, ContentWidth}
}

func (f Field) String() string {
	switch f {
	case FontFamily:
		return "font family"
	case FontSize:
		return "font size"
	case FontColor:
		return "font color"
	case BackgroundColor:
		return "background color"
	case ContentWidth:
		return "content width"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Catalog returns the option table the field draws from.
func (f Field) Catalog() *catalog.Catalog {
	switch f {
	case FontFamily:
		return catalog.FontFamilies
	case FontSize:
		return catalog.FontSizes
	case FontColor:
		return catalog.FontColors
	case BackgroundColor:
		return catalog.BackgroundColors
	case ContentWidth:
		return catalog.ContentWidths
	default:
		return nil
	}
}

// Var returns the style variable name the field is published under.
func (f Field) Var() string {
	switch f {
	case FontFamily:
		return "--font-family"
	case FontSize:
		return "--font-size"
	case FontColor:
		return "--font-color"
	case BackgroundColor:
		return "--bg-color"
	case ContentWidth:
		return "--container-width"
	default:
		return ""
	}
}

// State is a complete settings record. It is a value type: every update goes
// through With and yields a new record.
type State struct {
	fontFamily      catalog.Option
	fontSize        catalog.Option
	fontColor       catalog.Option
	backgroundColor catalog.Option
	contentWidth    catalog.Option
}

// Default returns the record built from each catalog's default entry.
func Default() State {
	return State{
		fontFamily:      catalog.FontFamilies.Default(),
		fontSize:        catalog.FontSizes.Default(),
		fontColor:       catalog.FontColors.Default(),
		backgroundColor: catalog.BackgroundColors.Default(),
		contentWidth:    catalog.ContentWidths.Default(),
	}
}

// Get returns the option held in f.
func (s State) Get(f Field) catalog.Option {
	switch f {
	case FontFamily:
		return s.fontFamily
	case FontSize:
		return s.fontSize
	case FontColor:
		return s.fontColor
	case BackgroundColor:
		return s.backgroundColor
	case ContentWidth:
		return s.contentWidth
	default:
		return catalog.Option{}
	}
}

// With returns a copy of s with f set to opt. The receiver is never touched;
// on error the zero State is returned alongside it.
func (s State) With(f Field, opt catalog.Option) (State, error) {
	c := f.Catalog()
	if c == nil {
		return State{}, fmt.Errorf("unknown %v: %w", f, ErrNotInCatalog)
	}
	if !c.Contains(opt) {
		return State{}, fmt.Errorf("%v %q: %w", f, opt.Value, ErrNotInCatalog)
	}
	next := s
	switch f {
	case FontFamily:
		next.fontFamily = opt
	case FontSize:
		next.fontSize = opt
	case FontColor:
		next.fontColor = opt
	case BackgroundColor:
		next.backgroundColor = opt
	case ContentWidth:
		next.contentWidth = opt
	}
	return next, nil
}

// Validate reports the first field whose option is missing from its catalog.
// The zero State is invalid.
func (s State) Validate() error {
	for _, f := range Fields() {
		if opt := s.Get(f); !f.Catalog().Contains(opt) {
			return fmt.Errorf("%v %q: %w", f, opt.Value, ErrNotInCatalog)
		}
	}
	return nil
}

// Var is one emitted style variable.
type Var struct {
	Name  string
	Value string
}

// Vars returns the style variables for s in a stable order.
func (s State) Vars() []Var {
	order := []Field{FontFamily, FontSize, FontColor, ContentWidth, BackgroundColor}
	vars := make([]Var, 0, len(order))
	for _, f := range order {
		vars = append(vars, Var{Name: f.Var(), Value: s.Get(f).StyleValue})
	}
	return vars
}

// CSS renders the variables as an inline style declaration list.
func (s State) CSS() string {
	var b strings.Builder
	for i, v := range s.Vars() {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s: %s;", v.Name, v.Value)
	}
	return b.String()
}

// FromValues builds a record from raw option values, starting from defaults.
// Empty values keep the default.
func FromValues(values map[Field]string) (State, error) {
	s := Default()
	for _, f := range Fields() {
		raw := values[f]
		if raw == "" {
			continue
		}
		opt, err := f.Catalog().Lookup(raw)
		if err != nil {
			return State{}, fmt.Errorf("%v: %w (%v)", f, ErrNotInCatalog, err)
		}
		if s, err = s.With(f, opt); err != nil {
			return State{}, err
		}
	}
	return s, nil
}
