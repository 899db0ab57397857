package article

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	styles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/kyaoi/readview/internal/settings"
)

const (
	// pxPerColumn converts --container-width into terminal columns.
	pxPerColumn  = 12
	minColumns   = 20
	boldFromPx   = 25
	spacedFromPx = 38
)

var bylineStyle = lipgloss.NewStyle().Italic(true)

// Renderer draws documents into terminal text. It keeps one glamour renderer
// per wrap width.
type Renderer struct {
	wrap int
	term *glamour.TermRenderer
}

// Columns maps the committed content width onto the available terminal width.
func Columns(s settings.State, available int) int {
	cols := pixels(s.Get(settings.ContentWidth).StyleValue) / pxPerColumn
	if cols <= 0 {
		cols = available
	}
	if available > 0 && cols > available {
		cols = available
	}
	return max(cols, minColumns)
}

// Emphasis maps --font-size onto what a terminal can show: bold text from
// 25px, plus an empty line after every line from 38px.
func Emphasis(s settings.State) (bold bool, spacing int) {
	px := pixels(s.Get(settings.FontSize).StyleValue)
	bold = px >= boldFromPx
	if px >= spacedFromPx {
		spacing = 1
	}
	return bold, spacing
}

// Render lays doc out in a column sized by s and colors it with the font and
// background variables. available is the width of the article pane.
func (r *Renderer) Render(doc Document, s settings.State, available int) (string, error) {
	cols := Columns(s, available)
	if err := r.ensure(cols); err != nil {
		return "", err
	}
	out, err := r.term.Render(doc.Body)
	if err != nil {
		return "", err
	}
	text := strings.Trim(ansi.Strip(out), "\n")

	var lines []string
	if byline := doc.byline(); byline != "" {
		lines = append(lines, "", "  "+bylineStyle.Render(byline))
	}
	bold, spacing := Emphasis(s)
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, strings.TrimRight(line, " "))
		for range spacing {
			lines = append(lines, "")
		}
	}

	style := lipgloss.NewStyle().
		Width(cols).
		Foreground(lipgloss.Color(s.Get(settings.FontColor).StyleValue)).
		Background(lipgloss.Color(s.Get(settings.BackgroundColor).StyleValue)).
		Bold(bold)
	return style.Render(strings.Join(lines, "\n")), nil
}

func (r *Renderer) ensure(cols int) error {
	if r.term != nil && r.wrap == cols {
		return nil
	}
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.NoTTYStyle),
		glamour.WithWordWrap(max(cols-4, 0)),
	)
	if err != nil {
		return err
	}
	r.term = term
	r.wrap = cols
	return nil
}

func (d Document) byline() string {
	switch {
	case d.Meta.Author != "" && d.Meta.Date != "":
		return d.Meta.Author + " · " + d.Meta.Date
	case d.Meta.Author != "":
		return d.Meta.Author
	default:
		return d.Meta.Date
	}
}

func pixels(v string) int {
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px"))
	if err != nil {
		return 0
	}
	return n
}
