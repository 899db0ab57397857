package article

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/readview/internal/catalog"
	"github.com/kyaoi/readview/internal/settings"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestParseFrontMatter(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: Hello\nauthor: Ann\n---\n\nBody text\n"))
	require.NoError(t, err)
	assert.Equal(t, "Hello", doc.Title())
	assert.Equal(t, "Ann", doc.Meta.Author)
	assert.Contains(t, doc.Body, "Body text")
	assert.NotContains(t, doc.Body, "title:")
}

func TestParseWithoutFrontMatter(t *testing.T) {
	doc, err := Parse([]byte("# Heading\n\ntext\n"))
	require.NoError(t, err)
	assert.Equal(t, "Heading", doc.Title())
	assert.Empty(t, doc.Meta)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")
	require.NoError(t, os.WriteFile(path, []byte("no heading here\n"), 0o600))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "note.md", doc.Title())

	_, err = Load(filepath.Join(t.TempDir(), "missing.md"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSample(t *testing.T) {
	doc := Sample()
	assert.Equal(t, "Reading in the terminal", doc.Title())
	assert.Equal(t, "2024-03-01", doc.Meta.Date)
}

func TestColumns(t *testing.T) {
	wide := settings.Default()
	assert.Equal(t, 1394/pxPerColumn, Columns(wide, 200))
	assert.Equal(t, 80, Columns(wide, 80))
	assert.Equal(t, minColumns, Columns(wide, 5))

	narrow, err := wide.With(settings.ContentWidth, catalog.ContentWidths.At(1))
	require.NoError(t, err)
	assert.Equal(t, 948/pxPerColumn, Columns(narrow, 200))
}

func TestEmphasis(t *testing.T) {
	for _, tc := range []struct {
		value   string
		bold    bool
		spacing int
	}{
		{"18px", false, 0},
		{"25px", true, 0},
		{"38px", true, 1},
	} {
		opt, ok := catalog.FontSizes.ByValue(tc.value)
		require.True(t, ok)
		s, err := settings.Default().With(settings.FontSize, opt)
		require.NoError(t, err)
		bold, spacing := Emphasis(s)
		assert.Equal(t, tc.bold, bold, tc.value)
		assert.Equal(t, tc.spacing, spacing, tc.value)
	}
}

func TestRenderWrapsToColumns(t *testing.T) {
	var r Renderer
	narrow, err := settings.Default().With(settings.ContentWidth, catalog.ContentWidths.At(1))
	require.NoError(t, err)

	out, err := r.Render(Sample(), narrow, 200)
	require.NoError(t, err)
	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Line length")
	for _, line := range strings.Split(plain, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), Columns(narrow, 200))
	}
}

func TestRenderDoubleSpacing(t *testing.T) {
	var r Renderer
	doc := Document{Body: "one\n\ntwo\n"}
	normal, err := r.Render(doc, settings.Default(), 60)
	require.NoError(t, err)

	big, _ := catalog.FontSizes.ByValue("38px")
	s, err := settings.Default().With(settings.FontSize, big)
	require.NoError(t, err)
	spaced, err := r.Render(doc, s, 60)
	require.NoError(t, err)

	assert.Greater(t, strings.Count(spaced, "\n"), strings.Count(normal, "\n"))
}

func TestExportHTML(t *testing.T) {
	arial, _ := catalog.FontFamilies.ByValue("arial")
	s, err := settings.Default().With(settings.FontFamily, arial)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportHTML(&buf, Sample(), s))
	html := buf.String()
	assert.Contains(t, html, "<title>Reading in the terminal</title>")
	assert.Contains(t, html, "--font-family: Arial, sans-serif;")
	assert.Contains(t, html, "--container-width: 1394px;")
	assert.Contains(t, html, `<h2 id="line-length">Line length</h2>`)
	assert.Contains(t, html, "<em>readview · 2024-03-01</em>")
}

func TestExportRejectsInvalidSettings(t *testing.T) {
	var buf bytes.Buffer
	err := ExportHTML(&buf, Sample(), settings.State{})
	require.ErrorIs(t, err, settings.ErrNotInCatalog)
	assert.Zero(t, buf.Len())
}
