package panel

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyaoi/readview/internal/catalog"
	"github.com/kyaoi/readview/internal/outside"
	"github.com/kyaoi/readview/internal/settings"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// owner stands in for the root coordinator.
type owner struct {
	toggles   int
	committed settings.State
	applied   int
}

func newOwner() *owner {
	return &owner{committed: settings.Default()}
}

func (o *owner) props() Props {
	return Props{
		OnToggle: func() { o.toggles++ },
		OnChangeState: func(s settings.State) {
			o.applied++
			o.committed = s
		},
	}
}

func newPanel(t *testing.T) (*Model, *owner, *outside.Hub) {
	t.Helper()
	hub := outside.NewHub()
	o := newOwner()
	p := New(hub, o.props())
	p.SetBounds(outside.Rect{X: 0, Y: 0, W: p.Width(), H: 30})
	return p, o, hub
}

func keyRune(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestSelectThenSubmitChangesOneField(t *testing.T) {
	for _, field := range settings.Fields() {
		for _, opt := range field.Catalog().Options() {
			p, o, _ := newPanel(t)
			require.NoError(t, p.Select(field, opt))
			assert.Equal(t, settings.Default(), o.committed, "select must not commit")

			p.Submit()
			assert.Equal(t, opt, o.committed.Get(field))
			for _, other := range settings.Fields() {
				if other != field {
					assert.Equal(t, settings.Default().Get(other), o.committed.Get(other))
				}
			}
		}
	}
}

func TestSelectRejectsForeignOption(t *testing.T) {
	p, _, _ := newPanel(t)
	before := p.Draft()
	err := p.Select(settings.FontColor, catalog.Option{Label: "Teal", Value: "#008080", StyleValue: "#008080"})
	require.ErrorIs(t, err, settings.ErrNotInCatalog)
	assert.Equal(t, before, p.Draft())
}

func TestResetAppliesDefaultsEagerly(t *testing.T) {
	p, o, _ := newPanel(t)
	narrow, ok := catalog.ContentWidths.ByValue("narrow")
	require.True(t, ok)
	big, ok := catalog.FontSizes.ByValue("38px")
	require.True(t, ok)

	require.NoError(t, p.Select(settings.ContentWidth, narrow))
	p.Submit()
	require.NoError(t, p.Select(settings.FontSize, big))

	p.Reset()
	assert.Equal(t, settings.Default(), o.committed)
	assert.Equal(t, settings.Default(), p.Draft())
	assert.Equal(t, 2, o.applied)
}

func TestArialScenario(t *testing.T) {
	p, o, _ := newPanel(t)
	before := o.committed.Vars()
	arial, ok := catalog.FontFamilies.ByValue("arial")
	require.True(t, ok)

	require.NoError(t, p.Select(settings.FontFamily, arial))
	p.Submit()

	after := o.committed.Vars()
	for i := range after {
		if after[i].Name == "--font-family" {
			assert.Equal(t, arial.StyleValue, after[i].Value)
			continue
		}
		assert.Equal(t, before[i], after[i])
	}
}

func TestDetectorFollowsOpenState(t *testing.T) {
	p, o, hub := newPanel(t)

	hub.Dispatch(outside.PointerEvent{X: 100, Y: 2})
	assert.Equal(t, 0, o.toggles, "closed panel must not react")

	p.SetOpen(true)
	hub.Dispatch(outside.PointerEvent{X: 3, Y: 3})
	assert.Equal(t, 0, o.toggles, "press inside the panel")

	hub.Dispatch(outside.PointerEvent{X: 100, Y: 2})
	assert.Equal(t, 1, o.toggles, "press outside the panel")

	p.SetOpen(false)
	hub.Dispatch(outside.PointerEvent{X: 100, Y: 2})
	assert.Equal(t, 1, o.toggles)
	assert.Equal(t, 0, hub.Len())
}

func TestRapidToggleSubscribesOnce(t *testing.T) {
	p, o, hub := newPanel(t)
	p.SetOpen(true)
	p.SetOpen(false)
	p.SetOpen(true)
	require.Equal(t, 1, hub.Len())

	hub.Dispatch(outside.PointerEvent{X: 100, Y: 2})
	assert.Equal(t, 1, o.toggles)
}

func TestCloseTearsDownDetector(t *testing.T) {
	p, o, hub := newPanel(t)
	p.SetOpen(true)
	p.Close()
	assert.False(t, p.IsOpen())
	assert.Equal(t, 0, hub.Len())

	hub.Dispatch(outside.PointerEvent{X: 100, Y: 2})
	assert.Equal(t, 0, o.toggles)
}

func TestDraftSurvivesClosing(t *testing.T) {
	p, o, _ := newPanel(t)
	p.SetOpen(true)
	blue, ok := catalog.BackgroundColors.ByValue("#6FC1FD")
	require.True(t, ok)
	require.NoError(t, p.Select(settings.BackgroundColor, blue))

	p.SetOpen(false)
	p.SetOpen(true)
	assert.Equal(t, blue, p.Draft().Get(settings.BackgroundColor))
	assert.Contains(t, p.View(), "Blue")
	assert.Equal(t, settings.Default(), o.committed)
}

func TestKeyboard(t *testing.T) {
	p, o, _ := newPanel(t)
	assert.False(t, p.HandleKey(keyRune("l")), "closed panel ignores keys")

	p.SetOpen(true)
	require.True(t, p.HandleKey(tea.KeyMsg{Type: tea.KeyRight}))
	assert.Equal(t, catalog.FontFamilies.At(1), p.Draft().Get(settings.FontFamily))

	require.True(t, p.HandleKey(tea.KeyMsg{Type: tea.KeyDown}))
	require.True(t, p.HandleKey(keyRune("h")))
	assert.Equal(t, catalog.FontSizes.At(-1), p.Draft().Get(settings.FontSize))

	require.True(t, p.HandleKey(keyRune("a")))
	assert.Equal(t, p.Draft(), o.committed)

	require.True(t, p.HandleKey(keyRune("r")))
	assert.Equal(t, settings.Default(), o.committed)

	require.True(t, p.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.Equal(t, 1, o.toggles)

	assert.False(t, p.HandleKey(keyRune("z")))
}

func TestKeyboardActions(t *testing.T) {
	p, o, _ := newPanel(t)
	p.SetOpen(true)
	require.NoError(t, p.Select(settings.FontColor, catalog.FontColors.At(3)))

	// up from the first field wraps to Apply
	require.True(t, p.HandleKey(tea.KeyMsg{Type: tea.KeyUp}))
	require.True(t, p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, catalog.FontColors.At(3), o.committed.Get(settings.FontColor))

	require.True(t, p.HandleKey(tea.KeyMsg{Type: tea.KeyLeft}))
	require.True(t, p.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, settings.Default(), o.committed)
	assert.Equal(t, settings.Default(), p.Draft())
}

// Row positions in the rendered form: title, blank, then label/control/blank
// per field with a separator pair before the background color.
const (
	fontFamilyRow = 3
	fontSizeRow   = 6
	actionsRow    = 19
)

func TestMouse(t *testing.T) {
	p, o, _ := newPanel(t)
	assert.False(t, p.HandleClick(5, fontFamilyRow), "closed panel ignores clicks")

	p.SetOpen(true)
	require.True(t, p.HandleClick(10, fontFamilyRow))
	assert.Equal(t, catalog.FontFamilies.At(1), p.Draft().Get(settings.FontFamily))
	require.True(t, p.HandleClick(1, fontFamilyRow))
	assert.Equal(t, catalog.FontFamilies.Default(), p.Draft().Get(settings.FontFamily))

	// second button of the size group: " 25px " spans content x 7..12
	require.True(t, p.HandleClick(1+9, fontSizeRow))
	assert.Equal(t, "25px", p.Draft().Get(settings.FontSize).Value)

	// Apply sits flush right
	require.True(t, p.HandleClick(1+ContentWidth-2, actionsRow))
	assert.Equal(t, "25px", o.committed.Get(settings.FontSize).Value)

	require.True(t, p.HandleClick(1+2, actionsRow))
	assert.Equal(t, settings.Default(), o.committed)

	assert.False(t, p.HandleClick(5, 1), "blank line")
}

func TestViewLayout(t *testing.T) {
	p, _, _ := newPanel(t)
	assert.Empty(t, p.View())

	p.SetOpen(true)
	view := p.View()
	for _, want := range []string{"Article settings", "Open Sans", "18px", "25px", "38px", "Black", "White", "Wide", "Reset", "Apply", "─"} {
		assert.Contains(t, view, want)
	}
	assert.Equal(t, p.Width(), lipgloss.Width(view))
}
