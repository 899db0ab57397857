// Package panel implements the collapsible settings form. It keeps a draft
// copy of the settings and hands it to its owner on apply.
package panel

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kyaoi/readview/internal/catalog"
	"github.com/kyaoi/readview/internal/outside"
	"github.com/kyaoi/readview/internal/settings"
)

const (
	// ContentWidth is the inner width of the form in cells.
	ContentWidth = 32
	padLeft      = 1
)

var (
	borderColor = lipgloss.Color("#3b4261")
	focusColor  = lipgloss.Color("#7aa2f7")

	panelStyle = lipgloss.NewStyle().
			Padding(0, padLeft).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(borderColor)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c0caf5"))
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	labelFocus     = lipgloss.NewStyle().Foreground(focusColor).Bold(true)
	selectStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0caf5"))
	separatorStyle = lipgloss.NewStyle().Foreground(borderColor)
	radioStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	radioSelected  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1b26")).
			Background(focusColor).
			Bold(true)
	clearButton = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#c0caf5")).
			Background(lipgloss.Color("#414868"))
	applyButton = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#1a1b26")).
			Background(lipgloss.Color("#9ece6a")).
			Bold(true)
)

// focus targets past the five fields
const (
	focusReset = iota + 5
	focusApply
	focusCount
)

// Props are the owner's callbacks.
type Props struct {
	OnToggle      func()
	OnChangeState func(settings.State)
}

// Model is the settings panel. Its open state is set by the owner; the panel
// only keeps the draft and the focus position.
type Model struct {
	props    Props
	keys     KeyMap
	draft    settings.State
	open     bool
	focus    int
	height   int
	bounds   outside.Rect
	detector *outside.Detector
}

// New builds a closed panel whose draft starts from the defaults. The
// outside-press detector subscribes to hub only while the panel is open.
func New(hub *outside.Hub, props Props) *Model {
	m := &Model{
		props: props,
		keys:  DefaultKeyMap(),
		draft: settings.Default(),
	}
	m.detector = outside.NewDetector(hub, m.Bounds, m.requestToggle)
	return m
}

// Draft returns the uncommitted settings.
func (m *Model) Draft() settings.State {
	return m.draft
}

// IsOpen reports the last state set with SetOpen.
func (m *Model) IsOpen() bool {
	return m.open
}

// KeyMap exposes the bindings for help rendering.
func (m *Model) KeyMap() KeyMap {
	return m.keys
}

// SetOpen shows or hides the panel and attaches or detaches the outside
// press detector with it. The draft is kept either way.
func (m *Model) SetOpen(open bool) {
	m.open = open
	m.detector.SetActive(open)
}

// SetBounds sets the screen region that counts as inside the panel.
func (m *Model) SetBounds(r outside.Rect) {
	m.bounds = r
}

// Bounds returns the region set with SetBounds.
func (m *Model) Bounds() outside.Rect {
	return m.bounds
}

// SetHeight fixes the rendered height.
func (m *Model) SetHeight(h int) {
	m.height = h
}

// Width is the rendered width including padding and border.
func (m *Model) Width() int {
	return ContentWidth + panelStyle.GetHorizontalFrameSize()
}

// Close releases the detector. The panel must not be reopened afterwards.
func (m *Model) Close() {
	m.detector.Close()
	m.open = false
}

// Select replaces one draft field. Options from outside the field's catalog
// are rejected and leave the draft as it was.
func (m *Model) Select(field settings.Field, opt catalog.Option) error {
	next, err := m.draft.With(field, opt)
	if err != nil {
		slog.Warn("rejected settings option", "field", field.String(), "value", opt.Value, "error", err)
		return err
	}
	m.draft = next
	return nil
}

// Submit hands the draft to the owner.
func (m *Model) Submit() {
	slog.Info("applying settings", "css", m.draft.CSS())
	if m.props.OnChangeState != nil {
		m.props.OnChangeState(m.draft)
	}
}

// Reset restores the defaults in the draft and applies them at once.
func (m *Model) Reset() {
	m.draft = settings.Default()
	slog.Info("resetting settings")
	if m.props.OnChangeState != nil {
		m.props.OnChangeState(settings.Default())
	}
}

func (m *Model) requestToggle() {
	slog.Debug("outside press dismissed settings panel")
	if m.props.OnToggle != nil {
		m.props.OnToggle()
	}
}

// HandleKey processes a key press while open and reports whether it was
// consumed.
func (m *Model) HandleKey(msg tea.KeyMsg) bool {
	if !m.open {
		return false
	}
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.requestToggle()
	case key.Matches(msg, m.keys.Up):
		m.focus = (m.focus + focusCount - 1) % focusCount
	case key.Matches(msg, m.keys.Down):
		m.focus = (m.focus + 1) % focusCount
	case key.Matches(msg, m.keys.Prev):
		m.step(-1)
	case key.Matches(msg, m.keys.Next):
		m.step(1)
	case key.Matches(msg, m.keys.Enter):
		m.activate()
	case key.Matches(msg, m.keys.Apply):
		m.Submit()
	case key.Matches(msg, m.keys.Reset):
		m.Reset()
	default:
		return false
	}
	return true
}

// HandleClick processes a press at (x, y) relative to the panel's top-left
// corner and reports whether it hit a control.
func (m *Model) HandleClick(x, y int) bool {
	if !m.open {
		return false
	}
	_, zones := m.layout()
	x -= padLeft
	for _, z := range zones {
		if z.y == y && x >= z.x0 && x < z.x1 {
			m.focus = z.focus
			z.act()
			return true
		}
	}
	return false
}

func (m *Model) step(delta int) {
	switch {
	case m.focus < focusReset:
		m.cycle(settings.Fields()[m.focus], delta)
	case delta < 0:
		m.focus = focusReset
	default:
		m.focus = focusApply
	}
}

func (m *Model) activate() {
	switch m.focus {
	case focusReset:
		m.Reset()
	case focusApply:
		m.Submit()
	default:
		m.cycle(settings.Fields()[m.focus], 1)
	}
}

func (m *Model) cycle(field settings.Field, delta int) {
	c := field.Catalog()
	current := m.draft.Get(field)
	next := c.Next(current)
	if delta < 0 {
		next = c.Prev(current)
	}
	_ = m.Select(field, next)
}

// View renders the panel body. It returns an empty string while closed.
func (m *Model) View() string {
	if !m.open {
		return ""
	}
	lines, _ := m.layout()
	style := panelStyle
	if m.height > 0 {
		style = style.Height(m.height)
	}
	return style.Render(strings.Join(lines, "\n"))
}

type zone struct {
	y      int
	x0, x1 int
	focus  int
	act    func()
}

var fieldTitles = map[settings.Field]string{
	settings.FontFamily:      "Font",
	settings.FontSize:        "Font size",
	settings.FontColor:       "Text color",
	settings.BackgroundColor: "Background color",
	settings.ContentWidth:    "Content width",
}

// layout builds the form lines and the clickable zones on them. Zone
// coordinates are relative to the content area, inside the padding.
func (m *Model) layout() ([]string, []zone) {
	var (
		lines []string
		zones []zone
	)
	lines = append(lines, titleStyle.Render("Article settings"), "")

	for i, field := range settings.Fields() {
		if field == settings.BackgroundColor {
			lines = append(lines, separatorStyle.Render(strings.Repeat("─", ContentWidth)), "")
		}
		label := labelStyle
		if m.focus == i {
			label = labelFocus
		}
		lines = append(lines, label.Render(fieldTitles[field]))

		y := len(lines)
		var row string
		var rowZones []zone
		if field == settings.FontSize {
			row, rowZones = m.radioRow(i, field, y)
		} else {
			row, rowZones = m.selectRow(i, field, y)
		}
		lines = append(lines, row, "")
		zones = append(zones, rowZones...)
	}

	y := len(lines)
	reset := clearButton.Render("Reset")
	apply := applyButton.Render("Apply")
	if m.focus == focusReset {
		reset = clearButton.Underline(true).Render("Reset")
	}
	if m.focus == focusApply {
		apply = applyButton.Underline(true).Render("Apply")
	}
	gap := max(ContentWidth-lipgloss.Width(reset)-lipgloss.Width(apply), 1)
	lines = append(lines, reset+strings.Repeat(" ", gap)+apply)
	resetEnd := lipgloss.Width(reset)
	applyStart := resetEnd + gap
	zones = append(zones,
		zone{y: y, x0: 0, x1: resetEnd, focus: focusReset, act: m.Reset},
		zone{y: y, x0: applyStart, x1: applyStart + lipgloss.Width(apply), focus: focusApply, act: m.Submit},
	)
	return lines, zones
}

func (m *Model) selectRow(idx int, field settings.Field, y int) (string, []zone) {
	opt := m.draft.Get(field)
	text := "‹ " + opt.Label + " ›"
	if field == settings.FontColor || field == settings.BackgroundColor {
		text += " " + lipgloss.NewStyle().Foreground(lipgloss.Color(opt.StyleValue)).Render("██")
	}
	row := selectStyle.Render(text)
	width := lipgloss.Width(row)
	return row, []zone{
		{y: y, x0: 0, x1: 2, focus: idx, act: func() { m.cycle(field, -1) }},
		{y: y, x0: 2, x1: max(width, ContentWidth), focus: idx, act: func() { m.cycle(field, 1) }},
	}
}

func (m *Model) radioRow(idx int, field settings.Field, y int) (string, []zone) {
	selected := m.draft.Get(field)
	var (
		b     strings.Builder
		zones []zone
		x     int
	)
	for i, opt := range field.Catalog().Options() {
		if i > 0 {
			b.WriteByte(' ')
			x++
		}
		style := radioStyle
		if opt == selected {
			style = radioSelected
		}
		button := style.Render(" " + opt.Label + " ")
		w := lipgloss.Width(button)
		zones = append(zones, zone{y: y, x0: x, x1: x + w, focus: idx, act: func() { _ = m.Select(field, opt) }})
		b.WriteString(button)
		x += w
	}
	return b.String(), zones
}
