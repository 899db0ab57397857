package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"

	"github.com/kyaoi/readview/internal/article"
	"github.com/kyaoi/readview/internal/outside"
	"github.com/kyaoi/readview/internal/settings"
	"github.com/kyaoi/readview/internal/ui/panel"
	"github.com/kyaoi/readview/internal/ui/toggle"
)

const (
	statusHeight    = 1
	minContentWidth = 20
	// panelTop is the row the panel starts on; the toggle sits above it.
	panelTop = 1
)

var (
	helpBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7aa2f7")).
			Background(lipgloss.Color("#1f2335"))
	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#a9b1d6")).
			Background(lipgloss.Color("#1f2335"))
	errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
)

// Model is the root of the reader. It owns the committed settings and the
// panel's open state; the panel and toggle only get callbacks into it.
type Model struct {
	contentVP       viewport.Model
	renderer        article.Renderer
	doc             article.Document
	headerPath      string
	renderedContent string

	committed settings.State
	open      bool
	hub       *outside.Hub
	panel     *panel.Model
	toggle    toggle.Model

	keys       keyMap
	help       help.Model
	showHelp   bool
	pendingKey string
	ready      bool
	width      int
	height     int
	err        error

	searchInput   textinput.Model
	searchActive  bool
	searchQuery   string
	searchMatches []int
	searchIndex   int

	watcher          *fsnotify.Watcher
	watchDir         string
	watchedFile      string
	watchChan        chan tea.Msg
	activeAbsPath    string
	initialWatchPath string
}

// NewModel constructs the reader with the default settings and the panel
// closed.
func NewModel(state State) *Model {
	m := &Model{
		contentVP:     viewport.New(0, 0),
		doc:           state.Document,
		headerPath:    state.HeaderPath,
		committed:     settings.Default(),
		hub:           outside.NewHub(),
		keys:          defaultKeyMap(),
		help:          help.New(),
		activeAbsPath: state.ActiveAbsPath,
		searchIndex:   -1,
	}
	m.contentVP.MouseWheelEnabled = true
	m.panel = panel.New(m.hub, panel.Props{
		OnToggle:      m.Toggle,
		OnChangeState: m.ChangeState,
	})
	m.toggle = toggle.New(m.Toggle)

	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.CharLimit = 256
	searchInput.Placeholder = "search"
	searchInput.Blur()
	m.searchInput = searchInput

	if state.Watch && state.ActiveAbsPath != "" {
		m.initialWatchPath = state.ActiveAbsPath
	}
	return m
}

// Committed returns the settings currently applied to the article.
func (m *Model) Committed() settings.State {
	return m.committed
}

// IsOpen reports whether the settings panel is open.
func (m *Model) IsOpen() bool {
	return m.open
}

// Draft returns the panel's uncommitted settings.
func (m *Model) Draft() settings.State {
	return m.panel.Draft()
}

// Vars returns the style variables of the committed settings.
func (m *Model) Vars() []settings.Var {
	return m.committed.Vars()
}

// Toggle flips the panel's open state.
func (m *Model) Toggle() {
	m.open = !m.open
	m.panel.SetOpen(m.open)
	slog.Debug("settings panel toggled", "open", m.open)
	m.layout()
}

// ChangeState replaces the committed settings and re-renders the article.
func (m *Model) ChangeState(s settings.State) {
	m.committed = s
	m.renderArticle()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.initialWatchPath != "" {
		path := m.initialWatchPath
		m.initialWatchPath = ""
		return m.startWatching(path)
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.showHelp {
		h := m.help
		h.ShowAll = true
		overlay := helpBoxStyle.Render("Help (? to close)\n\n" + h.View(m.keys))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
		}
		return overlay
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.leftColumn(), m.contentVP.View())
	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusLine())
}

func (m *Model) leftColumn() string {
	if !m.open {
		return m.toggle.View(false)
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.toggle.View(true), m.panel.View())
}

func (m *Model) statusLine() string {
	var line string
	switch {
	case m.searchActive:
		line = m.searchInput.View()
	case m.err != nil:
		line = errStyle.Render(m.err.Error())
	case m.searchQuery != "":
		line = m.searchStatusLine()
	default:
		family := m.committed.Get(settings.FontFamily).Label
		if m.open {
			line = fmt.Sprintf("%s · %s  %s", m.headerPath, family, m.help.View(m.panel.KeyMap()))
		} else {
			line = fmt.Sprintf("%s · %s  %s", m.headerPath, family, m.help.View(m.keys))
		}
	}
	style := statusBarStyle
	if m.width > 0 {
		style = style.Width(m.width).MaxHeight(statusHeight)
	}
	return style.Render(line)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fileEventMsg:
		return m, m.handleFileEvent(msg)
	case fileWatchErrMsg:
		slog.Warn("article watcher error", "error", msg.err)
		m.err = msg.err
		return m, m.waitForFileEvent()
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.contentVP, cmd = m.contentVP.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchActive {
		switch msg.Type {
		case tea.KeyEnter:
			query := strings.TrimSpace(m.searchInput.Value())
			m.exitSearchMode()
			if query == "" {
				m.clearSearch()
				return m, nil
			}
			m.performSearch(query, true)
			return m, nil
		case tea.KeyEsc, tea.KeyCtrlC:
			m.exitSearchMode()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	if !key.Matches(msg, m.keys.Top) {
		m.pendingKey = ""
	}

	if m.showHelp {
		switch msg.String() {
		case "q", "?", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	if key.Matches(msg, m.keys.Quit) {
		m.shutdown()
		return m, tea.Quit
	}

	if m.open && m.panel.HandleKey(msg) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Settings):
		m.Toggle()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Search):
		return m, m.enterSearchMode()
	case key.Matches(msg, m.keys.NextHit):
		m.nextSearchMatch()
		return m, nil
	case key.Matches(msg, m.keys.PrevHit):
		m.previousSearchMatch()
		return m, nil
	}

	if m.handleContentKey(msg) {
		return m, nil
	}

	var cmd tea.Cmd
	m.contentVP, cmd = m.contentVP.Update(msg)
	return m, cmd
}

func (m *Model) handleContentKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.contentVP.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.contentVP.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfDown):
		m.contentVP.HalfPageDown()
	case key.Matches(msg, m.keys.HalfUp):
		m.contentVP.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		if m.pendingKey == "g" {
			m.contentVP.GotoTop()
			m.pendingKey = ""
		} else {
			m.pendingKey = "g"
		}
		return true
	case key.Matches(msg, m.keys.Bottom):
		m.contentVP.GotoBottom()
	default:
		return false
	}
	m.pendingKey = ""
	return true
}

// handleMouse hit-tests a press against the layout as it was before the
// press, then lets the outside-press subscribers see it. The help overlay
// hides everything, so it swallows mouse input like it does keys.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp {
		return nil
	}
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		var cmd tea.Cmd
		m.contentVP, cmd = m.contentVP.Update(msg)
		return cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	toggleRect := outside.Rect{X: 0, Y: 0, W: m.toggle.Width(), H: 1}
	bounds := m.panel.Bounds()
	onToggle := toggleRect.Contains(msg.X, msg.Y)
	onPanel := m.open && bounds.Contains(msg.X, msg.Y)

	m.hub.Dispatch(outside.PointerEvent{X: msg.X, Y: msg.Y})

	switch {
	case onToggle:
		m.toggle.Click()
	case onPanel:
		x, y := bounds.Translate(msg.X, msg.Y)
		m.panel.HandleClick(x, y-panelTop)
	}
	return nil
}

func (m *Model) resize(width, height int) {
	if width <= 0 || height <= statusHeight {
		return
	}
	m.width = width
	m.height = height
	m.ready = true
	m.help.Width = width
	m.layout()
}

// layout sizes the left column and the article pane for the current open
// state and re-renders the article into the pane.
func (m *Model) layout() {
	if !m.ready {
		// no size yet: the column is drawn at its natural height
		m.panel.SetBounds(m.columnBounds(lipgloss.Height(m.leftColumn())))
		return
	}
	bodyHeight := max(m.height-statusHeight, 1)

	leftWidth := m.toggle.Width()
	if m.open {
		leftWidth = max(leftWidth, m.panel.Width())
		m.panel.SetHeight(max(bodyHeight-panelTop, 1))
	}
	m.panel.SetBounds(m.columnBounds(bodyHeight))

	m.contentVP.Width = max(m.width-leftWidth, minContentWidth)
	m.contentVP.Height = bodyHeight
	m.renderArticle()
}

// columnBounds is the region that counts as inside the panel: the whole left
// column, toggle included, while open and nothing while closed.
func (m *Model) columnBounds(height int) outside.Rect {
	if !m.open {
		return outside.Rect{}
	}
	return outside.Rect{W: max(m.toggle.Width(), m.panel.Width()), H: max(height, panelTop)}
}

func (m *Model) renderArticle() {
	if !m.ready {
		return
	}
	rendered, err := m.renderer.Render(m.doc, m.committed, m.contentVP.Width)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	placed := lipgloss.PlaceHorizontal(m.contentVP.Width, lipgloss.Center, rendered)
	m.contentVP.SetContent(placed)
	m.renderedContent = placed
	m.onContentChanged()
}

func (m *Model) shutdown() {
	m.panel.Close()
	m.open = false
	if m.watcher != nil {
		_ = m.watcher.Close()
	}
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
