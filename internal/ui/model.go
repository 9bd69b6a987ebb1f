package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dirgrip/internal/complete"
	"dirgrip/internal/config"
	"dirgrip/internal/domain"
	"dirgrip/internal/eventbus"
	"dirgrip/internal/navigator"
	"dirgrip/internal/storage"
)

// EventMsg wraps a domain event forwarded from the bus into the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// clearStatusMsg expires a transient status line
type clearStatusMsg struct {
	id int
}

const statusTimeout = 4 * time.Second

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	nav       *navigator.Navigator
	completer *complete.Completer
	visits    *storage.VisitLog
	pager     *PagerOps
	styles    *Styles

	// Path bar editing state
	input       textinput.Model
	editing     bool
	suggestions []string
	suggestIdx  int

	width  int
	height int

	showHistory bool
	confirmQuit bool
	status      string
	statusError bool
	statusID    int

	// Mirrors of navigator state for rendering
	current        string
	remoteID       string
	historyEntries []string
	historyCursor  int
	recentVisits   []domain.Visit
}

// NewModel creates a new UI model
func NewModel(
	bus eventbus.EventBus,
	cfg *config.Config,
	nav *navigator.Navigator,
	completer *complete.Completer,
	visits *storage.VisitLog,
) *Model {
	input := textinput.New()
	input.Placeholder = "directory path"
	input.CharLimit = 0

	m := &Model{
		bus:         bus,
		config:      cfg,
		nav:         nav,
		completer:   completer,
		visits:      visits,
		styles:      NewStyles(),
		input:       input,
		showHistory: cfg.UI.ShowVisitLog,
	}
	m.syncFromNavigator()
	return m
}

// SetProgram wires the Bubble Tea program in for pager terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.pager = NewPagerOps(p)
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clearStatusMsg:
		if msg.id == m.statusID {
			m.status = ""
			m.statusError = false
		}
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			return m, m.setStatus(fmt.Sprintf("pager: %v", msg.err), true)
		}
		return m, nil

	case EventMsg:
		return m.handleEvent(msg.Event)

	case tea.KeyMsg:
		if m.editing {
			return m.handleEditingKey(msg)
		}
		return m.handleNormalKey(msg)
	}

	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case eventbus.DirectoryChangedEvent:
		m.current = e.Path
		m.remoteID = e.ServerID
		if m.completer != nil {
			// The listing of the directory just entered is the one most
			// likely to be completed against next
			m.completer.Invalidate(e.Path)
		}
		m.refreshRecentVisits()
		return m, nil

	case eventbus.HistoryChangedEvent:
		m.historyEntries = e.Entries
		m.historyCursor = e.Cursor
		return m, nil

	case eventbus.GoToFileEvent:
		cmd := m.setStatus(fmt.Sprintf("opening %s", formatFileTarget(e.Path, e.Line)), false)
		return m, tea.Batch(cmd, m.openFileCmd(e.Path))

	case eventbus.HistoryConfigChangedEvent:
		// History edited from outside the navigator (e.g. the config file);
		// applied here so all navigator calls stay on the UI goroutine
		m.nav.ApplyHistory(e.History)
		m.syncFromNavigator()
		return m, nil

	case eventbus.ErrorEvent:
		return m, m.setStatus(e.Message, true)
	}
	return m, nil
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() != "q" {
		m.confirmQuit = false
	}

	switch msg.String() {
	case "q":
		if m.config.UI.ConfirmOnQuit && !m.confirmQuit {
			m.confirmQuit = true
			return m, m.setStatus("press q again to quit", false)
		}
		return m, tea.Quit

	case "ctrl+c":
		return m, tea.Quit

	case "b", "alt+left", "left":
		return m, m.navigate(m.nav.Back)

	case "f", "alt+right", "right":
		return m, m.navigate(m.nav.Forward)

	case "u", "alt+up", "up":
		return m, m.navigate(m.nav.Parent)

	case "o", "e":
		m.editing = true
		m.suggestions = nil
		if m.completer != nil {
			// Completions offered during this edit should reflect the
			// directory as it is now
			m.completer.Invalidate(m.nav.CurrentDirectory())
		}
		m.input.SetValue(m.nav.CurrentDirectory())
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case "h":
		m.showHistory = !m.showHistory
		if m.showHistory {
			m.refreshRecentVisits()
		}
		return m, nil

	case "?":
		return m, m.showHelpCmd()
	}
	return m, nil
}

func (m *Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(m.input.Value())
		m.stopEditing()
		if value == "" {
			return m, nil
		}
		return m, m.navigate(func() error { return m.nav.Commit(value) })

	case "esc":
		m.stopEditing()
		return m, nil

	case "tab":
		m.cycleCompletion()
		return m, nil
	}

	// Any other key invalidates the completion cycle
	m.suggestions = nil
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// navigate runs a navigator operation and reports its outcome in the status
// line. The operations themselves are synchronous; the bus events they
// publish arrive as EventMsg and update the rendered state a moment later,
// so the mirror fields are refreshed here as well.
func (m *Model) navigate(op func() error) tea.Cmd {
	err := op()
	m.syncFromNavigator()
	if err == nil {
		return m.setStatus("", false)
	}

	switch {
	case errors.Is(err, navigator.ErrNoHistory):
		return m.setStatus("no more history in that direction", true)
	case errors.Is(err, navigator.ErrInvalidDirectory):
		return m.setStatus("not a valid directory", true)
	default:
		return m.setStatus(err.Error(), true)
	}
}

func (m *Model) syncFromNavigator() {
	m.current = m.nav.CurrentDirectory()
	m.remoteID = m.nav.RemoteServerID()
	m.historyEntries = m.nav.Entries()
	m.historyCursor = m.nav.Cursor()
}

func (m *Model) stopEditing() {
	m.editing = false
	m.suggestions = nil
	m.input.Blur()
}

// cycleCompletion steps through directory completions for the typed prefix
func (m *Model) cycleCompletion() {
	if m.completer == nil {
		return
	}
	if len(m.suggestions) == 0 {
		m.suggestions = m.completer.Complete(m.input.Value())
		m.suggestIdx = 0
	} else {
		m.suggestIdx = (m.suggestIdx + 1) % len(m.suggestions)
	}
	if len(m.suggestions) > 0 {
		m.input.SetValue(m.suggestions[m.suggestIdx])
		m.input.CursorEnd()
	}
}

func (m *Model) setStatus(status string, isError bool) tea.Cmd {
	m.status = status
	m.statusError = isError
	m.statusID++
	if status == "" {
		return nil
	}
	id := m.statusID
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{id: id}
	})
}

func (m *Model) openFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if m.pager == nil {
			return pagerMsg{err: fmt.Errorf("pager unavailable")}
		}
		return pagerMsg{err: m.pager.ShowFileInPager(path)}
	}
}

func (m *Model) showHelpCmd() tea.Cmd {
	return func() tea.Msg {
		if m.pager == nil {
			return pagerMsg{err: fmt.Errorf("pager unavailable")}
		}
		return pagerMsg{err: m.pager.ShowTextInPager(renderHelpContent())}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("dirgrip"))
	b.WriteString("\n")

	// Path bar
	if m.editing {
		b.WriteString(m.input.View())
	} else if m.remoteID != "" {
		b.WriteString(m.styles.PathRemote.Render(fmt.Sprintf("[%s] %s", m.remoteID, m.current)))
	} else {
		b.WriteString(m.styles.PathBar.Render(m.current))
	}
	b.WriteString("\n")

	// Navigation affordances, dimmed when unavailable
	b.WriteString(m.affordance("← back", m.nav.CanGoBack()))
	b.WriteString("  ")
	b.WriteString(m.affordance("→ forward", m.nav.CanGoForward()))
	b.WriteString("  ")
	b.WriteString(m.affordance("↑ parent", m.remoteID == ""))
	b.WriteString("\n")

	if m.showHistory {
		b.WriteString(m.renderHistoryPanel())
		b.WriteString("\n")
	}

	if m.status != "" {
		if m.statusError {
			b.WriteString(m.styles.StatusError.Render(m.status))
		} else {
			b.WriteString(m.styles.Status.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("b/f back/forward · u parent · o edit path · h history · ? help · q quit"))

	return m.styles.Main.Render(b.String())
}

func (m *Model) affordance(label string, enabled bool) string {
	if enabled {
		return m.styles.Status.Render(label)
	}
	return m.styles.Dim.Render(label)
}

func formatFileTarget(path string, line int) string {
	if line > 0 {
		return fmt.Sprintf("%s:%d", path, line)
	}
	return path
}

var _ tea.Model = (*Model)(nil)

