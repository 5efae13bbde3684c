package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/byxorna/wrench/pkg/api"
	"github.com/byxorna/wrench/pkg/screen"
	"github.com/byxorna/wrench/pkg/session"
	"github.com/byxorna/wrench/pkg/theme"
	"github.com/byxorna/wrench/pkg/ui"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

var (
	statusMessageTimeout = 4 * time.Second
	errorMessageTimeout  = 8 * time.Second
)

// SessionService is the part of the session store the application uses.
type SessionService interface {
	Current() session.State
	Login(ctx context.Context, username, password string) error
	Logout() error
	Subscribe(fn func(session.State)) (unsubscribe func())
}

// ThemeService is the part of the theme manager the application uses.
type ThemeService interface {
	IsDark() bool
	Toggle() (bool, error)
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

type (
	loadedMsg      struct{ tab int }
	actionDoneMsg  struct{ err error }
	loginDoneMsg   struct{ err error }
	logoutDoneMsg  struct{ err error }
	clearStatusMsg struct{ seq int }
)

type statusLine struct {
	level   screen.Level
	message string
	seq     int
}

type Application struct {
	ctx    context.Context
	logger *zap.Logger

	session SessionService
	theme   ThemeService
	events  Events
	unsub   []func()
	state   session.State

	keys    applicationKeyMap
	help    help.Model
	table   table.Model
	search  textinput.Model
	spinner spinner.Model
	login   loginForm

	tabs    []Tab
	visited []bool
	active  int

	menuOpen   bool
	menuCursor int
	pending    *Pending
	status     statusLine

	width, height int
	quitting      bool
}

// NewApplication builds the model. Session and theme changes are forwarded
// through events, which must be the same Events the tabs notify on.
func NewApplication(ctx context.Context, tabs []Tab, sess SessionService, th ThemeService, events Events, logger *zap.Logger) (*Application, error) {
	if len(tabs) == 0 {
		return nil, errors.New("no screens configured")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "ctrl+k to search"
	search.CharLimit = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.Info

	m := &Application{
		ctx:     ctx,
		logger:  logger,
		session: sess,
		theme:   th,
		events:  events,
		state:   sess.Current(),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		table:   table.New(table.WithFocused(true), table.WithStyles(tableStyles())),
		search:  search,
		spinner: sp,
		login:   newLoginForm(),
		tabs:    tabs,
		visited: make([]bool, len(tabs)),
	}

	m.unsub = append(m.unsub, sess.Subscribe(func(st session.State) {
		if !events.send(sessionMsg(st)) {
			logger.Warn("dropped session event")
		}
	}))
	m.unsub = append(m.unsub, th.Subscribe(func(dark bool) {
		events.send(themeMsg(dark))
	}))
	m.showTab(0)
	return m, nil
}

// Close releases the session and theme subscriptions.
func (m *Application) Close() {
	for _, u := range m.unsub {
		u()
	}
	m.unsub = nil
}

func tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = ui.TableHeader
	s.Cell = ui.TableCell
	s.Selected = ui.TableSelected
	return s
}

func (m Application) Init() tea.Cmd {
	cmds := []tea.Cmd{m.events.wait(), m.spinner.Tick}
	if m.state.IsAuthenticated() {
		cmds = append(cmds, m.visit(m.active))
	} else {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

func (m Application) current() Tab { return m.tabs[m.active] }

// showTab makes i the active tab and rebuilds the table for it.
func (m *Application) showTab(i int) {
	m.active = i
	m.search.SetValue(m.current().Criteria().Search)
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.refreshRows()
	if len(m.table.Rows()) > 0 {
		m.table.SetCursor(0)
	}
}

// visit loads a tab the first time it is shown.
func (m *Application) visit(i int) tea.Cmd {
	if m.visited[i] {
		return nil
	}
	m.visited[i] = true
	return m.load(i)
}

func (m Application) load(i int) tea.Cmd {
	tab := m.tabs[i]
	ctx := m.ctx
	return func() tea.Msg {
		// Failures are reported through the notifier.
		_ = tab.Load(ctx)
		return loadedMsg{tab: i}
	}
}

func (m Application) columns() []table.Column {
	t := m.current()
	headers, widths := t.Headers(), t.Widths()
	cols := make([]table.Column, len(headers))
	for i := range headers {
		cols[i] = table.Column{Title: headers[i], Width: widths[i]}
	}
	return cols
}

func (m *Application) refreshRows() {
	raw := m.current().Rows()
	rows := make([]table.Row, len(raw))
	for i, r := range raw {
		rows[i] = table.Row(r)
	}
	m.table.SetRows(rows)
	// The table parks its cursor at -1 while empty.
	if len(rows) > 0 {
		m.table.SetCursor(max(min(m.table.Cursor(), len(rows)-1), 0))
	}
}

func (m *Application) setStatus(level screen.Level, message string) tea.Cmd {
	m.status.seq++
	m.status.level = level
	m.status.message = message
	seq := m.status.seq
	timeout := statusMessageTimeout
	if level == screen.LevelError {
		timeout = errorMessageTimeout
	}
	return tea.Tick(timeout, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Application) resize() {
	m.help.Width = m.width
	topGap, rightGap, bottomGap, leftGap := ui.App.GetPadding()
	// tabs, search, filter summary, status line and help
	chrome := 8
	m.table.SetWidth(m.width - leftGap - rightGap)
	m.table.SetHeight(max(m.height-topGap-bottomGap-chrome, 3))
}

func (m *Application) loggedOut() {
	for i, t := range m.tabs {
		t.Reset()
		m.visited[i] = false
	}
	m.pending = nil
	m.menuOpen = false
	m.search.Blur()
	m.showTab(m.active)
	m.login = m.login.reset()
}

func (m Application) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case notifyMsg:
		cmd := m.setStatus(msg.Level, msg.Message)
		return m, tea.Batch(m.events.wait(), cmd)

	case sessionMsg:
		was := m.state.IsAuthenticated()
		m.state = session.State(msg)
		cmds := []tea.Cmd{m.events.wait()}
		switch now := m.state.IsAuthenticated(); {
		case was && !now:
			m.loggedOut()
			cmds = append(cmds, textinput.Blink)
		case !was && now:
			m.login = newLoginForm()
			m.showTab(m.active)
			cmds = append(cmds, m.visit(m.active))
		}
		return m, tea.Batch(cmds...)

	case themeMsg:
		m.table.SetStyles(tableStyles())
		return m, m.events.wait()

	case loadedMsg:
		if msg.tab == m.active {
			m.refreshRows()
		}
		return m, nil

	case actionDoneMsg:
		m.refreshRows()
		return m, nil

	case loginSubmitMsg:
		sess, ctx := m.session, m.ctx
		return m, func() tea.Msg {
			return loginDoneMsg{err: sess.Login(ctx, msg.username, msg.password)}
		}

	case loginDoneMsg:
		m.login.pending = false
		if msg.err != nil {
			m.logger.Warn("login failed", zap.Error(msg.err))
			m.login.err = loginMessage(msg.err)
		}
		return m, nil

	case logoutDoneMsg:
		if msg.err != nil {
			m.logger.Error("logout failed", zap.Error(msg.err))
			return m, m.setStatus(screen.LevelError, "Could not clear the saved session")
		}
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.status.seq {
			m.status.message = ""
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		if !m.state.IsAuthenticated() {
			var cmd tea.Cmd
			m.login, cmd = m.login.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	switch {
	case !m.state.IsAuthenticated():
		m.login, cmd = m.login.Update(msg)
	case m.search.Focused():
		m.search, cmd = m.search.Update(msg)
	}
	return m, cmd
}

func loginMessage(err error) string {
	if errors.Is(err, api.ErrNotAuthenticated) {
		return "Invalid username or password"
	}
	return api.UserMessage(err)
}

func (m Application) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	for _, t := range m.tabs {
		t.Cancel()
	}
	return m, tea.Quit
}

func (m Application) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.pending != nil {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			p := m.pending
			m.pending = nil
			ctx := m.ctx
			return m, func() tea.Msg { return actionDoneMsg{err: p.Run(ctx)} }
		case key.Matches(msg, m.keys.Deny):
			m.pending = nil
			return m, m.setStatus(screen.LevelInfo, "Cancelled")
		}
		return m, nil
	}

	if m.search.Focused() {
		switch msg.String() {
		case "esc", "enter":
			m.search.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != m.current().Criteria().Search {
			m.current().SetSearch(m.search.Value())
			m.refreshRows()
		}
		return m, cmd
	}

	if m.menuOpen {
		switch {
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Menu):
			m.menuOpen = false
		case key.Matches(msg, m.keys.Up):
			m.menuCursor = (m.menuCursor - 1 + len(m.tabs)) % len(m.tabs)
		case key.Matches(msg, m.keys.Down):
			m.menuCursor = (m.menuCursor + 1) % len(m.tabs)
		case key.Matches(msg, m.keys.Choose):
			m.menuOpen = false
			m.showTab(m.menuCursor)
			return m, m.visit(m.active)
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Search):
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Menu):
		m.menuOpen = true
		m.menuCursor = m.active
		return m, nil

	case key.Matches(msg, m.keys.Close):
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.showTab((m.active + 1) % len(m.tabs))
		return m, m.visit(m.active)

	case key.Matches(msg, m.keys.PrevTab):
		m.showTab((m.active - 1 + len(m.tabs)) % len(m.tabs))
		return m, m.visit(m.active)

	case key.Matches(msg, m.keys.Reload):
		m.visited[m.active] = true
		return m, m.load(m.active)

	case key.Matches(msg, m.keys.CycleStatus):
		m.current().CycleStatus()
		m.refreshRows()
		return m, nil

	case key.Matches(msg, m.keys.CycleSecondary):
		m.current().CycleSecondary()
		m.refreshRows()
		return m, nil

	case key.Matches(msg, m.keys.ClearFilters):
		m.current().ClearFilters()
		m.search.SetValue("")
		m.refreshRows()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		return m.prepare(ActionDelete)

	case key.Matches(msg, m.keys.ToggleItem):
		return m.prepare(ActionToggle)

	case key.Matches(msg, m.keys.CycleRole):
		return m.prepare(ActionRole)

	case key.Matches(msg, m.keys.Theme):
		dark, err := m.theme.Toggle()
		if err != nil {
			m.logger.Warn("unable to save theme", zap.Error(err))
		}
		m.table.SetStyles(tableStyles())
		return m, m.setStatus(screen.LevelInfo, fmt.Sprintf("Theme: %s", theme.Name(dark)))

	case key.Matches(msg, m.keys.Logout):
		sess := m.session
		return m, func() tea.Msg { return logoutDoneMsg{err: sess.Logout()} }

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Application) prepare(kind ActionKind) (tea.Model, tea.Cmd) {
	p, err := m.current().Action(kind, m.table.Cursor())
	switch {
	case errors.Is(err, ErrNotSupported):
		return m, m.setStatus(screen.LevelInfo, fmt.Sprintf("Not available on %s", m.current().Name()))
	case errors.Is(err, ErrNoSelection):
		return m, m.setStatus(screen.LevelInfo, "Nothing selected")
	case err != nil:
		return m, m.setStatus(screen.LevelError, err.Error())
	}
	m.pending = p
	return m, nil
}
