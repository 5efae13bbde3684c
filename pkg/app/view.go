package app

import (
	"fmt"
	"strings"

	"github.com/byxorna/wrench/pkg/filter"
	"github.com/byxorna/wrench/pkg/screen"
	"github.com/byxorna/wrench/pkg/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func (m Application) View() string {
	if m.quitting {
		return "Bye!\n"
	}
	if !m.state.IsAuthenticated() {
		return ui.App.Render(m.login.View())
	}

	body := m.table.View()
	if m.menuOpen {
		body = m.menuView()
	}
	return ui.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.search.View(),
		m.filterView(),
		body,
		m.statusView(),
		m.help.View(m.keys),
	))
}

func (m Application) headerView() string {
	tabs := []string{ui.Logo.Render("wrench")}
	for i, t := range m.tabs {
		style := ui.Tab
		if i == m.active {
			style = ui.SelectedTab
		}
		tabs = append(tabs, style.Render(t.Name()))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.state.User == nil {
		return left
	}
	right := ui.Subtle.Render(m.state.User.String())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Application) filterView() string {
	t := m.current()
	c := t.Criteria()
	st := t.Status()
	statusName, secondaryName := t.Facets()

	parts := []string{}
	if statusName != "" {
		parts = append(parts, facetView(statusName, c.Status))
	}
	if secondaryName != "" {
		parts = append(parts, facetView(secondaryName, c.Secondary))
	}
	parts = append(parts, ui.Value.Render(fmt.Sprintf("%d", st.Visible))+ui.Subtle.Render(fmt.Sprintf(" of %d", st.Total)))
	if !c.IsDefault() {
		parts = append(parts, ui.Subtle.Render("c clears filters"))
	}

	switch {
	case st.Loading:
		parts = append(parts, m.spinner.View()+ui.Info.Render("loading"))
	case st.Err != nil && !st.Loaded:
		parts = append(parts, ui.Error.Render("not loaded"))
	case st.Loaded:
		parts = append(parts, ui.Subtle.Render("updated "+humanize.Time(st.LastLoaded)))
	}
	return strings.Join(parts, ui.Divider)
}

func facetView(name, value string) string {
	if value == "" {
		value = filter.All
	}
	return ui.Label.Render(name+": ") + ui.Value.Render(value)
}

func (m Application) menuView() string {
	lines := []string{ui.Label.Render("Go to screen"), ""}
	for i, t := range m.tabs {
		if i == m.menuCursor {
			lines = append(lines, ui.SelectedMenuItem.Render("› "+t.Name()))
		} else {
			lines = append(lines, ui.MenuItem.Render("  "+t.Name()))
		}
	}
	lines = append(lines, "", ui.Subtle.Render("enter to open • esc to close"))
	return ui.Menu.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Application) statusView() string {
	if m.pending != nil {
		return ui.Prompt.Render(m.pending.Prompt + " (y/n)")
	}
	switch m.status.level {
	case screen.LevelError:
		return ui.Error.Render(m.status.message)
	case screen.LevelSuccess:
		return ui.Success.Render(m.status.message)
	default:
		return ui.Info.Render(m.status.message)
	}
}
