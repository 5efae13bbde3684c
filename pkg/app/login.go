package app

import (
	"strings"

	"github.com/byxorna/wrench/pkg/ui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// loginForm collects credentials while the session is unauthenticated.
type loginForm struct {
	inputs  []textinput.Model
	focus   int
	pending bool
	err     string
}

// loginSubmitMsg is emitted when the user submits the form.
type loginSubmitMsg struct {
	username, password string
}

func newLoginForm() loginForm {
	user := textinput.New()
	user.Placeholder = "username"
	user.Prompt = "Username: "
	user.CharLimit = 64
	user.Focus()

	pass := textinput.New()
	pass.Placeholder = "password"
	pass.Prompt = "Password: "
	pass.EchoMode = textinput.EchoPassword
	pass.EchoCharacter = '•'
	pass.CharLimit = 128

	return loginForm{inputs: []textinput.Model{user, pass}}
}

func (f loginForm) reset() loginForm {
	n := newLoginForm()
	n.inputs[0].SetValue(f.inputs[0].Value())
	if n.inputs[0].Value() != "" {
		n.inputs[0].Blur()
		n.inputs[1].Focus()
		n.focus = 1
	}
	return n
}

func (f loginForm) setFocus(i int) loginForm {
	f.focus = (i + len(f.inputs)) % len(f.inputs)
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return f
}

func (f loginForm) Update(msg tea.Msg) (loginForm, tea.Cmd) {
	if f.pending {
		return f, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			return f.setFocus(f.focus + 1), nil
		case "shift+tab", "up":
			return f.setFocus(f.focus - 1), nil
		case "enter":
			if f.focus == 0 {
				return f.setFocus(1), nil
			}
			username := strings.TrimSpace(f.inputs[0].Value())
			password := f.inputs[1].Value()
			if username == "" || password == "" {
				f.err = "Username and password are required"
				return f, nil
			}
			f.err = ""
			f.pending = true
			return f, func() tea.Msg { return loginSubmitMsg{username: username, password: password} }
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f loginForm) View() string {
	lines := []string{ui.Logo.Render("wrench"), "", ui.Subtle.Render("Sign in to the workshop")}
	for _, in := range f.inputs {
		lines = append(lines, in.View())
	}
	switch {
	case f.pending:
		lines = append(lines, "", ui.Info.Render("Signing in…"))
	case f.err != "":
		lines = append(lines, "", ui.Error.Render(f.err))
	default:
		lines = append(lines, "", ui.Subtle.Render("enter to submit • tab to switch • ctrl+c to quit"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
