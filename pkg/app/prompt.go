package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/byxorna/wrench/pkg/ui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrPromptCancelled = errors.New("prompt cancelled")

// credentialsPrompt runs the login form on its own, outside the application.
type credentialsPrompt struct {
	form      loginForm
	result    *loginSubmitMsg
	cancelled bool
}

func (p credentialsPrompt) Init() tea.Cmd { return textinput.Blink }

func (p credentialsPrompt) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginSubmitMsg:
		p.result = &msg
		return p, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			p.cancelled = true
			return p, tea.Quit
		}
	}
	var cmd tea.Cmd
	p.form, cmd = p.form.Update(msg)
	return p, cmd
}

func (p credentialsPrompt) View() string {
	if p.result != nil || p.cancelled {
		return ""
	}
	return ui.App.Render(p.form.View()) + "\n"
}

// PromptCredentials asks for a username and password on the terminal. A
// non-empty username is pre-filled and the password field focused.
func PromptCredentials(in io.Reader, out io.Writer, username string) (string, string, error) {
	form := newLoginForm()
	form.inputs[0].SetValue(username)
	form = form.reset()

	final, err := tea.NewProgram(credentialsPrompt{form: form}, tea.WithInput(in), tea.WithOutput(out)).Run()
	if err != nil {
		return "", "", fmt.Errorf("unable to read credentials: %w", err)
	}
	p := final.(credentialsPrompt)
	if p.result == nil {
		return "", "", ErrPromptCancelled
	}
	return p.result.username, p.result.password, nil
}
