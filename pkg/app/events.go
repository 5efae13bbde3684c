package app

import (
	"github.com/byxorna/wrench/pkg/screen"
	"github.com/byxorna/wrench/pkg/session"
	tea "github.com/charmbracelet/bubbletea"
)

const eventBuffer = 64

// Events carries notifications produced off the update loop (toasts, session
// and theme changes) into the program.
type Events chan tea.Msg

func NewEvents() Events { return make(Events, eventBuffer) }

type (
	notifyMsg  screen.Notification
	sessionMsg session.State
	themeMsg   bool
)

// Notify implements screen.Notifier. It never blocks; when the program falls
// behind by a full buffer the notification is dropped.
func (e Events) Notify(n screen.Notification) { e.send(notifyMsg(n)) }

func (e Events) send(msg tea.Msg) bool {
	select {
	case e <- msg:
		return true
	default:
		return false
	}
}

// wait returns a command that delivers the next event. It is re-armed after
// every event the application handles.
func (e Events) wait() tea.Cmd {
	return func() tea.Msg { return <-e }
}
