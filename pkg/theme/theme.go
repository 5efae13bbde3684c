// Package theme decides between the dark and light palettes and remembers the
// user's choice.
package theme

import (
	"fmt"
	"os"
	"sync"

	"github.com/byxorna/wrench/pkg/prefs"
	"github.com/byxorna/wrench/pkg/pubsub"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"
)

const (
	PrefKey = "theme"
	Dark    = "dark"
	Light   = "light"
)

// Ambient reports whether the terminal background is dark.
func Ambient() bool {
	return termenv.NewOutput(os.Stdout).HasDarkBackground()
}

// ApplyLipgloss points every adaptive colour at the chosen palette.
func ApplyLipgloss(dark bool) {
	lipgloss.SetHasDarkBackground(dark)
}

// Manager owns the dark mode flag.
type Manager struct {
	store   prefs.Store
	ambient func() bool
	apply   func(bool)
	broker  *pubsub.Broker[bool]
	logger  *zap.Logger

	mu   sync.Mutex
	dark bool
}

// New returns a Manager. ambient and apply default to Ambient and ApplyLipgloss.
func New(store prefs.Store, ambient func() bool, apply func(bool), logger *zap.Logger) *Manager {
	if ambient == nil {
		ambient = Ambient
	}
	if apply == nil {
		apply = ApplyLipgloss
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		store:   store,
		ambient: ambient,
		apply:   apply,
		broker:  pubsub.New[bool](logger),
		logger:  logger,
	}
}

// Init derives the flag from the stored preference, falling back to the
// terminal's background, and applies it. An unreadable or unknown preference
// falls back too.
func (m *Manager) Init() bool {
	dark, ok := m.stored()
	if !ok {
		dark = m.ambient()
	}
	m.mu.Lock()
	m.dark = dark
	m.mu.Unlock()
	m.apply(dark)
	return dark
}

func (m *Manager) stored() (dark bool, ok bool) {
	v, found, err := m.store.Get(PrefKey)
	if err != nil {
		m.logger.Warn("unable to read theme preference", zap.Error(err))
		return false, false
	}
	if !found {
		return false, false
	}
	switch v {
	case Dark:
		return true, true
	case Light:
		return false, true
	}
	m.logger.Warn("ignoring unknown theme preference", zap.String("value", v))
	return false, false
}

// Toggle flips the flag, applies and persists it, and notifies subscribers.
func (m *Manager) Toggle() (bool, error) {
	m.mu.Lock()
	m.dark = !m.dark
	dark := m.dark
	m.mu.Unlock()

	m.apply(dark)
	m.broker.Publish(dark)
	if err := m.store.Set(PrefKey, Name(dark)); err != nil {
		return dark, fmt.Errorf("unable to save theme: %w", err)
	}
	return dark, nil
}

func (m *Manager) IsDark() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dark
}

// Subscribe registers fn for every later change.
func (m *Manager) Subscribe(fn func(dark bool)) (unsubscribe func()) {
	return m.broker.Subscribe(fn)
}

// Close drops every subscriber.
func (m *Manager) Close() { m.broker.Close() }

// Name is the stored form of the flag.
func Name(dark bool) string {
	if dark {
		return Dark
	}
	return Light
}
