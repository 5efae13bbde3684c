// Package ui holds the palette. Every colour is adaptive, so switching the
// dark background flag in lipgloss restyles the whole interface.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Normal     = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}
	DimNormal  = lipgloss.AdaptiveColor{Light: "#A49FA5", Dark: "#777777"}
	Gray       = lipgloss.AdaptiveColor{Light: "#909090", Dark: "#626262"}
	DarkGray   = lipgloss.AdaptiveColor{Light: "#DDDADA", Dark: "#3C3C3C"}
	Green      = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}
	DimGreen   = lipgloss.AdaptiveColor{Light: "#72D2B0", Dark: "#0B5137"}
	Fuchsia    = lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}
	DimFuchsia = lipgloss.AdaptiveColor{Light: "#F1A8FF", Dark: "#99519E"}
	Indigo     = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	Red        = lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"}
	Yellow     = lipgloss.AdaptiveColor{Light: "#9BA92F", Dark: "#ECFD65"}

	// instagram color palette
	// https://www.color-hex.com/color-palette/44340
	InstaMagenta = lipgloss.Color("#d62976")
	InstaPurple  = lipgloss.Color("#962fbf")
)

var (
	App = lipgloss.NewStyle().Padding(1, 2)

	Logo = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ECFD65")).
		Background(InstaPurple).
		Bold(true).
		Padding(0, 1)

	Tab         = lipgloss.NewStyle().Foreground(Gray).Padding(0, 1)
	SelectedTab = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(InstaMagenta).Bold(true).Padding(0, 1)

	Subtle  = lipgloss.NewStyle().Foreground(DimNormal)
	Label   = lipgloss.NewStyle().Foreground(Indigo)
	Value   = lipgloss.NewStyle().Foreground(Normal).Bold(true)
	Success = lipgloss.NewStyle().Foreground(Green)
	Info    = lipgloss.NewStyle().Foreground(DimGreen)
	Error   = lipgloss.NewStyle().Foreground(Red)
	Prompt  = lipgloss.NewStyle().Foreground(Yellow).Bold(true)

	Menu = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Fuchsia).
		Padding(0, 2)
	MenuItem         = lipgloss.NewStyle().Foreground(Normal)
	SelectedMenuItem = lipgloss.NewStyle().Foreground(Fuchsia).Bold(true)

	TableHeader = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(DarkGray).
			BorderBottom(true).
			Bold(true).
			Padding(0, 1)
	TableCell     = lipgloss.NewStyle().Padding(0, 1)
	TableSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(InstaPurple)

	Divider = lipgloss.NewStyle().Foreground(DarkGray).Render(" • ")
)
