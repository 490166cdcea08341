// Package tui provides interactive terminal UI components using BubbleTea.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the lipgloss styles shared by the TUI components.
var Styles = struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	Status   lipgloss.Style
	Tab      lipgloss.Style
	TabOn    lipgloss.Style
	Filter   lipgloss.Style
	Input    lipgloss.Style
	Detail   lipgloss.Style
	Selected lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
	Tab:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1),
	TabOn:    lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(true).Padding(0, 1),
	Filter:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	Input:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	Detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Padding(0, 1),
	Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
}
