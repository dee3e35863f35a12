// Package tui provides the interactive curl command builder.
// It uses Bubble Tea for the TUI framework.
//
// File organization:
// - app.go: Entry point (Run function)
// - model.go: Model struct and message types
// - init.go: Model initialization
// - focus.go: Selection cursor and navigation rules
// - update.go: Event handling and state updates
// - keys.go: Keyboard input handling
// - view.go: Rendering and display logic
// - styles.go: Visual styling (colors, borders, etc.)
// - highlight.go: JSON syntax highlighting
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI application.
func Run(opts Options) error {
	m := InitialModel(opts)
	prog := tea.NewProgram(m, tea.WithAltScreen())

	// Store program reference for goroutines to send messages
	globalProgram.Set(prog)

	_, err := prog.Run()

	globalProgram.Set(nil)

	return err
}
