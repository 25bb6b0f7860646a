// Package testing provides test utilities for TUI components.
package testing

import (
	tea "github.com/charmbracelet/bubbletea"
)

// TestRenderer captures the output of a Bubble Tea component without requiring a real terminal.
type TestRenderer struct {
	// Output contains the last rendered view
	Output string

	// Commands contains all commands returned by Update calls
	Commands []tea.Cmd

	// UpdateCount tracks how many times Update was called
	UpdateCount int
}

// NewTestRenderer creates a new test renderer.
func NewTestRenderer() *TestRenderer {
	return &TestRenderer{}
}

// Render renders a component and captures its output.
func (r *TestRenderer) Render(model tea.Model) string {
	r.Output = model.View()
	return r.Output
}

// Update sends a message to the component and captures the result.
func (r *TestRenderer) Update(model tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	r.UpdateCount++

	newModel, cmd := model.Update(msg)
	if cmd != nil {
		r.Commands = append(r.Commands, cmd)
	}

	r.Output = newModel.View()
	return newModel, cmd
}

// Plain returns the last output without ANSI escape codes.
func (r *TestRenderer) Plain() string {
	return StripANSI(r.Output)
}
