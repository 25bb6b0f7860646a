package tui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// New creates a browser model. Records load when the program calls Init.
func New(ctx context.Context, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newModel(ctx, cfg)
}

// Run starts the interactive browser and blocks until the user quits or
// ctx is canceled.
func Run(ctx context.Context, opts ...Option) error {
	m := New(ctx, opts...)

	p := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	slog.Debug("starting TUI")
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("TUI error: %w", err)
	}

	if fm, ok := final.(Model); ok && fm.lastError != nil && !isCanceled(fm.lastError) {
		return fm.lastError
	}
	return nil
}
