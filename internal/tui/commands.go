package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/retail-sales/internal/common"
	tea "github.com/charmbracelet/bubbletea"
)

const loadTimeout = 30 * time.Second

// loadRecords reads the full record set from the configured source.
func (m Model) loadRecords() tea.Cmd {
	src := m.config.Source
	parent := m.ctx

	return func() tea.Msg {
		if src == nil {
			return errorMsg{err: fmt.Errorf("%w: no record source", common.ErrMissingConfig), context: "loading records"}
		}

		ctx, cancel := context.WithTimeout(parent, loadTimeout)
		defer cancel()

		start := time.Now()
		records, err := src.Records(ctx)
		if err != nil {
			return errorMsg{err: fmt.Errorf("failed to load records: %w", err), context: "loading records"}
		}
		if len(records) == 0 {
			slog.Warn("record source is empty")
		}

		slog.Debug("records loaded", "count", len(records), "elapsed", time.Since(start))
		return recordsLoadedMsg{records: records}
	}
}

// isCanceled reports whether err came from a canceled load.
func isCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
