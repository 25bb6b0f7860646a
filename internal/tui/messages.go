package tui

import "github.com/Veraticus/retail-sales/internal/model"

// Data loading messages.
type recordsLoadedMsg struct {
	records []model.SalesRecord
}

// Error handling.
type errorMsg struct {
	err     error
	context string
}
