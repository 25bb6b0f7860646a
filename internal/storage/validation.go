// Package storage provides the SQLite record store.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/retail-sales/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidRecord = errors.New("invalid sales record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateRecords validates a slice of records.
func validateRecords(records []model.SalesRecord) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: records", ErrEmptySlice)
	}

	for i := range records {
		if err := validateRecord(&records[i]); err != nil {
			return fmt.Errorf("record at index %d: %w", i, err)
		}
	}
	return nil
}

// validateRecord validates a single record.
func validateRecord(r *model.SalesRecord) error {
	if r.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRecord)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.CustomerName) == "" {
		return fmt.Errorf("%w: missing customer name", ErrInvalidRecord)
	}
	if r.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidRecord)
	}
	if err := r.CheckAmounts(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}
