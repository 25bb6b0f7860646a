// Package source supplies the sales records browsed by the application.
package source

import (
	"context"
	"slices"

	"github.com/Veraticus/retail-sales/internal/model"
)

// Source provides a finite, ordered record set at startup.
type Source interface {
	Records(ctx context.Context) ([]model.SalesRecord, error)
}

// Static is a Source backed by a fixed slice.
type Static []model.SalesRecord

// Records returns a copy of the slice.
func (s Static) Records(_ context.Context) ([]model.SalesRecord, error) {
	return slices.Clone([]model.SalesRecord(s)), nil
}
