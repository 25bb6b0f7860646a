package query

import (
	"errors"
	"fmt"

	"github.com/Veraticus/retail-sales/internal/model"
)

// DefaultPageSize is the number of rows per page.
const DefaultPageSize = 10

// Pagination errors. Callers are expected to clamp page numbers first.
var (
	ErrPageOutOfRange  = errors.New("page out of range")
	ErrInvalidPageSize = errors.New("page size must be positive")
)

// Page is one fixed-size slice of an ordered result set.
type Page struct {
	Items      []model.SalesRecord
	Number     int
	Size       int
	TotalPages int
	TotalCount int
}

// IsEmpty reports whether the page has no rows.
func (p Page) IsEmpty() bool {
	return len(p.Items) == 0
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// TotalPages returns max(1, ceil(count/size)).
func TotalPages(count, size int) int {
	if size < 1 || count <= 0 {
		return 1
	}
	return (count + size - 1) / size
}

// ClampPage bounds a requested page to [1, totalPages].
func ClampPage(requested, totalPages int) int {
	return max(1, min(totalPages, requested))
}

// Paginate returns page number page (1-based) of records. It does not
// correct out-of-range pages.
func Paginate(records []model.SalesRecord, page, size int) (Page, error) {
	if size < 1 {
		return Page{}, fmt.Errorf("%w: %d", ErrInvalidPageSize, size)
	}

	total := TotalPages(len(records), size)
	if page < 1 || page > total {
		return Page{}, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, page, total)
	}

	start := (page - 1) * size
	end := min(start+size, len(records))

	return Page{
		Items:      records[start:end:end],
		Number:     page,
		Size:       size,
		TotalPages: total,
		TotalCount: len(records),
	}, nil
}
