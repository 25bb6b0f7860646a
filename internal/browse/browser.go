// Package browse holds the state of a browsing session: search term,
// filter criteria, sort key and current page. Every change to search,
// criteria or sort returns the session to page 1.
package browse

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/retail-sales/internal/model"
	"github.com/Veraticus/retail-sales/internal/query"
)

// Browser is the mutable session state over an immutable record set.
// The zero value is not usable; call New.
type Browser struct {
	now      func() time.Time
	records  []model.SalesRecord
	options  query.FilterOptions
	criteria query.Criteria
	sortKey  query.SortKey
	page     int
	pageSize int

	showFilters bool

	// Stage caches, invalidated by the setters upstream of them.
	filtered    []model.SalesRecord
	sorted      []model.SalesRecord
	filterValid bool
	sortValid   bool
}

// Option configures a Browser.
type Option func(*Browser)

// WithClock sets the clock used as the default upper date bound.
func WithClock(now func() time.Time) Option {
	return func(b *Browser) {
		b.now = now
	}
}

// WithPageSize overrides the page size. Values below 1 are ignored.
func WithPageSize(size int) Option {
	return func(b *Browser) {
		if size >= 1 {
			b.pageSize = size
		}
	}
}

// WithSortKey sets the initial sort key.
func WithSortKey(key query.SortKey) Option {
	return func(b *Browser) {
		b.sortKey = key
	}
}

// New creates a session over records. Filter options are derived here,
// once, from the full set.
func New(records []model.SalesRecord, opts ...Option) Browser {
	b := Browser{
		now:      time.Now,
		records:  records,
		options:  query.Options(records),
		sortKey:  query.DefaultSortKey,
		page:     1,
		pageSize: query.DefaultPageSize,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// Options returns the categorical choices derived from the full record set.
func (b Browser) Options() query.FilterOptions {
	return b.options
}

// TotalRecords returns the size of the unfiltered record set.
func (b Browser) TotalRecords() int {
	return len(b.records)
}

// Search returns the current search term.
func (b Browser) Search() string {
	return b.criteria.Search
}

// Criteria returns a copy of the active criteria.
func (b Browser) Criteria() query.Criteria {
	return b.criteria.Clone()
}

// SortKey returns the active sort key.
func (b Browser) SortKey() query.SortKey {
	return b.sortKey
}

// Page returns the current 1-based page number.
func (b Browser) Page() int {
	return b.page
}

// PageSize returns the number of rows per page.
func (b Browser) PageSize() int {
	return b.pageSize
}

// FiltersVisible reports whether the filter panel is open.
func (b Browser) FiltersVisible() bool {
	return b.showFilters
}

// ToggleFilterPanel opens or closes the filter panel. It does not touch
// criteria or the page.
func (b *Browser) ToggleFilterPanel() {
	b.showFilters = !b.showFilters
}

// SetSearch replaces the search term.
func (b *Browser) SetSearch(term string) {
	b.criteria.Search = term
	b.criteriaChanged()
}

// SetCriteria replaces the filter set. The search term is left as is.
func (b *Browser) SetCriteria(c query.Criteria) {
	search := b.criteria.Search
	b.criteria = c.Clone()
	b.criteria.Search = search
	b.criteriaChanged()
}

// Toggle adds or removes value from a categorical filter.
func (b *Browser) Toggle(field query.FilterField, value string) {
	b.criteria = b.criteria.Toggle(field, value)
	b.criteriaChanged()
}

// SetAgeMin sets the minimum age from raw input. Blank or non-numeric
// input clears the bound.
func (b *Browser) SetAgeMin(text string) {
	b.criteria.Age.Min = ParseAge(text)
	b.criteriaChanged()
}

// SetAgeMax sets the maximum age from raw input.
func (b *Browser) SetAgeMax(text string) {
	b.criteria.Age.Max = ParseAge(text)
	b.criteriaChanged()
}

// SetDateStart sets the start date from YYYY-MM-DD input. Blank or
// malformed input clears the bound.
func (b *Browser) SetDateStart(text string) {
	b.criteria.Dates.Start = ParseDate(text)
	b.criteriaChanged()
}

// SetDateEnd sets the end date from YYYY-MM-DD input.
func (b *Browser) SetDateEnd(text string) {
	b.criteria.Dates.End = ParseDate(text)
	b.criteriaChanged()
}

// ClearFilters removes every filter but keeps the search term.
func (b *Browser) ClearFilters() {
	b.criteria = query.Criteria{Search: b.criteria.Search}
	b.criteriaChanged()
}

// SetSortKey changes the ordering.
func (b *Browser) SetSortKey(key query.SortKey) {
	b.sortKey = key
	b.sortValid = false
	b.page = 1
}

// CycleSort advances to the next sort key in selector order.
func (b *Browser) CycleSort() {
	b.SetSortKey(b.sortKey.Next())
}

// SetPage moves to the requested page, clamped to the valid range.
func (b *Browser) SetPage(page int) {
	b.page = query.ClampPage(page, b.totalPages())
}

// NextPage moves forward one page if possible.
func (b *Browser) NextPage() {
	b.SetPage(b.page + 1)
}

// PrevPage moves back one page if possible.
func (b *Browser) PrevPage() {
	b.SetPage(b.page - 1)
}

// FirstPage moves to page 1.
func (b *Browser) FirstPage() {
	b.page = 1
}

// LastPage moves to the final page.
func (b *Browser) LastPage() {
	b.page = b.totalPages()
}

func (b *Browser) criteriaChanged() {
	b.filterValid = false
	b.sortValid = false
	b.page = 1
}

func (b *Browser) totalPages() int {
	return query.TotalPages(len(b.ordered()), b.pageSize)
}

// ordered runs filter then sort, reusing cached stages when their inputs
// have not changed.
func (b *Browser) ordered() []model.SalesRecord {
	if !b.filterValid {
		b.filtered = query.Filter(b.records, b.criteria, b.now())
		b.filterValid = true
		b.sortValid = false
	}
	if !b.sortValid {
		b.sorted = query.Sort(b.filtered, b.sortKey)
		b.sortValid = true
	}
	return b.sorted
}

// Result computes the current page and its summary.
func (b *Browser) Result() Result {
	ordered := b.ordered()
	number := query.ClampPage(b.page, query.TotalPages(len(ordered), b.pageSize))

	page, err := query.Paginate(ordered, number, b.pageSize)
	if err != nil {
		slog.Error("pagination failed", "page", number, "size", b.pageSize, "error", err)
		page = query.Page{Number: 1, Size: b.pageSize, TotalPages: 1}
	}

	return Result{
		Page:         page,
		TotalRecords: len(b.records),
		SortKey:      b.sortKey,
		ActiveCount:  b.criteria.ActiveCount(),
	}
}

// Result is a snapshot of what the view should render.
type Result struct {
	SortKey      query.SortKey
	Page         query.Page
	TotalRecords int
	ActiveCount  int
}

// Rows returns the records on the current page.
func (r Result) Rows() []model.SalesRecord {
	return r.Page.Items
}

// Empty reports whether the current page has no rows.
func (r Result) Empty() bool {
	return r.Page.IsEmpty()
}

// FilteredCount returns the number of records matching the criteria.
func (r Result) FilteredCount() int {
	return r.Page.TotalCount
}

// Summary describes the visible slice, e.g.
// "Showing 10 of 42 results (filtered from 150 total)".
func (r Result) Summary() string {
	s := fmt.Sprintf("Showing %d of %d results", len(r.Page.Items), r.Page.TotalCount)
	if r.Page.TotalCount != r.TotalRecords {
		s += fmt.Sprintf(" (filtered from %d total)", r.TotalRecords)
	}
	return s
}

// PageLabel returns "Page N of M".
func (r Result) PageLabel() string {
	return fmt.Sprintf("Page %d of %d", r.Page.Number, r.Page.TotalPages)
}

// EmptyMessage is shown in place of rows when nothing matches.
const EmptyMessage = "No results found. Try adjusting your search or filters."

// ParseAge parses an age bound. Blank or non-numeric input yields nil.
func ParseAge(text string) *int {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &v
}

// ParseDate parses a YYYY-MM-DD bound. Blank or malformed input yields nil.
func ParseDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	d, err := model.ParseDate(text)
	if err != nil {
		return nil
	}
	return &d
}
