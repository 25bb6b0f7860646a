package browse

import (
	"fmt"
	"testing"
	"time"

	"github.com/Veraticus/retail-sales/internal/model"
	"github.com/Veraticus/retail-sales/internal/query"
	"github.com/Veraticus/retail-sales/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

func newTestBrowser(t *testing.T) Browser {
	t.Helper()
	records := source.Generate(source.DefaultGeneratorConfig())
	return New(records, WithClock(fixedNow))
}

func TestNew_Defaults(t *testing.T) {
	b := newTestBrowser(t)

	assert.Equal(t, 1, b.Page())
	assert.Equal(t, query.DefaultPageSize, b.PageSize())
	assert.Equal(t, query.SortDateDesc, b.SortKey())
	assert.False(t, b.FiltersVisible())
	assert.True(t, b.Criteria().IsZero())
	assert.Equal(t, source.DefaultRecordCount, b.TotalRecords())

	res := b.Result()
	assert.Len(t, res.Rows(), 10)
	assert.Equal(t, 15, res.Page.TotalPages)
	assert.Equal(t, "Showing 10 of 150 results", res.Summary())
	assert.Equal(t, "Page 1 of 15", res.PageLabel())
}

func TestBrowser_ChangesResetPage(t *testing.T) {
	tests := []struct {
		name   string
		change func(b *Browser)
	}{
		{name: "search", change: func(b *Browser) { b.SetSearch("a") }},
		{name: "toggle region", change: func(b *Browser) { b.Toggle(query.FieldRegion, "North") }},
		{name: "age min", change: func(b *Browser) { b.SetAgeMin("20") }},
		{name: "age max", change: func(b *Browser) { b.SetAgeMax("60") }},
		{name: "date start", change: func(b *Browser) { b.SetDateStart("2024-01-01") }},
		{name: "date end", change: func(b *Browser) { b.SetDateEnd("2024-12-31") }},
		{name: "clear filters", change: func(b *Browser) { b.ClearFilters() }},
		{name: "set criteria", change: func(b *Browser) { b.SetCriteria(query.Criteria{Tags: []string{"New"}}) }},
		{name: "sort key", change: func(b *Browser) { b.SetSortKey(query.SortQuantityAsc) }},
		{name: "cycle sort", change: func(b *Browser) { b.CycleSort() }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBrowser(t)
			b.SetPage(3)
			require.Equal(t, 3, b.Page())

			tt.change(&b)

			assert.Equal(t, 1, b.Page())
			assert.Equal(t, 1, b.Result().Page.Number)
		})
	}
}

func TestBrowser_ToggleFilterPanelKeepsPage(t *testing.T) {
	b := newTestBrowser(t)
	b.SetPage(4)

	b.ToggleFilterPanel()
	assert.True(t, b.FiltersVisible())
	assert.Equal(t, 4, b.Page())

	b.ToggleFilterPanel()
	assert.False(t, b.FiltersVisible())
}

func TestBrowser_PageNavigationClamps(t *testing.T) {
	b := newTestBrowser(t)

	b.PrevPage()
	assert.Equal(t, 1, b.Page())

	b.NextPage()
	assert.Equal(t, 2, b.Page())

	b.SetPage(99)
	assert.Equal(t, 15, b.Page())

	b.NextPage()
	assert.Equal(t, 15, b.Page())

	b.SetPage(-4)
	assert.Equal(t, 1, b.Page())

	b.LastPage()
	assert.Equal(t, 15, b.Page())
	b.FirstPage()
	assert.Equal(t, 1, b.Page())
}

func TestBrowser_OptionsIgnoreFilters(t *testing.T) {
	b := newTestBrowser(t)
	before := b.Options()

	b.Toggle(query.FieldRegion, before.Regions[0])
	b.Toggle(query.FieldGender, before.Genders[0])
	b.SetSearch("zzz")

	assert.Equal(t, before, b.Options())
	assert.Len(t, b.Options().Regions, 5)
}

func TestBrowser_EmptyResult(t *testing.T) {
	b := newTestBrowser(t)
	b.SetSearch("no such customer")

	res := b.Result()
	assert.True(t, res.Empty())
	assert.Equal(t, 1, res.Page.TotalPages)
	assert.Equal(t, 1, res.Page.Number)
	assert.Equal(t, 0, res.FilteredCount())
	assert.Equal(t, "Showing 0 of 0 results (filtered from 150 total)", res.Summary())
	assert.Equal(t, "Page 1 of 1", res.PageLabel())

	b.NextPage()
	assert.Equal(t, 1, b.Page())
}

func TestBrowser_ResultMatchesPipeline(t *testing.T) {
	records := source.Generate(source.DefaultGeneratorConfig())
	b := New(records, WithClock(fixedNow))

	b.Toggle(query.FieldCategory, "Books")
	b.Toggle(query.FieldCategory, "Food")
	b.SetAgeMin("25")
	b.SetSortKey(query.SortNameAsc)
	b.SetPage(2)

	criteria := b.Criteria()
	want := query.Sort(query.Filter(records, criteria, fixedNow()), query.SortNameAsc)
	expected, err := query.Paginate(want, query.ClampPage(2, query.TotalPages(len(want), 10)), 10)
	require.NoError(t, err)

	got := b.Result()
	assert.Equal(t, expected, got.Page)
	assert.Equal(t, 2, got.ActiveCount)

	// Recomputing with unchanged state is idempotent.
	assert.Equal(t, got, b.Result())
}

func TestBrowser_SearchAndClear(t *testing.T) {
	records := []model.SalesRecord{
		{ID: "1", CustomerName: "John Doe", CustomerRegion: "North", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", CustomerName: "Jane Smith", CustomerRegion: "South", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
	}
	b := New(records, WithClock(fixedNow))

	b.SetSearch("DOE")
	b.Toggle(query.FieldRegion, "South")
	assert.True(t, b.Result().Empty())

	b.ClearFilters()
	assert.Equal(t, "DOE", b.Search())
	require.Len(t, b.Result().Rows(), 1)
	assert.Equal(t, "1", b.Result().Rows()[0].ID)
	assert.Equal(t, "Showing 1 of 1 results (filtered from 2 total)", b.Result().Summary())
}

func TestBrowser_BlankSearchKeepsEverything(t *testing.T) {
	b := newTestBrowser(t)

	b.SetSearch("   ")
	res := b.Result()

	assert.Equal(t, "   ", b.Search())
	assert.Equal(t, 150, res.FilteredCount())
	assert.Equal(t, "Showing 10 of 150 results", res.Summary())
}

func TestBrowser_DateStartUsesClockAsUpperBound(t *testing.T) {
	records := []model.SalesRecord{
		{ID: "past", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "future", Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	b := New(records, WithClock(fixedNow))
	b.SetDateStart("2024-01-01")

	rows := b.Result().Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "past", rows[0].ID)
}

func TestBrowser_WithPageSize(t *testing.T) {
	records := make([]model.SalesRecord, 7)
	for i := range records {
		records[i].ID = fmt.Sprint(i)
	}

	b := New(records, WithPageSize(3), WithSortKey(query.SortQuantityAsc))
	assert.Equal(t, 3, b.Result().Page.TotalPages)
	assert.Equal(t, query.SortQuantityAsc, b.SortKey())

	ignored := New(records, WithPageSize(0))
	assert.Equal(t, query.DefaultPageSize, ignored.PageSize())
}

func TestParseAge(t *testing.T) {
	assert.Nil(t, ParseAge(""))
	assert.Nil(t, ParseAge("   "))
	assert.Nil(t, ParseAge("abc"))
	require.NotNil(t, ParseAge(" 30 "))
	assert.Equal(t, 30, *ParseAge(" 30 "))
}

func TestParseDate(t *testing.T) {
	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("2024-13-01"))
	assert.Nil(t, ParseDate("2024-02"))

	d := ParseDate("2024-02-29")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *d)
}
