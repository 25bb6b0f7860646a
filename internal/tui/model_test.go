package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/retail-sales/internal/browse"
	"github.com/Veraticus/retail-sales/internal/model"
	"github.com/Veraticus/retail-sales/internal/query"
	"github.com/Veraticus/retail-sales/internal/source"
	"github.com/Veraticus/retail-sales/internal/testutil"
	tuitest "github.com/Veraticus/retail-sales/internal/tui/testing"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = testutil.Now

type failingSource struct {
	err error
}

func (s failingSource) Records(context.Context) ([]model.SalesRecord, error) {
	return nil, s.err
}

// loadedModel returns a model that has already received its records.
func loadedModel(t *testing.T, opts ...Option) Model {
	t.Helper()

	opts = append([]Option{
		WithSource(source.NewGenerator(source.DefaultGeneratorConfig())),
		WithClock(testNow),
		WithSize(140, 50),
	}, opts...)
	m := New(context.Background(), opts...)

	cmd := m.Init()
	require.NotNil(t, cmd)

	return send(t, m, cmd())
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	renderer := tuitest.NewTestRenderer()
	result := tuitest.NewInputSequence(msgs...).Apply(m, renderer)

	next, ok := result.(Model)
	require.True(t, ok)
	return next
}

func plainView(m Model) string {
	return tuitest.StripANSI(m.View())
}

func TestModel_LoadingScreen(t *testing.T) {
	m := New(context.Background(), WithSize(100, 30))

	assert.False(t, m.Ready())
	assert.Contains(t, plainView(m), "Loading sales records...")

	// Navigation keys are ignored until records arrive.
	m = send(t, m, tuitest.KeyRight(), tuitest.KeyPress("/"))
	assert.Equal(t, FocusTable, m.Focus())
}

func TestModel_InitialPage(t *testing.T) {
	m := loadedModel(t)

	require.True(t, m.Ready())
	view := plainView(m)
	assert.Contains(t, view, "Retail Sales")
	assert.Contains(t, view, "150 records")
	assert.Contains(t, view, "Showing 10 of 150 results")
	assert.Contains(t, view, "Page 1 of 15")
}

func TestModel_Paging(t *testing.T) {
	m := loadedModel(t)

	tests := []struct {
		name string
		msg  tea.Msg
		want int
	}{
		{name: "right", msg: tuitest.KeyRight(), want: 2},
		{name: "n", msg: tuitest.KeyPress("n"), want: 3},
		{name: "left", msg: tuitest.KeyLeft(), want: 2},
		{name: "p", msg: tuitest.KeyPress("p"), want: 1},
		{name: "prev at first page", msg: tuitest.KeyLeft(), want: 1},
		{name: "end", msg: tuitest.KeyPress("G"), want: 15},
		{name: "next at last page", msg: tuitest.KeyRight(), want: 15},
		{name: "home", msg: tuitest.KeyPress("g"), want: 1},
	}

	for _, tt := range tests {
		m = send(t, m, tt.msg)
		assert.Equal(t, tt.want, m.Browser().Page(), tt.name)
	}

	m = send(t, m, tuitest.KeyPress("G"))
	assert.Contains(t, plainView(m), "Page 15 of 15")
}

func TestModel_SearchIsLive(t *testing.T) {
	m := loadedModel(t)
	m = send(t, m, tuitest.KeyRight(), tuitest.KeyRight())
	require.Equal(t, 3, m.Browser().Page())

	m = send(t, m, tuitest.KeyPress("/"))
	require.Equal(t, FocusSearch, m.Focus())

	m = send(t, m, tuitest.KeyPress("j"))
	assert.Equal(t, "j", m.Browser().Search())
	assert.Equal(t, 1, m.Browser().Page())

	m = send(t, m, tuitest.NewInputSequence().Type("ohn d").Messages()...)
	assert.Equal(t, "john d", m.Browser().Search())

	res := m.Browser().Result()
	require.NotEmpty(t, res.Rows())
	for _, r := range res.Rows() {
		assert.Equal(t, "John Doe", r.CustomerName)
	}

	// Keys that mean something in the table are text while searching.
	m = send(t, m, tuitest.KeyPress("q"))
	assert.Equal(t, "john dq", m.Browser().Search())
	assert.True(t, m.Browser().Result().Empty())
	assert.Contains(t, tuitest.NormalizeWhitespace(plainView(m)), browse.EmptyMessage)
	assert.Contains(t, plainView(m), "Page 1 of 1")

	m = send(t, m, tuitest.KeyBackspace(), tuitest.KeyEnter())
	assert.Equal(t, FocusTable, m.Focus())
	assert.Equal(t, "john d", m.Browser().Search())
}

func TestModel_SortKeys(t *testing.T) {
	m := loadedModel(t)
	m = send(t, m, tuitest.KeyRight())

	m = send(t, m, tuitest.KeyPress("s"))
	assert.Equal(t, query.SortDateAsc, m.Browser().SortKey())
	assert.Equal(t, 1, m.Browser().Page())
	assert.Contains(t, plainView(m), "Sort: Date (Oldest First)")

	m = send(t, m, tuitest.KeyPress("s"), tuitest.KeyPress("S"))
	assert.Equal(t, query.SortQuantityAsc, m.Browser().SortKey())

	rows := m.Browser().Result().Rows()
	for i := 1; i < len(rows); i++ {
		assert.LessOrEqual(t, rows[i-1].Quantity, rows[i].Quantity)
	}
}

func TestModel_FilterPanel(t *testing.T) {
	m := loadedModel(t)
	options := m.Browser().Options()

	m = send(t, m, tuitest.KeyRight(), tuitest.KeyPress("f"))
	require.Equal(t, FocusFilters, m.Focus())
	assert.True(t, m.Browser().FiltersVisible())
	assert.Equal(t, 2, m.Browser().Page())
	assert.Contains(t, plainView(m), "Payment Method")

	m = send(t, m, tuitest.KeySpace())
	region := options.Regions[0]
	assert.Equal(t, []string{region}, m.Browser().Criteria().Regions)
	assert.Equal(t, 1, m.Browser().Page())
	for _, r := range m.Browser().Result().Rows() {
		assert.Equal(t, region, r.CustomerRegion)
	}
	assert.Contains(t, plainView(m), "Filters (1)")

	// Options stay derived from the full record set.
	assert.Equal(t, options, m.Browser().Options())

	m = send(t, m, tuitest.KeyEsc())
	assert.Equal(t, FocusTable, m.Focus())
	assert.False(t, m.Browser().FiltersVisible())
	assert.Equal(t, []string{region}, m.Browser().Criteria().Regions)
}

func TestModel_AgeFilterFromPanel(t *testing.T) {
	m := loadedModel(t)
	options := m.Browser().Options()

	checkboxes := 0
	for _, f := range query.FilterFields() {
		checkboxes += len(options.Values(f))
	}

	seq := tuitest.NewInputSequence(tuitest.KeyPress("f")).
		Repeat(tuitest.KeyDown(), checkboxes).
		Type("60")
	m = send(t, m, seq.Messages()...)

	criteria := m.Browser().Criteria()
	require.NotNil(t, criteria.Age.Min)
	assert.Equal(t, 60, *criteria.Age.Min)

	res := m.Browser().Result()
	assert.Less(t, res.FilteredCount(), 150)
	for _, r := range res.Rows() {
		assert.GreaterOrEqual(t, r.Age, 60)
	}

	// Clearing from the panel empties the input and the criteria.
	m = send(t, m, tuitest.KeyPress("c"))
	assert.True(t, m.Browser().Criteria().IsZero())
	assert.Equal(t, 150, m.Browser().Result().FilteredCount())
}

func TestModel_ClearKeepsSearch(t *testing.T) {
	m := loadedModel(t)

	seq := tuitest.NewInputSequence(tuitest.KeyPress("/")).
		Type("a").
		Add(tuitest.KeyEsc(), tuitest.KeyPress("f"), tuitest.KeySpace(), tuitest.KeyEsc())
	m = send(t, m, seq.Messages()...)
	require.Equal(t, 1, m.Browser().Criteria().ActiveCount())

	m = send(t, m, tuitest.KeyPress("c"))
	assert.Equal(t, 0, m.Browser().Criteria().ActiveCount())
	assert.Equal(t, "a", m.Browser().Search())
}

func TestModel_RecordDetail(t *testing.T) {
	m := loadedModel(t)
	second := m.Browser().Result().Rows()[1]

	m = send(t, m, tuitest.KeyDown(), tuitest.KeyEnter())
	require.Equal(t, FocusDetail, m.Focus())
	view := plainView(m)
	assert.Contains(t, view, "Sale "+second.ID)
	assert.Contains(t, view, second.StoreLocation)

	m = send(t, m, tuitest.KeyEsc())
	assert.Equal(t, FocusTable, m.Focus())
	assert.Contains(t, plainView(m), "Showing 10 of 150 results")
}

func TestModel_LoadError(t *testing.T) {
	m := New(context.Background(),
		WithSource(failingSource{err: errors.New("database is locked")}),
		WithSize(100, 30),
	)
	m = send(t, m, m.Init()())

	require.Error(t, m.Err())
	assert.False(t, m.Ready())
	view := plainView(m)
	assert.Contains(t, view, "Failed while loading records")
	assert.Contains(t, view, "database is locked")

	next, cmd := m.Update(tuitest.KeyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestModel_CanceledLoadQuits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := New(ctx, WithClock(testNow))
	msg := m.Init()()

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name  string
		setup []tea.Msg
		key   tea.KeyMsg
	}{
		{name: "q in table", key: tuitest.KeyPress("q")},
		{name: "ctrl+c while searching", setup: []tea.Msg{tuitest.KeyPress("/")}, key: tuitest.KeyCtrlC()},
		{name: "ctrl+c in filters", setup: []tea.Msg{tuitest.KeyPress("f")}, key: tuitest.KeyCtrlC()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := send(t, loadedModel(t), tt.setup...)

			_, cmd := m.Update(tt.key)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestModel_NarrowLayoutStacksFilters(t *testing.T) {
	m := loadedModel(t, WithSize(90, 60))
	m = send(t, m, tuitest.KeyPress("f"))

	lines := strings.Split(plainView(m), "\n")
	filtersLine, tableLine := -1, -1
	for i, line := range lines {
		if filtersLine < 0 && strings.Contains(line, "Filters") {
			filtersLine = i
		}
		if tableLine < 0 && strings.Contains(line, "Showing 10 of 150 results") {
			tableLine = i
		}
	}
	require.GreaterOrEqual(t, filtersLine, 0)
	require.GreaterOrEqual(t, tableLine, 0)
	assert.Less(t, filtersLine, tableLine)
}

func TestModel_HelpToggle(t *testing.T) {
	m := loadedModel(t)
	assert.NotContains(t, plainView(m), "reverse sort")

	m = send(t, m, tuitest.KeyPress("?"))
	assert.Contains(t, plainView(m), "reverse sort")
}

func TestModel_StaticSourceAndPageSize(t *testing.T) {
	records := source.Generate(source.GeneratorConfig{Count: 15, Seed: 1, Year: 2024})
	m := loadedModel(t,
		WithSource(source.Static(records)),
		WithPageSize(5),
		WithSortKey(query.SortNameAsc),
	)

	assert.Contains(t, plainView(m), "Page 1 of 3")
	assert.Equal(t, query.SortNameAsc, m.Browser().SortKey())
}

func TestModel_LoadsFromDatabase(t *testing.T) {
	records := testutil.Records(25, 3)
	store := testutil.SetupTestDB(t, records)

	m := loadedModel(t, WithSource(store), WithSortKey(query.SortDateAsc))

	view := plainView(m)
	assert.Contains(t, view, "25 records")
	assert.Contains(t, view, "Page 1 of 3")

	oldest := query.Sort(records, query.SortDateAsc)[0]
	assert.Equal(t, oldest.ID, m.Browser().Result().Rows()[0].ID)
}
