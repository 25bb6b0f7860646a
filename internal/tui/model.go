package tui

import (
	"context"

	"github.com/Veraticus/retail-sales/internal/browse"
	"github.com/Veraticus/retail-sales/internal/common"
	"github.com/Veraticus/retail-sales/internal/model"
	"github.com/Veraticus/retail-sales/internal/query"
	"github.com/Veraticus/retail-sales/internal/tui/components"
	"github.com/Veraticus/retail-sales/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Focus identifies which part of the screen receives key presses.
type Focus int

const (
	FocusTable Focus = iota
	FocusSearch
	FocusFilters
	FocusDetail
)

// Model holds the main TUI state.
type Model struct {
	ctx        context.Context
	lastError  error
	theme      themes.Theme
	errContext string
	help       help.Model
	search     textinput.Model
	config     Config
	keymap     KeyMap
	browser    browse.Browser
	table      components.SalesTableModel
	filters    components.FilterPanelModel
	detail     components.RecordDetailModel
	focus      Focus
	width      int
	height     int
	ready      bool
	quitting   bool
}

// chromeHeight is the title, search, spacer and help lines around the body.
const chromeHeight = 5

// newModel creates a new model with the given configuration.
func newModel(ctx context.Context, cfg Config) Model {
	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "customer name or phone"
	search.CharLimit = 64
	search.Width = 40

	h := help.New()
	h.ShowAll = cfg.ShowHelp

	m := Model{
		ctx:     ctx,
		config:  cfg,
		keymap:  DefaultKeyMap(),
		theme:   cfg.Theme,
		help:    h,
		search:  search,
		table:   components.NewSalesTable(cfg.Theme),
		filters: components.NewFilterPanel(query.FilterOptions{}, cfg.Theme),
		width:   cfg.Width,
		height:  cfg.Height,
	}
	m.handleResize()
	return m
}

// Init starts loading records.
func (m Model) Init() tea.Cmd {
	return m.loadRecords()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case recordsLoadedMsg:
		m.setRecords(msg.records)
		return m, nil

	case errorMsg:
		m.lastError = msg.err
		m.errContext = msg.context
		common.LogError(msg.err, msg.context, nil)
		if isCanceled(msg.err) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	// Cursor blinks and similar housekeeping for the focused inputs.
	var cmd tea.Cmd
	switch m.focus {
	case FocusSearch:
		m.search, cmd = m.search.Update(msg)
	case FocusFilters:
		m.filters, cmd = m.filters.Update(msg)
	}
	return m, cmd
}

// setRecords starts a browsing session over records.
func (m *Model) setRecords(records []model.SalesRecord) {
	m.browser = browse.New(records,
		browse.WithClock(m.config.Now),
		browse.WithPageSize(m.config.PageSize),
		browse.WithSortKey(m.config.SortKey),
	)
	m.filters = components.NewFilterPanel(m.browser.Options(), m.theme)
	m.ready = true
	m.refresh()
	m.handleResize()
}

// refresh pushes the current result into the components.
func (m *Model) refresh() {
	m.table.SetResult(m.browser.Result())
	m.filters.SetCriteria(m.browser.Criteria())
}

// handleKey routes a key press to whichever part of the screen has focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if !m.ready || m.lastError != nil {
		if key.Matches(msg, m.keymap.Quit, m.keymap.Back) {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	switch m.focus {
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusFilters:
		return m.handleFilterKey(msg)
	case FocusDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleTableKey(msg)
	}
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Search):
		m.focus = FocusSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keymap.ToggleFilter):
		m.browser.ToggleFilterPanel()
		m.focus = FocusFilters
		m.handleResize()
		return m, nil

	case key.Matches(msg, m.keymap.ClearFilters):
		m.browser.ClearFilters()
		m.filters.Reset()

	case key.Matches(msg, m.keymap.CycleSort):
		m.browser.CycleSort()

	case key.Matches(msg, m.keymap.ReverseSort):
		m.browser.SetSortKey(m.browser.SortKey().Reverse())

	case key.Matches(msg, m.keymap.NextPage):
		m.browser.NextPage()

	case key.Matches(msg, m.keymap.PrevPage):
		m.browser.PrevPage()

	case key.Matches(msg, m.keymap.FirstPage):
		m.browser.FirstPage()

	case key.Matches(msg, m.keymap.LastPage):
		m.browser.LastPage()

	case key.Matches(msg, m.keymap.Select):
		if rec, ok := m.table.Selected(); ok {
			m.detail = components.NewRecordDetail(rec, m.theme)
			m.focus = FocusDetail
			m.handleResize()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.handleResize()
		return m, nil

	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	m.refresh()
	return m, nil
}

// handleSearchKey feeds the search box. The result updates on every keystroke.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Back, m.keymap.Select) {
		m.search.Blur()
		m.focus = FocusTable
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if value := m.search.Value(); value != before {
		m.browser.SetSearch(value)
		m.refresh()
	}
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.Back, m.keymap.ToggleFilter) {
		m.browser.ToggleFilterPanel()
		m.focus = FocusTable
		m.handleResize()
		return m, nil
	}

	var cmd tea.Cmd
	m.filters, cmd = m.filters.Update(msg)
	if changes := m.filters.Changes(); len(changes) > 0 {
		m.applyFilterChanges(changes)
		m.refresh()
	}
	return m, cmd
}

func (m *Model) applyFilterChanges(changes []components.FilterChange) {
	for _, c := range changes {
		switch c.Kind {
		case components.FilterToggled:
			m.browser.Toggle(c.Field, c.Value)
		case components.AgeMinChanged:
			m.browser.SetAgeMin(c.Value)
		case components.AgeMaxChanged:
			m.browser.SetAgeMax(c.Value)
		case components.DateStartChanged:
			m.browser.SetDateStart(c.Value)
		case components.DateEndChanged:
			m.browser.SetDateEnd(c.Value)
		case components.FiltersCleared:
			m.browser.ClearFilters()
		}
	}
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Back, m.keymap.Select):
		m.focus = FocusTable
	}
	return m, nil
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	m.help.Width = m.width
	bodyHeight := max(3, m.height-chromeHeight)

	tableWidth := m.width
	if m.browser.FiltersVisible() && m.width >= wideLayout {
		tableWidth -= m.filters.Width() + 1
	}

	m.table.Resize(tableWidth, bodyHeight)
	m.detail.Resize(m.width, bodyHeight)
}

// Focus returns which part of the screen receives keys.
func (m Model) Focus() Focus {
	return m.focus
}

// Browser returns a copy of the browsing session.
func (m Model) Browser() *browse.Browser {
	b := m.browser
	return &b
}

// Ready reports whether records have loaded.
func (m Model) Ready() bool {
	return m.ready
}

// Err returns the load error, if any.
func (m Model) Err() error {
	return m.lastError
}
