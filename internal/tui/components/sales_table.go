package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/retail-sales/internal/browse"
	"github.com/Veraticus/retail-sales/internal/model"
	"github.com/Veraticus/retail-sales/internal/query"
	"github.com/Veraticus/retail-sales/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SalesTableModel renders one page of sales records.
type SalesTableModel struct {
	theme  themes.Theme
	result browse.Result
	table  table.Model
	width  int
	height int
}

// column describes a table column and its share of the spare width.
type column struct {
	title    string
	minWidth int
	weight   float64
	value    func(r model.SalesRecord) string
}

var salesColumns = []column{
	{title: "Date", minWidth: 10, weight: 0.08, value: func(r model.SalesRecord) string { return r.DateString() }},
	{title: "Customer", minWidth: 14, weight: 0.16, value: func(r model.SalesRecord) string { return r.CustomerName }},
	{title: "Phone", minWidth: 14, weight: 0.10, value: func(r model.SalesRecord) string { return r.PhoneNumber }},
	{title: "Gender", minWidth: 6, weight: 0.05, value: func(r model.SalesRecord) string { return r.Gender }},
	{title: "Age", minWidth: 3, weight: 0.02, value: func(r model.SalesRecord) string { return strconv.Itoa(r.Age) }},
	{title: "Region", minWidth: 7, weight: 0.06, value: func(r model.SalesRecord) string { return r.CustomerRegion }},
	{title: "Category", minWidth: 11, weight: 0.09, value: func(r model.SalesRecord) string { return r.ProductCategory }},
	{title: "Tag", minWidth: 9, weight: 0.06, value: func(r model.SalesRecord) string { return r.Tag }},
	{title: "Qty", minWidth: 3, weight: 0.02, value: func(r model.SalesRecord) string { return strconv.Itoa(r.Quantity) }},
	{title: "Final", minWidth: 9, weight: 0.08, value: func(r model.SalesRecord) string { return fmt.Sprintf("%.2f", r.FinalAmount) }},
	{title: "Payment", minWidth: 11, weight: 0.09, value: func(r model.SalesRecord) string { return r.PaymentMethod }},
	{title: "Status", minWidth: 10, weight: 0.07, value: func(r model.SalesRecord) string { return r.OrderStatus }},
}

// tableHeight fits a full page plus the column header and its border.
const tableHeight = query.DefaultPageSize + 2

// NewSalesTable creates an empty sales table.
func NewSalesTable(theme themes.Theme) SalesTableModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(tableHeight),
	)

	// Page keys belong to the pager, so the table only moves its cursor.
	t.KeyMap = table.KeyMap{
		LineUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		LineDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := SalesTableModel{
		table:  t,
		theme:  theme,
		width:  120,
		height: 24,
	}
	m.updateColumnWidths()

	return m
}

// SetResult replaces the rows shown and moves the cursor to the top.
func (m *SalesTableModel) SetResult(res browse.Result) {
	m.result = res
	m.table.SetRows(buildRows(res.Rows()))
	m.table.SetCursor(0)
}

// Result returns the snapshot currently displayed.
func (m SalesTableModel) Result() browse.Result {
	return m.result
}

// Selected returns the record under the cursor.
func (m SalesTableModel) Selected() (model.SalesRecord, bool) {
	rows := m.result.Rows()
	i := m.table.Cursor()
	if i < 0 || i >= len(rows) {
		return model.SalesRecord{}, false
	}
	return rows[i], true
}

// Update moves the row cursor.
func (m SalesTableModel) Update(msg tea.Msg) (SalesTableModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the summary header, the rows or the empty message, and the pager.
func (m SalesTableModel) View() string {
	body := m.table.View()
	if m.result.Empty() {
		body = lipgloss.NewStyle().
			Foreground(m.theme.Muted).
			Padding(1, 2).
			Render(browse.EmptyMessage)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m SalesTableModel) renderHeader() string {
	parts := []string{m.result.Summary()}
	if m.result.ActiveCount > 0 {
		parts = append(parts, fmt.Sprintf("Filters: %d active", m.result.ActiveCount))
	}
	parts = append(parts, "Sort: "+m.result.SortKey.Label())

	return m.theme.Subtitle.Render(strings.Join(parts, "  |  "))
}

func (m SalesTableModel) renderFooter() string {
	page := m.result.Page

	prev := "‹ Prev"
	if !page.HasPrev() {
		prev = lipgloss.NewStyle().Foreground(m.theme.Border).Render(prev)
	}
	next := "Next ›"
	if !page.HasNext() {
		next = lipgloss.NewStyle().Foreground(m.theme.Border).Render(next)
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		prev,
		"  ",
		m.theme.Bold.Render(m.result.PageLabel()),
		"  ",
		next,
	)
}

func buildRows(records []model.SalesRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		row := make(table.Row, len(salesColumns))
		for i, c := range salesColumns {
			row[i] = c.value(r)
		}
		rows = append(rows, row)
	}
	return rows
}

// Resize updates the component size.
func (m *SalesTableModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Summary and pager lines sit outside the table.
	m.table.SetHeight(max(3, min(height-2, tableHeight)))
	m.updateColumnWidths()
}

// updateColumnWidths hands out spare width in proportion to each column's weight.
func (m *SalesTableModel) updateColumnWidths() {
	available := max(m.width-2*len(salesColumns), 60)

	cols := make([]table.Column, len(salesColumns))
	for i, c := range salesColumns {
		cols[i] = table.Column{
			Title: c.title,
			Width: max(c.minWidth, int(float64(available)*c.weight)),
		}
	}
	m.table.SetColumns(cols)
}
