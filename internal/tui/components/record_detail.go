package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/retail-sales/internal/model"
	"github.com/Veraticus/retail-sales/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// RecordDetailModel shows every field of a single sale.
type RecordDetailModel struct {
	theme  themes.Theme
	record model.SalesRecord
	width  int
	height int
}

// NewRecordDetail creates a detail view for record.
func NewRecordDetail(record model.SalesRecord, theme themes.Theme) RecordDetailModel {
	return RecordDetailModel{
		theme:  theme,
		record: record,
		width:  80,
		height: 24,
	}
}

// Record returns the record being shown.
func (m RecordDetailModel) Record() model.SalesRecord {
	return m.record
}

type detailField struct {
	label string
	value string
}

// View renders the detail view.
func (m RecordDetailModel) View() string {
	r := m.record

	sections := []struct {
		title  string
		fields []detailField
	}{
		{
			title: "Customer",
			fields: []detailField{
				{"ID", r.CustomerID},
				{"Name", r.CustomerName},
				{"Phone", r.PhoneNumber},
				{"Gender", r.Gender},
				{"Age", strconv.Itoa(r.Age)},
				{"Region", r.CustomerRegion},
				{"Type", r.CustomerType},
			},
		},
		{
			title: "Product",
			fields: []detailField{
				{"ID", r.ProductID},
				{"Name", r.ProductName},
				{"Brand", r.Brand},
				{"Category", r.ProductCategory},
				{"Tag", r.Tag},
			},
		},
		{
			title: "Order",
			fields: []detailField{
				{"Date", r.DateString()},
				{"Quantity", strconv.Itoa(r.Quantity)},
				{"Unit Price", fmt.Sprintf("%.2f", r.PricePerUnit)},
				{"Discount", fmt.Sprintf("%.0f%%", r.DiscountPercentage)},
				{"Total", fmt.Sprintf("%.2f", r.TotalAmount)},
				{"Final", fmt.Sprintf("%.2f", r.FinalAmount)},
				{"Payment", r.PaymentMethod},
				{"Status", r.OrderStatus},
				{"Delivery", r.DeliveryType},
			},
		},
		{
			title: "Store",
			fields: []detailField{
				{"ID", r.StoreID},
				{"Location", r.StoreLocation},
				{"Salesperson", r.SalespersonID},
				{"Employee", r.EmployeeName},
			},
		},
	}

	labelStyle := m.theme.Bold.
		Width(13).
		Align(lipgloss.Right)

	blocks := make([]string, 0, len(sections))
	for _, s := range sections {
		lines := []string{m.theme.SectionTitle.Render(s.title)}
		for _, f := range s.fields {
			lines = append(lines, lipgloss.JoinHorizontal(
				lipgloss.Top,
				labelStyle.Render(f.label+": "),
				m.theme.Normal.Render(f.value),
			))
		}
		blocks = append(blocks, lipgloss.NewStyle().MarginRight(2).Render(strings.Join(lines, "\n")))
	}

	var body string
	if m.width >= 100 {
		left := lipgloss.JoinVertical(lipgloss.Left, blocks[0], "", blocks[1])
		right := lipgloss.JoinVertical(lipgloss.Left, blocks[2], "", blocks[3])
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	} else {
		body = strings.Join(blocks, "\n\n")
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Sale "+r.ID),
		"",
		body,
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("esc back to results"),
	)
}

// Resize updates the component dimensions.
func (m *RecordDetailModel) Resize(width, height int) {
	m.width = width
	m.height = height
}
