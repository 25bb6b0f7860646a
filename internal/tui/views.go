package tui

import (
	"fmt"

	"github.com/Veraticus/retail-sales/internal/common"
	"github.com/charmbracelet/lipgloss"
)

// wideLayout is the width from which the filter panel sits beside the table.
const wideLayout = 110

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.lastError != nil {
		return m.renderError()
	}

	if !m.ready {
		return m.renderLoading()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitle(),
		m.search.View(),
		"",
		m.renderBody(),
		"",
		m.help.View(m.keymap),
	)
}

// renderBody lays out the table, the filter panel and the detail view.
func (m Model) renderBody() string {
	if m.focus == FocusDetail {
		return m.detail.View()
	}

	if !m.browser.FiltersVisible() {
		return m.table.View()
	}

	// Narrow terminals stack the panel above the table.
	if m.width < wideLayout {
		return lipgloss.JoinVertical(lipgloss.Left, m.filters.View(), m.table.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.filters.View(), " ", m.table.View())
}

func (m Model) renderTitle() string {
	title := m.theme.Title.Render("Retail Sales")
	count := lipgloss.NewStyle().
		Foreground(m.theme.Muted).
		Render(fmt.Sprintf("  %d records", m.browser.TotalRecords()))

	return lipgloss.JoinHorizontal(lipgloss.Top, title, count)
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Retail Sales"),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Loading sales records..."),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderError renders a load failure.
func (m Model) renderError() string {
	heading := "Something went wrong"
	if m.errContext != "" {
		heading = "Failed while " + m.errContext
	}

	box := m.theme.RoundedBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.StatusError.Render(heading),
		"",
		m.theme.Normal.Render(common.UserMessage(m.lastError)),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press q to quit"),
	))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}
