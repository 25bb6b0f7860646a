package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/retail-sales/internal/query"
	"github.com/Veraticus/retail-sales/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FilterChangeKind identifies what a FilterChange modifies.
type FilterChangeKind int

// Filter change kinds.
const (
	FilterToggled FilterChangeKind = iota
	AgeMinChanged
	AgeMaxChanged
	DateStartChanged
	DateEndChanged
	FiltersCleared
)

// FilterChange is one edit made in the panel. Value holds the toggled
// option or the raw text of a range input.
type FilterChange struct {
	Field query.FilterField
	Value string
	Kind  FilterChangeKind
}

type rangeInput int

const (
	inputAgeMin rangeInput = iota
	inputAgeMax
	inputDateStart
	inputDateEnd
	rangeInputCount
)

var rangeChangeKinds = [rangeInputCount]FilterChangeKind{
	AgeMinChanged,
	AgeMaxChanged,
	DateStartChanged,
	DateEndChanged,
}

type filterItem struct {
	field   query.FilterField
	value   string
	input   rangeInput
	isInput bool
}

type panelKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Clear  key.Binding
}

var panelKeys = panelKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k", "shift+tab"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j", "tab"),
		key.WithHelp("↓/j", "down"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space", "x", "enter"),
		key.WithHelp("space", "toggle"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "clear all"),
	),
}

// FilterPanelModel lists every filter option as a checkbox plus the age
// and date range inputs. Edits are reported through Changes after each
// Update; the panel never mutates criteria itself.
type FilterPanelModel struct {
	theme    themes.Theme
	criteria query.Criteria
	items    []filterItem
	changes  []FilterChange
	inputs   [rangeInputCount]textinput.Model
	cursor   int
	width    int
}

// NewFilterPanel builds the panel from the options of the full record set.
func NewFilterPanel(options query.FilterOptions, theme themes.Theme) FilterPanelModel {
	var items []filterItem
	for _, f := range query.FilterFields() {
		for _, v := range options.Values(f) {
			items = append(items, filterItem{field: f, value: v})
		}
	}
	for i := rangeInput(0); i < rangeInputCount; i++ {
		items = append(items, filterItem{input: i, isInput: true})
	}

	m := FilterPanelModel{
		theme: theme,
		items: items,
		width: 34,
	}
	for i := rangeInput(0); i < rangeInputCount; i++ {
		in := textinput.New()
		in.Prompt = ""
		if i <= inputAgeMax {
			in.Placeholder = "any"
			in.CharLimit = 3
			in.Width = 5
		} else {
			in.Placeholder = "YYYY-MM-DD"
			in.CharLimit = 10
			in.Width = 11
		}
		m.inputs[i] = in
	}

	return m
}

// SetCriteria updates the selection state shown by the checkboxes.
func (m *FilterPanelModel) SetCriteria(c query.Criteria) {
	m.criteria = c
}

// Changes returns the edits produced by the most recent Update.
func (m FilterPanelModel) Changes() []FilterChange {
	return m.changes
}

// Reset empties every range input.
func (m *FilterPanelModel) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
}

// Update handles navigation, toggling and typing into range inputs.
func (m FilterPanelModel) Update(msg tea.Msg) (FilterPanelModel, tea.Cmd) {
	m.changes = nil

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateInputs(msg)
	}
	if len(m.items) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, panelKeys.Up):
		return m, m.moveTo(m.cursor - 1)
	case key.Matches(keyMsg, panelKeys.Down):
		return m, m.moveTo(m.cursor + 1)
	case key.Matches(keyMsg, panelKeys.Clear):
		m.Reset()
		m.changes = []FilterChange{{Kind: FiltersCleared}}
		return m, nil
	}

	item := m.items[m.cursor]
	if !item.isInput {
		if key.Matches(keyMsg, panelKeys.Toggle) {
			m.changes = []FilterChange{{Kind: FilterToggled, Field: item.field, Value: item.value}}
		}
		return m, nil
	}

	before := m.inputs[item.input].Value()
	var cmd tea.Cmd
	m.inputs[item.input], cmd = m.inputs[item.input].Update(keyMsg)
	if after := m.inputs[item.input].Value(); after != before {
		m.changes = []FilterChange{{Kind: rangeChangeKinds[item.input], Value: after}}
	}
	return m, cmd
}

// updateInputs forwards non-key messages such as cursor blinks.
func (m *FilterPanelModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.inputs))
	for i := range m.inputs {
		var cmd tea.Cmd
		m.inputs[i], cmd = m.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// moveTo places the cursor on item i, focusing it if it is an input.
func (m *FilterPanelModel) moveTo(i int) tea.Cmd {
	m.cursor = max(0, min(i, len(m.items)-1))
	for j := range m.inputs {
		m.inputs[j].Blur()
	}
	if item := m.items[m.cursor]; item.isInput {
		return m.inputs[item.input].Focus()
	}
	return nil
}

// View renders the panel.
func (m FilterPanelModel) View() string {
	var lines []string

	title := "Filters"
	if n := m.criteria.ActiveCount(); n > 0 {
		title = fmt.Sprintf("Filters (%d)", n)
	}
	lines = append(lines, m.theme.Title.Render(title))

	var section query.FilterField
	for i, item := range m.items {
		if item.isInput {
			continue
		}
		if item.field != section {
			section = item.field
			lines = append(lines, "", m.theme.SectionTitle.Render(item.field.Label()))
		}

		box := "[ ]"
		if m.criteria.Has(item.field, item.value) {
			box = m.theme.Checked.Render("[x]")
		}
		lines = append(lines, m.marker(i)+box+" "+item.value)
	}

	lines = append(lines, "", m.theme.SectionTitle.Render("Age Range"))
	lines = append(lines, m.inputLine(inputAgeMin, "Min "), m.inputLine(inputAgeMax, "Max "))
	lines = append(lines, "", m.theme.SectionTitle.Render("Date Range"))
	lines = append(lines, m.inputLine(inputDateStart, "From "), m.inputLine(inputDateEnd, "To   "))

	lines = append(lines, "", lipgloss.NewStyle().
		Foreground(m.theme.Muted).
		Render("space toggle · c clear · esc close"))

	return m.theme.BorderedBox.
		Width(m.width).
		Render(strings.Join(lines, "\n"))
}

func (m FilterPanelModel) inputLine(in rangeInput, label string) string {
	return m.marker(len(m.items)-int(rangeInputCount)+int(in)) + label + m.inputs[in].View()
}

func (m FilterPanelModel) marker(i int) string {
	if i == m.cursor {
		return lipgloss.NewStyle().Foreground(m.theme.Primary).Render("› ")
	}
	return "  "
}

// Width returns the rendered width including the border.
func (m FilterPanelModel) Width() int {
	return m.width + 2
}
