package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	Checked       lipgloss.Style
	SectionTitle  lipgloss.Style
	BorderedBox   lipgloss.Style
	RoundedBox    lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	Success       lipgloss.Color
	Error         lipgloss.Color
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:    "#7c3aed",
	secondary:  "#a78bfa",
	success:    "#10b981",
	warning:    "#f59e0b",
	errorColor: "#ef4444",
	info:       "#3b82f6",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	border:     "#404040",
	muted:      "#737373",
	onPrimary:  "#fafafa",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    "#cba6f7",
	secondary:  "#f5c2e7",
	success:    "#a6e3a1",
	warning:    "#f9e2af",
	errorColor: "#f38ba8",
	info:       "#89dceb",
	foreground: "#cdd6f4",
	subtle:     "#a6adc8",
	border:     "#45475a",
	muted:      "#6c7086",
	onPrimary:  "#1e1e2e",
})

type palette struct {
	primary    string
	secondary  string
	success    string
	warning    string
	errorColor string
	info       string
	foreground string
	subtle     string
	border     string
	muted      string
	onPrimary  string
}

func newTheme(p palette) Theme {
	fg := lipgloss.Color(p.foreground)
	border := lipgloss.Color(p.border)

	return Theme{
		Primary:    lipgloss.Color(p.primary),
		Secondary:  lipgloss.Color(p.secondary),
		Success:    lipgloss.Color(p.success),
		Error:      lipgloss.Color(p.errorColor),
		Foreground: fg,
		Border:     border,
		Muted:      lipgloss.Color(p.muted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.onPrimary)).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(border).
			Foreground(fg),
		Checked: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		SectionTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.secondary)).
			Bold(true),

		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(border).
			Padding(0, 1),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),

		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
	}
}

// Names lists the themes GetTheme accepts.
func Names() []string {
	return []string{"default", "catppuccin-mocha"}
}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
