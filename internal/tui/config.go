package tui

import (
	"time"

	"github.com/Veraticus/retail-sales/internal/query"
	"github.com/Veraticus/retail-sales/internal/source"
	"github.com/Veraticus/retail-sales/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Source   source.Source
	Theme    themes.Theme
	Now      func() time.Time
	SortKey  query.SortKey
	Width    int
	Height   int
	PageSize int
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Source:   source.NewGenerator(source.DefaultGeneratorConfig()),
		Theme:    themes.Default,
		Now:      time.Now,
		SortKey:  query.DefaultSortKey,
		Width:    120,
		Height:   30,
		PageSize: query.DefaultPageSize,
	}
}

// WithSource sets where records are loaded from.
func WithSource(src source.Source) Option {
	return func(c *Config) {
		c.Source = src
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithClock sets the clock used as the default upper date bound.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		c.Now = now
	}
}

// WithPageSize sets rows per page.
func WithPageSize(size int) Option {
	return func(c *Config) {
		c.PageSize = size
	}
}

// WithSortKey sets the initial ordering.
func WithSortKey(key query.SortKey) Option {
	return func(c *Config) {
		c.SortKey = key
	}
}

// WithHelp expands the help footer on start.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
