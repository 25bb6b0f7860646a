// Package main runs the sales browser on a fixed demo data set.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/retail-sales/internal/source"
	"github.com/Veraticus/retail-sales/internal/tui"
	"github.com/Veraticus/retail-sales/internal/tui/themes"
)

func main() {
	ctx := context.Background()

	records := source.Generate(source.GeneratorConfig{Count: 250, Seed: 1, Year: 2024})

	err := tui.Run(ctx,
		tui.WithSource(source.Static(records)),
		tui.WithTheme(themes.CatppuccinMocha),
		tui.WithSize(140, 40),
		tui.WithHelp(true),
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
