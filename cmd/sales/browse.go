package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/retail-sales/internal/common"
	"github.com/Veraticus/retail-sales/internal/config"
	"github.com/Veraticus/retail-sales/internal/query"
	"github.com/Veraticus/retail-sales/internal/tui"
	"github.com/Veraticus/retail-sales/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func browseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse sales records interactively",
		Long: `Open the interactive sales browser.

Type / to search by customer name or phone number, f to open the filter
panel, s to cycle the sort order and the arrow keys to move between pages.
Press ? for the full list of keys.`,
		RunE: runBrowse,
	}

	cmd.Flags().String("theme", "default", fmt.Sprintf("color theme (%s)", strings.Join(themes.Names(), ", ")))
	cmd.Flags().String("sort", string(query.DefaultSortKey), "initial sort order")
	_ = viper.BindPFlag(config.KeyTheme, cmd.Flags().Lookup("theme"))

	return cmd
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	sortFlag, _ := cmd.Flags().GetString("sort")
	sortKey, err := query.ParseSortKey(sortFlag)
	if err != nil {
		return common.NewUserError(fmt.Sprintf("unknown sort order %q", sortFlag), err)
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	logPath := cfg.UI.DebugLog
	if logPath == "" {
		logPath = os.Getenv("SALES_DEBUG_LOG")
	}
	if logPath != "" {
		f, err := tea.LogToFile(config.ExpandPath(logPath), "sales")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				slog.Error("failed to close debug log", "error", closeErr)
			}
		}()
		if err := common.SetupLoggerTo(f, "debug", viper.GetString(config.KeyLogFormat)); err != nil {
			return fmt.Errorf("failed to setup logging: %w", err)
		}
	} else if err := common.SetupLoggerTo(io.Discard, "error", "console"); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	src, cleanup, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(ctx,
		tui.WithSource(src),
		tui.WithTheme(themes.GetTheme(cfg.UI.Theme)),
		tui.WithSortKey(sortKey),
	)
}
