package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/retail-sales/internal/cli"
	"github.com/Veraticus/retail-sales/internal/common"
	"github.com/Veraticus/retail-sales/internal/config"
	"github.com/Veraticus/retail-sales/internal/source"
	"github.com/Veraticus/retail-sales/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// seedBatchSize is the number of records written per transaction.
const seedBatchSize = 50

func seedCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write generated records to a SQLite database",
		Long: `Generate mock sales records and store them in the database given by --db,
so later runs of 'sales browse --db' and 'sales list --db' read a fixed data set.

Records are appended unless --reset is given.`,
		Example: `  sales seed --db ~/.local/share/sales/sales.db --records 500 --seed 7 --reset`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd, reset)
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "delete existing records first")

	return cmd
}

func runSeed(cmd *cobra.Command, reset bool) error {
	ctx := cmd.Context()
	if h := cli.FromContext(ctx); h != nil {
		h.SetNote("Batches written before the interrupt are kept.")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Source.DBPath == "" {
		return common.NewUserError("seed needs a database: pass --db or set source.db", common.ErrMissingConfig)
	}

	store, err := storage.Open(ctx, cfg.Source.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	if reset {
		if err := store.DeleteAllRecords(ctx); err != nil {
			return fmt.Errorf("failed to reset records: %w", err)
		}
		slog.Info("Deleted existing records", "path", store.Path())
	}

	records := source.Generate(cfg.Generator())
	out := cmd.ErrOrStderr()

	bar := progressbar.NewOptions(len(records),
		progressbar.OptionSetWriter(out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Seeding records...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(out); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)

	for start := 0; start < len(records); start += seedBatchSize {
		end := min(start+seedBatchSize, len(records))
		if err := store.SaveRecords(ctx, records[start:end]); err != nil {
			return fmt.Errorf("failed to save records %d-%d: %w", start, end, err)
		}
		if err := bar.Add(end - start); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	total, err := store.CountRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	msg := fmt.Sprintf("Seeded %d records into %s (%d total)", len(records), store.Path(), total)
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(msg)); err != nil {
		slog.Error("failed to write output", "error", err)
	}
	return nil
}
