package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/retail-sales/internal/query"
	"github.com/spf13/cobra"
)

func optionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the filter values present in the records",
		RunE:  runOptions,
	}
}

func runOptions(cmd *cobra.Command, _ []string) error {
	b, err := loadBrowser(cmd.Context())
	if err != nil {
		return err
	}

	opts := b.Options()
	w := cmd.OutOrStdout()
	for _, field := range query.FilterFields() {
		values := opts.Values(field)
		if len(values) == 0 {
			values = []string{"(none)"}
		}
		if _, err := fmt.Fprintf(w, "%s (--%s): %s\n", field.Label(), field, strings.Join(values, ", ")); err != nil {
			return fmt.Errorf("failed to write options: %w", err)
		}
	}
	return nil
}
