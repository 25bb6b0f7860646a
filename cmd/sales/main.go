package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Veraticus/retail-sales/internal/cli"
	"github.com/Veraticus/retail-sales/internal/common"
	"github.com/Veraticus/retail-sales/internal/config"
	"github.com/Veraticus/retail-sales/internal/source"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "sales",
		Short: "Browse retail sales records",
		Long: `sales: a terminal browser for retail sales records.

Search, filter, sort and page through sales transactions interactively
with 'sales browse', or print a single page with 'sales list'.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/sales/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	// Record source flags are shared by every command that loads records.
	rootCmd.PersistentFlags().String("db", "", "SQLite database to read records from (default: generate records)")
	rootCmd.PersistentFlags().Int("records", source.DefaultRecordCount, "number of records to generate")
	rootCmd.PersistentFlags().Int64("seed", source.DefaultSeed, "generator seed")

	// Bind flags to viper
	_ = viper.BindPFlag(config.KeyLogLevel, rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag(config.KeyLogFormat, rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag(config.KeyDBPath, rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag(config.KeyRecords, rootCmd.PersistentFlags().Lookup("records"))
	_ = viper.BindPFlag(config.KeySeed, rootCmd.PersistentFlags().Lookup("seed"))

	// Add commands
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(optionsCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	interrupts := cli.NewInterruptHandler(os.Stderr)
	ctx, stop := interrupts.HandleInterrupts(context.Background())

	err := rootCmd.ExecuteContext(ctx)
	stop() // Always cleanup

	if err != nil {
		if interrupts.WasInterrupted() {
			os.Exit(130)
		}
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints the user-facing form of err.
func reportError(w io.Writer, err error) {
	if _, writeErr := fmt.Fprintln(w, cli.FormatError(common.UserMessage(err))); writeErr != nil {
		slog.Error("failed to write error", "error", writeErr)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	// Set up config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		// Search for config in standard locations
		viper.AddConfigPath(fmt.Sprintf("%s/.config/sales", home))
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. SALES_SOURCE_DB for source.db
	viper.SetEnvPrefix("SALES")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, we'll use defaults
	}

	config.SetDefaults()

	// Set up logging
	if err := common.SetupLogger(viper.GetString(config.KeyLogLevel), viper.GetString(config.KeyLogFormat)); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			slog.Debug("sales version", "version", version)
			fmt.Fprintf(cmd.OutOrStdout(), "sales %s\n", version)
		},
	}
}
