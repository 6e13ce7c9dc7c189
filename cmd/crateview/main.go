package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studiowebux/crateview/internal/config"
	"github.com/studiowebux/crateview/internal/history"
	"github.com/studiowebux/crateview/internal/logging"
	"github.com/studiowebux/crateview/internal/registry"
	"github.com/studiowebux/crateview/internal/tui"
	"github.com/studiowebux/crateview/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crateview [query]",
	Short: "Browse the crates.io registry from the terminal",
	Long: `crateview is an interactive terminal explorer for the crates.io registry.

Search crates, page through results, inspect versions and metadata, and copy
the install command or open the docs without leaving the terminal.

Examples:
  crateview                          # Start with the most relevant crates
  crateview serde                    # Start with a search
  crateview --page-size 50           # Larger pages
  crateview --print-default-config   # Show the built-in configuration
  crateview --clear-history          # Forget every recorded query`,
	Version:       version.Version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagPrintDefaultConfig {
			return printDefaultConfig(cmd)
		}
		if flagClearHistory {
			return clearHistory(cmd)
		}

		var query string
		if len(args) > 0 {
			query = strings.TrimSpace(args[0])
		}
		return runTUI(cmd, query)
	},
}

// Flags
var (
	flagPrintDefaultConfig bool
	flagConfigFile         string
	flagTickRate           float64
	flagPageSize           int
	flagDataDir            string
	flagLogLevel           string
	flagNoHistory          bool
	flagClearHistory       bool
)

func init() {
	rootCmd.Flags().BoolVar(&flagPrintDefaultConfig, "print-default-config", false, "Print the default configuration as YAML and exit")
	rootCmd.Flags().StringVarP(&flagConfigFile, "config-file", "c", "", "Path to a config file (.yaml, .yml, .json, .jsonc)")
	rootCmd.Flags().Float64Var(&flagTickRate, "tick-rate", 0, "Render ticks per second")
	rootCmd.Flags().IntVar(&flagPageSize, "page-size", 0, fmt.Sprintf("Search results per page (1-%d)", config.MaxPageSize))
	rootCmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Directory for the log file and query history")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not read or record query history")
	rootCmd.Flags().BoolVar(&flagClearHistory, "clear-history", false, "Delete the recorded query history and exit")
}

func printDefaultConfig(cmd *cobra.Command) error {
	data, err := config.Marshal(config.Default(), true)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// clearHistory empties the query history in the data directory
func clearHistory(cmd *cobra.Command) error {
	dataDir, err := config.DataDir(flagDataDir)
	if err != nil {
		return err
	}
	path := history.DefaultPath(dataDir)

	hist, err := history.NewManager(path, 0)
	if err != nil {
		return err
	}
	defer hist.Close()

	count, err := hist.GetCount()
	if err != nil {
		return err
	}
	if err := hist.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d queries from %s\n", count, path)
	return nil
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := config.FindConfigFile(flagConfigFile)
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("tick-rate") {
		cfg.TickRate = flagTickRate
	}
	if flags.Changed("page-size") {
		cfg.PageSize = flagPageSize
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flagNoHistory {
		cfg.History.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func runTUI(cmd *cobra.Command, query string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dataDir, err := config.DataDir(flagDataDir)
	if err != nil {
		return err
	}
	if err := config.EnsureDir(dataDir); err != nil {
		return err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := logging.Init(dataDir, level); err != nil {
		return err
	}
	defer logging.Close()
	logging.Info("starting", "version", version.Version, "data_dir", dataDir)

	keys, warnings, err := cfg.KeyRegistry()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logging.Warn("key binding", "context", w.Context, "key", w.Key, "message", w.Message)
	}

	client := registry.New(registry.Options{
		BaseURL:           cfg.Registry.BaseURL,
		UserAgent:         cfg.Registry.UserAgent,
		RequestsPerSecond: cfg.Registry.RequestsPerSecond,
		Timeout:           cfg.Registry.Timeout,
		CacheTTL:          cfg.Registry.CacheTTL,
	})

	var hist *history.Manager
	if cfg.History.Enabled {
		hist, err = history.NewManager(history.DefaultPath(dataDir), cfg.History.MaxEntries)
		if err != nil {
			// history is optional, keep browsing without it
			logging.Warn("history disabled", "error", err)
		} else {
			defer hist.Close()
		}
	}

	opts := tui.Options{
		Config:  cfg,
		Keys:    keys,
		Source:  client,
		History: hist,
		Updates: client,
		Version: version.Version,
		Query:   query,
	}
	if err := tui.Run(opts); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	logging.Info("exiting")
	return nil
}
