package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/vbscout/internal/config"
	"github.com/pable/vbscout/internal/logging"
	"github.com/pable/vbscout/internal/storage"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	// cfg is loaded before every command runs.
	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "vbscout",
	Short: "Volleyball scouting transcript analysis",
	Long: `Parse .dvw scouting transcripts, store reception and transition events,
and report per-rotation attack-option tallies and outside-hitter set odds.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	home := mustUserHome()
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", storage.Path(home), "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(home), "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(tallyCmd)
	rootCmd.AddCommand(oddsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(dropCmd)
}

// loadConfig reads the config file and applies it wherever the matching flag
// was left unset, then installs the logger.
func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	flags := cmd.Flags()
	if !flags.Changed("db") && cfg.DB != "" {
		dbPath = cfg.DB
	}
	level := cfg.LogLevel
	if flags.Changed("log-level") {
		level = logLevel
	}
	if _, err := logging.Setup(os.Stderr, level); err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	return nil
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
