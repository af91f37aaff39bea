package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/go-hoops-metrics/internal/config"
	"github.com/pable/go-hoops-metrics/internal/logging"
	"github.com/pable/go-hoops-metrics/internal/storage"
)

var (
	dbPath   string
	logLevel string
	logJSON  bool

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "hoopsmetrics",
	Short: "Basketball game analytics tool",
	Long: `Ingest parsed basketball game documents (box score plus play-by-play) and
compute per-game narratives and season-level tables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".hoopsmetrics", "games.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database (env HOOPS_DB)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (env HOOPS_LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON (env HOOPS_LOG_JSON)")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(gameCmd)
	rootCmd.AddCommand(pbpCmd)
	rootCmd.AddCommand(seasonCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// setup loads the environment config and applies it underneath explicit flags.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("db") && cfg.DB != "" {
		dbPath = cfg.DB
	}
	if logLevel == "" {
		logLevel = cfg.LogLevel
	}
	logging.Init(os.Stderr, logJSON || cfg.LogJSON, logging.ParseLevel(logLevel))
	slog.Debug("config loaded", "db", dbPath, "workers", cfg.Workers)
	return nil
}

// openDB opens the store, creating its directory on first use.
func openDB() (*storage.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
