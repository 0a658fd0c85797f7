package main

import (
	"fmt"
	"os"
	"time"

	"aligncheck/internal/config"
	"aligncheck/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	configPath string
	dbTarget   string
	driver     string
	format     string
	verbose    bool
	timeout    time.Duration
	only       []string

	// Seed and init flags
	force bool

	// Logger
	logger *zap.Logger
)

// rootCmd runs the alignment battery
var rootCmd = &cobra.Command{
	Use:   "aligncheck",
	Short: "Philosophical alignment checks for a knowledge-sharing platform database",
	Long: `aligncheck runs a fixed battery of read-only checks against the platform
database, tallies pass/fail/error/skip outcomes, and prints an alignment
score with recommendations and next steps.

A missing database is not an error: every check is reported as skipped.

Examples:
  aligncheck --db aime_knowledge.db
  aligncheck --driver postgres --db "postgres://reader@db/aime" --format json
  aligncheck --only indigenous_knowledge,mentorship_system_implementation`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runBattery,
}

// checksCmd lists the battery
var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the alignment checks in execution order",
	RunE:  listChecks,
}

// seedCmd creates a demo database
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo platform database the battery can run against",
	Long: `Creates the platform tables and inserts a small representative data set
on which every check passes. Supports the sqlite, sqlite3 and mysql drivers.

An existing SQLite file is left untouched unless --force is given.

Example:
  aligncheck seed --db demo.db`,
	RunE: runSeed,
}

// initCmd writes a starter config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter aligncheck.yaml",
	Long: `Writes the default configuration, including the recommendation table,
to the --config path. --db and --driver are recorded in the file.

An existing file is left untouched unless --force is given.`,
	RunE: runInit,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Config file")
	rootCmd.PersistentFlags().StringVar(&dbTarget, "db", "", "Database path (sqlite) or DSN (postgres/mysql); overrides config")
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Database driver: sqlite, sqlite3, postgres, mysql")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "Output format: text or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Per-check timeout (default from config)")
	rootCmd.Flags().StringSliceVar(&only, "only", nil, "Run only these checks or categories")

	seedCmd.Flags().BoolVar(&force, "force", false, "Replace an existing SQLite database")
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	rootCmd.AddCommand(checksCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if driver != "" {
		cfg.Database.Driver = driver
	}
	if dbTarget != "" {
		cfg.Database.SetTarget(dbTarget)
	}
	if timeout > 0 {
		cfg.Database.QueryTimeout = timeout.String()
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	logging.Boot("Config loaded from %s (driver=%s)", configPath, cfg.Database.Driver)
	return cfg, nil
}
