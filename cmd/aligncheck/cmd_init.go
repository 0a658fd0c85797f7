package main

import (
	"fmt"
	"os"

	"aligncheck/internal/config"
	"aligncheck/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runInit writes a starter config with the built-in scoring and
// recommendation table spelled out so it can be edited.
func runInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite it)", configPath)
	}

	cfg := config.DefaultConfig()
	if driver != "" {
		cfg.Database.Driver = driver
	}
	if dbTarget != "" {
		cfg.Database.SetTarget(dbTarget)
	}
	if timeout > 0 {
		cfg.Database.QueryTimeout = timeout.String()
	}
	for _, r := range report.DefaultRules() {
		cfg.Recommendations = append(cfg.Recommendations, config.RecommendationRule{Keyword: r.Keyword, Text: r.Text})
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}
	logger.Info("Wrote starter config", zap.String("path", configPath), zap.String("driver", cfg.Database.Driver))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configPath)
	return nil
}
