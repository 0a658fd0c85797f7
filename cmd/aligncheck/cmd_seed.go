package main

import (
	"context"
	"fmt"

	"aligncheck/internal/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runSeed writes the demo schema and data to the configured database.
func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetQueryTimeout())
	defer cancel()

	logger.Info("Seeding demo database", zap.String("driver", cfg.Database.Driver), zap.Bool("force", force))
	sum, err := seed.Seed(ctx, cfg.Database, force)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Seeded %s: %d tables, %d rows\n", sum.Target, sum.Tables, sum.Rows)
	return nil
}
