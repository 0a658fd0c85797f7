package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"aligncheck/internal/checks"
	"aligncheck/internal/config"
	"aligncheck/internal/report"
	"aligncheck/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// runBattery opens the data source, runs the selected checks and prints the report.
func runBattery(cmd *cobra.Command, args []string) error {
	write, err := reportWriter(format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	selected, err := checks.Filter(checks.Battery(), only)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// q stays a nil interface when the source is unavailable so the runner skips.
	var q checks.Querier
	src, err := store.Open(ctx, cfg.Database)
	switch {
	case err == nil:
		defer src.Close()
		q = src
		logger.Info("Data source opened",
			zap.String("driver", src.Driver()),
			zap.String("target", src.Target()))
	case errors.Is(err, store.ErrUnavailable):
		logger.Warn("Data source unavailable, all checks will be skipped", zap.Error(err))
	default:
		return err
	}

	runner := checks.NewRunner(selected, checks.WithTimeout(cfg.GetQueryTimeout()))
	results := runner.Run(ctx, q)

	rep := report.NewAggregator(aggregatorOptions(cfg)...).Aggregate(results)
	logger.Info("Alignment battery complete",
		zap.String("run_id", rep.RunID),
		zap.Int("total", rep.Tally.Total),
		zap.Int("failures", rep.Tally.Failures),
		zap.Int("errors", rep.Tally.Errors),
		zap.Int("skipped", rep.Tally.Skipped),
		zap.Float64("score", rep.AlignmentScore))

	return write(cmd.OutOrStdout(), rep)
}

func reportWriter(format string) (func(io.Writer, report.Report) error, error) {
	switch format {
	case "", "text":
		return report.WriteText, nil
	case "json":
		return report.WriteJSON, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (valid: text, json)", format)
	}
}

// aggregatorOptions maps scoring config onto the aggregator.
func aggregatorOptions(cfg *config.Config) []report.Option {
	rules := make([]report.Rule, 0, len(cfg.Recommendations))
	for _, r := range cfg.Recommendations {
		rules = append(rules, report.Rule{Keyword: r.Keyword, Text: r.Text})
	}
	return []report.Option{
		report.WithRules(rules),
		report.WithErrorPenalty(cfg.Scoring.ErrorPenalty),
		report.WithReviewThreshold(cfg.Scoring.ReviewThreshold),
		report.WithMaxRecommendedSteps(cfg.Scoring.MaxRecommendedSteps),
	}
}
