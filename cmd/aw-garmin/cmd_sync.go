package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AndreyKarmanov/aw-garmin/internal/activitywatch"
	"github.com/AndreyKarmanov/aw-garmin/internal/config"
	"github.com/AndreyKarmanov/aw-garmin/internal/garmin"
	"github.com/AndreyKarmanov/aw-garmin/internal/observability"
	syncer "github.com/AndreyKarmanov/aw-garmin/internal/sync"
)

const clientName = "aw-garmin"

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().String("date", "", "day to sync, YYYY-MM-DD (default: today)")
	syncCmd.Flags().Bool("dry-run", false, "fetch and map without writing to the event store")
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one sync pass for a single day",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger, err := buildLogger(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer logger.Sync()

		var date time.Time
		if raw, _ := cmd.Flags().GetString("date"); raw != "" {
			date, err = time.ParseInLocation("2006-01-02", raw, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", raw, err)
			}
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		ctx := cmd.Context()

		source := garmin.NewClient(cfg.GarminBaseURL, cfg.GarminEmail, cfg.GarminPassword, cfg.HTTPTimeout, logger)
		if err := source.Login(ctx); err != nil {
			return err
		}

		sink := activitywatch.NewClient(cfg.AWBaseURL(), clientName, cfg.HTTPTimeout, logger)

		orchestrator := syncer.New(source, sink, cfg.Bucket, logger, syncer.WithDryRun(dryRun))

		result, runErr := orchestrator.Run(ctx, date)

		if cfg.PushgatewayURL != "" {
			if pushErr := observability.Push(cfg.PushgatewayURL, clientName); pushErr != nil {
				logger.Warn("metrics push failed", zap.Error(pushErr))
			}
		}
		if runErr != nil {
			return runErr
		}

		logger.Info("run finished",
			zap.Int("sleep_events", result.SleepEvents),
			zap.Int("activity_events", result.ActivityEvents),
			zap.Bool("dry_run", dryRun),
		)
		return nil
	},
}

func buildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	cfg.Level = parsed
	return cfg.Build()
}
