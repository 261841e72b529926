package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/app"
	"github.com/mikewolf256/detection-engineering-mini-lab/config"
	"github.com/mikewolf256/detection-engineering-mini-lab/observability"
	"github.com/mikewolf256/detection-engineering-mini-lab/report"
	"github.com/mikewolf256/detection-engineering-mini-lab/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "osquery-hunt: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.New(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger = logger.With(zap.String("run_id", uuid.NewString()))

	// Fail before any network traffic when the API is not configured.
	if err := cfg.RequireOsquery(); err != nil {
		logger.Error("missing required configuration", zap.Error(err))
		return err
	}

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close(ctx) }()

	result, err := deps.Osquery.FetchAll(ctx)
	if err != nil {
		if !services.IsPaginationLimit(err) {
			return err
		}
		// The cap still leaves partial results worth reporting.
		logger.Warn("page cap reached, reporting partial results", zap.Error(err))
	}

	findings := deps.Detector.Detect(result.Events)
	logger.Info("hunt complete",
		zap.Int("events", len(result.Events)),
		zap.Int("pages", result.Pages),
		zap.Int("findings", len(findings)),
		zap.Bool("synthetic", result.Synthetic),
		zap.Bool("degraded", result.Degraded()))

	doc := report.NewHuntReport(cfg.Osquery.BaseURL, result, findings)
	if cfg.Output.Format == "json" {
		return report.WriteJSON(os.Stdout, doc)
	}
	return report.WriteHuntText(os.Stdout, doc)
}
