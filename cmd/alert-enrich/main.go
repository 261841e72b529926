package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mikewolf256/detection-engineering-mini-lab/app"
	"github.com/mikewolf256/detection-engineering-mini-lab/config"
	"github.com/mikewolf256/detection-engineering-mini-lab/models"
	"github.com/mikewolf256/detection-engineering-mini-lab/observability"
	"github.com/mikewolf256/detection-engineering-mini-lab/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "alert-enrich: %v\n", err)
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

	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = deps.Close(ctx) }()

	alert, err := readAlert(os.Stdin)
	if err != nil {
		return err
	}
	logger.Info("enriching alert",
		zap.String("alert_id", alert.AlertID()),
		zap.String("user_id", alert.UserID()))

	enriched, assessment := deps.Enricher.EnrichDetail(ctx, alert)

	doc := report.NewEnrichmentReport(enriched, assessment)
	if cfg.Output.Format == "json" {
		return report.WriteJSON(os.Stdout, doc)
	}
	return report.WriteEnrichmentText(os.Stdout, doc)
}

// readAlert parses the alert piped on stdin. With a terminal attached, or
// nothing piped, it falls back to the built-in demo alert.
func readAlert(stdin *os.File) (models.Alert, error) {
	stat, err := stdin.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat stdin: %w", err)
	}
	if stat.Mode()&os.ModeCharDevice != 0 {
		return models.NewDemoAlert(), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return models.NewDemoAlert(), nil
	}

	var alert models.Alert
	if err := json.Unmarshal(data, &alert); err != nil {
		return nil, fmt.Errorf("parse alert json: %w", err)
	}
	return alert, nil
}
