// Package output publishes the exported edge list to downstream systems.
package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vivek2589/bangalore-graph-package/internal/export"
	"github.com/vivek2589/bangalore-graph-package/internal/models"
)

// EdgeSink delivers edge list rows to a destination after a successful run.
type EdgeSink interface {
	Publish(ctx context.Context, rows []export.EdgeRow) error
	Close() error
}

// ForConfig builds the sink selected by config, or nil when no sink is
// configured.
func ForConfig(ctx context.Context, cfg *models.Config, logger *slog.Logger) (EdgeSink, error) {
	switch cfg.Sink {
	case "", "none":
		return nil, nil
	}

	logger.Info("edge list sink enabled", "sink", cfg.Sink)
	switch cfg.Sink {
	case "console":
		return &ConsoleSink{Out: os.Stdout}, nil
	case "kafka":
		return NewKafkaSink(cfg.KafkaBrokerList, cfg.KafkaTopic)
	case "postgres":
		return NewPostgresSink(ctx, cfg.Database)
	case "s3":
		return NewS3Sink(ctx, cfg.CloudStorage)
	default:
		return nil, fmt.Errorf("unsupported sink: %s", cfg.Sink)
	}
}

// ConsoleSink writes one JSON document per edge row, mostly for debugging.
type ConsoleSink struct {
	Out io.Writer
}

func (c *ConsoleSink) Publish(_ context.Context, rows []export.EdgeRow) error {
	enc := json.NewEncoder(c.Out)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encode edge row: %w", err)
		}
	}
	return nil
}

func (c *ConsoleSink) Close() error { return nil }
