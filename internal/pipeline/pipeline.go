// Package pipeline orchestrates the batch run: load, acquire, join, score,
// export, publish.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/vivek2589/bangalore-graph-package/internal/dataset"
	"github.com/vivek2589/bangalore-graph-package/internal/export"
	"github.com/vivek2589/bangalore-graph-package/internal/graph"
	"github.com/vivek2589/bangalore-graph-package/internal/models"
	"github.com/vivek2589/bangalore-graph-package/internal/osmio"
	"github.com/vivek2589/bangalore-graph-package/internal/output"
)

// Artifact filenames written into the output directory on every run.
const (
	HeatmapFile     = "bangalore_heatmap.png"
	BasicMapFile    = "bangalore_basic_map.html"
	TimeLayersFile  = "bangalore_time_filtered_map.html"
	KeplerMapFile   = "bangalore_traffic_kepler.html"
	EdgeListFile    = "bangalore_graph_edges.csv"
	EdgeParquetFile = "bangalore_graph_edges.parquet"
)

type Pipeline struct {
	Config *models.Config

	// Fetcher acquires the street network; New wires the Overpass client
	// (with its disk cache) or a local file loader based on config.
	Fetcher osmio.Fetcher

	logger *slog.Logger
}

func New(cfg *models.Config, logger *slog.Logger) *Pipeline {
	p := &Pipeline{Config: cfg, logger: logger}
	if cfg.OSMFile != "" {
		p.Fetcher = &osmio.FileFetcher{Path: cfg.OSMFile}
	} else {
		client := osmio.NewClient(cfg.OverpassURL, cfg.OverpassTimeout, logger)
		p.Fetcher = osmio.NewCachedFetcher(client, cfg.CacheDir, logger)
	}
	return p
}

// Run executes the full analysis once. Input validation happens before any
// output file is created, so a malformed dataset leaves no partial outputs.
func (p *Pipeline) Run(ctx context.Context) error {
	cfg := p.Config

	p.logger.Info("loading dataset", "path", cfg.CSVPath)
	records, err := dataset.Load(cfg.CSVPath)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	p.logger.Info("dataset loaded", "records", len(records))

	extract, err := p.Fetcher.Fetch(ctx, osmio.Query{BBox: cfg.BBox, NetworkType: cfg.NetworkType})
	if err != nil {
		return fmt.Errorf("acquire street network: %w", err)
	}

	g, err := graph.BuildFromOSM(extract, cfg.NetworkType)
	if err != nil {
		return fmt.Errorf("build street graph: %w", err)
	}
	p.logger.Info("street graph built", "nodes", g.NumNodes(), "edges", g.NumEdges())

	graph.MapTraffic(g, records, cfg.Aggregation, cfg.FuzzyCutoff, p.logger)

	p.logger.Info("computing centralities", "nodes", g.NumNodes())
	graph.ComputeCentralities(g)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	title := cfg.Place + " Traffic"
	exports := []struct {
		name string
		fn   func(path string) error
	}{
		{HeatmapFile, func(path string) error {
			return export.ExportHeatmap(g, path, title+" Heatmap")
		}},
		{BasicMapFile, func(path string) error {
			return export.ExportBasicMap(g, path, title)
		}},
		{TimeLayersFile, func(path string) error {
			return export.ExportTimeLayeredMap(g, records, path, title, cfg.Aggregation, cfg.FuzzyCutoff, p.logger)
		}},
		{KeplerMapFile, func(path string) error {
			return export.ExportKeplerMap(g, path, title)
		}},
		{EdgeListFile, func(path string) error {
			return export.ExportEdgeCSV(g, path)
		}},
	}
	if cfg.ParquetEnabled {
		exports = append(exports, struct {
			name string
			fn   func(path string) error
		}{EdgeParquetFile, func(path string) error {
			return export.ExportEdgeParquet(g, path)
		}})
	}

	bar := progressbar.Default(int64(len(exports)), "exporting")
	for _, e := range exports {
		if err := e.fn(filepath.Join(cfg.OutputDir, e.name)); err != nil {
			return fmt.Errorf("export %s: %w", e.name, err)
		}
		bar.Add(1)
	}

	sink, err := output.ForConfig(ctx, cfg, p.logger)
	if err != nil {
		return fmt.Errorf("configure sink: %w", err)
	}
	if sink != nil {
		defer sink.Close()
		if err := sink.Publish(ctx, export.EdgeRows(g)); err != nil {
			return fmt.Errorf("publish edge list: %w", err)
		}
	}

	p.logger.Info("run complete", "output_dir", cfg.OutputDir)
	return nil
}
