package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivek2589/bangalore-graph-package/internal/models"
	"github.com/vivek2589/bangalore-graph-package/internal/osmio"
)

type stubFetcher struct {
	extract *osm.OSM
	err     error
	calls   int
}

func (s *stubFetcher) Fetch(_ context.Context, _ osmio.Query) (*osm.OSM, error) {
	s.calls++
	return s.extract, s.err
}

func testExtract() *osm.OSM {
	return &osm.OSM{
		Nodes: osm.Nodes{
			{ID: 1, Lat: 12.9700, Lon: 77.5900},
			{ID: 2, Lat: 12.9710, Lon: 77.5910},
			{ID: 3, Lat: 12.9720, Lon: 77.5920},
			{ID: 4, Lat: 12.9730, Lon: 77.5930},
		},
		Ways: osm.Ways{
			{
				ID:    100,
				Nodes: osm.WayNodes{{ID: 1}, {ID: 2}, {ID: 3}},
				Tags: osm.Tags{
					{Key: "highway", Value: "primary"},
					{Key: "name", Value: "MG Road"},
				},
			},
			{
				ID:    101,
				Nodes: osm.WayNodes{{ID: 3}, {ID: 4}},
				Tags: osm.Tags{
					{Key: "highway", Value: "secondary"},
					{Key: "name", Value: "Hosur Road"},
				},
			},
		},
	}
}

const testCSV = `Record ID,Date,Area Name,Road/Intersection Name,Traffic Volume,Average Speed,Congestion Level
r1,2024-01-15,Indiranagar,MG Road,45000,22.5,80
r2,2024-01-20,Koramangala,Hosur Road,32000,28.0,55
r3,2024-01-16,Indiranagar,MG Road,47000,21.0,85
`

func testConfig(t *testing.T) *models.Config {
	t.Helper()

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "traffic.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(testCSV), 0o644))

	return &models.Config{
		CSVPath:     csvPath,
		OutputDir:   filepath.Join(dir, "outputs"),
		Place:       "Bengaluru, India",
		NetworkType: "drive",
		Aggregation: "mean",
		FuzzyCutoff: 0.85,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunProducesAllArtifacts(t *testing.T) {
	cfg := testConfig(t)
	cfg.ParquetEnabled = true

	p := New(cfg, quietLogger())
	p.Fetcher = &stubFetcher{extract: testExtract()}
	require.NoError(t, p.Run(context.Background()))

	for _, name := range []string{
		HeatmapFile,
		BasicMapFile,
		TimeLayersFile,
		KeplerMapFile,
		EdgeListFile,
		EdgeParquetFile,
	} {
		info, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, quietLogger())
	p.Fetcher = &stubFetcher{extract: testExtract()}

	require.NoError(t, p.Run(context.Background()))
	first, err := os.ReadFile(filepath.Join(cfg.OutputDir, EdgeListFile))
	require.NoError(t, err)
	firstMap, err := os.ReadFile(filepath.Join(cfg.OutputDir, BasicMapFile))
	require.NoError(t, err)

	require.NoError(t, p.Run(context.Background()))
	second, err := os.ReadFile(filepath.Join(cfg.OutputDir, EdgeListFile))
	require.NoError(t, err)
	secondMap, err := os.ReadFile(filepath.Join(cfg.OutputDir, BasicMapFile))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, string(firstMap), string(secondMap))
}

func TestRunMalformedDatasetLeavesNoOutputs(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.CSVPath, []byte("Date,Area Name\n2024-01-15,Indiranagar\n"), 0o644))

	fetcher := &stubFetcher{extract: testExtract()}
	p := New(cfg, quietLogger())
	p.Fetcher = fetcher

	err := p.Run(context.Background())
	require.Error(t, err)

	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr), "output directory should not be created")
	assert.Zero(t, fetcher.calls, "network should not be touched on invalid input")
}

func TestRunFetchFailure(t *testing.T) {
	cfg := testConfig(t)
	p := New(cfg, quietLogger())
	p.Fetcher = &stubFetcher{err: errors.New("overpass unavailable")}

	err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquire street network")

	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewPicksFileFetcher(t *testing.T) {
	cfg := testConfig(t)
	cfg.OSMFile = "extract.osm"
	p := New(cfg, quietLogger())
	assert.IsType(t, &osmio.FileFetcher{}, p.Fetcher)

	cfg.OSMFile = ""
	p = New(cfg, quietLogger())
	assert.IsType(t, &osmio.CachedFetcher{}, p.Fetcher)
}
