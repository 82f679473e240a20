package osmio

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

// FileFetcher serves a local OSM extract regardless of the query, for fully
// offline runs.
type FileFetcher struct {
	Path string
}

func (f *FileFetcher) Fetch(ctx context.Context, _ Query) (*osm.OSM, error) {
	return LoadFile(ctx, f.Path)
}

// LoadFile reads a local .osm/.xml or .osm.pbf extract.
func LoadFile(ctx context.Context, path string) (*osm.OSM, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pbf":
		return loadPBF(ctx, path)
	case ".osm", ".xml":
		return loadXML(path)
	default:
		return nil, fmt.Errorf("unsupported OSM file extension: %s", path)
	}
}

func loadXML(path string) (*osm.OSM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open OSM file: %w", err)
	}
	defer f.Close()

	var o osm.OSM
	if err := xml.NewDecoder(f).Decode(&o); err != nil {
		return nil, fmt.Errorf("decode OSM XML: %w", err)
	}
	return &o, nil
}

func loadPBF(ctx context.Context, path string) (*osm.OSM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open OSM PBF: %w", err)
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 1)
	defer scanner.Close()

	var o osm.OSM
	for scanner.Scan() {
		switch v := scanner.Object().(type) {
		case *osm.Node:
			o.Nodes = append(o.Nodes, v)
		case *osm.Way:
			o.Ways = append(o.Ways, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan OSM PBF: %w", err)
	}
	return &o, nil
}
