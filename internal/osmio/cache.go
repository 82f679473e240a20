package osmio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/paulmach/osm"
)

// CachedFetcher wraps a Fetcher with an on-disk response cache keyed by the
// rendered Overpass query, so repeat runs over the same region work offline.
type CachedFetcher struct {
	inner  Fetcher
	dir    string
	logger *slog.Logger
}

func NewCachedFetcher(inner Fetcher, dir string, logger *slog.Logger) *CachedFetcher {
	return &CachedFetcher{
		inner:  inner,
		dir:    dir,
		logger: logger,
	}
}

func (c *CachedFetcher) Fetch(ctx context.Context, q Query) (*osm.OSM, error) {
	path := c.cachePath(q)

	if data, err := os.ReadFile(path); err == nil {
		var o osm.OSM
		if err := xml.Unmarshal(data, &o); err == nil {
			c.logger.Info("using cached street network", "path", path)
			return &o, nil
		}
		// A corrupt cache entry falls through to a fresh fetch.
		c.logger.Warn("discarding unreadable cache entry", "path", path)
	}

	o, err := c.inner.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := c.store(path, o); err != nil {
		c.logger.Warn("failed to cache street network", "path", path, "error", err)
	}
	return o, nil
}

func (c *CachedFetcher) store(path string, o *osm.OSM) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	data, err := xml.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal extract: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *CachedFetcher) cachePath(q Query) string {
	sum := sha256.Sum256([]byte(BuildQL(q)))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:8])+".osm.xml")
}
