// Package osmio acquires OpenStreetMap street data, either from the Overpass
// API or from local extracts.
package osmio

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/paulmach/osm"

	"github.com/vivek2589/bangalore-graph-package/internal/models"
)

// Query describes the street network to download.
type Query struct {
	BBox models.BBox
	// NetworkType is "drive" (default, excludes non-drivable highway classes)
	// or "all".
	NetworkType string
}

// Fetcher produces an OSM extract for a query.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) (*osm.OSM, error)
}

// Client fetches street networks from an Overpass API endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

func (c *Client) Fetch(ctx context.Context, q Query) (*osm.OSM, error) {
	ql := BuildQL(q)
	c.logger.Info("fetching street network from Overpass",
		"endpoint", c.baseURL,
		"south", q.BBox.South, "west", q.BBox.West,
		"north", q.BBox.North, "east", q.BBox.East,
	)

	form := url.Values{"data": {ql}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("overpass API error: status %d: %s", resp.StatusCode, body)
	}

	var o osm.OSM
	if err := xml.NewDecoder(resp.Body).Decode(&o); err != nil {
		return nil, fmt.Errorf("decode overpass response: %w", err)
	}

	c.logger.Info("street network downloaded", "nodes", len(o.Nodes), "ways", len(o.Ways))
	return &o, nil
}

// BuildQL renders the Overpass QL statement for a query. The recursion step
// (">") pulls in the nodes referenced by the matched ways.
func BuildQL(q Query) string {
	filter := `["highway"]`
	if q.NetworkType != "all" {
		filter += `["highway"!~"footway|path|cycleway|steps|pedestrian|corridor|bridleway|track"]`
	}
	return fmt.Sprintf("[out:xml][timeout:180];(way%s(%.6f,%.6f,%.6f,%.6f);>;);out body;",
		filter, q.BBox.South, q.BBox.West, q.BBox.North, q.BBox.East)
}
