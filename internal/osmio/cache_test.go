package osmio

import (
	"context"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	calls int
	osm   *osm.OSM
}

func (f *countingFetcher) Fetch(_ context.Context, _ Query) (*osm.OSM, error) {
	f.calls++
	return f.osm, nil
}

func TestCachedFetcher(t *testing.T) {
	extract := &osm.OSM{
		Nodes: osm.Nodes{
			{ID: 1, Lat: 12.97, Lon: 77.59},
			{ID: 2, Lat: 12.98, Lon: 77.60},
		},
		Ways: osm.Ways{
			{ID: 100, Nodes: osm.WayNodes{{ID: 1}, {ID: 2}}, Tags: osm.Tags{{Key: "highway", Value: "primary"}}},
		},
	}

	inner := &countingFetcher{osm: extract}
	cached := NewCachedFetcher(inner, t.TempDir(), discardLogger())
	q := Query{BBox: testBBox, NetworkType: "drive"}

	first, err := cached.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Len(t, first.Nodes, 2)

	second, err := cached.Fetch(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "second fetch should hit the cache")
	assert.Len(t, second.Nodes, 2)
	assert.Len(t, second.Ways, 1)

	// A different query misses the cache.
	other := q
	other.NetworkType = "all"
	_, err = cached.Fetch(context.Background(), other)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
