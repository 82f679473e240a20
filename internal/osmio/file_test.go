package osmio

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Run("osm xml", func(t *testing.T) {
		o, err := LoadFile(context.Background(), filepath.Join("testdata", "mini.osm"))
		require.NoError(t, err)
		assert.Len(t, o.Nodes, 4)
		assert.Len(t, o.Ways, 2)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadFile(context.Background(), "extract.geojson")
		require.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.osm"))
		require.Error(t, err)
	})
}

func TestFileFetcher(t *testing.T) {
	f := &FileFetcher{Path: filepath.Join("testdata", "mini.osm")}
	o, err := f.Fetch(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, o.Ways, 2)
}
