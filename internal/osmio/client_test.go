package osmio

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivek2589/bangalore-graph-package/internal/models"
)

const miniExtract = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
 <node id="1" lat="12.9700" lon="77.5900"/>
 <node id="2" lat="12.9710" lon="77.5910"/>
 <node id="3" lat="12.9720" lon="77.5920"/>
 <way id="100">
  <nd ref="1"/>
  <nd ref="2"/>
  <nd ref="3"/>
  <tag k="highway" v="primary"/>
  <tag k="name" v="MG Road"/>
 </way>
</osm>`

var testBBox = models.BBox{South: 12.834, West: 77.461, North: 13.139, East: 77.784}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClientFetch(t *testing.T) {
	t.Run("decodes overpass response", func(t *testing.T) {
		var gotBody string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			gotBody = string(body)
			w.Write([]byte(miniExtract))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 5*time.Second, discardLogger())
		o, err := c.Fetch(context.Background(), Query{BBox: testBBox, NetworkType: "drive"})

		require.NoError(t, err)
		assert.Len(t, o.Nodes, 3)
		assert.Len(t, o.Ways, 1)
		assert.Equal(t, "MG Road", o.Ways[0].Tags.Find("name"))
		assert.Contains(t, gotBody, "12.834000")
		assert.Contains(t, gotBody, "footway")
	})

	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "too busy", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 5*time.Second, discardLogger())
		_, err := c.Fetch(context.Background(), Query{BBox: testBBox})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 429")
	})

	t.Run("malformed response", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<osm><node"))
		}))
		defer srv.Close()

		c := NewClient(srv.URL, 5*time.Second, discardLogger())
		_, err := c.Fetch(context.Background(), Query{BBox: testBBox})
		require.Error(t, err)
	})
}

func TestBuildQL(t *testing.T) {
	drive := BuildQL(Query{BBox: testBBox, NetworkType: "drive"})
	assert.Contains(t, drive, `"highway"!~`)

	all := BuildQL(Query{BBox: testBBox, NetworkType: "all"})
	assert.NotContains(t, all, `"highway"!~`)
	assert.Contains(t, all, `["highway"]`)
}
