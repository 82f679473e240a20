// Package export renders the decorated street graph into the toolkit's
// output artifacts. Every exporter is independent and writes exactly one
// file; failures are filesystem or encoding errors only.
package export

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/vivek2589/bangalore-graph-package/internal/graph"
)

// FeatureCollection converts edges into GeoJSON features carrying the
// aggregated traffic metrics plus presentation properties for the HTML maps.
func FeatureCollection(edges []*graph.Edge, maxVolume float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, e := range edges {
		f := geojson.NewFeature(e.Geom.Clone())
		f.Properties["u"] = int64(e.From)
		f.Properties["v"] = int64(e.To)
		f.Properties["name"] = e.Name
		f.Properties["traffic_volume"] = e.Volume
		f.Properties["average_speed"] = e.Speed
		f.Properties["congestion_level"] = e.Congestion
		f.Properties["color"] = volumeColor(ramp(e.Volume, maxVolume))
		f.Properties["weight"] = 2
		f.Properties["tooltip"] = fmt.Sprintf("%s | traffic_volume: %.0f", e.Name, e.Volume)
		fc.Append(f)
	}
	return fc
}

// MaxVolume returns the largest edge volume, or 1 so ramps never divide by
// zero.
func MaxVolume(edges []*graph.Edge) float64 {
	max := 0.0
	for _, e := range edges {
		if e.Volume > max {
			max = e.Volume
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

func ramp(volume, maxVolume float64) float64 {
	t := volume / maxVolume
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// volumeColor maps [0, 1] onto a white-to-red ramp, the same palette family
// as the static heatmap.
func volumeColor(t float64) string {
	g := int(245 * (1 - t))
	b := int(235 * (1 - t))
	return fmt.Sprintf("#ff%02x%02x", g, b)
}

// bounds returns the graph's node bounding box as (min, max) points.
func bounds(g *graph.StreetGraph) (orb.Point, orb.Point) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return orb.Point{}, orb.Point{}
	}
	min := orb.Point{nodes[0].Lon, nodes[0].Lat}
	max := min
	for _, n := range nodes {
		if n.Lon < min[0] {
			min[0] = n.Lon
		}
		if n.Lat < min[1] {
			min[1] = n.Lat
		}
		if n.Lon > max[0] {
			max[0] = n.Lon
		}
		if n.Lat > max[1] {
			max[1] = n.Lat
		}
	}
	return min, max
}

func center(g *graph.StreetGraph) (lat, lon float64) {
	min, max := bounds(g)
	return (min[1] + max[1]) / 2, (min[0] + max[0]) / 2
}
