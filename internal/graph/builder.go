package graph

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
)

// Highway classes excluded from the "drive" network, matching the Overpass
// query filter so locally loaded extracts behave like downloaded ones.
var nonDrivable = map[string]bool{
	"footway":    true,
	"path":       true,
	"cycleway":   true,
	"steps":      true,
	"pedestrian": true,
	"corridor":   true,
	"bridleway":  true,
	"track":      true,
}

// BuildFromOSM turns an OSM extract into the street graph: each highway way
// contributes one edge per consecutive node pair, and only the largest
// connected component survives.
func BuildFromOSM(o *osm.OSM, networkType string) (*StreetGraph, error) {
	coords := make(map[osm.NodeID]orb.Point, len(o.Nodes))
	for _, n := range o.Nodes {
		coords[n.ID] = orb.Point{n.Lon, n.Lat}
	}

	g := NewStreetGraph()
	for _, w := range o.Ways {
		highway := w.Tags.Find("highway")
		if highway == "" {
			continue
		}
		if networkType != "all" && nonDrivable[highway] {
			continue
		}

		name := roadLabel(w.Tags, highway)
		for i := 0; i+1 < len(w.Nodes); i++ {
			a, b := w.Nodes[i].ID, w.Nodes[i+1].ID
			pa, okA := coords[a]
			pb, okB := coords[b]
			if !okA || !okB {
				// Ways can reference nodes clipped out of the extract.
				continue
			}

			g.AddNode(&Node{ID: a, Lat: pa.Lat(), Lon: pa.Lon()})
			g.AddNode(&Node{ID: b, Lat: pb.Lat(), Lon: pb.Lon()})
			g.AddEdge(&Edge{
				From:         a,
				To:           b,
				Name:         name,
				Highway:      highway,
				Geom:         orb.LineString{pa, pb},
				LengthMeters: geo.Distance(pa, pb),
			})
		}
	}

	if g.NumNodes() == 0 {
		return nil, errors.New("extract contains no usable highway ways")
	}
	return g.LargestComponent(), nil
}

// roadLabel picks the edge identifier the traffic join matches against:
// name, then ref, then the highway class.
func roadLabel(tags osm.Tags, highway string) string {
	if name := tags.Find("name"); name != "" {
		return name
	}
	if ref := tags.Find("ref"); ref != "" {
		return ref
	}
	return highway
}
