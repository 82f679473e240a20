package export

import (
	"fmt"

	"github.com/fogleman/gg"

	"github.com/vivek2589/bangalore-graph-package/internal/graph"
)

const (
	heatmapSize   = 1500
	heatmapMargin = 40
)

// ExportHeatmap renders the edges as a static PNG, colored by traffic
// volume on a white-to-red ramp over an equirectangular projection.
// Intersections with nonzero betweenness are overlaid as dots, sized by
// betweenness and shaded by degree centrality.
func ExportHeatmap(g *graph.StreetGraph, path, title string) error {
	min, max := bounds(g)
	spanX := max[0] - min[0]
	spanY := max[1] - min[1]
	if spanX == 0 {
		spanX = 1e-6
	}
	if spanY == 0 {
		spanY = 1e-6
	}

	dc := gg.NewContext(heatmapSize, heatmapSize)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	drawable := float64(heatmapSize - 2*heatmapMargin)
	project := func(lon, lat float64) (float64, float64) {
		x := heatmapMargin + (lon-min[0])/spanX*drawable
		y := heatmapMargin + (max[1]-lat)/spanY*drawable
		return x, y
	}

	maxVol := MaxVolume(g.Edges())
	for _, e := range g.Edges() {
		t := ramp(e.Volume, maxVol)
		dc.SetRGB(1, (1-t)*0.96, (1-t)*0.92)
		dc.SetLineWidth(1 + 1.5*t)
		for i := 0; i+1 < len(e.Geom); i++ {
			x1, y1 := project(e.Geom[i][0], e.Geom[i][1])
			x2, y2 := project(e.Geom[i+1][0], e.Geom[i+1][1])
			dc.DrawLine(x1, y1, x2, y2)
		}
		dc.Stroke()
	}

	var maxBetweenness, maxDegree float64
	for _, n := range g.Nodes() {
		if n.Betweenness > maxBetweenness {
			maxBetweenness = n.Betweenness
		}
		if n.DegreeCentrality > maxDegree {
			maxDegree = n.DegreeCentrality
		}
	}
	if maxBetweenness > 0 {
		for _, n := range g.Nodes() {
			if n.Betweenness == 0 {
				continue
			}
			alpha := 0.35
			if maxDegree > 0 {
				alpha += 0.45 * n.DegreeCentrality / maxDegree
			}
			x, y := project(n.Lon, n.Lat)
			dc.DrawCircle(x, y, 1.5+4*n.Betweenness/maxBetweenness)
			dc.SetRGBA(0.55, 0, 0.05, alpha)
			dc.Fill()
		}
	}

	dc.SetRGB(0.1, 0.1, 0.1)
	dc.DrawStringAnchored(title, heatmapSize/2, heatmapMargin/2, 0.5, 0.5)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save heatmap: %w", err)
	}
	return nil
}
