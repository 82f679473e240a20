package export

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"

	"github.com/vivek2589/bangalore-graph-package/internal/dataset"
	"github.com/vivek2589/bangalore-graph-package/internal/graph"
)

var basicMapTmpl = template.Must(template.New("basic").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer('https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png', {
  attribution: '&copy; OpenStreetMap contributors &copy; CARTO'
}).addTo(map);
var edges = {{.GeoJSON}};
L.geoJSON(edges, {
  style: function (f) {
    return { color: f.properties.color, weight: f.properties.weight, opacity: 0.7 };
  },
  onEachFeature: function (f, layer) {
    layer.bindTooltip(f.properties.tooltip);
  }
}).addTo(map);
</script>
</body>
</html>
`))

var layeredMapTmpl = template.Must(template.New("layered").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map').setView([{{.CenterLat}}, {{.CenterLon}}], {{.Zoom}});
L.tileLayer('https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png', {
  attribution: '&copy; OpenStreetMap contributors &copy; CARTO'
}).addTo(map);
function trafficLayer(data, color, label) {
  return L.geoJSON(data, {
    style: function () { return { color: color, weight: 2, opacity: 0.7 }; },
    onEachFeature: function (f, layer) {
      layer.bindTooltip(label + ' | traffic_volume: ' + f.properties.traffic_volume.toFixed(0));
    }
  });
}
var weekday = trafficLayer({{.WeekdayGeoJSON}}, 'red', 'Weekday Traffic');
var weekend = trafficLayer({{.WeekendGeoJSON}}, 'blue', 'Weekend Traffic');
weekday.addTo(map);
L.control.layers(null, { 'Weekday Traffic': weekday, 'Weekend Traffic': weekend }).addTo(map);
</script>
</body>
</html>
`))

type basicMapData struct {
	Title     string
	CenterLat float64
	CenterLon float64
	Zoom      int
	GeoJSON   template.JS
}

type layeredMapData struct {
	Title          string
	CenterLat      float64
	CenterLon      float64
	Zoom           int
	WeekdayGeoJSON template.JS
	WeekendGeoJSON template.JS
}

// ExportBasicMap writes a single-layer interactive HTML map with edges
// styled by traffic volume.
func ExportBasicMap(g *graph.StreetGraph, path, title string) error {
	edges := g.Edges()
	raw, err := json.Marshal(FeatureCollection(edges, MaxVolume(edges)))
	if err != nil {
		return fmt.Errorf("marshal edges: %w", err)
	}

	lat, lon := center(g)
	return renderTemplate(basicMapTmpl, path, basicMapData{
		Title:     title,
		CenterLat: lat,
		CenterLon: lon,
		Zoom:      12,
		GeoJSON:   template.JS(raw),
	})
}

// ExportTimeLayeredMap writes an interactive HTML map with separate weekday
// and weekend traffic layers. Each layer re-maps its own record subset onto
// a copy of the graph.
func ExportTimeLayeredMap(g *graph.StreetGraph, records []dataset.TrafficRecord, path, title, agg string, cutoff float64, logger *slog.Logger) error {
	weekday, weekend := dataset.SplitByWeekend(records)

	weekdayJSON, err := layerGeoJSON(g, weekday, agg, cutoff, logger)
	if err != nil {
		return err
	}
	weekendJSON, err := layerGeoJSON(g, weekend, agg, cutoff, logger)
	if err != nil {
		return err
	}

	lat, lon := center(g)
	return renderTemplate(layeredMapTmpl, path, layeredMapData{
		Title:          title,
		CenterLat:      lat,
		CenterLon:      lon,
		Zoom:           12,
		WeekdayGeoJSON: weekdayJSON,
		WeekendGeoJSON: weekendJSON,
	})
}

func layerGeoJSON(g *graph.StreetGraph, records []dataset.TrafficRecord, agg string, cutoff float64, logger *slog.Logger) (template.JS, error) {
	layer := g.Clone()
	graph.MapTraffic(layer, records, agg, cutoff, logger)
	edges := layer.Edges()
	raw, err := json.Marshal(FeatureCollection(edges, MaxVolume(edges)))
	if err != nil {
		return "", fmt.Errorf("marshal layer: %w", err)
	}
	return template.JS(raw), nil
}

func renderTemplate(tmpl *template.Template, path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create map file: %w", err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return nil
}
