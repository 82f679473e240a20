package export

import (
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/vivek2589/bangalore-graph-package/internal/graph"
)

// The Kepler.gl export is a self-contained page loading the UMD bundle from
// a CDN with the edge GeoJSON embedded, body styled fullscreen.
var keplerMapTmpl = template.Must(template.New("kepler").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://unpkg.com/react@16.8.4/umd/react.production.min.js"></script>
<script src="https://unpkg.com/react-dom@16.8.4/umd/react-dom.production.min.js"></script>
<script src="https://unpkg.com/redux@3.7.2/dist/redux.min.js"></script>
<script src="https://unpkg.com/react-redux@7.1.3/dist/react-redux.min.js"></script>
<script src="https://unpkg.com/styled-components@4.1.3/dist/styled-components.min.js"></script>
<script src="https://unpkg.com/kepler.gl@2.5.5/umd/keplergl.min.js"></script>
</head>
<body style="margin:0;padding:0;overflow:hidden;">
<div id="app" style="position:fixed;top:0;left:0;width:100%;height:100%;"></div>
<script>
(function () {
  var dataset = {
    info: { id: 'traffic-edges', label: {{.DatasetLabel}} },
    data: {{.GeoJSON}}
  };
  var reducers = Redux.combineReducers({
    keplerGl: KeplerGl.keplerGlReducer.initialState({
      mapState: { latitude: {{.CenterLat}}, longitude: {{.CenterLon}}, zoom: 11 }
    })
  });
  var middlewares = KeplerGl.enhanceReduxMiddleware([]);
  var store = Redux.createStore(reducers, {}, Redux.applyMiddleware.apply(null, middlewares));
  var app = React.createElement(
    ReactRedux.Provider, { store: store },
    React.createElement(KeplerGl.default, {
      id: 'map',
      width: window.innerWidth,
      height: window.innerHeight,
      mapboxApiAccessToken: ''
    })
  );
  ReactDOM.render(app, document.getElementById('app'));
  store.dispatch(KeplerGl.addDataToMap({
    datasets: [{ info: dataset.info, data: KeplerGl.processGeojson(dataset.data) }],
    options: { centerMap: true }
  }));
})();
</script>
</body>
</html>
`))

type keplerMapData struct {
	Title        string
	DatasetLabel string
	CenterLat    float64
	CenterLon    float64
	GeoJSON      template.JS
}

// ExportKeplerMap writes the Kepler.gl flavored interactive HTML map.
func ExportKeplerMap(g *graph.StreetGraph, path, title string) error {
	edges := g.Edges()
	raw, err := json.Marshal(FeatureCollection(edges, MaxVolume(edges)))
	if err != nil {
		return fmt.Errorf("marshal edges: %w", err)
	}

	lat, lon := center(g)
	return renderTemplate(keplerMapTmpl, path, keplerMapData{
		Title:        title,
		DatasetLabel: title,
		CenterLat:    lat,
		CenterLon:    lon,
		GeoJSON:      template.JS(raw),
	})
}
