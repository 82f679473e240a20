package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vivek2589/bangalore-graph-package/internal/graph"
)

// EdgeRow is one edge list record, shaped for GNN training pipelines.
type EdgeRow struct {
	U               int64   `json:"u" parquet:"name=u, type=INT64"`
	V               int64   `json:"v" parquet:"name=v, type=INT64"`
	TrafficVolume   float64 `json:"traffic_volume" parquet:"name=traffic_volume, type=DOUBLE"`
	AverageSpeed    float64 `json:"average_speed" parquet:"name=average_speed, type=DOUBLE"`
	CongestionLevel float64 `json:"congestion_level" parquet:"name=congestion_level, type=DOUBLE"`
}

// EdgeRows flattens the graph into edge list records in deterministic order.
func EdgeRows(g *graph.StreetGraph) []EdgeRow {
	edges := g.Edges()
	rows := make([]EdgeRow, 0, len(edges))
	for _, e := range edges {
		rows = append(rows, EdgeRow{
			U:               int64(e.From),
			V:               int64(e.To),
			TrafficVolume:   e.Volume,
			AverageSpeed:    e.Speed,
			CongestionLevel: e.Congestion,
		})
	}
	return rows
}

// WriteEdgeCSV writes the edge list as CSV to w.
func WriteEdgeCSV(w io.Writer, rows []EdgeRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"u", "v", "traffic_volume", "average_speed", "congestion_level"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.FormatInt(r.U, 10),
			strconv.FormatInt(r.V, 10),
			formatFloat(r.TrafficVolume),
			formatFloat(r.AverageSpeed),
			formatFloat(r.CongestionLevel),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportEdgeCSV writes the edge list CSV artifact.
func ExportEdgeCSV(g *graph.StreetGraph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create edge list: %w", err)
	}
	defer f.Close()

	if err := WriteEdgeCSV(f, EdgeRows(g)); err != nil {
		return fmt.Errorf("write edge list: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
