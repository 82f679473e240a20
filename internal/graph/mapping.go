package graph

import (
	"log/slog"
	"sort"

	"github.com/vivek2589/bangalore-graph-package/internal/dataset"
)

// Metrics are the aggregated traffic attributes attached to an edge.
type Metrics struct {
	Volume     float64
	Speed      float64
	Congestion float64
}

// MapStats summarises one traffic join.
type MapStats struct {
	Matched   int
	Fuzzy     int
	Unmatched int
}

const maxUnmatchedLogs = 20

// AggregateByRoad groups records by normalized road name and reduces each
// metric with the given aggregation ("mean", "sum", "max" or "min"; anything
// else falls back to mean).
func AggregateByRoad(records []dataset.TrafficRecord, agg string) map[string]Metrics {
	type bucket struct {
		vol, speed, cong []float64
	}
	buckets := make(map[string]*bucket)
	for _, r := range records {
		key := NormalizeAndAlias(r.RoadName)
		if key == "" {
			continue
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.vol = append(b.vol, r.Volume)
		b.speed = append(b.speed, r.Speed)
		b.cong = append(b.cong, r.Congestion)
	}

	out := make(map[string]Metrics, len(buckets))
	for key, b := range buckets {
		out[key] = Metrics{
			Volume:     reduce(b.vol, agg),
			Speed:      reduce(b.speed, agg),
			Congestion: reduce(b.cong, agg),
		}
	}
	return out
}

// MapTraffic joins aggregated traffic metrics onto graph edges by normalized
// road name, fuzzy matching at the cutoff when the exact lookup misses.
// Edges with no match are reset to zero metrics, so mapping a record subset
// onto an already-decorated graph leaves no stale values behind.
func MapTraffic(g *StreetGraph, records []dataset.TrafficRecord, agg string, cutoff float64, logger *slog.Logger) MapStats {
	metrics := AggregateByRoad(records, agg)

	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	var stats MapStats
	for _, e := range g.Edges() {
		norm := NormalizeAndAlias(e.Name)

		m, ok := metrics[norm]
		if !ok {
			if candidate, found := BestMatch(norm, names, cutoff); found {
				m = metrics[candidate]
				ok = true
				stats.Fuzzy++
			}
		}

		if !ok {
			stats.Unmatched++
			if e.Name != "" && stats.Unmatched <= maxUnmatchedLogs {
				logger.Debug("unmatched road", "name", e.Name, "normalized", norm)
			}
			e.Volume, e.Speed, e.Congestion = 0, 0, 0
			e.Matched = false
			continue
		}

		e.Volume = m.Volume
		e.Speed = m.Speed
		e.Congestion = m.Congestion
		e.Matched = true
		stats.Matched++
	}

	logger.Info("traffic mapping complete",
		"matched", stats.Matched,
		"fuzzy", stats.Fuzzy,
		"unmatched", stats.Unmatched,
		"edges", g.NumEdges(),
	)
	return stats
}

func reduce(values []float64, agg string) float64 {
	if len(values) == 0 {
		return 0
	}
	switch agg {
	case "sum":
		return sum(values)
	case "max":
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	case "min":
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	default: // mean
		return sum(values) / float64(len(values))
	}
}

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}
