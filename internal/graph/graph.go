// Package graph builds and decorates the street graph the toolkit analyses.
package graph

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// Node is a street intersection.
type Node struct {
	ID  osm.NodeID
	Lat float64
	Lon float64

	// Centrality scores, populated by ComputeCentralities. Used for display
	// sizing only.
	Betweenness      float64
	DegreeCentrality float64
}

// Edge is a road segment between two intersections. From is always the
// smaller node ID; the graph is undirected and simple.
type Edge struct {
	From osm.NodeID
	To   osm.NodeID

	// Name is the display identifier taken from the way's name, ref or
	// highway tag, in that order.
	Name    string
	Highway string

	Geom         orb.LineString
	LengthMeters float64

	// Aggregated traffic metrics joined from the dataset. Zero when no
	// record matched.
	Volume     float64
	Speed      float64
	Congestion float64
	Matched    bool
}

// EdgeKey is the canonical (smaller, larger) node pair identifying an edge.
type EdgeKey struct {
	U osm.NodeID
	V osm.NodeID
}

func NewEdgeKey(a, b osm.NodeID) EdgeKey {
	if b < a {
		a, b = b, a
	}
	return EdgeKey{U: a, V: b}
}

// StreetGraph is an undirected simple graph over street intersections.
type StreetGraph struct {
	nodes map[osm.NodeID]*Node
	edges map[EdgeKey]*Edge
	adj   map[osm.NodeID]map[osm.NodeID]struct{}
}

func NewStreetGraph() *StreetGraph {
	return &StreetGraph{
		nodes: make(map[osm.NodeID]*Node),
		edges: make(map[EdgeKey]*Edge),
		adj:   make(map[osm.NodeID]map[osm.NodeID]struct{}),
	}
}

func (g *StreetGraph) AddNode(n *Node) {
	if _, ok := g.nodes[n.ID]; ok {
		return
	}
	g.nodes[n.ID] = n
	g.adj[n.ID] = make(map[osm.NodeID]struct{})
}

func (g *StreetGraph) Node(id osm.NodeID) *Node {
	return g.nodes[id]
}

// AddEdge inserts a segment between two existing nodes. Self loops are
// dropped; parallel edges collapse onto the shorter segment.
func (g *StreetGraph) AddEdge(e *Edge) {
	if e.From == e.To {
		return
	}
	if _, ok := g.nodes[e.From]; !ok {
		return
	}
	if _, ok := g.nodes[e.To]; !ok {
		return
	}

	key := NewEdgeKey(e.From, e.To)
	e.From, e.To = key.U, key.V
	if existing, ok := g.edges[key]; ok {
		if existing.LengthMeters <= e.LengthMeters {
			return
		}
	}
	g.edges[key] = e
	g.adj[e.From][e.To] = struct{}{}
	g.adj[e.To][e.From] = struct{}{}
}

func (g *StreetGraph) Edge(a, b osm.NodeID) *Edge {
	return g.edges[NewEdgeKey(a, b)]
}

// Nodes returns all nodes ordered by ID so iteration is deterministic.
func (g *StreetGraph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Edges returns all edges ordered by (From, To) so iteration and every export
// derived from it are deterministic.
func (g *StreetGraph) Edges() []*Edge {
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

func (g *StreetGraph) NumNodes() int { return len(g.nodes) }
func (g *StreetGraph) NumEdges() int { return len(g.edges) }

func (g *StreetGraph) Degree(id osm.NodeID) int {
	return len(g.adj[id])
}

// LargestComponent returns the subgraph induced by the largest connected
// component, mirroring how the analysis discards disconnected fragments.
func (g *StreetGraph) LargestComponent() *StreetGraph {
	visited := make(map[osm.NodeID]bool, len(g.nodes))
	var largest []osm.NodeID

	for _, n := range g.Nodes() {
		if visited[n.ID] {
			continue
		}
		component := g.bfs(n.ID, visited)
		if len(component) > len(largest) {
			largest = component
		}
	}

	keep := make(map[osm.NodeID]bool, len(largest))
	for _, id := range largest {
		keep[id] = true
	}

	sub := NewStreetGraph()
	for _, id := range largest {
		n := *g.nodes[id]
		sub.AddNode(&n)
	}
	for key, e := range g.edges {
		if keep[key.U] && keep[key.V] {
			copied := *e
			sub.AddEdge(&copied)
		}
	}
	return sub
}

// Clone deep-copies the graph so a caller can re-map traffic without
// disturbing the original decoration.
func (g *StreetGraph) Clone() *StreetGraph {
	out := NewStreetGraph()
	for _, n := range g.nodes {
		copied := *n
		out.AddNode(&copied)
	}
	for _, e := range g.edges {
		copied := *e
		out.AddEdge(&copied)
	}
	return out
}

func (g *StreetGraph) bfs(start osm.NodeID, visited map[osm.NodeID]bool) []osm.NodeID {
	queue := []osm.NodeID{start}
	visited[start] = true
	var component []osm.NodeID

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		component = append(component, id)
		for next := range g.adj[id] {
			if !visited[next] {
				visited[next] = true
				queue = append(queue, next)
			}
		}
	}
	return component
}
