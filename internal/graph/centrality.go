package graph

import (
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
)

// ComputeCentralities scores every node with betweenness centrality
// (normalized to [0, 1] over node pairs) and degree centrality, writing the
// scores onto the nodes.
func ComputeCentralities(g *StreetGraph) {
	n := g.NumNodes()
	if n == 0 {
		return
	}

	sg := simple.NewUndirectedGraph()
	for _, node := range g.Nodes() {
		sg.AddNode(simple.Node(int64(node.ID)))
	}
	for _, e := range g.Edges() {
		sg.SetEdge(simple.Edge{F: simple.Node(int64(e.From)), T: simple.Node(int64(e.To))})
	}

	betweenness := network.Betweenness(sg)

	scale := 1.0
	if n > 2 {
		scale = 2.0 / (float64(n-1) * float64(n-2))
	}
	for _, node := range g.Nodes() {
		node.Betweenness = betweenness[int64(node.ID)] * scale
		if n > 1 {
			node.DegreeCentrality = float64(g.Degree(node.ID)) / float64(n-1)
		}
	}
}
