package network

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/graph/layout"
	"gonum.org/v1/gonum/graph/simple"
)

// layoutSeed fixes the force-directed layout so repeated renders of
// the same sample land nodes in the same places. Positions are a
// rendering convenience, not a correctness property; only topology is
// tested.
const layoutSeed = 42

// assignPositions runs a seeded Eades force-directed layout over the
// graph and writes the resulting coordinates onto the nodes. Every
// node is guaranteed a finite position.
func assignPositions(g *Graph, seed uint64) {
	ug := simple.NewUndirectedGraph()
	idx := make(map[string]int64, len(g.Nodes))
	for i, n := range g.Nodes {
		id := int64(i)
		idx[n.Name] = id
		ug.AddNode(simple.Node(id))
	}
	for _, e := range g.Edges {
		a, b := idx[e.Seller], idx[e.Buyer]
		if a == b {
			continue // self-transfers carry no layout force
		}
		ug.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
	}

	eades := layout.EadesR2{
		Repulsion: 1,
		Rate:      0.05,
		Updates:   100,
		Theta:     0.2,
		Src:       rand.NewSource(seed),
	}
	optimizer := layout.NewOptimizerR2(ug, eades.Update)
	for optimizer.Update() {
	}

	for i := range g.Nodes {
		pos := optimizer.Coord2(int64(i))
		g.Nodes[i].X, g.Nodes[i].Y = pos.X, pos.Y
	}

	// A disconnected or degenerate node can come back non-finite from
	// the optimizer; fall back to a unit circle placement.
	for i := range g.Nodes {
		if !isFinite(g.Nodes[i].X) || !isFinite(g.Nodes[i].Y) {
			angle := 2 * math.Pi * float64(i) / float64(len(g.Nodes))
			g.Nodes[i].X = math.Cos(angle)
			g.Nodes[i].Y = math.Sin(angle)
		}
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
