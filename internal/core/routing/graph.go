package routing

import (
	"github.com/arjunmehra/skyfare/internal/core/domain"
)

// Edge is one flight leaving a node. Parallel flights between the same
// pair of airports stay separate edges; they carry different prices and
// must remain individually selectable.
type Edge struct {
	To     string
	Price  float64
	Flight *domain.Flight
}

// Graph is a directed multigraph over airport codes, derived from a
// catalog snapshot. It is transient: built per query, never persisted,
// never mutated after construction.
type Graph struct {
	adjacency map[string][]Edge
	nodes     map[string]struct{}
}

// BuildGraph indexes every flight as a weighted edge from its source
// airport. Weights are prices; the catalog guarantees they are
// non-negative, so no sign check happens here.
func BuildGraph(flights []domain.Flight) *Graph {
	g := &Graph{
		adjacency: make(map[string][]Edge),
		nodes:     make(map[string]struct{}),
	}
	for i := range flights {
		f := &flights[i]
		g.nodes[f.Source] = struct{}{}
		g.nodes[f.Destination] = struct{}{}
		g.adjacency[f.Source] = append(g.adjacency[f.Source], Edge{
			To:     f.Destination,
			Price:  f.Price,
			Flight: f,
		})
	}
	return g
}

// HasNode reports whether the airport appears in any flight.
func (g *Graph) HasNode(code string) bool {
	_, ok := g.nodes[code]
	return ok
}

// Edges returns the outgoing edges of a node.
func (g *Graph) Edges(code string) []Edge {
	return g.adjacency[code]
}

// NodeCount returns the number of distinct airports in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}
