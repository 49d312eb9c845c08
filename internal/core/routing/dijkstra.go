package routing

import (
	"container/heap"

	"github.com/arjunmehra/skyfare/internal/core/domain"
)

// Itinerary is the cheapest sequence of flight legs between two
// airports, with the summed price.
type Itinerary struct {
	Legs       []*domain.Flight
	TotalPrice float64
}

// Transfers returns the number of intermediate stops.
func (it *Itinerary) Transfers() int {
	if len(it.Legs) == 0 {
		return 0
	}
	return len(it.Legs) - 1
}

type queueItem struct {
	node string
	dist float64
}

// priorityQueue is a min-heap on tentative distance.
type priorityQueue []queueItem

func (pq priorityQueue) Len() int            { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq priorityQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) { *pq = append(*pq, x.(queueItem)) }
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// predecessor records which incoming edge achieved the current best
// distance for a node.
type predecessor struct {
	via    string
	flight *domain.Flight
}

// Cheapest runs Dijkstra from source, stopping as soon as destination
// is finalized. Edge weights are prices and assumed non-negative.
// Equal-cost alternatives resolve by heap pop order; the choice is
// stable within a single search but not canonical.
//
// A self-route returns a zero-price itinerary with no legs. An unknown
// or unreachable airport yields domain.ErrRouteNotFound.
func (g *Graph) Cheapest(source, destination string) (*Itinerary, error) {
	if source == destination {
		return &Itinerary{}, nil
	}
	if !g.HasNode(source) || !g.HasNode(destination) {
		return nil, domain.ErrRouteNotFound
	}

	dist := map[string]float64{source: 0}
	prev := make(map[string]predecessor)
	visited := make(map[string]struct{})

	pq := &priorityQueue{{node: source, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(queueItem)
		if _, seen := visited[cur.node]; seen {
			continue // stale queue entry, already finalized cheaper
		}
		visited[cur.node] = struct{}{}

		if cur.node == destination {
			break
		}

		for _, e := range g.Edges(cur.node) {
			if _, seen := visited[e.To]; seen {
				continue
			}
			next := cur.dist + e.Price
			if best, ok := dist[e.To]; !ok || next < best {
				dist[e.To] = next
				prev[e.To] = predecessor{via: cur.node, flight: e.Flight}
				heap.Push(pq, queueItem{node: e.To, dist: next})
			}
		}
	}

	total, ok := dist[destination]
	if !ok {
		return nil, domain.ErrRouteNotFound
	}

	// Walk predecessor links back to the source, then reverse.
	var legs []*domain.Flight
	for at := destination; at != source; {
		p := prev[at]
		legs = append(legs, p.flight)
		at = p.via
	}
	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}

	return &Itinerary{Legs: legs, TotalPrice: total}, nil
}
