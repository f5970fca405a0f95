package routing

import (
	"container/heap"
	"errors"
	"slices"

	"github.com/paulmach/orb"
)

var (
	// ErrEmptyGraph is returned when the graph has no vertices to snap an
	// endpoint to.
	ErrEmptyGraph = errors.New("routing: graph has no vertices")

	// ErrNoRoute is returned when no path connects the snapped endpoints.
	ErrNoRoute = errors.New("routing: no route between endpoints")
)

// ShortestPath returns the vertex sequence of a shortest path between the
// graph vertices nearest to start and dest.
//
// Both endpoints are snapped with Graph.Nearest before searching. The
// returned path begins at the snapped source and ends at the snapped
// destination, with every consecutive pair adjacent in the graph. When the
// two coordinates snap to the same vertex the path holds that single
// vertex. An unreachable destination yields ErrNoRoute, never a partial
// path.
func ShortestPath(g Graph, start, dest orb.Point) ([]int64, error) {
	src, ok := g.Nearest(start.Lon(), start.Lat())
	if !ok {
		return nil, ErrEmptyGraph
	}
	dst, ok := g.Nearest(dest.Lon(), dest.Lat())
	if !ok {
		return nil, ErrEmptyGraph
	}

	// Absence in distTo stands for +infinity, absence in prev for "no
	// predecessor"; vertex ids carry no sentinel meaning.
	distTo := map[int64]float64{src: 0}
	prev := make(map[int64]int64)
	settled := make(map[int64]struct{})

	pq := frontier{}
	heap.Push(&pq, frontierItem{id: src, dist: g.Distance(src, dst)})

	for pq.Len() > 0 {
		v := heap.Pop(&pq).(frontierItem).id
		if v == dst {
			break
		}
		if _, done := settled[v]; done {
			continue
		}
		settled[v] = struct{}{}

		dv := distTo[v]
		for _, w := range g.Neighbors(v) {
			cand := dv + g.Distance(v, w)
			if best, seen := distTo[w]; !seen || cand < best {
				distTo[w] = cand
				prev[w] = v
				heap.Push(&pq, frontierItem{id: w, dist: cand + g.Distance(w, dst)})
			}
		}
	}

	if _, reached := distTo[dst]; !reached {
		return nil, ErrNoRoute
	}

	path := []int64{dst}
	for v := dst; v != src; {
		p, ok := prev[v]
		if !ok {
			// A broken predecessor chain means the destination was never
			// actually connected to the source.
			return nil, ErrNoRoute
		}
		path = append(path, p)
		v = p
	}
	slices.Reverse(path)
	return path, nil
}

// PathDistance returns the total length in miles of a vertex path, zero
// for paths shorter than one edge.
func PathDistance(g Graph, path []int64) float64 {
	var total float64
	for i := 1; i < len(path); i++ {
		total += g.Distance(path[i-1], path[i])
	}
	return total
}
