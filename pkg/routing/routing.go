// Package routing computes shortest paths over a road graph and renders
// them as turn-by-turn navigation directions.
//
// The search is A* with a straight-line heuristic. The heuristic never
// overestimates the remaining road distance, so the first time the
// destination leaves the frontier its tentative distance is final and the
// returned path is optimal.
//
// The package does not own a graph; callers supply anything satisfying the
// Graph interface. All functions are pure with respect to the graph and
// safe for concurrent use as long as the graph is not mutated.
//
// Example - route between two points and print the instructions:
//
//	path, err := routing.ShortestPath(g, orb.Point{-122.2573, 37.8720}, orb.Point{-122.2417, 37.8520})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range routing.Directions(g, path) {
//	    fmt.Println(d)
//	}
package routing

// Graph is the read-only road network the router operates on. Vertices
// and ways are identified by int64 ids. Implementations must tolerate
// unsynchronized concurrent calls; the router never mutates the graph.
type Graph interface {
	// Neighbors returns the vertices adjacent to id.
	Neighbors(id int64) []int64

	// Distance returns the non-negative distance in miles between two
	// vertices. It is the edge weight for adjacent vertices and the
	// straight-line heuristic otherwise, so it must never exceed the
	// shortest road distance between the pair.
	Distance(a, b int64) float64

	// Bearing returns the initial compass bearing in degrees from a to b.
	Bearing(a, b int64) float64

	// Nearest returns the vertex closest to a coordinate, or ok=false
	// when the graph has no vertices.
	Nearest(lon, lat float64) (int64, bool)

	// IncidentWays returns the ids of the ways passing through a vertex,
	// in a deterministic order.
	IncidentWays(id int64) []int64

	// WayName resolves a way id to its display name; ok is false for
	// unknown or unnamed ways.
	WayName(way int64) (string, bool)
}
