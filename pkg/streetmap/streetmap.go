// Package streetmap loads OpenStreetMap extracts into an in-memory road
// graph for nearest-vertex lookup and shortest-path routing.
//
// A Graph is immutable once loaded and safe for unsynchronized concurrent
// reads. Its method set satisfies the routing.Graph contract, so a loaded
// graph plugs straight into the router:
//
//	g, err := streetmap.Load("berkeley.osm.gz", streetmap.DefaultLoadOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, err := routing.ShortestPath(g, start, dest)
//
// Only ways carrying a routable highway tag survive loading, and only
// nodes on at least one kept way become vertices, so every vertex the
// graph exposes can appear on a route.
package streetmap

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// milesPerMeter converts orb/geo meter distances into the miles used for
// edge weights and direction output.
const milesPerMeter = 1.0 / 1609.344

// Node is one graph vertex.
type Node struct {
	ID    int64
	Point orb.Point

	// Ways holds the ids of the kept ways through this node, sorted
	// ascending.
	Ways []int64
}

// Way is one routable road: its display name (empty when untagged) and
// its member vertices in way order.
type Way struct {
	ID    int64
	Name  string
	Nodes []int64
}

// Graph is an immutable road network. The zero value is not usable; build
// one with Load or Decode.
type Graph struct {
	nodes     map[int64]*Node
	ways      map[int64]*Way
	adj       map[int64][]int64
	vertexIDs []int64
	index     *nodeIndex
	bound     orb.Bound
}

// NodeCount returns the number of vertices.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// WayCount returns the number of kept ways.
func (g *Graph) WayCount() int { return len(g.ways) }

// Node returns a vertex by id. The returned value is shared and must not
// be modified.
func (g *Graph) Node(id int64) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Way returns a way by id. The returned value is shared and must not be
// modified.
func (g *Graph) Way(id int64) (*Way, bool) {
	w, ok := g.ways[id]
	return w, ok
}

// Vertices returns all vertex ids in ascending order. The slice is shared
// and must not be modified.
func (g *Graph) Vertices() []int64 { return g.vertexIDs }

// Bound returns the bounding box of all vertices.
func (g *Graph) Bound() orb.Bound { return g.bound }

// Neighbors returns the vertices adjacent to id, in ascending order.
func (g *Graph) Neighbors(id int64) []int64 { return g.adj[id] }

// Distance returns the great-circle distance in miles between two
// vertices. Both ids must be vertices of the graph.
func (g *Graph) Distance(a, b int64) float64 {
	return geo.Distance(g.nodes[a].Point, g.nodes[b].Point) * milesPerMeter
}

// Bearing returns the initial compass bearing in degrees from vertex a to
// vertex b, in [-180, 180]. Both ids must be vertices of the graph.
func (g *Graph) Bearing(a, b int64) float64 {
	return geo.Bearing(g.nodes[a].Point, g.nodes[b].Point)
}

// Nearest returns the vertex closest to the coordinate by great-circle
// distance, preferring the smallest id among equidistant candidates. ok
// is false only for an empty graph.
func (g *Graph) Nearest(lon, lat float64) (int64, bool) {
	if g.index == nil {
		return 0, false
	}
	return g.index.nearest(orb.Point{lon, lat})
}

// IncidentWays returns the ids of the kept ways through a vertex, sorted
// ascending. The slice is shared and must not be modified.
func (g *Graph) IncidentWays(id int64) []int64 {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return n.Ways
}

// WayName resolves a way id to its display name; ok is false for unknown
// or unnamed ways.
func (g *Graph) WayName(way int64) (string, bool) {
	w, ok := g.ways[way]
	if !ok || w.Name == "" {
		return "", false
	}
	return w.Name, true
}
