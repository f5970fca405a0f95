package routing

import (
	"math"

	"github.com/paulmach/orb"
)

// testGraph is a small in-memory Graph with planar euclidean distances,
// giving tests full control over edge weights and bearings.
type testGraph struct {
	pts   map[int64]orb.Point
	adj   map[int64][]int64
	ways  map[int64][]int64
	names map[int64]string
}

func newTestGraph() *testGraph {
	return &testGraph{
		pts:   make(map[int64]orb.Point),
		adj:   make(map[int64][]int64),
		ways:  make(map[int64][]int64),
		names: make(map[int64]string),
	}
}

func (g *testGraph) addNode(id int64, lon, lat float64) {
	g.pts[id] = orb.Point{lon, lat}
}

func (g *testGraph) addEdge(a, b int64) {
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
}

// addWay chains the nodes with edges and records the way on each of them.
func (g *testGraph) addWay(way int64, name string, nodes ...int64) {
	g.names[way] = name
	for i, n := range nodes {
		g.ways[n] = append(g.ways[n], way)
		if i > 0 {
			g.addEdge(nodes[i-1], n)
		}
	}
}

func (g *testGraph) Neighbors(id int64) []int64 { return g.adj[id] }

func (g *testGraph) Distance(a, b int64) float64 {
	pa, pb := g.pts[a], g.pts[b]
	return math.Hypot(pb[0]-pa[0], pb[1]-pa[1])
}

// Bearing treats the plane as a compass: north is up, east is +90.
func (g *testGraph) Bearing(a, b int64) float64 {
	pa, pb := g.pts[a], g.pts[b]
	return math.Atan2(pb[0]-pa[0], pb[1]-pa[1]) * 180 / math.Pi
}

func (g *testGraph) Nearest(lon, lat float64) (int64, bool) {
	var best int64
	bd := math.Inf(1)
	found := false
	for id, p := range g.pts {
		d := math.Hypot(p[0]-lon, p[1]-lat)
		if d < bd || (d == bd && found && id < best) {
			best, bd = id, d
			found = true
		}
	}
	return best, found
}

func (g *testGraph) IncidentWays(id int64) []int64 { return g.ways[id] }

func (g *testGraph) WayName(way int64) (string, bool) {
	name, ok := g.names[way]
	return name, ok && name != ""
}
