package streetmap

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// nearestCandidates is the R-tree candidate set size refined by exact
// great-circle distance. Planar degree ordering and great-circle ordering
// can disagree near the candidate boundary, so more than one candidate is
// compared.
const nearestCandidates = 16

// indexEpsilon gives point entries the positive extent rtreego requires,
// about 11 meters of longitude at the equator.
const indexEpsilon = 0.0001

// indexedNode wraps a vertex for R-tree storage.
type indexedNode struct {
	id int64
	pt orb.Point
}

// Bounds implements the rtreego.Spatial interface.
func (n *indexedNode) Bounds() rtreego.Rect {
	point := rtreego.Point{n.pt[0] - indexEpsilon/2, n.pt[1] - indexEpsilon/2}
	rect, _ := rtreego.NewRect(point, []float64{indexEpsilon, indexEpsilon})
	return rect
}

// nodeIndex answers nearest-vertex queries over the graph's vertices in
// O(log n).
type nodeIndex struct {
	rtree *rtreego.Rtree
}

func newNodeIndex(g *Graph) *nodeIndex {
	rtree := rtreego.NewTree(2, 25, 50)
	for _, id := range g.vertexIDs {
		n := g.nodes[id]
		rtree.Insert(&indexedNode{id: n.ID, pt: n.Point})
	}
	return &nodeIndex{rtree: rtree}
}

// nearest returns the indexed vertex closest to p by great-circle
// distance, breaking exact ties toward the smallest id.
func (x *nodeIndex) nearest(p orb.Point) (int64, bool) {
	candidates := x.rtree.NearestNeighbors(nearestCandidates, rtreego.Point{p[0], p[1]})

	var best int64
	bd := math.Inf(1)
	found := false
	for _, c := range candidates {
		if c == nil {
			continue
		}
		in := c.(*indexedNode)
		d := geo.Distance(in.pt, p)
		if d < bd || (d == bd && found && in.id < best) {
			best, bd = in.id, d
			found = true
		}
	}
	return best, found
}
