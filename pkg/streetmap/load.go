package streetmap

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmxml"
)

// LoadOptions configures graph construction from an OSM document.
type LoadOptions struct {
	// Highways lists the highway tag values considered routable. Ways
	// with any other value, or no highway tag at all, are dropped. Nil
	// falls back to DefaultLoadOptions().Highways.
	Highways []string
}

// DefaultLoadOptions returns the standard routable-road whitelist: the
// drivable highway classes plus their link roads.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Highways: []string{
			"motorway", "trunk", "primary", "secondary", "tertiary",
			"unclassified", "residential", "living_street",
			"motorway_link", "trunk_link", "primary_link",
			"secondary_link", "tertiary_link",
		},
	}
}

// Load reads an OSM XML file into a road graph. Files ending in .gz are
// transparently decompressed.
func Load(path string, opts LoadOptions) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("streetmap: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("streetmap: open %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	g, err := Decode(r, opts)
	if err != nil {
		return nil, fmt.Errorf("streetmap: load %s: %w", path, err)
	}
	return g, nil
}

// Decode streams an OSM XML document into a road graph.
//
// Nodes and ways are collected in a single pass. Ways outside the highway
// whitelist are dropped; the rest contribute undirected edges between
// consecutive member nodes. Only nodes on at least one kept way become
// vertices, so isolated map points never reach the router or the
// nearest-vertex index.
func Decode(r io.Reader, opts LoadOptions) (*Graph, error) {
	highways := opts.Highways
	if highways == nil {
		highways = DefaultLoadOptions().Highways
	}

	points := make(map[int64]orb.Point)
	var ways []*osm.Way

	scanner := osmxml.New(context.Background(), r)
	defer scanner.Close()
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Node:
			points[int64(o.ID)] = orb.Point{o.Lon, o.Lat}
		case *osm.Way:
			if slices.Contains(highways, o.Tags.Find("highway")) {
				ways = append(ways, o)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("streetmap: decode: %w", err)
	}

	return build(points, ways)
}

func build(points map[int64]orb.Point, osmWays []*osm.Way) (*Graph, error) {
	g := &Graph{
		nodes: make(map[int64]*Node),
		ways:  make(map[int64]*Way, len(osmWays)),
		adj:   make(map[int64][]int64),
	}

	for _, ow := range osmWays {
		wayID := int64(ow.ID)
		members := make([]int64, 0, len(ow.Nodes))
		for _, wn := range ow.Nodes {
			nid := int64(wn.ID)
			if _, ok := points[nid]; !ok {
				return nil, &DanglingRefError{WayID: wayID, NodeID: nid}
			}
			members = append(members, nid)
		}
		if len(members) < 2 {
			// A way needs an edge to be routable.
			continue
		}
		g.ways[wayID] = &Way{ID: wayID, Name: ow.Tags.Find("name"), Nodes: members}

		for i, nid := range members {
			n := g.nodes[nid]
			if n == nil {
				n = &Node{ID: nid, Point: points[nid]}
				g.nodes[nid] = n
			}
			if !slices.Contains(n.Ways, wayID) {
				n.Ways = append(n.Ways, wayID)
			}
			if i > 0 {
				g.addEdge(members[i-1], nid)
			}
		}
	}

	for _, n := range g.nodes {
		slices.Sort(n.Ways)
	}
	for id, list := range g.adj {
		slices.Sort(list)
		g.adj[id] = slices.Compact(list)
	}

	ids := make([]int64, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	g.vertexIDs = ids

	if len(ids) > 0 {
		first := g.nodes[ids[0]].Point
		b := orb.Bound{Min: first, Max: first}
		for _, id := range ids[1:] {
			b = b.Extend(g.nodes[id].Point)
		}
		g.bound = b
		g.index = newNodeIndex(g)
	}
	return g, nil
}

func (g *Graph) addEdge(a, b int64) {
	g.adj[a] = append(g.adj[a], b)
	g.adj[b] = append(g.adj[b], a)
}
