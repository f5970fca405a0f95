// Package raster selects map tiles from a fixed quadtree coverage.
//
// A Rasterer answers viewport queries against a pyramid of pre-rendered
// tiles: given a geographic bounding box and the pixel width it will be
// displayed at, it picks the coarsest tile depth that still meets the
// viewport's resolution requirement and returns the rectangular grid of
// tile identifiers covering the box, together with the exact geographic
// extent of that grid.
//
// Example - select tiles for a viewport:
//
//	r, err := raster.New(raster.DefaultCoverage())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := r.Raster(raster.Query{
//	    ULLon: -122.2412, ULLat: 37.8758,
//	    LRLon: -122.2262, LRLat: 37.8656,
//	    Width: 892,
//	})
//	if !res.Success {
//	    log.Fatal("query box outside coverage")
//	}
//	for _, row := range res.Grid {
//	    fmt.Println(row)
//	}
package raster

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Coverage describes the geographic area served by the tile pyramid and the
// shape of the pyramid itself.
//
// Longitude increases rightward and latitude increases upward, so the
// upper-left corner carries the minimum longitude and maximum latitude.
// Depth d partitions the coverage into 2^d x 2^d equal rectangles.
type Coverage struct {
	// ULLon, ULLat are the upper-left corner of the root tile.
	ULLon, ULLat float64

	// LRLon, LRLat are the lower-right corner of the root tile.
	LRLon, LRLat float64

	// TileSize is the pixel width and height of one rendered tile.
	TileSize int

	// MaxDepth is the deepest zoom level available. Queries requiring a
	// finer resolution are clamped to this depth.
	MaxDepth int
}

// DefaultCoverage returns the production coverage: the Berkeley area served
// by the standard 256px tile set with eight zoom levels (depth 0 through 7).
func DefaultCoverage() Coverage {
	return Coverage{
		ULLat:    37.892195547244356,
		ULLon:    -122.2998046875,
		LRLat:    37.82280243352756,
		LRLon:    -122.2119140625,
		TileSize: 256,
		MaxDepth: 7,
	}
}

// Bound returns the coverage extent as an orb bound.
func (c Coverage) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{c.ULLon, c.LRLat},
		Max: orb.Point{c.LRLon, c.ULLat},
	}
}

func (c Coverage) lonExtent() float64 { return c.LRLon - c.ULLon }
func (c Coverage) latExtent() float64 { return c.ULLat - c.LRLat }

func (c Coverage) validate() error {
	if c.ULLon >= c.LRLon || c.LRLat >= c.ULLat {
		return fmt.Errorf("raster: inverted or empty coverage (%v, %v) x (%v, %v)",
			c.ULLon, c.ULLat, c.LRLon, c.LRLat)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("raster: tile size must be positive, got %d", c.TileSize)
	}
	if c.MaxDepth < 0 || c.MaxDepth > 30 {
		return fmt.Errorf("raster: max depth must be in [0, 30], got %d", c.MaxDepth)
	}
	return nil
}

// Query is a viewport request: the geographic box the client wants to see
// and the pixel dimensions it will be rendered into.
//
// Height is accepted for wire compatibility but does not influence tile
// selection; resolution is driven entirely by longitude distance per pixel.
type Query struct {
	ULLon, ULLat float64
	LRLon, LRLat float64
	Width        float64
	Height       float64
}

// LonDPP returns the longitude distance covered by one pixel of the
// requested viewport.
func (q Query) LonDPP() float64 {
	return (q.LRLon - q.ULLon) / q.Width
}

// Result is the answer to a raster query.
//
// On failure Success is false and every other field holds its zero value.
// The field tags match the wire contract consumed by map front ends.
type Result struct {
	// Grid holds tile identifiers row by row; row 0 is the northernmost.
	Grid [][]string `json:"render_grid"`

	// ULLon..LRLat are the exact geographic extent of the returned grid,
	// which may exceed the query box on any side.
	ULLon float64 `json:"raster_ul_lon"`
	ULLat float64 `json:"raster_ul_lat"`
	LRLon float64 `json:"raster_lr_lon"`
	LRLat float64 `json:"raster_lr_lat"`

	// Depth is the zoom level of every tile in Grid.
	Depth int `json:"depth"`

	// Success reports whether the query box was valid and intersects the
	// coverage.
	Success bool `json:"query_success"`
}

// Bound returns the grid extent as an orb bound. Only meaningful when
// Success is true.
func (r Result) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.ULLon, r.LRLat},
		Max: orb.Point{r.LRLon, r.ULLat},
	}
}

// Rasterer selects tiles from one coverage. It is stateless apart from its
// configuration and safe for concurrent use.
type Rasterer struct {
	cov Coverage
}

// New returns a Rasterer for the given coverage.
func New(cov Coverage) (*Rasterer, error) {
	if err := cov.validate(); err != nil {
		return nil, err
	}
	return &Rasterer{cov: cov}, nil
}

// Coverage returns the coverage the Rasterer was built with.
func (r *Rasterer) Coverage() Coverage { return r.cov }

// Raster selects the grid of tiles covering the query box at the coarsest
// depth that still meets the viewport's resolution requirement.
//
// The query fails (Success=false, zero fields) if the box lies entirely
// outside the coverage or is geometrically inverted. A box partially
// overlapping the coverage succeeds; the grid is clipped to the coverage
// and the returned extent may therefore cover less than the query asked
// for. Raster never returns an error and never panics.
func (r *Rasterer) Raster(q Query) Result {
	cov := r.cov
	if q.ULLon > cov.LRLon || q.LRLon < cov.ULLon ||
		q.LRLat > cov.ULLat || q.ULLat < cov.LRLat ||
		q.ULLon > q.LRLon || q.LRLat > q.ULLat {
		return Result{}
	}

	depth := r.depthFor(q.LonDPP())
	n := 1 << depth
	lonStep := cov.lonExtent() / float64(n)
	latStep := cov.latExtent() / float64(n)

	// Left and upper indices step outward from the upper-left root corner;
	// right and lower step from the lower-right corner and are mirrored
	// back into grid coordinates.
	left := indexAscending(n, q.ULLon, cov.ULLon, lonStep)
	upper := indexDescending(n, q.ULLat, cov.ULLat, latStep)
	right := n - 1 - indexDescending(n, q.LRLon, cov.LRLon, lonStep)
	lower := n - 1 - indexAscending(n, q.LRLat, cov.LRLat, latStep)

	grid := make([][]string, lower-upper+1)
	for y := upper; y <= lower; y++ {
		row := make([]string, 0, right-left+1)
		for x := left; x <= right; x++ {
			row = append(row, TileID{Depth: depth, X: x, Y: y}.String())
		}
		grid[y-upper] = row
	}

	return Result{
		Grid:    grid,
		ULLon:   cov.ULLon + float64(left)*lonStep,
		ULLat:   cov.ULLat - float64(upper)*latStep,
		LRLon:   cov.ULLon + float64(right+1)*lonStep,
		LRLat:   cov.ULLat - float64(lower+1)*latStep,
		Depth:   depth,
		Success: true,
	}
}

// depthFor returns the first depth whose per-tile longitude extent beats
// the resolution bound, or MaxDepth if even the finest tiles are too
// coarse.
func (r *Rasterer) depthFor(lonDPP float64) int {
	bound := lonDPP * float64(r.cov.TileSize)
	extent := r.cov.lonExtent()
	for i := 0; i <= r.cov.MaxDepth; i++ {
		if extent/float64(uint64(1)<<i) < bound {
			return i
		}
	}
	return r.cov.MaxDepth
}

// indexAscending walks grid lines upward from start in units of step and
// returns the index of the last tile whose near boundary has not crossed
// bound, clamped to [0, n-1].
func indexAscending(n int, bound, start, step float64) int {
	for k := 0; k < n; k++ {
		if start+float64(k)*step > bound {
			if k == 0 {
				return 0
			}
			return k - 1
		}
	}
	return n - 1
}

// indexDescending is the mirror of indexAscending for axes walked downward
// from start.
func indexDescending(n int, bound, start, step float64) int {
	for k := 0; k < n; k++ {
		if start-float64(k)*step < bound {
			if k == 0 {
				return 0
			}
			return k - 1
		}
	}
	return n - 1
}
