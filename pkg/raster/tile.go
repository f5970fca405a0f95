package raster

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/paulmach/orb"
)

// TileID identifies one quadtree tile by zoom depth and grid position.
// X runs west to east, Y runs north to south, both in [0, 2^Depth - 1].
type TileID struct {
	Depth int
	X     int
	Y     int
}

// String renders the identifier in the canonical "d{depth}_x{x}_y{y}" form
// used in render grids and tile file names.
func (t TileID) String() string {
	return fmt.Sprintf("d%d_x%d_y%d", t.Depth, t.X, t.Y)
}

var tileIDPattern = regexp.MustCompile(`^d(\d+)_x(\d+)_y(\d+)$`)

// ParseTileID parses a canonical tile identifier. It rejects anything that
// is not exactly "d{depth}_x{x}_y{y}" with x and y inside the grid for the
// given depth.
func ParseTileID(s string) (TileID, error) {
	m := tileIDPattern.FindStringSubmatch(s)
	if m == nil {
		return TileID{}, fmt.Errorf("raster: malformed tile id %q", s)
	}
	depth, err := strconv.Atoi(m[1])
	if err != nil || depth > 30 {
		return TileID{}, fmt.Errorf("raster: tile id %q: bad depth", s)
	}
	x, err := strconv.Atoi(m[2])
	if err != nil {
		return TileID{}, fmt.Errorf("raster: tile id %q: bad x", s)
	}
	y, err := strconv.Atoi(m[3])
	if err != nil {
		return TileID{}, fmt.Errorf("raster: tile id %q: bad y", s)
	}
	n := 1 << depth
	if x >= n || y >= n {
		return TileID{}, fmt.Errorf("raster: tile id %q: position outside %dx%d grid", s, n, n)
	}
	return TileID{Depth: depth, X: x, Y: y}, nil
}

// Bound returns the geographic extent of the tile within the given
// coverage.
func (t TileID) Bound(cov Coverage) orb.Bound {
	n := 1 << t.Depth
	lonStep := cov.lonExtent() / float64(n)
	latStep := cov.latExtent() / float64(n)
	minLon := cov.ULLon + float64(t.X)*lonStep
	maxLat := cov.ULLat - float64(t.Y)*latStep
	return orb.Bound{
		Min: orb.Point{minLon, maxLat - latStep},
		Max: orb.Point{minLon + lonStep, maxLat},
	}
}
