package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/jasonppy/bear-map/pkg/raster"
)

// TileSource supplies the rendered image for a single map tile.
type TileSource interface {
	Tile(id raster.TileID) (image.Image, error)
}

// DirSource serves tiles from a directory of pre-rendered images laid
// out as <dir>/d{depth}_x{x}_y{y}.png.
type DirSource struct {
	dir string
}

// NewDirSource returns a source reading tiles under dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir}
}

// Tile opens and decodes the image file backing id.
func (s *DirSource) Tile(id raster.TileID) (image.Image, error) {
	path := filepath.Join(s.dir, id.String()+".png")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("render: open tile: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("render: decode tile %s: %w", path, err)
	}
	return img, nil
}
