package render

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/jasonppy/bear-map/pkg/raster"
)

// stubSource serves solid-color tiles tinted by tile coordinates and
// records how often each tile was fetched.
type stubSource struct {
	size int
	err  error

	mu    sync.Mutex
	calls map[string]int
}

func newStubSource(size int) *stubSource {
	return &stubSource{size: size, calls: make(map[string]int)}
}

func (s *stubSource) Tile(id raster.TileID) (image.Image, error) {
	s.mu.Lock()
	s.calls[id.String()]++
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	img := image.NewRGBA(image.Rect(0, 0, s.size, s.size))
	tint := color.RGBA{R: uint8(id.X), G: uint8(id.Y), B: uint8(id.Depth), A: 255}
	for y := 0; y < s.size; y++ {
		for x := 0; x < s.size; x++ {
			img.SetRGBA(x, y, tint)
		}
	}
	return img, nil
}

func (s *stubSource) fetches(id raster.TileID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[id.String()]
}

func testResult() raster.Result {
	return raster.Result{
		Grid: [][]string{
			{"d2_x1_y1", "d2_x2_y1"},
			{"d2_x1_y2", "d2_x2_y2"},
		},
		Depth:   2,
		Success: true,
	}
}

func TestComposePlacesTiles(t *testing.T) {
	src := newStubSource(8)
	img, err := Compose(testResult(), src, 8)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	canvas, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("Compose returned %T, want *image.RGBA", img)
	}
	if got, want := canvas.Bounds(), image.Rect(0, 0, 16, 16); got != want {
		t.Fatalf("canvas bounds = %v, want %v", got, want)
	}

	// Each quadrant carries the tint of the tile placed there.
	probes := []struct {
		x, y int
		want color.RGBA
	}{
		{4, 4, color.RGBA{R: 1, G: 1, B: 2, A: 255}},
		{12, 4, color.RGBA{R: 2, G: 1, B: 2, A: 255}},
		{4, 12, color.RGBA{R: 1, G: 2, B: 2, A: 255}},
		{12, 12, color.RGBA{R: 2, G: 2, B: 2, A: 255}},
	}
	for _, p := range probes {
		if got := canvas.RGBAAt(p.x, p.y); got != p.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", p.x, p.y, got, p.want)
		}
	}

	for _, row := range testResult().Grid {
		for _, s := range row {
			id, err := raster.ParseTileID(s)
			if err != nil {
				t.Fatalf("ParseTileID(%q): %v", s, err)
			}
			if got := src.fetches(id); got != 1 {
				t.Errorf("tile %s fetched %d times, want 1", s, got)
			}
		}
	}
}

func TestComposeRejectsFailedQuery(t *testing.T) {
	res := raster.Result{}
	if _, err := Compose(res, newStubSource(8), 8); !errors.Is(err, ErrFailedQuery) {
		t.Fatalf("Compose on failed query = %v, want ErrFailedQuery", err)
	}
}

func TestComposePropagatesSourceError(t *testing.T) {
	src := newStubSource(8)
	src.err = errors.New("disk on fire")

	_, err := Compose(testResult(), src, 8)
	if !errors.Is(err, src.err) {
		t.Fatalf("Compose = %v, want wrapped source error", err)
	}
}

func TestComposeRejectsBadGrids(t *testing.T) {
	tests := []struct {
		name string
		grid [][]string
	}{
		{"empty", nil},
		{"empty row", [][]string{{}}},
		{"ragged", [][]string{{"d1_x0_y0", "d1_x1_y0"}, {"d1_x0_y1"}}},
		{"malformed id", [][]string{{"tile7.png"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := raster.Result{Grid: tt.grid, Success: true}
			if _, err := Compose(res, newStubSource(8), 8); err == nil {
				t.Fatal("Compose accepted a bad grid")
			}
		})
	}
}

func TestComposeRejectsBadTileSize(t *testing.T) {
	if _, err := Compose(testResult(), newStubSource(8), 0); err == nil {
		t.Fatal("Compose accepted tile size 0")
	}
}
