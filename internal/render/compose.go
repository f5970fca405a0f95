// Package render assembles the tile grids selected by raster queries into
// single images for serving to map clients.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"runtime"
	"sync"

	"github.com/jasonppy/bear-map/pkg/raster"
)

// ErrFailedQuery is returned when asked to render a result whose query
// did not succeed.
var ErrFailedQuery = errors.New("render: raster query was not successful")

// Compose stitches the tiles of a successful raster result into one
// image. Tiles are fetched concurrently from src; tileSize is the pixel
// edge length of one tile. The first fetch or decode error aborts the
// composition.
func Compose(res raster.Result, src TileSource, tileSize int) (image.Image, error) {
	if !res.Success {
		return nil, ErrFailedQuery
	}
	if len(res.Grid) == 0 || len(res.Grid[0]) == 0 {
		return nil, fmt.Errorf("render: empty render grid")
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("render: tile size must be positive, got %d", tileSize)
	}

	rows := len(res.Grid)
	cols := len(res.Grid[0])

	type cell struct {
		row, col int
		id       raster.TileID
	}
	cells := make([]cell, 0, rows*cols)
	for y, row := range res.Grid {
		if len(row) != cols {
			return nil, fmt.Errorf("render: ragged render grid")
		}
		for x, s := range row {
			id, err := raster.ParseTileID(s)
			if err != nil {
				return nil, err
			}
			cells = append(cells, cell{row: y, col: x, id: id})
		}
	}

	workers := runtime.NumCPU()
	if workers > len(cells) {
		workers = len(cells)
	}

	type tileResult struct {
		index int
		img   image.Image
		err   error
	}

	jobs := make(chan int, len(cells))
	results := make(chan tileResult, len(cells))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range jobs {
				img, err := src.Tile(cells[index].id)
				results <- tileResult{index: index, img: img, err: err}
			}
		}()
	}

	for i := range cells {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	canvas := image.NewRGBA(image.Rect(0, 0, cols*tileSize, rows*tileSize))
	var firstErr error
	for result := range results {
		if result.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("render: tile %s: %w", cells[result.index].id, result.err)
			}
			continue
		}
		if firstErr != nil {
			continue
		}
		c := cells[result.index]
		target := image.Rect(c.col*tileSize, c.row*tileSize, (c.col+1)*tileSize, (c.row+1)*tileSize)
		draw.Draw(canvas, target, result.img, result.img.Bounds().Min, draw.Src)
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return canvas, nil
}
