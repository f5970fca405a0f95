package main

import (
	"fmt"
	"log"

	"github.com/jasonppy/bear-map/pkg/raster"
)

func main() {
	// Build the rasterer for the standard Berkeley coverage
	r, err := raster.New(raster.DefaultCoverage())
	if err != nil {
		log.Fatal(err)
	}

	// Viewport over downtown Berkeley, 892 pixels wide
	res := r.Raster(raster.Query{
		ULLon: -122.2412, ULLat: 37.8758,
		LRLon: -122.2262, LRLat: 37.8656,
		Width: 892, Height: 875,
	})
	if !res.Success {
		log.Fatal("query box does not intersect the coverage")
	}

	fmt.Printf("Depth: %d\n", res.Depth)
	fmt.Printf("Grid: %dx%d tiles\n", len(res.Grid[0]), len(res.Grid))
	fmt.Printf("Extent: [%.6f,%.6f] to [%.6f,%.6f]\n",
		res.ULLon, res.ULLat, res.LRLon, res.LRLat)

	for _, row := range res.Grid {
		fmt.Println(row)
	}
}
