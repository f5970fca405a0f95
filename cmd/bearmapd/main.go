// Command bearmapd serves tile selection, map rendering and routing for
// the Berkeley street map.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/jasonppy/bear-map/internal/render"
	"github.com/jasonppy/bear-map/internal/server"
	"github.com/jasonppy/bear-map/pkg/raster"
	"github.com/jasonppy/bear-map/pkg/streetmap"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	osmPath := flag.String("osm", "", "Path to the OSM extract (.osm or .osm.gz)")
	tileDir := flag.String("tiles", "", "Directory of pre-rendered map tiles (optional)")
	cacheMB := flag.Int64("cache-mb", 64, "Tile cache budget in megabytes, 0 caches without bound")
	flag.Parse()

	if *osmPath == "" {
		log.Fatal("Please provide an -osm extract")
	}

	rasterer, err := raster.New(raster.DefaultCoverage())
	if err != nil {
		log.Fatal(err)
	}

	graph, err := streetmap.Load(*osmPath, streetmap.DefaultLoadOptions())
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %s: %d nodes, %d ways", *osmPath, graph.NodeCount(), graph.WayCount())

	var tiles render.TileSource
	if *tileDir != "" {
		tiles = render.NewCachedSource(render.NewDirSource(*tileDir), *cacheMB<<20)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), server.RequestLogger(log.New(os.Stdout, "", log.LstdFlags)))

	srv := server.New(rasterer, graph, tiles)
	srv.Setup(engine)

	log.Printf("bearmapd listening on %s", *addr)
	if err := engine.Run(*addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
