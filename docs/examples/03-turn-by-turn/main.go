package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"github.com/jasonppy/bear-map/pkg/routing"
	"github.com/jasonppy/bear-map/pkg/streetmap"
)

func main() {
	osmPath := flag.String("osm", "berkeley.osm.gz", "Path to OSM extract")
	flag.Parse()

	graph, err := streetmap.Load(*osmPath, streetmap.DefaultLoadOptions())
	if err != nil {
		log.Fatal(err)
	}

	start := orb.Point{-122.2573, 37.8708}
	end := orb.Point{-122.2895, 37.8686}

	route, err := routing.ShortestPath(graph, start, end)
	if err != nil {
		log.Fatal(err)
	}

	// Fold the node path into turn-by-turn instructions
	for i, d := range routing.Directions(graph, route) {
		fmt.Printf("%d. %s\n", i+1, d)
	}
}
