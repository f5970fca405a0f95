package main

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"github.com/jasonppy/bear-map/pkg/routing"
	"github.com/jasonppy/bear-map/pkg/streetmap"
)

func main() {
	// Load the street graph from an OSM extract
	graph, err := streetmap.Load("berkeley.osm.gz", streetmap.DefaultLoadOptions())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Graph: %d nodes, %d ways\n", graph.NodeCount(), graph.WayCount())

	// Route from the west side of campus toward the marina
	start := orb.Point{-122.2573, 37.8708}
	end := orb.Point{-122.2895, 37.8686}

	route, err := routing.ShortestPath(graph, start, end)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Route: %d nodes, %.3f miles\n",
		len(route), routing.PathDistance(graph, route))
	fmt.Printf("First node: %d, last node: %d\n", route[0], route[len(route)-1])
}
