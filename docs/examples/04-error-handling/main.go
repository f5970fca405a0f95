package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/paulmach/orb"

	"github.com/jasonppy/bear-map/pkg/routing"
	"github.com/jasonppy/bear-map/pkg/streetmap"
)

// brokenExtract references node 99 without declaring it.
const brokenExtract = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="37.87" lon="-122.27"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="99"/>
    <tag k="highway" v="residential"/>
  </way>
</osm>`

// islandExtract holds two roads with no connection between them.
const islandExtract = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6">
  <node id="1" lat="37.8700" lon="-122.2700"/>
  <node id="2" lat="37.8710" lon="-122.2700"/>
  <node id="3" lat="37.8700" lon="-122.2600"/>
  <node id="4" lat="37.8710" lon="-122.2600"/>
  <way id="10">
    <nd ref="1"/>
    <nd ref="2"/>
    <tag k="highway" v="residential"/>
  </way>
  <way id="11">
    <nd ref="3"/>
    <nd ref="4"/>
    <tag k="highway" v="residential"/>
  </way>
</osm>`

func main() {
	// A way referencing an undeclared node is rejected with a typed error
	_, err := streetmap.Decode(strings.NewReader(brokenExtract), streetmap.DefaultLoadOptions())
	var dangling *streetmap.DanglingRefError
	if errors.As(err, &dangling) {
		log.Printf("Expected error: way %d references missing node %d",
			dangling.WayID, dangling.NodeID)
	}

	// Routing between disconnected components reports ErrNoRoute
	graph, err := streetmap.Decode(strings.NewReader(islandExtract), streetmap.DefaultLoadOptions())
	if err != nil {
		log.Fatal(err)
	}
	_, err = routing.ShortestPath(graph,
		orb.Point{-122.2700, 37.8700}, orb.Point{-122.2600, 37.8710})
	if errors.Is(err, routing.ErrNoRoute) {
		log.Printf("Expected error: %v", err)
	}

	fmt.Println("Error handling walkthrough complete")
}
