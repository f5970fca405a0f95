// Package server exposes tile selection, map rendering and routing over
// HTTP.
package server

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb"

	"github.com/jasonppy/bear-map/internal/render"
	"github.com/jasonppy/bear-map/pkg/raster"
	"github.com/jasonppy/bear-map/pkg/routing"
)

// Server wires the tile rasterer and the street graph into HTTP handlers.
type Server struct {
	rasterer *raster.Rasterer
	graph    routing.Graph
	tiles    render.TileSource
}

// New returns a server. graph and tiles may be nil; the corresponding
// endpoints then report the feature as unavailable.
func New(rasterer *raster.Rasterer, graph routing.Graph, tiles render.TileSource) *Server {
	return &Server{
		rasterer: rasterer,
		graph:    graph,
		tiles:    tiles,
	}
}

// Setup registers all routes on engine.
func (s *Server) Setup(engine *gin.Engine) {
	engine.Use(RequestID())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	{
		api.GET("/raster", s.handleRaster)
		api.GET("/raster.png", s.handleRasterImage)
		api.GET("/route", s.handleRoute)
	}
}

// handleRaster answers GET /api/raster. Malformed parameters are a 400;
// a well-formed query that misses the coverage is a 200 whose body
// reports query_success false.
func (s *Server) handleRaster(c *gin.Context) {
	q, err := parseRasterQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.rasterer.Raster(q))
}

// handleRasterImage answers GET /api/raster.png with the stitched image
// for the selected tile grid.
func (s *Server) handleRasterImage(c *gin.Context) {
	if s.tiles == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tile rendering is not configured"})
		return
	}
	q, err := parseRasterQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := s.rasterer.Raster(q)
	if !res.Success {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query box does not intersect the map"})
		return
	}

	img, err := render.Compose(res, s.tiles, s.rasterer.Coverage().TileSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// routeDirection is one turn-by-turn instruction on the wire.
type routeDirection struct {
	Turn          string  `json:"turn"`
	Way           string  `json:"way"`
	DistanceMiles float64 `json:"distance_miles"`
	Text          string  `json:"text"`
}

// handleRoute answers GET /api/route. Malformed parameters are a 400;
// an unreachable destination is a 200 whose body reports route_success
// false.
func (s *Server) handleRoute(c *gin.Context) {
	if s.graph == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "routing is not configured"})
		return
	}
	start, end, err := parseRouteQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := routing.ShortestPath(s.graph, start, end)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"route_success": false,
			"error":         err.Error(),
		})
		return
	}

	dirs := routing.Directions(s.graph, route)
	out := make([]routeDirection, len(dirs))
	for i, d := range dirs {
		out[i] = routeDirection{
			Turn:          d.Turn.String(),
			Way:           d.Way,
			DistanceMiles: d.Distance,
			Text:          d.String(),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"route_success":  true,
		"path":           route,
		"distance_miles": routing.PathDistance(s.graph, route),
		"directions":     out,
	})
}

// parseRasterQuery reads the six viewport parameters of a raster request.
func parseRasterQuery(c *gin.Context) (raster.Query, error) {
	var q raster.Query
	fields := []struct {
		name string
		dst  *float64
	}{
		{"ullon", &q.ULLon},
		{"ullat", &q.ULLat},
		{"lrlon", &q.LRLon},
		{"lrlat", &q.LRLat},
		{"w", &q.Width},
		{"h", &q.Height},
	}
	for _, f := range fields {
		v, err := queryFloat(c, f.name)
		if err != nil {
			return raster.Query{}, err
		}
		*f.dst = v
	}
	return q, nil
}

// parseRouteQuery reads the start and end coordinates of a route request.
func parseRouteQuery(c *gin.Context) (start, end orb.Point, err error) {
	fields := []struct {
		name string
		dst  *float64
	}{
		{"start_lon", &start[0]},
		{"start_lat", &start[1]},
		{"end_lon", &end[0]},
		{"end_lat", &end[1]},
	}
	for _, f := range fields {
		v, err := queryFloat(c, f.name)
		if err != nil {
			return orb.Point{}, orb.Point{}, err
		}
		*f.dst = v
	}
	return start, end, nil
}

func queryFloat(c *gin.Context, name string) (float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return 0, fmt.Errorf("missing parameter %q", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %q is not a number", name)
	}
	return v, nil
}
