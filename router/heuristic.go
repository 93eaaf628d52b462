package router

import (
	"math"

	"github.com/losangeles1156/lutagu-mvp-sub001/topology"
	"github.com/losangeles1156/lutagu-mvp-sub001/utils"
)

// heuristic estimates remaining travel time as the great-circle distance to
// the nearest destination times a minutes-per-km factor no real service beats.
type heuristic struct {
	g     *Graph
	dests []topology.Coordinate
	perKm float64
	memo  map[topology.StationID]float64
}

// newHeuristic is not safe for concurrent use; each search owns one.
func newHeuristic(g *Graph, destinations []topology.StationID, perKm float64) *heuristic {
	dests, _ := destinationCoords(g, destinations)
	return &heuristic{g: g, dests: dests, perKm: perKm, memo: map[topology.StationID]float64{}}
}

// destinationCoords returns the coordinates of every destination. If any
// destination has none, it returns nil and false: a node close to that
// destination could look far from the others, and the estimate would no
// longer be a lower bound.
func destinationCoords(g *Graph, destinations []topology.StationID) ([]topology.Coordinate, bool) {
	out := make([]topology.Coordinate, 0, len(destinations))
	for _, d := range destinations {
		c, ok := g.coordinate(d)
		if !ok {
			return nil, false
		}
		out = append(out, c)
	}
	return out, len(out) > 0
}

// estimate returns 0 when coordinates are unknown for the station or for any
// destination, which degrades the search to Dijkstra.
func (h *heuristic) estimate(id topology.StationID) float64 {
	if len(h.dests) == 0 || h.perKm <= 0 {
		return 0
	}
	if v, ok := h.memo[id]; ok {
		return v
	}
	v := 0.0
	if c, ok := h.g.coordinate(id); ok {
		v = minDistanceKM(c, h.dests) * h.perKm
	}
	h.memo[id] = v
	return v
}

func minDistanceKM(c topology.Coordinate, targets []topology.Coordinate) float64 {
	best := math.Inf(1)
	for _, t := range targets {
		if d := utils.HaversineKM(c.Lat, c.Lon, t.Lat, t.Lon); d < best {
			best = d
		}
	}
	return best
}

// tripDistanceKM is the shortest distance between any origin and any
// destination. ok is false when any endpoint lacks coordinates.
func tripDistanceKM(g *Graph, origins, destinations []topology.StationID) (float64, bool) {
	dests, ok := destinationCoords(g, destinations)
	if !ok {
		return 0, false
	}
	best, found := math.Inf(1), false
	for _, o := range origins {
		c, ok := g.coordinate(o)
		if !ok {
			return 0, false
		}
		if d := minDistanceKM(c, dests); d < best {
			best, found = d, true
		}
	}
	return best, found
}
