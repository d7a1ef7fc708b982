// Package graph holds StopGraph: the directed, mode-tagged graph of
// transit stops GraphBuilder populates and Router reads. Once built the
// graph and its spatial grid are immutable and safe for concurrent
// readers.
package graph

import (
	"math"

	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/geo"
)

// NodeID is a dense, stable index into StopGraph's stop slice, assigned
// in insertion order and valid for the life of the graph.
type NodeID int

// NoNode is the sentinel "no such node" value returned by Nearest on an
// empty graph.
const NoNode NodeID = -1

// Edge is a directed, mode-tagged arc out of its owning Stop. Edges are
// never deduplicated: distinct trips between the same pair of stops each
// get their own Edge.
type Edge struct {
	To      NodeID
	Weight  float64
	TripTag string
	Mode    pkg.Mode
}

// Stop is a graph node: a stable identity plus its outgoing adjacency
// list. Modes is the union of every transit mode known to serve this
// stop, inferred at build time from the edges touching it rather than
// relying on brittle external-id prefix matching.
type Stop struct {
	ExternalID string
	Name       string
	Lat        float64
	Lon        float64
	Modes      pkg.Mode
	Edges      []Edge
}

// StopGraph owns every Stop and Edge for the life of the graph, plus the
// spatial grid used for radius queries. Construct with New, populate via
// AddStop/AddEdge (GraphBuilder's job), then treat as read-only.
type StopGraph struct {
	stops      []Stop
	idByExtern map[string]NodeID
	grid       *spatialGrid
}

// New returns an empty StopGraph. cellSizeM sizes the spatial grid's
// cells; pass the same MaxWalkDistanceM used for walking-transfer
// construction so a 3x3 cell neighborhood exactly encloses any query
// disk of that radius.
func New(cellSizeM float64) *StopGraph {
	return &StopGraph{
		idByExtern: make(map[string]NodeID),
		grid:       newSpatialGrid(cellSizeM),
	}
}

// AddStop inserts a stop, or returns the existing NodeID if externalID
// was already added (idempotent on externalID).
func (g *StopGraph) AddStop(externalID, name string, lat, lon float64) NodeID {
	if id, ok := g.idByExtern[externalID]; ok {
		return id
	}
	id := NodeID(len(g.stops))
	g.stops = append(g.stops, Stop{
		ExternalID: externalID,
		Name:       name,
		Lat:        lat,
		Lon:        lon,
	})
	g.idByExtern[externalID] = id
	g.grid.insert(id, lat, lon)
	return id
}

// AddEdge appends a directed edge from->to. Transit edges (mode != WALK)
// additionally mark both endpoints as serving that mode, building up the
// inferred Stop.Modes set; walking edges never affect Modes.
func (g *StopGraph) AddEdge(from, to NodeID, weight float64, tripTag string, mode pkg.Mode) {
	g.stops[from].Edges = append(g.stops[from].Edges, Edge{To: to, Weight: weight, TripTag: tripTag, Mode: mode})
	if mode != pkg.WALK {
		g.stops[from].Modes |= mode
		g.stops[to].Modes |= mode
	}
}

// NumStops returns the number of stops in the graph.
func (g *StopGraph) NumStops() int {
	return len(g.stops)
}

// Stop returns the stop stored at id. Callers must only pass ids
// returned by AddStop or produced by a search over this graph.
func (g *StopGraph) Stop(id NodeID) *Stop {
	return &g.stops[id]
}

// LookupByExternalID resolves a feed-external stop id back to a NodeID.
func (g *StopGraph) LookupByExternalID(externalID string) (NodeID, bool) {
	id, ok := g.idByExtern[externalID]
	return id, ok
}

// Nearest returns the closest stop to (lat, lon) by haversine distance,
// or NoNode if the graph has no stops.
func (g *StopGraph) Nearest(lat, lon float64) NodeID {
	best := NoNode
	bestDist := math.Inf(1)
	for i := range g.stops {
		d := geo.Haversine(lat, lon, g.stops[i].Lat, g.stops[i].Lon)
		if d < bestDist {
			bestDist = d
			best = NodeID(i)
		}
	}
	return best
}

// modeFallbackRadiusM is the distance within which a mode-restricted
// NearestWithMode trusts its restricted candidate before falling back to
// the unrestricted nearest stop. The fallback is explicit and bounded,
// never silent.
const modeFallbackRadiusM = 5000.0

// NearestWithMode restricts Nearest to stops eligible for modeMask (see
// eligible). If the nearest eligible stop is farther than 5 000 m, or
// none exists, it falls back to the unrestricted Nearest result.
func (g *StopGraph) NearestWithMode(lat, lon float64, modeMask pkg.Mode) NodeID {
	best := NoNode
	bestDist := math.Inf(1)
	for i := range g.stops {
		if !eligible(&g.stops[i], modeMask) {
			continue
		}
		d := geo.Haversine(lat, lon, g.stops[i].Lat, g.stops[i].Lon)
		if d < bestDist {
			bestDist = d
			best = NodeID(i)
		}
	}
	if best == NoNode || bestDist > modeFallbackRadiusM {
		return g.Nearest(lat, lon)
	}
	return best
}

// StopDistance pairs a candidate NodeID with its exact haversine distance
// from the query point, as returned by RadiusQuery.
type StopDistance struct {
	Node     NodeID
	Distance float64
}

// RadiusQuery returns the stops within r meters of (lat, lon), using the
// spatial grid to avoid scanning all stops: it sweeps the 3x3 cell
// neighborhood around the query point and exact-filters by haversine
// distance. The sweep does not grow with r, so for r larger than the
// grid's cell size, stops outside that neighborhood are not returned.
func (g *StopGraph) RadiusQuery(lat, lon, r float64) []StopDistance {
	var out []StopDistance
	for _, id := range g.grid.query(lat, lon, r) {
		d := geo.Haversine(lat, lon, g.stops[id].Lat, g.stops[id].Lon)
		if d <= r {
			out = append(out, StopDistance{Node: id, Distance: d})
		}
	}
	return out
}

// RadiusQueryMode is RadiusQuery post-filtered to stops eligible for
// modeMask (see eligible).
func (g *StopGraph) RadiusQueryMode(lat, lon, r float64, modeMask pkg.Mode) []StopDistance {
	all := g.RadiusQuery(lat, lon, r)
	out := all[:0]
	for _, sd := range all {
		if eligible(&g.stops[sd.Node], modeMask) {
			out = append(out, sd)
		}
	}
	return out
}

// eligible reports whether a stop may be used as a boarding or alighting
// point under modeMask: the mask's transit bits (ANY) must intersect the
// stop's inferred served modes. A mask with no transit bits (pure WALK)
// imposes no restriction.
func eligible(s *Stop, modeMask pkg.Mode) bool {
	transitMask := modeMask & pkg.ANY
	if transitMask == 0 {
		return true
	}
	return s.Modes&transitMask != 0
}
