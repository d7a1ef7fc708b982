package routing

import (
	"context"
	"math"

	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/config"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/feedindex"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/geo"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/graph"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/util"
)

// validCoordinate rejects NaN and out-of-Earth-range inputs. The core
// never errors on this; it degrades to a not-found result.
func validCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Search runs a multi-source / multi-target A* over graph for modeMask,
// returning a RouteResult labelled label. ctx is checked cooperatively at
// the top of each pop; a cancelled ctx yields an in-band not-found
// result, never an error.
func Search(ctx context.Context, g *graph.StopGraph, fi *feedindex.FeedIndex, cfg config.RoutingConfig, originLat, originLon, destLat, destLon float64, modeMask pkg.Mode, label string) RouteResult {
	if !validCoordinate(originLat, originLon) || !validCoordinate(destLat, destLon) {
		return noPath(label)
	}

	directDist := geo.Haversine(originLat, originLon, destLat, destLon)
	directWalkEligible := directDist <= cfg.DirectWalkFallbackM
	directWalkCost := directDist / cfg.WalkSpeedMPS

	bestTotal := math.Inf(1)
	winnerIsDirectWalk := false
	if directWalkEligible {
		bestTotal = directWalkCost
		winnerIsDirectWalk = true
	}

	if g.NumStops() == 0 {
		if winnerIsDirectWalk {
			return RouteResult{Type: label, TotalDuration: bestTotal, Segments: directWalkSegments(originLat, originLon, destLat, destLon)}
		}
		return noPath(label)
	}

	var boarding, alighting []graph.StopDistance
	for _, r := range cfg.BoardingRadiiM {
		boarding = g.RadiusQueryMode(originLat, originLon, r, modeMask)
		alighting = g.RadiusQueryMode(destLat, destLon, r, modeMask)
		if len(boarding) > 0 && len(alighting) > 0 {
			break
		}
	}

	if len(boarding) == 0 || len(alighting) == 0 {
		if winnerIsDirectWalk {
			return RouteResult{Type: label, TotalDuration: bestTotal, Segments: directWalkSegments(originLat, originLon, destLat, destLon)}
		}
		return noPath(label)
	}

	n := g.NumStops()
	gScore := make([]float64, n)
	parent := make([]graph.NodeID, n)
	arrivalTag := make([]string, n)
	for i := range gScore {
		gScore[i] = math.Inf(1)
		parent[i] = graph.NoNode
	}

	alightWalk := make(map[graph.NodeID]float64, len(alighting))
	for _, a := range alighting {
		alightWalk[a.Node] = a.Distance
	}

	heuristic := func(u graph.NodeID) float64 {
		s := g.Stop(u)
		return geo.Haversine(s.Lat, s.Lon, destLat, destLon) / cfg.MaxSpeedMPS
	}

	heap := newMinHeap()
	bestEnd := graph.NoNode
	bestEndSet := false

	seedBestEnd := func(v graph.NodeID) {
		walkD, ok := alightWalk[v]
		if !ok {
			return
		}
		total := gScore[v] + walkD/cfg.WalkSpeedMPS
		if total < bestTotal {
			bestTotal = total
			bestEnd = v
			bestEndSet = true
			winnerIsDirectWalk = false
		}
	}

	for _, b := range boarding {
		g0 := b.Distance / cfg.WalkSpeedMPS
		if g0 < gScore[b.Node] {
			gScore[b.Node] = g0
			arrivalTag[b.Node] = pkg.WalkTag
			heap.push(frontierEntry{node: b.Node, gScore: g0, fScore: g0 + heuristic(b.Node), arrivalTrip: pkg.WalkTag})
			seedBestEnd(b.Node)
		}
	}

	for !heap.isEmpty() {
		if util.StopConcurrentOperation(ctx) {
			return noPath(label)
		}
		entry, _ := heap.pop()
		u := entry.node
		if entry.gScore > gScore[u] {
			continue
		}
		if entry.gScore >= bestTotal {
			continue
		}

		for _, edge := range g.Stop(u).Edges {
			if modeMask&edge.Mode == 0 {
				continue
			}
			cost := edge.Weight
			if entry.arrivalTrip != "" && entry.arrivalTrip != pkg.WalkTag && edge.TripTag != entry.arrivalTrip && edge.TripTag != pkg.WalkTag {
				cost += cfg.TransferPenaltySec
			}
			g2 := entry.gScore + cost
			if g2 < gScore[edge.To] {
				gScore[edge.To] = g2
				parent[edge.To] = u
				arrivalTag[edge.To] = edge.TripTag

				if walkD, ok := alightWalk[edge.To]; ok {
					total := g2 + walkD/cfg.WalkSpeedMPS
					if total < bestTotal {
						bestTotal = total
						bestEnd = edge.To
						bestEndSet = true
						winnerIsDirectWalk = false
					}
				}

				heap.push(frontierEntry{node: edge.To, gScore: g2, fScore: g2 + heuristic(edge.To), arrivalTrip: edge.TripTag})
			}
		}
	}

	if math.IsInf(bestTotal, 1) {
		return noPath(label)
	}
	if winnerIsDirectWalk || !bestEndSet {
		return RouteResult{Type: label, TotalDuration: bestTotal, Segments: directWalkSegments(originLat, originLon, destLat, destLon)}
	}

	segments := assemble(g, fi, parent, arrivalTag, bestEnd, originLat, originLon, destLat, destLon)
	return RouteResult{Type: label, TotalDuration: bestTotal, Segments: segments}
}
