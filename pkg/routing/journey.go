package routing

import (
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/feedindex"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/graph"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/util"
)

// originLabel and destLabel name the query endpoints in emitted segments,
// mirroring the reference source's literal "Origin"/"Destination" stop
// names for the caller-supplied coordinates.
const (
	originLabel = "Origin"
	destLabel   = "Destination"
)

// methodForTag resolves a trip_tag to the RouteSegment.Method token: the
// walking sentinel maps directly to "walking", everything else resolves
// through FeedIndex and defaults to bus on an unresolved trip.
func methodForTag(fi *feedindex.FeedIndex, tag string) string {
	if tag == pkg.WalkTag {
		return pkg.WALK.Label()
	}
	mode := fi.ModeOfTrip(tag)
	if mode == pkg.NONE {
		mode = pkg.BUS
	}
	return mode.Label()
}

// assemble turns a parent/arrival-tag path ending at `end` into the
// ordered segment list: a walk from the query origin to the first
// boarded node, one segment per maximal run of consecutive nodes sharing
// an arrival tag, and a walk from the last node to the query destination.
func assemble(g *graph.StopGraph, fi *feedindex.FeedIndex, parent []graph.NodeID, arrivalTag []string, end graph.NodeID, originLat, originLon, destLat, destLon float64) []RouteSegment {
	backward := make([]graph.NodeID, 0, 8)
	for cur := end; cur != graph.NoNode; cur = parent[cur] {
		backward = append(backward, cur)
	}
	path := util.ReverseG(backward)

	v0 := g.Stop(path[0])
	segments := make([]RouteSegment, 0, len(path)+1)
	segments = append(segments, RouteSegment{
		StartLat: originLat, StartLon: originLon, StartName: originLabel,
		EndLat: v0.Lat, EndLon: v0.Lon, EndName: v0.Name,
		Method: pkg.WALK.Label(), NumStops: 0,
	})

	startIdx := 0
	for i := 1; i < len(path); i++ {
		currentTag := arrivalTag[path[i]]
		isLast := i == len(path)-1
		nextDifferent := !isLast && arrivalTag[path[i+1]] != currentTag
		if isLast || nextDifferent {
			u := g.Stop(path[startIdx])
			v := g.Stop(path[i])
			method := methodForTag(fi, currentTag)
			numStops := i - startIdx
			if method == pkg.WALK.Label() {
				numStops = 0
			}
			segments = append(segments, RouteSegment{
				StartLat: u.Lat, StartLon: u.Lon, StartName: u.Name,
				EndLat: v.Lat, EndLon: v.Lon, EndName: v.Name,
				Method: method, NumStops: numStops,
			})
			startIdx = i
		}
	}

	vk := g.Stop(path[len(path)-1])
	segments = append(segments, RouteSegment{
		StartLat: vk.Lat, StartLon: vk.Lon, StartName: vk.Name,
		EndLat: destLat, EndLon: destLon, EndName: destLabel,
		Method: pkg.WALK.Label(), NumStops: 0,
	})

	return segments
}

// directWalkSegments builds the single-segment result for the direct
// walking shortcut, including the origin==destination degenerate case.
func directWalkSegments(originLat, originLon, destLat, destLon float64) []RouteSegment {
	return []RouteSegment{{
		StartLat: originLat, StartLon: originLon, StartName: originLabel,
		EndLat: destLat, EndLon: destLon, EndName: destLabel,
		Method: pkg.WALK.Label(), NumStops: 0,
	}}
}
