// Package routing implements the multi-source / multi-target A* search
// over a pkg/graph.StopGraph and the reconstruction of its raw node path
// into user-visible segments.
package routing

import "math"

// RouteSegment is one leg of a RouteResult: a walk or an in-vehicle run
// on a single trip.
type RouteSegment struct {
	StartLat, StartLon float64
	StartName          string
	EndLat, EndLon     float64
	EndName            string
	Method             string // "walking" | "bus" | "metro" | "microbus"
	NumStops           int    // 0 for walking, else intermediate stops traversed
}

// RouteResult is a full point-to-point journey: a type label, a total
// duration (may be +Inf meaning "no journey"), and its ordered segments.
type RouteResult struct {
	Type          string
	TotalDuration float64
	Segments      []RouteSegment
}

// Found reports whether this result represents an actual journey.
// Failures are in-band via a false/+Inf pair, never a Go error.
func (r RouteResult) Found() bool {
	return !math.IsInf(r.TotalDuration, 1)
}

// noPath returns the canonical "no journey" result for the given label.
func noPath(label string) RouteResult {
	return RouteResult{Type: label, TotalDuration: math.Inf(1)}
}
