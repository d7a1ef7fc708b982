// Package present builds the wire-neutral output shape for a
// routing.RouteResult. It is a pure data transform, not a serializer:
// turning a RouteResultView into JSON or an RPC message is the caller's
// job.
package present

import (
	"fmt"

	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/config"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/geo"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/routing"
)

// Point is a named coordinate, the {lat, lon, name} shape used for
// every segment endpoint.
type Point struct {
	Lat  float64
	Lon  float64
	Name string
}

// SegmentView is one presented segment, carrying the per-segment
// distance/duration computed independently of the search's own
// accounting.
type SegmentView struct {
	Start           Point
	End             Point
	Method          string
	NumStops        int
	DistanceMeters  int
	DurationSeconds int
}

// RouteResultView is the presented output shape for one RouteResult.
type RouteResultView struct {
	Type                   string
	Found                  bool
	TotalDurationSeconds   int
	TotalDurationFormatted string
	TotalSegments          int
	Segments               []SegmentView
	TotalDistanceMeters    float64
}

// Build converts r into its presented view under cfg's mode speeds. A
// not-found result presents as Found=false with no segments and a zero
// distance. A found route always gets a genuine summed distance, never
// a stale zero.
func Build(r routing.RouteResult, cfg config.RoutingConfig) RouteResultView {
	view := RouteResultView{Type: r.Type, Found: r.Found()}
	if !view.Found {
		return view
	}

	view.TotalDurationSeconds = int(r.TotalDuration + 0.5)
	view.TotalDurationFormatted = formatDuration(view.TotalDurationSeconds)
	view.TotalSegments = len(r.Segments)

	view.Segments = make([]SegmentView, len(r.Segments))
	var totalDistance float64
	for i, seg := range r.Segments {
		distance := geo.Haversine(seg.StartLat, seg.StartLon, seg.EndLat, seg.EndLon)
		totalDistance += distance

		speed := cfg.ModeSpeed(modeForMethod(seg.Method))
		duration := 0.0
		if distance > 0 {
			duration = distance / speed
		}

		view.Segments[i] = SegmentView{
			Start:           Point{Lat: seg.StartLat, Lon: seg.StartLon, Name: seg.StartName},
			End:             Point{Lat: seg.EndLat, Lon: seg.EndLon, Name: seg.EndName},
			Method:          seg.Method,
			NumStops:        seg.NumStops,
			DistanceMeters:  int(distance + 0.5),
			DurationSeconds: int(duration + 0.5),
		}
	}
	view.TotalDistanceMeters = totalDistance

	return view
}

func formatDuration(totalSeconds int) string {
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%d min %d sec", minutes, seconds)
}

// modeForMethod reverses Mode.Label() for the four tokens RouteSegment
// ever carries, so cfg.ModeSpeed can be driven off the segment's
// already-resolved method string.
func modeForMethod(method string) pkg.Mode {
	switch method {
	case pkg.METRO.Label():
		return pkg.METRO
	case pkg.BUS.Label():
		return pkg.BUS
	case pkg.MICROBUS.Label():
		return pkg.MICROBUS
	default:
		return pkg.WALK
	}
}
