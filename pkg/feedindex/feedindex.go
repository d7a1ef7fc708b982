// Package feedindex holds the two lookup dictionaries GraphBuilder and
// Router need to go from an opaque trip identifier to a Mode: pure data,
// immutable after construction, safe for concurrent reads.
package feedindex

import "github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg"

// FeedIndex maps route_id -> mode and trip_id -> route_id, built once from
// the parsed feed and never mutated afterwards.
type FeedIndex struct {
	routeMode map[string]pkg.Mode
	tripRoute map[string]string
}

// New returns an empty FeedIndex ready for AddRoute/AddTrip calls.
func New() *FeedIndex {
	return &FeedIndex{
		routeMode: make(map[string]pkg.Mode),
		tripRoute: make(map[string]string),
	}
}

// AddRoute records the mode serving routeID. Later calls for the same
// routeID overwrite the earlier mode.
func (f *FeedIndex) AddRoute(routeID string, mode pkg.Mode) {
	f.routeMode[routeID] = mode
}

// AddTrip records which route a trip belongs to.
func (f *FeedIndex) AddTrip(tripID, routeID string) {
	f.tripRoute[tripID] = routeID
}

// ModeOfTrip resolves a trip's mode via its route, returning pkg.NONE if
// either mapping is missing. No error: the caller defaults to BUS.
func (f *FeedIndex) ModeOfTrip(tripID string) pkg.Mode {
	routeID, ok := f.tripRoute[tripID]
	if !ok {
		return pkg.NONE
	}
	mode, ok := f.routeMode[routeID]
	if !ok {
		return pkg.NONE
	}
	return mode
}

// RouteOfTrip exposes the trip -> route mapping directly. GraphBuilder
// uses it to name the offending route_id when a trip's mode can't be
// resolved and is defaulted to bus.
func (f *FeedIndex) RouteOfTrip(tripID string) (string, bool) {
	routeID, ok := f.tripRoute[tripID]
	return routeID, ok
}

// ModeLabel produces the wire token for a mode.
func ModeLabel(m pkg.Mode) string {
	return m.Label()
}
