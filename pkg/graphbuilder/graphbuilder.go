// Package graphbuilder is the one-shot compiler from parsed schedule-feed
// tuples to a populated pkg/graph.StopGraph: transit edges from
// consecutive stops of each trip, then walking transfer edges between
// stops within MaxWalkDistanceM. GraphBuilder is single-threaded and
// fully populates the graph before the first query is served.
package graphbuilder

import (
	"sort"

	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/config"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/feedindex"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/geo"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/graph"
	"go.uber.org/zap"
)

// Route is the already-typed (route_id, agency_id, short_name, type)
// tuple a schedule feed provides. ShortName and Type are carried for
// callers that want them but are not consulted by the builder itself.
type Route struct {
	RouteID   string
	AgencyID  string
	ShortName string
	Type      int
}

// Trip is the already-typed (route_id, service_id, trip_id) tuple a
// schedule feed provides. ServiceID is carried but unused: calendar-day
// service selection is out of scope.
type Trip struct {
	RouteID   string
	ServiceID string
	TripID    string
}

// StopRecord is the already-typed (stop_id, stop_name, lat, lon) tuple a
// schedule feed provides. Dialect-specific column resolution is the
// parser's job, out of the core's scope.
type StopRecord struct {
	StopID string
	Name   string
	Lat    float64
	Lon    float64
}

// StopTime is the already-typed (trip_id, stop_id, stop_sequence[,
// arrival, departure]) tuple a schedule feed provides. Arrival/departure
// clocks are accepted but unused: the core is time-independent.
type StopTime struct {
	TripID       string
	StopID       string
	StopSequence int
	Arrival      string
	Departure    string
}

// Feed bundles every already-typed tuple GraphBuilder needs.
type Feed struct {
	Routes    []Route
	Trips     []Trip
	Stops     []StopRecord
	StopTimes []StopTime
}

// Build compiles feed into a fresh StopGraph and FeedIndex under cfg's
// constants. log may be nil (falls back to a no-op logger).
func Build(feed Feed, cfg config.RoutingConfig, log *zap.Logger) (*graph.StopGraph, *feedindex.FeedIndex) {
	if log == nil {
		log = zap.NewNop()
	}

	fi := feedindex.New()
	for _, r := range feed.Routes {
		fi.AddRoute(r.RouteID, cfg.ModeForAgency(r.AgencyID))
	}
	for _, t := range feed.Trips {
		fi.AddTrip(t.TripID, t.RouteID)
	}

	g := graph.New(cfg.MaxWalkDistanceM)
	for _, s := range feed.Stops {
		g.AddStop(s.StopID, s.Name, s.Lat, s.Lon)
	}

	addTransitEdges(g, fi, feed.StopTimes, cfg, log)
	addWalkingEdges(g, cfg)

	log.Info("graph built",
		zap.Int("stops", g.NumStops()),
		zap.Int("routes", len(feed.Routes)),
		zap.Int("trips", len(feed.Trips)),
	)

	return g, fi
}

// addTransitEdges groups stop_times by trip_tag, sorts each group
// ascending by sequence_no, and links consecutive stops. Microbus trips
// additionally get the reverse edge, since the microbus network is
// operationally bidirectional in the reference domain.
func addTransitEdges(g *graph.StopGraph, fi *feedindex.FeedIndex, stopTimes []StopTime, cfg config.RoutingConfig, log *zap.Logger) {
	byTrip := make(map[string][]StopTime)
	for _, st := range stopTimes {
		byTrip[st.TripID] = append(byTrip[st.TripID], st)
	}

	tripTags := make([]string, 0, len(byTrip))
	for tag := range byTrip {
		tripTags = append(tripTags, tag)
	}
	sort.Strings(tripTags)

	for _, tripTag := range tripTags {
		stops := byTrip[tripTag]
		sort.Slice(stops, func(i, j int) bool {
			return stops[i].StopSequence < stops[j].StopSequence
		})

		mode := fi.ModeOfTrip(tripTag)
		if mode == pkg.NONE {
			mode = pkg.BUS
			if routeID, ok := fi.RouteOfTrip(tripTag); ok {
				log.Warn("trip's route has no resolvable mode, defaulting to bus",
					zap.String("trip_id", tripTag), zap.String("route_id", routeID))
			} else {
				log.Warn("trip references no known route, defaulting to bus",
					zap.String("trip_id", tripTag))
			}
		}

		for i := 0; i+1 < len(stops); i++ {
			a, aok := g.LookupByExternalID(stops[i].StopID)
			b, bok := g.LookupByExternalID(stops[i+1].StopID)
			if !aok || !bok {
				continue
			}
			weight := geo.Haversine(g.Stop(a).Lat, g.Stop(a).Lon, g.Stop(b).Lat, g.Stop(b).Lon)/cfg.ModeSpeed(mode) + cfg.StopDwellTimeSec
			g.AddEdge(a, b, weight, tripTag, mode)
			if mode == pkg.MICROBUS {
				g.AddEdge(b, a, weight, tripTag, mode)
			}
		}
	}
}

// addWalkingEdges emits bidirectional walking edges between every pair
// of stops within cfg.MaxWalkDistanceM, using the grid the graph already
// carries. Iteration is by NodeID with j > i so each pair is visited
// exactly once, keeping the resulting edge list deterministic.
func addWalkingEdges(g *graph.StopGraph, cfg config.RoutingConfig) {
	n := g.NumStops()
	for i := 0; i < n; i++ {
		si := g.Stop(graph.NodeID(i))
		candidates := g.RadiusQuery(si.Lat, si.Lon, cfg.MaxWalkDistanceM)
		for _, c := range candidates {
			j := int(c.Node)
			if j <= i {
				continue
			}
			d := c.Distance
			if d <= 0 {
				continue
			}
			weight := d / cfg.WalkSpeedMPS
			g.AddEdge(graph.NodeID(i), c.Node, weight, pkg.WalkTag, pkg.WALK)
			g.AddEdge(c.Node, graph.NodeID(i), weight, pkg.WalkTag, pkg.WALK)
		}
	}
}
