package graphbuilder

import (
	"math"
	"testing"

	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/config"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/geo"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoStopFeed(mode string) Feed {
	agency := "B1_CAI_BUS"
	switch mode {
	case "metro":
		agency = "M_CAI-METRO"
	case "microbus":
		agency = "MB_CAI_BUS"
	}
	return Feed{
		Routes:    []Route{{RouteID: "R1", AgencyID: agency}},
		Trips:     []Trip{{RouteID: "R1", TripID: "T1"}},
		Stops:     []StopRecord{{StopID: "A", Name: "A", Lat: 30.0, Lon: 31.0}, {StopID: "B", Name: "B", Lat: 30.01, Lon: 31.0}},
		StopTimes: []StopTime{{TripID: "T1", StopID: "A", StopSequence: 1}, {TripID: "T1", StopID: "B", StopSequence: 2}},
	}
}

func TestTransitEdgeWeight(t *testing.T) {
	cfg := config.Default()
	g, fi := Build(twoStopFeed("bus"), cfg, nil)

	a, _ := g.LookupByExternalID("A")
	b, _ := g.LookupByExternalID("B")

	require.Len(t, g.Stop(a).Edges, 1)
	edge := g.Stop(a).Edges[0]
	assert.Equal(t, b, edge.To)
	assert.Equal(t, pkg.BUS, edge.Mode)
	assert.Equal(t, "T1", edge.TripTag)

	dist := geo.Haversine(30.0, 31.0, 30.01, 31.0)
	wantWeight := dist/cfg.BusSpeedMPS + cfg.StopDwellTimeSec
	assert.InDelta(t, wantWeight, edge.Weight, 1e-6)
	assert.Equal(t, pkg.BUS, fi.ModeOfTrip("T1"))
}

// TestMicrobusBidirectional checks that microbus trips get a reverse edge.
func TestMicrobusBidirectional(t *testing.T) {
	cfg := config.Default()
	g, _ := Build(twoStopFeed("microbus"), cfg, nil)

	a, _ := g.LookupByExternalID("A")
	b, _ := g.LookupByExternalID("B")

	require.Len(t, g.Stop(a).Edges, 1)
	require.Len(t, g.Stop(b).Edges, 1)

	forward := g.Stop(a).Edges[0]
	backward := g.Stop(b).Edges[0]
	assert.Equal(t, b, forward.To)
	assert.Equal(t, a, backward.To)
	assert.InDelta(t, forward.Weight, backward.Weight, 1e-9)
	assert.Equal(t, pkg.MICROBUS, backward.Mode)
}

func TestMetroDoesNotAutoReverse(t *testing.T) {
	cfg := config.Default()
	g, _ := Build(twoStopFeed("metro"), cfg, nil)

	a, _ := g.LookupByExternalID("A")
	b, _ := g.LookupByExternalID("B")

	assert.Len(t, g.Stop(a).Edges, 1)
	assert.Len(t, g.Stop(b).Edges, 0)
}

func TestUnresolvedTripDefaultsToBus(t *testing.T) {
	// No Routes/Trips entries at all: FeedIndex has nothing to resolve.
	feed := Feed{
		Stops:     []StopRecord{{StopID: "A", Name: "A", Lat: 30.0, Lon: 31.0}, {StopID: "B", Name: "B", Lat: 30.01, Lon: 31.0}},
		StopTimes: []StopTime{{TripID: "T_ghost", StopID: "A", StopSequence: 1}, {TripID: "T_ghost", StopID: "B", StopSequence: 2}},
	}
	g, _ := Build(feed, config.Default(), nil)
	a, _ := g.LookupByExternalID("A")
	require.Len(t, g.Stop(a).Edges, 1)
	assert.Equal(t, pkg.BUS, g.Stop(a).Edges[0].Mode)
}

func TestWalkingEdgesWithinThreshold(t *testing.T) {
	cfg := config.Default()
	feed := Feed{
		Stops: []StopRecord{
			{StopID: "A", Name: "A", Lat: 30.0000, Lon: 31.0000},
			{StopID: "B", Name: "B", Lat: 30.0010, Lon: 31.0000}, // ~111m away
			{StopID: "C", Name: "C", Lat: 30.0300, Lon: 31.0000}, // ~3.3km away
		},
	}
	g, _ := Build(feed, cfg, nil)
	a, _ := g.LookupByExternalID("A")
	b, _ := g.LookupByExternalID("B")
	c, _ := g.LookupByExternalID("C")

	hasWalkEdgeTo := func(from graph.NodeID, to graph.NodeID) bool {
		for _, e := range g.Stop(from).Edges {
			if e.To == to && e.TripTag == pkg.WalkTag && e.Mode == pkg.WALK {
				return true
			}
		}
		return false
	}

	assert.True(t, hasWalkEdgeTo(a, b))
	assert.True(t, hasWalkEdgeTo(b, a))
	assert.False(t, hasWalkEdgeTo(a, c))
	assert.False(t, hasWalkEdgeTo(c, a))
}

func TestWalkingEdgeWeightUsesWalkSpeed(t *testing.T) {
	cfg := config.Default()
	feed := Feed{
		Stops: []StopRecord{
			{StopID: "A", Name: "A", Lat: 30.0000, Lon: 31.0000},
			{StopID: "B", Name: "B", Lat: 30.0010, Lon: 31.0000},
		},
	}
	g, _ := Build(feed, cfg, nil)
	a, _ := g.LookupByExternalID("A")
	b, _ := g.LookupByExternalID("B")

	var got float64
	for _, e := range g.Stop(a).Edges {
		if e.To == b {
			got = e.Weight
		}
	}
	require.NotZero(t, got)
	wantDist := geo.Haversine(30.0000, 31.0000, 30.0010, 31.0000)
	assert.InDelta(t, wantDist/cfg.WalkSpeedMPS, got, 1e-6)
}

func TestDeterministicEdgeOrder(t *testing.T) {
	cfg := config.Default()
	feed := twoStopFeed("bus")
	g1, _ := Build(feed, cfg, nil)
	g2, _ := Build(feed, cfg, nil)

	a1, _ := g1.LookupByExternalID("A")
	a2, _ := g2.LookupByExternalID("A")
	require.Equal(t, len(g1.Stop(a1).Edges), len(g2.Stop(a2).Edges))
	for i := range g1.Stop(a1).Edges {
		assert.Equal(t, g1.Stop(a1).Edges[i].TripTag, g2.Stop(a2).Edges[i].TripTag)
		assert.False(t, math.IsNaN(g1.Stop(a1).Edges[i].Weight))
	}
}
