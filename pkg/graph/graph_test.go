package graph

import (
	"math/rand"
	"testing"

	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg"
	"github.com/AbanoubPhelopos/Wsnly-Graduation-Project-Backend/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddStopIdempotent(t *testing.T) {
	g := New(1500)
	a := g.AddStop("S1", "First", 30.0, 31.0)
	b := g.AddStop("S1", "First (dup)", 30.0, 31.0)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, g.NumStops())
}

func TestAddStopContiguousIDs(t *testing.T) {
	g := New(1500)
	a := g.AddStop("S1", "A", 30.0, 31.0)
	b := g.AddStop("S2", "B", 30.01, 31.0)
	c := g.AddStop("S3", "C", 30.02, 31.0)
	assert.Equal(t, NodeID(0), a)
	assert.Equal(t, NodeID(1), b)
	assert.Equal(t, NodeID(2), c)
}

func TestNearestEmptyGraph(t *testing.T) {
	g := New(1500)
	assert.Equal(t, NoNode, g.Nearest(30.0, 31.0))
}

func TestNearestPicksClosest(t *testing.T) {
	g := New(1500)
	near := g.AddStop("near", "Near", 30.0000, 31.0000)
	g.AddStop("far", "Far", 31.0000, 32.0000)

	got := g.Nearest(30.0001, 31.0001)
	assert.Equal(t, near, got)
}

func TestNearestWithModeFallsBackBeyond5km(t *testing.T) {
	g := New(1500)
	// A metro stop far away, and a bus stop close by; asking for METRO
	// near the bus stop should fall back to the unrestricted nearest.
	busStop := g.AddStop("bus1", "Bus", 30.0000, 31.0000)
	g.AddEdge(busStop, busStop, 1, "T1", pkg.BUS)

	metroStop := g.AddStop("metro1", "Metro", 30.2000, 31.2000)
	g.AddEdge(metroStop, metroStop, 1, "T2", pkg.METRO)

	got := g.NearestWithMode(30.0001, 31.0001, pkg.METRO)
	assert.Equal(t, busStop, got, "beyond the 5km fallback radius, restriction is dropped")
}

func TestNearestWithModeHonoredWithinRadius(t *testing.T) {
	g := New(1500)
	busStop := g.AddStop("bus1", "Bus", 30.0000, 31.0000)
	g.AddEdge(busStop, busStop, 1, "T1", pkg.BUS)

	metroStop := g.AddStop("metro1", "Metro", 30.0010, 31.0010)
	g.AddEdge(metroStop, metroStop, 1, "T2", pkg.METRO)

	got := g.NearestWithMode(30.0011, 31.0011, pkg.METRO)
	assert.Equal(t, metroStop, got)
}

// TestRadiusQueryMatchesBruteForce checks that for r <= MaxWalkDistanceM,
// RadiusQuery returns exactly the brute-force set.
func TestRadiusQueryMatchesBruteForce(t *testing.T) {
	maxWalk := 1500.0
	g := New(maxWalk)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		lat := 30.0 + rng.Float64()*0.05
		lon := 31.0 + rng.Float64()*0.05
		g.AddStop(idFor(i), idFor(i), lat, lon)
	}

	queryLat, queryLon := 30.025, 31.025
	for _, r := range []float64{50, 200, 800, maxWalk} {
		got := g.RadiusQuery(queryLat, queryLon, r)
		gotSet := make(map[NodeID]float64, len(got))
		for _, sd := range got {
			gotSet[sd.Node] = sd.Distance
		}

		wantSet := bruteForceRadius(g, queryLat, queryLon, r)
		require.Equal(t, len(wantSet), len(gotSet), "radius %v", r)
		for node, dist := range wantSet {
			gotDist, ok := gotSet[node]
			require.True(t, ok, "missing node %v at radius %v", node, r)
			assert.InDelta(t, dist, gotDist, 1e-6)
		}
	}
}

func bruteForceRadius(g *StopGraph, lat, lon, r float64) map[NodeID]float64 {
	out := make(map[NodeID]float64)
	for i := 0; i < g.NumStops(); i++ {
		s := g.Stop(NodeID(i))
		d := geo.Haversine(lat, lon, s.Lat, s.Lon)
		if d <= r {
			out[NodeID(i)] = d
		}
	}
	return out
}

func idFor(i int) string {
	return "S" + string(rune('A'+i%26)) + string(rune('0'+i/26))
}

func TestEligibleUnrestrictedWhenMaskHasNoTransitBits(t *testing.T) {
	s := &Stop{Modes: pkg.NONE}
	assert.True(t, eligible(s, pkg.WALK))
}

func TestEligibleRequiresIntersection(t *testing.T) {
	s := &Stop{Modes: pkg.BUS}
	assert.True(t, eligible(s, pkg.BUS|pkg.WALK))
	assert.False(t, eligible(s, pkg.METRO|pkg.WALK))
}

func TestAddEdgeInfersStopModes(t *testing.T) {
	g := New(1500)
	a := g.AddStop("a", "A", 30.0, 31.0)
	b := g.AddStop("b", "B", 30.01, 31.0)
	g.AddEdge(a, b, 100, "T1", pkg.METRO)

	assert.True(t, g.Stop(a).Modes.Has(pkg.METRO))
	assert.True(t, g.Stop(b).Modes.Has(pkg.METRO))
}

func TestAddEdgeWalkDoesNotAffectModes(t *testing.T) {
	g := New(1500)
	a := g.AddStop("a", "A", 30.0, 31.0)
	b := g.AddStop("b", "B", 30.01, 31.0)
	g.AddEdge(a, b, 100, pkg.WalkTag, pkg.WALK)

	assert.Equal(t, pkg.NONE, g.Stop(a).Modes)
	assert.Equal(t, pkg.NONE, g.Stop(b).Modes)
}

func TestAddEdgeNoDeduplication(t *testing.T) {
	g := New(1500)
	a := g.AddStop("a", "A", 30.0, 31.0)
	b := g.AddStop("b", "B", 30.01, 31.0)
	g.AddEdge(a, b, 100, "T1", pkg.BUS)
	g.AddEdge(a, b, 100, "T2", pkg.BUS)

	assert.Len(t, g.Stop(a).Edges, 2)
}
