package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"transitquery/internal/geo"
	"transitquery/internal/transit"
)

// S2: single stop.
func TestComputeSingleStop(t *testing.T) {
	st := transit.NewStore()
	st.AddStop("A", geo.Point{Lat: 55.6, Lon: 37.6})

	coords := Compute(st, Settings{Width: 600, Height: 400, Padding: 10})
	assert.Equal(t, float64(10), coords["A"].X)
	assert.Equal(t, float64(390), coords["A"].Y)
}

func TestComputeEmptyNetwork(t *testing.T) {
	st := transit.NewStore()
	coords := Compute(st, Settings{Width: 600, Height: 400, Padding: 10})
	assert.Empty(t, coords)
}

// Invariant 10: adjacent stops on an axis get strictly increasing
// ranks in sort order.
func TestRankStrictlyIncreasesForAdjacentStops(t *testing.T) {
	st := transit.NewStore()
	st.AddStop("A", geo.Point{Lat: 0, Lon: 0})
	st.AddStop("B", geo.Point{Lat: 0, Lon: 1})
	st.AddStop("C", geo.Point{Lat: 0, Lon: 2})
	st.AddDistance("A", "B", 100)
	st.AddDistance("B", "C", 100)
	st.AddBus("x", []string{"A", "B", "C"}, false)

	coords := Compute(st, Settings{Width: 300, Height: 300, Padding: 10})

	// Longitude increases A < B < C, and A-B and B-C are nearby via the
	// bus, so screen-x should be strictly increasing too.
	assert.Less(t, coords["A"].X, coords["B"].X)
	assert.Less(t, coords["B"].X, coords["C"].X)
}

// Invariant 9: non-pivot interpolation between two pivots.
func TestNonPivotInterpolatedBetweenPivots(t *testing.T) {
	st := transit.NewStore()
	// A and C are the endpoints (pivots) of a reversed bus; B is a
	// non-pivot intermediate stop.
	st.AddStop("A", geo.Point{Lat: 0, Lon: 0})
	st.AddStop("B", geo.Point{Lat: 99, Lon: 99}) // deliberately off the line
	st.AddStop("C", geo.Point{Lat: 10, Lon: 10})
	st.AddDistance("A", "B", 100)
	st.AddDistance("B", "C", 100)
	st.AddBus("x", []string{"A", "B", "C"}, true)

	coords := interpolate(st, selectPivots(st, buildNearbySet(st)))

	// B sits halfway between A (index 0) and C (index 2) on the route.
	assert.InDelta(t, 5.0, coords["B"].Lat, 1e-9)
	assert.InDelta(t, 5.0, coords["B"].Lon, 1e-9)
}

func TestPivotSelectionEndpointAndSharedStop(t *testing.T) {
	st := transit.NewStore()
	st.AddStop("A", geo.Point{Lat: 0, Lon: 0})
	st.AddStop("B", geo.Point{Lat: 1, Lon: 1})
	st.AddStop("C", geo.Point{Lat: 2, Lon: 2})
	st.AddDistance("A", "B", 10)
	st.AddDistance("B", "C", 10)
	st.AddBus("one", []string{"A", "B"}, false)
	st.AddBus("two", []string{"B", "C"}, true)

	pivots := selectPivots(st, buildNearbySet(st))
	assert.True(t, pivots["A"]) // endpoint of "one"
	assert.True(t, pivots["B"]) // served by two buses
	assert.True(t, pivots["C"]) // endpoint of "two"
}
