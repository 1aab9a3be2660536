// Package transit holds the bus-network data model (stops, buses,
// declared road distances) and the builder that lowers it into a
// graph.Graph modeling wait-and-ride passenger behavior.
package transit

import (
	"fmt"
	"sort"

	"transitquery/internal/geo"
)

// Stop is a named geographic point with a table of declared road
// distances to named neighbors and the pair of graph vertex indices
// assigned to it at insertion time.
type Stop struct {
	Name      string
	Coord     geo.Point
	Distances map[string]int // meters, keyed by neighbor stop name

	index int // 0-based insertion order
}

// WaitVertex returns the wait-in(s) vertex index, 2*idx(s).
func (s *Stop) WaitVertex() int { return 2 * s.index }

// BoardVertex returns the board(s) vertex index, 2*idx(s)+1.
func (s *Stop) BoardVertex() int { return 2*s.index + 1 }

// Bus is a named ordered sequence of stops.
type Bus struct {
	Name       string
	Stops      []string
	IsReversed bool
}

// Endpoints returns the stop names that are drawn as labeled
// endpoints on the map: the first stop, and the last stop too when
// the bus is reversed and its last stop differs from its first.
func (b *Bus) Endpoints() []string {
	if len(b.Stops) == 0 {
		return nil
	}
	first := b.Stops[0]
	last := b.Stops[len(b.Stops)-1]
	if b.IsReversed && last != first {
		return []string{first, last}
	}
	return []string{first}
}

// Traversal returns the full round-trip stop sequence of b: the
// declared route, plus (when reversed) the backward walk excluding
// the repeated turnaround stop. len(Traversal()) == TotalStops().
func (b *Bus) Traversal() []string {
	if !b.IsReversed {
		return b.Stops
	}
	out := append([]string(nil), b.Stops...)
	for i := len(b.Stops) - 2; i >= 0; i-- {
		out = append(out, b.Stops[i])
	}
	return out
}

// IsEndpoint reports whether name is one of b's labeled endpoints.
func (b *Bus) IsEndpoint(name string) bool {
	for _, e := range b.Endpoints() {
		if e == name {
			return true
		}
	}
	return false
}

// TotalStops is the number of stop visits along one round trip of b.
func (b *Bus) TotalStops() int {
	if !b.IsReversed {
		return len(b.Stops)
	}
	return 2*len(b.Stops) - 1
}

// UniqueStops is the number of distinct stop names on b's route.
func (b *Bus) UniqueStops() int {
	seen := make(map[string]struct{}, len(b.Stops))
	for _, s := range b.Stops {
		seen[s] = struct{}{}
	}
	return len(seen)
}

// RoutingSettings carries the two scalars governing Wait and Ride edge
// weights.
type RoutingSettings struct {
	BusWaitTime float64 // minutes
	BusVelocity float64 // km/h
}

// Store maintains the named sets of stops and buses that make up one
// transit network, along with the bounding box of their coordinates.
type Store struct {
	stops     map[string]*Stop
	stopOrder []string
	buses     map[string]*Bus
	busOrder  []string

	hasBounds bool
	minLat, maxLat float64
	minLon, maxLon float64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		stops: make(map[string]*Stop),
		buses: make(map[string]*Bus),
	}
}

// AddStop allocates the next stop index and records its coordinate,
// updating the global bounding box.
func (st *Store) AddStop(name string, coord geo.Point) *Stop {
	s := &Stop{
		Name:      name,
		Coord:     coord,
		Distances: make(map[string]int),
		index:     len(st.stopOrder),
	}
	st.stops[name] = s
	st.stopOrder = append(st.stopOrder, name)

	if !st.hasBounds {
		st.minLat, st.maxLat = coord.Lat, coord.Lat
		st.minLon, st.maxLon = coord.Lon, coord.Lon
		st.hasBounds = true
	} else {
		if coord.Lat < st.minLat {
			st.minLat = coord.Lat
		}
		if coord.Lat > st.maxLat {
			st.maxLat = coord.Lat
		}
		if coord.Lon < st.minLon {
			st.minLon = coord.Lon
		}
		if coord.Lon > st.maxLon {
			st.maxLon = coord.Lon
		}
	}

	return s
}

// AddDistance records an asymmetric road distance from `from` to `to`
// in meters.
func (st *Store) AddDistance(from, to string, meters int) {
	s, ok := st.stops[from]
	if !ok {
		return
	}
	s.Distances[to] = meters
}

// AddBus stores a bus verbatim.
func (st *Store) AddBus(name string, sequence []string, isReversed bool) *Bus {
	b := &Bus{Name: name, Stops: sequence, IsReversed: isReversed}
	st.buses[name] = b
	st.busOrder = append(st.busOrder, name)
	return b
}

// Stop returns the stop named name, or (nil, false) if it is unknown.
func (st *Store) Stop(name string) (*Stop, bool) {
	s, ok := st.stops[name]
	return s, ok
}

// Bus returns the bus named name, or (nil, false) if it is unknown.
func (st *Store) Bus(name string) (*Bus, bool) {
	b, ok := st.buses[name]
	return b, ok
}

// StopNames returns every stop name in insertion order.
func (st *Store) StopNames() []string {
	return st.stopOrder
}

// BusNames returns every bus name in insertion order.
func (st *Store) BusNames() []string {
	return st.busOrder
}

// SortedStopNames returns every stop name in lexicographic order.
func (st *Store) SortedStopNames() []string {
	names := append([]string(nil), st.stopOrder...)
	sort.Strings(names)
	return names
}

// SortedBusNames returns every bus name in lexicographic order.
func (st *Store) SortedBusNames() []string {
	names := append([]string(nil), st.busOrder...)
	sort.Strings(names)
	return names
}

// BusesAt returns, in lexicographic order, the names of every bus
// that visits stop name.
func (st *Store) BusesAt(name string) []string {
	var result []string
	for _, busName := range st.SortedBusNames() {
		b := st.buses[busName]
		for _, s := range b.Stops {
			if s == name {
				result = append(result, busName)
				break
			}
		}
	}
	return result
}

// Distance resolves the declared road distance from `from` to `to`,
// falling back to the reverse direction when the forward declaration
// is absent. The second return is false iff neither direction is
// declared.
func (st *Store) Distance(from, to string) (int, bool) {
	if s, ok := st.stops[from]; ok {
		if d, ok := s.Distances[to]; ok {
			return d, true
		}
	}
	if s, ok := st.stops[to]; ok {
		if d, ok := s.Distances[from]; ok {
			return d, true
		}
	}
	return 0, false
}

// Bounds returns the bounding box of every inserted stop's
// coordinate. The second return is false when no stop has been
// inserted.
func (st *Store) Bounds() (minLat, maxLat, minLon, maxLon float64, ok bool) {
	return st.minLat, st.maxLat, st.minLon, st.maxLon, st.hasBounds
}

// RoadLength sums the declared road distance over every consecutive
// pair of stops on b's route, using the forward/reverse fallback. It
// returns an error iff any segment has no declared distance in either
// direction -- an internal invariant violation per the error-handling
// policy.
func (b *Bus) RoadLength(st *Store) (int, error) {
	total := 0
	walk := func(seq []string) error {
		for i := 0; i+1 < len(seq); i++ {
			d, ok := st.Distance(seq[i], seq[i+1])
			if !ok {
				return fmt.Errorf("no declared distance between %q and %q", seq[i], seq[i+1])
			}
			total += d
		}
		return nil
	}
	if err := walk(b.Stops); err != nil {
		return 0, err
	}
	if b.IsReversed {
		reversed := make([]string, len(b.Stops))
		for i, s := range b.Stops {
			reversed[len(b.Stops)-1-i] = s
		}
		if err := walk(reversed); err != nil {
			return 0, err
		}
	}
	return total, nil
}

// GeographicLength sums the great-circle distance between consecutive
// route stops, doubled when the bus is reversed.
func (b *Bus) GeographicLength(st *Store) float64 {
	total := 0.0
	for i := 0; i+1 < len(b.Stops); i++ {
		from, _ := st.Stop(b.Stops[i])
		to, _ := st.Stop(b.Stops[i+1])
		total += geo.Distance(from.Coord, to.Coord)
	}
	if b.IsReversed {
		total *= 2
	}
	return total
}

// ValidateDistances checks that every consecutive pair of stops
// traversed by any bus (including the reverse walk of reversed buses)
// has a declared road distance in at least one direction. This is the
// internal-invariant check the graph builder assumes has already
// passed; callers should run it once after loading and before
// building the graph.
func (st *Store) ValidateDistances() error {
	for _, busName := range st.busOrder {
		b := st.buses[busName]
		if _, err := b.RoadLength(st); err != nil {
			return fmt.Errorf("bus %q: %w", busName, err)
		}
	}
	return nil
}

// Curvature is RoadLength / GeographicLength.
func (b *Bus) Curvature(st *Store) (float64, error) {
	road, err := b.RoadLength(st)
	if err != nil {
		return 0, err
	}
	geoLen := b.GeographicLength(st)
	if geoLen == 0 {
		return 0, nil
	}
	return float64(road) / geoLen, nil
}
