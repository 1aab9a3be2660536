// Package layout computes a screen-space projection for every stop in
// a transit network, using rank-by-axis coordinate compression keyed
// on route adjacency rather than linear scaling.
package layout

import (
	"sort"

	"transitquery/internal/geo"
	"transitquery/internal/svg"
	"transitquery/internal/transit"
)

// Settings controls the screen-space extent the layout is projected
// into.
type Settings struct {
	Width   float64
	Height  float64
	Padding float64
}

// Compute returns the screen-space point for every stop in st.
func Compute(st *transit.Store, settings Settings) map[string]svg.Point {
	names := st.StopNames()
	result := make(map[string]svg.Point, len(names))
	if len(names) == 0 {
		return result
	}

	nearby := buildNearbySet(st)
	pivots := selectPivots(st, nearby)
	coords := interpolate(st, pivots)

	lonRank, lonMax := rankAxis(names, coords, nearby, func(p geo.Point) float64 { return p.Lon })
	latRank, latMax := rankAxis(names, coords, nearby, func(p geo.Point) float64 { return p.Lat })

	xStep := 0.0
	if lonMax > 0 {
		xStep = (settings.Width - 2*settings.Padding) / float64(lonMax)
	}
	yStep := 0.0
	if latMax > 0 {
		yStep = (settings.Height - 2*settings.Padding) / float64(latMax)
	}

	for _, name := range names {
		x := settings.Padding + float64(lonRank[name])*xStep
		y := settings.Height - settings.Padding - float64(latRank[name])*yStep
		result[name] = svg.Point{X: x, Y: y}
	}
	return result
}

// buildNearbySet returns the undirected adjacency of stops that are
// consecutive on some bus's declared route.
func buildNearbySet(st *transit.Store) map[string]map[string]struct{} {
	nearby := make(map[string]map[string]struct{})
	addPair := func(a, b string) {
		if nearby[a] == nil {
			nearby[a] = make(map[string]struct{})
		}
		if nearby[b] == nil {
			nearby[b] = make(map[string]struct{})
		}
		nearby[a][b] = struct{}{}
		nearby[b][a] = struct{}{}
	}
	for _, busName := range st.BusNames() {
		b, _ := st.Bus(busName)
		for i := 0; i+1 < len(b.Stops); i++ {
			addPair(b.Stops[i], b.Stops[i+1])
		}
	}
	return nearby
}

// selectPivots implements Step 2: a stop is a pivot if it is a bus
// endpoint, served by more than one bus, or revisited by a single bus
// beyond the natural once-each revisit a reversed route produces.
func selectPivots(st *transit.Store, nearby map[string]map[string]struct{}) map[string]bool {
	pivots := make(map[string]bool)
	busCount := make(map[string]int)

	for _, busName := range st.BusNames() {
		b, _ := st.Bus(busName)
		for _, name := range b.Endpoints() {
			pivots[name] = true
		}

		seen := make(map[string]struct{})
		for _, name := range b.Stops {
			if _, ok := seen[name]; !ok {
				busCount[name]++
				seen[name] = struct{}{}
			}
		}

		occurrences := make(map[string]int)
		for _, name := range b.Traversal() {
			occurrences[name]++
		}
		threshold := 1
		if b.IsReversed {
			threshold = 2
		}
		for name, count := range occurrences {
			if count > threshold {
				pivots[name] = true
			}
		}
	}

	for name, count := range busCount {
		if count > 1 {
			pivots[name] = true
		}
	}

	return pivots
}

// interpolate implements Step 3: non-pivot stops between two
// consecutive pivots on some bus's route take on a coordinate
// linearly interpolated between those pivots' original coordinates.
func interpolate(st *transit.Store, pivots map[string]bool) map[string]geo.Point {
	coords := make(map[string]geo.Point, len(st.StopNames()))
	for _, name := range st.StopNames() {
		s, _ := st.Stop(name)
		coords[name] = s.Coord
	}

	for _, busName := range st.BusNames() {
		b, _ := st.Bus(busName)
		seq := b.Stops

		var pivotIdx []int
		for idx, name := range seq {
			if pivots[name] {
				pivotIdx = append(pivotIdx, idx)
			}
		}

		for p := 0; p+1 < len(pivotIdx); p++ {
			i, j := pivotIdx[p], pivotIdx[p+1]
			from := coords[seq[i]]
			to := coords[seq[j]]
			for k := i + 1; k < j; k++ {
				if pivots[seq[k]] {
					continue
				}
				t := float64(k-i) / float64(j-i)
				coords[seq[k]] = geo.Point{
					Lat: from.Lat + (to.Lat-from.Lat)*t,
					Lon: from.Lon + (to.Lon-from.Lon)*t,
				}
			}
		}
	}

	return coords
}

// rankAxis implements Step 4 for one axis: sort stops by the axis
// value, then assign each stop a rank of one more than the greatest
// rank among adjacent stops that precede it in sort order, or zero if
// none precede it. It returns the rank map and the maximum rank
// assigned (R-1).
func rankAxis(names []string, coords map[string]geo.Point, nearby map[string]map[string]struct{}, axis func(geo.Point) float64) (map[string]int, int) {
	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, vj := axis(coords[sorted[i]]), axis(coords[sorted[j]])
		if vi != vj {
			return vi < vj
		}
		return sorted[i] < sorted[j]
	})

	position := make(map[string]int, len(sorted))
	for idx, name := range sorted {
		position[name] = idx
	}

	ranks := make(map[string]int, len(sorted))
	maxRank := 0
	for idx, name := range sorted {
		best := -1
		for neighbor := range nearby[name] {
			if npos, ok := position[neighbor]; ok && npos < idx {
				if r := ranks[neighbor]; r > best {
					best = r
				}
			}
		}
		r := best + 1
		ranks[name] = r
		if r > maxRank {
			maxRank = r
		}
	}

	return ranks, maxRank
}
