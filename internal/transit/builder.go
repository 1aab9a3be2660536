package transit

import "transitquery/internal/graph"

// BuildGraph lowers the store's stops and buses into a weighted
// directed multigraph: one Wait edge per stop, and O(L^2) Ride edges
// per bus of length L, one per reachable (board, alight) pair.
func BuildGraph(st *Store, settings RoutingSettings) *graph.Graph {
	g := graph.New()

	for range st.StopNames() {
		g.AddVertex() // wait-in
		g.AddVertex() // board
	}

	for _, name := range st.StopNames() {
		s, _ := st.Stop(name)
		g.AddEdge(graph.Edge{
			From:   s.WaitVertex(),
			To:     s.BoardVertex(),
			Weight: settings.BusWaitTime,
			Kind:   graph.Wait,
			Label:  s.Name,
		})
	}

	metersPerMinute := settings.BusVelocity * 1000 / 60

	for _, busName := range st.BusNames() {
		b, _ := st.Bus(busName)
		addRideEdges(g, st, b, b.Stops, metersPerMinute)
		if b.IsReversed {
			reversed := make([]string, len(b.Stops))
			for i, s := range b.Stops {
				reversed[len(b.Stops)-1-i] = s
			}
			addRideEdges(g, st, b, reversed, metersPerMinute)
		}
	}

	return g
}

// addRideEdges emits one Ride edge per (j, i+1) pair along seq: a
// passenger boarding at seq[j] may alight at any later stop without
// re-boarding.
func addRideEdges(g *graph.Graph, st *Store, b *Bus, seq []string, metersPerMinute float64) {
	for j := 0; j+1 < len(seq); j++ {
		from, _ := st.Stop(seq[j])
		accumulated := 0
		var sequence []graph.StopPair
		for i := j; i+1 < len(seq); i++ {
			d, ok := st.Distance(seq[i], seq[i+1])
			if !ok {
				// Internal invariant violation: the loader must have
				// ensured every traversed segment has a declared
				// distance. Skip rather than panic here; the caller
				// is expected to validate before building the graph.
				break
			}
			accumulated += d
			sequence = append(sequence, graph.StopPair{From: seq[i], To: seq[i+1]})

			to, _ := st.Stop(seq[i+1])
			weight := float64(accumulated) / metersPerMinute
			g.AddEdge(graph.Edge{
				From:      from.BoardVertex(),
				To:        to.WaitVertex(),
				Weight:    weight,
				Kind:      graph.Ride,
				Label:     b.Name,
				SpanCount: uint(i - j + 1),
				Sequence:  append([]graph.StopPair(nil), sequence...),
			})
		}
	}
}
