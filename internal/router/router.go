// Package router implements a one-to-all shortest-path router over a
// graph.Graph, with route reconstruction through an opaque handle
// cache. The relaxation strategy mirrors the container/heap-based
// priority queue used for car routing in the transit backend this
// module grew out of, generalized from a single-pair A* search into a
// per-source Dijkstra fill.
package router

import (
	"container/heap"

	"transitquery/internal/graph"
)

// RouteID is an opaque handle into the router's reconstruction cache.
type RouteID int

const noEdge = graph.EdgeID(-1)

type pqItem struct {
	vertex   int
	weight   float64
	seq      int
	index    int
}

type priorityQueue []*pqItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].weight != pq[j].weight {
		return pq[i].weight < pq[j].weight
	}
	return pq[i].seq < pq[j].seq
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x interface{}) {
	item := x.(*pqItem)
	item.index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}

// row is the fill state for one source vertex: for every vertex v,
// the best known total weight, the number of edges on the best path,
// and the edge that leads into v on that path.
type row struct {
	weight    []float64
	edgeCount []int
	pred      []graph.EdgeID
	reached   []bool
}

type reconstructed struct {
	edges  []graph.EdgeID
	weight float64
}

// Router answers shortest-path queries over a finalized graph.Graph.
// It is safe to query repeatedly; each source's relaxation is computed
// once and cached for later queries.
type Router struct {
	g      *graph.Graph
	rows   map[int]*row
	routes map[RouteID]*reconstructed
	nextID RouteID
}

// New builds a router over g. g must not change afterward.
func New(g *graph.Graph) *Router {
	return &Router{
		g:      g,
		rows:   make(map[int]*row),
		routes: make(map[RouteID]*reconstructed),
	}
}

func (r *Router) rowFor(s int) *row {
	if existing, ok := r.rows[s]; ok {
		return existing
	}
	ro := r.fill(s)
	r.rows[s] = ro
	return ro
}

func (r *Router) fill(s int) *row {
	n := r.g.VertexCount()
	ro := &row{
		weight:    make([]float64, n),
		edgeCount: make([]int, n),
		pred:      make([]graph.EdgeID, n),
		reached:   make([]bool, n),
	}
	for i := range ro.pred {
		ro.pred[i] = noEdge
	}

	visited := make([]bool, n)
	ro.weight[s] = 0
	ro.reached[s] = true

	pq := &priorityQueue{}
	heap.Init(pq)
	seq := 0
	heap.Push(pq, &pqItem{vertex: s, weight: 0, seq: seq})
	seq++

	for pq.Len() > 0 {
		top := heap.Pop(pq).(*pqItem)
		v := top.vertex
		if visited[v] {
			continue
		}
		if top.weight > ro.weight[v] {
			continue
		}
		visited[v] = true

		for _, eid := range r.g.Incident(v) {
			e := r.g.Edge(eid)
			candidate := ro.weight[v] + e.Weight
			if !ro.reached[e.To] || candidate < ro.weight[e.To] {
				ro.reached[e.To] = true
				ro.weight[e.To] = candidate
				ro.edgeCount[e.To] = ro.edgeCount[v] + 1
				ro.pred[e.To] = eid
				heap.Push(pq, &pqItem{vertex: e.To, weight: candidate, seq: seq})
				seq++
			}
		}
	}

	return ro
}

// BuildResult is the outcome of a successful BuildRoute call.
type BuildResult struct {
	ID          RouteID
	TotalWeight float64
	EdgeCount   int
}

// BuildRoute computes the minimum-weight path from s to t. The second
// return value is false iff no path exists.
func (r *Router) BuildRoute(s, t int) (BuildResult, bool) {
	ro := r.rowFor(s)
	if !ro.reached[t] {
		return BuildResult{}, false
	}

	edges := make([]graph.EdgeID, ro.edgeCount[t])
	cur := t
	for i := len(edges) - 1; i >= 0; i-- {
		eid := ro.pred[cur]
		edges[i] = eid
		cur = r.g.Edge(eid).From
	}

	id := r.nextID
	r.nextID++
	r.routes[id] = &reconstructed{edges: edges, weight: ro.weight[t]}

	return BuildResult{ID: id, TotalWeight: ro.weight[t], EdgeCount: len(edges)}, true
}

// RouteEdge returns the k-th edge (0-indexed) of the reconstructed
// route id.
func (r *Router) RouteEdge(id RouteID, k int) graph.EdgeID {
	return r.routes[id].edges[k]
}

// ReleaseRoute drops the cached reconstruction for id. Callers may
// skip this; the cache is not required to be bounded.
func (r *Router) ReleaseRoute(id RouteID) {
	delete(r.routes, id)
}
