// Package graph implements the weighted directed multigraph that
// underlies the transit router: vertex-indexed adjacency over an
// append-only edge vector.
package graph

// Kind distinguishes the two edge payloads the transit graph builder
// emits onto a Graph.
type Kind int

const (
	// Wait models the fixed boarding penalty at a stop.
	Wait Kind = iota
	// Ride models travel on one bus between two stops on its route.
	Ride
)

// StopPair is one hop of a Ride edge's compressed span.
type StopPair struct {
	From string
	To   string
}

// EdgeID identifies an edge by its position in the graph's edge vector.
type EdgeID int

// Edge is the payload carried by one directed connection between two
// vertices.
type Edge struct {
	From, To  int
	Weight    float64
	Kind      Kind
	Label     string
	SpanCount uint
	Sequence  []StopPair
}

// Graph is an append-only weighted multigraph. Vertices are dense
// integers assigned by the caller; edges are never removed once added.
type Graph struct {
	vertexCount int
	edges       []Edge
	incidence   [][]EdgeID
}

// New returns an empty graph with no vertices.
func New() *Graph {
	return &Graph{}
}

// AddVertex reserves the next vertex index and returns it.
func (g *Graph) AddVertex() int {
	id := g.vertexCount
	g.vertexCount++
	g.incidence = append(g.incidence, nil)
	return id
}

// VertexCount returns the number of vertices reserved so far.
func (g *Graph) VertexCount() int {
	return g.vertexCount
}

// AddEdge appends e to the edge vector and records its incidence on
// e.From. It returns the new edge's identifier.
func (g *Graph) AddEdge(e Edge) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, e)
	g.incidence[e.From] = append(g.incidence[e.From], id)
	return id
}

// Incident returns the outgoing edge identifiers of vertex v.
func (g *Graph) Incident(v int) []EdgeID {
	return g.incidence[v]
}

// Edge returns a pointer to the edge payload identified by id.
func (g *Graph) Edge(id EdgeID) *Edge {
	return &g.edges[id]
}

// EdgeCount returns the total number of edges added so far.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}
