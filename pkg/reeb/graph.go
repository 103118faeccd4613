package reeb

import (
	"fmt"
	"math"

	"github.com/crest-tools/crest/pkg/digraph"
)

// LabelTag identifies a propagation chain. Tags are derived from the two
// stream indices of a mesh edge, so every edge owns a distinct nonzero tag;
// tag 0 means "no label".
type LabelTag uint64

// Cancellation records one simplification step as (down, up) mesh vertex id
// pairs. Branch and loop cancellation only delete arcs, so RemovedArcs is
// filled and InsertedArcs is always left empty.
type Cancellation struct {
	RemovedArcs  [][2]int64
	InsertedArcs [][2]int64
}

// Graph is an online Reeb graph under construction, and after CloseStream a
// queryable critical-point graph. The zero value is not usable; call New.
//
// A Graph is single-threaded: no operation may be called concurrently on the
// same instance. All operations are synchronous, and results are fully
// determined by the stream input order and the (value, vertex id) order
// oracle.
type Graph struct {
	nodes  nodeTable
	arcs   arcTable
	labels labelTable

	// Streaming support.
	vertexStream map[int64]int // mesh vertex id -> dense stream index
	vertexMap    []int         // stream index -> node handle
	pending      []int         // stream index -> incidences left; 0 means unknown
	scalarField  map[int64]float64

	minValue, maxValue float64

	// Loops.
	arcLoopTable []int
	removedLoops int

	components   int
	streamClosed bool

	historyOn bool
	history   []Cancellation

	committed *digraph.Graph
}

// New creates an empty Reeb graph ready for streaming or batch construction.
func New() *Graph {
	return &Graph{
		vertexStream: make(map[int64]int),
		scalarField:  make(map[int64]float64),
		minValue:     math.Inf(1),
		maxValue:     math.Inf(-1),
	}
}

// isSmaller reports whether n0 precedes n1 in the simulation-of-simplicity
// order: by scalar value, ties broken by mesh vertex id. The order is strictly
// total for distinct vertices, which removes all degeneracies from equal
// scalar values.
func (g *Graph) isSmaller(n0, n1 int) bool {
	a, b := &g.nodes.buf[n0], &g.nodes.buf[n1]
	if a.value != b.value {
		return a.value < b.value
	}
	return a.vertexID < b.vertexID
}

// span returns the global scalar range seen so far.
func (g *Graph) span() float64 {
	s := g.maxValue - g.minValue
	if s <= 0 || math.IsInf(s, 0) {
		return 0
	}
	return s
}

// persistence returns the normalized scalar span of an arc, in [0, 1].
func (g *Graph) persistence(arcID int) float64 {
	a := &g.arcs.buf[arcID]
	s := g.span()
	if s == 0 {
		return 0
	}
	return (g.nodes.buf[a.node1].value - g.nodes.buf[a.node0].value) / s
}

func (g *Graph) checkNode(nodeID int) {
	if nodeID <= 0 || nodeID >= len(g.nodes.buf) || g.nodes.cleared(nodeID) {
		panic(fmt.Sprintf("reeb: invalid node handle %d", nodeID))
	}
}

func (g *Graph) checkArc(arcID int) {
	if arcID <= 0 || arcID >= len(g.arcs.buf) || g.arcs.cleared(arcID) {
		panic(fmt.Sprintf("reeb: invalid arc handle %d", arcID))
	}
}

// NumberOfNodes returns the number of live nodes.
func (g *Graph) NumberOfNodes() int { return g.nodes.num }

// NumberOfArcs returns the number of live arcs.
func (g *Graph) NumberOfArcs() int { return g.arcs.num }

// NumberOfLoops returns the number of independent cycles. For a closed PL
// 2-manifold this equals the genus of the surface. Only meaningful after
// CloseStream.
func (g *Graph) NumberOfLoops() int { return len(g.arcLoopTable) - g.removedLoops }

// NumberOfConnectedComponents returns the number of connected components of
// the graph. Only meaningful after CloseStream.
func (g *Graph) NumberOfConnectedComponents() int { return g.components }

// NodeVertexID returns the mesh vertex id of a node.
func (g *Graph) NodeVertexID(nodeID int) int64 {
	g.checkNode(nodeID)
	return g.nodes.buf[nodeID].vertexID
}

// NodeScalarValue returns the scalar field value of a node.
func (g *Graph) NodeScalarValue(nodeID int) float64 {
	g.checkNode(nodeID)
	return g.nodes.buf[nodeID].value
}

// NodeUpArcs returns the handles of the arcs leaving the node from above,
// in list order.
func (g *Graph) NodeUpArcs(nodeID int) []int {
	g.checkNode(nodeID)
	var out []int
	for a := g.nodes.buf[nodeID].arcUp; a != nilID; a = g.arcs.buf[a].arcDw0 {
		out = append(out, a)
	}
	return out
}

// NodeDownArcs returns the handles of the arcs reaching the node from below,
// in list order.
func (g *Graph) NodeDownArcs(nodeID int) []int {
	g.checkNode(nodeID)
	var out []int
	for a := g.nodes.buf[nodeID].arcDown; a != nilID; a = g.arcs.buf[a].arcDw1 {
		out = append(out, a)
	}
	return out
}

// ArcDownNode returns the handle of the lower endpoint of an arc.
func (g *Graph) ArcDownNode(arcID int) int {
	g.checkArc(arcID)
	return g.arcs.buf[arcID].node0
}

// ArcUpNode returns the handle of the upper endpoint of an arc.
func (g *Graph) ArcUpNode(arcID int) int {
	g.checkArc(arcID)
	return g.arcs.buf[arcID].node1
}

// Committed returns the directed-graph container assembled by the last
// Simplify (or nil before the first commit).
func (g *Graph) Committed() *digraph.Graph { return g.committed }

// Set replaces the committed directed-graph representation with a
// user-provided one. Post-processing hook; use with caution.
func (g *Graph) Set(dg *digraph.Graph) { g.committed = dg }
