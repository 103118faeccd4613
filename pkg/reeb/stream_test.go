package reeb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// checkInvariants verifies the structural invariants that must hold on any
// closed graph: arcs ascend in the order oracle, the incidence lists are
// consistent, every node is finalized, and no critical node is a plain
// degree-(1, 1) chain node.
func checkInvariants(t *testing.T, g *Graph) {
	t.Helper()
	for a := 1; a < len(g.arcs.buf); a++ {
		if g.arcs.cleared(a) {
			continue
		}
		ar := &g.arcs.buf[a]
		require.True(t, g.isSmaller(ar.node0, ar.node1),
			"arc %d does not ascend: %d -> %d", a, ar.node0, ar.node1)
	}
	for n := 1; n < len(g.nodes.buf); n++ {
		if g.nodes.cleared(n) {
			continue
		}
		for _, a := range g.NodeUpArcs(n) {
			require.Equal(t, n, g.arcs.buf[a].node0, "up-arc %d of node %d", a, n)
		}
		for _, a := range g.NodeDownArcs(n) {
			require.Equal(t, n, g.arcs.buf[a].node1, "down-arc %d of node %d", a, n)
		}
		require.True(t, g.nodes.buf[n].finalized, "node %d not finalized", n)
		if g.nodes.buf[n].critical {
			deg := [2]int{g.downDegree(n), g.upDegree(n)}
			require.NotEqual(t, [2]int{1, 1}, deg, "critical node %d is regular", n)
		}
	}
}

func TestStreamTriangle_SingleTriangle(t *testing.T) {
	g := New()
	require.NoError(t, g.StreamTriangle(0, 0.0, 1, 1.0, 2, 2.0))
	g.CloseStream()

	checkInvariants(t, g)
	require.Equal(t, 2, g.NumberOfNodes())
	require.Equal(t, 1, g.NumberOfArcs())
	require.Equal(t, 0, g.NumberOfLoops())
	require.Equal(t, 1, g.NumberOfConnectedComponents())

	g.Simplify(0, nil)
	out := g.Committed()
	require.Equal(t, 2, out.NodeCount())
	require.Equal(t, 1, out.ArcCount())

	// The regular middle vertex must have been folded into the arc region.
	arc, _ := out.Arc(0)
	require.Equal(t, []int64{1}, arc.Region)

	lo, _ := out.Node(arc.From)
	hi, _ := out.Node(arc.To)
	require.Equal(t, int64(0), lo.VertexID)
	require.Equal(t, int64(2), hi.VertexID)
}

func TestStreamTetrahedron_SingleTet(t *testing.T) {
	g := New()
	require.NoError(t, g.StreamTetrahedron(0, 0.0, 1, 1.0, 2, 2.0, 3, 3.0))
	g.CloseStream()

	checkInvariants(t, g)
	require.Equal(t, 2, g.NumberOfNodes())
	require.Equal(t, 1, g.NumberOfArcs())
	require.Equal(t, 0, g.NumberOfLoops())

	require.Equal(t, 0, g.Simplify(0, nil))
	out := g.Committed()
	require.Equal(t, 2, out.NodeCount())
	require.Equal(t, 1, out.ArcCount())
}

func TestStream_SharedEdgeReusesChain(t *testing.T) {
	// Two triangles glued along the edge (0, 2). The interior stays a single
	// monotone tube: one arc after closing.
	g := New()
	require.NoError(t, g.StreamTriangle(0, 0.0, 1, 1.0, 2, 2.0))
	require.NoError(t, g.StreamTriangle(0, 0.0, 3, 1.5, 2, 2.0))
	g.CloseStream()

	checkInvariants(t, g)
	require.Equal(t, 2, g.NumberOfNodes())
	require.Equal(t, 1, g.NumberOfArcs())
	require.Equal(t, 0, g.NumberOfLoops())
}

func TestStream_VertexOrderIrrelevant(t *testing.T) {
	// The same triangle streamed with vertices in any order gives the same
	// graph: sorting happens against the order oracle internally.
	for _, perm := range [][3]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}} {
		ids := [3]int64{5, 9, 7}
		vals := [3]float64{0.25, 1.5, 0.75}
		g := New()
		require.NoError(t, g.StreamTriangle(
			ids[perm[0]], vals[perm[0]],
			ids[perm[1]], vals[perm[1]],
			ids[perm[2]], vals[perm[2]],
		))
		g.CloseStream()
		require.Equal(t, 2, g.NumberOfNodes(), "perm %v", perm)
		require.Equal(t, 1, g.NumberOfArcs(), "perm %v", perm)
	}
}

func TestStream_TieBreakDeterminism(t *testing.T) {
	// Three vertices share the same scalar value; the vertex id tie-break
	// keeps the construction total. Swapping the streaming order of the
	// triangles must not change the result.
	type tri [3]int64
	mesh := []tri{{0, 1, 3}, {1, 2, 3}, {0, 2, 3}}
	values := map[int64]float64{0: 1.0, 1: 1.0, 2: 1.0, 3: 2.0}

	build := func(order []tri) *Graph {
		g := New()
		for _, c := range order {
			require.NoError(t, g.StreamTriangle(
				c[0], values[c[0]], c[1], values[c[1]], c[2], values[c[2]]))
		}
		g.CloseStream()
		return g
	}

	a := build(mesh)
	b := build([]tri{mesh[2], mesh[0], mesh[1]})

	checkInvariants(t, a)
	checkInvariants(t, b)
	require.Equal(t, a.NumberOfNodes(), b.NumberOfNodes())
	require.Equal(t, a.NumberOfArcs(), b.NumberOfArcs())
	require.Equal(t, a.NumberOfLoops(), b.NumberOfLoops())

	vertexSet := func(g *Graph) map[int64]bool {
		out := make(map[int64]bool)
		c := g.NodeCursor()
		prev := 0
		for {
			id := c.Next()
			if id == prev {
				break
			}
			prev = id
			out[g.NodeVertexID(id)] = true
		}
		return out
	}
	require.Equal(t, vertexSet(a), vertexSet(b))
}

func TestDeepCopy_SnapshotMidStream(t *testing.T) {
	g := New()
	require.NoError(t, g.StreamTriangle(0, 0.0, 1, 1.0, 2, 2.0))

	snap := g.DeepCopy()
	snap.CloseStream()
	require.Equal(t, 2, snap.NumberOfNodes())

	// The original keeps streaming unaffected by the snapshot's closing.
	require.NoError(t, g.StreamTriangle(0, 0.0, 3, 1.5, 2, 2.0))
	g.CloseStream()
	require.Equal(t, 2, g.NumberOfNodes())
	require.Equal(t, 1, g.NumberOfArcs())
}

func TestStream_PanicsAfterClose(t *testing.T) {
	g := New()
	require.NoError(t, g.StreamTriangle(0, 0.0, 1, 1.0, 2, 2.0))
	g.CloseStream()

	require.Panics(t, func() { g.StreamTriangle(0, 0.0, 3, 1.5, 2, 2.0) })
	require.Panics(t, func() { g.CloseStream() })
}

func TestSimplify_PanicsBeforeClose(t *testing.T) {
	g := New()
	require.NoError(t, g.StreamTriangle(0, 0.0, 1, 1.0, 2, 2.0))
	require.Panics(t, func() { g.Simplify(0.5, nil) })
}
