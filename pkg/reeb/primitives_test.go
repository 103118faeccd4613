package reeb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scaffold allocates bare nodes without streaming, for exercising the list
// surgery directly.
func scaffold(g *Graph, values ...float64) []int {
	ids := make([]int, len(values))
	for i, v := range values {
		ids[i] = g.addMeshVertex(int64(i), v, 0)
	}
	return ids
}

func TestAddArc_OrientsByOracle(t *testing.T) {
	g := New()
	n := scaffold(g, 2.0, 1.0)

	// Endpoints arrive high-first; the arc still ascends.
	a := g.addArc(n[0], n[1])
	require.Equal(t, n[1], g.ArcDownNode(a))
	require.Equal(t, n[0], g.ArcUpNode(a))
}

func TestAddPath_BuildsVerticalChain(t *testing.T) {
	g := New()
	n := scaffold(g, 0.0, 1.0, 2.0)

	const tag = LabelTag(42)
	first := g.addPath([]int{n[0], n[1], n[2]}, tag)

	// One label per arc, threaded bottom-up.
	l0 := g.findUpLabel(n[0], tag)
	require.NotEqual(t, nilID, l0)
	require.Equal(t, first, g.labels.buf[l0].arcID)

	l1 := g.labels.buf[l0].vNext
	require.NotEqual(t, nilID, l1)
	require.Equal(t, nilID, g.labels.buf[l1].vNext)
	require.Equal(t, l0, g.labels.buf[l1].vPrev)

	// The downward lookup finds the chain from the top node.
	require.Equal(t, l1, g.findDwLabel(n[2], tag))
	require.Equal(t, nilID, g.findDwLabel(n[2], LabelTag(7)))
}

func TestVertexCollapse_RepairsChains(t *testing.T) {
	g := New()
	n := scaffold(g, 0.0, 1.0, 2.0)

	const tag = LabelTag(9)
	g.addPath([]int{n[0], n[1], n[2]}, tag)

	g.nodes.buf[n[1]].finalized = true
	g.vertexCollapse(n[1])

	require.True(t, g.nodes.cleared(n[1]))
	require.Equal(t, 1, g.arcs.num)

	// The chain now has a single link, covering the merged arc, and the
	// collapsed vertex joined its region.
	l := g.findUpLabel(n[0], tag)
	require.NotEqual(t, nilID, l)
	require.Equal(t, nilID, g.labels.buf[l].vNext)

	a := g.labels.buf[l].arcID
	require.Equal(t, n[0], g.arcs.buf[a].node0)
	require.Equal(t, n[2], g.arcs.buf[a].node1)
	require.Equal(t, []int64{1}, g.arcs.buf[a].region)
}

func TestSplitArc_ThreadsTwinLabels(t *testing.T) {
	g := New()
	n := scaffold(g, 0.0, 1.0, 2.0)

	const tag = LabelTag(5)
	a := g.addPath([]int{n[0], n[2]}, tag)
	b := g.splitArc(a, n[1])

	require.Equal(t, n[1], g.arcs.buf[a].node1)
	require.Equal(t, n[1], g.arcs.buf[b].node0)
	require.Equal(t, n[2], g.arcs.buf[b].node1)

	// The chain covers both halves.
	l := g.findUpLabel(n[0], tag)
	twin := g.labels.buf[l].vNext
	require.Equal(t, b, g.labels.buf[twin].arcID)
	require.Equal(t, tag, g.labels.buf[twin].tag)

	// List surgery kept the incidence lists consistent.
	require.Equal(t, []int{a}, g.NodeDownArcs(n[1]))
	require.Equal(t, []int{b}, g.NodeUpArcs(n[1]))
	require.Equal(t, []int{b}, g.NodeDownArcs(n[2]))
}

func TestRemoveArcs_ListSurgery(t *testing.T) {
	g := New()
	n := scaffold(g, 0.0, 1.0, 1.5)

	a1 := g.addArc(n[0], n[1])
	a2 := g.addArc(n[0], n[2])
	require.Equal(t, 2, g.upDegree(n[0]))

	// Head insertion puts the newest arc first.
	require.Equal(t, []int{a2, a1}, g.NodeUpArcs(n[0]))

	g.removeUpArc(n[0], a2)
	require.Equal(t, []int{a1}, g.NodeUpArcs(n[0]))

	g.removeUpArc(n[0], a1)
	require.Equal(t, 0, g.upDegree(n[0]))
}

func TestPersistence_NormalizedSpan(t *testing.T) {
	g := New()
	n := scaffold(g, 0.0, 1.0, 4.0)

	a := g.addArc(n[0], n[1])
	require.InDelta(t, 0.25, g.persistence(a), 1e-12)

	full := g.addArc(n[0], n[2])
	require.InDelta(t, 1.0, g.persistence(full), 1e-12)
}
