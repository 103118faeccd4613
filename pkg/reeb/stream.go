package reeb

import "fmt"

// edgeTag derives the propagation tag of a mesh edge from the dense stream
// indices of its endpoints, lower-ordered vertex first. Stream indices start
// at 0, so the tag of any real edge is nonzero as long as the two indices
// differ, which holds for any non-degenerate simplex.
func edgeTag(lo, hi int) LabelTag {
	return LabelTag(uint64(lo)+1) | LabelTag(uint64(hi)+1)<<32
}

// addMeshVertex registers a mesh vertex and allocates its node. expected is
// the vertex's total incidence count when known up front (batch builds);
// 0 means unknown, leaving finalization to CloseStream.
func (g *Graph) addMeshVertex(vertexID int64, value float64, expected int) int {
	n := g.nodes.alloc()
	nd := &g.nodes.buf[n]
	nd.vertexID = vertexID
	nd.value = value

	if value < g.minValue {
		g.minValue = value
	}
	if value > g.maxValue {
		g.maxValue = value
	}

	g.vertexStream[vertexID] = len(g.vertexMap)
	g.vertexMap = append(g.vertexMap, n)
	g.pending = append(g.pending, expected)
	g.scalarField[vertexID] = value
	return n
}

// registerStreamVertex adds the vertex on first sight during streaming.
func (g *Graph) registerStreamVertex(vertexID int64, value float64) {
	if _, seen := g.vertexStream[vertexID]; !seen {
		g.addMeshVertex(vertexID, value, 0)
	}
}

// StreamTriangle adds one surface triangle to the streaming computation.
// Vertices may arrive in any order; unseen vertices are registered on the
// fly. The stream must be finalized with CloseStream.
func (g *Graph) StreamTriangle(v0 int64, f0 float64, v1 int64, f1 float64, v2 int64, f2 float64) error {
	if g.streamClosed {
		panic("reeb: StreamTriangle after CloseStream")
	}
	g.registerStreamVertex(v0, f0)
	g.registerStreamVertex(v1, f1)
	g.registerStreamVertex(v2, f2)
	g.addMeshTriangle(v0, v1, v2)
	return nil
}

// StreamTetrahedron adds one volume tetrahedron to the streaming
// computation. The stream must be finalized with CloseStream.
func (g *Graph) StreamTetrahedron(v0 int64, f0 float64, v1 int64, f1 float64, v2 int64, f2 float64, v3 int64, f3 float64) error {
	if g.streamClosed {
		panic("reeb: StreamTetrahedron after CloseStream")
	}
	g.registerStreamVertex(v0, f0)
	g.registerStreamVertex(v1, f1)
	g.registerStreamVertex(v2, f2)
	g.registerStreamVertex(v3, f3)
	g.addMeshTetrahedron(v0, v1, v2, v3)
	return nil
}

// ensurePath opens a fresh propagation for a mesh edge unless a chain with
// its tag already leaves the lower node.
func (g *Graph) ensurePath(n0, n1 int, tag LabelTag) {
	if g.findUpLabel(n0, tag) == nilID {
		g.addPath([]int{n0, n1}, tag)
	}
}

// addMeshTriangle zips the interior of one triangle. The two monotone
// boundary paths issued from the lowest vertex are identified up to the
// highest one, one shared edge at a time.
func (g *Graph) addMeshTriangle(v0, v1, v2 int64) {
	i0 := g.vertexStream[v0]
	i1 := g.vertexStream[v1]
	i2 := g.vertexStream[v2]
	n0 := g.vertexMap[i0]
	n1 := g.vertexMap[i1]
	n2 := g.vertexMap[i2]

	// Oracle-ascending order.
	if g.isSmaller(n1, n0) {
		n0, n1 = n1, n0
		i0, i1 = i1, i0
	}
	if g.isSmaller(n2, n1) {
		n1, n2 = n2, n1
		i1, i2 = i2, i1
	}
	if g.isSmaller(n1, n0) {
		n0, n1 = n1, n0
		i0, i1 = i1, i0
	}

	tag01 := edgeTag(i0, i1)
	tag12 := edgeTag(i1, i2)
	tag02 := edgeTag(i0, i2)

	g.ensurePath(n0, n1, tag01)
	g.ensurePath(n1, n2, tag12)
	g.ensurePath(n0, n2, tag02)

	g.collapse(n0, n1, tag01, tag02)
	g.collapse(n1, n2, tag12, tag02)

	g.retire(i0)
	g.retire(i1)
	g.retire(i2)
}

// addMeshTetrahedron zips the four triangular faces of one tetrahedron. Each
// face identifies its two boundary paths exactly as a streamed triangle
// does; together the four faces also zip the arcs around the interior
// saddle edge.
func (g *Graph) addMeshTetrahedron(v0, v1, v2, v3 int64) {
	idx := [4]int{g.vertexStream[v0], g.vertexStream[v1], g.vertexStream[v2], g.vertexStream[v3]}
	var n [4]int
	for k, i := range idx {
		n[k] = g.vertexMap[i]
	}
	// Insertion sort into oracle-ascending order.
	for a := 1; a < 4; a++ {
		for b := a; b > 0 && g.isSmaller(n[b], n[b-1]); b-- {
			n[b], n[b-1] = n[b-1], n[b]
			idx[b], idx[b-1] = idx[b-1], idx[b]
		}
	}

	tag := func(a, b int) LabelTag { return edgeTag(idx[a], idx[b]) }
	for _, e := range [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}} {
		g.ensurePath(n[e[0]], n[e[1]], tag(e[0], e[1]))
	}

	// Face (0 1 2).
	g.collapse(n[0], n[1], tag(0, 1), tag(0, 2))
	g.collapse(n[1], n[2], tag(1, 2), tag(0, 2))
	// Face (0 1 3).
	g.collapse(n[0], n[1], tag(0, 1), tag(0, 3))
	g.collapse(n[1], n[3], tag(1, 3), tag(0, 3))
	// Face (0 2 3).
	g.collapse(n[0], n[2], tag(0, 2), tag(0, 3))
	g.collapse(n[2], n[3], tag(2, 3), tag(0, 3))
	// Face (1 2 3).
	g.collapse(n[1], n[2], tag(1, 2), tag(1, 3))
	g.collapse(n[2], n[3], tag(2, 3), tag(1, 3))

	for _, i := range idx {
		g.retire(i)
	}
}

// retire decrements a vertex's pending incidence count and finalizes the
// vertex when the count reaches zero. Counts seeded with 0 (streaming, total
// unknown) go negative and never trigger; CloseStream picks those up.
func (g *Graph) retire(streamIndex int) {
	g.pending[streamIndex]--
	if g.pending[streamIndex] == 0 {
		g.endVertex(g.vertexMap[streamIndex])
	}
}

// endVertex finalizes a vertex whose star is complete. A vertex that is
// locally regular is collapsed away on the spot; anything else is a
// confirmed critical point.
func (g *Graph) endVertex(n int) {
	nd := &g.nodes.buf[n]
	nd.finalized = true
	if g.isRegular(n) {
		g.vertexCollapse(n)
		return
	}
	nd.critical = true
}

// CloseStream finalizes the streaming computation: every vertex the
// incidence counters did not retire is finalized now, and the loops of the
// finished graph are identified. After this call no further simplices can be
// streamed; to keep streaming, DeepCopy first and close the copy.
func (g *Graph) CloseStream() {
	if g.streamClosed {
		panic("reeb: CloseStream called twice")
	}
	for n := 1; n < len(g.nodes.buf); n++ {
		if g.nodes.cleared(n) || g.nodes.buf[n].finalized {
			continue
		}
		g.endVertex(n)
	}
	g.streamClosed = true
	g.findLoops()
}

// assertClosed guards the operations that are only valid on a closed stream.
func (g *Graph) assertClosed(op string) {
	if !g.streamClosed {
		panic(fmt.Sprintf("reeb: %s before CloseStream", op))
	}
}
