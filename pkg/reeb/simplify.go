package reeb

import (
	"container/heap"
	"slices"

	"github.com/crest-tools/crest/pkg/digraph"
)

// reebPath is a candidate monotone path considered during simplification.
// nodes has one more entry than arcs and runs in search order: ascending for
// branches rooted at a minimum, descending for branches rooted at a maximum.
type reebPath struct {
	value float64
	arcs  []int
	nodes []int
}

// less orders candidate paths by (simplification value, arc count, last node
// handle). The third key keeps the search deterministic when distinct paths
// tie on both value and length.
func (p reebPath) less(q reebPath) bool {
	if p.value != q.value {
		return p.value < q.value
	}
	if len(p.arcs) != len(q.arcs) {
		return len(p.arcs) < len(q.arcs)
	}
	return p.nodes[len(p.nodes)-1] < q.nodes[len(q.nodes)-1]
}

type pathHeap []reebPath

func (h pathHeap) Len() int            { return len(h) }
func (h pathHeap) Less(i, j int) bool  { return h[i].less(h[j]) }
func (h pathHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pathHeap) Push(x interface{}) { *h = append(*h, x.(reebPath)) }
func (h *pathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	p := old[n-1]
	*h = old[:n-1]
	return p
}

// pathValue scores a path whose extremal endpoint is first and whose far end
// is last in p.nodes.
func (g *Graph) pathValue(p reebPath, metric Metric) float64 {
	lo := p.nodes[0]
	hi := p.nodes[len(p.nodes)-1]
	arcs := p.arcs
	if g.isSmaller(hi, lo) {
		lo, hi = hi, lo
		// Descending search: hand the metric its arcs bottom-up.
		arcs = slices.Clone(p.arcs)
		slices.Reverse(arcs)
	}
	if metric != nil {
		return metric.ComputeMetric(g, lo, hi, arcs)
	}
	s := g.span()
	if s == 0 {
		return 0
	}
	return (g.nodes.buf[hi].value - g.nodes.buf[lo].value) / s
}

// findPath searches, best first, for the cheapest monotone ascending path
// that starts with the given arc and reaches a node where a second down-path
// joins. Candidates are expanded by following up-arcs and ordered by the
// (value, arc count, last node) comparator; a path is returned only if its
// value lies below the threshold and every interior node is a plain regular
// chain node, so that removing the path cannot strand another branch.
func (g *Graph) findPath(arcID int, threshold float64, metric Metric) (reebPath, bool) {
	base := reebPath{
		arcs:  []int{arcID},
		nodes: []int{g.arcs.buf[arcID].node0, g.arcs.buf[arcID].node1},
	}
	base.value = g.pathValue(base, metric)

	h := pathHeap{base}
	seen := map[int]bool{arcID: true}

	for h.Len() > 0 {
		p := heap.Pop(&h).(reebPath)
		if p.value >= threshold {
			break
		}
		last := p.nodes[len(p.nodes)-1]
		if g.downDegree(last) >= 2 {
			if g.interiorRegular(p) {
				return p, true
			}
			continue
		}
		for a := g.nodes.buf[last].arcUp; a != nilID; a = g.arcs.buf[a].arcDw0 {
			if seen[a] {
				continue
			}
			seen[a] = true
			next := reebPath{
				arcs:  append(slices.Clone(p.arcs), a),
				nodes: append(slices.Clone(p.nodes), g.arcs.buf[a].node1),
			}
			next.value = g.pathValue(next, metric)
			heap.Push(&h, next)
		}
	}
	return reebPath{}, false
}

// findPathDown is the descending mirror of findPath, used for branches
// hanging from a maximum: candidates follow down-arcs and stop where a
// second up-path joins.
func (g *Graph) findPathDown(arcID int, threshold float64, metric Metric) (reebPath, bool) {
	base := reebPath{
		arcs:  []int{arcID},
		nodes: []int{g.arcs.buf[arcID].node1, g.arcs.buf[arcID].node0},
	}
	base.value = g.pathValue(base, metric)

	h := pathHeap{base}
	seen := map[int]bool{arcID: true}

	for h.Len() > 0 {
		p := heap.Pop(&h).(reebPath)
		if p.value >= threshold {
			break
		}
		last := p.nodes[len(p.nodes)-1]
		if g.upDegree(last) >= 2 {
			if g.interiorRegular(p) {
				return p, true
			}
			continue
		}
		for a := g.nodes.buf[last].arcDown; a != nilID; a = g.arcs.buf[a].arcDw1 {
			if seen[a] {
				continue
			}
			seen[a] = true
			next := reebPath{
				arcs:  append(slices.Clone(p.arcs), a),
				nodes: append(slices.Clone(p.nodes), g.arcs.buf[a].node0),
			}
			next.value = g.pathValue(next, metric)
			heap.Push(&h, next)
		}
	}
	return reebPath{}, false
}

// interiorRegular reports whether every node strictly inside the path has
// exactly one arc on each side.
func (g *Graph) interiorRegular(p reebPath) bool {
	for _, n := range p.nodes[1 : len(p.nodes)-1] {
		if g.downDegree(n) != 1 || g.upDegree(n) != 1 {
			return false
		}
	}
	return true
}

// simplifyBranches repeatedly cancels the least important branch below the
// threshold: the cheapest monotone path from a leaf extremum to the node
// where it merges back into the rest of the graph. Returns the number of
// arcs removed. Iteration terminates because every cancellation strictly
// decreases the arc count.
func (g *Graph) simplifyBranches(threshold float64, metric Metric) int {
	removed := 0
	for {
		var best reebPath
		found := false
		for n := 1; n < len(g.nodes.buf); n++ {
			if g.nodes.cleared(n) {
				continue
			}
			nd := &g.nodes.buf[n]
			if nd.arcDown == nilID && nd.arcUp != nilID && g.arcs.buf[nd.arcUp].arcDw0 == nilID {
				// Leaf minimum.
				if p, ok := g.findPath(nd.arcUp, threshold, metric); ok && (!found || p.less(best)) {
					best, found = p, true
				}
			}
			if nd.arcUp == nilID && nd.arcDown != nilID && g.arcs.buf[nd.arcDown].arcDw1 == nilID {
				// Leaf maximum.
				if p, ok := g.findPathDown(nd.arcDown, threshold, metric); ok && (!found || p.less(best)) {
					best, found = p, true
				}
			}
		}
		if !found {
			break
		}
		removed += g.cancelPath(best)
	}
	return removed
}

// cancelPath removes every arc of a branch and frees the nodes it strands.
// The join node at the far end keeps its remaining arcs.
func (g *Graph) cancelPath(p reebPath) int {
	if g.historyOn {
		c := Cancellation{}
		for _, a := range p.arcs {
			ar := &g.arcs.buf[a]
			c.RemovedArcs = append(c.RemovedArcs, [2]int64{
				g.nodes.buf[ar.node0].vertexID,
				g.nodes.buf[ar.node1].vertexID,
			})
		}
		g.history = append(g.history, c)
	}
	for _, a := range p.arcs {
		g.fastArcSimplify(a)
	}
	return len(p.arcs)
}

// fastArcSimplify deletes one arc and any endpoint left without incident
// arcs.
func (g *Graph) fastArcSimplify(a int) {
	n0 := g.arcs.buf[a].node0
	n1 := g.arcs.buf[a].node1
	g.removeUpArc(n0, a)
	g.removeDownArc(n1, a)

	for l := g.arcs.buf[a].label0; l != nilID; {
		next := g.labels.buf[l].hNext
		g.unlinkVertical(l)
		g.labels.release(l)
		l = next
	}
	g.arcs.release(a)

	if g.nodes.buf[n0].arcDown == nilID && g.nodes.buf[n0].arcUp == nilID {
		g.nodes.release(n0)
	}
	if g.nodes.buf[n1].arcDown == nilID && g.nodes.buf[n1].arcUp == nilID {
		g.nodes.release(n1)
	}
}

// simplifyLoops removes the closing arc of every recorded loop whose value
// lies below the threshold.
func (g *Graph) simplifyLoops(threshold float64, metric Metric) int {
	removed := 0
	for _, a := range g.arcLoopTable {
		if g.arcs.cleared(a) {
			continue
		}
		value := g.persistence(a)
		if metric != nil {
			value = metric.ComputeMetric(g, g.arcs.buf[a].node0, g.arcs.buf[a].node1, []int{a})
		}
		if value >= threshold {
			continue
		}
		if g.historyOn {
			g.history = append(g.history, Cancellation{RemovedArcs: [][2]int64{{
				g.nodes.buf[g.arcs.buf[a].node0].vertexID,
				g.nodes.buf[g.arcs.buf[a].node1].vertexID,
			}}})
		}
		g.fastArcSimplify(a)
		g.removedLoops++
		removed++
	}
	return removed
}

// Simplify removes every feature whose importance lies strictly below the
// threshold, then commits the result: loops first, then branches, then
// regular-node elision and the flattening into the exported directed graph.
// The threshold is a fraction of the scalar field's global span, from 0 (no
// simplification) to 1 (maximal simplification). A nil metric selects
// persistence; a custom Metric replaces the importance measure. Returns the
// number of arcs removed.
//
// Simplify panics if the stream has not been closed.
func (g *Graph) Simplify(threshold float64, metric Metric) int {
	g.assertClosed("Simplify")
	removed := g.simplifyLoops(threshold, metric)
	removed += g.simplifyBranches(threshold, metric)
	g.commitSimplification()
	return removed
}

// commitSimplification elides the remaining degree-(1, 1) nodes and flattens
// the arc and node sets into the exported directed-graph container, with the
// mesh vertex id and scalar value attached per node and the sorted region
// vertex list attached per arc.
func (g *Graph) commitSimplification() {
	g.flushLabels()

	for n := 1; n < len(g.nodes.buf); n++ {
		if g.nodes.cleared(n) {
			continue
		}
		nd := &g.nodes.buf[n]
		if nd.arcDown != nilID && g.arcs.buf[nd.arcDown].arcDw1 == nilID &&
			nd.arcUp != nilID && g.arcs.buf[nd.arcUp].arcDw0 == nilID {
			nd.critical = false
			g.vertexCollapse(n)
		}
	}

	g.components = g.countComponents()

	out := digraph.New()
	exported := make(map[int]int, g.nodes.num)
	next := 0
	for n := 1; n < len(g.nodes.buf); n++ {
		if g.nodes.cleared(n) {
			continue
		}
		exported[n] = next
		out.AddNode(digraph.Node{
			ID:       next,
			VertexID: g.nodes.buf[n].vertexID,
			Value:    g.nodes.buf[n].value,
		})
		next++
	}
	for a := 1; a < len(g.arcs.buf); a++ {
		if g.arcs.cleared(a) {
			continue
		}
		ar := &g.arcs.buf[a]
		region := slices.Clone(ar.region)
		slices.SortFunc(region, func(x, y int64) int {
			fx, fy := g.scalarField[x], g.scalarField[y]
			if fx != fy {
				if fx < fy {
					return -1
				}
				return 1
			}
			if x < y {
				return -1
			}
			if x > y {
				return 1
			}
			return 0
		})
		out.AddArc(exported[ar.node0], exported[ar.node1], region)
	}
	g.committed = out
}
