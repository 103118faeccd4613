package reeb

import (
	"maps"
	"slices"
)

// DeepCopy returns an independent snapshot of the graph: all tables, maps
// and accumulators are cloned, and the copy shares no state with the
// original. Snapshotting mid-stream is the supported way to inspect a
// streaming computation: deep copy, then CloseStream on the copy.
func (g *Graph) DeepCopy() *Graph {
	c := &Graph{
		nodes:        nodeTable{buf: slices.Clone(g.nodes.buf), free: g.nodes.free, num: g.nodes.num},
		arcs:         arcTable{buf: slices.Clone(g.arcs.buf), free: g.arcs.free, num: g.arcs.num},
		labels:       labelTable{buf: slices.Clone(g.labels.buf), free: g.labels.free, num: g.labels.num},
		vertexStream: maps.Clone(g.vertexStream),
		vertexMap:    slices.Clone(g.vertexMap),
		pending:      slices.Clone(g.pending),
		scalarField:  maps.Clone(g.scalarField),
		minValue:     g.minValue,
		maxValue:     g.maxValue,
		arcLoopTable: slices.Clone(g.arcLoopTable),
		removedLoops: g.removedLoops,
		components:   g.components,
		streamClosed: g.streamClosed,
		historyOn:    g.historyOn,
	}
	// Slices nested inside cloned records need their own backing arrays.
	for i := range c.arcs.buf {
		c.arcs.buf[i].region = slices.Clone(c.arcs.buf[i].region)
	}
	c.history = make([]Cancellation, len(g.history))
	for i, h := range g.history {
		c.history[i] = Cancellation{
			RemovedArcs:  slices.Clone(h.RemovedArcs),
			InsertedArcs: slices.Clone(h.InsertedArcs),
		}
	}
	if g.committed != nil {
		c.committed = g.committed.Clone()
	}
	return c
}
