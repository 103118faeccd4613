// Package reeb computes Reeb graphs of piecewise-linear scalar fields on
// simplicial meshes, online.
//
// A Reeb graph is the quotient of a scalar field's domain by the equivalence
// "points in the same connected component of a level set". Its nodes are the
// critical points of the field (minima, maxima, saddles) and its arcs are
// the regions of the mesh where level-set connectivity does not change.
//
// # Construction
//
// Simplices are processed one at a time, either streamed:
//
//	g := reeb.New()
//	g.StreamTriangle(0, 0.0, 1, 1.0, 2, 2.0)
//	// ... more triangles ...
//	g.CloseStream()
//
// or in batch from a mesh container:
//
//	g := reeb.New()
//	if err := g.BuildByName(surface, "height"); err != nil { ... }
//
// Each new simplex opens propagation chains along its unseen edges and zips
// together the monotone paths issued from its lowest vertex. Batch builds
// pre-count incidences, so there a vertex whose star is complete is finalized
// on the fly: regular ones collapse away immediately, the rest are confirmed
// critical points. Streamed vertices carry no incidence total and are
// finalized by CloseStream. Comparisons between
// vertices use (value, vertex id) lexicographic order, so equal scalar
// values never produce degeneracies and repeated runs on the same input give
// identical results.
//
// # Simplification
//
// After CloseStream, Simplify removes every feature whose persistence (or a
// caller-supplied Metric) lies below a threshold, eliminates the loops below
// the threshold, and commits the result to a digraph.Graph container
// retrievable with Committed.
//
// All operations on a Graph are synchronous and must not be called
// concurrently on the same instance.
//
// The construction follows the online algorithm of Pascucci, Scorzelli,
// Bremer and Mascarenhas (SIGGRAPH 2007); the simplification follows the
// persistence-driven filtering of Tierny, Gyulassy, Simon and Pascucci
// (IEEE VIS 2009).
package reeb
