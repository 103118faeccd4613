// Package digraph is the export container for committed Reeb graphs: a
// directed multigraph over the surviving critical points, with the mesh
// vertex id and scalar value per node and the sorted region vertex list per
// arc.
//
// The package also defines the node-link JSON wire format used for files,
// the HTTP API and the caches, and a DOT exporter feeding the Graphviz
// renderer.
//
// All functions are safe for concurrent reads but not concurrent writes.
package digraph
