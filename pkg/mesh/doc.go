// Package mesh provides the simplicial mesh containers consumed by the Reeb
// graph constructor: triangle surfaces, tetrahedral volumes and their named
// per-vertex scalar arrays, plus a JSON file format for both.
//
// Cells are stored as open vertex lists on purpose: a mesh with quads or
// other non-simplicial cells can be represented and is rejected by the
// consumer rather than at parse time, matching the builder's error contract.
package mesh
