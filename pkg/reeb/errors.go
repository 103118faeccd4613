package reeb

import "errors"

var (
	// ErrIncorrectField is returned by the Build variants when the scalar
	// field does not have exactly one value per mesh vertex.
	ErrIncorrectField = errors.New("scalar field size does not match vertex count")

	// ErrNoSuchField is returned by the Build variants addressing a field by
	// index or name when no such field exists in the mesh point data.
	ErrNoSuchField = errors.New("no such scalar field")

	// ErrNotSimplicialMesh is returned by the Build variants when the mesh
	// contains a cell that is not a triangle (surface) or a tetrahedron
	// (volume). The graph is invalid afterwards and must be discarded.
	ErrNotSimplicialMesh = errors.New("mesh is not simplicial")
)

// Interop status codes matching the error taxonomy.
const (
	StatusOK                = 0
	StatusIncorrectField    = -1
	StatusNoSuchField       = -2
	StatusNotSimplicialMesh = -3
)

// Code maps a Build error to its numeric status code, with StatusOK for nil.
// Errors outside the Build taxonomy map to StatusIncorrectField.
func Code(err error) int {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrNoSuchField):
		return StatusNoSuchField
	case errors.Is(err, ErrNotSimplicialMesh):
		return StatusNotSimplicialMesh
	default:
		return StatusIncorrectField
	}
}
