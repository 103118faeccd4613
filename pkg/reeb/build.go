package reeb

import "github.com/crest-tools/crest/pkg/mesh"

// Build constructs the Reeb graph of a scalar field defined on a surface
// mesh, processing every triangle once and closing the stream. The field
// must carry exactly one value per mesh vertex (ErrIncorrectField) and every
// cell must be a triangle (ErrNotSimplicialMesh). Build requires a fresh
// graph.
func (g *Graph) Build(m *mesh.Surface, field []float64) error {
	return g.build(m, field, 3)
}

// BuildByIndex is Build with the scalar field taken from the mesh point data
// by array index. Returns ErrNoSuchField when the index is out of range.
func (g *Graph) BuildByIndex(m *mesh.Surface, fieldID int) error {
	arr, ok := m.Data.ByIndex(fieldID)
	if !ok {
		return ErrNoSuchField
	}
	return g.Build(m, arr.Values)
}

// BuildByName is Build with the scalar field taken from the mesh point data
// by array name. Returns ErrNoSuchField when no array has that name.
func (g *Graph) BuildByName(m *mesh.Surface, name string) error {
	arr, ok := m.Data.ByName(name)
	if !ok {
		return ErrNoSuchField
	}
	return g.Build(m, arr.Values)
}

// BuildVolume constructs the Reeb graph of a scalar field defined on a
// tetrahedral volume mesh.
func (g *Graph) BuildVolume(m *mesh.Volume, field []float64) error {
	return g.build(m, field, 4)
}

// BuildVolumeByIndex is BuildVolume with the field addressed by array index.
func (g *Graph) BuildVolumeByIndex(m *mesh.Volume, fieldID int) error {
	arr, ok := m.Data.ByIndex(fieldID)
	if !ok {
		return ErrNoSuchField
	}
	return g.BuildVolume(m, arr.Values)
}

// BuildVolumeByName is BuildVolume with the field addressed by array name.
func (g *Graph) BuildVolumeByName(m *mesh.Volume, name string) error {
	arr, ok := m.Data.ByName(name)
	if !ok {
		return ErrNoSuchField
	}
	return g.BuildVolume(m, arr.Values)
}

func (g *Graph) build(m mesh.Mesh, field []float64, arity int) error {
	if g.streamClosed || g.nodes.num > 0 {
		panic("reeb: Build on a graph that is not fresh")
	}
	if len(field) != m.NumberOfVertices() {
		return ErrIncorrectField
	}

	cells := m.NumberOfCells()
	for c := 0; c < cells; c++ {
		if len(m.Cell(c)) != arity {
			return ErrNotSimplicialMesh
		}
	}

	// Pre-count vertex incidences so that vertices finalize as soon as their
	// star is complete, keeping the transient graph small.
	counts := make([]int, m.NumberOfVertices())
	for c := 0; c < cells; c++ {
		for _, v := range m.Cell(c) {
			counts[v]++
		}
	}

	for c := 0; c < cells; c++ {
		cell := m.Cell(c)
		for _, v := range cell {
			if _, seen := g.vertexStream[v]; !seen {
				g.addMeshVertex(v, field[v], counts[v])
			}
		}
		if arity == 3 {
			g.addMeshTriangle(cell[0], cell[1], cell[2])
		} else {
			g.addMeshTetrahedron(cell[0], cell[1], cell[2], cell[3])
		}
	}

	g.CloseStream()
	return nil
}
