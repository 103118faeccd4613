package mesh

// Array is a named scalar field with one value per mesh vertex.
type Array struct {
	Name   string
	Values []float64
}

// PointData is the ordered list of named per-vertex scalar arrays attached
// to a mesh. Arrays are addressable by position or by name.
type PointData struct {
	arrays []Array
}

// Add appends a named array. Names are not required to be unique; ByName
// returns the first match.
func (pd *PointData) Add(name string, values []float64) {
	pd.arrays = append(pd.arrays, Array{Name: name, Values: values})
}

// Len returns the number of arrays.
func (pd *PointData) Len() int { return len(pd.arrays) }

// ByIndex returns the array at the given position.
func (pd *PointData) ByIndex(i int) (*Array, bool) {
	if i < 0 || i >= len(pd.arrays) {
		return nil, false
	}
	return &pd.arrays[i], true
}

// ByName returns the first array with the given name.
func (pd *PointData) ByName(name string) (*Array, bool) {
	for i := range pd.arrays {
		if pd.arrays[i].Name == name {
			return &pd.arrays[i], true
		}
	}
	return nil, false
}

// Mesh is the read surface shared by surface and volume containers.
type Mesh interface {
	NumberOfVertices() int
	NumberOfCells() int
	// Cell returns the vertex ids of one cell. The returned slice must be
	// treated as read-only.
	Cell(i int) []int64
	PointData() *PointData
}

// Surface is a triangle mesh. Cells may carry any number of vertices so that
// non-simplicial inputs are representable; consumers that require triangles
// reject other cells.
type Surface struct {
	Vertices int
	Cells    [][]int64
	Data     PointData
}

// NumberOfVertices returns the vertex count.
func (s *Surface) NumberOfVertices() int { return s.Vertices }

// NumberOfCells returns the cell count.
func (s *Surface) NumberOfCells() int { return len(s.Cells) }

// Cell returns the vertex ids of one cell.
func (s *Surface) Cell(i int) []int64 { return s.Cells[i] }

// PointData returns the per-vertex arrays.
func (s *Surface) PointData() *PointData { return &s.Data }

// AddTriangle appends one triangle.
func (s *Surface) AddTriangle(v0, v1, v2 int64) {
	s.Cells = append(s.Cells, []int64{v0, v1, v2})
}

// Volume is a tetrahedral mesh, with the same open cell representation as
// Surface.
type Volume struct {
	Vertices int
	Cells    [][]int64
	Data     PointData
}

// NumberOfVertices returns the vertex count.
func (v *Volume) NumberOfVertices() int { return v.Vertices }

// NumberOfCells returns the cell count.
func (v *Volume) NumberOfCells() int { return len(v.Cells) }

// Cell returns the vertex ids of one cell.
func (v *Volume) Cell(i int) []int64 { return v.Cells[i] }

// PointData returns the per-vertex arrays.
func (v *Volume) PointData() *PointData { return &v.Data }

// AddTetrahedron appends one tetrahedron.
func (v *Volume) AddTetrahedron(v0, v1, v2, v3 int64) {
	v.Cells = append(v.Cells, []int64{v0, v1, v2, v3})
}
