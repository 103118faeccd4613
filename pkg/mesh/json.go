package mesh

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Mesh kinds in the file format.
const (
	KindSurface = "surface"
	KindVolume  = "volume"
)

// ErrUnknownKind is returned when a mesh file declares a kind other than
// "surface" or "volume".
var ErrUnknownKind = errors.New(`mesh kind must be "surface" or "volume"`)

// fileMesh is the JSON wire format for meshes. Fields are an ordered array
// rather than an object, so array indices survive the round trip.
type fileMesh struct {
	Kind     string      `json:"kind"`
	Vertices int         `json:"vertices"`
	Cells    [][]int64   `json:"cells"`
	Fields   []fileField `json:"fields,omitempty"`
}

type fileField struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// ReadFile reads a mesh JSON file and returns a *Surface or *Volume
// depending on the declared kind.
func ReadFile(path string) (Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a mesh from JSON.
func Read(r io.Reader) (Mesh, error) {
	var fm fileMesh
	if err := json.NewDecoder(r).Decode(&fm); err != nil {
		return nil, fmt.Errorf("decode mesh: %w", err)
	}

	var data PointData
	for _, fd := range fm.Fields {
		data.Add(fd.Name, fd.Values)
	}

	switch fm.Kind {
	case KindSurface:
		return &Surface{Vertices: fm.Vertices, Cells: fm.Cells, Data: data}, nil
	case KindVolume:
		return &Volume{Vertices: fm.Vertices, Cells: fm.Cells, Data: data}, nil
	default:
		return nil, fmt.Errorf("%w: got %q", ErrUnknownKind, fm.Kind)
	}
}

// WriteFile writes a mesh as JSON. The file is created with os.Create (mode
// 0666 before umask).
func WriteFile(m Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(m, f)
}

// Write encodes a mesh as indented JSON.
func Write(m Mesh, w io.Writer) error {
	fm := fileMesh{
		Vertices: m.NumberOfVertices(),
	}
	switch m.(type) {
	case *Surface:
		fm.Kind = KindSurface
	case *Volume:
		fm.Kind = KindVolume
	default:
		return fmt.Errorf("%w: %T", ErrUnknownKind, m)
	}
	for i := 0; i < m.NumberOfCells(); i++ {
		fm.Cells = append(fm.Cells, m.Cell(i))
	}
	pd := m.PointData()
	for i := 0; i < pd.Len(); i++ {
		arr, _ := pd.ByIndex(i)
		fm.Fields = append(fm.Fields, fileField{Name: arr.Name, Values: arr.Values})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fm); err != nil {
		return fmt.Errorf("encode mesh: %w", err)
	}
	return nil
}
