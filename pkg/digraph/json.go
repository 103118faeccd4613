package digraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// fileGraph is the node-link JSON wire format. Nodes and arcs keep their
// insertion order, which the committer already makes deterministic.
type fileGraph struct {
	Nodes []Node `json:"nodes"`
	Arcs  []Arc  `json:"arcs"`
}

// Marshal converts a graph to JSON bytes.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a graph.
func Unmarshal(data []byte) (*Graph, error) {
	return Read(bytes.NewReader(data))
}

// Write encodes a graph as indented JSON to w.
func Write(g *Graph, w io.Writer) error {
	out := fileGraph{Nodes: g.Nodes(), Arcs: g.Arcs()}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// Read decodes a JSON graph from r. Returns the underlying structural error
// when the data violates graph constraints.
func Read(r io.Reader) (*Graph, error) {
	var data fileGraph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	g := New()
	for _, n := range data.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("add node %d: %w", n.ID, err)
		}
	}
	for _, a := range data.Arcs {
		if _, err := g.AddArc(a.From, a.To, a.Region); err != nil {
			return nil, fmt.Errorf("add arc %d->%d: %w", a.From, a.To, err)
		}
	}
	return g, nil
}

// WriteFile writes a graph to a JSON file, created with os.Create (mode 0666
// before umask).
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(g, f)
}

// ReadFile reads a JSON file and returns the decoded graph.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
