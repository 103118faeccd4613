package digraph

import (
	"bytes"
	"fmt"
)

// ToDOT converts a graph to Graphviz DOT format. Nodes are labeled with
// their mesh vertex id and scalar value; the layout ranks bottom-up so that
// minima sit at the bottom, matching the scalar axis.
func ToDOT(g *Graph) string {
	var buf bytes.Buffer
	buf.WriteString("digraph reeb {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmt.Sprintf("v%d\\n%.4g", n.VertexID, n.Value)
		fmt.Fprintf(&buf, "  n%d [label=\"%s\"];\n", n.ID, label)
	}

	buf.WriteString("\n")
	for _, a := range g.Arcs() {
		if len(a.Region) > 0 {
			fmt.Fprintf(&buf, "  n%d -> n%d [label=\"%d\"];\n", a.From, a.To, len(a.Region))
			continue
		}
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", a.From, a.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}
