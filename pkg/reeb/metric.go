package reeb

// Metric scores a candidate feature during simplification. Implementations
// receive the endpoints of the concatenated monotone path under evaluation
// (downNode below upNode in the graph's order) together with its arc
// handles, ordered bottom-up, and return an importance value in [0, 1].
// Features scoring below the simplification threshold are removed.
//
// A nil Metric selects the default strategy: the persistence of the feature,
// the scalar span of the path as a fraction of the field's global span.
type Metric interface {
	ComputeMetric(g *Graph, downNode, upNode int, arcs []int) float64
}
