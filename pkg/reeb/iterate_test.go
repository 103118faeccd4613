package reeb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursor_SaturatesAtEndpoints(t *testing.T) {
	g := octahedron(t)

	c := g.NodeCursor()
	var seen []int
	prev := 0
	for {
		id := c.Next()
		if id == prev {
			break
		}
		prev = id
		seen = append(seen, id)
	}
	require.Len(t, seen, g.NumberOfNodes())

	// Saturated: Next keeps returning the last handle.
	last := seen[len(seen)-1]
	require.Equal(t, last, c.Next())
	require.Equal(t, last, c.Next())

	// Walking back reaches the first handle and saturates there.
	for i := 0; i < len(seen)+3; i++ {
		c.Prev()
	}
	require.Equal(t, seen[0], c.Prev())
}

func TestCursor_EmptyGraph(t *testing.T) {
	g := New()
	require.Equal(t, 0, g.NodeCursor().Next())
	require.Equal(t, 0, g.ArcCursor().Next())
}

func TestCursor_Independent(t *testing.T) {
	g := octahedron(t)
	c1 := g.NodeCursor()
	c2 := g.NodeCursor()
	first := c1.Next()
	c1.Next()
	// A second cursor starts from the beginning regardless of the first.
	require.Equal(t, first, c2.Next())
}
