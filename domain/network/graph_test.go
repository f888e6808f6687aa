package network

import (
	"testing"

	"gocorrnet/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddEdge(t *testing.T) {
	g := NewGraph()

	assert.True(t, g.AddEdge("A", "B"))
	assert.False(t, g.AddEdge("A", "B"), "repeated edge is a no-op")
	assert.False(t, g.AddEdge("B", "A"), "reversed edge is the same edge")
	assert.False(t, g.AddEdge("C", "C"), "self-loops are ignored")

	assert.Equal(t, 2, g.NodeCount())
	assert.Equal(t, 1, g.EdgeCount())
	assert.False(t, g.HasNode("C"), "a skipped self-loop adds no node")
	assert.True(t, g.HasEdge("B", "A"))
	assert.False(t, g.HasEdge("A", "C"))
}

func TestGraph_NodesAndEdgesSorted(t *testing.T) {
	g := NewGraph()
	g.AddEdge("otu_3", "otu_1")
	g.AddEdge("otu_2", "otu_1")
	g.AddEdge("otu_4", "otu_5")

	assert.Equal(t, []core.FeatureID{"otu_1", "otu_2", "otu_3", "otu_4", "otu_5"}, g.Nodes())
	assert.Equal(t, []Edge{
		{A: "otu_1", B: "otu_2"},
		{A: "otu_1", B: "otu_3"},
		{A: "otu_4", B: "otu_5"},
	}, g.Edges())
	assert.Equal(t, []core.FeatureID{"otu_2", "otu_3"}, g.Neighbors("otu_1"))
	assert.Nil(t, g.Neighbors("otu_9"))
	assert.Equal(t, 2, g.Degree("otu_1"))
	assert.Equal(t, 0, g.Degree("otu_9"))
}

func TestGraph_Components(t *testing.T) {
	g := NewGraph()
	g.AddEdge("d", "e")
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")

	assert.Equal(t, [][]core.FeatureID{{"a", "b", "c"}, {"d", "e"}}, g.Components())
}

func TestGraph_Summary(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("a", "c")
	g.AddEdge("d", "e")

	s := g.Summary()
	assert.Equal(t, 5, s.Nodes)
	assert.Equal(t, 4, s.Edges)
	assert.InDelta(t, 0.4, s.Density, 1e-12)
	assert.Equal(t, 2, s.Components)
	assert.Equal(t, 2, s.MaxDegree)

	empty := NewGraph().Summary()
	assert.Equal(t, Summary{}, empty)
}

func TestGraph_Undirected(t *testing.T) {
	g := NewGraph()
	g.AddEdge("a", "b")

	u := g.Undirected()
	nodes := u.Nodes()
	require.Equal(t, 2, nodes.Len())
	for nodes.Next() {
		label, ok := g.Label(nodes.Node().ID())
		assert.True(t, ok)
		assert.True(t, g.HasNode(label))
	}

	_, ok := g.Label(99)
	assert.False(t, ok)
}

func TestNewEdge_OrdersEndpoints(t *testing.T) {
	assert.Equal(t, Edge{A: "a", B: "b"}, NewEdge("b", "a"))
	assert.Equal(t, NewEdge("x", "y"), NewEdge("y", "x"))
}
