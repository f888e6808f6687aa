// Package network defines the undirected feature graph produced from a
// pairwise correlation table.
//
// A Graph is simple and unweighted: no self-loops, at most one edge per
// unordered feature pair. Nodes exist only as endpoints of edges; a
// feature without a qualifying edge is absent rather than isolated.
package network

import (
	"slices"
	"strings"

	"gocorrnet/domain/core"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Edge is an undirected edge with endpoints in lexical order (A < B)
type Edge struct {
	A core.FeatureID
	B core.FeatureID
}

// NewEdge orders the endpoints of an edge
func NewEdge(x, y core.FeatureID) Edge {
	if y < x {
		x, y = y, x
	}
	return Edge{A: x, B: y}
}

// Graph is an undirected simple graph over feature identifiers
type Graph struct {
	g      *simple.UndirectedGraph
	ids    map[core.FeatureID]int64
	labels map[int64]core.FeatureID
}

// Summary holds rudimentary network statistics
type Summary struct {
	Nodes      int
	Edges      int
	Density    float64 // edges over possible edges among present nodes
	Components int     // connected components
	MaxDegree  int
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		g:      simple.NewUndirectedGraph(),
		ids:    make(map[core.FeatureID]int64),
		labels: make(map[int64]core.FeatureID),
	}
}

// AddEdge connects x and y, adding either endpoint as needed. It reports
// whether a new edge was added: repeating an edge is a no-op and a
// self-loop is ignored.
func (n *Graph) AddEdge(x, y core.FeatureID) bool {
	if x == y {
		return false
	}
	u, v := n.node(x), n.node(y)
	if n.g.HasEdgeBetween(u.ID(), v.ID()) {
		return false
	}
	n.g.SetEdge(n.g.NewEdge(u, v))
	return true
}

func (n *Graph) node(id core.FeatureID) graph.Node {
	if nid, ok := n.ids[id]; ok {
		return n.g.Node(nid)
	}
	node := n.g.NewNode()
	n.g.AddNode(node)
	n.ids[id] = node.ID()
	n.labels[node.ID()] = id
	return node
}

// HasNode reports whether id is an endpoint of some edge
func (n *Graph) HasNode(id core.FeatureID) bool {
	_, ok := n.ids[id]
	return ok
}

// HasEdge reports whether x and y are adjacent, in either orientation
func (n *Graph) HasEdge(x, y core.FeatureID) bool {
	u, okU := n.ids[x]
	v, okV := n.ids[y]
	return okU && okV && n.g.HasEdgeBetween(u, v)
}

// NodeCount returns the number of nodes
func (n *Graph) NodeCount() int {
	return len(n.ids)
}

// EdgeCount returns the number of edges
func (n *Graph) EdgeCount() int {
	return n.g.Edges().Len()
}

// Nodes returns the node set in lexical order
func (n *Graph) Nodes() []core.FeatureID {
	out := make([]core.FeatureID, 0, len(n.ids))
	for id := range n.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Edges returns the edge set sorted by (A, B)
func (n *Graph) Edges() []Edge {
	out := make([]Edge, 0, n.EdgeCount())
	edges := n.g.Edges()
	for edges.Next() {
		e := edges.Edge()
		out = append(out, NewEdge(n.labels[e.From().ID()], n.labels[e.To().ID()]))
	}
	slices.SortFunc(out, compareEdges)
	return out
}

func compareEdges(a, b Edge) int {
	if c := strings.Compare(string(a.A), string(b.A)); c != 0 {
		return c
	}
	return strings.Compare(string(a.B), string(b.B))
}

// Neighbors returns the features adjacent to id in lexical order
func (n *Graph) Neighbors(id core.FeatureID) []core.FeatureID {
	nid, ok := n.ids[id]
	if !ok {
		return nil
	}
	var out []core.FeatureID
	from := n.g.From(nid)
	for from.Next() {
		out = append(out, n.labels[from.Node().ID()])
	}
	slices.Sort(out)
	return out
}

// Degree returns the number of edges incident to id
func (n *Graph) Degree(id core.FeatureID) int {
	nid, ok := n.ids[id]
	if !ok {
		return 0
	}
	return n.g.From(nid).Len()
}

// Components returns the connected components, each sorted, ordered by
// their first member
func (n *Graph) Components() [][]core.FeatureID {
	var out [][]core.FeatureID
	for _, component := range topo.ConnectedComponents(n.g) {
		members := make([]core.FeatureID, 0, len(component))
		for _, node := range component {
			members = append(members, n.labels[node.ID()])
		}
		slices.Sort(members)
		out = append(out, members)
	}
	slices.SortFunc(out, func(a, b []core.FeatureID) int {
		return strings.Compare(string(a[0]), string(b[0]))
	})
	return out
}

// Summary computes node and edge counts, density and component count
func (n *Graph) Summary() Summary {
	s := Summary{
		Nodes: n.NodeCount(),
		Edges: n.EdgeCount(),
	}
	if s.Nodes >= 2 {
		s.Density = 2 * float64(s.Edges) / float64(s.Nodes*(s.Nodes-1))
	}
	s.Components = len(topo.ConnectedComponents(n.g))
	for id := range n.ids {
		s.MaxDegree = max(s.MaxDegree, n.Degree(id))
	}
	return s
}

// Undirected exposes the underlying gonum graph for graph algorithms.
// Use Label to map its node IDs back to features.
func (n *Graph) Undirected() graph.Undirected {
	return n.g
}

// Label returns the feature of a node of the underlying graph
func (n *Graph) Label(nodeID int64) (core.FeatureID, bool) {
	id, ok := n.labels[nodeID]
	return id, ok
}
