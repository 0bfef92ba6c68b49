// Package graph implements the dynamic, neighbor-list-maintaining
// undirected graph (at most one edge per node pair) used as the
// circuit's connectivity model
// (NeighborGraph), and the frozen, dense-indexed snapshot used to drive
// the flow simulation (CompactGraph / CompactGraphState).
package graph

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/circuitflow/canonmap"
)

type nodeEntry[NodeId comparable, Node any] struct {
	value     Node
	neighbors []NodeId
}

// NeighborGraph is an undirected graph keyed by NodeId, carrying a Node
// payload per node and an Edge payload per undirected pair. Each node's
// neighbor list is a redundant, always-consistent projection of the
// edge set, kept up to date by AddEdge/RemoveEdge/RemoveNode.
type NeighborGraph[NodeId comparable, Node any, Edge any] struct {
	less  func(a, b NodeId) bool
	nodes map[NodeId]*nodeEntry[NodeId, Node]
	edges *canonmap.Map[NodeId, Edge]
}

// New creates an empty NeighborGraph. less provides the total order
// canonmap uses to key undirected edges.
func New[NodeId comparable, Node any, Edge any](less func(a, b NodeId) bool) *NeighborGraph[NodeId, Node, Edge] {
	return &NeighborGraph[NodeId, Node, Edge]{
		less:  less,
		nodes: make(map[NodeId]*nodeEntry[NodeId, Node]),
		edges: canonmap.New[NodeId, Edge](less),
	}
}

// NumNodes returns the number of nodes in the graph.
func (g *NeighborGraph[NodeId, Node, Edge]) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of edges in the graph.
func (g *NeighborGraph[NodeId, Node, Edge]) NumEdges() int {
	return g.edges.Len()
}

// AddNode inserts a new node. It is a programmer error to add a node
// whose id already exists.
func (g *NeighborGraph[NodeId, Node, Edge]) AddNode(id NodeId, value Node) {
	if _, ok := g.nodes[id]; ok {
		chk.Panic("AddNode: node %v already exists", id)
	}
	g.nodes[id] = &nodeEntry[NodeId, Node]{value: value}
}

// GetNode returns the payload stored for id, if any.
func (g *NeighborGraph[NodeId, Node, Edge]) GetNode(id NodeId) (Node, bool) {
	e, ok := g.nodes[id]
	if !ok {
		var zero Node
		return zero, false
	}
	return e.value, true
}

// GetNeighbors returns the list of node ids adjacent to id.
func (g *NeighborGraph[NodeId, Node, Edge]) GetNeighbors(id NodeId) ([]NodeId, bool) {
	e, ok := g.nodes[id]
	if !ok {
		return nil, false
	}
	return e.neighbors, true
}

// RemoveNode deletes id and every edge incident to it, returning its
// payload and the list of nodes it was connected to.
func (g *NeighborGraph[NodeId, Node, Edge]) RemoveNode(id NodeId) (Node, []NodeId) {
	e, ok := g.nodes[id]
	if !ok {
		chk.Panic("RemoveNode: invalid NodeId %v", id)
	}
	neighbors := append([]NodeId(nil), e.neighbors...)
	for _, n := range neighbors {
		g.edges.Remove(id, n)
		other := g.nodes[n]
		other.neighbors = removeFromSlice(other.neighbors, id)
	}
	delete(g.nodes, id)
	return e.value, neighbors
}

// AddEdge inserts an edge between a and b. It is a programmer error for
// an edge between a and b to already exist, or for either id to be
// absent.
func (g *NeighborGraph[NodeId, Node, Edge]) AddEdge(a, b NodeId, edge Edge) {
	if _, ok := g.edges.Get(a, b); ok {
		chk.Panic("AddEdge: edge (%v,%v) already exists", a, b)
	}
	na, ok := g.nodes[a]
	if !ok {
		chk.Panic("AddEdge: invalid NodeId %v", a)
	}
	nb, ok := g.nodes[b]
	if !ok {
		chk.Panic("AddEdge: invalid NodeId %v", b)
	}
	g.edges.Set(a, b, edge)
	na.neighbors = append(na.neighbors, b)
	nb.neighbors = append(nb.neighbors, a)
}

// GetEdge returns the payload of the edge between a and b, if any.
func (g *NeighborGraph[NodeId, Node, Edge]) GetEdge(a, b NodeId) (Edge, bool) {
	return g.edges.Get(a, b)
}

// RemoveEdge deletes the edge between a and b and returns its payload.
// It is a programmer error if the edge does not exist.
func (g *NeighborGraph[NodeId, Node, Edge]) RemoveEdge(a, b NodeId) Edge {
	edge, ok := g.edges.Remove(a, b)
	if !ok {
		chk.Panic("RemoveEdge: no edge between %v and %v", a, b)
	}
	g.nodes[a].neighbors = removeFromSlice(g.nodes[a].neighbors, b)
	g.nodes[b].neighbors = removeFromSlice(g.nodes[b].neighbors, a)
	return edge
}

// Nodes calls f once per (id, payload) pair.
func (g *NeighborGraph[NodeId, Node, Edge]) Nodes(f func(id NodeId, value Node)) {
	for id, e := range g.nodes {
		f(id, e.value)
	}
}

// Edges calls f once per (a, b, payload) undirected edge.
func (g *NeighborGraph[NodeId, Node, Edge]) Edges(f func(a, b NodeId, edge Edge)) {
	g.edges.Iter(f)
}

// Subgraph returns a deep clone restricted to the given node ids and the
// edges whose both endpoints lie in that set.
func (g *NeighborGraph[NodeId, Node, Edge]) Subgraph(ids map[NodeId]bool) *NeighborGraph[NodeId, Node, Edge] {
	sub := New[NodeId, Node, Edge](g.less)
	for id, e := range g.nodes {
		if !ids[id] {
			continue
		}
		var neighbors []NodeId
		for _, n := range e.neighbors {
			if ids[n] {
				neighbors = append(neighbors, n)
			}
		}
		sub.nodes[id] = &nodeEntry[NodeId, Node]{value: e.value, neighbors: neighbors}
	}
	g.edges.Iter(func(a, b NodeId, edge Edge) {
		if ids[a] && ids[b] {
			sub.edges.Set(a, b, edge)
		}
	})
	return sub
}

// Clone returns a deep copy of g.
func (g *NeighborGraph[NodeId, Node, Edge]) Clone() *NeighborGraph[NodeId, Node, Edge] {
	c := New[NodeId, Node, Edge](g.less)
	for id, e := range g.nodes {
		c.nodes[id] = &nodeEntry[NodeId, Node]{
			value:     e.value,
			neighbors: append([]NodeId(nil), e.neighbors...),
		}
	}
	g.edges.Iter(func(a, b NodeId, edge Edge) {
		c.edges.Set(a, b, edge)
	})
	return c
}

func removeFromSlice[T comparable](s []T, v T) []T {
	for i, x := range s {
		if x == v {
			return append(s[:i], s[i+1:]...)
		}
	}
	chk.Panic("removeFromSlice: value not found")
	return s
}
