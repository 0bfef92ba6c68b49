package graph

import (
	"sort"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/circuitflow/canonmap"
)

// NodeIndex and EdgeIndex are dense, zero-based indices into the
// parallel state vectors of a CompactGraphState.
type NodeIndex = int
type EdgeIndex = int

// NeighborEntry pairs a neighboring node with the edge connecting to it.
type NeighborEntry struct {
	Node NodeIndex
	Edge EdgeIndex
}

// CompactGraph is a frozen, dense-indexed snapshot of a NeighborGraph's
// structure: NodeIds and edge pairs are assigned NodeIndex/EdgeIndex
// values once, and all further structural lookups (neighbors, edge
// endpoints) are done through integer-indexed slices instead of map
// lookups. It carries no per-node/per-edge state of its own; see
// CompactGraphState for that.
type CompactGraph[NodeId comparable] struct {
	nodeIndex map[NodeId]NodeIndex
	edgeIndex *canonmap.Map[NodeId, EdgeIndex]
	neighbors [][]NeighborEntry
	edges     [][2]NodeIndex // (low, high), low < high
}

// NewCompactGraph builds a CompactGraph mirroring g's structure. Node
// ids are assigned indices in ascending order under less, giving
// deterministic, reproducible NodeIndex/EdgeIndex assignment across
// runs for the same circuit.
func NewCompactGraph[NodeId comparable, Node any, Edge any](
	g *NeighborGraph[NodeId, Node, Edge], less func(a, b NodeId) bool,
) *CompactGraph[NodeId] {

	var ids []NodeId
	g.Nodes(func(id NodeId, _ Node) {
		ids = append(ids, id)
	})
	sort.Slice(ids, func(i, j int) bool { return less(ids[i], ids[j]) })

	nodeIndex := make(map[NodeId]NodeIndex, len(ids))
	for _, i := range utl.IntRange(len(ids)) {
		nodeIndex[ids[i]] = i
	}

	neighbors := make([][]NeighborEntry, len(ids))
	var edgePairs [][2]NodeId
	edgeIndex := canonmap.New[NodeId, EdgeIndex](less)

	g.Edges(func(a, b NodeId, _ Edge) {
		edgePairs = append(edgePairs, [2]NodeId{a, b})
	})
	sort.Slice(edgePairs, func(i, j int) bool {
		ia, ja := nodeIndex[edgePairs[i][0]], nodeIndex[edgePairs[j][0]]
		if ia != ja {
			return ia < ja
		}
		return nodeIndex[edgePairs[i][1]] < nodeIndex[edgePairs[j][1]]
	})

	edges := make([][2]NodeIndex, 0, len(edgePairs))
	for k, pair := range edgePairs {
		a, b := nodeIndex[pair[0]], nodeIndex[pair[1]]
		if a == b {
			chk.Panic("NewCompactGraph: self-loop at node index %d", a)
		}
		low, high := a, b
		if low > high {
			low, high = high, low
		}
		edges = append(edges, [2]NodeIndex{low, high})
		edgeIndex.Set(pair[0], pair[1], k)

		neighbors[a] = append(neighbors[a], NeighborEntry{Node: b, Edge: k})
		neighbors[b] = append(neighbors[b], NeighborEntry{Node: a, Edge: k})
	}

	return &CompactGraph[NodeId]{
		nodeIndex: nodeIndex,
		edgeIndex: edgeIndex,
		neighbors: neighbors,
		edges:     edges,
	}
}

// NumNodes returns the number of nodes.
func (c *CompactGraph[NodeId]) NumNodes() int { return len(c.neighbors) }

// NumEdges returns the number of edges.
func (c *CompactGraph[NodeId]) NumEdges() int { return len(c.edges) }

// NodeIndexOf returns the dense index assigned to id.
func (c *CompactGraph[NodeId]) NodeIndexOf(id NodeId) NodeIndex {
	i, ok := c.nodeIndex[id]
	if !ok {
		chk.Panic("NodeIndexOf: unknown NodeId %v", id)
	}
	return i
}

// EdgeIndexOf returns the dense index assigned to the edge (a, b).
func (c *CompactGraph[NodeId]) EdgeIndexOf(a, b NodeId) EdgeIndex {
	i, ok := c.edgeIndex.Get(a, b)
	if !ok {
		chk.Panic("EdgeIndexOf: no edge between %v and %v", a, b)
	}
	return i
}

// Neighbors returns the (neighbor, edge) pairs incident to node i.
func (c *CompactGraph[NodeId]) Neighbors(i NodeIndex) []NeighborEntry {
	return c.neighbors[i]
}

// Edge returns the (low, high) endpoints of edge k, with low < high.
func (c *CompactGraph[NodeId]) Edge(k EdgeIndex) (low, high NodeIndex) {
	e := c.edges[k]
	return e[0], e[1]
}
