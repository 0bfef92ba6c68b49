package graph

// CompactGraphState stores arbitrary per-node and per-edge state for a
// CompactGraph, indexed in parallel with its NodeIndex/EdgeIndex space.
type CompactGraphState[NodeState, EdgeState any] struct {
	nodes []NodeState
	edges []EdgeState
}

// NewCompactGraphState builds node/edge state vectors sized to match g,
// initializing each entry by mapping over the underlying NeighborGraph's
// original node/edge payloads. The callbacks run in the NeighborGraph's
// (unspecified) iteration order; each result is stored at its
// NodeIndex/EdgeIndex.
func NewCompactGraphState[NodeId comparable, Node any, Edge any, NodeState any, EdgeState any](
	g *NeighborGraph[NodeId, Node, Edge],
	compact *CompactGraph[NodeId],
	fNode func(id NodeId, node Node) NodeState,
	fEdge func(a, b NodeId, edge Edge) EdgeState,
) *CompactGraphState[NodeState, EdgeState] {

	nodes := make([]NodeState, compact.NumNodes())
	g.Nodes(func(id NodeId, node Node) {
		nodes[compact.NodeIndexOf(id)] = fNode(id, node)
	})

	edges := make([]EdgeState, compact.NumEdges())
	g.Edges(func(a, b NodeId, edge Edge) {
		edges[compact.EdgeIndexOf(a, b)] = fEdge(a, b, edge)
	})

	return &CompactGraphState[NodeState, EdgeState]{nodes: nodes, edges: edges}
}

// Node returns the state of node i.
func (s *CompactGraphState[NodeState, EdgeState]) Node(i NodeIndex) *NodeState {
	return &s.nodes[i]
}

// Edge returns the state of edge k.
func (s *CompactGraphState[NodeState, EdgeState]) Edge(k EdgeIndex) *EdgeState {
	return &s.edges[k]
}

// NumNodes returns the number of node-state entries.
func (s *CompactGraphState[NodeState, EdgeState]) NumNodes() int { return len(s.nodes) }

// NumEdges returns the number of edge-state entries.
func (s *CompactGraphState[NodeState, EdgeState]) NumEdges() int { return len(s.edges) }
