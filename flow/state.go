// Package flow implements the per-tick numerical simulation that runs
// over a flattened circuit: component logic gating, a Cholesky-based
// pressure solve, velocity projection, and conservative load advection.
package flow

import (
	"sort"

	"github.com/cpmech/circuitflow/circuit"
	"github.com/cpmech/circuitflow/grid"
	"github.com/cpmech/circuitflow/graph"
)

// Cell is the per-node simulation state.
type Cell struct {
	Pressure      float64
	BoundPressure bool
	Load          float64
	OldLoad       float64
	InFlow        float64
	OutFlow       float64
	MutIdx        int // -1 when the node is not part of the current linear system

	// Enabled gates load injection at an input cell; the level harness
	// toggles it per tick to drive a bit onto an input wire while the
	// cell's bound pressure stays fixed at +100. Cells that are not
	// input cells never read it.
	Enabled bool
}

// Edge is the per-edge simulation state. Velocity and Flow are signed
// from the edge's lower-indexed endpoint to the higher one.
type Edge struct {
	Enabled     bool
	Velocity    float64
	OldVelocity float64
	Flow        float64
	Resistance  float64
}

// ComponentView mirrors one circuit Component: its element and the
// NodeIndices of its cells, in the element's cell order.
type ComponentView struct {
	Element circuit.Element
	Cells   []graph.NodeIndex
}

// State owns the frozen compact graph, parallel cell/edge state, and
// the index sets the level harness and component logic consult.
type State struct {
	Graph      *graph.CompactGraph[circuit.CellId]
	Cells      *graph.CompactGraphState[Cell, Edge]
	Components []ComponentView

	MutIdxToNodeIdx []graph.NodeIndex

	SourceCells []graph.NodeIndex
	SinkCells   []graph.NodeIndex
	InputCells  []graph.NodeIndex
	OutputCells []graph.NodeIndex
}

func cellIdLess(a, b circuit.CellId) bool {
	if a.Component != b.Component {
		return a.Component < b.Component
	}
	return a.Cell < b.Cell
}

// NewState builds a flow State from a flat (already unfolded) circuit.
func NewState(c *circuit.Circuit) *State {
	cg := graph.NewCompactGraph[circuit.CellId, grid.Coords, circuit.Edge](c.Graph, cellIdLess)

	s := &State{Graph: cg}

	s.Cells = graph.NewCompactGraphState[circuit.CellId, grid.Coords, circuit.Edge, Cell, Edge](
		c.Graph, cg,
		func(id circuit.CellId, _ grid.Coords) Cell {
			return Cell{MutIdx: -1}
		},
		func(_, _ circuit.CellId, _ circuit.Edge) Edge {
			return Edge{Enabled: true}
		},
	)

	ids := make([]circuit.ComponentId, 0, len(c.Components))
	for id := range c.Components {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		comp := c.Components[id]
		cells := make([]graph.NodeIndex, len(comp.Cells))
		for i := range comp.Cells {
			cells[i] = cg.NodeIndexOf(circuit.CellId{Component: id, Cell: i})
		}
		s.Components = append(s.Components, ComponentView{Element: comp.Element, Cells: cells})

		classifyComponent(s, comp, cells)
	}

	return s
}

func classifyComponent(s *State, comp circuit.Component, cells []graph.NodeIndex) {
	switch comp.Element.Kind {
	case circuit.KindSource:
		n := cells[0]
		cell := s.Cells.Node(n)
		cell.BoundPressure = true
		cell.Pressure = 100
		s.SourceCells = append(s.SourceCells, n)

	case circuit.KindSink:
		n := cells[0]
		s.Cells.Node(n).BoundPressure = true
		s.SinkCells = append(s.SinkCells, n)

	case circuit.KindSwitch:
		control := cells[0]
		s.Cells.Node(control).BoundPressure = true
		s.SinkCells = append(s.SinkCells, control)

	case circuit.KindInput:
		for _, n := range cells {
			cell := s.Cells.Node(n)
			cell.BoundPressure = true
			cell.Pressure = 100
			cell.Enabled = true
			s.InputCells = append(s.InputCells, n)
		}

	case circuit.KindOutput:
		for _, n := range cells {
			s.Cells.Node(n).BoundPressure = true
			s.OutputCells = append(s.OutputCells, n)
		}
	}
}
