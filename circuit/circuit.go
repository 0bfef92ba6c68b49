// Package circuit implements the editable grid circuit: the component
// catalog (element.go), the Circuit/Action algebra (circuit.go,
// action.go) and chip sub-circuit unfolding (chipdb.go).
package circuit

import (
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/circuitflow/grid"
	"github.com/cpmech/circuitflow/graph"
)

// Edge is the payload of a graph edge between two cells. The wire
// protocol carries no per-edge data of its own; it is purely a marker
// that a connection exists.
type Edge struct{}

// Circuit is the editable state of a grid circuit: a set of placed
// Components, the undirected cell-to-cell connectivity graph, and a
// redundant point index used for O(1) placement collision checks.
type Circuit struct {
	Components      map[ComponentId]Component
	Graph           *graph.NeighborGraph[CellId, grid.Coords, Edge]
	Points          map[grid.Coords]ComponentId
	NextComponentID ComponentId
}

// NewCircuit returns an empty circuit.
func NewCircuit() *Circuit {
	return &Circuit{
		Components: make(map[ComponentId]Component),
		Graph:      graph.New[CellId, grid.Coords, Edge](cellIdLess),
		Points:     make(map[grid.Coords]ComponentId),
	}
}

// componentAt returns the component (and its id) occupying pos, if any.
func (c *Circuit) componentAt(pos grid.Coords) (ComponentId, Component, bool) {
	id, ok := c.Points[pos]
	if !ok {
		return 0, Component{}, false
	}
	return id, c.Components[id], true
}

// cellAt resolves a lattice point to the CellId occupying it that
// admits an edge in direction dir, if any.
func (c *Circuit) cellAt(pos grid.Coords, dir grid.Dir) (CellId, bool) {
	id, comp, ok := c.componentAt(pos)
	if !ok {
		return CellId{}, false
	}
	i, ok := comp.CellAt(pos, dir)
	if !ok {
		return CellId{}, false
	}
	return CellId{Component: id, Cell: i}, true
}

// insertComponent assigns a fresh id to comp and registers its rect
// points, cells, and cell payloads. Does not check for collisions;
// callers must have already verified CanPerform.
func (c *Circuit) insertComponent(comp Component) ComponentId {
	id := c.NextComponentID
	c.NextComponentID++
	c.Components[id] = comp
	for _, p := range comp.Rect.Iter() {
		c.Points[p] = id
	}
	for i, p := range comp.Cells {
		c.Graph.AddNode(CellId{Component: id, Cell: i}, p)
	}
	return id
}

// removeComponent deletes a component, its rect points, its cell nodes,
// and every edge incident to those cells, returning the removed
// component and every incident edge (addressed positionally from the
// removed component's side, in no particular order).
func (c *Circuit) removeComponent(id ComponentId) (Component, []IncidentEdge) {
	comp, ok := c.Components[id]
	if !ok {
		chk.Panic("removeComponent: unknown ComponentId %v", id)
	}

	var incident []IncidentEdge
	for i, pos := range comp.Cells {
		cell := CellId{Component: id, Cell: i}
		neighbors, _ := c.Graph.GetNeighbors(cell)
		for _, n := range neighbors {
			edge, _ := c.Graph.GetEdge(cell, n)
			neighborPos := cellCoord(c, n)
			incident = append(incident, IncidentEdge{
				Pos: pos,
				Dir: grid.DirFromCoords(pos, neighborPos),
				E:   edge,
			})
		}
	}

	for i := range comp.Cells {
		c.Graph.RemoveNode(CellId{Component: id, Cell: i})
	}
	for _, p := range comp.Rect.Iter() {
		delete(c.Points, p)
	}
	delete(c.Components, id)

	return comp, incident
}

// IncidentEdge records, positionally, an edge that was incident to a
// component's cell at the time of removal, so undo can replay it with
// PlaceEdgeAtPos — CellId addressing would be unsafe here since the
// component on the other end may itself be freshly re-placed (and thus
// carry a different ComponentId) by the time the edge is replayed.
type IncidentEdge struct {
	Pos grid.Coords
	Dir grid.Dir
	E   Edge
}

// Subcircuit returns a new Circuit containing exactly the listed
// components and the subgraph of edges whose both endpoints lie within
// ids.
func (c *Circuit) Subcircuit(ids map[ComponentId]bool) *Circuit {
	sub := NewCircuit()
	cellSet := make(map[CellId]bool)
	for id := range ids {
		comp, ok := c.Components[id]
		if !ok {
			chk.Panic("Subcircuit: unknown ComponentId %v", id)
		}
		sub.Components[id] = comp
		for _, p := range comp.Rect.Iter() {
			sub.Points[p] = id
		}
		for i, p := range comp.Cells {
			cell := CellId{Component: id, Cell: i}
			sub.Graph.AddNode(cell, p)
			cellSet[cell] = true
		}
		if id >= sub.NextComponentID {
			sub.NextComponentID = id + 1
		}
	}
	c.Graph.Edges(func(a, b CellId, edge Edge) {
		if cellSet[a] && cellSet[b] {
			sub.Graph.AddEdge(a, b, edge)
		}
	})
	return sub
}

// ShiftToOrigin translates every component so the minimum x and y
// across all rects become 0.
func (c *Circuit) ShiftToOrigin() {
	if len(c.Components) == 0 {
		return
	}
	minX, minY := 0, 0
	first := true
	for _, comp := range c.Components {
		if first || comp.Rect.Pos.X < minX {
			minX = comp.Rect.Pos.X
		}
		if first || comp.Rect.Pos.Y < minY {
			minY = comp.Rect.Pos.Y
		}
		first = false
	}
	shift := grid.Coords{X: -minX, Y: -minY}
	if shift.X == 0 && shift.Y == 0 {
		return
	}
	c.shiftAllComponents(shift)
}

func (c *Circuit) shiftAllComponents(shift grid.Coords) {
	newComponents := make(map[ComponentId]Component, len(c.Components))
	newPoints := make(map[grid.Coords]ComponentId, len(c.Points))
	newGraph := graph.New[CellId, grid.Coords, Edge](cellIdLess)

	for id, comp := range c.Components {
		shifted := shiftComponent(comp, shift)
		newComponents[id] = shifted
		for _, p := range shifted.Rect.Iter() {
			newPoints[p] = id
		}
		for i, p := range shifted.Cells {
			newGraph.AddNode(CellId{Component: id, Cell: i}, p)
		}
	}
	c.Graph.Edges(func(a, b CellId, edge Edge) {
		newGraph.AddEdge(a, b, edge)
	})

	c.Components = newComponents
	c.Points = newPoints
	c.Graph = newGraph
}

func shiftComponent(comp Component, shift grid.Coords) Component {
	shifted := comp
	shifted.Pos = comp.Pos.Add(shift)
	shifted.Rect = grid.Rect{Pos: comp.Rect.Pos.Add(shift), Size: comp.Rect.Size}
	shifted.Cells = make([]grid.Coords, len(comp.Cells))
	for i, p := range comp.Cells {
		shifted.Cells[i] = p.Add(shift)
	}
	return shifted
}

// ComponentsInRect returns the ids of every component whose rect
// overlaps r.
func (c *Circuit) ComponentsInRect(r grid.Rect) map[ComponentId]bool {
	result := make(map[ComponentId]bool)
	for _, p := range r.Iter() {
		if id, ok := c.Points[p]; ok {
			result[id] = true
		}
	}
	return result
}

// sortedComponentIds returns the circuit's ComponentIds in ascending
// order, used wherever deterministic iteration over components matters
// (paste replay, unfold).
func (c *Circuit) sortedComponentIds() []ComponentId {
	ids := make([]ComponentId, 0, len(c.Components))
	for id := range c.Components {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone returns a deep copy of c.
func (c *Circuit) Clone() *Circuit {
	clone := &Circuit{
		Components:      make(map[ComponentId]Component, len(c.Components)),
		Graph:           c.Graph.Clone(),
		Points:          make(map[grid.Coords]ComponentId, len(c.Points)),
		NextComponentID: c.NextComponentID,
	}
	for id, comp := range c.Components {
		clone.Components[id] = comp
	}
	for p, id := range c.Points {
		clone.Points[p] = id
	}
	return clone
}
