package circuit

import "github.com/cpmech/circuitflow/grid"

// ComponentId identifies a component within a Circuit. Ids are never
// reused within a single Circuit's lifetime.
type ComponentId int

// CellId addresses one cell of one component.
type CellId struct {
	Component ComponentId
	Cell      int
}

// cellIdLess provides the total order canonmap/graph need to key
// undirected edges between cells.
func cellIdLess(a, b CellId) bool {
	if a.Component != b.Component {
		return a.Component < b.Component
	}
	return a.Cell < b.Cell
}

// Component is an instantiated Element: its neutral-frame geometry
// rotated and translated into place.
type Component struct {
	Element    Element
	Pos        grid.Coords
	RotationCW int
	Rect       grid.Rect

	// Cells holds the lattice position of each of the element's cells, in
	// the element's neutral cell order.
	Cells []grid.Coords

	// CellEdgeDir holds, per cell, the set of directions in which that
	// cell admits a graph edge.
	CellEdgeDir [][]grid.Dir
}

// cellAdmits reports whether cell i of the component admits an edge in
// direction dir.
func (c Component) cellAdmits(i int, dir grid.Dir) bool {
	for _, d := range c.CellEdgeDir[i] {
		if d == dir {
			return true
		}
	}
	return false
}

// CellAt returns the index of the cell occupying pos that admits an
// edge in direction dir. The direction is what disambiguates colocated
// cells (Bridge, Power share one world coordinate between two cells
// with disjoint admissible directions).
func (c Component) CellAt(pos grid.Coords, dir grid.Dir) (int, bool) {
	for i, p := range c.Cells {
		if p == pos && c.cellAdmits(i, dir) {
			return i, true
		}
	}
	return 0, false
}
