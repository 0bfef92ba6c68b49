package circuit

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/circuitflow/grid"
)

// ActionKind discriminates the Action algebra.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionNoUndo
	ActionPlaceComponent
	ActionRemoveComponentAtPos
	ActionPlaceEdgeAtPos
	ActionRemoveEdgeAtPos
	ActionPlaceEdge
	ActionRemoveEdge
	ActionPlaceCircuitAtPos
	ActionReverseCompound
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "None"
	case ActionNoUndo:
		return "NoUndo"
	case ActionPlaceComponent:
		return "PlaceComponent"
	case ActionRemoveComponentAtPos:
		return "RemoveComponentAtPos"
	case ActionPlaceEdgeAtPos:
		return "PlaceEdgeAtPos"
	case ActionRemoveEdgeAtPos:
		return "RemoveEdgeAtPos"
	case ActionPlaceEdge:
		return "PlaceEdge"
	case ActionRemoveEdge:
		return "RemoveEdge"
	case ActionPlaceCircuitAtPos:
		return "PlaceCircuitAtPos"
	case ActionReverseCompound:
		return "ReverseCompound"
	default:
		return "?"
	}
}

// Action is a declarative, reversible edit against a Circuit.
type Action struct {
	Kind ActionKind

	Inner *Action // NoUndo

	Component Component // PlaceComponent

	Pos grid.Coords // RemoveComponentAtPos, PlaceEdgeAtPos, RemoveEdgeAtPos
	Dir grid.Dir    // PlaceEdgeAtPos, RemoveEdgeAtPos
	E   Edge        // PlaceEdgeAtPos

	CellA, CellB CellId // PlaceEdge, RemoveEdge

	Sub *Circuit    // PlaceCircuitAtPos
	At  grid.Coords // PlaceCircuitAtPos

	Compound []Action // ReverseCompound
}

func NewNone() Action { return Action{Kind: ActionNone} }

func NewNoUndo(inner Action) Action { return Action{Kind: ActionNoUndo, Inner: &inner} }

func NewPlaceComponent(comp Component) Action {
	return Action{Kind: ActionPlaceComponent, Component: comp}
}

func NewRemoveComponentAtPos(pos grid.Coords) Action {
	return Action{Kind: ActionRemoveComponentAtPos, Pos: pos}
}

func NewPlaceEdgeAtPos(pos grid.Coords, dir grid.Dir, e Edge) Action {
	return Action{Kind: ActionPlaceEdgeAtPos, Pos: pos, Dir: dir, E: e}
}

func NewRemoveEdgeAtPos(pos grid.Coords, dir grid.Dir) Action {
	return Action{Kind: ActionRemoveEdgeAtPos, Pos: pos, Dir: dir}
}

func NewPlaceEdge(a, b CellId, e Edge) Action {
	return Action{Kind: ActionPlaceEdge, CellA: a, CellB: b, E: e}
}

func NewRemoveEdge(a, b CellId) Action {
	return Action{Kind: ActionRemoveEdge, CellA: a, CellB: b}
}

func NewPlaceCircuitAtPos(sub *Circuit, at grid.Coords) Action {
	return Action{Kind: ActionPlaceCircuitAtPos, Sub: sub, At: at}
}

func NewReverseCompound(actions []Action) Action {
	return Action{Kind: ActionReverseCompound, Compound: actions}
}

// CanPerform reports whether a's precondition holds against c.
func (a Action) CanPerform(c *Circuit) bool {
	switch a.Kind {
	case ActionNone, ActionReverseCompound:
		return true

	case ActionNoUndo:
		return a.Inner.CanPerform(c)

	case ActionPlaceComponent:
		for _, p := range a.Component.Rect.Iter() {
			if _, occupied := c.Points[p]; occupied {
				return false
			}
		}
		return true

	case ActionRemoveComponentAtPos:
		_, comp, ok := c.componentAt(a.Pos)
		if !ok {
			return false
		}
		return comp.Element.Kind != KindInput && comp.Element.Kind != KindOutput

	case ActionPlaceEdgeAtPos:
		cellA, okA := c.cellAt(a.Pos, a.Dir)
		cellB, okB := c.cellAt(a.Dir.Apply(a.Pos), a.Dir.Invert())
		if !okA || !okB {
			return false
		}
		return canPlaceEdgeBetween(c, cellA, cellB, a.Dir)

	case ActionRemoveEdgeAtPos:
		cellA, okA := c.cellAt(a.Pos, a.Dir)
		cellB, okB := c.cellAt(a.Dir.Apply(a.Pos), a.Dir.Invert())
		if !okA || !okB {
			return false
		}
		_, ok := c.Graph.GetEdge(cellA, cellB)
		return ok

	case ActionPlaceEdge:
		dir := grid.DirFromCoords(cellCoord(c, a.CellA), cellCoord(c, a.CellB))
		return canPlaceEdgeBetween(c, a.CellA, a.CellB, dir)

	case ActionRemoveEdge:
		_, ok := c.Graph.GetEdge(a.CellA, a.CellB)
		return ok

	case ActionPlaceCircuitAtPos:
		for _, comp := range a.Sub.Components {
			shifted := shiftComponent(comp, a.At)
			for _, p := range shifted.Rect.Iter() {
				if _, occupied := c.Points[p]; occupied {
					return false
				}
			}
		}
		return true

	default:
		chk.Panic("CanPerform: unknown ActionKind %v", a.Kind)
		return false
	}
}

func cellCoord(c *Circuit, id CellId) grid.Coords {
	p, ok := c.Graph.GetNode(id)
	if !ok {
		chk.Panic("cellCoord: unknown CellId %v", id)
	}
	return p
}

func canPlaceEdgeBetween(c *Circuit, cellA, cellB CellId, dir grid.Dir) bool {
	if cellA.Component == cellB.Component {
		return false
	}
	if _, ok := c.Graph.GetEdge(cellA, cellB); ok {
		return false
	}
	compA := c.Components[cellA.Component]
	compB := c.Components[cellB.Component]
	return compA.cellAdmits(cellA.Cell, dir) && compB.cellAdmits(cellB.Cell, dir.Invert())
}

// Perform applies a to c, returning its inverse. It panics if
// CanPerform(c) does not hold; callers that need to screen untrusted
// input should use TryPerform.
func (a Action) Perform(c *Circuit) Action {
	io.Pf("circuit action: %v\n", a.Kind)

	switch a.Kind {
	case ActionNone:
		return NewNone()

	case ActionNoUndo:
		if !a.Inner.CanPerform(c) {
			chk.Panic("Perform: NoUndo precondition violated")
		}
		a.Inner.Perform(c)
		return NewNone()

	case ActionPlaceComponent:
		if !a.CanPerform(c) {
			chk.Panic("Perform: PlaceComponent precondition violated")
		}
		c.insertComponent(a.Component)
		return NewRemoveComponentAtPos(a.Component.Pos)

	case ActionRemoveComponentAtPos:
		if !a.CanPerform(c) {
			chk.Panic("Perform: RemoveComponentAtPos precondition violated")
		}
		id, _, _ := c.componentAt(a.Pos)
		comp, incident := c.removeComponent(id)

		reversed := make([]Action, 0, len(incident)+1)
		for _, ie := range incident {
			reversed = append(reversed, NewNoUndo(NewPlaceEdgeAtPos(ie.Pos, ie.Dir, ie.E)))
		}
		reversed = append(reversed, NewPlaceComponent(comp))
		return NewReverseCompound(reversed)

	case ActionPlaceEdgeAtPos:
		if !a.CanPerform(c) {
			chk.Panic("Perform: PlaceEdgeAtPos precondition violated")
		}
		cellA, _ := c.cellAt(a.Pos, a.Dir)
		cellB, _ := c.cellAt(a.Dir.Apply(a.Pos), a.Dir.Invert())
		c.Graph.AddEdge(cellA, cellB, a.E)
		return NewRemoveEdgeAtPos(a.Pos, a.Dir)

	case ActionRemoveEdgeAtPos:
		if !a.CanPerform(c) {
			chk.Panic("Perform: RemoveEdgeAtPos precondition violated")
		}
		cellA, _ := c.cellAt(a.Pos, a.Dir)
		cellB, _ := c.cellAt(a.Dir.Apply(a.Pos), a.Dir.Invert())
		e := c.Graph.RemoveEdge(cellA, cellB)
		return NewPlaceEdgeAtPos(a.Pos, a.Dir, e)

	case ActionPlaceEdge:
		if !a.CanPerform(c) {
			chk.Panic("Perform: PlaceEdge precondition violated")
		}
		c.Graph.AddEdge(a.CellA, a.CellB, a.E)
		return NewRemoveEdge(a.CellA, a.CellB)

	case ActionRemoveEdge:
		if !a.CanPerform(c) {
			chk.Panic("Perform: RemoveEdge precondition violated")
		}
		e := c.Graph.RemoveEdge(a.CellA, a.CellB)
		return NewPlaceEdge(a.CellA, a.CellB, e)

	case ActionPlaceCircuitAtPos:
		if !a.CanPerform(c) {
			chk.Panic("Perform: PlaceCircuitAtPos precondition violated")
		}
		idMap := make(map[ComponentId]ComponentId, len(a.Sub.Components))
		var inverses []Action
		for _, oldID := range a.Sub.sortedComponentIds() {
			comp := a.Sub.Components[oldID]
			shifted := shiftComponent(comp, a.At)
			newID := c.insertComponent(shifted)
			idMap[oldID] = newID
			inverses = append(inverses, NewRemoveComponentAtPos(shifted.Pos))
		}
		a.Sub.Graph.Edges(func(x, y CellId, e Edge) {
			nx := CellId{Component: idMap[x.Component], Cell: x.Cell}
			ny := CellId{Component: idMap[y.Component], Cell: y.Cell}
			c.Graph.AddEdge(nx, ny, e)
		})
		return NewReverseCompound(inverses)

	case ActionReverseCompound:
		collected := make([]Action, 0, len(a.Compound))
		for i := len(a.Compound) - 1; i >= 0; i-- {
			inv := a.Compound[i].Perform(c)
			collected = append(collected, inv)
		}
		return NewReverseCompound(collected)

	default:
		chk.Panic("Perform: unknown ActionKind %v", a.Kind)
		return NewNone()
	}
}

// TryPerform applies a to c if its precondition holds, returning the
// inverse action and true on success, or the zero Action and false
// without mutating c.
func (a Action) TryPerform(c *Circuit) (Action, bool) {
	if !a.CanPerform(c) {
		return Action{}, false
	}
	return a.Perform(c), true
}
