package circuit

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/circuitflow/grid"
)

func TestPlaceThenRemoveNode(tst *testing.T) {

	chk.PrintTitle("place then remove a Node reproduces the empty circuit")

	c := NewCircuit()
	place := NewPlaceComponent(Element{Kind: KindNode}.NewComponent(grid.Coords{X: 5, Y: 5}, 0))

	inv, ok := place.TryPerform(c)
	if !ok {
		tst.Fatal("PlaceComponent should succeed on an empty circuit")
	}
	chk.IntAssert(len(c.Components), 1)
	chk.IntAssert(len(c.Points), 1)
	if id, ok := c.Points[grid.Coords{X: 5, Y: 5}]; !ok || c.Components[id].Element.Kind != KindNode {
		tst.Errorf("expected (5,5) to be occupied by the placed node")
	}

	if _, ok := inv.TryPerform(c); !ok {
		tst.Fatal("inverse of PlaceComponent should succeed")
	}
	chk.IntAssert(len(c.Components), 0)
	chk.IntAssert(len(c.Points), 0)
	chk.IntAssert(c.Graph.NumNodes(), 0)
}

func TestEdgeBetweenAdjacentNodesAndRejectDuplicate(tst *testing.T) {

	chk.PrintTitle("edge between adjacent nodes; duplicate placement rejected")

	c := NewCircuit()
	a0 := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 0, Y: 0}, 0)
	a1 := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 1, Y: 0}, 0)
	NewPlaceComponent(a0).Perform(c)
	NewPlaceComponent(a1).Perform(c)

	edgeAction := NewPlaceEdgeAtPos(grid.Coords{X: 0, Y: 0}, grid.Right, Edge{})
	if !edgeAction.CanPerform(c) {
		tst.Fatal("edge placement between adjacent admissible cells should be allowed")
	}
	edgeAction.Perform(c)
	chk.IntAssert(c.Graph.NumEdges(), 1)

	if edgeAction.CanPerform(c) {
		tst.Errorf("a second identical edge placement should be rejected")
	}
}

func TestActionInverseRoundTrip(tst *testing.T) {

	chk.PrintTitle("Action/inverse round trip reconstructs the prior circuit")

	c := NewCircuit()
	a0 := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 0, Y: 0}, 0)
	a1 := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 1, Y: 0}, 0)
	NewPlaceComponent(a0).Perform(c)
	NewPlaceComponent(a1).Perform(c)
	edgeAction := NewPlaceEdgeAtPos(grid.Coords{X: 0, Y: 0}, grid.Right, Edge{})
	edgeAction.Perform(c)

	before := snapshot(c)

	removeAction := NewRemoveComponentAtPos(grid.Coords{X: 1, Y: 0})
	inv, ok := removeAction.TryPerform(c)
	if !ok {
		tst.Fatal("RemoveComponentAtPos should succeed")
	}
	chk.IntAssert(c.Graph.NumEdges(), 0)

	if _, ok := inv.TryPerform(c); !ok {
		tst.Fatal("inverse of RemoveComponentAtPos should succeed")
	}
	after := snapshot(c)

	if before.numComponents != after.numComponents || before.numPoints != after.numPoints ||
		before.numNodes != after.numNodes || before.numEdges != after.numEdges {
		tst.Errorf("round trip mismatch: before=%+v after=%+v", before, after)
	}
}

type circuitShape struct {
	numComponents, numPoints, numNodes, numEdges int
}

func snapshot(c *Circuit) circuitShape {
	return circuitShape{
		numComponents: len(c.Components),
		numPoints:     len(c.Points),
		numNodes:      c.Graph.NumNodes(),
		numEdges:      c.Graph.NumEdges(),
	}
}

func TestPasteIdempotence(tst *testing.T) {

	chk.PrintTitle("paste then its inverse reproduces the original circuit")

	c := NewCircuit()
	n0 := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 0, Y: 0}, 0)
	n1 := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 1, Y: 0}, 0)
	id0Inv, _ := NewPlaceComponent(n0).TryPerform(c)
	_ = id0Inv
	NewPlaceComponent(n1).Perform(c)
	NewPlaceEdgeAtPos(grid.Coords{X: 0, Y: 0}, grid.Right, Edge{}).Perform(c)

	ids := make(map[ComponentId]bool)
	for id := range c.Components {
		ids[id] = true
	}
	sub := c.Subcircuit(ids)
	sub.ShiftToOrigin()

	before := snapshot(c)

	pasteAction := NewPlaceCircuitAtPos(sub, grid.Coords{X: 10, Y: 10})
	if !pasteAction.CanPerform(c) {
		tst.Fatal("paste at a disjoint location should be allowed")
	}
	inv := pasteAction.Perform(c)
	chk.IntAssert(len(c.Components), 4)

	inv.Perform(c)
	after := snapshot(c)

	if before != after {
		tst.Errorf("paste round trip mismatch: before=%+v after=%+v", before, after)
	}
}

func TestPlaceEdgeAtPosResolvesColocatedBridgeCells(tst *testing.T) {

	chk.PrintTitle("positional edges land on the Bridge cell admitting their direction")

	c := NewCircuit()
	left := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 0, Y: 0}, 0)
	bridge := Element{Kind: KindBridge}.NewComponent(grid.Coords{X: 1, Y: 0}, 0)
	below := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 1, Y: 1}, 0)
	NewPlaceComponent(left).Perform(c)
	NewPlaceComponent(bridge).Perform(c)
	NewPlaceComponent(below).Perform(c)

	horizontal := NewPlaceEdgeAtPos(grid.Coords{X: 0, Y: 0}, grid.Right, Edge{})
	if !horizontal.CanPerform(c) {
		tst.Fatal("a horizontal edge onto the Bridge's horizontal cell should be allowed")
	}
	horizontal.Perform(c)

	vertical := NewPlaceEdgeAtPos(grid.Coords{X: 1, Y: 0}, grid.Down, Edge{})
	if !vertical.CanPerform(c) {
		tst.Fatal("a vertical edge onto the Bridge's vertical cell should be allowed")
	}
	vertical.Perform(c)
	chk.IntAssert(c.Graph.NumEdges(), 2)

	bridgeID := c.Points[grid.Coords{X: 1, Y: 0}]
	leftID := c.Points[grid.Coords{X: 0, Y: 0}]
	belowID := c.Points[grid.Coords{X: 1, Y: 1}]
	if _, ok := c.Graph.GetEdge(CellId{Component: leftID, Cell: 0}, CellId{Component: bridgeID, Cell: 1}); !ok {
		tst.Errorf("horizontal edge should join the Bridge's horizontal cell (cell 1)")
	}
	if _, ok := c.Graph.GetEdge(CellId{Component: belowID, Cell: 0}, CellId{Component: bridgeID, Cell: 0}); !ok {
		tst.Errorf("vertical edge should join the Bridge's vertical cell (cell 0)")
	}
}

func TestRemoveBridgeUndoRestoresColocatedCellEdges(tst *testing.T) {

	chk.PrintTitle("undo of a Bridge removal replays edges onto the correct colocated cells")

	c := NewCircuit()
	left := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 0, Y: 0}, 0)
	bridge := Element{Kind: KindBridge}.NewComponent(grid.Coords{X: 1, Y: 0}, 0)
	below := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 1, Y: 1}, 0)
	NewPlaceComponent(left).Perform(c)
	NewPlaceComponent(bridge).Perform(c)
	NewPlaceComponent(below).Perform(c)
	NewPlaceEdgeAtPos(grid.Coords{X: 0, Y: 0}, grid.Right, Edge{}).Perform(c)
	NewPlaceEdgeAtPos(grid.Coords{X: 1, Y: 0}, grid.Down, Edge{}).Perform(c)

	before := snapshot(c)

	inv, ok := NewRemoveComponentAtPos(grid.Coords{X: 1, Y: 0}).TryPerform(c)
	if !ok {
		tst.Fatal("Bridge removal should succeed")
	}
	chk.IntAssert(c.Graph.NumEdges(), 0)

	if _, ok := inv.TryPerform(c); !ok {
		tst.Fatal("inverse of Bridge removal should succeed")
	}
	after := snapshot(c)
	if before != after {
		tst.Fatalf("round trip mismatch: before=%+v after=%+v", before, after)
	}

	bridgeID := c.Points[grid.Coords{X: 1, Y: 0}]
	leftID := c.Points[grid.Coords{X: 0, Y: 0}]
	belowID := c.Points[grid.Coords{X: 1, Y: 1}]
	if _, ok := c.Graph.GetEdge(CellId{Component: leftID, Cell: 0}, CellId{Component: bridgeID, Cell: 1}); !ok {
		tst.Errorf("undo should restore the horizontal edge onto Bridge cell 1")
	}
	if _, ok := c.Graph.GetEdge(CellId{Component: belowID, Cell: 0}, CellId{Component: bridgeID, Cell: 0}); !ok {
		tst.Errorf("undo should restore the vertical edge onto Bridge cell 0")
	}
}

func TestRemovePowerUndoRestoresEmitterEdge(tst *testing.T) {

	chk.PrintTitle("undo of a Power removal replays the emitting cell's edge")

	c := NewCircuit()
	feed := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 0, Y: 0}, 0)
	power := Element{Kind: KindPower}.NewComponent(grid.Coords{X: 1, Y: 0}, 0)
	drain := Element{Kind: KindNode}.NewComponent(grid.Coords{X: 2, Y: 0}, 0)
	NewPlaceComponent(feed).Perform(c)
	NewPlaceComponent(power).Perform(c)
	NewPlaceComponent(drain).Perform(c)

	// feed -> control (cell 0, admits Left); emitter (cell 1) -> drain
	NewPlaceEdgeAtPos(grid.Coords{X: 0, Y: 0}, grid.Right, Edge{}).Perform(c)
	NewPlaceEdgeAtPos(grid.Coords{X: 1, Y: 0}, grid.Right, Edge{}).Perform(c)
	chk.IntAssert(c.Graph.NumEdges(), 2)

	inv, ok := NewRemoveComponentAtPos(grid.Coords{X: 1, Y: 0}).TryPerform(c)
	if !ok {
		tst.Fatal("Power removal should succeed")
	}
	if _, ok := inv.TryPerform(c); !ok {
		tst.Fatal("inverse of Power removal should succeed")
	}
	chk.IntAssert(c.Graph.NumEdges(), 2)

	powerID := c.Points[grid.Coords{X: 1, Y: 0}]
	feedID := c.Points[grid.Coords{X: 0, Y: 0}]
	drainID := c.Points[grid.Coords{X: 2, Y: 0}]
	if _, ok := c.Graph.GetEdge(CellId{Component: feedID, Cell: 0}, CellId{Component: powerID, Cell: 0}); !ok {
		tst.Errorf("undo should restore the control cell's edge")
	}
	if _, ok := c.Graph.GetEdge(CellId{Component: powerID, Cell: 1}, CellId{Component: drainID, Cell: 0}); !ok {
		tst.Errorf("undo should restore the emitting cell's edge")
	}
}

func TestBoundaryComponentsAreImmovable(tst *testing.T) {

	chk.PrintTitle("RemoveComponentAtPos rejects Input/Output boundary components")

	c := NewCircuit()
	in := Element{Kind: KindInput, Size: 1}.NewComponent(grid.Coords{X: 0, Y: 0}, 0)
	NewPlaceComponent(in).Perform(c)

	remove := NewRemoveComponentAtPos(grid.Coords{X: 0, Y: 0})
	if remove.CanPerform(c) {
		tst.Errorf("removal of an Input component should be rejected")
	}
}
