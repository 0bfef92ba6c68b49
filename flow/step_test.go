package flow

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/circuitflow/circuit"
	"github.com/cpmech/circuitflow/graph"
	"github.com/cpmech/circuitflow/grid"
)

func buildChain(n int) *circuit.Circuit {
	c := circuit.NewCircuit()

	src := circuit.Element{Kind: circuit.KindSource}.NewComponent(grid.Coords{X: 0, Y: 0}, 0)
	circuit.NewPlaceComponent(src).Perform(c)

	pos := grid.Coords{X: 1, Y: 0}
	for i := 0; i < n; i++ {
		node := circuit.Element{Kind: circuit.KindNode}.NewComponent(pos, 0)
		circuit.NewPlaceComponent(node).Perform(c)
		circuit.NewPlaceEdgeAtPos(pos.Sub(grid.Coords{X: 1, Y: 0}), grid.Right, circuit.Edge{}).Perform(c)
		pos = pos.Add(grid.Coords{X: 1, Y: 0})
	}

	sink := circuit.Element{Kind: circuit.KindSink}.NewComponent(pos, 0)
	circuit.NewPlaceComponent(sink).Perform(c)
	circuit.NewPlaceEdgeAtPos(pos.Sub(grid.Coords{X: 1, Y: 0}), grid.Right, circuit.Edge{}).Perform(c)

	return c
}

// assertUniformPositiveChainFlow checks that, on a converged
// Source-Nodes-Sink chain, the edge flow along the chain is uniform and
// positive.
func assertUniformPositiveChainFlow(tst *testing.T, s *State) {
	tst.Helper()
	for k := 0; k < s.Cells.NumEdges(); k++ {
		if s.Cells.Edge(k).Flow <= 0 {
			tst.Errorf("edge %d: expected positive flow along the chain, got %v", k, s.Cells.Edge(k).Flow)
		}
	}
	first := s.Cells.Edge(0).Flow
	for k := 1; k < s.Cells.NumEdges(); k++ {
		if math.Abs(s.Cells.Edge(k).Flow-first) > 1e-6 {
			tst.Errorf("edge %d: expected uniform flow %v along the chain, got %v", k, first, s.Cells.Edge(k).Flow)
		}
	}
}

func TestPressureEquilibriumOnChain(tst *testing.T) {

	chk.PrintTitle("pressure equilibrium along a Source-Nodes-Sink chain")

	const n = 3
	c := buildChain(n)
	s := NewState(c)

	for tick := 0; tick < 50; tick++ {
		TimeStep(s, 1.0)
	}

	for i := 0; i < s.Cells.NumNodes(); i++ {
		cell := s.Cells.Node(i)
		if cell.BoundPressure {
			continue
		}
		degree := 0
		sumNeighborPressure := 0.0
		for _, nb := range s.Graph.Neighbors(i) {
			if s.Cells.Edge(nb.Edge).Enabled {
				degree++
				sumNeighborPressure += s.Cells.Node(nb.Node).Pressure
			}
		}
		if degree == 0 {
			continue
		}
		lhs := float64(degree) * cell.Pressure
		if math.Abs(lhs-sumNeighborPressure) > 1e-6 {
			tst.Errorf("node %d: discrete Laplace equilibrium violated: %v != %v", i, lhs, sumNeighborPressure)
		}
	}

	assertUniformPositiveChainFlow(tst, s)
}

func TestProjectVelocitiesMatchesPressureDifference(tst *testing.T) {

	chk.PrintTitle("edge velocity equals pressure[low] - pressure[high] after project")

	c := buildChain(2)
	s := NewState(c)
	TimeStep(s, 1.0)

	for k := 0; k < s.Cells.NumEdges(); k++ {
		low, high := s.Graph.Edge(k)
		want := s.Cells.Node(low).Pressure - s.Cells.Node(high).Pressure
		got := s.Cells.Edge(k).Velocity
		if math.Abs(want-got) > 1e-9 {
			tst.Errorf("edge %d: velocity %v != pressure difference %v", k, got, want)
		}
	}
}

func TestFlowConservation(tst *testing.T) {

	chk.PrintTitle("total in_flow equals total out_flow across non-boundary nodes")

	c := buildChain(3)
	s := NewState(c)
	for tick := 0; tick < 50; tick++ {
		TimeStep(s, 1.0)
	}

	var totalIn, totalOut float64
	for i := 0; i < s.Cells.NumNodes(); i++ {
		cell := s.Cells.Node(i)
		if cell.BoundPressure {
			continue
		}
		totalIn += cell.InFlow
		totalOut += cell.OutFlow
	}
	assertUniformPositiveChainFlow(tst, s)
	if math.Abs(totalIn-totalOut) > 1e-6 {
		tst.Errorf("flow not conserved: in=%v out=%v", totalIn, totalOut)
	}
}

func TestSwitchClassificationBoundsControlCell(tst *testing.T) {

	chk.PrintTitle("Switch control cell is bound-pressure and a sink cell")

	c := circuit.NewCircuit()
	sw := circuit.Element{Kind: circuit.KindSwitch, SwitchOn: false}.NewComponent(grid.Coords{X: 0, Y: 0}, 0)
	circuit.NewPlaceComponent(sw).Perform(c)

	s := NewState(c)
	chk.IntAssert(len(s.SinkCells), 1)
	controlIdx := s.SinkCells[0]
	if !s.Cells.Node(controlIdx).BoundPressure {
		tst.Errorf("switch control cell should be bound-pressure")
	}
}

// buildGatedSwitch wires an Input{1} into an Off-switch's control cell,
// and a Source into the switch's flow cell through to a Sink:
//
//	                 Source (rotated, emitting downward)
//	                    |
//	Input -- control | flow -- Sink
func buildGatedSwitch() *circuit.Circuit {
	c := circuit.NewCircuit()

	in := circuit.Element{Kind: circuit.KindInput, Size: 1}.NewComponent(grid.Coords{X: 1, Y: 2}, 0)
	circuit.NewPlaceComponent(in).Perform(c)

	sw := circuit.Element{Kind: circuit.KindSwitch, SwitchOn: false}.NewComponent(grid.Coords{X: 2, Y: 2}, 0)
	circuit.NewPlaceComponent(sw).Perform(c)

	src := circuit.Element{Kind: circuit.KindSource}.NewComponent(grid.Coords{X: 3, Y: 1}, 1)
	circuit.NewPlaceComponent(src).Perform(c)

	sink := circuit.Element{Kind: circuit.KindSink}.NewComponent(grid.Coords{X: 4, Y: 2}, 0)
	circuit.NewPlaceComponent(sink).Perform(c)

	circuit.NewPlaceEdgeAtPos(grid.Coords{X: 1, Y: 2}, grid.Right, circuit.Edge{}).Perform(c) // input -> control
	circuit.NewPlaceEdgeAtPos(grid.Coords{X: 3, Y: 1}, grid.Down, circuit.Edge{}).Perform(c)  // source -> flow
	circuit.NewPlaceEdgeAtPos(grid.Coords{X: 3, Y: 2}, grid.Right, circuit.Edge{}).Perform(c) // flow -> sink
	return c
}

func TestSwitchControlGating(tst *testing.T) {

	chk.PrintTitle("an Off switch carries flow until its control cell sees inflow")

	s := NewState(buildGatedSwitch())
	s.Cells.Node(s.InputCells[0]).Enabled = false

	var flowNode graph.NodeIndex
	for _, cv := range s.Components {
		if cv.Element.Kind == circuit.KindSwitch {
			flowNode = cv.Cells[1]
		}
	}

	for tick := 0; tick < 5; tick++ {
		TimeStep(s, 1.0)
	}
	sawFlow := false
	for _, nb := range s.Graph.Neighbors(flowNode) {
		edge := s.Cells.Edge(nb.Edge)
		if !edge.Enabled {
			tst.Errorf("switch edges should be enabled while the control is dry")
		}
		if edge.Flow != 0 {
			sawFlow = true
		}
	}
	if !sawFlow {
		tst.Fatal("expected load to cross the enabled switch")
	}

	s.Cells.Node(s.InputCells[0]).Enabled = true
	for tick := 0; tick < 3; tick++ {
		TimeStep(s, 1.0)
	}
	for _, nb := range s.Graph.Neighbors(flowNode) {
		edge := s.Cells.Edge(nb.Edge)
		if edge.Enabled {
			tst.Errorf("switch edges should be disabled once the control sees inflow")
		}
		if edge.Flow != 0 {
			tst.Errorf("no load may cross a disabled switch, got flow %v", edge.Flow)
		}
	}
}

func TestAdvectGatesInputLoadOnEnabled(tst *testing.T) {

	chk.PrintTitle("a disabled input_cell contributes no load while its pressure stays bound at +100")

	c := circuit.NewCircuit()
	in := circuit.Element{Kind: circuit.KindInput, Size: 1}.NewComponent(grid.Coords{X: 0, Y: 0}, 0)
	circuit.NewPlaceComponent(in).Perform(c)

	s := NewState(c)
	node := s.InputCells[0]
	s.Cells.Node(node).Enabled = false

	advect(s)

	cell := s.Cells.Node(node)
	if cell.Load != 0 {
		tst.Errorf("expected disabled input_cell load 0, got %v", cell.Load)
	}
	if cell.Pressure != 100 {
		tst.Errorf("expected input_cell bound pressure to stay +100 regardless of Enabled, got %v", cell.Pressure)
	}

	s.Cells.Node(node).Enabled = true
	advect(s)
	if s.Cells.Node(node).Load != inputOnLoad {
		tst.Errorf("expected enabled input_cell load %v, got %v", inputOnLoad, s.Cells.Node(node).Load)
	}
}
