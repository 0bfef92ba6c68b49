package flow

import (
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/circuitflow/circuit"
	"github.com/cpmech/circuitflow/graph"
)

const switchGateThreshold = 0.01
const inputOnLoad = 100000.0

// TimeStep advances the simulation by one tick: component logic update,
// pressure solve, velocity projection, load advection, in that order.
// dt is currently unused by the discrete model but kept in the
// signature to match the host's per-frame driving loop.
func TimeStep(s *State, dt float64) {
	updateComponents(s)
	updateMutIndices(s)
	if err := solvePressure(s); err != nil {
		io.Pfred("solvePressure: %v\n", err)
	}
	projectVelocities(s)
	advect(s)
}

// updateComponents runs each component's gating logic.
func updateComponents(s *State) {
	for _, comp := range s.Components {
		switch comp.Element.Kind {
		case circuit.KindSwitch:
			control := s.Cells.Node(comp.Cells[0])
			flowCell := comp.Cells[1]
			var enabled bool
			if comp.Element.SwitchOn {
				enabled = control.InFlow > switchGateThreshold
			} else {
				enabled = control.InFlow < switchGateThreshold
			}
			setEdgesEnabled(s, flowCell, enabled)

		case circuit.KindPower:
			control := s.Cells.Node(comp.Cells[0])
			enabled := control.InFlow > switchGateThreshold
			power := s.Cells.Node(comp.Cells[1])
			power.BoundPressure = enabled
			power.Pressure = 100
		}
	}
}

func setEdgesEnabled(s *State, node graph.NodeIndex, enabled bool) {
	for _, nb := range s.Graph.Neighbors(node) {
		s.Cells.Edge(nb.Edge).Enabled = enabled
	}
}

// updateMutIndices rebuilds the mutable-node index assignment: a node
// joins the linear system only if its pressure is not bound and at
// least one incident edge is enabled.
func updateMutIndices(s *State) {
	s.MutIdxToNodeIdx = s.MutIdxToNodeIdx[:0]
	for i := 0; i < s.Cells.NumNodes(); i++ {
		cell := s.Cells.Node(i)
		if cell.BoundPressure {
			cell.MutIdx = -1
			continue
		}
		degree := 0
		for _, nb := range s.Graph.Neighbors(i) {
			if s.Cells.Edge(nb.Edge).Enabled {
				degree++
			}
		}
		if degree == 0 {
			cell.MutIdx = -1
			continue
		}
		cell.MutIdx = len(s.MutIdxToNodeIdx)
		s.MutIdxToNodeIdx = append(s.MutIdxToNodeIdx, i)
	}
}

// solvePressure solves the discrete Laplace system over the mutable
// nodes (diagonal = enabled degree, off-diagonal = -1 per enabled
// neighbor, bound neighbors folded into the right-hand side) via a
// hand-rolled Cholesky factorization over dense la.MatAlloc storage.
// The system is small (one row per currently mutable circuit node), so
// the sparse la.LinSol machinery is not warranted here.
func solvePressure(s *State) error {
	m := len(s.MutIdxToNodeIdx)
	if m == 0 {
		return nil
	}

	for i := 0; i < s.Cells.NumNodes(); i++ {
		cell := s.Cells.Node(i)
		if cell.BoundPressure {
			continue
		}
		if cell.MutIdx < 0 {
			cell.Pressure = 0
		}
	}

	negA := la.MatAlloc(m, m)
	negB := make([]float64, m)

	for r, nodeIdx := range s.MutIdxToNodeIdx {
		for _, nb := range s.Graph.Neighbors(nodeIdx) {
			edge := s.Cells.Edge(nb.Edge)
			if !edge.Enabled {
				continue
			}
			neighbor := s.Cells.Node(nb.Node)
			if neighbor.MutIdx >= 0 {
				negA[r][neighbor.MutIdx] -= 1
			} else {
				negB[r] += neighbor.Pressure
			}
			negA[r][r] += 1
		}
	}

	L, err := choleskyFactorize(negA)
	if err != nil {
		return err
	}
	y := forwardSubstitute(L, negB)
	x := backSubstitute(L, y)

	for r, nodeIdx := range s.MutIdxToNodeIdx {
		s.Cells.Node(nodeIdx).Pressure = x[r]
	}
	return nil
}

// projectVelocities recomputes edge velocities from the freshly solved
// pressures, keeping the previous tick's value in OldVelocity.
func projectVelocities(s *State) {
	for k := 0; k < s.Cells.NumEdges(); k++ {
		low, high := s.Graph.Edge(k)
		edge := s.Cells.Edge(k)
		edge.OldVelocity = edge.Velocity
		edge.Velocity = s.Cells.Node(low).Pressure - s.Cells.Node(high).Pressure
	}
}

// edgeQuantity returns v signed from i's perspective: positive when i is
// the lower-indexed endpoint, negative otherwise.
func edgeQuantity(i, j graph.NodeIndex, v float64) float64 {
	if i < j {
		return v
	}
	return -v
}

// advect transports load across enabled edges, capping per-edge
// transport at the edge's own velocity-implied capacity. Source
// cells are reset to the same driving load as an enabled input cell
// every tick, an unbounded reservoir, so a Source's pressure-boundary
// role actually produces outgoing flow during advection instead of
// sitting at a permanent zero load.
func advect(s *State) {
	for _, n := range s.SourceCells {
		s.Cells.Node(n).Load = inputOnLoad
	}
	for _, n := range s.InputCells {
		cell := s.Cells.Node(n)
		if cell.Enabled {
			cell.Load = inputOnLoad
		} else {
			cell.Load = 0
		}
	}
	for _, n := range s.SinkCells {
		s.Cells.Node(n).Load = 0
	}

	oldLoad := make([]float64, s.Cells.NumNodes())
	for i := 0; i < s.Cells.NumNodes(); i++ {
		cell := s.Cells.Node(i)
		oldLoad[i] = cell.Load
		cell.OldLoad = cell.Load
		cell.InFlow = 0
		cell.OutFlow = 0
	}
	for k := 0; k < s.Cells.NumEdges(); k++ {
		s.Cells.Edge(k).Flow = 0
	}

	for i := 0; i < s.Cells.NumNodes(); i++ {
		if oldLoad[i] <= 0 {
			continue
		}
		outFlowSum := 0.0
		for _, nb := range s.Graph.Neighbors(i) {
			edge := s.Cells.Edge(nb.Edge)
			if !edge.Enabled {
				continue
			}
			v := edgeQuantity(i, nb.Node, edge.Velocity)
			if v > 0 {
				outFlowSum += v
			}
		}
		if outFlowSum <= 0 {
			continue
		}
		for _, nb := range s.Graph.Neighbors(i) {
			edge := s.Cells.Edge(nb.Edge)
			if !edge.Enabled {
				continue
			}
			v := edgeQuantity(i, nb.Node, edge.Velocity)
			if v <= 0 {
				continue
			}
			rel := v / outFlowSum
			transferred := rel * oldLoad[i]
			if transferred > v {
				transferred = v
			}

			j := nb.Node
			jCell := s.Cells.Node(j)
			iCell := s.Cells.Node(i)
			jCell.Load += transferred
			jCell.InFlow += transferred
			iCell.Load -= transferred
			iCell.OutFlow += transferred
			edge.Flow += edgeQuantity(i, j, transferred)
		}
	}
}
