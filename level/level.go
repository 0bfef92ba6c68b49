// Package level implements the level harness: seeding a circuit with its
// boundary Input/Output components, driving the flow simulation one tick
// at a time, and asking a host-supplied LevelImpl whether the run has
// reached a Success or Failure outcome.
package level

import (
	"github.com/cpmech/circuitflow/circuit"
	"github.com/cpmech/circuitflow/flow"
	"github.com/cpmech/circuitflow/grid"
)

// Outcome is the terminal verdict of a level run.
type Outcome int

const (
	Success Outcome = iota
	Failure
)

func (o Outcome) String() string {
	if o == Success {
		return "Success"
	}
	return "Failure"
}

// LevelImpl is the host-supplied judge: it inspects flow state after
// every tick and decides whether the run is done.
type LevelImpl interface {
	TimeStep(s *flow.State) (Outcome, bool)
}

// Level is the static description of a level: the fixed position and
// width of its Input/Output boundary, plus a factory for a fresh judge.
type Level struct {
	InputSize  int
	InputPos   grid.Coords
	OutputSize int
	OutputPos  grid.Coords

	NewImpl func() LevelImpl
}

// NewCircuit returns a circuit seeded with this level's boundary Input
// and Output components, ready for the player to build around.
func (l Level) NewCircuit() *circuit.Circuit {
	c := circuit.NewCircuit()

	input := circuit.Element{Kind: circuit.KindInput, Size: l.InputSize}.NewComponent(l.InputPos, 0)
	circuit.NewPlaceComponent(input).Perform(c)

	output := circuit.Element{Kind: circuit.KindOutput, Size: l.OutputSize}.NewComponent(l.OutputPos, 0)
	circuit.NewPlaceComponent(output).Perform(c)

	return c
}

// LevelState is a running instance of a level: the live flow simulation
// plus the judge tracking its progress.
type LevelState struct {
	Flow *flow.State
	impl LevelImpl
}

// NewState builds a LevelState over c (which must already be unfolded —
// see Circuit.Unfold), with a freshly created judge.
func (l Level) NewState(c *circuit.Circuit) *LevelState {
	return &LevelState{
		Flow: flow.NewState(c),
		impl: l.NewImpl(),
	}
}

// TimeStep advances the flow simulation by one tick and asks the judge
// for a verdict. The second return value is false while the run is
// still in progress.
func (s *LevelState) TimeStep() (Outcome, bool) {
	flow.TimeStep(s.Flow, 0.0)
	return s.impl.TimeStep(s.Flow)
}
