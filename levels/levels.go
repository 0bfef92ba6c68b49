// Package levels collects example Level definitions.
package levels

import (
	"math/rand"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/circuitflow/flow"
	"github.com/cpmech/circuitflow/grid"
	"github.com/cpmech/circuitflow/level"
)

const flowDetectThreshold = 0.01

// sequenceLevel writes a random bit sequence onto a 2-wire input bus (a
// strobe line and a data line) and checks that the same sequence comes
// back out the output bus, twice in a row, before declaring success.
type sequenceLevel struct {
	seq     []bool
	written int
	read    int
	epochs  int
}

func setInputOn(s *flow.State, node int, on bool) {
	s.Cells.Node(node).Enabled = on
}

func (sl *sequenceLevel) TimeStep(s *flow.State) (level.Outcome, bool) {
	if sl.written < len(sl.seq) {
		setInputOn(s, s.InputCells[0], true)
		setInputOn(s, s.InputCells[1], sl.seq[sl.written])
		io.Pf("write %v\n", sl.seq[sl.written])
		sl.written++
	} else {
		setInputOn(s, s.InputCells[0], false)
		setInputOn(s, s.InputCells[1], false)
	}

	if s.Cells.Node(s.OutputCells[0]).InFlow <= flowDetectThreshold {
		return level.Success, false
	}

	output := s.Cells.Node(s.OutputCells[1]).InFlow > flowDetectThreshold
	io.Pf("read %v\n", output)

	if output != sl.seq[sl.read] {
		return level.Failure, true
	}
	sl.read++
	if sl.read == len(sl.seq) {
		sl.read = 0
		sl.epochs++
		if sl.epochs == 2 {
			return level.Success, true
		}
	}
	return level.Success, false
}

// NewSequenceLevel returns a Level whose judge writes n random bits
// across a 2-wire bus and checks they read back correctly for two
// epochs before succeeding.
func NewSequenceLevel(n int) *level.Level {
	return &level.Level{
		InputSize:  2,
		InputPos:   grid.Coords{X: 0, Y: 0},
		OutputSize: 2,
		OutputPos:  grid.Coords{X: 10, Y: 0},
		NewImpl: func() level.LevelImpl {
			seq := make([]bool, n)
			for i := range seq {
				seq[i] = rand.Intn(2) == 1
			}
			return &sequenceLevel{seq: seq}
		},
	}
}
