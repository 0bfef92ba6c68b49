package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/circuitflow/circuit"
	"github.com/cpmech/circuitflow/level"
	"github.com/cpmech/circuitflow/levels"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.Pfred("ERROR: %v\n", err)
		}
	}()

	// circuit file and run options
	chips := flag.Int("chips", 0, "number of chip slots to pre-allocate in the chip database")
	ticks := flag.Int("ticks", 2000, "maximum number of simulation ticks before giving up")
	seqBits := flag.Int("seq", 8, "bit count for the built-in sequence-level judge")
	flag.Parse()

	if len(flag.Args()) < 1 {
		chk.Panic("Please, provide a circuit configuration file. Ex.: mycircuit.json")
	}
	cfgPath := flag.Arg(0)

	io.Pf("circuitflow: loading %q\n", cfgPath)
	cfg, err := level.LoadConfig(cfgPath)
	if err != nil {
		chk.Panic("%v", err)
	}

	db := circuit.Init(*chips)
	built := cfg.BuildCircuit(db)

	flat, ok := built.Unfold(db)
	if !ok {
		chk.Panic("circuitflow: chip instantiation is cyclic")
	}

	lvl := levels.NewSequenceLevel(*seqBits)
	state := lvl.NewState(flat)

	for tick := 0; tick < *ticks; tick++ {
		outcome, done := state.TimeStep()
		if done {
			io.Pf("circuitflow: finished after %d ticks: %v\n", tick+1, outcome)
			return
		}
	}
	io.Pfred("circuitflow: no outcome reached after %d ticks\n", *ticks)
}
