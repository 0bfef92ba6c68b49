package level

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/circuitflow/circuit"
	"github.com/cpmech/circuitflow/grid"
)

// ComponentConfig is the on-disk description of one placed component.
type ComponentConfig struct {
	Kind       string      `json:"kind"`
	Pos        grid.Coords `json:"pos"`
	RotationCW int         `json:"rotation_cw"`

	Size     int            `json:"size,omitempty"`      // Input, Output
	SwitchOn bool           `json:"switch_on,omitempty"` // Switch
	ChipID   circuit.ChipId `json:"chip_id,omitempty"`   // Chip
}

// EdgeConfig is the on-disk description of one placed edge, addressed
// positionally the way ActionPlaceEdgeAtPos is.
type EdgeConfig struct {
	Pos grid.Coords `json:"pos"`
	Dir string      `json:"dir"`
}

var dirByName = map[string]grid.Dir{
	"left":  grid.Left,
	"right": grid.Right,
	"up":    grid.Up,
	"down":  grid.Down,
}

var kindByName = map[string]circuit.Kind{
	"node":   circuit.KindNode,
	"bridge": circuit.KindBridge,
	"switch": circuit.KindSwitch,
	"source": circuit.KindSource,
	"sink":   circuit.KindSink,
	"input":  circuit.KindInput,
	"output": circuit.KindOutput,
	"power":  circuit.KindPower,
	"chip":   circuit.KindChip,
}

// Element resolves cc into a circuit.Element, consulting db for a Chip's
// static shape.
func (cc ComponentConfig) Element(db *circuit.ChipDb) circuit.Element {
	kind, ok := kindByName[cc.Kind]
	if !ok {
		chk.Panic("ComponentConfig: unknown kind %q", cc.Kind)
	}
	e := circuit.Element{Kind: kind, Size: cc.Size, SwitchOn: cc.SwitchOn, ChipID: cc.ChipID}
	if kind == circuit.KindChip {
		e.ChipDescr = db.GetDescr(cc.ChipID)
	}
	return e
}

// Config is the JSON-serializable description of a level and its
// starting circuit.
type Config struct {
	InputSize  int         `json:"input_size"`
	InputPos   grid.Coords `json:"input_pos"`
	OutputSize int         `json:"output_size"`
	OutputPos  grid.Coords `json:"output_pos"`

	Components []ComponentConfig `json:"circuit"`
	Edges      []EdgeConfig      `json:"edges"`
}

// LoadConfig reads and decodes a level configuration file.
func LoadConfig(path string) (*Config, error) {
	buf, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("LoadConfig: cannot read %q: %v", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(buf, &cfg); err != nil {
		return nil, chk.Err("LoadConfig: cannot unmarshal %q: %v", path, err)
	}
	return &cfg, nil
}

// BuildCircuit replays cfg's component list and then its edge list into
// a fresh Circuit, in file order, consulting db for Chip element shapes.
func (cfg *Config) BuildCircuit(db *circuit.ChipDb) *circuit.Circuit {
	c := circuit.NewCircuit()
	for _, cc := range cfg.Components {
		elem := cc.Element(db)
		comp := elem.NewComponent(cc.Pos, cc.RotationCW)
		if _, ok := circuit.NewPlaceComponent(comp).TryPerform(c); !ok {
			chk.Panic("BuildCircuit: cannot place %q at %v", cc.Kind, cc.Pos)
		}
	}
	for _, ec := range cfg.Edges {
		dir, ok := dirByName[ec.Dir]
		if !ok {
			chk.Panic("BuildCircuit: unknown edge direction %q", ec.Dir)
		}
		if _, ok := circuit.NewPlaceEdgeAtPos(ec.Pos, dir, circuit.Edge{}).TryPerform(c); !ok {
			chk.Panic("BuildCircuit: cannot place edge at %v towards %q", ec.Pos, ec.Dir)
		}
	}
	return c
}
