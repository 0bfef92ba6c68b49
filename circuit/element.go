package circuit

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/circuitflow/grid"
)

// Kind discriminates the element catalog.
type Kind int

const (
	KindNode Kind = iota
	KindBridge
	KindSwitch
	KindSource
	KindSink
	KindInput
	KindOutput
	KindPower
	KindChip
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "Node"
	case KindBridge:
		return "Bridge"
	case KindSwitch:
		return "Switch"
	case KindSource:
		return "Source"
	case KindSink:
		return "Sink"
	case KindInput:
		return "Input"
	case KindOutput:
		return "Output"
	case KindPower:
		return "Power"
	case KindChip:
		return "Chip"
	default:
		return "?"
	}
}

// ChipId identifies a chip in a ChipDb.
type ChipId int

// ChipDescr is the static shape of a chip element: its body occupies an
// inner rect of InnerSize, with LeftSize boundary cells on the left and
// RightSize boundary cells on the right.
type ChipDescr struct {
	InnerSize           grid.Coords
	LeftSize, RightSize int
}

// Element is a tagged variant over the component catalog. Only the
// fields relevant to Kind are meaningful.
type Element struct {
	Kind Kind

	// KindSwitch
	SwitchOn bool

	// KindInput, KindOutput
	Size int

	// KindChip
	ChipID    ChipId
	ChipDescr ChipDescr
}

// CellDescr is one cell of an element's neutral-frame layout: PosDir/K
// locate the cell (via Rect.FirstCornerCW + a perpendicular walk),
// EdgeDirs list the outward directions the cell admits an edge in.
type CellDescr struct {
	PosDir   grid.Dir
	K        int
	EdgeDirs []grid.Dir
}

// ElementDescr is the neutral-frame (unrotated) geometry of an element.
type ElementDescr struct {
	Size  grid.Coords
	Cells []CellDescr
}

// Descr returns the neutral-frame geometry for e.
func (e Element) Descr() ElementDescr {
	switch e.Kind {
	case KindNode:
		return ElementDescr{
			Size: grid.Coords{X: 0, Y: 0},
			Cells: []CellDescr{
				{PosDir: grid.Left, K: 0, EdgeDirs: []grid.Dir{grid.Left, grid.Right, grid.Up, grid.Down}},
			},
		}
	case KindBridge:
		return ElementDescr{
			Size: grid.Coords{X: 0, Y: 0},
			Cells: []CellDescr{
				{PosDir: grid.Left, K: 0, EdgeDirs: []grid.Dir{grid.Up, grid.Down}},
				{PosDir: grid.Left, K: 0, EdgeDirs: []grid.Dir{grid.Left, grid.Right}},
			},
		}
	case KindSwitch:
		return ElementDescr{
			Size: grid.Coords{X: 1, Y: 0},
			Cells: []CellDescr{
				{PosDir: grid.Left, K: 0, EdgeDirs: []grid.Dir{grid.Left, grid.Up, grid.Down}},  // control
				{PosDir: grid.Right, K: 0, EdgeDirs: []grid.Dir{grid.Right, grid.Up, grid.Down}}, // flow
			},
		}
	case KindSource:
		return ElementDescr{
			Size:  grid.Coords{X: 0, Y: 0},
			Cells: []CellDescr{{PosDir: grid.Right, K: 0, EdgeDirs: []grid.Dir{grid.Right}}},
		}
	case KindSink:
		return ElementDescr{
			Size:  grid.Coords{X: 0, Y: 0},
			Cells: []CellDescr{{PosDir: grid.Left, K: 0, EdgeDirs: []grid.Dir{grid.Left}}},
		}
	case KindInput:
		if e.Size < 1 {
			chk.Panic("Input: Size must be >= 1, got %d", e.Size)
		}
		cells := make([]CellDescr, e.Size)
		for k := 0; k < e.Size; k++ {
			cells[k] = CellDescr{PosDir: grid.Left, K: k, EdgeDirs: []grid.Dir{grid.Right}}
		}
		return ElementDescr{Size: grid.Coords{X: 0, Y: e.Size - 1}, Cells: cells}
	case KindOutput:
		if e.Size < 1 {
			chk.Panic("Output: Size must be >= 1, got %d", e.Size)
		}
		cells := make([]CellDescr, e.Size)
		for k := 0; k < e.Size; k++ {
			cells[k] = CellDescr{PosDir: grid.Left, K: k, EdgeDirs: []grid.Dir{grid.Left}}
		}
		return ElementDescr{Size: grid.Coords{X: 0, Y: e.Size - 1}, Cells: cells}
	case KindPower:
		return ElementDescr{
			Size: grid.Coords{X: 0, Y: 0},
			Cells: []CellDescr{
				{PosDir: grid.Left, K: 0, EdgeDirs: []grid.Dir{grid.Left}},  // control
				{PosDir: grid.Left, K: 0, EdgeDirs: []grid.Dir{grid.Right}}, // power out
			},
		}
	case KindChip:
		d := e.ChipDescr
		height := d.LeftSize
		if d.RightSize > height {
			height = d.RightSize
		}
		cells := make([]CellDescr, 0, d.LeftSize+d.RightSize)
		for k := 0; k < d.LeftSize; k++ {
			cells = append(cells, CellDescr{PosDir: grid.Left, K: k, EdgeDirs: []grid.Dir{grid.Left}})
		}
		for k := 0; k < d.RightSize; k++ {
			cells = append(cells, CellDescr{PosDir: grid.Right, K: k, EdgeDirs: []grid.Dir{grid.Right}})
		}
		return ElementDescr{Size: grid.Coords{X: 1, Y: height - 1}, Cells: cells}
	default:
		chk.Panic("Descr: unknown element kind %v", e.Kind)
		return ElementDescr{}
	}
}

// NewComponent instantiates e at topLeftPos with rotationCW quarter
// turns, deriving the rotated rect, cell positions, and per-cell
// admissible edge directions.
func (e Element) NewComponent(topLeftPos grid.Coords, rotationCW int) Component {
	descr := e.Descr()
	rect := grid.Rect{Pos: topLeftPos, Size: descr.Size}.RotateN(rotationCW)

	cells := make([]grid.Coords, len(descr.Cells))
	edgeDirs := make([][]grid.Dir, len(descr.Cells))
	for i, cd := range descr.Cells {
		rotDir := cd.PosDir.RotateCWN(rotationCW)
		corner := rect.FirstCornerCW(rotDir)
		perpDir := rotDir.RotateCW()
		cells[i] = perpDir.ApplyN(corner, cd.K)

		dirs := make([]grid.Dir, len(cd.EdgeDirs))
		for j, d := range cd.EdgeDirs {
			dirs[j] = d.RotateCWN(rotationCW)
		}
		edgeDirs[i] = dirs
	}

	return Component{
		Element:     e,
		Pos:         topLeftPos,
		RotationCW:  rotationCW,
		Rect:        rect,
		Cells:       cells,
		CellEdgeDir: edgeDirs,
	}
}
