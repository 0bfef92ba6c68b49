package circuit

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/circuitflow/grid"
)

// chipInnerWidth is the horizontal extent, in lattice columns, of an
// initialized chip body between its left and right boundary inputs.
const chipInnerWidth = 4

// Chip is a named sub-circuit: a body Circuit together with the
// ComponentIds of its left and right boundary Input components. The
// boundary components are never materialized when the chip is
// unfolded; their cells are glued directly to the enclosing Chip
// component's cells.
type Chip struct {
	Descr        ChipDescr
	Body         *Circuit
	LeftInputID  ComponentId
	RightInputID ComponentId
}

// ChipDb owns a fixed-size table of chips, addressed by ChipId.
type ChipDb struct {
	chips map[ChipId]*Chip
}

// Init seeds n empty chips, each with an Input placed at the left
// boundary and another at the right boundary of a fixed inner rect.
func Init(n int) *ChipDb {
	db := &ChipDb{chips: make(map[ChipId]*Chip, n)}
	for _, i := range utl.IntRange(n) {
		id := ChipId(i)
		db.chips[id] = newEmptyChip()
	}
	return db
}

func newEmptyChip() *Chip {
	body := NewCircuit()
	innerSize := grid.Coords{X: chipInnerWidth, Y: 0}

	leftElem := Element{Kind: KindInput, Size: 1}
	leftComp := leftElem.NewComponent(grid.Coords{X: 0, Y: 0}, 0)
	leftID := body.insertComponent(leftComp)

	rightElem := Element{Kind: KindInput, Size: 1}
	rightComp := rightElem.NewComponent(grid.Coords{X: innerSize.X, Y: 0}, 2)
	rightID := body.insertComponent(rightComp)

	return &Chip{
		Descr:        ChipDescr{InnerSize: innerSize, LeftSize: 1, RightSize: 1},
		Body:         body,
		LeftInputID:  leftID,
		RightInputID: rightID,
	}
}

// Get returns the chip for id.
func (db *ChipDb) Get(id ChipId) *Chip {
	chip, ok := db.chips[id]
	if !ok {
		chk.Panic("ChipDb.Get: unknown ChipId %v", id)
	}
	return chip
}

// GetDescr returns the static shape of chip id.
func (db *ChipDb) GetDescr(id ChipId) ChipDescr {
	return db.Get(id).Descr
}

// GetCircuit returns the body circuit of chip id.
func (db *ChipDb) GetCircuit(id ChipId) *Circuit {
	return db.Get(id).Body
}

// GetCircuitMut returns the body circuit of chip id, for in-place
// editing.
func (db *ChipDb) GetCircuitMut(id ChipId) *Circuit {
	return db.Get(id).Body
}

// leftFacingCells returns the indices, in order, of comp's cells whose
// element descr places them on the left-facing side of a Chip
// component (i.e. the first Descr.LeftSize cells).
func leftFacingCells(comp Component) []int {
	n := comp.Element.ChipDescr.LeftSize
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		idx[i] = i
	}
	return idx
}

// rightFacingCells returns the indices, in order, of comp's cells on
// the right-facing side of a Chip component (the cells following the
// left-facing ones).
func rightFacingCells(comp Component) []int {
	left := comp.Element.ChipDescr.LeftSize
	n := comp.Element.ChipDescr.RightSize
	idx := make([]int, n)
	for i := 0; i < n; i++ {
		idx[i] = left + i
	}
	return idx
}

// Unfold expands c into a flat circuit by recursively inlining every
// chip body via db. Each Chip component stays in the result as the glue
// point between its outer edges and its inlined body (its cells take the
// place of the body's boundary Inputs). It returns (flat, true)
// on success, or (nil, false) if chip instantiation is cyclic: a chip
// whose body (transitively) instantiates itself aborts the unfold. The
// flattened circuit's Points index is not maintained; consumers use
// only Components and Graph.
func (c *Circuit) Unfold(db *ChipDb) (*Circuit, bool) {
	work := c.Clone()
	finished := make(map[ComponentId]bool)
	containedIn := make(map[ChipId]map[ChipId]bool)

	for {
		var pending []ComponentId
		for _, id := range work.sortedComponentIds() {
			comp := work.Components[id]
			if comp.Element.Kind == KindChip && !finished[id] {
				pending = append(pending, id)
			}
		}
		if len(pending) == 0 {
			break
		}

		for _, outerID := range pending {
			outerComp := work.Components[outerID]
			chipID := outerComp.Element.ChipID
			chip := db.Get(chipID)

			idMap := make(map[ComponentId]ComponentId)
			cellMap := make(map[CellId]CellId)

			leftCells := leftFacingCells(outerComp)
			rightCells := rightFacingCells(outerComp)

			leftInner := chip.Body.Components[chip.LeftInputID]
			for i := range leftInner.Cells {
				cellMap[CellId{Component: chip.LeftInputID, Cell: i}] =
					CellId{Component: outerID, Cell: leftCells[i]}
			}
			rightInner := chip.Body.Components[chip.RightInputID]
			for i := range rightInner.Cells {
				cellMap[CellId{Component: chip.RightInputID, Cell: i}] =
					CellId{Component: outerID, Cell: rightCells[i]}
			}

			for _, innerID := range chip.Body.sortedComponentIds() {
				if innerID == chip.LeftInputID || innerID == chip.RightInputID {
					continue
				}
				innerComp := chip.Body.Components[innerID]
				newID := work.insertComponent(innerComp)
				idMap[innerID] = newID
				for i := range innerComp.Cells {
					cellMap[CellId{Component: innerID, Cell: i}] = CellId{Component: newID, Cell: i}
				}

				if innerComp.Element.Kind == KindChip {
					innerChipID := innerComp.Element.ChipID
					if containedIn[innerChipID] == nil {
						containedIn[innerChipID] = make(map[ChipId]bool)
					}
					containedIn[innerChipID][chipID] = true
					for grandparent := range containedIn[chipID] {
						containedIn[innerChipID][grandparent] = true
					}
					if containedIn[innerChipID][innerChipID] || innerChipID == chipID {
						return nil, false
					}
				}
			}

			chip.Body.Graph.Edges(func(a, b CellId, e Edge) {
				na, oka := cellMap[a]
				nb, okb := cellMap[b]
				if !oka || !okb {
					chk.Panic("Unfold: unmapped inner CellId")
				}
				work.Graph.AddEdge(na, nb, e)
			})

			finished[outerID] = true
		}
	}

	return work, true
}
