// Package grid implements the lattice geometry primitives shared by the
// circuit and flow packages: integer coordinates, the four cardinal
// directions, and axis-aligned rectangles with inclusive iteration.
package grid

import "github.com/cpmech/gosl/chk"

// Coords is a point on the integer lattice.
type Coords struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns a + b.
func (a Coords) Add(b Coords) Coords {
	return Coords{a.X + b.X, a.Y + b.Y}
}

// Sub returns a - b.
func (a Coords) Sub(b Coords) Coords {
	return Coords{a.X - b.X, a.Y - b.Y}
}

// Dir is one of the four cardinal directions.
type Dir int

const (
	Left Dir = iota
	Right
	Up
	Down
)

// Dirs lists all four directions in a fixed order, used whenever code
// needs to enumerate them deterministically.
var Dirs = [4]Dir{Left, Right, Up, Down}

// Axis is the orientation of a Dir.
type Axis int

const (
	Horizontal Axis = iota
	Vertical
)

// DirFromCoords returns the direction d such that d.Apply(a) == b. It
// panics (a programmer error, not a recoverable one) if a and b are not
// lattice-adjacent.
func DirFromCoords(a, b Coords) Dir {
	switch {
	case b.X == a.X-1 && b.Y == a.Y:
		return Left
	case b.X == a.X+1 && b.Y == a.Y:
		return Right
	case b.Y == a.Y-1 && b.X == a.X:
		return Up
	case b.Y == a.Y+1 && b.X == a.X:
		return Down
	default:
		chk.Panic("DirFromCoords: %v and %v are not lattice-adjacent", a, b)
		return Left
	}
}

// Invert returns the opposite direction.
func (d Dir) Invert() Dir {
	return d.RotateCWN(2)
}

// RotateCW returns the direction one quarter-turn clockwise from d.
func (d Dir) RotateCW() Dir {
	switch d {
	case Left:
		return Up
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	default:
		chk.Panic("RotateCW: invalid Dir %v", d)
		return Left
	}
}

// RotateCWN applies RotateCW n times.
func (d Dir) RotateCWN(n int) Dir {
	for i := 0; i < n%4; i++ {
		d = d.RotateCW()
	}
	return d
}

// Delta returns the unit coordinate offset in direction d.
func (d Dir) Delta() Coords {
	switch d {
	case Left:
		return Coords{-1, 0}
	case Right:
		return Coords{1, 0}
	case Up:
		return Coords{0, -1}
	case Down:
		return Coords{0, 1}
	default:
		chk.Panic("Delta: invalid Dir %v", d)
		return Coords{}
	}
}

// Apply returns c shifted one step in direction d.
func (d Dir) Apply(c Coords) Coords {
	return c.Add(d.Delta())
}

// ApplyN applies Apply n times.
func (d Dir) ApplyN(c Coords, n int) Coords {
	for i := 0; i < n; i++ {
		c = d.Apply(c)
	}
	return c
}

// ToAxis returns the axis this direction lies on.
func (d Dir) ToAxis() Axis {
	switch d {
	case Left, Right:
		return Horizontal
	case Up, Down:
		return Vertical
	default:
		chk.Panic("ToAxis: invalid Dir %v", d)
		return Horizontal
	}
}

// Invert returns the other axis.
func (a Axis) Invert() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Rect is an axis-aligned rectangle on the lattice, identified by its
// top-left corner and a non-negative size delta. Iteration is over the
// closed interval [Pos, Pos+Size], i.e. (Size.X+1)*(Size.Y+1) points.
type Rect struct {
	Pos  Coords
	Size Coords
}

// RectFromCoords builds the rect spanning two opposite corners.
func RectFromCoords(a, b Coords) Rect {
	pos := Coords{min(a.X, b.X), min(a.Y, b.Y)}
	size := Coords{abs(a.X - b.X), abs(a.Y - b.Y)}
	return Rect{Pos: pos, Size: size}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// Iter enumerates every lattice point of the rect, row-major, from the
// top-left corner to the bottom-right corner, inclusive.
func (r Rect) Iter() []Coords {
	pts := make([]Coords, 0, (r.Size.X+1)*(r.Size.Y+1))
	for y := 0; y <= r.Size.Y; y++ {
		for x := 0; x <= r.Size.X; x++ {
			pts = append(pts, Coords{r.Pos.X + x, r.Pos.Y + y})
		}
	}
	return pts
}

// RotateN rotates the rect about its Pos corner n quarter turns; the
// size components swap on odd n.
func (r Rect) RotateN(n int) Rect {
	if n%2 == 0 {
		return r
	}
	return Rect{Pos: r.Pos, Size: Coords{r.Size.Y, r.Size.X}}
}

// FirstCornerCW returns the corner at the start, under clockwise
// traversal, of the side of the rect facing dir.
func (r Rect) FirstCornerCW(dir Dir) Coords {
	switch dir {
	case Up:
		return r.Pos
	case Right:
		return r.Pos.Add(Coords{r.Size.X, 0})
	case Down:
		return r.Pos.Add(Coords{r.Size.X, r.Size.Y})
	case Left:
		return r.Pos.Add(Coords{0, r.Size.Y})
	default:
		chk.Panic("FirstCornerCW: invalid Dir %v", dir)
		return Coords{}
	}
}

// IsWithin reports whether c lies within the closed rectangle.
func (r Rect) IsWithin(c Coords) bool {
	return c.X >= r.Pos.X && c.X <= r.Pos.X+r.Size.X &&
		c.Y >= r.Pos.Y && c.Y <= r.Pos.Y+r.Size.Y
}
