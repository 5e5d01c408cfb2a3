package logic

import (
	"strings"
)

// TileKind is the visual category of a placed floor tile.
type TileKind int

const (
	TileVoid TileKind = iota
	TileStone
	TilePlank
	TileMoss
	TileSand
)

func (k TileKind) String() string {
	switch k {
	case TileStone:
		return "stone"
	case TilePlank:
		return "plank"
	case TileMoss:
		return "moss"
	case TileSand:
		return "sand"
	}
	return "void"
}

// WalkableMask is a rectangular grid of walkable flags, one row per layout line.
// Out-of-bounds reads are not walkable and out-of-bounds writes are ignored.
type WalkableMask struct {
	Width  int
	Height int
	Cells  [][]bool
}

// NewWalkableMask builds a width x height mask with every cell set to the given value.
func NewWalkableMask(width, height int, walkable bool) *WalkableMask {
	cells := make([][]bool, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			cells[y][x] = walkable
		}
	}
	return &WalkableMask{
		Width:  width,
		Height: height,
		Cells:  cells,
	}
}

// Contains reports whether c has an entry in the mask.
func (m *WalkableMask) Contains(c Coordinate) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}

// Get checks walkability; anything outside the grid is not walkable.
func (m *WalkableMask) Get(c Coordinate) bool {
	if !m.Contains(c) {
		return false
	}
	return m.Cells[c.Y][c.X]
}

func (m *WalkableMask) Set(c Coordinate, walkable bool) {
	if !m.Contains(c) {
		return
	}
	m.Cells[c.Y][c.X] = walkable
}

// Clone returns a deep copy.
func (m *WalkableMask) Clone() *WalkableMask {
	if m == nil {
		return nil
	}
	out := &WalkableMask{Width: m.Width, Height: m.Height, Cells: make([][]bool, len(m.Cells))}
	for y, row := range m.Cells {
		out.Cells[y] = append([]bool(nil), row...)
	}
	return out
}

// Count returns the number of walkable cells.
func (m *WalkableMask) Count() int {
	n := 0
	for _, row := range m.Cells {
		for _, ok := range row {
			if ok {
				n++
			}
		}
	}
	return n
}

// String renders the mask as rows of '.' (walkable) and 'x' (blocked); used for debug logging.
func (m *WalkableMask) String() string {
	var b strings.Builder
	for y, row := range m.Cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, ok := range row {
			if ok {
				b.WriteByte('.')
			} else {
				b.WriteByte('x')
			}
		}
	}
	return b.String()
}
