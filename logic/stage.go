package logic

import (
	"log"
	"math/rand/v2"
	"strings"

	"github.com/pkg/errors"
	"github.com/zyedidia/generic/mapset"
)

// ErrContent marks missing or malformed stage content. It is never recovered from.
var ErrContent = errors.New("invalid stage content")

// Layout symbols
const (
	SymbolVoid  = '_'
	SymbolSnack = '*'
)

var floorSymbols = map[rune]TileKind{
	'#': TileStone,
	'=': TilePlank,
	'+': TileMoss,
	'.': TileSand,
}

// LayoutSource resolves a stage id to its rows of symbols.
type LayoutSource interface {
	Count() int
	Layout(id int) ([]string, error)
}

// StaticLayouts is an in-memory LayoutSource.
type StaticLayouts [][]string

func (s StaticLayouts) Count() int { return len(s) }

func (s StaticLayouts) Layout(id int) ([]string, error) {
	if id < 0 || id >= len(s) {
		return nil, errors.Wrapf(ErrContent, "stage %d not found", id)
	}
	return s[id], nil
}

// StageCell is one parsed layout cell, in reveal order.
type StageCell struct {
	Coord   Coordinate
	Tile    TileKind // TileVoid: nothing placed
	SpawnID int      // snake id for a spawn marker, 0 otherwise
	Snack   bool
}

// StageGrid is the parsed stage: dimensions, static walkable mask and markers.
type StageGrid struct {
	ID           int
	Width        int
	Height       int
	Cells        []StageCell
	Walkable     *WalkableMask
	SpawnPoints  map[int]Coordinate
	SnackMarkers []Coordinate
}

// ParseStage builds a StageGrid from layout rows. Spawn markers for ids above snakes are placed as plain floor.
func ParseStage(id int, lines []string, snakes int) (*StageGrid, error) {
	rows := make([][]rune, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []rune(strings.TrimRight(l, "\r")))
	}
	if len(rows) == 0 {
		return nil, errors.Wrapf(ErrContent, "stage %d: empty layout", id)
	}
	width := len(rows[0])
	if width == 0 {
		return nil, errors.Wrapf(ErrContent, "stage %d: empty first row", id)
	}
	for y, r := range rows {
		if len(r) != width {
			return nil, errors.Wrapf(ErrContent, "stage %d: row %d has %d cells, want %d", id, y, len(r), width)
		}
	}

	s := &StageGrid{
		ID:          id,
		Width:       width,
		Height:      len(rows),
		Cells:       make([]StageCell, 0, width*len(rows)),
		Walkable:    NewWalkableMask(width, len(rows), false),
		SpawnPoints: make(map[int]Coordinate),
	}

	seen := mapset.New[int]()
	for y, r := range rows {
		for x, sym := range r {
			c := StageCell{Coord: Coordinate{X: x, Y: y}}
			switch {
			case floorSymbols[sym] != TileVoid:
				c.Tile = floorSymbols[sym]
			case sym >= '1' && sym <= '9':
				c.Tile = TileStone
				sid := int(sym - '0')
				if sid > snakes {
					log.Printf("stage %d: spawn marker for snake %d ignored, only %d snakes", id, sid, snakes)
					break
				}
				if seen.Has(sid) {
					log.Printf("stage %d: duplicate spawn marker for snake %d at %v", id, sid, c.Coord)
				}
				seen.Put(sid)
				c.SpawnID = sid
				s.SpawnPoints[sid] = c.Coord
			case sym == SymbolSnack:
				c.Tile = TileStone
				c.Snack = true
				s.SnackMarkers = append(s.SnackMarkers, c.Coord)
			}
			if c.Tile != TileVoid {
				s.Walkable.Set(c.Coord, true)
			}
			s.Cells = append(s.Cells, c)
		}
	}
	return s, nil
}

// LoadStage fetches and parses a stage from src.
func LoadStage(src LayoutSource, id, snakes int) (*StageGrid, error) {
	lines, err := src.Layout(id)
	if err != nil {
		return nil, errors.Wrapf(err, "load stage %d", id)
	}
	return ParseStage(id, lines, snakes)
}

// IsFloor reports whether c is part of the playable floor.
func (s *StageGrid) IsFloor(c Coordinate) bool {
	return s.Walkable.Get(c)
}

// SnackCandidates lists cells walkable in both the static mask and dynamic, minus any rejected by skip.
func (s *StageGrid) SnackCandidates(dynamic *WalkableMask, skip func(Coordinate) bool) []Coordinate {
	out := make([]Coordinate, 0)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			c := Coordinate{X: x, Y: y}
			if !s.Walkable.Get(c) || !dynamic.Get(c) {
				continue
			}
			if skip != nil && skip(c) {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// GetNextSnackCoordinate picks a uniformly random cell that is floor and currently unoccupied.
// ok is false when no such cell exists; the returned coordinate is then the grid origin.
func (s *StageGrid) GetNextSnackCoordinate(dynamic *WalkableMask, rng *rand.Rand) (Coordinate, bool) {
	return pickCoordinate(s.SnackCandidates(dynamic, nil), rng)
}

func pickCoordinate(candidates []Coordinate, rng *rand.Rand) (Coordinate, bool) {
	if len(candidates) == 0 {
		return Coordinate{}, false
	}
	return candidates[rng.IntN(len(candidates))], true
}
