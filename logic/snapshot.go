package logic

// SnakeSnapshot is the render view of one snake.
type SnakeSnapshot struct {
	ID           int          `json:"id" msgpack:"id"`
	Active       bool         `json:"active" msgpack:"active"`
	Falling      bool         `json:"falling" msgpack:"falling"`
	FallDuration int          `json:"fall_duration" msgpack:"fall_duration"`
	Head         Coordinate   `json:"head" msgpack:"head"`
	Direction    string       `json:"direction" msgpack:"direction"`
	Segments     []Coordinate `json:"segments" msgpack:"segments"`
}

// Snapshot is a self-contained view of the engine for late-joining renderers.
type Snapshot struct {
	Tick     uint64          `json:"tick" msgpack:"tick"`
	Mode     string          `json:"mode" msgpack:"mode"`
	StageID  int             `json:"stage_id" msgpack:"stage_id"`
	Width    int             `json:"width" msgpack:"width"`
	Height   int             `json:"height" msgpack:"height"`
	Tiles    [][]TileKind    `json:"tiles" msgpack:"tiles"` // revealed tiles only
	Snakes   []SnakeSnapshot `json:"snakes" msgpack:"snakes"`
	Snack    *Coordinate     `json:"snack,omitempty" msgpack:"snack,omitempty"`
	Cosmetic []Coordinate    `json:"cosmetic,omitempty" msgpack:"cosmetic,omitempty"`
	Score    int             `json:"score" msgpack:"score"`
	Goal     int             `json:"goal" msgpack:"goal"`
	Header   string          `json:"header" msgpack:"header"`
	Sub      string          `json:"sub_header" msgpack:"sub_header"`
}

// Snapshot copies the current engine view. It shares no memory with the engine.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    e.tick,
		Mode:    e.Mode().String(),
		StageID: e.stageID,
	}
	snap.Header, snap.Sub = headers(e.state)

	if e.stage != nil {
		snap.Width, snap.Height = e.stage.Width, e.stage.Height
		snap.Tiles = make([][]TileKind, e.stage.Height)
		for y := range snap.Tiles {
			snap.Tiles[y] = make([]TileKind, e.stage.Width)
		}
		for i := 0; i < e.revealed && i < len(e.stage.Cells); i++ {
			c := e.stage.Cells[i]
			snap.Tiles[c.Coord.Y][c.Coord.X] = c.Tile
		}
	}

	for i, s := range e.snakes {
		if !s.Active {
			continue
		}
		snap.Snakes = append(snap.Snakes, SnakeSnapshot{
			ID:           s.ID,
			Active:       s.Active,
			Falling:      s.Falling,
			FallDuration: s.FallDuration,
			Head:         s.Coordinate,
			Direction:    s.Direction.String(),
			Segments:     e.chains[i].Cells(),
		})
	}

	switch st := e.state.(type) {
	case *SetupState, *StartState:
		if e.hasSnack {
			c := e.snack
			snap.Snack = &c
		}
	case *PlayState:
		p := st.Session
		snap.Score, snap.Goal = p.Score, p.Goal
		if p.HasSnack {
			c := p.SnackCoordinate
			snap.Snack = &c
		}
	case *WinState:
		snap.Score, snap.Goal = st.Data.Session.Score, st.Data.Session.Goal
		snap.Cosmetic = append([]Coordinate(nil), st.Cosmetic...)
	case *DeathState:
		snap.Score, snap.Goal = st.Score, st.Goal
	}
	return snap
}
