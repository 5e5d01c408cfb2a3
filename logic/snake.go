package logic

import (
	"log"
)

// Snake is one player-controlled snake head.
type Snake struct {
	ID                 int
	Direction          Direction
	LastDirectionMoved Direction // forbids 180° turns; only the direction actually stepped counts
	Active             bool
	Falling            bool
	FallDuration       int
	Segments           int
	Coordinate         Coordinate
	PreviousCoordinate Coordinate // cell vacated by the last step; the next segment lands here
	Spawn              Coordinate
	HadASnack          bool
	RefreshSegments    bool
	descended          bool
}

func NewSnake(id int) *Snake {
	s := &Snake{ID: id}
	s.Reset()
	return s
}

// Reset returns the snake to its pre-stage state: inactive, hidden, facing up.
func (s *Snake) Reset() {
	s.Direction = DirectionUp
	s.LastDirectionMoved = DirectionNone
	s.Active = false
	s.Falling = false
	s.FallDuration = 0
	s.Segments = 0
	s.Coordinate = HiddenCoordinate
	s.PreviousCoordinate = HiddenCoordinate
	s.Spawn = HiddenCoordinate
	s.HadASnack = false
	s.RefreshSegments = false
	s.descended = false
}

// SetDirection queues a turn. A request opposite to the last step is dropped and false is returned.
func (s *Snake) SetDirection(d Direction) bool {
	if d == DirectionNone {
		return false
	}
	if IsOpposite(s.LastDirectionMoved, d) {
		log.Printf("snake %d can't turn around on itself (%s -> %s)", s.ID, s.LastDirectionMoved, d)
		return false
	}
	s.Direction = d
	return true
}

// CanSpawn reports whether the stage gave this snake a spawn point.
func (s *Snake) CanSpawn() bool {
	return !s.Spawn.Hidden()
}

// Step moves the head one cell in its current direction.
func (s *Snake) Step() {
	s.PreviousCoordinate = s.Coordinate
	s.Coordinate = s.Coordinate.Add(s.Direction.Offset())
	s.LastDirectionMoved = s.Direction
}

// PlayData exports the fields the session mirrors.
func (s *Snake) PlayData() SnakePlayData {
	return SnakePlayData{
		ID:                 s.ID,
		Active:             s.Active,
		Falling:            s.Falling,
		FallDuration:       s.FallDuration,
		Coordinate:         s.Coordinate,
		PreviousCoordinate: s.PreviousCoordinate,
		Segments:           s.Segments,
		HadASnack:          s.HadASnack,
		RefreshSegments:    s.RefreshSegments,
	}
}

func (s *Snake) movedEvent() Event {
	return Event{
		Kind:         EventSnakeMoved,
		SnakeID:      s.ID,
		Coord:        s.Coordinate,
		Falling:      s.Falling,
		FallDuration: s.FallDuration,
	}
}

// resolveInputs applies this tick's buffered intents according to the current mode.
func (e *Engine) resolveInputs() {
	inputs := e.inputs
	e.inputs = e.inputs[:0]

	for _, in := range inputs {
		switch st := e.state.(type) {
		case *SetupState:
			if in.Key == KeyConfirm && !st.FastForward {
				log.Printf("setup: fast-forwarding stage %d", st.StageID)
				st.FastForward = true
			}
		case *StartState:
			s := e.snakeForSlot(in.Slot)
			if s == nil {
				continue
			}
			if e.activate(s, nil) {
				s.SetDirection(in.Key.Direction())
				if e.pending == nil {
					e.queue(&PlayState{})
				}
			}
		case *PlayState:
			s := e.snakeForSlot(in.Slot)
			if s == nil {
				continue
			}
			if !s.Active {
				// join in progress
				if e.activate(s, st.Session) {
					s.SetDirection(in.Key.Direction())
				}
				continue
			}
			s.SetDirection(in.Key.Direction())
		case *WinState, *DeathState:
			if in.Key == KeyConfirm && e.pending == nil {
				e.queue(&ResetState{})
			}
		}
	}
}

func (e *Engine) snakeForSlot(slot int) *Snake {
	id, ok := e.Config.SnakeForSlot(slot)
	if !ok {
		return nil
	}
	return e.snakes[id-1]
}

// activate places a snake at its spawn point. During play the spawn cell must be free; it is then occupied.
func (e *Engine) activate(s *Snake, p *PlayData) bool {
	if s.Active {
		return true
	}
	if !s.CanSpawn() {
		return false
	}
	if p != nil {
		if !p.WalkableMask.Get(s.Spawn) {
			return false
		}
		p.WalkableMask.Set(s.Spawn, false)
	}
	s.Active = true
	s.Coordinate = s.Spawn
	s.PreviousCoordinate = s.Spawn
	log.Printf("snake %d joined at %v", s.ID, s.Spawn)
	e.emit(s.movedEvent())
	return true
}

// moveSnakes is the only writer of the dynamic mask. Snakes move in ascending id, so a later snake sees the
// fresh position of an earlier one within the same tick.
func (e *Engine) moveSnakes(p *PlayData) bool {
	if p.Elapsed <= p.LastMoveTime+p.MoveInterval {
		return false
	}

	moved := false
	for _, s := range e.snakes {
		if !s.Active {
			continue
		}
		moved = true

		if s.Falling {
			s.FallDuration++
			s.descended = true
			e.emit(s.movedEvent())
			continue
		}

		s.Step()

		if !e.stage.IsFloor(s.Coordinate) {
			s.Falling = true
			log.Printf("snake %d is falling at %v", s.ID, s.Coordinate)
			e.emit(Event{Kind: EventSnakeFalling, SnakeID: s.ID, Coord: s.Coordinate})
		} else if !p.WalkableMask.Get(s.Coordinate) {
			log.Printf("woops snake %d crashed at %v", s.ID, s.Coordinate)
			p.Crash = true
			if p.CrashedSnake == 0 {
				p.CrashedSnake = s.ID
			}
		}

		p.WalkableMask.Set(s.Coordinate, false)
		if s.Segments == 0 {
			p.WalkableMask.Set(s.PreviousCoordinate, true)
		}

		if !s.Falling && p.HasSnack && s.Coordinate == p.SnackCoordinate {
			e.spawner.OnSnackEaten(p, e.stage, s)
		}

		s.RefreshSegments = true
		e.emit(s.movedEvent())
	}

	if moved {
		p.LastMoveTime = p.Elapsed
		p.Moves++
	}
	return moved
}

// evaluateAllFalling sets AllFalling once every active snake has been falling for the grace period.
func (e *Engine) evaluateAllFalling(p *PlayData) {
	active := 0
	for _, s := range e.snakes {
		if !s.Active {
			continue
		}
		active++
		if !s.Falling || s.FallDuration < e.Config.Gameplay.FallGraceMoves {
			p.AllFalling = false
			return
		}
	}
	p.AllFalling = active > 0
}
