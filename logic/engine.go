package logic

import (
	"log"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// maxTransitionsPerTick bounds chained transitions (Init -> Setup) resolved in one tick.
const maxTransitionsPerTick = 4

// Engine runs the simulation. It is not safe for concurrent use; GameLoop owns it.
type Engine struct {
	Config   *GameConfig
	layouts  LayoutSource
	progress ProgressStore
	sink     Sink
	rng      *rand.Rand
	spawner  *SnackSpawner

	state   State
	pending State
	tick    uint64

	stageID  int
	stage    *StageGrid
	revealed int // cells of stage placed so far
	snack    Coordinate
	hasSnack bool

	snakes []*Snake
	chains []*SegmentChain
	inputs []Input
}

// NewEngine validates the stage source and builds an engine in the Init mode. A source without stages is a
// content error. progress and sink may be nil.
func NewEngine(cfg *GameConfig, layouts LayoutSource, progress ProgressStore, sink Sink, rng *rand.Rand) (*Engine, error) {
	if layouts == nil || layouts.Count() == 0 {
		return nil, errors.Wrap(ErrContent, "no stages available")
	}
	if sink == nil {
		sink = SinkFunc(func(Event) {})
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	e := &Engine{
		Config:   cfg,
		layouts:  layouts,
		progress: progress,
		sink:     sink,
		rng:      rng,
		state:    &InitState{},
		snack:    HiddenCoordinate,
	}
	e.spawner = NewSnackSpawner(cfg, rng, SinkFunc(e.emit))
	for id := 1; id <= cfg.Gameplay.Snakes; id++ {
		e.snakes = append(e.snakes, NewSnake(id))
		e.chains = append(e.chains, NewSegmentChain(id))
	}
	e.queue(&InitState{})
	return e, nil
}

func (e *Engine) emit(ev Event) {
	ev.Tick = e.tick
	e.sink.Emit(ev)
}

func (e *Engine) queue(st State) {
	e.pending = st
}

// PushInput buffers an intent for the next tick.
func (e *Engine) PushInput(in Input) {
	e.inputs = append(e.inputs, in)
}

func (e *Engine) State() State { return e.state }

func (e *Engine) Mode() Mode { return e.state.Mode() }

func (e *Engine) StageID() int { return e.stageID }

func (e *Engine) Stage() *StageGrid { return e.stage }

func (e *Engine) Ticks() uint64 { return e.tick }

// Snake returns the snake with the given id (1-based), or nil.
func (e *Engine) Snake(id int) *Snake {
	if id < 1 || id > len(e.snakes) {
		return nil
	}
	return e.snakes[id-1]
}

// Chain returns the segment chain of a snake, or nil.
func (e *Engine) Chain(id int) *SegmentChain {
	if id < 1 || id > len(e.chains) {
		return nil
	}
	return e.chains[id-1]
}

// Session returns the live play session, or nil outside Play.
func (e *Engine) Session() *PlayData {
	if ps, ok := e.state.(*PlayState); ok {
		return ps.Session
	}
	return nil
}

// Tick runs one pass of the pipeline: transitions, reveal, input, movement, segments, terminal checks.
// The only error it returns is a fatal content error from loading a stage.
func (e *Engine) Tick(dt float64) error {
	e.tick++

	for i := 0; e.pending != nil && i < maxTransitionsPerTick; i++ {
		next := e.pending
		e.pending = nil
		if err := e.enter(next); err != nil {
			return err
		}
	}

	if st, ok := e.state.(*SetupState); ok {
		e.reveal(st, dt)
	}

	e.resolveInputs()

	switch st := e.state.(type) {
	case *PlayState:
		p := st.Session
		p.Elapsed += dt
		p.SnackEaten = false
		moved := e.moveSnakes(p)
		for i, s := range e.snakes {
			e.chains[i].Propagate(s, p.WalkableMask, SinkFunc(e.emit))
		}
		if moved && !p.HasSnack && !p.SnackEaten && p.Score < p.Goal {
			e.spawner.Spawn(p, e.stage)
		}
		e.syncMirror(p)
		e.evaluatePlay(p)
	case *WinState:
		e.spawner.Decorate(st, e.stage, dt)
	case *ResetState:
		st.Counter++
		if st.Counter >= e.Config.Gameplay.ResetTicks && e.pending == nil {
			e.queue(&SetupState{StageID: e.stageID})
		}
	}
	return nil
}

func (e *Engine) syncMirror(p *PlayData) {
	p.Snakes = p.Snakes[:0]
	for _, s := range e.snakes {
		p.Snakes = append(p.Snakes, s.PlayData())
	}
}

// evaluatePlay re-checks the terminal conditions and queues the resulting transition.
func (e *Engine) evaluatePlay(p *PlayData) {
	if p.SnackEaten {
		e.uiText(UIScore, scoreLabel(p.Score, p.Goal))
	}
	e.evaluateAllFalling(p)
	if e.pending != nil {
		return
	}
	switch p.Finished() {
	case ModeWin:
		e.queue(&WinState{Data: WinData{StageID: e.stageID, Session: p.Clone()}})
	case ModeDeath:
		cause := DeathCrash
		if !p.Crash {
			cause = DeathFalling
		}
		e.queue(&DeathState{Cause: cause, Score: p.Score, Goal: p.Goal})
	}
}

// reveal places the next stage cells and moves on to Start once the sequencer is done.
func (e *Engine) reveal(st *SetupState, dt float64) {
	for _, c := range st.Sequencer.Advance(dt, st.FastForward) {
		e.revealed++
		if c.Tile == TileVoid {
			continue
		}
		e.emit(Event{Kind: EventTilePlaced, Coord: c.Coord, Tile: c.Tile})
		switch {
		case c.SpawnID > 0:
			s := e.snakes[c.SpawnID-1]
			s.Spawn = c.Coord
			s.Coordinate = c.Coord
			s.PreviousCoordinate = c.Coord
			e.emit(Event{Kind: EventSpawnPoint, SnakeID: c.SpawnID, Coord: c.Coord})
		case c.Snack:
			e.snack = c.Coord
			e.hasSnack = true
			e.emit(Event{Kind: EventSnackSpawned, Coord: c.Coord})
		}
	}

	if !st.Sequencer.Done() || e.pending != nil {
		return
	}
	if st.FastForward && st.BufferTicks < e.Config.Gameplay.FastForwardBufferTicks {
		st.BufferTicks++
		return
	}
	e.queue(&StartState{})
}

// enter switches to st and runs its entry actions.
func (e *Engine) enter(st State) error {
	prev := e.state.Mode()

	switch s := st.(type) {
	case *InitState:
		e.stageID = e.startingStage()
		e.state = s
		e.queue(&SetupState{StageID: e.stageID})
		log.Printf("game state: %s -> %s", prev, s.Mode())
		return nil

	case *SetupState:
		stage, err := LoadStage(e.layouts, s.StageID, e.Config.Gameplay.Snakes)
		if err != nil {
			return errors.Wrap(err, "setup")
		}
		e.stage = stage
		e.stageID = s.StageID
		e.revealed = 0
		// Reset entry already cleared the actors
		if prev != ModeReset {
			e.resetActors()
		}
		s.Sequencer = NewTileRevealSequencer(stage,
			e.Config.Reveal.InitialIntervalSec, e.Config.Reveal.DecayFactor, e.Config.Reveal.MinIntervalSec)
		e.uiText(UIStage, stageLabel(s.StageID))
		e.uiText(UIScore, "")

	case *PlayState:
		settings := e.Config.StageSettingsFor(e.stageID)
		p := NewPlayData(e.Config, settings, e.stage.Width, e.stage.Height)
		for _, sn := range e.snakes {
			if sn.Active {
				p.WalkableMask.Set(sn.Coordinate, false)
			}
		}
		s.Session = p
		if e.hasSnack && p.WalkableMask.Get(e.snack) {
			p.SnackCoordinate = e.snack
			p.HasSnack = true
		} else {
			e.spawner.Spawn(p, e.stage)
		}
		e.syncMirror(p)
		e.uiText(UIScore, scoreLabel(p.Score, p.Goal))

	case *WinState:
		last := e.layouts.Count() - 1
		e.stageID = clampInt(e.stageID+1, 0, last)
		e.saveProgress()

	case *ResetState:
		s.Counter = 0
		e.resetActors()
	}

	e.state = st
	header, sub := headers(st)
	e.uiText(UIHeader, header)
	e.uiText(UISubHeader, sub)
	e.emit(e.stateEvent())
	log.Printf("game state: %s -> %s", prev, st.Mode())
	return nil
}

// stateEvent derives the state-change notification from the current state.
func (e *Engine) stateEvent() Event {
	ev := Event{Kind: EventStateChanged, Mode: e.state.Mode().String(), StageID: e.stageID}
	switch s := e.state.(type) {
	case *PlayState:
		ev.Score, ev.Goal = s.Session.Score, s.Session.Goal
	case *WinState:
		ev.StageID = s.Data.StageID
		ev.Score, ev.Goal = s.Data.Session.Score, s.Data.Session.Goal
	case *DeathState:
		ev.Score, ev.Goal = s.Score, s.Goal
	}
	return ev
}

// startingStage reads the resume pointer; anything unreadable or out of range means stage 0.
func (e *Engine) startingStage() int {
	if e.progress == nil {
		return 0
	}
	id, err := e.progress.LoadStage()
	if err != nil {
		log.Printf("init: could not read saved stage, starting at 0: %v", err)
		return 0
	}
	if id < 0 || id >= e.layouts.Count() {
		log.Printf("init: saved stage %d out of range, starting at 0", id)
		return 0
	}
	return id
}

func (e *Engine) saveProgress() {
	if e.progress == nil {
		return
	}
	if err := e.progress.SaveStage(e.stageID); err != nil {
		log.Printf("win: could not save stage %d: %v", e.stageID, err)
	}
}

// resetActors hides every snake, drops all segments and the snack.
func (e *Engine) resetActors() {
	for i, s := range e.snakes {
		s.Reset()
		e.chains[i].Clear()
		e.emit(Event{Kind: EventSnakeHidden, SnakeID: s.ID, Coord: HiddenCoordinate})
	}
	e.emit(Event{Kind: EventSegmentsClear})
	e.emit(Event{Kind: EventSnackCleared, Coord: HiddenCoordinate})
	e.snack = HiddenCoordinate
	e.hasSnack = false
}
