package logic

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"
)

// MoveInterval is the seconds between move ticks for a speed. Speeds below minSpeed are clamped so the
// interval stays positive and finite.
func MoveInterval(base, speed, minSpeed float64) float64 {
	if math.IsNaN(speed) || speed < minSpeed {
		speed = minSpeed
	}
	return base / speed
}

// SnackSpawner owns score/speed bookkeeping on snack events and picks snack cells.
type SnackSpawner struct {
	Config *GameConfig
	rng    *rand.Rand
	sink   Sink
}

func NewSnackSpawner(cfg *GameConfig, rng *rand.Rand, sink Sink) *SnackSpawner {
	return &SnackSpawner{Config: cfg, rng: rng, sink: sink}
}

// OnSnackEaten scores the snack for s, speeds the session up and places the next snack, or clears it once
// the goal is reached.
func (sp *SnackSpawner) OnSnackEaten(p *PlayData, stage *StageGrid, s *Snake) {
	log.Printf("snake %d had a lil snack!", s.ID)
	s.HadASnack = true
	p.Score++
	p.SnackEaten = true
	p.MoveSpeed += p.SpeedIncrement
	p.MoveInterval = MoveInterval(sp.Config.Gameplay.BaseMoveInterval, p.MoveSpeed, sp.Config.Gameplay.MinMoveSpeed)

	if p.Score >= p.Goal {
		p.HasSnack = false
		sp.sink.Emit(Event{Kind: EventSnackCleared, Coord: p.SnackCoordinate})
		return
	}
	sp.Spawn(p, stage)
}

// Spawn places the next snack against the session's dynamic mask. With no free cell the spawn is skipped
// and the snack stays cleared; the caller retries on a later move tick.
func (sp *SnackSpawner) Spawn(p *PlayData, stage *StageGrid) bool {
	c, ok := stage.GetNextSnackCoordinate(p.WalkableMask, sp.rng)
	if !ok {
		if p.HasSnack {
			sp.sink.Emit(Event{Kind: EventSnackCleared, Coord: p.SnackCoordinate})
		}
		p.HasSnack = false
		log.Printf("stage %d: no free cell for the next snack, skipping spawn", stage.ID)
		return false
	}
	p.SnackCoordinate = c
	p.HasSnack = true
	sp.sink.Emit(Event{Kind: EventSnackSpawned, Coord: c})
	return true
}

// Decorate runs the cosmetic snack loop of the Win state. Cells already decorated are skipped until every
// free cell has had a snack, then the cycle starts over.
func (sp *SnackSpawner) Decorate(w *WinState, stage *StageGrid, dt float64) {
	w.SnackTimer += dt
	if w.SnackTimer < sp.Config.Gameplay.WinSnackIntervalSec {
		return
	}
	w.SnackTimer = 0

	if w.decorated.Size() == 0 {
		w.decorated = mapset.New[Coordinate]()
	}
	candidates := stage.SnackCandidates(w.Data.Session.WalkableMask, w.decorated.Has)
	if len(candidates) == 0 {
		w.decorated = mapset.New[Coordinate]()
		candidates = stage.SnackCandidates(w.Data.Session.WalkableMask, nil)
	}
	c, ok := pickCoordinate(candidates, sp.rng)
	if !ok {
		return
	}
	w.decorated.Put(c)
	w.Cosmetic = append(w.Cosmetic, c)
	sp.sink.Emit(Event{Kind: EventCosmeticSnack, Coord: c})
}
