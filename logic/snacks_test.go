package logic

import (
	"math/rand/v2"
	"testing"
)

func fullStage(t *testing.T) *StageGrid {
	t.Helper()
	stage, err := ParseStage(0, []string{"###", "###", "###"}, 1)
	if err != nil {
		t.Fatal(err)
	}
	return stage
}

func TestSpawnSkipsWhenStageIsFull(t *testing.T) {
	cfg := testConfig()
	buf := &EventBuffer{}
	sp := NewSnackSpawner(cfg, rand.New(rand.NewPCG(3, 4)), buf)
	stage := fullStage(t)

	p := NewPlayData(cfg, cfg.StageSettingsFor(0), 3, 3)
	p.WalkableMask = NewWalkableMask(3, 3, false)
	p.SnackCoordinate = Coordinate{1, 1}
	p.HasSnack = true

	if sp.Spawn(p, stage) {
		t.Fatal("Spawn succeeded on a full stage")
	}
	if p.HasSnack {
		t.Error("snack kept after a skipped spawn")
	}
	if cleared := buf.OfKind(EventSnackCleared); len(cleared) != 1 || cleared[0].Coord != (Coordinate{1, 1}) {
		t.Errorf("clear events = %v", cleared)
	}

	p.WalkableMask.Set(Coordinate{2, 2}, true)
	if !sp.Spawn(p, stage) || p.SnackCoordinate != (Coordinate{2, 2}) {
		t.Fatalf("snack at %v, want the only free cell", p.SnackCoordinate)
	}
}

func TestOnSnackEatenAtGoal(t *testing.T) {
	cfg := testConfig()
	buf := &EventBuffer{}
	sp := NewSnackSpawner(cfg, rand.New(rand.NewPCG(3, 4)), buf)
	stage := fullStage(t)

	p := NewPlayData(cfg, StageSettings{Goal: 2, SpeedIncrement: 0.5}, 3, 3)
	s := NewSnake(1)

	sp.OnSnackEaten(p, stage, s)
	if p.Score != 1 || !p.HasSnack || !s.HadASnack || !p.SnackEaten {
		t.Fatalf("after first snack: %+v", p)
	}
	if p.MoveSpeed != 1.5 || p.MoveInterval != cfg.Gameplay.BaseMoveInterval/1.5 {
		t.Errorf("speed = %v interval = %v", p.MoveSpeed, p.MoveInterval)
	}

	buf.Drain()
	sp.OnSnackEaten(p, stage, s)
	if p.Score != 2 || p.HasSnack {
		t.Fatalf("after reaching the goal: score %d, has snack %v", p.Score, p.HasSnack)
	}
	if len(buf.OfKind(EventSnackSpawned)) != 0 || len(buf.OfKind(EventSnackCleared)) != 1 {
		t.Errorf("events at the goal = %v", buf.Events)
	}
}

func TestDecorateCyclesThroughFreeCells(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.WinSnackIntervalSec = 0.25
	buf := &EventBuffer{}
	sp := NewSnackSpawner(cfg, rand.New(rand.NewPCG(5, 6)), buf)
	stage := fullStage(t)

	w := &WinState{Data: WinData{Session: PlayData{WalkableMask: NewWalkableMask(3, 3, true)}}}
	w.Data.Session.WalkableMask.Set(Coordinate{1, 1}, false) // a snake sits here

	sp.Decorate(w, stage, 0.1)
	if len(w.Cosmetic) != 0 {
		t.Fatal("decorated before the interval")
	}
	sp.Decorate(w, stage, 0.2)
	if len(w.Cosmetic) != 1 {
		t.Fatal("no decoration after the interval")
	}
	for i := 0; i < 7; i++ {
		sp.Decorate(w, stage, 0.3)
	}

	seen := make(map[Coordinate]bool)
	for _, c := range w.Cosmetic {
		if c == (Coordinate{1, 1}) {
			t.Fatal("decorated an occupied cell")
		}
		if seen[c] {
			t.Fatalf("cell %v decorated twice in one cycle", c)
		}
		seen[c] = true
	}
	if len(seen) != 8 {
		t.Fatalf("%d cells decorated, want 8", len(seen))
	}

	sp.Decorate(w, stage, 0.3)
	if len(w.Cosmetic) != 9 || len(buf.OfKind(EventCosmeticSnack)) != 9 {
		t.Errorf("cycle did not restart: %d decorations", len(w.Cosmetic))
	}
}
