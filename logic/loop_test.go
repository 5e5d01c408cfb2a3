package logic

import (
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestGameLoopRunsAndStops(t *testing.T) {
	cfg := testConfig()
	cfg.Server.TickRateMs = 1
	loop, err := NewGameLoop(cfg, StaticLayouts{{"###", "#1#", "###"}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	errc := make(chan error, 1)
	go func() { errc <- loop.Run() }()

	loop.InputChan <- Input{Slot: 0, Key: KeyConfirm}
	deadline := time.Now().Add(5 * time.Second)
	for {
		snap, ok := loop.Snapshot()
		if !ok {
			t.Fatal("loop stopped early")
		}
		if snap.Mode == "start" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("still in %s", snap.Mode)
		}
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case batch := <-loop.EventChan:
		if len(batch) == 0 {
			t.Error("empty event batch published")
		}
	case <-time.After(time.Second):
		t.Error("no events published")
	}

	loop.Stop()
	if err := <-errc; err != nil {
		t.Fatalf("Run: %v", err)
	}
	if _, ok := loop.Snapshot(); ok {
		t.Error("snapshot served after stop")
	}
	loop.Stop() // no-op once stopped
}

func TestGameLoopStopsOnBadStage(t *testing.T) {
	cfg := testConfig()
	cfg.Server.TickRateMs = 1
	loop, err := NewGameLoop(cfg, StaticLayouts{{"###", "#"}}, nil)
	if err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-runAsync(loop):
		if errors.Cause(err) != ErrContent {
			t.Fatalf("Run = %v, want a content error", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("loop kept running on a malformed stage")
	}
	<-loop.Done()
}

func runAsync(loop *GameLoop) <-chan error {
	errc := make(chan error, 1)
	go func() { errc <- loop.Run() }()
	return errc
}
