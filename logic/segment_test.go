package logic

import (
	"testing"
)

// stepWithMask moves the head the way the engine does and updates the dynamic mask.
func stepWithMask(s *Snake, mask *WalkableMask) {
	s.Step()
	mask.Set(s.Coordinate, false)
	if s.Segments == 0 {
		mask.Set(s.PreviousCoordinate, true)
	}
	s.RefreshSegments = true
}

func TestSegmentsTrailHead(t *testing.T) {
	s := NewSnake(1)
	s.Active = true
	s.Coordinate = Coordinate{0, 0}
	s.Direction = DirectionRight
	chain := NewSegmentChain(1)
	mask := NewWalkableMask(12, 1, true)
	mask.Set(s.Coordinate, false)

	buf := &EventBuffer{}
	history := []Coordinate{s.Coordinate}

	for step := 1; step <= 10; step++ {
		stepWithMask(s, mask)
		history = append(history, s.Coordinate)
		if step <= 3 {
			s.HadASnack = true
		}
		buf.Drain()
		chain.Propagate(s, mask, buf)

		if step <= 3 {
			if s.Segments != step {
				t.Fatalf("step %d: %d segments, want %d", step, s.Segments, step)
			}
			if spawned := buf.OfKind(EventSegmentSpawned); len(spawned) != 1 || spawned[0].Coord != s.Coordinate {
				t.Fatalf("step %d: segment spawn events %v", step, spawned)
			}
			continue
		}

		// the body sits on exactly the last n head positions
		want := make(map[Coordinate]bool)
		for i := 1; i <= s.Segments; i++ {
			want[history[len(history)-1-i]] = true
		}
		for _, c := range chain.Cells() {
			if !want[c] {
				t.Fatalf("step %d: segment at %v, want one of %v", step, c, want)
			}
			delete(want, c)
		}
		if len(want) != 0 {
			t.Fatalf("step %d: no segment on %v", step, want)
		}

		// and the mask is blocked on the head and body only
		if got := 12 - mask.Count(); got != s.Segments+1 {
			t.Fatalf("step %d: %d blocked cells, want %d\n%s", step, got, s.Segments+1, mask)
		}

		if step > 4 {
			if moved := buf.OfKind(EventSegmentMoved); len(moved) != 1 {
				t.Fatalf("step %d: %d segments moved, want exactly the tail", step, len(moved))
			}
		}
	}
}

func TestSegmentsIdleWithoutRefresh(t *testing.T) {
	s := NewSnake(1)
	s.Coordinate = Coordinate{1, 0}
	chain := NewSegmentChain(1)
	chain.Grow(s, &EventBuffer{})

	buf := &EventBuffer{}
	chain.Propagate(s, nil, buf)
	if len(buf.Events) != 0 || chain.Segments[0].MoveCounter != 0 {
		t.Fatal("chain advanced without a head move")
	}

	s.descended = true
	chain.Propagate(s, nil, buf)
	if got := buf.OfKind(EventSegmentMoved); len(got) != 1 || got[0].Coord != (Coordinate{1, 0}) {
		t.Fatalf("descend events = %v", got)
	}
	if chain.Segments[0].MoveCounter != 0 {
		t.Error("descending moved a segment counter")
	}

	chain.Clear()
	if len(chain.Cells()) != 0 {
		t.Error("Clear left segments behind")
	}
}

func TestSetDirectionRejectsReversal(t *testing.T) {
	s := NewSnake(1)
	if s.Direction != DirectionUp {
		t.Fatalf("new snake faces %s, want up", s.Direction)
	}
	// nothing stepped yet: any turn is fine
	if !s.SetDirection(DirectionDown) {
		t.Fatal("turn before the first step rejected")
	}

	s.Coordinate = Coordinate{5, 5}
	s.Step()
	tests := []struct {
		d    Direction
		want bool
	}{
		{DirectionUp, false},
		{DirectionNone, false},
		{DirectionLeft, true},
		{DirectionRight, true},
		{DirectionDown, true},
	}
	for _, tt := range tests {
		if got := s.SetDirection(tt.d); got != tt.want {
			t.Errorf("SetDirection(%s) after stepping down = %v, want %v", tt.d, got, tt.want)
		}
	}

	// only the direction actually stepped counts
	s.SetDirection(DirectionLeft)
	if !s.SetDirection(DirectionRight) {
		t.Error("reversal checked against a queued turn instead of the last step")
	}
}

func TestStepAndKeys(t *testing.T) {
	s := NewSnake(2)
	s.Coordinate = Coordinate{3, 3}
	for _, k := range []Key{KeyUp, KeyLeft, KeyLeft, KeyDown} {
		s.SetDirection(k.Direction())
		s.Step()
	}
	if s.Coordinate != (Coordinate{1, 3}) || s.PreviousCoordinate != (Coordinate{1, 2}) {
		t.Fatalf("at %v from %v", s.Coordinate, s.PreviousCoordinate)
	}

	for _, name := range []string{"up", "down", "left", "right", "confirm"} {
		k, ok := ParseKey(name)
		if !ok || k.String() != name {
			t.Errorf("ParseKey(%q) = %v, %v", name, k, ok)
		}
	}
	if _, ok := ParseKey("jump"); ok {
		t.Error("ParseKey accepted an unknown key")
	}
	if KeyConfirm.Direction() != DirectionNone {
		t.Error("confirm has a direction")
	}
}
