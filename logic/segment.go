package logic

// Segment is one trailing body cell of a snake.
type Segment struct {
	SnakeID     int
	Coordinate  Coordinate
	MoveCounter int // move ticks spent on the current cell
}

// SegmentChain holds the segments of one snake, oldest first.
//
// Segments never copy each other's positions. Each one waits on its cell until its counter exceeds the
// snake's segment count, then jumps to the cell the head just vacated. With counters staggered 1..n from
// neck to tail exactly one segment (the tail) jumps per move tick, which keeps the body on the last n head
// positions.
type SegmentChain struct {
	SnakeID  int
	Segments []*Segment
}

func NewSegmentChain(snakeID int) *SegmentChain {
	return &SegmentChain{SnakeID: snakeID}
}

// Propagate advances the chain after the head moved. The newly grown segment (if the snake just ate) is
// created after the pass, so it sits out this update and appears behind the head on the next move.
func (c *SegmentChain) Propagate(s *Snake, mask *WalkableMask, sink Sink) {
	if s.descended {
		s.descended = false
		for i, seg := range c.Segments {
			sink.Emit(c.segmentEvent(EventSegmentMoved, i, seg, s))
		}
		return
	}
	if !s.RefreshSegments {
		return
	}

	for i, seg := range c.Segments {
		seg.MoveCounter++
		if seg.MoveCounter <= s.Segments {
			continue
		}
		if mask != nil {
			mask.Set(seg.Coordinate, true)
			mask.Set(s.PreviousCoordinate, false)
		}
		seg.Coordinate = s.PreviousCoordinate
		// restart at 1, not 0, so segments never fall into lockstep
		seg.MoveCounter = 1
		sink.Emit(c.segmentEvent(EventSegmentMoved, i, seg, s))
	}

	if s.HadASnack {
		c.Grow(s, sink)
	}
	s.RefreshSegments = false
}

// Grow adds a segment on the head cell and bumps the snake's segment count.
func (c *SegmentChain) Grow(s *Snake, sink Sink) {
	seg := &Segment{SnakeID: c.SnakeID, Coordinate: s.Coordinate}
	c.Segments = append(c.Segments, seg)
	s.Segments++
	s.HadASnack = false
	sink.Emit(c.segmentEvent(EventSegmentSpawned, len(c.Segments)-1, seg, s))
}

// Clear drops every segment.
func (c *SegmentChain) Clear() {
	c.Segments = c.Segments[:0]
}

// Cells lists the occupied cells, oldest segment first.
func (c *SegmentChain) Cells() []Coordinate {
	out := make([]Coordinate, 0, len(c.Segments))
	for _, seg := range c.Segments {
		out = append(out, seg.Coordinate)
	}
	return out
}

func (c *SegmentChain) segmentEvent(kind string, i int, seg *Segment, s *Snake) Event {
	return Event{
		Kind:         kind,
		SnakeID:      c.SnakeID,
		Index:        i,
		Coord:        seg.Coordinate,
		Falling:      s.Falling,
		FallDuration: s.FallDuration,
	}
}
