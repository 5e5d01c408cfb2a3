package logic

// TileRevealSequencer replays a stage cell by cell. Each placement waits an interval that shrinks by a fixed
// decay factor down to a floor, so the stage builds up faster and faster.
type TileRevealSequencer struct {
	stage       *StageGrid
	next        int
	interval    float64
	decay       float64
	minInterval float64
	wait        float64
}

func NewTileRevealSequencer(stage *StageGrid, initial, decay, minInterval float64) *TileRevealSequencer {
	return &TileRevealSequencer{
		stage:       stage,
		interval:    initial,
		decay:       decay,
		minInterval: minInterval,
	}
}

// Done reports whether the last cell of the last row has been processed.
func (r *TileRevealSequencer) Done() bool {
	return r.next >= len(r.stage.Cells)
}

func (r *TileRevealSequencer) Remaining() int {
	return len(r.stage.Cells) - r.next
}

// Interval is the wait before the next placement.
func (r *TileRevealSequencer) Interval() float64 {
	return r.interval
}

// Advance consumes dt seconds and returns the cells placed during it: at most one, once the interval has
// elapsed. With fastForward set every remaining cell is returned regardless of the interval.
func (r *TileRevealSequencer) Advance(dt float64, fastForward bool) []StageCell {
	if r.Done() {
		return nil
	}
	if fastForward {
		out := r.stage.Cells[r.next:]
		r.next = len(r.stage.Cells)
		return out
	}

	r.wait += dt
	if r.wait < r.interval {
		return nil
	}
	r.wait = 0
	out := r.stage.Cells[r.next : r.next+1]
	r.next++
	r.interval *= r.decay
	if r.interval < r.minInterval {
		r.interval = r.minInterval
	}
	return out
}
