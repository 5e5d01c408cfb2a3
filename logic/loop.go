package logic

import (
	"log"
	"time"
)

// GameLoop owns an Engine and drives it from a ticker. Every other goroutine talks to it through channels.
type GameLoop struct {
	Engine    *Engine
	InputChan chan Input
	EventChan chan []Event // one batch per tick
	StopChan  chan bool

	snapshotReq chan chan Snapshot
	done        chan struct{}
	buffer      *EventBuffer
	dropped     int
}

// NewGameLoop builds the engine with an internal event buffer as its sink.
func NewGameLoop(cfg *GameConfig, layouts LayoutSource, progress ProgressStore) (*GameLoop, error) {
	buf := &EventBuffer{}
	engine, err := NewEngine(cfg, layouts, progress, buf, nil)
	if err != nil {
		return nil, err
	}
	return &GameLoop{
		Engine:      engine,
		InputChan:   make(chan Input, 100),
		EventChan:   make(chan []Event, 64),
		StopChan:    make(chan bool),
		snapshotReq: make(chan chan Snapshot),
		done:        make(chan struct{}),
		buffer:      buf,
	}, nil
}

// Run blocks until Stop is called or the engine reports a fatal content error, which is returned.
func (gl *GameLoop) Run() error {
	tick := time.Duration(gl.Engine.Config.Server.TickRateMs) * time.Millisecond
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	defer close(gl.done)

	log.Println("GameLoop Started.")
	last := time.Now()

	for {
		select {
		case input := <-gl.InputChan:
			gl.handleInput(input)

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := gl.Engine.Tick(dt); err != nil {
				log.Printf("GameLoop Stopped: %v", err)
				return err
			}
			gl.publish()

		case reply := <-gl.snapshotReq:
			reply <- gl.Engine.Snapshot()

		case <-gl.StopChan:
			log.Println("GameLoop Stopped.")
			return nil
		}
	}
}

// publish hands this tick's events to the network layer without stalling the simulation.
func (gl *GameLoop) publish() {
	events := gl.buffer.Drain()
	if len(events) == 0 {
		return
	}
	select {
	case gl.EventChan <- events:
	default:
		gl.dropped++
		if gl.dropped == 1 || gl.dropped%100 == 0 {
			log.Printf("GameLoop: event consumer busy, %d batches dropped", gl.dropped)
		}
	}
}

func (gl *GameLoop) handleInput(input Input) {
	if input.Key < KeyUp || input.Key > KeyConfirm {
		return
	}
	gl.Engine.PushInput(input)
}

// Snapshot asks the loop for a consistent view. ok is false once the loop has stopped.
func (gl *GameLoop) Snapshot() (Snapshot, bool) {
	reply := make(chan Snapshot, 1)
	select {
	case gl.snapshotReq <- reply:
		return <-reply, true
	case <-gl.done:
		return Snapshot{}, false
	}
}

// Stop ends Run. Safe to call once.
func (gl *GameLoop) Stop() {
	select {
	case gl.StopChan <- true:
	case <-gl.done:
	}
}

// Done is closed when Run returns.
func (gl *GameLoop) Done() <-chan struct{} {
	return gl.done
}
