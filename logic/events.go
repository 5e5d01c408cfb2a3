package logic

// EventKind enum
const (
	EventStateChanged   = "state_changed"
	EventTilePlaced     = "tile_placed"
	EventSpawnPoint     = "spawn_point"
	EventSnakeMoved     = "snake_moved"
	EventSnakeFalling   = "snake_falling"
	EventSnakeHidden    = "snake_hidden"
	EventSegmentSpawned = "segment_spawned"
	EventSegmentMoved   = "segment_moved"
	EventSegmentsClear  = "segments_cleared"
	EventSnackSpawned   = "snack_spawned"
	EventSnackCleared   = "snack_cleared"
	EventCosmeticSnack  = "cosmetic_snack"
	EventUIText         = "ui_text"
)

// UI text element ids
const (
	UIStage     = "stage"
	UIScore     = "score"
	UIHeader    = "header"
	UISubHeader = "sub_header"
)

// Event is a semantic notification for render/UI collaborators. Only the fields relevant to Kind are set.
type Event struct {
	Kind         string     `json:"kind" msgpack:"kind"`
	Tick         uint64     `json:"tick" msgpack:"tick"`
	Coord        Coordinate `json:"coord" msgpack:"coord"`
	Tile         TileKind   `json:"tile,omitempty" msgpack:"tile,omitempty"`
	SnakeID      int        `json:"snake_id,omitempty" msgpack:"snake_id,omitempty"`
	Index        int        `json:"index,omitempty" msgpack:"index,omitempty"`
	Falling      bool       `json:"falling,omitempty" msgpack:"falling,omitempty"`
	FallDuration int        `json:"fall_duration,omitempty" msgpack:"fall_duration,omitempty"`
	Mode         string     `json:"mode,omitempty" msgpack:"mode,omitempty"`
	StageID      int        `json:"stage_id,omitempty" msgpack:"stage_id,omitempty"`
	Score        int        `json:"score,omitempty" msgpack:"score,omitempty"`
	Goal         int        `json:"goal,omitempty" msgpack:"goal,omitempty"`
	UIKey        string     `json:"ui_key,omitempty" msgpack:"ui_key,omitempty"`
	Text         string     `json:"text,omitempty" msgpack:"text,omitempty"`
}

// Sink receives events in emission order.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// EventBuffer collects events until drained.
type EventBuffer struct {
	Events []Event
}

func (b *EventBuffer) Emit(e Event) {
	b.Events = append(b.Events, e)
}

// Drain returns the collected events and empties the buffer.
func (b *EventBuffer) Drain() []Event {
	out := b.Events
	b.Events = nil
	return out
}

// OfKind filters the buffered events.
func (b *EventBuffer) OfKind(kind string) []Event {
	var out []Event
	for _, e := range b.Events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
