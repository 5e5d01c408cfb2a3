package logic

import (
	"github.com/zyedidia/generic/mapset"
)

// Mode enum
type Mode int

const (
	ModeInit Mode = iota
	ModeSetup
	ModeStart
	ModePlay
	ModeWin
	ModeDeath
	ModeReset
)

var modeNames = [...]string{"init", "setup", "start", "play", "win", "death", "reset"}

func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// State is the tagged per-mode payload of the game state machine.
type State interface {
	Mode() Mode
}

type InitState struct{}

// SetupState reveals a stage.
type SetupState struct {
	StageID     int
	Sequencer   *TileRevealSequencer
	FastForward bool
	BufferTicks int // ticks waited after a fast-forwarded reveal completed
}

type StartState struct{}

// PlayState carries the live session.
type PlayState struct {
	Session *PlayData
}

// WinState carries a by-value snapshot of the finished session.
type WinState struct {
	Data       WinData
	SnackTimer float64
	Cosmetic   []Coordinate
	decorated  mapset.Set[Coordinate]
}

// DeathCause enum
const (
	DeathCrash   = "crash"
	DeathFalling = "falling"
)

type DeathState struct {
	Cause string
	Score int
	Goal  int
}

// ResetState waits Counter ticks before the next Setup.
type ResetState struct {
	Counter int
}

func (*InitState) Mode() Mode  { return ModeInit }
func (*SetupState) Mode() Mode { return ModeSetup }
func (*StartState) Mode() Mode { return ModeStart }
func (*PlayState) Mode() Mode  { return ModePlay }
func (*WinState) Mode() Mode   { return ModeWin }
func (*DeathState) Mode() Mode { return ModeDeath }
func (*ResetState) Mode() Mode { return ModeReset }

// SnakePlayData is the per-snake subset the session mirrors for stage and snack logic.
type SnakePlayData struct {
	ID                 int
	Active             bool
	Falling            bool
	FallDuration       int
	Coordinate         Coordinate
	PreviousCoordinate Coordinate
	Segments           int
	HadASnack          bool
	RefreshSegments    bool
}

// PlayData is the session payload of one stage attempt.
type PlayData struct {
	Score          int
	Goal           int
	MoveSpeed      float64
	SpeedIncrement float64
	MoveInterval   float64
	Elapsed        float64 // session clock, seconds since Play entry
	LastMoveTime   float64
	Moves          int

	Snakes       []SnakePlayData
	WalkableMask *WalkableMask // dynamic: false where a snake head or segment sits

	SnackCoordinate Coordinate
	HasSnack        bool

	Crash        bool
	CrashedSnake int
	AllFalling   bool
	SnackEaten   bool // someone ate this tick; drives the score text refresh
}

// NewPlayData builds a fresh session for a width x height stage.
func NewPlayData(cfg *GameConfig, settings StageSettings, width, height int) *PlayData {
	speed := cfg.Gameplay.BaseMoveSpeed
	return &PlayData{
		Goal:            settings.Goal,
		MoveSpeed:       speed,
		SpeedIncrement:  settings.SpeedIncrement,
		MoveInterval:    MoveInterval(cfg.Gameplay.BaseMoveInterval, speed, cfg.Gameplay.MinMoveSpeed),
		Snakes:          make([]SnakePlayData, 0, cfg.Gameplay.Snakes),
		WalkableMask:    NewWalkableMask(width, height, true),
		SnackCoordinate: HiddenCoordinate,
	}
}

// Clone deep-copies the session so a snapshot never aliases live state.
func (p *PlayData) Clone() PlayData {
	out := *p
	out.Snakes = append([]SnakePlayData(nil), p.Snakes...)
	out.WalkableMask = p.WalkableMask.Clone()
	return out
}

// Finished reports the terminal condition, if any: ModeWin, ModeDeath, or ModePlay to keep playing.
// The goal is checked first.
func (p *PlayData) Finished() Mode {
	switch {
	case p.Score >= p.Goal:
		return ModeWin
	case p.Crash || p.AllFalling:
		return ModeDeath
	}
	return ModePlay
}

// WinData is what the Win state keeps of the cleared stage.
type WinData struct {
	StageID int
	Session PlayData
}

// ProgressStore persists the stage-resume pointer.
type ProgressStore interface {
	LoadStage() (int, error)
	SaveStage(stageID int) error
}
