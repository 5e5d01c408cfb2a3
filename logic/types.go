package logic

// Coordinate is a grid cell. X is the column, Y is the row (row 0 is the top line of the layout).
type Coordinate struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// HiddenCoordinate marks a snake or snack that has not been placed yet.
var HiddenCoordinate = Coordinate{X: 1000, Y: 1000}

func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y}
}

func (c Coordinate) Hidden() bool {
	return c == HiddenCoordinate
}

// Direction enum
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return "none"
}

// Offset is the one-cell step for d. DirectionNone does not move.
func (d Direction) Offset() Coordinate {
	switch d {
	case DirectionUp:
		return Coordinate{Y: -1}
	case DirectionDown:
		return Coordinate{Y: 1}
	case DirectionLeft:
		return Coordinate{X: -1}
	case DirectionRight:
		return Coordinate{X: 1}
	}
	return Coordinate{}
}

// IsOpposite reports whether a and b point in exactly opposite directions.
func IsOpposite(a, b Direction) bool {
	switch {
	case a == DirectionUp && b == DirectionDown,
		a == DirectionDown && b == DirectionUp,
		a == DirectionLeft && b == DirectionRight,
		a == DirectionRight && b == DirectionLeft:
		return true
	}
	return false
}

// Key is a resolved player intent. Device polling and key mapping happen outside the core.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyConfirm
)

var keyNames = map[Key]string{
	KeyUp:      "up",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeyRight:   "right",
	KeyConfirm: "confirm",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseKey maps a wire name ("up", "confirm", ...) to a Key.
func ParseKey(name string) (Key, bool) {
	for k, n := range keyNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Direction returns the direction a key requests, or DirectionNone for confirm.
func (k Key) Direction() Direction {
	switch k {
	case KeyUp:
		return DirectionUp
	case KeyDown:
		return DirectionDown
	case KeyLeft:
		return DirectionLeft
	case KeyRight:
		return DirectionRight
	}
	return DirectionNone
}

// Input is one press event for a player slot.
type Input struct {
	Slot int `json:"slot" msgpack:"slot"`
	Key  Key `json:"key" msgpack:"key"`
}

// StageSettings tunes one stage.
type StageSettings struct {
	Goal           int     `json:"goal"`
	SpeedIncrement float64 `json:"speed_increment"`
}

// Config structs (mirrors game_config.json)
type GameConfig struct {
	Server struct {
		TickRateMs int    `json:"tick_rate_ms"`
		Addr       string `json:"addr"`
	} `json:"server"`
	Storage struct {
		DBPath    string `json:"db_path"`
		LayoutDir string `json:"layout_dir"`
	} `json:"storage"`
	Gameplay struct {
		Snakes                 int     `json:"snakes"`
		BaseMoveInterval       float64 `json:"base_move_interval_sec"`
		BaseMoveSpeed          float64 `json:"base_move_speed"`
		MinMoveSpeed           float64 `json:"min_move_speed"`
		DefaultGoal            int     `json:"default_goal"`
		DefaultSpeedIncrement  float64 `json:"default_speed_increment"`
		FallGraceMoves         int     `json:"fall_grace_moves"`
		ResetTicks             int     `json:"reset_ticks"`
		FastForwardBufferTicks int     `json:"fast_forward_buffer_ticks"`
		WinSnackIntervalSec    float64 `json:"win_snack_interval_sec"`
	} `json:"gameplay"`
	Reveal struct {
		InitialIntervalSec float64 `json:"initial_interval_sec"`
		DecayFactor        float64 `json:"decay_factor"`
		MinIntervalSec     float64 `json:"min_interval_sec"`
	} `json:"reveal"`
	Stages   []StageSettings `json:"stages"`
	Bindings []int           `json:"bindings"` // player slot -> snake id
	Locale   struct {
		Path string `json:"path"`
		Lang string `json:"lang"`
	} `json:"locale"`
}

// DefaultGameConfig returns the settings used when game_config.json is absent.
func DefaultGameConfig() GameConfig {
	var cfg GameConfig
	cfg.Server.TickRateMs = 16
	cfg.Server.Addr = ":8080"
	cfg.Storage.DBPath = "snakes.db"
	cfg.Storage.LayoutDir = "assets/stage_layouts"
	cfg.Gameplay.Snakes = 3
	cfg.Gameplay.BaseMoveInterval = 0.5
	cfg.Gameplay.BaseMoveSpeed = 1.0
	cfg.Gameplay.MinMoveSpeed = 0.01
	cfg.Gameplay.DefaultGoal = 10
	cfg.Gameplay.DefaultSpeedIncrement = 0.1
	cfg.Gameplay.FallGraceMoves = 3
	cfg.Gameplay.ResetTicks = 30
	cfg.Gameplay.FastForwardBufferTicks = 3
	cfg.Gameplay.WinSnackIntervalSec = 0.25
	cfg.Reveal.InitialIntervalSec = 0.05
	cfg.Reveal.DecayFactor = 0.97
	cfg.Reveal.MinIntervalSec = 0.005
	cfg.Bindings = []int{1, 2, 3}
	cfg.Locale.Path = "locales"
	cfg.Locale.Lang = "en_US"
	return cfg
}

// StageSettingsFor returns the settings for a stage, falling back to the gameplay defaults.
func (cfg *GameConfig) StageSettingsFor(stageID int) StageSettings {
	s := StageSettings{
		Goal:           cfg.Gameplay.DefaultGoal,
		SpeedIncrement: cfg.Gameplay.DefaultSpeedIncrement,
	}
	if stageID >= 0 && stageID < len(cfg.Stages) {
		if g := cfg.Stages[stageID].Goal; g > 0 {
			s.Goal = g
		}
		if inc := cfg.Stages[stageID].SpeedIncrement; inc > 0 {
			s.SpeedIncrement = inc
		}
	}
	return s
}

// SnakeForSlot resolves a player slot through the binding table. ok is false for unbound slots.
func (cfg *GameConfig) SnakeForSlot(slot int) (int, bool) {
	if slot < 0 || slot >= len(cfg.Bindings) {
		return 0, false
	}
	id := cfg.Bindings[slot]
	if id < 1 || id > cfg.Gameplay.Snakes {
		return 0, false
	}
	return id, true
}
