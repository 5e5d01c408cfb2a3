package logic

import (
	"encoding/json"
	"log"
	"math"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	MaxSnakes = 9 // spawn markers are single digits
)

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func clampFloat(v, minV, maxV float64) float64 {
	if math.IsNaN(v) {
		return minV
	}
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

// ClampGameConfig enforces hard safety bounds.
// It mutates cfg in-place so callers can accept user-provided values while guaranteeing sane limits.
func ClampGameConfig(cfg *GameConfig) {
	if cfg == nil {
		return
	}

	// --- server ---
	cfg.Server.TickRateMs = clampInt(cfg.Server.TickRateMs, 1, 200)

	// --- gameplay ---
	cfg.Gameplay.Snakes = clampInt(cfg.Gameplay.Snakes, 1, MaxSnakes)
	cfg.Gameplay.BaseMoveInterval = clampFloat(cfg.Gameplay.BaseMoveInterval, 0.01, 10.0)
	cfg.Gameplay.MinMoveSpeed = clampFloat(cfg.Gameplay.MinMoveSpeed, 0.0001, 1.0)
	cfg.Gameplay.BaseMoveSpeed = clampFloat(cfg.Gameplay.BaseMoveSpeed, cfg.Gameplay.MinMoveSpeed, 100.0)
	cfg.Gameplay.DefaultGoal = clampInt(cfg.Gameplay.DefaultGoal, 1, 1000)
	cfg.Gameplay.DefaultSpeedIncrement = clampFloat(cfg.Gameplay.DefaultSpeedIncrement, 0.0, 10.0)
	cfg.Gameplay.FallGraceMoves = clampInt(cfg.Gameplay.FallGraceMoves, 0, 100)
	cfg.Gameplay.ResetTicks = clampInt(cfg.Gameplay.ResetTicks, 1, 10000)
	cfg.Gameplay.FastForwardBufferTicks = clampInt(cfg.Gameplay.FastForwardBufferTicks, 0, 120)
	cfg.Gameplay.WinSnackIntervalSec = clampFloat(cfg.Gameplay.WinSnackIntervalSec, 0.01, 60.0)

	// --- reveal ---
	cfg.Reveal.MinIntervalSec = clampFloat(cfg.Reveal.MinIntervalSec, 0.0, 1.0)
	cfg.Reveal.InitialIntervalSec = clampFloat(cfg.Reveal.InitialIntervalSec, cfg.Reveal.MinIntervalSec, 5.0)
	cfg.Reveal.DecayFactor = clampFloat(cfg.Reveal.DecayFactor, 0.01, 1.0)

	// --- stages ---
	for i := range cfg.Stages {
		cfg.Stages[i].Goal = clampInt(cfg.Stages[i].Goal, 0, 1000)
		cfg.Stages[i].SpeedIncrement = clampFloat(cfg.Stages[i].SpeedIncrement, 0.0, 10.0)
	}

	// --- bindings ---
	for i := range cfg.Bindings {
		cfg.Bindings[i] = clampInt(cfg.Bindings[i], 0, cfg.Gameplay.Snakes)
	}
}

// LoadGameConfig reads a .env file (if any), then the JSON config at path, then applies environment overrides
// and clamps the result. A missing config file yields the defaults; a malformed one is an error.
func LoadGameConfig(path string) (GameConfig, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}

	if p := os.Getenv("SNAKES_CONFIG"); p != "" {
		path = p
	}

	cfg := DefaultGameConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "parse config %s", path)
		}
	case os.IsNotExist(err):
	default:
		return cfg, errors.Wrapf(err, "read config %s", path)
	}

	if v := os.Getenv("SNAKES_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SNAKES_DB"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("SNAKES_LAYOUTS"); v != "" {
		cfg.Storage.LayoutDir = v
	}
	if v := os.Getenv("SNAKES_LANG"); v != "" {
		cfg.Locale.Lang = v
	}

	ClampGameConfig(&cfg)
	return cfg, nil
}
