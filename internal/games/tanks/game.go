package tanks

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tank-rampage/internal/config"
	"github.com/vovakirdan/tank-rampage/internal/core"
	"github.com/vovakirdan/tank-rampage/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// LoadConfig loads the configuration from the path set with SetConfigPath
// and applies the difficulty preset, if any.
func LoadConfig() (config.TankConfig, error) {
	cfg, err := config.LoadTanks(configPath)
	if err != nil {
		return cfg, err
	}
	if difficultyPreset != "" {
		config.ApplyTanksPreset(&cfg, difficultyPreset)
	}
	return cfg, nil
}

// Game adapts a World to registry.Game: it owns pausing, restarting and
// level advancement, and renders the world into a screen buffer.
type Game struct {
	world   *World
	cfg     *config.TankConfig // nil loads from configPath on Reset
	logger  *log.Logger
	runtime core.RuntimeConfig
	paused  bool
}

// New creates a new game that loads its configuration on Reset.
func New() *Game {
	return &Game{}
}

// NewWithConfig creates a game that always uses cfg.
func NewWithConfig(cfg config.TankConfig, logger *log.Logger) *Game {
	return &Game{cfg: &cfg, logger: logger}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "tanks"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Tank Rampage"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false

	var cfg config.TankConfig
	if g.cfg != nil {
		cfg = *g.cfg
	} else {
		loaded, err := LoadConfig()
		if err != nil {
			g.warn("could not load config, using defaults", "path", configPath, "error", err)
			loaded = config.DefaultTankConfig()
		}
		cfg = loaded
	}

	rng := rand.New(rand.NewSource(runtime.Seed)) //#nosec G404 -- game randomness, not security
	g.world = NewWorld(cfg, rng, WithLogger(g.logger))
}

// warn reports through the game's logger, or the default logger when the
// game was created without one.
func (g *Game) warn(msg string, keyvals ...any) {
	l := g.logger
	if l == nil {
		l = log.Default()
	}
	l.Warn(msg, keyvals...)
}

// World exposes the simulation for inspection.
func (g *Game) World() *World {
	return g.world
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame, dt time.Duration) core.StepResult {
	status := g.world.Status()

	switch {
	case in.Has(core.ActionRestart) && status.State == StateGameOver:
		g.world.Restart()
		g.paused = false
		return core.StepResult{State: g.State()}
	case in.Has(core.ActionConfirm) && status.State == StateLevelComplete:
		g.world.AdvanceLevel()
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && status.State == StatePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.world.Step(in, float64(dt)/float64(time.Millisecond))
	return core.StepResult{State: g.State()}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.world.Status()
	return core.GameState{
		Score:         s.Score,
		Level:         s.Level,
		GameOver:      s.State == StateGameOver,
		LevelComplete: s.State == StateLevelComplete,
		Paused:        g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("tanks", func() registry.Game {
		return New()
	})
}
