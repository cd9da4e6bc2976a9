// Package tanks implements Tank Rampage, a top-down tank combat game.
//
// World is the simulation core: it owns every entity, advances them one
// step at a time, resolves collisions, drives the enemy AI and derives the
// game status. Game adapts a World to the platform's registry.Game.
package tanks

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tank-rampage/internal/config"
	"github.com/vovakirdan/tank-rampage/internal/core"
)

// State is the game status derived by the World.
type State int

const (
	StatePlaying State = iota
	StateGameOver
	StateLevelComplete
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "gameOver"
	case StateLevelComplete:
		return "levelComplete"
	default:
		return "unknown"
	}
}

// Status is the read-only snapshot reported after every step and command.
type Status struct {
	Score       int
	Health      int
	Ammo        int
	Level       int
	EnemiesLeft int
	State       State
}

// World owns the entities of a running game. It is not safe for concurrent
// use; one goroutine drives it.
type World struct {
	cfg        config.TankConfig
	rng        Source
	log        *log.Logger
	difficulty *config.DifficultyManager

	width, height float64

	player    Tank
	enemies   Arena[Tank]
	bullets   Arena[Bullet]
	powerUps  Arena[PowerUp]
	particles Arena[Particle]
	obstacles []Obstacle

	score   int
	level   int
	state   State
	clockMs float64 // Simulation time, drives shot cooldowns
	steps   uint64
	ai      aiParams
}

// Option configures a World.
type Option func(*World)

// WithLogger routes level setup and status transitions to l.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// NewWorld creates a world with the dimensions from cfg and starts level 1.
func NewWorld(cfg config.TankConfig, rng Source, opts ...Option) *World {
	w := &World{
		cfg:        cfg,
		rng:        rng,
		log:        log.New(io.Discard),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		width:      cfg.World.Width,
		height:     cfg.World.Height,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.Restart()
	return w
}

// Width returns the fixed world width.
func (w *World) Width() float64 { return w.width }

// Height returns the fixed world height.
func (w *World) Height() float64 { return w.height }

// Restart resets score and level, recreates the player at its start
// position and sets up level 1.
func (w *World) Restart() Status {
	w.score = 0
	w.level = 1
	w.state = StatePlaying
	w.clockMs = 0
	w.steps = 0

	startX := w.width/2 - w.cfg.Tank.Width/2
	startY := w.height - w.cfg.Player.BottomMargin
	w.player = newTank(startX, startY, w.cfg.Tank, w.cfg.Player.MaxHealth, ControllerInput)
	w.player.clamp(w.width, w.height)

	w.setupLevel()
	w.log.Debug("game restarted")
	return w.Status()
}

// AdvanceLevel moves on to the next level after a level is complete. It
// awards the completion bonus and refills the player. It does nothing in
// any other state.
func (w *World) AdvanceLevel() Status {
	if w.state != StateLevelComplete {
		return w.Status()
	}
	w.level++
	w.score += w.cfg.Level.CompletionBonus * (w.level - 1)
	w.player.Health = w.player.MaxHealth
	w.player.Ammo = w.player.MaxAmmo
	w.setupLevel()
	w.setState(StatePlaying)
	return w.Status()
}

// AddBullet inserts a fired bullet.
func (w *World) AddBullet(b Bullet) Handle {
	return w.bullets.Insert(b)
}

// Step advances the world by one step with the given held input and the
// wall time since the previous step. Outside of play it only reports the
// status.
func (w *World) Step(in core.InputFrame, elapsedMs float64) Status {
	if w.state != StatePlaying {
		return w.Status()
	}
	if elapsedMs < 0 {
		elapsedMs = 0
	}
	w.steps++
	w.clockMs += elapsedMs

	w.updateController(&w.player, in, elapsedMs)
	w.enemies.Each(func(_ Handle, e *Tank) {
		w.updateController(e, in, elapsedMs)
	})
	w.bullets.Each(func(_ Handle, b *Bullet) {
		b.update()
	})
	pc := w.cfg.Particles
	w.particles.Each(func(_ Handle, p *Particle) {
		p.update(pc.Gravity, pc.Shrink)
	})
	w.powerUps.Each(func(_ Handle, p *PowerUp) {
		p.Rotation += w.cfg.PowerUps.SpinRate
	})

	w.handleCollisions()

	w.bullets.RemoveIf(func(b *Bullet) bool { return b.Deleted })
	w.enemies.RemoveIf(func(e *Tank) bool { return e.Deleted })
	w.particles.RemoveIf(func(p *Particle) bool { return p.Life <= 0 })
	w.powerUps.RemoveIf(func(p *PowerUp) bool { return p.Deleted })

	switch {
	case w.player.Deleted:
		cx, cy := w.player.Center()
		w.explode(cx, cy, core.ColorBlast, pc.DeathCount)
		w.setState(StateGameOver)
	case w.enemies.Len() == 0:
		w.setState(StateLevelComplete)
	}

	w.maybeSpawnPowerUp()
	return w.Status()
}

// updateController drives one tank for this step, dispatching on its
// controller kind, then integrates its motion.
func (w *World) updateController(t *Tank, in core.InputFrame, elapsedMs float64) {
	switch t.Controller {
	case ControllerInput:
		t.drive(in, w.cfg.Player)
		t.update(w.width, w.height)
		if in.Has(core.ActionFire) {
			if b, ok := t.shoot(w.clockMs, w.cfg.Tank.MuzzleOffset, w.cfg.Bullet, FactionPlayer); ok {
				w.AddBullet(b)
			}
		}
	case ControllerAI:
		w.updateAI(t, elapsedMs)
		t.update(w.width, w.height)
	}
}

func (w *World) setState(s State) {
	if s == w.state {
		return
	}
	w.log.Debug("status changed",
		"from", w.state,
		"to", s,
		"level", w.level,
		"score", w.score)
	w.state = s
}

// Status returns the current status snapshot.
func (w *World) Status() Status {
	return Status{
		Score:       w.score,
		Health:      w.player.Health,
		Ammo:        w.player.Ammo,
		Level:       w.level,
		EnemiesLeft: w.enemies.Len(),
		State:       w.state,
	}
}

// Player returns a copy of the player tank.
func (w *World) Player() Tank {
	return w.player
}

// Obstacles returns a copy of the level's obstacles.
func (w *World) Obstacles() []Obstacle {
	return append([]Obstacle(nil), w.obstacles...)
}

// Enemies returns copies of the live enemies in slot order.
func (w *World) Enemies() []Tank {
	out := make([]Tank, 0, w.enemies.Len())
	w.enemies.Each(func(_ Handle, e *Tank) {
		out = append(out, *e)
	})
	return out
}

// Bullets returns copies of the live bullets in slot order.
func (w *World) Bullets() []Bullet {
	out := make([]Bullet, 0, w.bullets.Len())
	w.bullets.Each(func(_ Handle, b *Bullet) {
		out = append(out, *b)
	})
	return out
}

// ClockMs is the accumulated simulation time.
func (w *World) ClockMs() float64 {
	return w.clockMs
}
