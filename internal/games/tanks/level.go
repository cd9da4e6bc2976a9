package tanks

import (
	"github.com/vovakirdan/tank-rampage/internal/core"
)

// Source is the random source used for level generation, spawning and
// explosions. *math/rand.Rand satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// setupLevel clears the level's entities and populates a fresh layout for
// the current level number. The player is kept.
func (w *World) setupLevel() {
	w.enemies.Clear()
	w.bullets.Clear()
	w.powerUps.Clear()
	w.particles.Clear()
	w.obstacles = w.obstacles[:0]

	w.tuneAI()

	safe := w.safeZone()
	w.placeObstacles(safe)
	w.placeEnemies(safe)

	w.log.Debug("level ready",
		"level", w.level,
		"obstacles", len(w.obstacles),
		"enemies", w.enemies.Len())
}

// safeZone is the player's hitbox padded on every side.
func (w *World) safeZone() core.Rect {
	return w.player.Rect().Pad(w.cfg.Level.SafeZonePadding)
}

// tuneAI resolves the enemy parameters for this level through the
// difficulty manager.
func (w *World) tuneAI() {
	e := w.cfg.Enemy
	vision := w.difficulty.Vision(e.VisionRange, w.score, w.level)
	w.ai = aiParams{
		vision:          vision,
		loseSight:       vision * e.LoseSightFactor,
		threshold:       e.AimThreshold,
		lockOnMs:        w.difficulty.LockOn(e.LockOnMs, w.score, w.level),
		turnRate:        w.difficulty.TurnRate(e.TurnRate, w.score, w.level),
		repositionSpeed: e.RepositionSpeed,
		repositionMs:    e.RepositionMs,
	}
}

// placeObstacles rejection-samples obstacles inside the central band.
// Candidates may not touch the safe zone or come within the spacing of an
// earlier obstacle. An obstacle that finds no spot is skipped.
func (w *World) placeObstacles(safe core.Rect) {
	lv := w.cfg.Level
	count := lv.BaseObstacles + w.level
	sizeRange := lv.ObstacleMaxSize - lv.ObstacleMinSize

	for range count {
		for range lv.ObstacleAttempts {
			ow := w.rng.Float64()*sizeRange + lv.ObstacleMinSize
			oh := w.rng.Float64()*sizeRange + lv.ObstacleMinSize
			x := w.rng.Float64() * (w.width - ow)
			y := w.rng.Float64()*(w.height-oh-2*lv.BandMargin) + lv.BandMargin
			cand := core.NewRect(x, y, ow, oh)

			if cand.Intersects(safe) || w.crowded(cand) {
				continue
			}
			w.obstacles = append(w.obstacles, Obstacle{Rect: cand})
			break
		}
	}
}

func (w *World) crowded(cand core.Rect) bool {
	for _, o := range w.obstacles {
		if cand.Intersects(o.Rect.Pad(w.cfg.Level.ObstacleSpacing)) {
			return true
		}
	}
	return false
}

// placeEnemies puts one enemy per level number in the upper half of the
// world, avoiding obstacles, the safe zone and each other. An enemy that
// runs out of attempts takes its last candidate so the level always has its
// full count; the collision pass separates any overlap.
func (w *World) placeEnemies(safe core.Rect) {
	lv := w.cfg.Level
	body := w.cfg.Tank
	placed := make([]core.Rect, 0, w.level)

	for range w.level {
		var cand core.Rect
		for range max(lv.EnemyAttempts, 1) {
			x := core.ClampF(w.rng.Float64()*(w.width-lv.EnemyMargin), 0, w.width-body.Width)
			y := core.ClampF(w.rng.Float64()*(w.height/2), 0, w.height-body.Height)
			cand = core.NewRect(x, y, body.Width, body.Height)
			if !w.blocked(cand, safe, placed) {
				break
			}
		}
		placed = append(placed, cand)
		w.enemies.Insert(newTank(cand.X, cand.Y, body, w.cfg.Enemy.MaxHealth, ControllerAI))
	}
}

func (w *World) blocked(cand, safe core.Rect, placed []core.Rect) bool {
	if cand.Intersects(safe) {
		return true
	}
	for _, o := range w.obstacles {
		if cand.Intersects(o.Rect) {
			return true
		}
	}
	for _, p := range placed {
		if cand.Intersects(p) {
			return true
		}
	}
	return false
}

// maybeSpawnPowerUp drops a random pickup with a small chance per step.
// The pickup tries a bounded number of spots clear of obstacles and is
// dropped silently if none works.
func (w *World) maybeSpawnPowerUp() {
	pu := w.cfg.PowerUps
	if w.rng.Float64() >= pu.SpawnChance {
		return
	}
	w.spawnPowerUp(PowerUpKind(w.rng.Intn(int(powerUpKinds))))
}

func (w *World) spawnPowerUp(kind PowerUpKind) {
	pu := w.cfg.PowerUps
	for range pu.Attempts {
		p := PowerUp{
			X:    w.rng.Float64() * (w.width - pu.Size),
			Y:    w.rng.Float64() * (w.height - pu.Size),
			Size: pu.Size,
			Kind: kind,
		}
		open := true
		for _, o := range w.obstacles {
			if p.Rect().Intersects(o.Rect) {
				open = false
				break
			}
		}
		if open {
			w.powerUps.Insert(p)
			w.log.Debug("power-up spawned", "kind", kind, "x", p.X, "y", p.Y)
			return
		}
	}
}

// explode scatters count particles from (x, y).
func (w *World) explode(x, y float64, color core.Color, count int) {
	pc := w.cfg.Particles
	for range count {
		life := w.rng.Float64()*pc.LifeRange + pc.MinLife
		w.particles.Insert(Particle{
			X:       x,
			Y:       y,
			Size:    w.rng.Float64()*pc.SizeRange + pc.MinSize,
			VX:      w.rng.Float64()*2*pc.Spread - pc.Spread,
			VY:      w.rng.Float64()*2*pc.Spread - pc.Spread,
			Color:   color,
			Life:    life,
			MaxLife: life,
		})
	}
}
