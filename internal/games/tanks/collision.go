package tanks

import "github.com/vovakirdan/tank-rampage/internal/core"

// handleCollisions runs the collision pass after motion. A bullet is
// consumed by the first thing it hits: a bullet that strikes a tank is not
// also tested against obstacles or bounds, so it spawns one explosion.
func (w *World) handleCollisions() {
	w.bullets.Each(func(_ Handle, b *Bullet) {
		if b.Deleted {
			return
		}
		if w.bulletHitsTank(b) || w.bulletHitsObstacle(b) {
			return
		}
		if b.X < 0 || b.X > w.width || b.Y < 0 || b.Y > w.height {
			b.Deleted = true
		}
	})

	w.separateTanks()
	w.collectPowerUps()
}

// bulletHitsTank damages the first live target the bullet overlaps.
// Player bullets target enemies, enemy bullets target the player.
func (w *World) bulletHitsTank(b *Bullet) bool {
	r := b.Rect()

	if b.Owner == FactionEnemy {
		if w.player.Deleted || !r.Intersects(w.player.Rect()) {
			return false
		}
		w.hitTank(b, &w.player)
		return true
	}

	hit := false
	w.enemies.Each(func(_ Handle, e *Tank) {
		if hit || e.Deleted || !r.Intersects(e.Rect()) {
			return
		}
		hit = true
		w.hitTank(b, e)
		if e.Deleted {
			w.score += w.cfg.Enemy.KillScore
			cx, cy := e.Center()
			w.explode(cx, cy, core.ColorBlast, w.cfg.Particles.KillCount)
		}
	})
	return hit
}

func (w *World) hitTank(b *Bullet, t *Tank) {
	t.takeDamage(w.cfg.Bullet.Damage)
	b.Deleted = true
	w.explode(b.X, b.Y, core.ColorSpark, w.cfg.Particles.HitCount)
}

func (w *World) bulletHitsObstacle(b *Bullet) bool {
	r := b.Rect()
	for _, o := range w.obstacles {
		if r.Intersects(o.Rect) {
			b.Deleted = true
			w.explode(b.X, b.Y, core.ColorDust, w.cfg.Particles.HitCount)
			return true
		}
	}
	return false
}

// separateTanks pushes each tank out of obstacles and out of every tank
// later in order. Only the tank under resolution moves.
func (w *World) separateTanks() {
	tanks := w.tanksInOrder()
	for i, t := range tanks {
		for _, o := range w.obstacles {
			w.pushOut(t, o.Rect)
		}
		for _, other := range tanks[i+1:] {
			w.pushOut(t, other.Rect())
		}
	}
}

func (w *World) pushOut(t *Tank, other core.Rect) {
	dx, dy, ok := core.Separation(t.Rect(), other)
	if !ok {
		return
	}
	t.X += dx
	t.Y += dy
	t.Speed = 0
	// A push may not carry a tank out of the world.
	t.clamp(w.width, w.height)
}

// tanksInOrder lists the surviving tanks: the player, then the enemies in
// slot order.
func (w *World) tanksInOrder() []*Tank {
	tanks := make([]*Tank, 0, 1+w.enemies.Len())
	if !w.player.Deleted {
		tanks = append(tanks, &w.player)
	}
	w.enemies.Each(func(_ Handle, e *Tank) {
		if !e.Deleted {
			tanks = append(tanks, e)
		}
	})
	return tanks
}

func (w *World) collectPowerUps() {
	if w.player.Deleted {
		return
	}
	pr := w.player.Rect()
	w.powerUps.Each(func(_ Handle, p *PowerUp) {
		if p.Deleted || !pr.Intersects(p.Rect()) {
			return
		}
		switch p.Kind {
		case PowerUpHealth:
			w.player.heal(w.cfg.PowerUps.HealthAmount)
		case PowerUpAmmo:
			w.player.restock(w.cfg.PowerUps.AmmoAmount)
		}
		p.Deleted = true
	})
}
