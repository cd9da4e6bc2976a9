package tanks

import "math"

// Snapshot is a flat copy of the world's simulation state for determinism
// checks. Floats are stored as their IEEE-754 bits so identical runs hash
// identically.
type Snapshot struct {
	Steps       uint64
	Clock       uint64
	Score       int
	Level       int
	State       State
	EnemyCount  int
	BulletCount int
	PowerUps    int
	Particles   int

	// Player is X, Y, Angle, Speed, Health, Ammo.
	Player [6]uint64

	// Each enemy is 6 values: X, Y, Angle, Health, Phase, Timer.
	EnemyData []uint64

	// Each bullet is 3 values: X, Y, Angle.
	BulletData []uint64

	// Each obstacle is 4 values: X, Y, W, H.
	ObstacleData []uint64

	// Each power-up is 3 values: X, Y, Kind.
	PowerUpData []uint64
}

func bits(f float64) uint64 {
	return math.Float64bits(f)
}

// Snapshot captures the current simulation state. Particles only
// contribute their count.
func (w *World) Snapshot() Snapshot {
	p := &w.player
	snap := Snapshot{
		Steps:       w.steps,
		Clock:       bits(w.clockMs),
		Score:       w.score,
		Level:       w.level,
		State:       w.state,
		EnemyCount:  w.enemies.Len(),
		BulletCount: w.bullets.Len(),
		PowerUps:    w.powerUps.Len(),
		Particles:   w.particles.Len(),
		Player: [6]uint64{
			bits(p.X), bits(p.Y), bits(p.Angle), bits(p.Speed),
			uint64(p.Health), uint64(p.Ammo), //#nosec G115 -- clamped at zero
		},
	}

	w.enemies.Each(func(_ Handle, e *Tank) {
		var phase, timer uint64
		if e.AI != nil {
			phase = uint64(e.AI.Phase) //#nosec G115 -- small enum
			timer = bits(e.AI.TimerMs)
		}
		snap.EnemyData = append(snap.EnemyData,
			bits(e.X), bits(e.Y), bits(e.Angle), uint64(e.Health), phase, timer) //#nosec G115 -- clamped at zero
	})
	w.bullets.Each(func(_ Handle, b *Bullet) {
		snap.BulletData = append(snap.BulletData, bits(b.X), bits(b.Y), bits(b.Angle))
	})
	for _, o := range w.obstacles {
		snap.ObstacleData = append(snap.ObstacleData, bits(o.X), bits(o.Y), bits(o.W), bits(o.H))
	}
	w.powerUps.Each(func(_ Handle, pu *PowerUp) {
		snap.PowerUpData = append(snap.PowerUpData, bits(pu.X), bits(pu.Y), uint64(pu.Kind)) //#nosec G115 -- small enum
	})
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Steps
	h = h*31 + snap.Clock
	h = h*31 + uint64(snap.Score)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.State)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EnemyCount)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BulletCount) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PowerUps)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Particles)   //#nosec G115 -- hash computation

	for _, v := range snap.Player {
		h = h*31 + v
	}
	for _, v := range snap.EnemyData {
		h = h*31 + v
	}
	for _, v := range snap.BulletData {
		h = h*31 + v
	}
	for _, v := range snap.ObstacleData {
		h = h*31 + v
	}
	for _, v := range snap.PowerUpData {
		h = h*31 + v
	}
	return h
}
