package tanks

import "github.com/vovakirdan/tank-rampage/internal/core"

// Kind identifies what a Drawable depicts.
type Kind int

const (
	KindObstacle Kind = iota
	KindPowerUp
	KindPlayer
	KindEnemy
	KindBullet
	KindParticle
)

func (k Kind) String() string {
	switch k {
	case KindObstacle:
		return "obstacle"
	case KindPowerUp:
		return "powerUp"
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindBullet:
		return "bullet"
	case KindParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Drawable is a read-only view of one entity for the renderer.
// X and Y are the top-left corner of the bounding box.
type Drawable struct {
	Kind          Kind
	X, Y          float64
	Width, Height float64
	Angle         float64
	Color         core.Color
	Alpha         float64 // 1 except for fading particles

	// Only set for damaged tanks.
	HasHealthBar   bool
	HealthFraction float64

	PowerUp PowerUpKind // Only meaningful for KindPowerUp
}

// Drawables lists every entity back to front: obstacles, power-ups, the
// player, enemies, bullets, particles.
func (w *World) Drawables() []Drawable {
	out := make([]Drawable, 0, len(w.obstacles)+w.powerUps.Len()+1+
		w.enemies.Len()+w.bullets.Len()+w.particles.Len())

	for _, o := range w.obstacles {
		out = append(out, Drawable{
			Kind: KindObstacle, X: o.X, Y: o.Y, Width: o.W, Height: o.H,
			Color: core.ColorObstacle, Alpha: 1,
		})
	}
	w.powerUps.Each(func(_ Handle, p *PowerUp) {
		color := core.ColorHealth
		if p.Kind == PowerUpAmmo {
			color = core.ColorAmmo
		}
		out = append(out, Drawable{
			Kind: KindPowerUp, X: p.X, Y: p.Y, Width: p.Size, Height: p.Size,
			Angle: p.Rotation, Color: color, Alpha: 1, PowerUp: p.Kind,
		})
	})
	out = append(out, tankDrawable(&w.player, KindPlayer, core.ColorPlayer))
	w.enemies.Each(func(_ Handle, e *Tank) {
		out = append(out, tankDrawable(e, KindEnemy, core.ColorEnemy))
	})
	w.bullets.Each(func(_ Handle, b *Bullet) {
		out = append(out, Drawable{
			Kind: KindBullet, X: b.X, Y: b.Y, Width: b.Size, Height: b.Size,
			Angle: b.Angle, Color: core.ColorBullet, Alpha: 1,
		})
	})
	w.particles.Each(func(_ Handle, p *Particle) {
		size := max(p.Size, 0)
		out = append(out, Drawable{
			Kind: KindParticle, X: p.X - size, Y: p.Y - size, Width: 2 * size, Height: 2 * size,
			Color: p.Color, Alpha: p.Alpha(),
		})
	})
	return out
}

func tankDrawable(t *Tank, kind Kind, color core.Color) Drawable {
	d := Drawable{
		Kind: kind, X: t.X, Y: t.Y, Width: t.W, Height: t.H,
		Angle: t.Angle, Color: color, Alpha: 1,
	}
	if t.Health < t.MaxHealth {
		d.HasHealthBar = true
		d.HealthFraction = t.HealthFraction()
	}
	return d
}
