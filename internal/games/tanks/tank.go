package tanks

import (
	"math"

	"github.com/vovakirdan/tank-rampage/internal/config"
	"github.com/vovakirdan/tank-rampage/internal/core"
)

// startAngle points the turret up the screen.
const startAngle = -math.Pi / 2

func newTank(x, y float64, body config.TankBody, maxHealth int, kind ControllerKind) Tank {
	t := Tank{
		X:          x,
		Y:          y,
		Angle:      startAngle,
		W:          body.Width,
		H:          body.Height,
		Health:     maxHealth,
		MaxHealth:  maxHealth,
		Ammo:       body.MaxAmmo,
		MaxAmmo:    body.MaxAmmo,
		CooldownMs: body.CooldownMs,
		LastShotMs: math.Inf(-1), // first shot is never on cooldown
		Controller: kind,
	}
	if kind == ControllerAI {
		t.AI = &AIState{}
	}
	return t
}

// Rect returns the tank's axis-aligned hitbox.
func (t *Tank) Rect() core.Rect {
	return core.NewRect(t.X, t.Y, t.W, t.H)
}

// Center returns the center of the hull.
func (t *Tank) Center() (float64, float64) {
	return t.X + t.W/2, t.Y + t.H/2
}

// HealthFraction is health over max health.
func (t *Tank) HealthFraction() float64 {
	if t.MaxHealth <= 0 {
		return 0
	}
	return float64(t.Health) / float64(t.MaxHealth)
}

// update turns, moves along the facing and clamps into the world.
func (t *Tank) update(worldW, worldH float64) {
	t.Angle += t.AngVel
	t.X += math.Cos(t.Angle) * t.Speed
	t.Y += math.Sin(t.Angle) * t.Speed
	t.clamp(worldW, worldH)
}

func (t *Tank) clamp(worldW, worldH float64) {
	t.X = core.ClampF(t.X, 0, worldW-t.W)
	t.Y = core.ClampF(t.Y, 0, worldH-t.H)
}

// shoot fires a bullet from the muzzle if the tank has ammo and its cooldown
// has strictly elapsed at nowMs.
func (t *Tank) shoot(nowMs float64, muzzle float64, spec config.TankBullet, owner Faction) (Bullet, bool) {
	if t.Ammo <= 0 || nowMs-t.LastShotMs <= t.CooldownMs {
		return Bullet{}, false
	}
	t.Ammo--
	t.LastShotMs = nowMs

	cx, cy := t.Center()
	return Bullet{
		X:     cx + math.Cos(t.Angle)*muzzle,
		Y:     cy + math.Sin(t.Angle)*muzzle,
		Angle: t.Angle,
		Speed: spec.Speed,
		Size:  spec.Size,
		Owner: owner,
	}, true
}

// takeDamage lowers health, never below zero. The tank is flagged for
// deletion when health reaches zero.
func (t *Tank) takeDamage(amount int) {
	t.Health -= amount
	if t.Health <= 0 {
		t.Health = 0
		t.Deleted = true
	}
}

// heal and restock cap at the tank's maximums.
func (t *Tank) heal(amount int) {
	t.Health = min(t.MaxHealth, t.Health+amount)
}

func (t *Tank) restock(amount int) {
	t.Ammo = min(t.MaxAmmo, t.Ammo+amount)
}

// drive sets speed and turn rate from the held input flags. Velocities are
// set, not accumulated. Forward wins over backward and left over right.
func (t *Tank) drive(in core.InputFrame, p config.TankPlayer) {
	switch {
	case in.Has(core.ActionMoveForward):
		t.Speed = p.ForwardSpeed
	case in.Has(core.ActionMoveBackward):
		t.Speed = -p.ReverseSpeed
	default:
		t.Speed = 0
	}

	switch {
	case in.Has(core.ActionRotateLeft):
		t.AngVel = -p.TurnRate
	case in.Has(core.ActionRotateRight):
		t.AngVel = p.TurnRate
	default:
		t.AngVel = 0
	}
}
