package tanks

import (
	"math"

	"github.com/vovakirdan/tank-rampage/internal/core"
)

// Faction is the side a bullet was fired by. It decides which tanks the
// bullet may hit: player bullets hit enemies, enemy bullets hit the player.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

// ControllerKind selects how a tank is driven each step.
type ControllerKind int

const (
	ControllerInput ControllerKind = iota // Held input flags
	ControllerAI                          // Enemy state machine
)

// Tank is the shared record of the player and enemy tanks.
type Tank struct {
	X, Y   float64 // Top-left corner
	Angle  float64 // Facing in radians, 0 points along +x
	Speed  float64 // Forward speed per step, negative reverses
	AngVel float64 // Radians per step
	W, H   float64

	Health, MaxHealth int
	Ammo, MaxAmmo     int
	CooldownMs        float64
	LastShotMs        float64
	Deleted           bool

	Controller ControllerKind
	AI         *AIState // nil for input-driven tanks
}

// Bullet is a projectile. X and Y are its top-left corner.
type Bullet struct {
	X, Y    float64
	Angle   float64
	Speed   float64
	Size    float64
	Owner   Faction
	Deleted bool
}

// Obstacle is a static block placed for the duration of a level.
type Obstacle struct {
	core.Rect
}

// PowerUpKind is the effect of a pickup.
type PowerUpKind int

const (
	PowerUpHealth PowerUpKind = iota
	PowerUpAmmo
	powerUpKinds // count
)

func (k PowerUpKind) String() string {
	switch k {
	case PowerUpHealth:
		return "health"
	case PowerUpAmmo:
		return "ammo"
	default:
		return "unknown"
	}
}

// PowerUp is a pickup lying in the world.
type PowerUp struct {
	X, Y     float64
	Size     float64
	Kind     PowerUpKind
	Rotation float64 // Cosmetic spin
	Deleted  bool
}

// Particle is a cosmetic explosion fragment. It never collides.
type Particle struct {
	X, Y    float64 // Center
	VX, VY  float64
	Size    float64
	Color   core.Color
	Life    float64 // Remaining steps
	MaxLife float64
}

// Rect returns the bullet's hitbox.
func (b *Bullet) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Size, b.Size)
}

func (b *Bullet) update() {
	b.X += math.Cos(b.Angle) * b.Speed
	b.Y += math.Sin(b.Angle) * b.Speed
}

// Rect returns the pickup's hitbox.
func (p *PowerUp) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Size, p.Size)
}

func (p *Particle) update(gravity, shrink float64) {
	p.X += p.VX
	p.Y += p.VY
	p.Life--
	p.VY += gravity
	p.Size *= shrink
}

// Alpha is the remaining opacity in [0, 1].
func (p *Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return core.ClampF(p.Life/p.MaxLife, 0, 1)
}
