package tanks

import (
	"math"

	"github.com/vovakirdan/tank-rampage/internal/core"
)

// AIPhase is a state of the enemy controller.
type AIPhase int

const (
	AIIdle AIPhase = iota
	AIAiming
	AIAttacking
	AIRepositioning
)

func (p AIPhase) String() string {
	switch p {
	case AIIdle:
		return "idle"
	case AIAiming:
		return "aiming"
	case AIAttacking:
		return "attacking"
	case AIRepositioning:
		return "repositioning"
	default:
		return "unknown"
	}
}

// AIState is the per-enemy controller state. TimerMs counts the time spent
// in the current phase; while aiming it only counts sustained alignment.
type AIState struct {
	Phase   AIPhase
	TimerMs float64
}

func (s *AIState) enter(p AIPhase) {
	s.Phase = p
	s.TimerMs = 0
}

// aiParams are the enemy tuning values in effect for the current level.
type aiParams struct {
	vision          float64
	loseSight       float64 // Distance beyond which an aiming enemy gives up
	threshold       float64
	lockOnMs        float64
	turnRate        float64
	repositionSpeed float64
	repositionMs    float64
}

// updateAI runs one step of the enemy state machine, setting the tank's
// speed and turn rate. Bullets fired while attacking go straight into the
// world.
func (w *World) updateAI(t *Tank, elapsedMs float64) {
	s := t.AI
	s.TimerMs += elapsedMs

	ex, ey := t.Center()
	px, py := w.player.Center()
	dist := core.Distance(ex, ey, px, py)

	switch s.Phase {
	case AIIdle:
		t.Speed = 0
		t.AngVel = 0
		if dist < w.ai.vision {
			s.enter(AIAiming)
		}

	case AIAiming:
		t.Speed = 0
		if dist > w.ai.loseSight {
			t.AngVel = 0
			s.enter(AIIdle)
			return
		}
		bearing := math.Atan2(py-ey, px-ex)
		diff := core.NormalizeAngle(bearing - t.Angle)
		if math.Abs(diff) < w.ai.threshold {
			t.AngVel = 0
			t.Angle = bearing
			if s.TimerMs > w.ai.lockOnMs {
				s.enter(AIAttacking)
			}
		} else {
			t.AngVel = core.Sign(diff) * w.ai.turnRate
			s.TimerMs = 0
		}

	case AIAttacking:
		t.Speed = 0
		t.AngVel = 0
		if b, ok := t.shoot(w.clockMs, w.cfg.Tank.MuzzleOffset, w.cfg.Bullet, FactionEnemy); ok {
			w.AddBullet(b)
		}
		// Fired or not, the enemy moves on.
		s.enter(AIRepositioning)

	case AIRepositioning:
		t.Speed = w.ai.repositionSpeed
		t.AngVel = 0
		if s.TimerMs > w.ai.repositionMs {
			t.Speed = 0
			s.enter(AIIdle)
		}
	}
}
