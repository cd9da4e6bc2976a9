package tanks

import (
	"testing"

	"github.com/vovakirdan/tank-rampage/internal/core"
)

func TestDrawablesOrderAndContent(t *testing.T) {
	w := newTestWorld(t, 17)
	w.powerUps.Insert(PowerUp{X: 10, Y: 10, Size: 20, Kind: PowerUpAmmo})
	w.AddBullet(Bullet{X: 400, Y: 300, Size: 5, Owner: FactionPlayer})
	w.explode(100, 100, core.ColorSpark, 5)
	w.player.takeDamage(30)

	ds := w.Drawables()

	want := len(w.obstacles) + 1 + 1 + w.enemies.Len() + 1 + 5
	if len(ds) != want {
		t.Fatalf("got %d drawables, expected %d", len(ds), want)
	}
	for i := 1; i < len(ds); i++ {
		if ds[i].Kind < ds[i-1].Kind {
			t.Fatalf("drawable %d (%v) after %v breaks back-to-front order", i, ds[i].Kind, ds[i-1].Kind)
		}
	}

	for _, d := range ds {
		switch d.Kind {
		case KindPlayer:
			if !d.HasHealthBar || d.HealthFraction != 0.7 {
				t.Errorf("damaged player bar = %v %v", d.HasHealthBar, d.HealthFraction)
			}
		case KindEnemy:
			if d.HasHealthBar {
				t.Error("undamaged enemy should not show a health bar")
			}
		case KindPowerUp:
			if d.PowerUp != PowerUpAmmo || d.Color != core.ColorAmmo {
				t.Errorf("power-up drawable = %+v", d)
			}
		case KindParticle:
			if d.Alpha != 1 {
				t.Errorf("fresh particle alpha = %v", d.Alpha)
			}
		case KindObstacle:
			if d.Color != core.ColorObstacle {
				t.Errorf("obstacle color = %q", d.Color)
			}
		}
	}
}

func TestParticleAlpha(t *testing.T) {
	p := Particle{Life: 10, MaxLife: 40}
	if p.Alpha() != 0.25 {
		t.Errorf("Alpha() = %v", p.Alpha())
	}
	p.Life = -3
	if p.Alpha() != 0 {
		t.Errorf("expired particle alpha = %v", p.Alpha())
	}
	if (&Particle{}).Alpha() != 0 {
		t.Error("zero particle should be invisible")
	}
}
