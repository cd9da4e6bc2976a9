package tanks

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tank-rampage/internal/config"
	"github.com/vovakirdan/tank-rampage/internal/core"
)

const frameMs = 16

func newTestWorld(t *testing.T, seed int64) *World {
	t.Helper()
	return NewWorld(config.DefaultTankConfig(), rand.New(rand.NewSource(seed)))
}

// emptyWorld returns a playing world with no obstacles, enemies or
// power-ups, and no random power-up drops.
func emptyWorld(t *testing.T) *World {
	t.Helper()
	w := newTestWorld(t, 1)
	w.obstacles = nil
	w.enemies.Clear()
	w.powerUps.Clear()
	w.particles.Clear()
	w.cfg.PowerUps.SpawnChance = 0
	return w
}

func addEnemy(w *World, x, y float64) Handle {
	return w.enemies.Insert(newTank(x, y, w.cfg.Tank, w.cfg.Enemy.MaxHealth, ControllerAI))
}

func enemyAt(t *testing.T, w *World, h Handle) *Tank {
	t.Helper()
	e, ok := w.enemies.Get(h)
	if !ok {
		t.Fatal("enemy handle no longer resolves")
	}
	return e
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}
