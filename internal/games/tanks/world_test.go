package tanks

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tank-rampage/internal/core"
)

func TestNewWorldStartsLevelOne(t *testing.T) {
	w := newTestWorld(t, 3)
	s := w.Status()

	if s.State != StatePlaying || s.Level != 1 || s.Score != 0 {
		t.Errorf("initial status = %+v", s)
	}
	if s.Health != 100 || s.Ammo != 10 {
		t.Errorf("player should start full, got health %d ammo %d", s.Health, s.Ammo)
	}
	if s.EnemiesLeft != 1 {
		t.Errorf("level 1 should have 1 enemy, got %d", s.EnemiesLeft)
	}

	p := w.Player()
	if p.X != 380 || p.Y != 550 || p.Angle != -math.Pi/2 {
		t.Errorf("player start = (%v, %v) angle %v", p.X, p.Y, p.Angle)
	}
}

func TestMoveForwardOneStep(t *testing.T) {
	w := emptyWorld(t)
	addEnemy(w, 50, 50)
	w.player.Angle = 0
	x0, y0 := w.player.X, w.player.Y

	w.Step(input(core.ActionMoveForward), frameMs)

	if math.Abs(w.player.X-(x0+2.5)) > 1e-9 {
		t.Errorf("X = %v, expected %v", w.player.X, x0+2.5)
	}
	if w.player.Y != y0 {
		t.Errorf("Y changed from %v to %v", y0, w.player.Y)
	}
}

func TestPlayerDriveIsLevelSet(t *testing.T) {
	w := emptyWorld(t)
	addEnemy(w, 50, 50)

	w.Step(input(core.ActionMoveBackward, core.ActionRotateRight), frameMs)
	if w.player.Speed != -2 || w.player.AngVel != 0.05 {
		t.Errorf("speed %v angVel %v, expected -2 and 0.05", w.player.Speed, w.player.AngVel)
	}

	w.Step(input(core.ActionMoveForward, core.ActionMoveBackward, core.ActionRotateLeft, core.ActionRotateRight), frameMs)
	if w.player.Speed != 2.5 || w.player.AngVel != -0.05 {
		t.Errorf("forward and left should win, got speed %v angVel %v", w.player.Speed, w.player.AngVel)
	}

	w.Step(input(), frameMs)
	if w.player.Speed != 0 || w.player.AngVel != 0 {
		t.Errorf("released input should stop the tank, got speed %v angVel %v", w.player.Speed, w.player.AngVel)
	}
}

func TestNamedInputDrivesPlayer(t *testing.T) {
	w := emptyWorld(t)
	addEnemy(w, 50, 50)
	y0 := w.player.Y

	w.Step(core.InputFromNames(map[string]bool{"moveForward": true, "honk": true}), frameMs)

	if w.player.Y >= y0 {
		t.Errorf("player facing up should move up, Y %v -> %v", y0, w.player.Y)
	}
}

func TestPlayerFireRespectsCooldown(t *testing.T) {
	w := emptyWorld(t)
	addEnemy(w, 50, 50)
	fire := input(core.ActionFire)

	w.Step(fire, 100)
	if w.bullets.Len() != 1 || w.player.Ammo != 9 {
		t.Fatalf("first shot should fire, bullets %d ammo %d", w.bullets.Len(), w.player.Ammo)
	}
	// 400ms after the first shot
	for range 4 {
		w.Step(fire, 100)
	}
	if w.player.Ammo != 9 {
		t.Errorf("shot inside cooldown fired, ammo %d", w.player.Ammo)
	}
	// 500ms is not enough, 600ms is
	w.Step(fire, 100)
	if w.player.Ammo != 9 {
		t.Errorf("cooldown must strictly elapse, ammo %d", w.player.Ammo)
	}
	w.Step(fire, 100)
	if w.player.Ammo != 8 {
		t.Errorf("shot after cooldown should fire, ammo %d", w.player.Ammo)
	}
}

func TestTanksStayInBounds(t *testing.T) {
	w := newTestWorld(t, 11)
	script := rand.New(rand.NewSource(99))
	actions := []core.Action{
		core.ActionMoveForward, core.ActionMoveBackward,
		core.ActionRotateLeft, core.ActionRotateRight, core.ActionFire,
	}

	for step := range 5000 {
		in := core.NewInputFrame()
		for _, a := range actions {
			if script.Intn(3) == 0 {
				in.Set(a)
			}
		}
		s := w.Step(in, frameMs)

		checkBounds(t, step, &w.player, w)
		w.enemies.Each(func(_ Handle, e *Tank) {
			checkBounds(t, step, e, w)
		})

		switch s.State {
		case StateGameOver:
			w.Restart()
		case StateLevelComplete:
			w.AdvanceLevel()
		}
	}
}

func checkBounds(t *testing.T, step int, tank *Tank, w *World) {
	t.Helper()
	if tank.X < 0 || tank.X > w.Width()-tank.W || tank.Y < 0 || tank.Y > w.Height()-tank.H {
		t.Fatalf("step %d: tank out of bounds at (%v, %v)", step, tank.X, tank.Y)
	}
}

func TestBulletLeavingWorldIsRemoved(t *testing.T) {
	w := emptyWorld(t)
	addEnemy(w, 50, 50)
	w.AddBullet(Bullet{X: 798, Y: 300, Angle: 0, Speed: 8, Size: 5, Owner: FactionPlayer})

	w.Step(input(), frameMs)

	if w.bullets.Len() != 0 {
		t.Error("bullet outside the world should be removed in the same step")
	}
	if w.particles.Len() != 0 {
		t.Error("leaving the world should not explode")
	}
}

func TestBulletHittingObstacleIsRemoved(t *testing.T) {
	w := emptyWorld(t)
	addEnemy(w, 50, 50)
	w.obstacles = []Obstacle{{Rect: core.NewRect(100, 300, 50, 50)}}
	w.AddBullet(Bullet{X: 90, Y: 320, Angle: 0, Speed: 8, Size: 5, Owner: FactionPlayer})

	w.Step(input(), frameMs)

	if w.bullets.Len() != 0 {
		t.Error("bullet striking an obstacle should be removed in the same step")
	}
	if w.particles.Len() != w.cfg.Particles.HitCount {
		t.Errorf("expected %d particles, got %d", w.cfg.Particles.HitCount, w.particles.Len())
	}
	w.particles.Each(func(_ Handle, p *Particle) {
		if p.Color != core.ColorDust {
			t.Fatalf("obstacle hit particle color = %q", p.Color)
		}
	})
}

func TestBulletIgnoresOwnSide(t *testing.T) {
	w := emptyWorld(t)
	h := addEnemy(w, 200, 200)
	other := addEnemy(w, 400, 200)

	// Stationary bullets sitting on a same-side tank, including an enemy
	// bullet on an enemy that did not fire it
	w.AddBullet(Bullet{X: 210, Y: 210, Size: 5, Owner: FactionEnemy})
	w.AddBullet(Bullet{X: 410, Y: 210, Size: 5, Owner: FactionEnemy})
	w.AddBullet(Bullet{X: w.player.X + 10, Y: w.player.Y + 10, Size: 5, Owner: FactionPlayer})

	w.Step(input(), frameMs)

	if w.bullets.Len() != 3 {
		t.Errorf("bullets on their own side should survive, %d left", w.bullets.Len())
	}
	if enemyAt(t, w, h).Health != 30 || enemyAt(t, w, other).Health != 30 || w.player.Health != 100 {
		t.Error("bullets should not damage their own side")
	}
}

func TestPlayerBulletDamagesEnemy(t *testing.T) {
	w := emptyWorld(t)
	h := addEnemy(w, 200, 200)
	w.AddBullet(Bullet{X: 210, Y: 210, Size: 5, Owner: FactionPlayer})

	s := w.Step(input(), frameMs)

	if enemyAt(t, w, h).Health != 20 {
		t.Errorf("enemy health = %d, expected 20", enemyAt(t, w, h).Health)
	}
	if w.bullets.Len() != 0 {
		t.Error("bullet should be consumed by the hit")
	}
	if s.Score != 0 {
		t.Errorf("non-lethal hit scored %d", s.Score)
	}
	if w.particles.Len() != w.cfg.Particles.HitCount {
		t.Errorf("expected a small explosion, got %d particles", w.particles.Len())
	}
}

func TestBulletHitsOnlyOneTarget(t *testing.T) {
	w := emptyWorld(t)
	a := addEnemy(w, 200, 200)
	b := addEnemy(w, 200, 200)
	w.AddBullet(Bullet{X: 210, Y: 210, Size: 5, Owner: FactionPlayer})

	w.Step(input(), frameMs)

	hurt := 0
	for _, h := range []Handle{a, b} {
		if enemyAt(t, w, h).Health < 30 {
			hurt++
		}
	}
	if hurt != 1 {
		t.Errorf("one bullet damaged %d tanks", hurt)
	}
}

func TestBulletHittingTankSkipsObstacle(t *testing.T) {
	w := emptyWorld(t)
	h := addEnemy(w, 200, 200)
	w.obstacles = []Obstacle{{Rect: core.NewRect(205, 205, 20, 20)}}
	w.AddBullet(Bullet{X: 210, Y: 210, Size: 5, Owner: FactionPlayer})

	w.Step(input(), frameMs)

	if enemyAt(t, w, h).Health != 20 {
		t.Errorf("enemy health = %d, expected 20", enemyAt(t, w, h).Health)
	}
	if w.particles.Len() != w.cfg.Particles.HitCount {
		t.Errorf("expected one hit explosion of %d particles, got %d", w.cfg.Particles.HitCount, w.particles.Len())
	}
	w.particles.Each(func(_ Handle, p *Particle) {
		if p.Color == core.ColorDust {
			t.Fatal("bullet consumed by a tank should not also hit the obstacle")
		}
	})
}

func TestLethalHitCompletesLevelOnce(t *testing.T) {
	w := emptyWorld(t)
	h := addEnemy(w, 200, 200)
	enemyAt(t, w, h).Health = 10
	w.AddBullet(Bullet{X: 210, Y: 210, Size: 5, Owner: FactionPlayer})

	transitions := 0
	prev := w.Status().State
	var s Status
	for range 10 {
		s = w.Step(input(), frameMs)
		if prev == StatePlaying && s.State == StateLevelComplete {
			transitions++
		}
		prev = s.State
	}

	if transitions != 1 {
		t.Errorf("levelComplete reached %d times, expected once", transitions)
	}
	if s.EnemiesLeft != 0 || s.Score != 100 {
		t.Errorf("status after kill = %+v", s)
	}
	want := w.cfg.Particles.HitCount + w.cfg.Particles.KillCount
	if w.particles.Len() != want {
		t.Errorf("expected %d particles, got %d", want, w.particles.Len())
	}
}

func TestGameOverIsSticky(t *testing.T) {
	w := emptyWorld(t)
	h := addEnemy(w, 50, 50)
	w.player.Health = 10
	w.AddBullet(Bullet{X: w.player.X + 10, Y: w.player.Y + 10, Size: 5, Owner: FactionEnemy})

	s := w.Step(input(), frameMs)
	if s.State != StateGameOver || s.Health != 0 {
		t.Fatalf("status = %+v, expected gameOver with 0 health", s)
	}
	if w.particles.Len() < w.cfg.Particles.DeathCount {
		t.Errorf("player death should explode, %d particles", w.particles.Len())
	}

	clock := w.ClockMs()
	for range 20 {
		s = w.Step(input(core.ActionMoveForward, core.ActionFire), frameMs)
		if s.State != StateGameOver {
			t.Fatalf("gameOver left without restart: %v", s.State)
		}
	}
	if w.ClockMs() != clock {
		t.Error("steps after game over should not advance the simulation")
	}
	if w.AdvanceLevel().State != StateGameOver {
		t.Error("AdvanceLevel should not leave gameOver")
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	w := newTestWorld(t, 5)
	w.score = 1700
	w.level = 4
	w.player.Ammo = 2
	w.player.takeDamage(200)
	w.Step(input(), frameMs)
	if w.Status().State != StateGameOver {
		t.Fatal("expected gameOver")
	}

	s := w.Restart()

	if s.Score != 0 || s.Level != 1 || s.Health != 100 || s.Ammo != 10 || s.State != StatePlaying {
		t.Errorf("status after restart = %+v", s)
	}
	if s.EnemiesLeft != 1 {
		t.Errorf("restart should set up level 1, got %d enemies", s.EnemiesLeft)
	}
}

func TestAdvanceLevelIsNoopWhilePlaying(t *testing.T) {
	w := newTestWorld(t, 8)
	w.score = 300
	before := w.Status()
	obstacles := len(w.obstacles)

	after := w.AdvanceLevel()

	if after != before {
		t.Errorf("AdvanceLevel while playing changed status: %+v -> %+v", before, after)
	}
	if len(w.obstacles) != obstacles {
		t.Error("AdvanceLevel while playing rebuilt the level")
	}
}

func TestAdvanceLevel(t *testing.T) {
	w := emptyWorld(t)
	w.score = 100
	w.player.Health = 40
	w.player.Ammo = 3
	if w.Step(input(), frameMs).State != StateLevelComplete {
		t.Fatal("empty level should complete")
	}

	s := w.AdvanceLevel()

	if s.Level != 2 || s.State != StatePlaying {
		t.Errorf("status = %+v", s)
	}
	if s.Score != 100+500 {
		t.Errorf("score = %d, expected 600", s.Score)
	}
	if s.Health != 100 || s.Ammo != 10 {
		t.Errorf("player should be refilled, health %d ammo %d", s.Health, s.Ammo)
	}
	if s.EnemiesLeft != 2 {
		t.Errorf("level 2 should have 2 enemies, got %d", s.EnemiesLeft)
	}
}

func TestPowerUpPickup(t *testing.T) {
	tests := []struct {
		name       string
		kind       PowerUpKind
		health     int
		ammo       int
		wantHealth int
		wantAmmo   int
	}{
		{"health heals", PowerUpHealth, 50, 5, 75, 5},
		{"health caps", PowerUpHealth, 90, 5, 100, 5},
		{"ammo restocks", PowerUpAmmo, 50, 0, 50, 10},
		{"ammo caps", PowerUpAmmo, 50, 7, 50, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := emptyWorld(t)
			addEnemy(w, 50, 50)
			w.player.Health = tc.health
			w.player.Ammo = tc.ammo
			w.powerUps.Insert(PowerUp{X: w.player.X + 10, Y: w.player.Y + 5, Size: 20, Kind: tc.kind})

			s := w.Step(input(), frameMs)

			if s.Health != tc.wantHealth || s.Ammo != tc.wantAmmo {
				t.Errorf("health %d ammo %d, expected %d and %d", s.Health, s.Ammo, tc.wantHealth, tc.wantAmmo)
			}
			if w.powerUps.Len() != 0 {
				t.Error("collected power-up should be removed")
			}
		})
	}
}

func TestTankPushedOutOfObstacle(t *testing.T) {
	w := emptyWorld(t)
	obstacle := core.NewRect(300, 300, 60, 60)
	w.obstacles = []Obstacle{{Rect: obstacle}}
	h := addEnemy(w, 330, 310)

	w.Step(input(), frameMs)

	e := enemyAt(t, w, h)
	if e.Rect().Intersects(obstacle) {
		t.Errorf("enemy still overlaps obstacle at (%v, %v)", e.X, e.Y)
	}
	if e.X != 360 || e.Y != 310 {
		t.Errorf("enemy at (%v, %v), expected push along x to (360, 310)", e.X, e.Y)
	}
	if w.obstacles[0].Rect != obstacle {
		t.Error("obstacles never move")
	}
}

func TestTankTankResolutionIsOneSided(t *testing.T) {
	w := emptyWorld(t)
	h := addEnemy(w, 405, 550)

	// The player drives up into the enemy's hull
	w.Step(input(core.ActionMoveForward), frameMs)

	e := enemyAt(t, w, h)
	if e.X != 405 || e.Y != 550 {
		t.Errorf("later tank moved to (%v, %v)", e.X, e.Y)
	}
	if w.player.X != 365 {
		t.Errorf("player X = %v, expected 365", w.player.X)
	}
	if w.player.Speed != 0 {
		t.Error("resolved tank should stop")
	}
}

func TestTakeDamageIsMonotonic(t *testing.T) {
	tank := newTank(0, 0, newTestWorld(t, 1).cfg.Tank, 100, ControllerInput)

	for i := range 10 {
		if tank.Deleted {
			t.Fatalf("deleted after %d hits", i)
		}
		tank.takeDamage(10)
	}
	if tank.Health != 0 || !tank.Deleted {
		t.Fatalf("after 10 hits health %d deleted %v", tank.Health, tank.Deleted)
	}

	tank.takeDamage(10)
	if tank.Health != 0 {
		t.Errorf("health went negative: %d", tank.Health)
	}
}

func TestShoot(t *testing.T) {
	w := newTestWorld(t, 1)
	tank := newTank(100, 100, w.cfg.Tank, 100, ControllerInput)
	tank.Angle = 0
	owner := FactionPlayer

	b, ok := tank.shoot(0, 25, w.cfg.Bullet, owner)
	if !ok {
		t.Fatal("first shot should fire")
	}
	if b.X != 145 || b.Y != 115 || b.Angle != 0 || b.Speed != 8 || b.Size != 5 {
		t.Errorf("bullet = %+v, expected muzzle at (145, 115)", b)
	}

	if _, ok := tank.shoot(500, 25, w.cfg.Bullet, owner); ok {
		t.Error("cooldown of exactly 500ms should block")
	}
	if _, ok := tank.shoot(501, 25, w.cfg.Bullet, owner); !ok {
		t.Error("shot after cooldown should fire")
	}

	tank.Ammo = 0
	if _, ok := tank.shoot(10000, 25, w.cfg.Bullet, owner); ok {
		t.Error("empty tank should not fire")
	}
}

func TestSetupLevelPlacementConstraints(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		w := newTestWorld(t, seed)
		lv := w.cfg.Level

		for level := 1; level <= 6; level++ {
			w.level = level
			w.setupLevel()
			safe := w.safeZone()

			if len(w.obstacles) > lv.BaseObstacles+level {
				t.Fatalf("seed %d level %d: %d obstacles", seed, level, len(w.obstacles))
			}
			if w.enemies.Len() != level {
				t.Fatalf("seed %d level %d: %d enemies", seed, level, w.enemies.Len())
			}

			for i, o := range w.obstacles {
				if o.Intersects(safe) {
					t.Fatalf("seed %d level %d: obstacle %d intersects the safe zone", seed, level, i)
				}
				if o.Y < lv.BandMargin || o.Bottom() > w.height-lv.BandMargin {
					t.Fatalf("seed %d level %d: obstacle %d outside the band: %+v", seed, level, i, o.Rect)
				}
				if o.W < lv.ObstacleMinSize || o.W > lv.ObstacleMaxSize || o.H < lv.ObstacleMinSize || o.H > lv.ObstacleMaxSize {
					t.Fatalf("seed %d level %d: obstacle %d size %vx%v", seed, level, i, o.W, o.H)
				}
				for j := range i {
					if o.Intersects(w.obstacles[j].Pad(lv.ObstacleSpacing)) {
						t.Fatalf("seed %d level %d: obstacle %d crowds obstacle %d", seed, level, i, j)
					}
				}
			}

			w.enemies.Each(func(_ Handle, e *Tank) {
				if e.Y > w.height/2 {
					t.Fatalf("seed %d level %d: enemy spawned in the lower half", seed, level)
				}
			})
		}
	}
}

func TestPowerUpSpawnAvoidsObstacles(t *testing.T) {
	w := newTestWorld(t, 21)
	for range 200 {
		w.spawnPowerUp(PowerUpAmmo)
	}
	if w.powerUps.Len() == 0 {
		t.Fatal("expected some power-ups to spawn")
	}
	w.powerUps.Each(func(_ Handle, p *PowerUp) {
		for _, o := range w.obstacles {
			if p.Rect().Intersects(o.Rect) {
				t.Fatalf("power-up at (%v, %v) overlaps an obstacle", p.X, p.Y)
			}
		}
	})
}

func TestPowerUpSpawnGivesUpSilently(t *testing.T) {
	w := emptyWorld(t)
	// One obstacle covering the whole world leaves no room
	w.obstacles = []Obstacle{{Rect: core.NewRect(0, 0, w.width, w.height)}}

	w.spawnPowerUp(PowerUpHealth)

	if w.powerUps.Len() != 0 {
		t.Error("power-up should be skipped when no spot is free")
	}
}

func TestParticlesDecayAndExpire(t *testing.T) {
	w := emptyWorld(t)
	addEnemy(w, 50, 50)
	w.explode(400, 300, core.ColorSpark, 10)

	maxLife := 0.0
	w.particles.Each(func(_ Handle, p *Particle) {
		maxLife = math.Max(maxLife, p.MaxLife)
		if p.MaxLife < 20 || p.MaxLife >= 40 {
			t.Errorf("particle life %v outside [20, 40)", p.MaxLife)
		}
	})

	for range int(maxLife) + 1 {
		w.Step(input(), frameMs)
	}
	if w.particles.Len() != 0 {
		t.Errorf("%d particles outlived their life", w.particles.Len())
	}
}

func TestDeterminism(t *testing.T) {
	run := func(seed int64) Snapshot {
		w := newTestWorld(t, seed)
		for i := range 1500 {
			in := core.NewInputFrame()
			if i%40 < 25 {
				in.Set(core.ActionMoveForward)
			}
			if i%9 == 0 {
				in.Set(core.ActionRotateLeft)
			}
			if i%3 == 0 {
				in.Set(core.ActionFire)
			}
			if w.Step(in, frameMs).State == StateLevelComplete {
				w.AdvanceLevel()
			}
		}
		return w.Snapshot()
	}

	snap1 := run(12345)
	snap2 := run(12345)
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1.Score != snap2.Score || snap1.Steps != snap2.Steps {
		t.Errorf("Determinism failed: score %d/%d steps %d/%d", snap1.Score, snap2.Score, snap1.Steps, snap2.Steps)
	}

	other := newTestWorld(t, 54321).Snapshot()
	first := newTestWorld(t, 12345).Snapshot()
	if other.Hash() == first.Hash() {
		t.Error("different seeds should produce different layouts")
	}
}

func TestNegativeElapsedIsClamped(t *testing.T) {
	w := emptyWorld(t)
	addEnemy(w, 50, 50)
	w.Step(input(), -50)
	if w.ClockMs() != 0 {
		t.Errorf("clock = %v, expected 0", w.ClockMs())
	}
}
