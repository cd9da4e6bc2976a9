package main

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tank-rampage/internal/config"
)

func runTestSim(t *testing.T, opts simOptions) string {
	t.Helper()
	var sb strings.Builder
	if err := simulate(&sb, config.DefaultTankConfig(), opts); err != nil {
		t.Fatalf("simulate() failed: %v", err)
	}
	return sb.String()
}

func TestSimulateIsDeterministic(t *testing.T) {
	opts := simOptions{Steps: 2000, FrameMs: 16, Seed: 42, Hold: []string{"fire", "rotateLeft"}, AutoAdvance: true}

	a := runTestSim(t, opts)
	b := runTestSim(t, opts)
	if a != b {
		t.Errorf("equal seeds gave different output:\n%s\n---\n%s", a, b)
	}

	opts.Seed = 43
	if c := runTestSim(t, opts); c == a {
		t.Error("different seeds should give different output")
	}
}

func TestSimulateOutput(t *testing.T) {
	out := runTestSim(t, simOptions{Steps: 10, FrameMs: 16, Seed: 1})
	lines := strings.Split(strings.TrimSpace(out), "\n")

	if lines[0] != "seed 1" {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "step      0  playing") {
		t.Errorf("initial status line = %q", lines[1])
	}
	if !strings.HasPrefix(lines[len(lines)-1], "steps 10  hash ") {
		t.Errorf("last line = %q", lines[len(lines)-1])
	}
}

func TestSimulateStopsAtLevelComplete(t *testing.T) {
	// A fast spinning turret with no obstacles clears level 1 quickly
	cfg := config.DefaultTankConfig()
	cfg.Level.ObstacleAttempts = 0
	cfg.Tank.CooldownMs = 0
	cfg.Tank.MaxAmmo = 10000
	cfg.Player.TurnRate = 0.02
	cfg.Enemy.MaxHealth = cfg.Bullet.Damage
	cfg.PowerUps.SpawnChance = 0

	var sb strings.Builder
	opts := simOptions{Steps: 5000, FrameMs: 16, Seed: 3, Hold: []string{"fire", "rotateLeft"}}
	if err := simulate(&sb, cfg, opts); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")

	completedAt := ""
	for _, line := range lines {
		if strings.Contains(line, "levelComplete") {
			completedAt = strings.Fields(line)[1]
		}
	}
	if completedAt == "" {
		t.Fatalf("level was never completed:\n%s", sb.String())
	}
	last := lines[len(lines)-1]
	if !strings.HasPrefix(last, "steps "+completedAt+" ") {
		t.Errorf("run should stop on the completing step %s, last line = %q", completedAt, last)
	}
}

func TestSimulateRejectsBadInput(t *testing.T) {
	var sb strings.Builder
	err := simulate(&sb, config.DefaultTankConfig(), simOptions{Steps: 1, Hold: []string{"jump"}})
	if err == nil || !strings.Contains(err.Error(), "jump") {
		t.Errorf("expected unknown input error, got %v", err)
	}

	err = simulate(&sb, config.DefaultTankConfig(), simOptions{Steps: -1})
	if err == nil {
		t.Error("negative steps should fail")
	}
}
