package perception

import (
	"testing"

	"fremen-sim/internal/world"
)

func TestDetectPlayerByHearing(t *testing.T) {
	// Behind the agent but within hearing radius.
	players := []world.PlayerSnapshot{
		{ID: "p1", Position: world.Vec3{X: -90}, State: world.PlayerAlive},
	}
	got, ok := DetectPlayer(world.Vec3{}, 0, players, nil)
	if !ok || got.ID != "p1" {
		t.Fatalf("expected hearing detection, got %v %v", got, ok)
	}
}

func TestDetectPlayerHearingIgnoresWalls(t *testing.T) {
	players := []world.PlayerSnapshot{
		{ID: "p1", Position: world.Vec3{X: 60}, State: world.PlayerAlive},
	}
	blocked := func(from, to world.Vec3) bool { return false }
	if _, ok := DetectPlayer(world.Vec3{}, 0, players, blocked); !ok {
		t.Fatalf("hearing must not consult the line-of-sight oracle")
	}
}

func TestDetectPlayerOutOfRange(t *testing.T) {
	players := []world.PlayerSnapshot{
		{ID: "p1", Position: world.Vec3{X: 101}, State: world.PlayerAlive},
	}
	if _, ok := DetectPlayer(world.Vec3{}, 0, players, nil); ok {
		t.Fatalf("player beyond hearing and vision must not be detected")
	}
}

func TestDetectPlayerSkipsDead(t *testing.T) {
	players := []world.PlayerSnapshot{
		{ID: "corpse", Position: world.Vec3{X: 10}, State: world.PlayerDead},
		{ID: "live", Position: world.Vec3{X: 20}, State: world.PlayerAlive},
	}
	got, ok := DetectPlayer(world.Vec3{}, 0, players, nil)
	if !ok || got.ID != "live" {
		t.Fatalf("expected live player, got %v %v", got, ok)
	}
}

func TestDetectPlayerDownedStillDetected(t *testing.T) {
	players := []world.PlayerSnapshot{
		{ID: "downed", Position: world.Vec3{X: 10}, State: world.PlayerDown},
	}
	if _, ok := DetectPlayer(world.Vec3{}, 0, players, nil); !ok {
		t.Fatalf("downed player should still be detected")
	}
}

func TestDetectPlayerFirstMatchWins(t *testing.T) {
	players := []world.PlayerSnapshot{
		{ID: "far", Position: world.Vec3{X: 90}, State: world.PlayerAlive},
		{ID: "near", Position: world.Vec3{X: 10}, State: world.PlayerAlive},
	}
	got, _ := DetectPlayer(world.Vec3{}, 0, players, nil)
	if got.ID != "far" {
		t.Fatalf("expected snapshot order to decide ties, got %s", got.ID)
	}
}

func TestDetectThumper(t *testing.T) {
	thumpers := []world.ThumperSnapshot{
		{ID: "inactive", Position: world.Vec3{X: 10}, Active: false},
		{ID: "far", Position: world.Vec3{X: 150}, Active: true},
		{ID: "near", Position: world.Vec3{X: 90}, Active: true},
	}
	got, ok := DetectThumper(world.Vec3{}, thumpers)
	if !ok || got.ID != "near" {
		t.Fatalf("expected near thumper, got %v %v", got, ok)
	}
}

func TestDetectThumperNone(t *testing.T) {
	if _, ok := DetectThumper(world.Vec3{}, nil); ok {
		t.Fatalf("empty snapshot must not detect")
	}
}
