package steering

import (
	"math"
	"testing"

	"fremen-sim/internal/world"
)

func TestSeekStepsTowardTarget(t *testing.T) {
	got := Seek(world.Vec3{}, world.Vec3{X: 10}, 5, 1)
	if got.X != 5 || got.Z != 0 {
		t.Fatalf("seek = %+v, want (5,0,0)", got)
	}
}

func TestSeekNeverOvershoots(t *testing.T) {
	got := Seek(world.Vec3{}, world.Vec3{X: 3}, 5, 1)
	if got != (world.Vec3{X: 3}) {
		t.Fatalf("seek = %+v, want target", got)
	}
}

func TestSeekCoincident(t *testing.T) {
	pos := world.Vec3{X: 1, Z: 2}
	if got := Seek(pos, pos, 5, 1); got != pos {
		t.Fatalf("seek on coincident points moved: %+v", got)
	}
}

func TestBearing(t *testing.T) {
	if got := Bearing(world.Vec3{}, world.Vec3{X: 1}); got != 0 {
		t.Fatalf("bearing +x = %v, want 0", got)
	}
	if got := Bearing(world.Vec3{}, world.Vec3{Z: 1}); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Fatalf("bearing +z = %v, want pi/2", got)
	}
}

func TestAngleDiff(t *testing.T) {
	if got := AngleDiff(math.Pi/4, -math.Pi/4); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Fatalf("diff = %v, want pi/2", got)
	}
	// Wraps across the discontinuity.
	if got := AngleDiff(math.Pi-0.1, -math.Pi+0.1); math.Abs(got+0.2) > 1e-9 {
		t.Fatalf("wrapped diff = %v, want -0.2", got)
	}
	if got := AngleDiff(0, 0); got != 0 {
		t.Fatalf("zero diff = %v", got)
	}
}

func TestMaintainSpacingBacksOff(t *testing.T) {
	got := MaintainSpacing(world.Vec3{X: 10}, world.Vec3{}, 20, 40, 100, 1)
	if world.Distance(got, world.Vec3{}) <= 10 {
		t.Fatalf("did not back off: %+v", got)
	}
}

func TestMaintainSpacingClosesIn(t *testing.T) {
	got := MaintainSpacing(world.Vec3{X: 50}, world.Vec3{}, 20, 40, 5, 1)
	if got.X != 45 {
		t.Fatalf("close-in position = %+v, want x=45", got)
	}
}

func TestMaintainSpacingHolds(t *testing.T) {
	pos := world.Vec3{X: 30}
	if got := MaintainSpacing(pos, world.Vec3{}, 20, 40, 5, 1); got != pos {
		t.Fatalf("moved inside band: %+v", got)
	}
}

func TestRetreatVector(t *testing.T) {
	got := RetreatVector(world.Vec3{X: 10}, world.Vec3{}, 5)
	if got.X != 15 {
		t.Fatalf("retreat = %+v, want x=15", got)
	}
}

func TestRetreatVectorCoincident(t *testing.T) {
	origin := world.Vec3{X: 3, Z: 4}
	if got := RetreatVector(origin, origin, 5); got != origin {
		t.Fatalf("coincident retreat moved: %+v", got)
	}
}
